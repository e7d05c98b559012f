// Package store persists asset-class documents as JSON files on local disk,
// one file per class. Files are read at the start of a run and replaced
// wholesale at the end.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"marketdata/internal/domain"
	"marketdata/internal/universe"
)

// DocumentStore reads and writes per-class document files under a data
// directory.
type DocumentStore struct {
	dataDir string
}

// NewDocumentStore creates a DocumentStore rooted at dataDir. The directory
// is created on the first write.
func NewDocumentStore(dataDir string) *DocumentStore {
	return &DocumentStore{dataDir: dataDir}
}

// Path returns the file path of a class's document.
func (s *DocumentStore) Path(class universe.Class) string {
	return filepath.Join(s.dataDir, string(class)+".json")
}

// Read loads a class's document. ok is false when no file exists yet.
func (s *DocumentStore) Read(class universe.Class) (domain.Document, bool, error) {
	data, err := os.ReadFile(s.Path(class))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s document: %w", class, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parsing %s document: %w", class, err)
	}
	return doc, true, nil
}

// Write replaces a class's document file with the given encoded content.
func (s *DocumentStore) Write(class universe.Class, data []byte) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(s.Path(class), data, 0o644); err != nil {
		return fmt.Errorf("writing %s document: %w", class, err)
	}
	return nil
}

// Encode renders a document in its persisted form: JSON with 2-space
// indentation. Map keys (RICs and dates) come out sorted, which keeps each
// series chronologically ascending.
func Encode(doc domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}
