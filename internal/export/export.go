// Package export converts persisted asset-class documents into flat Parquet
// files for offline analysis, one file per class.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"

	"marketdata/internal/domain"
)

// Observation is the Parquet schema: one row per (instrument, date).
type Observation struct {
	RIC   string  `parquet:"ric"`
	Name  string  `parquet:"name"`
	Date  string  `parquet:"date"`
	Value float64 `parquet:"value"`
}

// Rows flattens a document into observation rows ordered by RIC, then date.
func Rows(doc domain.Document) []Observation {
	rics := make([]string, 0, len(doc))
	for ric := range doc {
		rics = append(rics, ric)
	}
	sort.Strings(rics)

	var rows []Observation
	for _, ric := range rics {
		entry := doc[ric]
		for _, date := range entry.Data.Dates() {
			rows = append(rows, Observation{
				RIC:   ric,
				Name:  entry.Name,
				Date:  date,
				Value: entry.Data[date],
			})
		}
	}
	return rows
}

// WriteFile writes a document's observations to a Parquet file at path,
// creating parent directories as needed. An empty document is skipped and
// reported via the skipped return.
func WriteFile(path string, doc domain.Document) (skipped bool, err error) {
	rows := Rows(doc)
	if len(rows) == 0 {
		return true, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating export dir: %w", err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return false, fmt.Errorf("writing parquet %s: %w", path, err)
	}
	return false, nil
}

// ReadFile loads the observations back from a Parquet file.
func ReadFile(path string) ([]Observation, error) {
	rows, err := parquet.ReadFile[Observation](path)
	if err != nil {
		return nil, fmt.Errorf("reading parquet %s: %w", path, err)
	}
	return rows, nil
}
