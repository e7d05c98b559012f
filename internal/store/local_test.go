package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"marketdata/internal/domain"
	"marketdata/internal/universe"
)

func TestDocumentStoreRoundTrip(t *testing.T) {
	s := NewDocumentStore(filepath.Join(t.TempDir(), "market_data"))

	doc := domain.Document{
		"MSFT.O": {Name: "Microsoft", Data: domain.Series{"2023-01-01": 101.0, "2023-01-02": 102.0}},
		".SPX":   {Name: "S&P 500", Data: domain.Series{"2023-01-01": 3824.14}},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := s.Write(universe.USStocks, data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, ok, err := s.Read(universe.USStocks)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !ok {
		t.Fatal("Read ok = false after Write")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\n  got  %v\n  want %v", got, doc)
	}
}

func TestDocumentStoreReadMissing(t *testing.T) {
	s := NewDocumentStore(t.TempDir())

	doc, ok, err := s.Read(universe.FX)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ok {
		t.Error("Read ok = true for missing file")
	}
	if doc != nil {
		t.Errorf("Read returned %v for missing file, want nil", doc)
	}
}

func TestDocumentStorePath(t *testing.T) {
	s := NewDocumentStore("/data")
	want := filepath.Join("/data", "Equity_Index.json")
	if got := s.Path(universe.EquityIndex); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestEncodeUsesTwoSpaceIndent(t *testing.T) {
	doc := domain.Document{
		"MSFT.O": {Name: "Microsoft", Data: domain.Series{"2023-01-01": 101.0}},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "\n  \"MSFT.O\"") {
		t.Errorf("expected 2-space indentation, got:\n%s", text)
	}
	if !strings.Contains(text, `"name": "Microsoft"`) {
		t.Errorf("missing name field:\n%s", text)
	}
}

func TestEncodeDatesAscending(t *testing.T) {
	doc := domain.Document{
		"GCc1": {Name: "Gold", Data: domain.Series{
			"2023-03-01": 3,
			"2021-01-05": 1,
			"2022-07-30": 2,
		}},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	text := string(data)
	i1 := strings.Index(text, "2021-01-05")
	i2 := strings.Index(text, "2022-07-30")
	i3 := strings.Index(text, "2023-03-01")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("dates not ascending in encoded output:\n%s", text)
	}
}

func TestDocumentStoreOverwritesWholesale(t *testing.T) {
	dir := t.TempDir()
	s := NewDocumentStore(dir)

	first, _ := Encode(domain.Document{"A": {Name: "a", Data: domain.Series{"2023-01-01": 1}}})
	if err := s.Write(universe.Commodity, first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	second, _ := Encode(domain.Document{"B": {Name: "b", Data: domain.Series{"2023-01-02": 2}}})
	if err := s.Write(universe.Commodity, second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(s.Path(universe.Commodity))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(raw), `"A"`) {
		t.Error("old content survived a wholesale overwrite")
	}
}
