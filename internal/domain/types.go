// Package domain defines the core data types shared across the market data
// pipeline: per-instrument daily time series and the per-asset-class
// documents they are persisted in.
package domain

import "sort"

// DateFormat is the calendar-date layout used for all series keys.
const DateFormat = "2006-01-02"

// Series is one instrument's daily observations, keyed by ISO date
// (YYYY-MM-DD). Values are closing prices or yields depending on the
// instrument. Dates are unique by construction of the map.
type Series map[string]float64

// Merge returns a new Series containing every date of s overlaid with every
// date of fresh. For a date present in both, the fresh value wins ("new
// download wins"). Neither input is modified.
func (s Series) Merge(fresh Series) Series {
	merged := make(Series, len(s)+len(fresh))
	for date, v := range s {
		merged[date] = v
	}
	for date, v := range fresh {
		merged[date] = v
	}
	return merged
}

// Dates returns the series' dates in ascending order. ISO date strings sort
// lexically in chronological order.
func (s Series) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Latest returns the maximum date in the series, or ok=false when the series
// is empty.
func (s Series) Latest() (string, bool) {
	var latest string
	for date := range s {
		if date > latest {
			latest = date
		}
	}
	return latest, latest != ""
}

// Entry is one instrument inside a persisted document: its display name and
// its full time series.
type Entry struct {
	Name string `json:"name"`
	Data Series `json:"data"`
}

// Document is the persisted form of one asset class: canonical RIC code to
// entry. It is read at the start of a run and replaced wholesale at the end.
type Document map[string]Entry

// LatestDate scans every entry's series and returns the maximum date across
// the whole document, or ok=false when no entry has any observation.
func (d Document) LatestDate() (string, bool) {
	var latest string
	for _, entry := range d {
		if date, ok := entry.Data.Latest(); ok && date > latest {
			latest = date
		}
	}
	return latest, latest != ""
}

// Records returns the total number of observations across all entries.
func (d Document) Records() int {
	n := 0
	for _, entry := range d {
		n += len(entry.Data)
	}
	return n
}
