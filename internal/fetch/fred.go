package fetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"marketdata/internal/domain"
	"marketdata/internal/util"
)

// FREDClient fetches daily yield observations from the FRED graph CSV
// endpoint (two columns: date, value).
type FREDClient struct {
	baseURL string
	http    *http.Client
	pacer   *util.Pacer
}

// NewFREDClient creates a FREDClient against the given base URL
// (e.g. "https://fred.stlouisfed.org"), with a per-request timeout and a
// minimum pause between consecutive requests.
func NewFREDClient(baseURL string, timeout, pause time.Duration) *FREDClient {
	return &FREDClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		pacer:   util.NewPacer(pause),
	}
}

// Observations returns the series' daily values on or after start, keyed by
// ISO date. Rows carrying FRED's "." missing-data sentinel (or any
// non-numeric value) are dropped.
func (c *FREDClient) Observations(ctx context.Context, seriesID string, start time.Time) (domain.Series, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/graph/fredgraph.csv?id=%s", c.baseURL, url.QueryEscape(seriesID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building CSV request for %s: %w", seriesID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching CSV for %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching CSV for %s: status %d", seriesID, resp.StatusCode)
	}

	return parseObservations(resp.Body, seriesID, start)
}

// parseObservations reads the two-column CSV body, filters out sentinel rows
// and anything before start, and coerces the rest to float.
func parseObservations(r io.Reader, seriesID string, start time.Time) (domain.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	// Header row: date column, series id column.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading CSV header for %s: %w", seriesID, err)
	}

	startDate := start.Format(domain.DateFormat)
	series := domain.Series{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row for %s: %w", seriesID, err)
		}

		date := record[0]
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			continue
		}
		if date < startDate {
			continue
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			// "." is FRED's missing-data sentinel.
			continue
		}
		series[date] = value
	}
	return series, nil
}
