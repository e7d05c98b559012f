// Package fetch implements the two upstream data sources: the Yahoo Finance
// chart API for quoted instruments and the FRED CSV endpoint for US Treasury
// rate series. Both return daily observations as domain.Series.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"marketdata/internal/domain"
	"marketdata/internal/util"
)

// YahooClient fetches daily closing prices from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL string
	http    *http.Client
	pacer   *util.Pacer
}

// NewYahooClient creates a YahooClient against the given base URL
// (e.g. "https://query1.finance.yahoo.com"), with a per-request timeout and
// a minimum pause between consecutive requests.
func NewYahooClient(baseURL string, timeout, pause time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		pacer:   util.NewPacer(pause),
	}
}

// chartResponse mirrors the subset of the Yahoo v8 chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns the instrument's daily closing prices from start up to
// now, keyed by ISO date. Days the provider has no close for are absent, not
// zero-filled. An empty series with a nil error means the provider simply
// had no data for the window.
func (c *YahooClient) DailyCloses(ctx context.Context, symbol string, start time.Time) (domain.Series, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"period1":  []string{fmt.Sprintf("%d", start.Unix())},
		"period2":  []string{fmt.Sprintf("%d", time.Now().Unix())},
		"interval": []string{"1d"},
		"events":   []string{"history"},
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building chart request for %s: %w", symbol, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching chart for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching chart for %s: status %d", symbol, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decoding chart for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s (%s)",
			symbol, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return domain.Series{}, nil
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := make(domain.Series, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		date := time.Unix(ts, 0).UTC().Format(domain.DateFormat)
		series[date] = *closes[i]
	}
	return series, nil
}
