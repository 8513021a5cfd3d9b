package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/series"
)

// Client errors.
var (
	ErrEmptySymbol = errors.New("marketdata: empty symbol")
	ErrNoData      = errors.New("marketdata: no rows in response")
)

// DefaultBaseURL is the Stooq endpoint serving daily-history CSV exports.
const DefaultBaseURL = "https://stooq.com"

// Client fetches daily close history from the Stooq CSV export endpoint.
type Client struct {
	cli     *http.Client
	baseURL string
}

// NewClient creates a Client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		cli:     &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// DailyCloses downloads the daily history for a symbol, optionally
// restricted to a date window, and returns a validated close series.
func (c *Client) DailyCloses(ctx context.Context, symbol string, w domain.DateWindow) ([]domain.PricePoint, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	q := url.Values{}
	q.Set("s", symbol)
	q.Set("i", "d")
	if !w.Start.IsZero() {
		q.Set("d1", w.Start.UTC().Format("20060102"))
	}
	if !w.End.IsZero() {
		q.Set("d2", w.End.UTC().Format("20060102"))
	}

	reqURL := fmt.Sprintf("%s/q/d/l/?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "equity-strategy-lab/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch daily closes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("marketdata: http %d for %s", resp.StatusCode, symbol)
	}

	points, err := series.ParseCSV(resp.Body, symbol)
	if err != nil {
		return nil, fmt.Errorf("parse daily closes for %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return points, nil
}
