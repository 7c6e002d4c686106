package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

const marketsPath = "/coins/markets"

// Client fetches the tracked assets from the CoinGecko markets endpoint.
// One call per cycle, no internal retry: a failed fetch simply means the
// scheduler tries again next tick.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type marketRow struct {
	ID        string  `json:"id"`
	Price     float64 `json:"current_price"`
	Change24h float64 `json:"price_change_percentage_24h"`
}

// Fetch returns a complete snapshot or an error, never partial data: a
// response missing any tracked asset counts as a total failure.
func (c *Client) Fetch(ctx context.Context) (domain.Snapshot, error) {
	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("ids", strings.Join(domain.TrackedIDs(), ","))
	params.Set("sparkline", "false")
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, marketsPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build markets request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read markets response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("markets http %d: %s", resp.StatusCode, string(body))
	}

	var rows []marketRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode markets response: %w", err)
	}

	byID := make(map[string]marketRow, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	snap := make(domain.Snapshot, len(domain.Tracked))
	for _, t := range domain.Tracked {
		r, ok := byID[t.ID]
		if !ok {
			return nil, fmt.Errorf("asset %q missing from markets response", t.ID)
		}
		snap[t.ID] = domain.Asset{
			ID:        t.ID,
			Label:     t.Label,
			Price:     r.Price,
			Change24h: r.Change24h,
		}
	}
	return snap, nil
}
