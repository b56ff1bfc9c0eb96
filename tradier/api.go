package tradier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bcdannyboy/takeprofit/models"
	"github.com/xhhuango/json"
)

const (
	DefaultBaseURL = "https://api.tradier.com"
	dateLayout     = "2006-01-02"
)

type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tradier %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("failed to build url for %s: %w", path, err)
	}
	u.RawQuery = query.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	r.Header.Add("Accept", "application/json")

	resp, err := c.HTTP.Do(r)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response data: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: string(responseData)}
	}

	if err := json.Unmarshal(responseData, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response data: %w", path, err)
	}
	return nil
}

func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	resp := &QuoteResponse{}
	err := c.get(ctx, "/v1/markets/quotes", url.Values{"symbols": {symbol}}, resp)
	if err != nil {
		return nil, err
	}
	if resp.Quotes.Quote.Symbol == "" {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}
	return &resp.Quotes.Quote, nil
}

// GetHistory returns daily bars between start and end inclusive.
func (c *Client) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	history := &QuoteHistory{}
	err := c.get(ctx, "/v1/markets/history", url.Values{
		"symbol":         {symbol},
		"interval":       {"daily"},
		"start":          {start.Format(dateLayout)},
		"end":            {end.Format(dateLayout)},
		"session_filter": {"all"},
	}, history)
	if err != nil {
		return nil, err
	}

	bars := make([]models.Bar, 0, len(history.History.Day))
	for _, d := range history.History.Day {
		bars = append(bars, models.Bar{
			Date:   d.Date,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			Volume: d.Volume,
		})
	}
	return bars, nil
}

// GetExpirations lists the listed expiration dates in ascending order.
func (c *Client) GetExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	expirations := &OptionExpirations{}
	err := c.get(ctx, "/v1/markets/options/expirations", url.Values{
		"symbol":          {symbol},
		"includeAllRoots": {"true"},
		"strikes":         {"true"},
	}, expirations)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(expirations.Expirations.Expiration))
	for _, expiration := range expirations.Expirations.Expiration {
		d, err := time.Parse(dateLayout, expiration.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expiration date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (c *Client) GetOptionChain(ctx context.Context, symbol string, expiration time.Time) (*OptionChain, error) {
	optionChain := &OptionChain{}
	err := c.get(ctx, "/v1/markets/options/chains", url.Values{
		"symbol":     {symbol},
		"expiration": {expiration.Format(dateLayout)},
		"greeks":     {"true"},
	}, optionChain)
	if err != nil {
		return nil, err
	}
	optionChain.ExpirationDate = expiration.Format(dateLayout)
	return optionChain, nil
}
