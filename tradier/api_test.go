package tradier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	quoteJSON = `{"quotes":{"quote":{"symbol":"SPY","last":512.34,"bid":512.3,"ask":512.4,"close":510.0}}}`

	historyJSON = `{"history":{"day":[
		{"date":"2025-06-16","open":100,"high":102,"low":99,"close":101,"volume":1000},
		{"date":"2025-06-17","open":101,"high":103,"low":100,"close":102,"volume":1100},
		{"date":"2025-06-18","open":102,"high":102.5,"low":98,"close":99,"volume":1200}]}}`

	expirationsJSON = `{"expirations":{"expiration":[
		{"date":"2025-07-18","contract_size":100,"expiration_type":"standard","strikes":{"strike":[500,510,520]}},
		{"date":"2025-06-20","contract_size":100,"expiration_type":"weeklys","strikes":{"strike":[500,510,520]}}]}}`

	chainJSON = `{"options":{"option":[
		{"symbol":"SPY250620C00500000","strike":500,"option_type":"call","bid":14,"ask":14.5,"greeks":{"mid_iv":0.21}},
		{"symbol":"SPY250620P00510000","strike":510,"option_type":"put","bid":3,"ask":3.2,"greeks":{"mid_iv":0.40}},
		{"symbol":"SPY250620C00510000","strike":510,"option_type":"call","bid":6,"ask":6.2,"greeks":{"mid_iv":0.18}},
		{"symbol":"SPY250620C00520000","strike":520,"option_type":"call","bid":2,"ask":2.1,"greeks":{"mid_iv":0.17}}]}}`
)

// newTestServer serves canned Tradier responses and records the requested paths.
func newTestServer(t *testing.T, routes map[string]string) (*Client, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-token")
	c.BaseURL = srv.URL
	return c, &seen
}

func TestGetQuote(t *testing.T) {
	c, _ := newTestServer(t, map[string]string{"/v1/markets/quotes": quoteJSON})

	q, err := c.GetQuote(context.Background(), "SPY")
	if err != nil {
		t.Fatal(err)
	}
	if q.Symbol != "SPY" || q.Last != 512.34 {
		t.Errorf("quote = %+v", q)
	}
}

func TestGetHistoryConvertsBars(t *testing.T) {
	c, _ := newTestServer(t, map[string]string{"/v1/markets/history": historyJSON})

	bars, err := c.GetHistory(context.Background(), "SPY", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 3 || bars[2].Close != 99 || bars[0].Date != "2025-06-16" || bars[1].Volume != 1100 {
		t.Errorf("bars = %+v", bars)
	}
}

func TestGetExpirationsAndChain(t *testing.T) {
	c, _ := newTestServer(t, map[string]string{
		"/v1/markets/options/expirations": expirationsJSON,
		"/v1/markets/options/chains":      chainJSON,
	})

	dates, err := c.GetExpirations(context.Background(), "SPY")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[0].Format(dateLayout) != "2025-07-18" {
		t.Errorf("dates = %v", dates)
	}

	chain, err := c.GetOptionChain(context.Background(), "SPY", dates[1])
	if err != nil {
		t.Fatal(err)
	}
	if len(chain.Options.Option) != 4 || chain.ExpirationDate != "2025-06-20" {
		t.Errorf("chain = %+v", chain)
	}
}

func TestStatusError(t *testing.T) {
	c, _ := newTestServer(t, map[string]string{})
	c.Token = "wrong"

	_, err := c.GetQuote(context.Background(), "SPY")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 status error, got %v", err)
	}
}
