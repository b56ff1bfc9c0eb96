package tradier

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bcdannyboy/takeprofit/models"
)

const (
	historyLookbackDays = 140
	realizedVolWindow   = 63
	fallbackVolPct      = 30.0

	VolSourceChain    = "chain mid_iv"
	VolSourceSmv      = "chain smv_vol"
	VolSourceRealized = "yang-zhang 3m"
	VolSourceDefault  = "default"
)

// MarketData prefills analysis inputs from Tradier. Rates Tradier cannot supply come from
// the configured defaults.
type MarketData struct {
	Client      *Client
	RiskFreePct float64
	DividendPct float64
	Now         func() time.Time
}

func NewMarketData(client *Client, riskFreePct, dividendPct float64) *MarketData {
	return &MarketData{
		Client:      client,
		RiskFreePct: riskFreePct,
		DividendPct: dividendPct,
		Now:         time.Now,
	}
}

// Snapshot looks up spot and volatility for ticker. strike and expiration select the option
// whose IV is used; a zero strike means at-the-money and a zero expiration the nearest one.
func (m *MarketData) Snapshot(ctx context.Context, ticker string, strike float64, expiration time.Time) (models.MarketSnapshot, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return models.MarketSnapshot{}, fmt.Errorf("ticker is required")
	}
	now := m.Now()

	snap := models.MarketSnapshot{
		Ticker:      ticker,
		RiskFreePct: m.RiskFreePct,
		DividendPct: m.DividendPct,
		AsOf:        now,
	}

	quote, err := m.Client.GetQuote(ctx, ticker)
	if err != nil {
		return snap, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	snap.Spot = quote.Last

	bars, histErr := m.Client.GetHistory(ctx, ticker, now.AddDate(0, 0, -historyLookbackDays), now)
	if snap.Spot <= 0 {
		if histErr != nil {
			return snap, fmt.Errorf("failed to fetch history for %s: %w", ticker, histErr)
		}
		if len(bars) == 0 {
			return snap, fmt.Errorf("no price available for %s", ticker)
		}
		snap.Spot = bars[len(bars)-1].Close
	}
	if strike <= 0 {
		strike = snap.Spot
	}

	snap.RealizedVolPct = make(map[string]float64)
	for name, vol := range models.RealizedVolatilities(models.LastBars(bars, realizedVolWindow)) {
		snap.RealizedVolPct[name] = vol * 100
	}

	if vol, source, ok := m.chainVolatility(ctx, ticker, strike, expiration, now); ok {
		snap.VolatilityPct, snap.VolSource = vol*100, source
		return snap, nil
	}
	if vol := snap.RealizedVolPct["yang_zhang"]; vol > 0 {
		snap.VolatilityPct, snap.VolSource = vol, VolSourceRealized
		return snap, nil
	}

	snap.VolatilityPct, snap.VolSource = fallbackVolPct, VolSourceDefault
	return snap, nil
}

func (m *MarketData) chainVolatility(ctx context.Context, ticker string, strike float64, expiration, now time.Time) (float64, string, bool) {
	if expiration.IsZero() {
		dates, err := m.Client.GetExpirations(ctx, ticker)
		if err != nil {
			return 0, "", false
		}
		expiration = nearestExpiration(dates, now)
		if expiration.IsZero() {
			return 0, "", false
		}
	}

	chain, err := m.Client.GetOptionChain(ctx, ticker, expiration)
	if err != nil {
		return 0, "", false
	}
	opt, ok := nearestCall(chain.Options.Option, strike)
	if !ok {
		return 0, "", false
	}
	switch {
	case opt.Greeks.MidIv > 0:
		return opt.Greeks.MidIv, VolSourceChain, true
	case opt.Greeks.SmvVol > 0:
		return opt.Greeks.SmvVol, VolSourceSmv, true
	}
	return 0, "", false
}

func nearestExpiration(dates []time.Time, now time.Time) time.Time {
	sorted := append([]time.Time(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, d := range sorted {
		if d.After(today) {
			return d
		}
	}
	return time.Time{}
}

func nearestCall(options []Option, strike float64) (Option, bool) {
	var best Option
	found := false
	for _, o := range options {
		if o.OptionType != "call" {
			continue
		}
		if !found || math.Abs(o.Strike-strike) < math.Abs(best.Strike-strike) {
			best, found = o, true
		}
	}
	return best, found
}
