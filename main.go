package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/bcdannyboy/takeprofit/analyzer"
	"github.com/bcdannyboy/takeprofit/config"
	"github.com/bcdannyboy/takeprofit/logging"
	tpslack "github.com/bcdannyboy/takeprofit/slack"
	"github.com/bcdannyboy/takeprofit/tradier"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ticker := flag.String("ticker", "", "Underlying symbol")
	spot := flag.Float64("spot", 0, "Spot price, S0")
	strike := flag.Float64("strike", 0, "Strike price, K")
	riskFree := flag.Float64("r", 0, "Risk-free rate (%)")
	dividend := flag.Float64("q", 0, "Dividend yield (%)")
	vol := flag.Float64("vol", 0, "Volatility (%)")
	expiry := flag.String("expiry", "", "Expiration date (MMDDYYYY or YYYY-MM-DD)")
	multiple := flag.Float64("multiple", 0, "Take-profit multiple")
	bid := flag.Float64("bid", 0, "Bid price")
	ask := flag.Float64("ask", 0, "Ask price")
	autofill := flag.Bool("autofill", false, "Fill spot, rates and volatility from Tradier")
	paths := flag.Int("paths", cfg.Simulation.Paths, "Monte Carlo paths")
	steps := flag.Int("steps", cfg.Simulation.Steps, "Time steps per path")
	seed := flag.Uint64("seed", cfg.Simulation.Seed, "Random seed")
	asJSON := flag.Bool("json", false, "Print the report as JSON")
	out := flag.String("out", "", "Also write the JSON report to this file")
	bot := flag.Bool("slack", false, "Run the Slack bot instead of a single analysis")
	flag.Parse()

	cfg.Simulation.Paths = *paths
	cfg.Simulation.Steps = *steps
	cfg.Simulation.Seed = *seed

	var md analyzer.MarketData
	if cfg.TradierKey != "" {
		md = tradier.NewMarketData(tradier.NewClient(cfg.TradierKey), cfg.RiskFreePct, cfg.DividendPct)
	}
	opts := []analyzer.Option{
		analyzer.WithTolerance(cfg.Tolerance),
		analyzer.WithLogger(logger),
	}

	var bar *mpb.Bar
	showProgress := !*bot && !*asJSON
	if showProgress {
		opts = append(opts, analyzer.WithProgress(func(n int) { bar.IncrBy(n) }))
	}
	a := analyzer.New(md, cfg.Simulation, opts...)

	if *bot {
		if cfg.SlackAppToken == "" || cfg.SlackBotToken == "" {
			logger.Fatal().Msg("SLACK_APP_TOKEN and SLACK_BOT_TOKEN are required for -slack")
		}
		if err := tpslack.NewSlackBot(cfg.SlackAppToken, cfg.SlackBotToken, a, logger).Start(); err != nil {
			logger.Fatal().Err(err).Msg("slack bot stopped")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := analyzer.Request{
		Ticker:        *ticker,
		S0:            *spot,
		K:             *strike,
		RiskFreePct:   *riskFree,
		DividendPct:   *dividend,
		VolatilityPct: *vol,
		Expiration:    *expiry,
		Multiple:      *multiple,
		Bid:           *bid,
		Ask:           *ask,
	}
	marks := map[string]analyzer.Field{
		"spot": analyzer.FieldSpot,
		"r":    analyzer.FieldRiskFree,
		"q":    analyzer.FieldDividend,
		"vol":  analyzer.FieldVolatility,
	}
	flag.Visit(func(f *flag.Flag) { req.Given |= marks[f.Name] })

	if *autofill {
		snap, err := a.Autofill(ctx, req.Ticker, req.K, req.Expiration)
		if err != nil {
			fmt.Printf("[!] %s\n", err)
			os.Exit(1)
		}
		req = analyzer.Fill(req, snap)
		fmt.Printf("[✓] Autofilled for %s (vol from %s)\n", snap.Ticker, snap.VolSource)
		printRealized(snap.RealizedVolPct)
	}

	var progress *mpb.Progress
	if showProgress {
		progress, bar = newProgressBar(cfg.Simulation.Paths)
	}
	report, err := a.Run(ctx, req)
	if progress != nil {
		if err != nil {
			bar.Abort(true)
		}
		progress.Wait()
	}
	if err != nil {
		fmt.Printf("[!] Error: %s\n", err)
		os.Exit(1)
	}

	if *asJSON || *out != "" {
		data, err := report.JSON()
		if err != nil {
			fmt.Printf("Error marshalling report: %s\n", err.Error())
			os.Exit(1)
		}
		if *out != "" {
			if err := os.WriteFile(*out, data, 0644); err != nil {
				fmt.Printf("Error writing to file %s: %s\n", *out, err.Error())
				os.Exit(1)
			}
			logger.Info().Str("file", *out).Msg("wrote report")
		}
		if *asJSON {
			fmt.Println(string(data))
			return
		}
	}

	fmt.Print(report.Text())
}

// newProgressBar draws simulated paths against total on stderr.
func newProgressBar(total int) (*mpb.Progress, *mpb.Bar) {
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Simulating"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)
	return p, bar
}

func printRealized(vols map[string]float64) {
	names := make([]string, 0, len(vols))
	for name := range vols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("    realized %-16s %.2f%%\n", name, vols[name])
	}
}
