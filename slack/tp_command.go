package tpslack

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bcdannyboy/takeprofit/analyzer"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

const (
	tpUsage    = "<ticker> <strike> <expiry> <multiple> <bid> <ask> [spot] [r%] [q%] [vol%]"
	runTimeout = 2 * time.Minute
)

type TPHandler struct {
	analyzer *analyzer.Analyzer
	log      zerolog.Logger
}

func NewTPHandler(a *analyzer.Analyzer, logger zerolog.Logger) *TPHandler {
	return &TPHandler{analyzer: a, log: logger}
}

func (h *TPHandler) HandleCommand(data slack.SlashCommand, client Client) error {
	req, err := ParseTPArgs(data.Text)
	if err != nil {
		_, _, perr := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(fmt.Sprintf("%s\nUsage: /tp %s", err, tpUsage), false))
		return perr
	}

	_, ts, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(fmt.Sprintf("Running take-profit analysis for %s %g call...", req.Ticker, req.K), false))
	if err != nil {
		return err
	}

	go h.run(client, data.ChannelID, ts, req)
	return nil
}

func (h *TPHandler) run(client Client, channelID, timestamp string, req analyzer.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	text := h.analyze(ctx, req)
	if _, _, err := client.PostMessage(channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(timestamp)); err != nil {
		h.log.Error().Err(err).Str("channel", channelID).Msg("failed to post report")
	}
}

func (h *TPHandler) analyze(ctx context.Context, req analyzer.Request) string {
	if NeedsAutofill(req) {
		snap, err := h.analyzer.Autofill(ctx, req.Ticker, req.K, req.Expiration)
		if err != nil {
			return fmt.Sprintf("[!] %s", err)
		}
		req = analyzer.Fill(req, snap)
	}

	report, err := h.analyzer.Run(ctx, req)
	if err != nil {
		return fmt.Sprintf("[!] Error: %s", err)
	}
	return "```\n" + report.Text() + "```"
}

// NeedsAutofill reports whether spot, rate or volatility was left out.
func NeedsAutofill(req analyzer.Request) bool {
	return !req.Supplied(analyzer.FieldSpot) ||
		!req.Supplied(analyzer.FieldRiskFree) ||
		!req.Supplied(analyzer.FieldVolatility)
}

// ParseTPArgs parses the /tp command text into an analysis request.
func ParseTPArgs(text string) (analyzer.Request, error) {
	args := strings.Fields(text)
	if len(args) < 6 || len(args) > 10 {
		return analyzer.Request{}, fmt.Errorf("expected 6 to 10 arguments, got %d", len(args))
	}

	req := analyzer.Request{
		Ticker:     strings.ToUpper(args[0]),
		Expiration: args[2],
	}
	fields := []struct {
		name  string
		dst   *float64
		given analyzer.Field
	}{
		{"strike", &req.K, 0},
		{"multiple", &req.Multiple, 0},
		{"bid", &req.Bid, 0},
		{"ask", &req.Ask, 0},
		{"spot", &req.S0, analyzer.FieldSpot},
		{"r%", &req.RiskFreePct, analyzer.FieldRiskFree},
		{"q%", &req.DividendPct, analyzer.FieldDividend},
		{"vol%", &req.VolatilityPct, analyzer.FieldVolatility},
	}
	values := append([]string{args[1]}, args[3:]...)
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return analyzer.Request{}, fmt.Errorf("%s must be a number, got %q", fields[i].name, v)
		}
		*fields[i].dst = f
		req.Given |= fields[i].given
	}
	return req, nil
}
