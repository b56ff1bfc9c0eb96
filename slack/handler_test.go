package tpslack

import (
	"strings"
	"testing"

	"github.com/bcdannyboy/takeprofit/analyzer"
	"github.com/bcdannyboy/takeprofit/models"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type recordingClient struct {
	acks     []string
	channels []string
}

func (c *recordingClient) Ack(req socketmode.Request, payload ...interface{}) {
	c.acks = append(c.acks, req.EnvelopeID)
}

func (c *recordingClient) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	c.channels = append(c.channels, channelID)
	return channelID, "1700000000.000100", nil
}

func newTestHandler() *Handler {
	return NewHandler(analyzer.New(nil, models.SimulationConfig{Paths: 100, Steps: 10, Seed: 1}), zerolog.Nop())
}

func TestHandleAcksUnexpectedPayload(t *testing.T) {
	client := &recordingClient{}
	evt := &socketmode.Event{
		Type:    socketmode.EventTypeSlashCommand,
		Data:    "not a slash command",
		Request: &socketmode.Request{EnvelopeID: "env-1"},
	}

	err := newTestHandler().Handle(evt, client)
	if err == nil || !strings.Contains(err.Error(), "unexpected slash command payload") {
		t.Errorf("expected a payload error, got %v", err)
	}
	if len(client.acks) != 1 || client.acks[0] != "env-1" {
		t.Errorf("acks = %v, want [env-1]", client.acks)
	}
}

func TestHandleHelp(t *testing.T) {
	client := &recordingClient{}
	evt := &socketmode.Event{
		Type:    socketmode.EventTypeSlashCommand,
		Data:    slack.SlashCommand{Command: "/help", ChannelID: "C1"},
		Request: &socketmode.Request{EnvelopeID: "env-2"},
	}

	if err := newTestHandler().Handle(evt, client); err != nil {
		t.Fatal(err)
	}
	if len(client.acks) != 1 || len(client.channels) != 1 || client.channels[0] != "C1" {
		t.Errorf("acks = %v, posts = %v", client.acks, client.channels)
	}
}

func TestHandleTPUsageError(t *testing.T) {
	client := &recordingClient{}
	evt := &socketmode.Event{
		Type:    socketmode.EventTypeSlashCommand,
		Data:    slack.SlashCommand{Command: "/tp", Text: "SPY 510", ChannelID: "C2"},
		Request: &socketmode.Request{EnvelopeID: "env-3"},
	}

	if err := newTestHandler().Handle(evt, client); err != nil {
		t.Fatal(err)
	}
	if len(client.acks) != 1 || len(client.channels) != 1 {
		t.Errorf("acks = %v, posts = %v", client.acks, client.channels)
	}
}
