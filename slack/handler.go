package tpslack

import (
	"fmt"

	"github.com/bcdannyboy/takeprofit/analyzer"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// Client is the part of the socket-mode client the command handlers use.
type Client interface {
	Ack(req socketmode.Request, payload ...interface{})
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

type Handler struct {
	helpHandler *HelpHandler
	tpHandler   *TPHandler
}

func NewHandler(a *analyzer.Analyzer, logger zerolog.Logger) *Handler {
	return &Handler{
		helpHandler: NewHelpHandler(),
		tpHandler:   NewTPHandler(a, logger),
	}
}

func (h *Handler) Handle(evt *socketmode.Event, client Client) error {
	if evt.Request != nil {
		client.Ack(*evt.Request)
	}
	data, ok := evt.Data.(slack.SlashCommand)
	if !ok {
		return fmt.Errorf("unexpected slash command payload %T", evt.Data)
	}

	switch data.Command {
	case "/help":
		return h.helpHandler.HandleCommand(data, client)
	case "/tp":
		return h.tpHandler.HandleCommand(data, client)
	}
	return nil
}
