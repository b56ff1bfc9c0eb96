package tpslack

import (
	"log"

	"github.com/bcdannyboy/takeprofit/analyzer"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type SlackBot struct {
	client       *slack.Client
	socketClient *socketmode.Client
	eventHandler *Handler
	log          zerolog.Logger
}

func NewSlackBot(appToken, botToken string, a *analyzer.Analyzer, logger zerolog.Logger) *SlackBot {
	client := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionLog(log.New(logger, "socketmode: ", 0)),
	)

	return &SlackBot{
		client:       client,
		socketClient: socketClient,
		eventHandler: NewHandler(a, logger),
		log:          logger,
	}
}

func (sb *SlackBot) Start() error {
	go func() {
		for evt := range sb.socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeConnected:
				sb.log.Info().Msg("connected to slack")
			case socketmode.EventTypeSlashCommand:
				if err := sb.eventHandler.Handle(&evt, sb.socketClient); err != nil {
					sb.log.Error().Err(err).Msg("slash command failed")
				}
			}
		}
	}()

	return sb.socketClient.Run()
}
