package tpslack

import (
	"github.com/slack-go/slack"
)

const helpText = "Available commands:\n" +
	"/help - Show this help message\n" +
	"/tp " + tpUsage + " - Price a call and simulate its take-profit barrier\n" +
	"Expiry is MMDDYYYY or YYYY-MM-DD. Omitted market fields are autofilled from Tradier."

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) HandleCommand(data slack.SlashCommand, client Client) error {
	_, _, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(helpText, false))
	return err
}
