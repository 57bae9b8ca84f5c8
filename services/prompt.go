package services

import (
	"strings"

	"github.com/rxnlog/experiment-line-bot/models"
)

// BuildPrompt assembles the generation prompt from the system template, a
// chronological conversation transcript and the newest user message. Pure
// string assembly; it knows nothing about the model being invoked.
//
// Layout, in order: template, a "Current Conversation:" separator, one
// "<User|Bot>: content" line per history message, the trailing
// "User: <message>" line and the "Bot:" cue.
func BuildPrompt(template string, history []models.Message, userMessage string) string {
	var b strings.Builder

	b.WriteString(template)
	b.WriteString("\n\nCurrent Conversation:\n")
	for _, msg := range history {
		b.WriteString(speakerLabel(msg.SenderType))
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(userMessage)
	b.WriteString("\nBot:")

	return b.String()
}

func speakerLabel(senderType string) string {
	if senderType == models.SenderUser {
		return "User"
	}
	return "Bot"
}
