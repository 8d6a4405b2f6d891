// Package bot handles chat-bot webhook updates for the warehouse.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply is returned in the webhook response body and executed by the chat
// platform as a sendMessage call.
type Reply struct {
	Method string `json:"method"`
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func sendMessage(chatID int64, text string) *Reply {
	msg := tgbotapi.NewMessage(chatID, text)
	return &Reply{Method: "sendMessage", ChatID: msg.ChatID, Text: msg.Text}
}

// displayName prefers the username, then the full name.
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return u.String()
}
