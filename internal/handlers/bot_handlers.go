package handlers

import (
	"crypto/subtle"
	"net/http"

	"plastwarehouse/internal/bot"
	"plastwarehouse/internal/common"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
)

// secretHeader carries the token configured when the webhook was registered.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// BotHandlers receives chat-bot webhook updates
type BotHandlers struct {
	dispatcher *bot.Dispatcher
	secret     string
}

// NewBotHandlers creates bot handlers. An empty secret disables the header check.
func NewBotHandlers(dispatcher *bot.Dispatcher, secret string) *BotHandlers {
	return &BotHandlers{dispatcher: dispatcher, secret: secret}
}

// Webhook answers an update inline with a sendMessage call
// @Summary Chat-bot webhook
// @Tags bot
// @Accept json
// @Produce json
// @Success 200 {object} bot.Reply
// @Router /bot/webhook [post]
func (h *BotHandlers) Webhook(c echo.Context) error {
	if h.secret != "" {
		got := c.Request().Header.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
		}
	}

	var upd tgbotapi.Update
	if err := c.Bind(&upd); err != nil {
		return common.SendClientError(c, "invalid update payload")
	}

	reply := h.dispatcher.Handle(c.Request().Context(), upd)
	if reply == nil {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, reply)
}
