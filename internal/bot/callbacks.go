package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cmdLive     = "live"
	cmdRecent   = "recent"
	cmdUpcoming = "upcoming"
	cmdCategory = "category"

	actionTab      = "tab"
	actionCategory = "cat"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(callback); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	action, value, ok := ParseCallback(cb.Data)
	if !ok {
		return
	}

	b.log.Info("callback",
		"action", action,
		"value", value,
		"chat_id", chatID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	switch action {
	case actionTab:
		b.handleTab(ctx, chatID, value)
	case actionCategory:
		b.handleCategory(ctx, chatID, value)
	}
}
