package bot

import (
	"context"
	"errors"
	"fmt"

	"cricket_bot/internal/model"
	"cricket_bot/internal/presenter"
	"cricket_bot/internal/state"
	"cricket_bot/internal/storage"
)

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, `Welcome to Cricket Scores Bot!

Follow live, recent and upcoming cricket matches grouped by series.

Quick start:
1. /live — matches in progress
2. /category women — show only women's cricket
3. /subscribe — get notified when live scores change

Use /help for the full command reference.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Matches:
/live — live matches
/recent — recently finished matches
/upcoming — scheduled matches
/category <name> — filter by category
/ticker — one-line summary of upcoming matches
/scorecard <match_id> — innings summary of a match
/info <match_id> — match details and squads
/commentary <match_id> — latest ball-by-ball commentary

Notifications:
/subscribe [category] — live score updates (default: all)
/unsubscribe — stop updates

Categories: all | international | domestic | women`)
}

func (b *Bot) handleTab(ctx context.Context, chatID int64, value string) {
	mt, err := model.ParseMatchType(value)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	sel := b.state.SelectMatchType(chatID, mt)
	b.reply(chatID, fmt.Sprintf("Loading %s matches...", mt))

	records, err := b.load(ctx, mt)
	if err != nil {
		b.log.Error("load matches", "match_type", mt, "chat_id", chatID, "error", err)
		b.reply(chatID, FormatFetchError(mt))
		return
	}
	b.render(chatID, sel, records)
}

func (b *Bot) handleCategory(ctx context.Context, chatID int64, value string) {
	if value == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /category <all|international|domestic|women>\nCurrent: %s", b.state.Selection(chatID).Category))
		return
	}
	c, err := model.ParseCategory(value)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	sel := b.state.SelectCategory(chatID, c)
	records, loaded := b.state.Matches(sel.MatchType)
	if !loaded {
		records, err = b.load(ctx, sel.MatchType)
		if err != nil {
			b.log.Error("load matches", "match_type", sel.MatchType, "chat_id", chatID, "error", err)
			b.reply(chatID, FormatFetchError(sel.MatchType))
			return
		}
	}
	b.render(chatID, sel, records)
}

func (b *Bot) withFetchTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.fetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.fetchTimeout)
}

func (b *Bot) load(ctx context.Context, mt model.MatchType) ([]model.MatchRecord, error) {
	ctx, cancel := b.withFetchTimeout(ctx)
	defer cancel()
	return b.state.Load(ctx, mt, b.fetcher.Matches)
}

func (b *Bot) render(chatID int64, sel state.Selection, records []model.MatchRecord) {
	res := presenter.Present(records, sel.Category, sel.MatchType)
	chunks := FormatResult(res, sel, b.loc)
	kb := Keyboard(sel)
	for i, text := range chunks {
		if i == len(chunks)-1 {
			b.send(chatID, text, &kb)
			continue
		}
		b.send(chatID, text, nil)
	}
}

func (b *Bot) handleTicker(ctx context.Context, chatID int64) {
	records, loaded := b.state.Matches(model.MatchUpcoming)
	if !loaded {
		var err error
		records, err = b.load(ctx, model.MatchUpcoming)
		if err != nil {
			b.log.Error("load matches", "match_type", model.MatchUpcoming, "chat_id", chatID, "error", err)
			b.reply(chatID, FormatFetchError(model.MatchUpcoming))
			return
		}
	}
	b.reply(chatID, presenter.Summarize(records))
}

func (b *Bot) handleScorecard(ctx context.Context, chatID int64, args string) {
	id, err := ParseIDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /scorecard <match_id>")
		return
	}

	ctx, cancel := b.withFetchTimeout(ctx)
	defer cancel()

	sc, err := b.fetcher.FetchScorecard(ctx, id)
	if err != nil {
		b.log.Error("load scorecard", "match_id", id, "chat_id", chatID, "error", err)
		b.reply(chatID, fmt.Sprintf("Failed to load scorecard for match #%d. Please try again later.", id))
		return
	}
	b.reply(chatID, FormatScorecard(sc))
}

func (b *Bot) handleInfo(ctx context.Context, chatID int64, args string) {
	id, err := ParseIDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /info <match_id>")
		return
	}

	ctx, cancel := b.withFetchTimeout(ctx)
	defer cancel()

	info, err := b.fetcher.FetchMatchInfo(ctx, id)
	if err != nil {
		b.log.Error("load match info", "match_id", id, "chat_id", chatID, "error", err)
		b.reply(chatID, fmt.Sprintf("Failed to load details for match #%d. Please try again later.", id))
		return
	}
	b.reply(chatID, FormatMatchInfo(info, b.loc))
}

func (b *Bot) handleCommentary(ctx context.Context, chatID int64, args string) {
	id, err := ParseIDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /commentary <match_id>")
		return
	}

	ctx, cancel := b.withFetchTimeout(ctx)
	defer cancel()

	c, err := b.fetcher.FetchCommentary(ctx, id)
	if err != nil {
		b.log.Error("load commentary", "match_id", id, "chat_id", chatID, "error", err)
		b.reply(chatID, fmt.Sprintf("Failed to load commentary for match #%d. Please try again later.", id))
		return
	}
	b.reply(chatID, FormatCommentary(c))
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64, args string) {
	c, err := ParseSubscribeArgs(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	sub, err := b.store.GetSubscriptionByChat(ctx, chatID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sub = &model.Subscription{ChatID: chatID, Category: c, IsActive: true}
		if err := b.store.CreateSubscription(ctx, sub); err != nil {
			b.reply(chatID, fmt.Sprintf("Error: %v", err))
			return
		}
	case err != nil:
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	default:
		sub.Category = c
		sub.IsActive = true
		if err := b.store.UpdateSubscription(ctx, sub); err != nil {
			b.reply(chatID, fmt.Sprintf("Error: %v", err))
			return
		}
	}

	b.log.Info("subscribed", "chat_id", chatID, "category", c)
	b.reply(chatID, fmt.Sprintf("Subscribed to %s live match updates.\nUse /unsubscribe to stop.", categoryLabels[c]))
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) {
	sub, err := b.store.GetSubscriptionByChat(ctx, chatID)
	if errors.Is(err, storage.ErrNotFound) {
		b.reply(chatID, "You are not subscribed.")
		return
	}
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if err := b.store.DeleteSubscription(ctx, sub.ID); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.log.Info("unsubscribed", "chat_id", chatID)
	b.reply(chatID, "Unsubscribed from live match updates.")
}
