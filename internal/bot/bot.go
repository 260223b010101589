// Package bot renders match lists into Telegram chats and handles the
// commands and buttons that change what a chat is looking at.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cricket_bot/internal/config"
	"cricket_bot/internal/fetcher"
	"cricket_bot/internal/state"
	"cricket_bot/internal/storage"
)

// DefaultFetchTimeout bounds API calls made while handling an update. The
// update loop is sequential, so a slow call delays every chat.
const DefaultFetchTimeout = 10 * time.Second

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that renders matches and handles user commands.
type Bot struct {
	api     telegramAPI
	store   storage.Storage
	state   *state.Store
	cfg     *config.Config
	fetcher *fetcher.Fetcher
	loc     *time.Location
	log     *slog.Logger

	fetchTimeout time.Duration
}

// New creates a Bot with the given Telegram token and collaborators.
func New(token string, store storage.Storage, st *state.Store, f *fetcher.Fetcher, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		store:   store,
		state:   st,
		cfg:     cfg,
		fetcher: f,
		loc:     loc,
		log:     log,

		fetchTimeout: DefaultFetchTimeout,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				if !b.cfg.IsUserAllowed(update.CallbackQuery.From.ID) {
					continue
				}
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Access denied.")
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// SetFetchTimeout overrides DefaultFetchTimeout. Zero leaves only the
// fetcher's own timeout in place.
func (b *Bot) SetFetchTimeout(d time.Duration) {
	b.fetchTimeout = d
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	b.send(chatID, text, nil)
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

func (b *Bot) send(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(chatID)
	case "help":
		b.handleHelp(chatID)
	case cmdLive, cmdRecent, cmdUpcoming:
		b.handleTab(ctx, chatID, cmd)
	case cmdCategory:
		b.handleCategory(ctx, chatID, args)
	case "ticker":
		b.handleTicker(ctx, chatID)
	case "scorecard":
		b.handleScorecard(ctx, chatID, args)
	case "info":
		b.handleInfo(ctx, chatID, args)
	case "commentary":
		b.handleCommentary(ctx, chatID, args)
	case "subscribe":
		b.handleSubscribe(ctx, chatID, args)
	case "unsubscribe":
		b.handleUnsubscribe(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}
