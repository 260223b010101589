// Package scheduler keeps the live and upcoming lists fresh and notifies
// subscribed chats when a live match changes status.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cricket_bot/internal/bot"
	"cricket_bot/internal/filter"
	"cricket_bot/internal/model"
	"cricket_bot/internal/state"
	"cricket_bot/internal/storage"
)

// Sender is the interface for sending Telegram messages.
type Sender interface {
	SendMessage(chatID int64, text string)
}

// Counter records delivered notifications.
type Counter interface {
	NotificationSent()
}

// refreshed lists the match types polled on every tick.
var refreshed = []model.MatchType{model.MatchLive, model.MatchUpcoming}

// Scheduler periodically refreshes match lists and sends notifications.
type Scheduler struct {
	store   storage.Storage
	state   *state.Store
	load    state.Loader
	sender  Sender
	counter Counter
	log     *slog.Logger
	tick    time.Duration
	pause   time.Duration
}

// New creates a Scheduler that refreshes lists with load.
func New(store storage.Storage, st *state.Store, load state.Loader, sender Sender, log *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		state:  st,
		load:   load,
		sender: sender,
		log:    log,
		tick:   1 * time.Minute,
		// Rate limit: ~20 messages/sec max for Telegram
		pause: 50 * time.Millisecond,
	}
}

// SetTickInterval overrides the default 1-minute check interval.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// SetCounter sets the counter incremented for every sent notification.
func (s *Scheduler) SetCounter(c Counter) {
	s.counter = c
}

// Run starts the scheduler loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.checkAll(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAll(ctx)
		}
	}
}

func (s *Scheduler) checkAll(ctx context.Context) {
	for _, mt := range refreshed {
		if ctx.Err() != nil {
			return
		}
		records, err := s.state.Load(ctx, mt, s.load)
		if err != nil {
			s.log.Error("refresh matches", "match_type", mt, "error", err)
			continue
		}
		s.log.Debug("refreshed matches", "match_type", mt, "count", len(records))
	}

	s.notifyAll(ctx)
}

func (s *Scheduler) notifyAll(ctx context.Context) {
	live, loaded := s.state.Matches(model.MatchLive)
	if !loaded || len(live) == 0 {
		return
	}

	subs, err := s.store.ListActiveSubscriptions(ctx)
	if err != nil {
		s.log.Error("list subscriptions", "error", err)
		return
	}

	for _, sub := range subs {
		if ctx.Err() != nil {
			return
		}
		s.notify(ctx, sub, live)
	}
}

func (s *Scheduler) notify(ctx context.Context, sub model.Subscription, live []model.MatchRecord) {
	sent := 0
	for _, rec := range filter.Apply(live, sub.Category) {
		if rec.Status == "" {
			continue
		}
		key := updateKey(rec)
		delivered, err := s.store.IsDelivered(ctx, sub.ID, key)
		if err != nil {
			s.log.Error("check delivered", "subscription_id", sub.ID, "key", key, "error", err)
			continue
		}
		if delivered {
			continue
		}

		s.sender.SendMessage(sub.ChatID, bot.FormatNotification(rec))
		sent++
		if s.counter != nil {
			s.counter.NotificationSent()
		}

		if err := s.store.MarkDelivered(ctx, sub.ID, key); err != nil {
			s.log.Error("mark delivered", "subscription_id", sub.ID, "key", key, "error", err)
		}

		time.Sleep(s.pause)
	}

	if sent > 0 {
		s.log.Info("sent notifications", "chat_id", sub.ChatID, "category", sub.Category, "count", sent)
	}
}

// updateKey identifies one status of one match.
func updateKey(rec model.MatchRecord) string {
	return fmt.Sprintf("%d|%s", rec.ID, rec.Status)
}
