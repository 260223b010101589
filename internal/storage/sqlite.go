package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"cricket_bot/internal/model"
	"cricket_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateSubscription inserts a new subscription and populates its ID and CreatedAt.
func (s *SQLite) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (chat_id, category, is_active, created_at) VALUES (?, ?, ?, ?)`,
		sub.ChatID, string(sub.Category), boolToInt(sub.IsActive), now,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	sub.ID = id
	sub.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// GetSubscription returns a single subscription by its ID.
func (s *SQLite) GetSubscription(ctx context.Context, id int64) (*model.Subscription, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, chat_id, category, is_active, created_at FROM subscriptions WHERE id = ?`, id,
	)
	return scanSubscription(row)
}

// GetSubscriptionByChat returns the subscription of a chat.
func (s *SQLite) GetSubscriptionByChat(ctx context.Context, chatID int64) (*model.Subscription, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, chat_id, category, is_active, created_at FROM subscriptions WHERE chat_id = ?`, chatID,
	)
	return scanSubscription(row)
}

// ListActiveSubscriptions returns all active subscriptions ordered by ID.
func (s *SQLite) ListActiveSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, category, is_active, created_at
		 FROM subscriptions WHERE is_active = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

// UpdateSubscription persists changes to an existing subscription.
func (s *SQLite) UpdateSubscription(ctx context.Context, sub *model.Subscription) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET category = ?, is_active = ? WHERE id = ?`,
		string(sub.Category), boolToInt(sub.IsActive), sub.ID,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update subscription %d: %w", sub.ID, ErrNotFound)
	}
	return nil
}

// DeleteSubscription removes a subscription and its delivery history.
func (s *SQLite) DeleteSubscription(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivered_updates WHERE subscription_id = ?`, id); err != nil {
		return fmt.Errorf("delete delivered_updates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return tx.Commit()
}

// MarkDelivered records that an update has been sent to a subscription.
func (s *SQLite) MarkDelivered(ctx context.Context, subscriptionID int64, key string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO delivered_updates (subscription_id, update_key, delivered_at) VALUES (?, ?, ?)`,
		subscriptionID, key, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	return nil
}

// IsDelivered checks whether an update has already been sent to a subscription.
func (s *SQLite) IsDelivered(ctx context.Context, subscriptionID int64, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM delivered_updates WHERE subscription_id = ? AND update_key = ?`,
		subscriptionID, key,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check delivered: %w", err)
	}
	return count > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSubscription(row scannable) (*model.Subscription, error) {
	var sub model.Subscription
	var category, created string
	var isActive int
	err := row.Scan(&sub.ID, &sub.ChatID, &category, &isActive, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	sub.Category = model.Category(category)
	sub.IsActive = isActive == 1
	sub.CreatedAt, _ = time.Parse(timeLayout, created)
	return &sub, nil
}
