// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"errors"

	"cricket_bot/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Storage is the interface for all persistence operations.
type Storage interface {
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	GetSubscription(ctx context.Context, id int64) (*model.Subscription, error)
	GetSubscriptionByChat(ctx context.Context, chatID int64) (*model.Subscription, error)
	ListActiveSubscriptions(ctx context.Context) ([]model.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, id int64) error

	MarkDelivered(ctx context.Context, subscriptionID int64, key string) error
	IsDelivered(ctx context.Context, subscriptionID int64, key string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}
