// Package state holds the match lists and per-chat selections shared by the
// bot and the scheduler.
package state

import (
	"context"
	"sync"

	"cricket_bot/internal/model"
)

// Selection is the tab and category a chat is looking at.
type Selection struct {
	MatchType model.MatchType
	Category  model.Category
}

// DefaultSelection is used for chats that have not chosen anything yet.
var DefaultSelection = Selection{MatchType: model.MatchLive, Category: model.CategoryAll}

// Ticket identifies a fetch started with Begin.
type Ticket uint64

type list struct {
	records   []model.MatchRecord
	loaded    bool
	issued    Ticket
	committed Ticket
}

// Store keeps the three match lists and the chat selections.
// Lists are replaced wholesale; a response older than the last committed
// one for the same match type is discarded.
type Store struct {
	mu         sync.RWMutex
	lists      map[model.MatchType]*list
	selections map[int64]Selection
}

// New creates an empty Store.
func New() *Store {
	s := &Store{
		lists:      make(map[model.MatchType]*list, len(model.MatchTypes)),
		selections: make(map[int64]Selection),
	}
	for _, mt := range model.MatchTypes {
		s.lists[mt] = &list{}
	}
	return s
}

func (s *Store) list(mt model.MatchType) *list {
	l, ok := s.lists[mt]
	if !ok {
		l = &list{}
		s.lists[mt] = l
	}
	return l
}

// Begin issues a ticket for a fetch of the given match type.
func (s *Store) Begin(mt model.MatchType) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.list(mt)
	l.issued++
	return l.issued
}

// Commit replaces the list if no newer fetch has committed already.
// It reports whether the records were stored.
func (s *Store) Commit(mt model.MatchType, t Ticket, records []model.MatchRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.list(mt)
	if t <= l.committed {
		return false
	}
	l.committed = t
	l.records = records
	l.loaded = true
	return true
}

// Loader fetches a fresh list for a match type.
type Loader func(ctx context.Context, mt model.MatchType) ([]model.MatchRecord, error)

// Load fetches a list with fn and commits it. If a newer fetch committed in
// the meantime, its list is returned instead of the stale one.
func (s *Store) Load(ctx context.Context, mt model.MatchType, fn Loader) ([]model.MatchRecord, error) {
	t := s.Begin(mt)
	records, err := fn(ctx, mt)
	if err != nil {
		return nil, err
	}
	if !s.Commit(mt, t, records) {
		records, _ = s.Matches(mt)
	}
	return records, nil
}

// Matches returns the current list and whether it was ever loaded.
// The returned slice must not be modified.
func (s *Store) Matches(mt model.MatchType) ([]model.MatchRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[mt]
	if !ok {
		return nil, false
	}
	return l.records, l.loaded
}

// Selection returns the chat's selection, or DefaultSelection.
func (s *Store) Selection(chatID int64) Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sel, ok := s.selections[chatID]; ok {
		return sel
	}
	return DefaultSelection
}

// SelectMatchType switches the chat's active tab.
func (s *Store) SelectMatchType(chatID int64, mt model.MatchType) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.selectionLocked(chatID)
	sel.MatchType = mt
	s.selections[chatID] = sel
	return sel
}

// SelectCategory switches the chat's category filter.
func (s *Store) SelectCategory(chatID int64, c model.Category) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.selectionLocked(chatID)
	sel.Category = c
	s.selections[chatID] = sel
	return sel
}

func (s *Store) selectionLocked(chatID int64) Selection {
	if sel, ok := s.selections[chatID]; ok {
		return sel
	}
	return DefaultSelection
}
