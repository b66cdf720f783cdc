package services

import (
	"context"

	"github.com/arcmail/arctui/internal/db"
)

// HistoryServiceImpl implements HistoryService on the local SQLite store.
// A nil store degrades to an in-memory no-op so the app runs without a
// writable data directory.
type HistoryServiceImpl struct {
	store *db.Store
}

// NewHistoryService creates a new history service.
func NewHistoryService(store *db.Store) *HistoryServiceImpl {
	return &HistoryServiceImpl{store: store}
}

func (s *HistoryServiceImpl) SearchHistory(ctx context.Context, limit int) ([]string, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.SearchHistory(ctx, limit)
}

func (s *HistoryServiceImpl) SaveSearch(ctx context.Context, query string) error {
	if s.store == nil {
		return nil
	}
	return s.store.SaveSearch(ctx, query)
}

func (s *HistoryServiceImpl) RecentTags(ctx context.Context, limit int) ([]string, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.RecentTags(ctx, limit)
}

func (s *HistoryServiceImpl) TouchTag(ctx context.Context, tag string) error {
	if s.store == nil {
		return nil
	}
	return s.store.TouchTag(ctx, tag)
}
