package services

import (
	"context"

	"github.com/arcmail/arctui/internal/archive"
)

// MessageService handles envelope listing and the bulk actions the views
// dispatch. Every bulk method issues exactly one outbound call carrying the
// full grouped payload; per-account application is the server's concern.
type MessageService interface {
	ListMessages(ctx context.Context, accountID, mailboxID, page, pageSize int64) (*archive.EnvelopePage, error)
	SearchMessages(ctx context.Context, filter archive.SearchFilter, page, pageSize int64) (*archive.EnvelopePage, error)
	DeleteMessages(ctx context.Context, req archive.BulkActionRequest) error
	RestoreMessages(ctx context.Context, accountID int64, messageIDs []int64) error
}

// TagService handles tag listing, candidate validation and tag updates.
type TagService interface {
	ListTags(ctx context.Context) ([]archive.TagCount, error)
	UpdateTags(ctx context.Context, req archive.BulkActionRequest, tags []string) error
	NormalizeTag(raw string) (string, error)
	MergeTag(tags []string, candidate string) ([]string, bool)
}

// AccountService resolves accounts and mailboxes for the pickers.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]archive.Account, error)
	ListMailboxes(ctx context.Context, accountID int64) ([]archive.Mailbox, error)
}

// HistoryService persists search history and recently used tags locally.
// Selection state is deliberately not persisted anywhere.
type HistoryService interface {
	SearchHistory(ctx context.Context, limit int) ([]string, error)
	SaveSearch(ctx context.Context, query string) error
	RecentTags(ctx context.Context, limit int) ([]string, error)
	TouchTag(ctx context.Context, tag string) error
}
