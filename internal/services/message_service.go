package services

import (
	"context"
	"fmt"

	"github.com/arcmail/arctui/internal/archive"
)

const (
	// maxRestoreCount mirrors the server-side limit so oversized requests
	// fail locally with the same bound.
	maxRestoreCount = 100
	// maxPageSize mirrors the server-side search page cap.
	maxPageSize = 500
)

// MessageServiceImpl implements MessageService on top of the archive client.
type MessageServiceImpl struct {
	client *archive.Client
}

// NewMessageService creates a new message service.
func NewMessageService(client *archive.Client) *MessageServiceImpl {
	return &MessageServiceImpl{client: client}
}

func (s *MessageServiceImpl) ListMessages(ctx context.Context, accountID, mailboxID, page, pageSize int64) (*archive.EnvelopePage, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("list messages: %w", ErrNoAccount)
	}
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	return s.client.ListMessages(ctx, accountID, mailboxID, page, pageSize)
}

func (s *MessageServiceImpl) SearchMessages(ctx context.Context, filter archive.SearchFilter, page, pageSize int64) (*archive.EnvelopePage, error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	return s.client.SearchMessages(ctx, filter, page, pageSize)
}

// DeleteMessages dispatches one grouped delete, regardless of how many
// accounts the request spans.
func (s *MessageServiceImpl) DeleteMessages(ctx context.Context, req archive.BulkActionRequest) error {
	if err := validateRequest(req); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return s.client.DeleteMessages(ctx, req)
}

// RestoreMessages dispatches one restore for a single account. The restore
// view is single-account by construction, so composite addressing is never
// needed here.
func (s *MessageServiceImpl) RestoreMessages(ctx context.Context, accountID int64, messageIDs []int64) error {
	if accountID <= 0 {
		return fmt.Errorf("restore messages: %w", ErrNoAccount)
	}
	if len(messageIDs) == 0 {
		return fmt.Errorf("restore messages: %w", ErrEmptySelection)
	}
	if len(messageIDs) > maxRestoreCount {
		return fmt.Errorf("too many messages to restore: %d (max %d): %w",
			len(messageIDs), maxRestoreCount, ErrTooManyMessages)
	}
	return s.client.RestoreMessages(ctx, accountID, messageIDs)
}

func validateRequest(req archive.BulkActionRequest) error {
	if len(req) == 0 {
		return ErrEmptySelection
	}
	for accountID, ids := range req {
		if accountID <= 0 {
			return ErrNoAccount
		}
		if len(ids) == 0 {
			// An account key mapped to no ids means the selection container
			// invariant was broken upstream.
			return fmt.Errorf("account %d has no message ids: %w", accountID, ErrEmptySelection)
		}
	}
	return nil
}

func validatePage(page, pageSize int64) error {
	if page <= 0 || pageSize <= 0 {
		return fmt.Errorf("page and page_size must be greater than 0: %w", ErrInvalidPage)
	}
	if pageSize > maxPageSize {
		return fmt.Errorf("page_size exceeds the maximum of %d: %w", maxPageSize, ErrInvalidPage)
	}
	return nil
}
