package services

import (
	"context"
	"fmt"

	"github.com/arcmail/arctui/internal/archive"
)

// AccountServiceImpl implements AccountService on top of the archive client.
type AccountServiceImpl struct {
	client *archive.Client
}

// NewAccountService creates a new account service.
func NewAccountService(client *archive.Client) *AccountServiceImpl {
	return &AccountServiceImpl{client: client}
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]archive.Account, error) {
	return s.client.ListAccounts(ctx)
}

func (s *AccountServiceImpl) ListMailboxes(ctx context.Context, accountID int64) ([]archive.Mailbox, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("list mailboxes: %w", ErrNoAccount)
	}
	return s.client.ListMailboxes(ctx, accountID)
}
