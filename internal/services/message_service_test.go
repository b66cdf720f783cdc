package services

import (
	"context"
	"testing"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/stretchr/testify/assert"
)

func TestMessageService_DeleteMessages_ValidationErrors(t *testing.T) {
	service := NewMessageService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  archive.BulkActionRequest
		want error
	}{
		{"nil_request", nil, ErrEmptySelection},
		{"empty_request", archive.BulkActionRequest{}, ErrEmptySelection},
		{"account_without_ids", archive.BulkActionRequest{1: {}}, ErrEmptySelection},
		{"zero_account", archive.BulkActionRequest{0: {1}}, ErrNoAccount},
		{"negative_account", archive.BulkActionRequest{-3: {1}}, ErrNoAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.DeleteMessages(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestMessageService_RestoreMessages_ValidationErrors(t *testing.T) {
	service := NewMessageService(nil)
	ctx := context.Background()

	t.Run("no_account", func(t *testing.T) {
		err := service.RestoreMessages(ctx, 0, []int64{1})
		assert.ErrorIs(t, err, ErrNoAccount)
	})

	t.Run("empty_ids", func(t *testing.T) {
		err := service.RestoreMessages(ctx, 1, nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("over_restore_limit", func(t *testing.T) {
		ids := make([]int64, maxRestoreCount+1)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		err := service.RestoreMessages(ctx, 1, ids)
		assert.ErrorIs(t, err, ErrTooManyMessages)
		assert.Contains(t, err.Error(), "max 100")
	})
}

func TestMessageService_PageValidation(t *testing.T) {
	service := NewMessageService(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int64
		pageSize int64
	}{
		{"zero_page", 0, 50},
		{"zero_page_size", 1, 0},
		{"negative_page", -1, 50},
		{"page_size_over_cap", 1, 501},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListMessages(ctx, 1, 1, tt.page, tt.pageSize)
			assert.ErrorIs(t, err, ErrInvalidPage)

			_, err = service.SearchMessages(ctx, archive.SearchFilter{}, tt.page, tt.pageSize)
			assert.ErrorIs(t, err, ErrInvalidPage)
		})
	}
}

func TestMessageService_ListMessages_RequiresAccount(t *testing.T) {
	service := NewMessageService(nil)
	_, err := service.ListMessages(context.Background(), 0, 1, 1, 50)
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrEmptySelection))
	assert.True(t, IsValidationError(ErrInvalidTag))
	assert.True(t, IsValidationError(ErrNoAccount))
	assert.True(t, IsValidationError(ErrTooManyMessages))
	assert.True(t, IsValidationError(ErrInvalidPage))
	assert.False(t, IsValidationError(assert.AnError))
	assert.False(t, IsValidationError(nil))
}
