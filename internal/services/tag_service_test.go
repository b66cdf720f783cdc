package services

import (
	"context"
	"testing"

	"github.com/arcmail/arctui/internal/archive"
	"github.com/stretchr/testify/assert"
)

func TestTagService_NormalizeTag_Valid(t *testing.T) {
	service := NewTagService(nil)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "work", "work"},
		{"path", "finance/invoices", "finance/invoices"},
		{"mixed_case_lowered", "Finance/Invoices", "finance/invoices"},
		{"surrounding_whitespace", "  work  ", "work"},
		{"leading_slash_normalized", "/finance/invoices", "finance/invoices"},
		{"digits_and_separators", "2024/q1_reports.v2", "2024/q1_reports.v2"},
		{"hyphenated", "follow-up", "follow-up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizeTag(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagService_NormalizeTag_Invalid(t *testing.T) {
	service := NewTagService(nil)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"bare_slash", "/"},
		{"empty_segment", "a//b"},
		{"trailing_slash", "a/b/"},
		{"segment_starts_with_separator", "a/.b"},
		{"inner_whitespace", "my tag"},
		{"unicode_punctuation", "tag!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NormalizeTag(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidTag)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestTagService_MergeTag(t *testing.T) {
	service := NewTagService(nil)

	tags := []string{"work", "finance/invoices"}

	merged, added := service.MergeTag(tags, "personal")
	assert.True(t, added)
	assert.Equal(t, []string{"work", "finance/invoices", "personal"}, merged)

	// Merging an existing tag is a silent no-op, not a duplicate entry.
	same, added := service.MergeTag(tags, "work")
	assert.False(t, added)
	assert.Equal(t, []string{"work", "finance/invoices"}, same)
	assert.Len(t, same, 2)
}

func TestTagService_MergeTag_DoesNotMutateInput(t *testing.T) {
	service := NewTagService(nil)

	tags := make([]string, 0, 4)
	tags = append(tags, "a", "b")
	merged, _ := service.MergeTag(tags, "c")

	assert.Equal(t, []string{"a", "b"}, tags)
	assert.Equal(t, []string{"a", "b", "c"}, merged)
}

func TestTagService_UpdateTags_ValidationErrors(t *testing.T) {
	service := NewTagService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  archive.BulkActionRequest
		tags []string
		want error
	}{
		{"empty_request", archive.BulkActionRequest{}, []string{"work"}, ErrEmptySelection},
		{"account_without_ids", archive.BulkActionRequest{1: {}}, []string{"work"}, ErrEmptySelection},
		{"zero_account", archive.BulkActionRequest{0: {1}}, []string{"work"}, ErrNoAccount},
		{"invalid_tag", archive.BulkActionRequest{1: {10}}, []string{"bad tag!"}, ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.UpdateTags(ctx, tt.req, tt.tags)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
