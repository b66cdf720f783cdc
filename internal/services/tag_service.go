package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arcmail/arctui/internal/archive"
)

// tagPathPattern is the tag-path grammar: one or more slash-separated
// segments, each starting with a letter or digit. Tags are normalized to
// lower case without a leading slash before matching.
var tagPathPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*(/[a-z0-9][a-z0-9._-]*)*$`)

// TagServiceImpl implements TagService on top of the archive client.
type TagServiceImpl struct {
	client *archive.Client
}

// NewTagService creates a new tag service.
func NewTagService(client *archive.Client) *TagServiceImpl {
	return &TagServiceImpl{client: client}
}

func (s *TagServiceImpl) ListTags(ctx context.Context) ([]archive.TagCount, error) {
	return s.client.ListTags(ctx)
}

// UpdateTags validates and normalizes every tag, then dispatches one grouped
// update. For single-item edits the request holds exactly one account key
// mapped to exactly one id.
func (s *TagServiceImpl) UpdateTags(ctx context.Context, req archive.BulkActionRequest, tags []string) error {
	if err := validateRequest(req); err != nil {
		return fmt.Errorf("update tags: %w", err)
	}
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		n, err := s.NormalizeTag(tag)
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}
	return s.client.UpdateTags(ctx, req, normalized)
}

// NormalizeTag trims, lower-cases and strips one leading slash from raw,
// then checks it against the tag-path grammar. The normalized tag is the
// only form ever sent to the server or compared against envelope tag lists.
func (s *TagServiceImpl) NormalizeTag(raw string) (string, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	tag = strings.TrimPrefix(tag, "/")
	if tag == "" {
		return "", fmt.Errorf("tag cannot be empty: %w", ErrInvalidTag)
	}
	if !tagPathPattern.MatchString(tag) {
		return "", fmt.Errorf("tag %q does not match the tag-path grammar: %w", tag, ErrInvalidTag)
	}
	return tag, nil
}

// MergeTag appends candidate to tags unless it is already present. Merging a
// duplicate is a silent no-op: the original list is returned unchanged and
// the second value is false. Order is preserved; the candidate must already
// be normalized.
func (s *TagServiceImpl) MergeTag(tags []string, candidate string) ([]string, bool) {
	for _, t := range tags {
		if t == candidate {
			return tags, false
		}
	}
	out := make([]string, 0, len(tags)+1)
	out = append(out, tags...)
	out = append(out, candidate)
	return out, true
}
