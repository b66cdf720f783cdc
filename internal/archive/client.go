package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const apiPrefix = "/api/v1"

// Client talks to the archive server's REST API. It is safe for concurrent
// use; all methods issue exactly one HTTP call.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the server at baseURL, authenticating every
// request with the given bearer token.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   oauth2.NewClient(ctx, src),
	}
}

// ListMessages fetches one page of a mailbox for the given account.
func (c *Client) ListMessages(ctx context.Context, accountID, mailboxID, page, pageSize int64) (*EnvelopePage, error) {
	q := url.Values{}
	q.Set("mailbox_id", strconv.FormatInt(mailboxID, 10))
	q.Set("page", strconv.FormatInt(page, 10))
	q.Set("page_size", strconv.FormatInt(pageSize, 10))

	var out EnvelopePage
	path := fmt.Sprintf("/list-messages/%d", accountID)
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return &out, nil
}

// SearchMessages fetches one page of cross-account search results.
func (c *Client) SearchMessages(ctx context.Context, filter SearchFilter, page, pageSize int64) (*EnvelopePage, error) {
	var out EnvelopePage
	req := searchRequest{Filter: filter, Page: page, PageSize: pageSize}
	if err := c.do(ctx, http.MethodPost, "/search-messages", nil, req, &out); err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return &out, nil
}

// DeleteMessages deletes the grouped messages in one call. The server
// applies the request per account.
func (c *Client) DeleteMessages(ctx context.Context, req BulkActionRequest) error {
	if err := c.do(ctx, http.MethodPost, "/delete-messages", nil, req, nil); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

// UpdateTags replaces the tag list of the grouped messages in one call.
func (c *Client) UpdateTags(ctx context.Context, req BulkActionRequest, tags []string) error {
	body := updateTagsRequest{Updates: req, Tags: tags}
	if err := c.do(ctx, http.MethodPost, "/update-tags", nil, body, nil); err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}
	return nil
}

// RestoreMessages appends the given archived messages of one account back to
// their mailboxes on the mail server.
func (c *Client) RestoreMessages(ctx context.Context, accountID int64, messageIDs []int64) error {
	path := fmt.Sprintf("/restore-messages/%d", accountID)
	if err := c.do(ctx, http.MethodPost, path, nil, restoreRequest{MessageIDs: messageIDs}, nil); err != nil {
		return fmt.Errorf("failed to restore messages: %w", err)
	}
	return nil
}

// ListAccounts returns the minimal account list the user can read.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/minimal-account-list", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return out, nil
}

// ListMailboxes returns the flat mailbox list of one account.
func (c *Client) ListMailboxes(ctx context.Context, accountID int64) ([]Mailbox, error) {
	var out []Mailbox
	path := fmt.Sprintf("/list-mailboxes/%d", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list mailboxes: %w", err)
	}
	return out, nil
}

// ListTags returns every tag facet with its document count.
func (c *Client) ListTags(ctx context.Context) ([]TagCount, error) {
	var out []TagCount
	if err := c.do(ctx, http.MethodGet, "/all-tags", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr == nil && len(data) > 0 {
			// Best effort: a non-JSON body still yields the status fallback.
			_ = json.Unmarshal(data, apiErr)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
