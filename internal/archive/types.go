package archive

import "fmt"

// Envelope is a reference to one archived message: metadata only, never
// content. IDs are unique only within their owning account.
type Envelope struct {
	ID            int64    `json:"id"`
	AccountID     int64    `json:"account_id"`
	MailboxID     int64    `json:"mailbox_id"`
	MessageID     string   `json:"message_id"`
	ThreadID      int64    `json:"thread_id"`
	Subject       string   `json:"subject"`
	From          string   `json:"from"`
	To            []string `json:"to"`
	Cc            []string `json:"cc"`
	Date          int64    `json:"date"`
	Size          int64    `json:"size"`
	HasAttachment bool     `json:"has_attachment"`
	Attachments   []string `json:"attachments"`
	Tags          []string `json:"tags"`
}

// EnvelopePage mirrors the server's paginated list/search response.
type EnvelopePage struct {
	CurrentPage int64      `json:"current_page"`
	PageSize    int64      `json:"page_size"`
	TotalItems  int64      `json:"total_items"`
	TotalPages  int64      `json:"total_pages"`
	Items       []Envelope `json:"items"`
}

// Account identifies one archived mail account.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Mailbox is one folder of an account, listed flat.
type Mailbox struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
}

// TagCount is one tag facet with its document count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// BulkActionRequest maps an account id to the ordered envelope ids a bulk
// action applies to. Integer map keys marshal as JSON strings, which is the
// account-id-as-string shape the server consumes.
type BulkActionRequest map[int64][]int64

// SearchFilter narrows a cross-account search. Zero fields are omitted.
type SearchFilter struct {
	Text          string   `json:"text,omitempty"`
	From          string   `json:"from,omitempty"`
	To            string   `json:"to,omitempty"`
	Since         int64    `json:"since,omitempty"`
	Before        int64    `json:"before,omitempty"`
	AccountID     int64    `json:"account_id,omitempty"`
	MailboxID     int64    `json:"mailbox_id,omitempty"`
	HasAttachment *bool    `json:"has_attachment,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type searchRequest struct {
	Filter   SearchFilter `json:"filter"`
	Page     int64        `json:"page"`
	PageSize int64        `json:"page_size"`
}

type updateTagsRequest struct {
	Updates BulkActionRequest `json:"updates"`
	Tags    []string          `json:"tags"`
}

type restoreRequest struct {
	MessageIDs []int64 `json:"message_ids"`
}

// APIError is the error payload the server returns for failed calls. The
// message, when present, is shown to the user verbatim.
type APIError struct {
	Message string `json:"message"`
	Code    uint32 `json:"code"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("archive: request failed with status %d", e.Status)
}
