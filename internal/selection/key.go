package selection

import "fmt"

// Key addresses one archived message in a result set that can span accounts.
// Message ids are only unique within their owning account, so the pair is
// the smallest unambiguous address.
type Key struct {
	AccountID int64
	MessageID int64
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.AccountID, k.MessageID)
}
