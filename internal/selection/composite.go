package selection

import "sort"

// CompositeSet is the cross-account selection container: a mapping from
// account id to a non-empty set of message ids. An account entry whose set
// drains to empty is pruned immediately; callers never observe a mapped
// empty set, because the presence of an account key also sizes the
// cross-account total.
//
// Like Set, all mutating operations are copy-on-write and return a new
// instance. The outer map is always copied; inner sets are shared until an
// operation touches them.
type CompositeSet struct {
	accounts map[int64]map[int64]struct{}
}

// NewCompositeSet returns an empty cross-account selection.
func NewCompositeSet() *CompositeSet {
	return &CompositeSet{accounts: map[int64]map[int64]struct{}{}}
}

// Single returns a container holding exactly one key. Used to stage a
// right-click style single delete independently of the ambient selection.
func Single(k Key) *CompositeSet {
	return NewCompositeSet().Union([]Key{k})
}

// FromIDs builds a container from one account's ids, adapting a single-scope
// selection for dispatch.
func FromIDs(accountID int64, ids []int64) *CompositeSet {
	keys := make([]Key, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, Key{AccountID: accountID, MessageID: id})
	}
	return NewCompositeSet().Union(keys)
}

// Toggle flips membership of k and returns the updated container.
func (c *CompositeSet) Toggle(k Key) *CompositeSet {
	next := c.cloneOuter()
	inner, ok := next.accounts[k.AccountID]
	if ok && contains(inner, k.MessageID) {
		inner = cloneInner(inner)
		delete(inner, k.MessageID)
		if len(inner) == 0 {
			delete(next.accounts, k.AccountID)
		} else {
			next.accounts[k.AccountID] = inner
		}
		return next
	}
	inner = cloneInner(inner)
	inner[k.MessageID] = struct{}{}
	next.accounts[k.AccountID] = inner
	return next
}

// Contains reports whether k is selected.
func (c *CompositeSet) Contains(k Key) bool {
	inner, ok := c.accounts[k.AccountID]
	return ok && contains(inner, k.MessageID)
}

// Count is the global selection size: the sum of every per-account set.
func (c *CompositeSet) Count() int {
	n := 0
	for _, inner := range c.accounts {
		n += len(inner)
	}
	return n
}

// IsEmpty reports whether nothing is selected.
func (c *CompositeSet) IsEmpty() bool {
	return len(c.accounts) == 0
}

// Accounts returns the account ids with at least one selected message,
// ascending.
func (c *CompositeSet) Accounts() []int64 {
	out := make([]int64, 0, len(c.accounts))
	for id := range c.accounts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IDs returns the selected message ids of one account in ascending order.
func (c *CompositeSet) IDs(accountID int64) []int64 {
	inner := c.accounts[accountID]
	out := make([]int64, 0, len(inner))
	for id := range inner {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Keys returns every selected key, grouped by ascending account then id.
func (c *CompositeSet) Keys() []Key {
	out := make([]Key, 0, c.Count())
	for _, accountID := range c.Accounts() {
		for _, id := range c.IDs(accountID) {
			out = append(out, Key{AccountID: accountID, MessageID: id})
		}
	}
	return out
}

// Grouped renders the selection as an account id → ordered message ids
// mapping, the shape bulk actions are dispatched with.
func (c *CompositeSet) Grouped() map[int64][]int64 {
	out := make(map[int64][]int64, len(c.accounts))
	for accountID := range c.accounts {
		out[accountID] = c.IDs(accountID)
	}
	return out
}

// Union returns a new container with every given key selected.
func (c *CompositeSet) Union(keys []Key) *CompositeSet {
	next := c.cloneOuter()
	touched := map[int64]bool{}
	for _, k := range keys {
		if !touched[k.AccountID] {
			next.accounts[k.AccountID] = cloneInner(next.accounts[k.AccountID])
			touched[k.AccountID] = true
		}
		next.accounts[k.AccountID][k.MessageID] = struct{}{}
	}
	return next
}

// Subtract returns a new container with every key of other removed, pruning
// account entries that drain to empty.
func (c *CompositeSet) Subtract(other *CompositeSet) *CompositeSet {
	next := c.cloneOuter()
	for accountID, removed := range other.accounts {
		inner, ok := next.accounts[accountID]
		if !ok {
			continue
		}
		inner = cloneInner(inner)
		for id := range removed {
			delete(inner, id)
		}
		if len(inner) == 0 {
			delete(next.accounts, accountID)
		} else {
			next.accounts[accountID] = inner
		}
	}
	return next
}

// ToggleAll implements the select-all control for the currently rendered
// page. See Set.ToggleAll for the deliberate global-count comparison and the
// cross-page consequence it carries.
func (c *CompositeSet) ToggleAll(visible []Key) *CompositeSet {
	if len(visible) > 0 && c.Count() == len(visible) {
		return NewCompositeSet()
	}
	return c.Union(visible)
}

// HeaderState returns the tri-state value for the select-all checkbox given
// the number of visible rows.
func (c *CompositeSet) HeaderState(visible int) CheckState {
	return headerState(c.Count(), visible)
}

func (c *CompositeSet) cloneOuter() *CompositeSet {
	next := &CompositeSet{accounts: make(map[int64]map[int64]struct{}, len(c.accounts)+1)}
	for accountID, inner := range c.accounts {
		next.accounts[accountID] = inner
	}
	return next
}

func cloneInner(inner map[int64]struct{}) map[int64]struct{} {
	out := make(map[int64]struct{}, len(inner)+1)
	for id := range inner {
		out[id] = struct{}{}
	}
	return out
}

func contains(inner map[int64]struct{}, id int64) bool {
	_, ok := inner[id]
	return ok
}
