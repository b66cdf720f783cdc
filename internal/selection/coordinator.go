package selection

import "errors"

// Action is the outbound operation a staged set is destined for.
type Action int

const (
	ActionDelete Action = iota
	ActionTagUpdate
	ActionRestore
)

func (a Action) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionTagUpdate:
		return "tag-update"
	case ActionRestore:
		return "restore"
	default:
		return "unknown"
	}
}

var (
	// ErrNothingStaged is returned when a transition needs staged items and
	// there are none.
	ErrNothingStaged = errors.New("nothing staged")
	// ErrDispatchInFlight is returned when a transition is attempted while a
	// dispatch for the same dialog is still running.
	ErrDispatchInFlight = errors.New("dispatch already in flight")
)

// DialogState is the lifecycle state of one confirmation dialog instance,
// modeled as a tagged union: exactly one variant is active at a time, and
// each variant carries only the data valid in that state. Staging is
// guaranteed empty only in Idle and ClosedSuccess.
type DialogState interface {
	dialogState()
}

// Idle is the resting state: no items staged, no dialog open.
type Idle struct{}

// Staged holds the item(s) pending confirmation, before the dialog opens.
type Staged struct {
	Action  Action
	Staging *CompositeSet
}

// AwaitingConfirm means the confirmation dialog is open.
type AwaitingConfirm struct {
	Action  Action
	Staging *CompositeSet
}

// Dispatching means the outbound call is in flight; re-submission of this
// dialog is rejected until it completes.
type Dispatching struct {
	Action  Action
	Staging *CompositeSet
}

// ClosedSuccess means the dispatch succeeded and staging was drained.
type ClosedSuccess struct{}

// StagedError means the dispatch failed; staging is preserved so the user
// can retry without re-selecting, and Err carries the backend message.
type StagedError struct {
	Action  Action
	Staging *CompositeSet
	Err     error
}

func (Idle) dialogState()            {}
func (Staged) dialogState()          {}
func (AwaitingConfirm) dialogState() {}
func (Dispatching) dialogState()     {}
func (ClosedSuccess) dialogState()   {}
func (StagedError) dialogState()     {}

// Coordinator owns the staging set and the dialog lifecycle for one view.
// Every view instance gets its own coordinator, so an in-flight dispatch
// here never blocks selection edits elsewhere. All methods must be called
// from the UI goroutine; the one asynchronous boundary is the dispatch call
// between Begin and Finish.
type Coordinator struct {
	state DialogState
}

// NewCoordinator returns a coordinator in the Idle state.
func NewCoordinator() *Coordinator {
	return &Coordinator{state: Idle{}}
}

// State returns the current dialog state variant.
func (c *Coordinator) State() DialogState {
	return c.state
}

// Staging returns the currently staged set, or an empty set when the state
// carries none.
func (c *Coordinator) Staging() *CompositeSet {
	switch s := c.state.(type) {
	case Staged:
		return s.Staging
	case AwaitingConfirm:
		return s.Staging
	case Dispatching:
		return s.Staging
	case StagedError:
		return s.Staging
	default:
		return NewCompositeSet()
	}
}

// Action returns the staged action kind and whether anything is staged.
func (c *Coordinator) Action() (Action, bool) {
	switch s := c.state.(type) {
	case Staged:
		return s.Action, true
	case AwaitingConfirm:
		return s.Action, true
	case Dispatching:
		return s.Action, true
	case StagedError:
		return s.Action, true
	default:
		return 0, false
	}
}

// Err returns the last dispatch error when the dialog is in the
// staged-with-error state.
func (c *Coordinator) Err() error {
	if s, ok := c.state.(StagedError); ok {
		return s.Err
	}
	return nil
}

// InFlight reports whether a dispatch is currently running.
func (c *Coordinator) InFlight() bool {
	_, ok := c.state.(Dispatching)
	return ok
}

// StageSingle replaces the entire staging set with exactly one entry,
// independent of the ambient selection. A single right-click delete must not
// disturb an unrelated multi-select in progress.
func (c *Coordinator) StageSingle(action Action, k Key) error {
	return c.stage(action, Single(k))
}

// StageBulk stages the live selection verbatim. The containers are
// copy-on-write, so holding the reference is exactly the selection at the
// moment of staging and can never drift ahead of it.
func (c *Coordinator) StageBulk(action Action, sel *CompositeSet) error {
	if sel == nil || sel.IsEmpty() {
		return ErrNothingStaged
	}
	return c.stage(action, sel)
}

func (c *Coordinator) stage(action Action, staging *CompositeSet) error {
	if c.InFlight() {
		return ErrDispatchInFlight
	}
	c.state = Staged{Action: action, Staging: staging}
	return nil
}

// OpenConfirm opens the confirmation dialog for the staged items.
func (c *Coordinator) OpenConfirm() error {
	s, ok := c.state.(Staged)
	if !ok {
		if c.InFlight() {
			return ErrDispatchInFlight
		}
		return ErrNothingStaged
	}
	c.state = AwaitingConfirm{Action: s.Action, Staging: s.Staging}
	return nil
}

// Begin moves the dialog into the dispatching state and returns the staged
// set for the outbound call. Valid from awaiting-confirmation and from a
// failed dispatch (retry); a second Begin while in flight is rejected.
func (c *Coordinator) Begin() (Action, *CompositeSet, error) {
	switch s := c.state.(type) {
	case AwaitingConfirm:
		c.state = Dispatching{Action: s.Action, Staging: s.Staging}
		return s.Action, s.Staging, nil
	case StagedError:
		c.state = Dispatching{Action: s.Action, Staging: s.Staging}
		return s.Action, s.Staging, nil
	case Dispatching:
		return 0, nil, ErrDispatchInFlight
	default:
		return 0, nil, ErrNothingStaged
	}
}

// Finish records the dispatch outcome. On success the dialog closes, staging
// is drained, and the drained set is returned so the caller removes exactly
// those keys from the ambient selection. On failure staging is preserved for
// retry and nil is returned. Finish outside the dispatching state is a no-op.
func (c *Coordinator) Finish(err error) *CompositeSet {
	s, ok := c.state.(Dispatching)
	if !ok {
		return nil
	}
	if err != nil {
		c.state = StagedError{Action: s.Action, Staging: s.Staging, Err: err}
		return nil
	}
	c.state = ClosedSuccess{}
	return s.Staging
}

// Cancel closes the dialog without dispatching: staging is dropped, the
// ambient selection is untouched, and no half-applied state can remain.
// Cancelling while a dispatch is in flight is rejected.
func (c *Coordinator) Cancel() error {
	if c.InFlight() {
		return ErrDispatchInFlight
	}
	c.state = Idle{}
	return nil
}
