package selection

// CheckState is the tri-state value of the header select-all checkbox.
type CheckState int

const (
	// Unchecked means nothing is selected.
	Unchecked CheckState = iota
	// Indeterminate means something is selected but the checked condition
	// does not hold.
	Indeterminate
	// Checked means the global count equals the visible row count and at
	// least one row is visible.
	Checked
)

func (c CheckState) String() string {
	switch c {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// Symbol renders the checkbox glyph used in list headers.
func (c CheckState) Symbol() string {
	switch c {
	case Checked:
		return "[x]"
	case Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

func headerState(count, visible int) CheckState {
	switch {
	case visible > 0 && count == visible:
		return Checked
	case count > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}
