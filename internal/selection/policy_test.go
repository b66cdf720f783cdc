package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_ToggleAll_SelectsVisiblePage(t *testing.T) {
	s := NewSet()
	s = s.ToggleAll([]int64{10, 11})

	assert.Equal(t, 2, s.Count())
	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(11))
	assert.Equal(t, Checked, s.HeaderState(2))
}

func TestSet_ToggleAll_ClearsWhenFullySelected(t *testing.T) {
	s := NewSet().ToggleAll([]int64{10, 11})
	s = s.ToggleAll([]int64{10, 11})
	assert.True(t, s.IsEmpty())
	assert.Equal(t, Unchecked, s.HeaderState(2))
}

func TestSet_ToggleAll_UnionsIntoPartialSelection(t *testing.T) {
	s := NewSet().Toggle(99) // from another page
	s = s.ToggleAll([]int64{10, 11})

	assert.Equal(t, 3, s.Count())
	assert.True(t, s.Contains(99))
}

// A selection of N items made on another page satisfies the global-count
// comparison when the current page also shows N rows, so select-all clears
// everything instead of adding the page. This pins the observed behavior of
// the web console; do not "fix" it here.
func TestSet_ToggleAll_CrossPageCountCollisionClearsAll(t *testing.T) {
	s := NewSet().Union([]int64{98, 99}) // two items selected on page A

	// Page B shows two different rows; global count == visible length.
	s = s.ToggleAll([]int64{10, 11})

	assert.True(t, s.IsEmpty(), "select-all must clear the entire selection, page A included")
}

func TestCompositeSet_ToggleAll_CrossPageCountCollisionClearsAll(t *testing.T) {
	c := NewCompositeSet().Union([]Key{{1, 98}, {2, 99}})

	c = c.ToggleAll([]Key{{1, 10}, {3, 11}})

	assert.True(t, c.IsEmpty())
}

func TestCompositeSet_ToggleAll_Union(t *testing.T) {
	c := NewCompositeSet().Toggle(Key{9, 1})
	c = c.ToggleAll([]Key{{1, 10}, {2, 10}})

	assert.Equal(t, 3, c.Count())
	assert.True(t, c.Contains(Key{9, 1}))
	assert.Equal(t, Indeterminate, c.HeaderState(2))
}

func TestToggleAll_EmptyVisibleIsNoClear(t *testing.T) {
	s := NewSet()
	assert.True(t, s.ToggleAll(nil).IsEmpty())

	// count()==0==len(visible) must not count as "fully selected".
	withSel := NewSet().Toggle(1)
	assert.Equal(t, 1, withSel.ToggleAll(nil).Count())
}

func TestHeaderState(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		visible int
		want    CheckState
	}{
		{"empty", 0, 5, Unchecked},
		{"partial", 2, 5, Indeterminate},
		{"full", 5, 5, Checked},
		{"no_rows", 0, 0, Unchecked},
		{"selection_but_no_rows", 3, 0, Indeterminate},
		{"more_selected_than_visible", 7, 5, Indeterminate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, headerState(tt.count, tt.visible))
		})
	}
}

func TestCheckState_Symbol(t *testing.T) {
	assert.Equal(t, "[x]", Checked.Symbol())
	assert.Equal(t, "[-]", Indeterminate.Symbol())
	assert.Equal(t, "[ ]", Unchecked.Symbol())
}
