package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_StartsIdle(t *testing.T) {
	c := NewCoordinator()
	assert.IsType(t, Idle{}, c.State())
	assert.True(t, c.Staging().IsEmpty())
	assert.False(t, c.InFlight())
}

func TestCoordinator_StageSingleIgnoresAmbientSelection(t *testing.T) {
	ambient := NewCompositeSet().Toggle(Key{1, 10}).Toggle(Key{1, 11})
	c := NewCoordinator()

	require.NoError(t, c.StageSingle(ActionDelete, Key{1, 10}))
	require.NoError(t, c.OpenConfirm())

	_, staged, err := c.Begin()
	require.NoError(t, err)

	// Only the staged key is dispatched, even though (1,11) is selected.
	assert.Equal(t, map[int64][]int64{1: {10}}, staged.Grouped())
	assert.Equal(t, 2, ambient.Count(), "ambient selection must be undisturbed")
}

func TestCoordinator_StageBulkStagesLiveSelectionVerbatim(t *testing.T) {
	sel := NewCompositeSet().Toggle(Key{1, 10}).Toggle(Key{2, 20})
	c := NewCoordinator()

	require.NoError(t, c.StageBulk(ActionDelete, sel))
	assert.Equal(t, sel.Grouped(), c.Staging().Grouped())
}

func TestCoordinator_StageBulkRejectsEmptySelection(t *testing.T) {
	c := NewCoordinator()
	assert.ErrorIs(t, c.StageBulk(ActionDelete, NewCompositeSet()), ErrNothingStaged)
	assert.ErrorIs(t, c.StageBulk(ActionDelete, nil), ErrNothingStaged)
}

func TestCoordinator_CancelDropsStagingOnly(t *testing.T) {
	sel := NewCompositeSet().Toggle(Key{1, 10})
	c := NewCoordinator()
	require.NoError(t, c.StageBulk(ActionDelete, sel))
	require.NoError(t, c.OpenConfirm())

	require.NoError(t, c.Cancel())

	assert.IsType(t, Idle{}, c.State())
	assert.True(t, c.Staging().IsEmpty())
	assert.Equal(t, 1, sel.Count(), "cancel must not touch the ambient selection")
}

func TestCoordinator_SuccessfulDispatchDrainsExactlyStagedKeys(t *testing.T) {
	ambient := NewCompositeSet().
		Toggle(Key{1, 10}).
		Toggle(Key{1, 11}).
		Toggle(Key{2, 10})
	c := NewCoordinator()

	require.NoError(t, c.StageSingle(ActionDelete, Key{1, 10}))
	require.NoError(t, c.OpenConfirm())
	_, _, err := c.Begin()
	require.NoError(t, err)

	drained := c.Finish(nil)
	require.NotNil(t, drained)

	ambient = ambient.Subtract(drained)
	assert.Equal(t, 2, ambient.Count())
	assert.False(t, ambient.Contains(Key{1, 10}))
	assert.True(t, ambient.Contains(Key{1, 11}))

	assert.IsType(t, ClosedSuccess{}, c.State())
	assert.True(t, c.Staging().IsEmpty())
}

func TestCoordinator_FailedDispatchPreservesStagingForRetry(t *testing.T) {
	ambient := NewCompositeSet().Toggle(Key{1, 10}).Toggle(Key{1, 11})
	c := NewCoordinator()

	require.NoError(t, c.StageBulk(ActionDelete, ambient))
	require.NoError(t, c.OpenConfirm())
	_, _, err := c.Begin()
	require.NoError(t, err)

	backendErr := errors.New("index writer unavailable")
	assert.Nil(t, c.Finish(backendErr))

	// Failure: staging non-empty, ambient untouched, error kept verbatim.
	assert.Equal(t, 2, c.Staging().Count())
	assert.Equal(t, 2, ambient.Count())
	assert.Equal(t, backendErr, c.Err())

	// Retry with the same staging succeeds and drains both sides.
	_, staged, err := c.Begin()
	require.NoError(t, err)
	assert.Equal(t, ambient.Grouped(), staged.Grouped())

	drained := c.Finish(nil)
	require.NotNil(t, drained)
	ambient = ambient.Subtract(drained)
	assert.True(t, ambient.IsEmpty())
	assert.True(t, c.Staging().IsEmpty())
}

func TestCoordinator_RejectsConcurrentDispatch(t *testing.T) {
	c := NewCoordinator()
	require.NoError(t, c.StageSingle(ActionDelete, Key{1, 10}))
	require.NoError(t, c.OpenConfirm())
	_, _, err := c.Begin()
	require.NoError(t, err)

	_, _, err = c.Begin()
	assert.ErrorIs(t, err, ErrDispatchInFlight)
	assert.ErrorIs(t, c.Cancel(), ErrDispatchInFlight)
	assert.ErrorIs(t, c.StageSingle(ActionDelete, Key{1, 11}), ErrDispatchInFlight)
}

func TestCoordinator_OpenConfirmRequiresStaging(t *testing.T) {
	c := NewCoordinator()
	assert.ErrorIs(t, c.OpenConfirm(), ErrNothingStaged)

	_, _, err := c.Begin()
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestCoordinator_FinishOutsideDispatchIsNoOp(t *testing.T) {
	c := NewCoordinator()
	assert.Nil(t, c.Finish(nil))
	assert.IsType(t, Idle{}, c.State())
}

func TestCoordinator_RestageReplacesStaging(t *testing.T) {
	c := NewCoordinator()
	require.NoError(t, c.StageSingle(ActionDelete, Key{1, 10}))
	require.NoError(t, c.StageSingle(ActionRestore, Key{2, 20}))

	action, ok := c.Action()
	require.True(t, ok)
	assert.Equal(t, ActionRestore, action)
	assert.Equal(t, map[int64][]int64{2: {20}}, c.Staging().Grouped())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "delete", ActionDelete.String())
	assert.Equal(t, "tag-update", ActionTagUpdate.String())
	assert.Equal(t, "restore", ActionRestore.String())
}
