package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbosoft/greygoo/internal/trial"
)

func ids(w *World) []string {
	var out []string
	for _, d := range w.PotentialModifiers() {
		out = append(out, d.ID)
	}
	return out
}

func TestPotentialModifiers_LockedUntilPrerequisiteActive(t *testing.T) {
	w := newTestWorld(t, nil)
	assert.NotContains(t, ids(w), "B")
	assert.Contains(t, ids(w), "A")

	w = newTestWorld(t, &State{ActiveModifiers: []string{"A"}})
	assert.Contains(t, ids(w), "B")
	assert.NotContains(t, ids(w), "A", "active modifiers are not offered again")
	assert.NotContains(t, ids(w), "C", "C needs both A and B")
}

func TestUnlocked_IsMonotonic(t *testing.T) {
	w := newTestWorld(t, &State{ActiveModifiers: []string{"A"}})
	now := int64(1_000)

	require.True(t, w.Unlocked("B"))
	_, err := w.StartResearch("B", now)
	require.NoError(t, err)
	assert.True(t, w.Unlocked("B"))

	for _, step := range []int64{3600, 7200, 86400} {
		now += step
		_, err := w.CatchUp(now)
		require.NoError(t, err)
		assert.True(t, w.Unlocked("B"))
	}
	assert.True(t, w.HasModifier("B"))
	assert.True(t, w.Unlocked("C"))
}

func TestStartResearch_Outcomes(t *testing.T) {
	w := newTestWorld(t, &State{
		ActiveModifiers:     []string{"A"},
		ModifiersInProgress: []Research{{ID: "fast", CompleteAt: 99_999}},
	})

	_, err := w.StartResearch("nope", 0)
	assert.ErrorIs(t, err, ErrUnknownModifier)

	_, err = w.StartResearch("A", 0)
	assert.ErrorIs(t, err, ErrAlreadyActive)

	_, err = w.StartResearch("fast", 0)
	assert.ErrorIs(t, err, ErrAlreadyResearching)

	_, err = w.StartResearch("C", 0)
	require.ErrorIs(t, err, ErrLocked)
	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, []string{"B"}, locked.Missing)

	assert.Len(t, w.State().ModifiersInProgress, 1, "rejected requests leave state alone")
}

func TestStartResearch_SchedulesCompletion(t *testing.T) {
	const T = int64(1_700_000_000)

	w := newTestWorld(t, nil)
	r, err := w.StartResearch("A", T)
	require.NoError(t, err)
	assert.Equal(t, T+3600, r.CompleteAt)

	early := NewWorld(w.State().Clone(), w.Catalog(), Options{})
	done := early.CatchUpResearch(T + 3599)
	assert.Empty(t, done)
	assert.False(t, early.HasModifier("A"))
	assert.Len(t, early.State().ModifiersInProgress, 1)

	late := NewWorld(w.State().Clone(), w.Catalog(), Options{})
	done = late.CatchUpResearch(T + 3601)
	assert.Equal(t, []string{"A"}, done)
	assert.True(t, late.HasModifier("A"))
	assert.Empty(t, late.State().ModifiersInProgress)
}

func TestStartTrial(t *testing.T) {
	w := newTestWorld(t, nil)
	tr, err := w.StartTrial(500)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr.BotMass)
	assert.Equal(t, int64(500), tr.StartTS)

	_, err = w.StartTrial(600)
	assert.ErrorIs(t, err, trial.ErrTrialInProgress)
	assert.Equal(t, int64(500), w.Trial().StartTS)
}

func TestStopTrial(t *testing.T) {
	w := newTestWorld(t, nil)
	_, err := w.StopTrial(0)
	assert.ErrorIs(t, err, trial.ErrNoTrial)

	_, err = w.StartTrial(100)
	require.NoError(t, err)
	rep, err := w.StopTrial(400)
	require.NoError(t, err)
	assert.Equal(t, int64(300), rep.Elapsed)
	assert.Equal(t, 1.0, rep.Mass)
	assert.Nil(t, w.Trial())
}

func TestNewWorld_DeduplicatesActive(t *testing.T) {
	w := newTestWorld(t, &State{ActiveModifiers: []string{"A", "A", "ghost"}})
	assert.Equal(t, []string{"A", "ghost"}, w.State().ActiveModifiers)
}

func TestSuggest(t *testing.T) {
	w := newTestWorld(t, nil)
	got, ok := w.Suggest("fastt")
	require.True(t, ok)
	assert.Equal(t, "fast", got)

	got, ok = w.Suggest("CAL")
	require.True(t, ok)
	assert.Equal(t, "calm", got)

	_, ok = w.Suggest("entirely unrelated")
	assert.False(t, ok)
}
