package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/trial"
)

func TestFixedScheduler(t *testing.T) {
	s := FixedScheduler{Offset: DefaultEventOffset, Label: DefaultEventLabel}
	off, label := s.NextEvent(trial.Trial{StartTS: 5, LastUpdateTS: 50})
	assert.Equal(t, int64(1_000_000), off)
	assert.Equal(t, "foo", label)
}

func TestCatalogScheduler(t *testing.T) {
	s := CatalogScheduler{
		Events:   []catalog.Event{{After: 100, Label: "first"}, {After: 500, Label: "second"}},
		Fallback: FixedScheduler{Offset: 1000, Label: "later"},
	}

	off, label := s.NextEvent(trial.Trial{StartTS: 0, LastUpdateTS: 0})
	assert.Equal(t, int64(100), off)
	assert.Equal(t, "first", label)

	off, label = s.NextEvent(trial.Trial{StartTS: 0, LastUpdateTS: 100})
	assert.Equal(t, int64(400), off)
	assert.Equal(t, "second", label)

	off, label = s.NextEvent(trial.Trial{StartTS: 0, LastUpdateTS: 500})
	assert.Equal(t, int64(1000), off)
	assert.Equal(t, "later", label)
}

func TestCatchUp_FiresCatalogEventsInOrder(t *testing.T) {
	cat, err := catalog.Parse([]byte(`{
	  "world_mass": 1e6, "tau": 300,
	  "events": [{"after": "2h", "label": "census"}, {"after": "30m", "label": "rumour"}],
	  "modifiers": {}
	}`), catalog.FormatJSON)
	require.NoError(t, err)

	w := NewWorld(nil, cat, Options{})
	_, err = w.StartTrial(0)
	require.NoError(t, err)

	rep, err := w.CatchUp(3 * 3600)
	require.NoError(t, err)
	assert.Equal(t, []FiredEvent{{Label: "rumour", TS: 1800}, {Label: "census", TS: 7200}}, rep.Fired)
	assert.Equal(t, int64(3*3600), w.Trial().LastUpdateTS)

	rep, err = w.CatchUp(3 * 3600)
	require.NoError(t, err)
	assert.Empty(t, rep.Fired)
	assert.Len(t, w.State().FiredEvents, 2)
}

func TestCatalog_RejectsEventsAtTheSameInstant(t *testing.T) {
	_, err := catalog.Parse([]byte(`{
	  "world_mass": 1e6, "tau": 300,
	  "events": [{"after": "1h", "label": "a"}, {"after": "60m", "label": "b"}],
	  "modifiers": {}
	}`), catalog.FormatJSON)
	require.ErrorIs(t, err, catalog.ErrContent)
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestCatchUp_FiresEveryCatalogEvent(t *testing.T) {
	cat, err := catalog.Parse([]byte(`{
	  "world_mass": 1e6, "tau": 300,
	  "events": [{"after": "1h", "label": "a"}, {"after": "61m", "label": "b"}],
	  "modifiers": {}
	}`), catalog.FormatJSON)
	require.NoError(t, err)

	w := NewWorld(nil, cat, Options{})
	_, err = w.StartTrial(0)
	require.NoError(t, err)

	rep, err := w.CatchUp(7200)
	require.NoError(t, err)
	assert.Equal(t, []FiredEvent{{Label: "a", TS: 3600}, {Label: "b", TS: 3660}}, rep.Fired)
}
