package grid

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupView(t *testing.T) (*View[string, string], *MockSurface[string, string]) {
	t.Helper()

	surface := NewMockSurface[string, string]("name")
	v := NewView[string](surface)
	require.NoError(t, v.SetRows([]string{"A", "B", "C"}))
	require.NoError(t, v.AddComponentColumn("c1", upper("g1")))
	return v, surface
}

func TestViewBindsSurface(t *testing.T) {
	v, surface := setupView(t)
	assert.Same(t, v, surface.src)
	assert.Same(t, surface, v.Surface())
	assert.Equal(t, []string{"A", "B", "C"}, v.Store().Rows())
}

func TestViewForwardsChanges(t *testing.T) {
	v, surface := setupView(t)
	surface.Changes = nil

	added, err := v.Add("D")
	require.NoError(t, err)
	require.True(t, added)
	ok, err := v.Remove("A")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := v.AddAll([]string{"E", "F"})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, v.SetRows([]string{"Z"}))

	assert.Equal(t, []Change{
		{Kind: ChangeInsert, Index: 3, Count: 1},
		{Kind: ChangeRemove, Index: 0, Count: 1},
		{Kind: ChangeAppend, Index: 3, Count: 2},
		{Kind: ChangeReset, Index: 0, Count: 1},
	}, surface.Changes)
	assert.Zero(t, surface.Repaints, "mutations must not run a full refresh")
}

func TestViewRefreshPreservesFocus(t *testing.T) {
	v, surface := setupView(t)
	surface.SetFocus(FocusCoordinate[string]{Row: "B", Column: "c1"})

	require.NoError(t, v.Refresh())

	coord, ok := surface.Focused()
	require.True(t, ok)
	assert.Equal(t, FocusCoordinate[string]{Row: "B", Column: "c1"}, coord)
	assert.Equal(t, 1, v.Stats().FocusRestores)
}

func TestViewRefreshDropsFocusForRemovedRow(t *testing.T) {
	var buf bytes.Buffer
	surface := NewMockSurface[string, string]()
	v := NewView[string](surface, WithLogger(log.New(&buf)))
	require.NoError(t, v.SetRows([]string{"A", "B", "C"}))
	require.NoError(t, v.AddComponentColumn("c1", upper("g1")))
	surface.SetFocus(FocusCoordinate[string]{Row: "B", Column: "c1"})

	_, err := v.Remove("B")
	require.NoError(t, err)
	require.NoError(t, v.Refresh())

	_, ok := surface.Focused()
	assert.False(t, ok)
	assert.Equal(t, 1, v.Stats().FocusDrops)
	assert.Contains(t, buf.String(), "focus dropped")
}

func TestViewRefreshDropsFocusForMissingColumn(t *testing.T) {
	v, surface := setupView(t)
	surface.SetFocus(FocusCoordinate[string]{Row: "A", Column: "gone"})

	require.NoError(t, v.Refresh())
	_, ok := surface.Focused()
	assert.False(t, ok)
}

func TestViewRefreshEmpty(t *testing.T) {
	surface := NewMockSurface[string, string]()
	v := NewView[string](surface)

	require.NoError(t, v.Refresh())
	_, ok := surface.Focused()
	assert.False(t, ok)
	assert.Equal(t, 1, surface.Repaints)
	assert.Empty(t, surface.Rendered)
}

func TestViewRefreshIdempotent(t *testing.T) {
	v, surface := setupView(t)

	require.NoError(t, v.Refresh())
	first := surface.Rendered
	require.NoError(t, v.Refresh())

	assert.Equal(t, first, surface.Rendered)
	assert.Equal(t, "g1:B", surface.Rendered["B"]["c1"])
}

func TestViewGeneratorOverwrite(t *testing.T) {
	v, surface := setupView(t)
	require.NoError(t, v.AddComponentColumn("c1", upper("g2")))

	require.NoError(t, v.Refresh())
	for _, row := range []string{"A", "B", "C"} {
		assert.Equal(t, "g2:"+row, surface.Rendered[row]["c1"])
	}
	assert.Equal(t, []string{"c1"}, v.Columns())
	assert.Equal(t, []string{"name", "c1"}, surface.columns, "column added once")
	assert.Equal(t, []string{"c1"}, surface.ColumnChanges)
}

func TestViewTakesOverSurfaceColumn(t *testing.T) {
	v, surface := setupView(t)
	require.NoError(t, v.AddComponentColumn("name", upper("n")))

	assert.Equal(t, []string{"name", "c1"}, surface.columns)
	assert.Equal(t, []string{"name"}, surface.ColumnChanges)
}

func TestViewUniqueReportsSkippedRows(t *testing.T) {
	surface := NewMockSurface[task, int]()
	v := NewKeyedView(func(t task) int { return t.ID }, surface, WithStoreOptions(Unique()))
	require.NoError(t, v.SetRows([]task{{1, "a"}}))

	added, err := v.Add(task{1, "dup"})
	require.NoError(t, err)
	assert.False(t, added)

	n, err := v.AddAll([]task{{1, "dup"}, {2, "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, v.Len())
}

func TestViewGeneratorsRunEveryRefresh(t *testing.T) {
	surface := NewMockSurface[string, string]()
	v := NewView[string](surface)
	require.NoError(t, v.SetRows([]string{"A", "B"}))

	calls := 0
	require.NoError(t, v.AddComponentColumn("n", func(row string) Component {
		calls++
		return label(row)
	}))

	require.NoError(t, v.Refresh())
	require.NoError(t, v.Refresh())
	assert.Equal(t, 4, calls)
}

func TestViewAddComponentColumnInvalid(t *testing.T) {
	v, _ := setupView(t)

	assert.ErrorIs(t, v.AddComponentColumn("", upper("x")), ErrInvalidArgument)
	assert.ErrorIs(t, v.AddComponentColumn("c2", nil), ErrInvalidArgument)
	assert.Equal(t, []string{"c1"}, v.Columns())
}

func TestViewRefreshReentrant(t *testing.T) {
	v, surface := setupView(t)

	var inner error
	surface.OnRepaint = func() { inner = v.Refresh() }

	require.NoError(t, v.Refresh())
	assert.ErrorIs(t, inner, ErrReentrantRefresh)
	assert.Equal(t, 1, surface.Repaints)
}

func TestViewKeyed(t *testing.T) {
	surface := NewMockSurface[task, int]()
	v := NewKeyedView(func(t task) int { return t.ID }, surface)
	require.NoError(t, v.SetRows([]task{{1, "a"}, {2, "b"}}))
	require.NoError(t, v.AddComponentColumn("title", func(t task) Component { return label(t.Title) }))
	surface.SetFocus(FocusCoordinate[int]{Row: 2, Column: "title"})

	// Replace row 2 with new field values; identity is unchanged.
	require.NoError(t, v.SetRows([]task{{1, "a"}, {2, "b2"}}))
	require.NoError(t, v.Refresh())

	coord, ok := surface.Focused()
	require.True(t, ok)
	assert.Equal(t, 2, coord.Row)
	assert.Equal(t, "b2", surface.Rendered[2]["title"])
}
