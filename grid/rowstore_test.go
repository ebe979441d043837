package grid

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type task struct {
	ID    int
	Title string
}

func TestRowStoreAddRemove(t *testing.T) {
	s := NewRowStore[string]()
	var changes []Change
	s.SetListener(func(c Change) { changes = append(changes, c) })

	for _, r := range []string{"a", "b", "c"} {
		ok, err := s.Add(r)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.Rows())

	ok, err := s.Remove("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, s.Rows())

	ok, err = s.Remove("zzz")
	require.NoError(t, err)
	assert.False(t, ok, "removing an absent row reports not found")

	assert.Equal(t, []Change{
		{Kind: ChangeInsert, Index: 0, Count: 1},
		{Kind: ChangeInsert, Index: 1, Count: 1},
		{Kind: ChangeInsert, Index: 2, Count: 1},
		{Kind: ChangeRemove, Index: 1, Count: 1},
	}, changes)
}

func TestRowStoreRemoveFirstMatch(t *testing.T) {
	s := NewRowStore[string]()
	_, _ = s.AddAll([]string{"x", "y", "x"})

	ok, err := s.Remove("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"y", "x"}, s.Rows())
}

func TestRowStoreSetRowsSingleChange(t *testing.T) {
	s := NewRowStore[int]()
	_, _ = s.AddAll([]int{9, 8, 7})

	var changes []Change
	s.SetListener(func(c Change) { changes = append(changes, c) })

	in := []int{1, 2, 3, 4}
	require.NoError(t, s.SetRows(in))
	assert.Equal(t, []int{1, 2, 3, 4}, s.Rows())
	assert.Equal(t, []Change{{Kind: ChangeReset, Index: 0, Count: 4}}, changes)

	in[0] = 100
	assert.Equal(t, 1, s.At(0), "SetRows must copy its input")
}

func TestRowStoreAddAllSingleChange(t *testing.T) {
	s := NewRowStore[int]()
	_, _ = s.Add(1)

	var changes []Change
	s.SetListener(func(c Change) { changes = append(changes, c) })

	n, err := s.AddAll([]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []Change{{Kind: ChangeAppend, Index: 1, Count: 2}}, changes)

	n, err = s.AddAll(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, changes, 1, "empty AddAll emits nothing")
}

func TestRowStoreRejectsNilRows(t *testing.T) {
	s := NewKeyedRowStore(func(t *task) int { return t.ID })
	_, _ = s.Add(&task{ID: 1})

	notified := 0
	s.SetListener(func(Change) { notified++ })

	_, err := s.Add(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Remove(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.AddAll([]*task{{ID: 2}, nil})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.SetRows([]*task{{ID: 3}, nil})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, 1, s.Len(), "failed calls must not mutate")
	assert.Zero(t, notified)
}

func TestRowStoreKeyedIdentity(t *testing.T) {
	s := NewKeyedRowStore(func(t task) int { return t.ID })
	_, _ = s.AddAll([]task{{1, "one"}, {2, "two"}})

	// Same key, different fields: identity wins.
	ok, err := s.Remove(task{ID: 1, Title: "renamed"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", got.Title)
	assert.False(t, s.Contains(1))
}

func TestRowStoreUnique(t *testing.T) {
	s := NewKeyedRowStore(func(t task) int { return t.ID }, Unique())

	ok, _ := s.Add(task{1, "a"})
	assert.True(t, ok)
	ok, err := s.Add(task{1, "b"})
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.AddAll([]task{{1, "c"}, {2, "d"}, {2, "e"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.SetRows([]task{{5, "x"}, {5, "y"}, {6, "z"}}))
	assert.Equal(t, []task{{5, "x"}, {6, "z"}}, s.Rows())
}

// Random operation sequences must match a plain slice model.
func TestRowStoreMatchesReferenceList(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		s := NewRowStore[int]()
		var ref []int

		for step := 0; step < 200; step++ {
			v := rng.Intn(20)
			switch rng.Intn(4) {
			case 0, 1:
				_, err := s.Add(v)
				require.NoError(t, err)
				ref = append(ref, v)
			case 2:
				ok, err := s.Remove(v)
				require.NoError(t, err)
				i := slices.Index(ref, v)
				require.Equal(t, i >= 0, ok)
				if i >= 0 {
					ref = slices.Delete(ref, i, i+1)
				}
			case 3:
				next := make([]int, rng.Intn(6))
				for i := range next {
					next[i] = rng.Intn(20)
				}
				require.NoError(t, s.SetRows(next))
				ref = slices.Clone(next)
			}
			require.Equal(t, len(ref), s.Len())
			if len(ref) > 0 {
				require.Equal(t, ref, s.Rows(), "round %d step %d", round, step)
			}
		}
	}
}
