package grid

import (
	"fmt"
	"reflect"
)

// StoreOption configures a RowStore.
type StoreOption func(*storeOptions)

type storeOptions struct {
	unique bool
}

// Unique makes Add and AddAll skip rows whose key is already present.
func Unique() StoreOption {
	return func(o *storeOptions) {
		o.unique = true
	}
}

// RowStore is an insertion-ordered collection of rows of one type.
// Row identity is the key returned by the store's key function.
// Duplicate keys are allowed unless the store was built with Unique.
type RowStore[T any, K comparable] struct {
	rows     []T
	key      func(T) K
	unique   bool
	listener Listener
}

// NewRowStore creates a store whose rows are their own identity.
func NewRowStore[T comparable](opts ...StoreOption) *RowStore[T, T] {
	return NewKeyedRowStore(func(row T) T { return row }, opts...)
}

// NewKeyedRowStore creates a store using key to derive row identity.
func NewKeyedRowStore[T any, K comparable](key func(T) K, opts ...StoreOption) *RowStore[T, K] {
	if key == nil {
		panic("grid: NewKeyedRowStore called with nil key function")
	}
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &RowStore[T, K]{
		key:    key,
		unique: o.unique,
	}
}

// SetListener installs the function notified after every change.
// A nil listener disables notification.
func (s *RowStore[T, K]) SetListener(l Listener) {
	s.listener = l
}

// Add appends row. It reports false when the row was skipped because the
// store is unique and the key already exists.
func (s *RowStore[T, K]) Add(row T) (bool, error) {
	if err := checkRow(row); err != nil {
		return false, err
	}
	if s.unique && s.IndexOf(s.key(row)) >= 0 {
		return false, nil
	}
	s.rows = append(s.rows, row)
	s.notify(Change{Kind: ChangeInsert, Index: len(s.rows) - 1, Count: 1})
	return true, nil
}

// Remove deletes the first row with the same key as row.
// It reports false if no such row exists.
func (s *RowStore[T, K]) Remove(row T) (bool, error) {
	if err := checkRow(row); err != nil {
		return false, err
	}
	i := s.IndexOf(s.key(row))
	if i < 0 {
		return false, nil
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	s.notify(Change{Kind: ChangeRemove, Index: i, Count: 1})
	return true, nil
}

// AddAll appends rows in order as a single change and returns how many
// were appended.
func (s *RowStore[T, K]) AddAll(rows []T) (int, error) {
	for i, row := range rows {
		if err := checkRow(row); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
	}

	start := len(s.rows)
	if !s.unique {
		s.rows = append(s.rows, rows...)
	} else {
		seen := make(map[K]struct{}, len(s.rows)+len(rows))
		for _, row := range s.rows {
			seen[s.key(row)] = struct{}{}
		}
		for _, row := range rows {
			k := s.key(row)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			s.rows = append(s.rows, row)
		}
	}

	added := len(s.rows) - start
	if added > 0 {
		s.notify(Change{Kind: ChangeAppend, Index: start, Count: added})
	}
	return added, nil
}

// SetRows replaces the whole collection with rows as a single change.
// The slice is copied. Under Unique, later duplicates are dropped.
func (s *RowStore[T, K]) SetRows(rows []T) error {
	for i, row := range rows {
		if err := checkRow(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	next := make([]T, 0, len(rows))
	if !s.unique {
		next = append(next, rows...)
	} else {
		seen := make(map[K]struct{}, len(rows))
		for _, row := range rows {
			k := s.key(row)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			next = append(next, row)
		}
	}

	s.rows = next
	s.notify(Change{Kind: ChangeReset, Index: 0, Count: len(next)})
	return nil
}

// Len returns the number of rows.
func (s *RowStore[T, K]) Len() int {
	return len(s.rows)
}

// At returns the row at index i. It panics if i is out of range.
func (s *RowStore[T, K]) At(i int) T {
	return s.rows[i]
}

// Rows returns a copy of the rows in display order.
func (s *RowStore[T, K]) Rows() []T {
	out := make([]T, len(s.rows))
	copy(out, s.rows)
	return out
}

// Key returns the identity of row.
func (s *RowStore[T, K]) Key(row T) K {
	return s.key(row)
}

// IndexOf returns the position of the first row with key k, or -1.
func (s *RowStore[T, K]) IndexOf(k K) int {
	for i, row := range s.rows {
		if s.key(row) == k {
			return i
		}
	}
	return -1
}

// Contains reports whether a row with key k is present.
func (s *RowStore[T, K]) Contains(k K) bool {
	return s.IndexOf(k) >= 0
}

// Get returns the first row with key k.
func (s *RowStore[T, K]) Get(k K) (T, bool) {
	if i := s.IndexOf(k); i >= 0 {
		return s.rows[i], true
	}
	var zero T
	return zero, false
}

func (s *RowStore[T, K]) notify(c Change) {
	if s.listener != nil {
		s.listener(c)
	}
}

// checkRow rejects nil rows of nilable kinds.
func checkRow[T any](row T) error {
	if isNil(row) {
		return fmt.Errorf("%w: nil row", ErrInvalidArgument)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
