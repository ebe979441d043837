// Package grid binds a typed row collection to a tabular rendering surface.
//
// A View owns a RowStore and a set of component columns. Mutations are
// forwarded to the surface as incremental or bulk data changes; Refresh
// repaints everything and puts focus back on the same row and column if
// both still exist.
//
// Views are not safe for concurrent mutation. Drive them from one goroutine
// (the UI loop). Stats may be read from any goroutine.
package grid

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Option configures a View.
type Option func(*viewOptions)

type viewOptions struct {
	logger *log.Logger
	store  []StoreOption
}

// WithLogger sets the logger used for informational events such as a
// focus that could not be restored.
func WithLogger(l *log.Logger) Option {
	return func(o *viewOptions) {
		o.logger = l
	}
}

// WithStoreOptions passes options to the view's RowStore.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(o *viewOptions) {
		o.store = append(o.store, opts...)
	}
}

// Stats is a snapshot of view activity.
type Stats struct {
	Rows           int
	Columns        int
	Refreshes      int
	FocusRestores  int
	FocusDrops     int
	DataChanges    int
	LastChangeKind ChangeKind
}

// View composes a RowStore with a Surface and a map of component columns.
type View[T any, K comparable] struct {
	store      *RowStore[T, K]
	surface    Surface[T, K]
	generators map[string]Generator[T]
	columns    []string
	logger     *log.Logger
	refreshing bool

	mu    sync.Mutex
	stats Stats
}

// NewView creates an empty view whose rows are their own identity.
func NewView[T comparable](surface Surface[T, T], opts ...Option) *View[T, T] {
	return NewKeyedView(func(row T) T { return row }, surface, opts...)
}

// NewKeyedView creates an empty view whose row identity is key(row).
func NewKeyedView[T any, K comparable](key func(T) K, surface Surface[T, K], opts ...Option) *View[T, K] {
	if surface == nil {
		panic("grid: NewKeyedView called with nil surface")
	}
	var o viewOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	v := &View[T, K]{
		store:      NewKeyedRowStore(key, o.store...),
		surface:    surface,
		generators: make(map[string]Generator[T]),
		logger:     o.logger.WithPrefix("grid"),
	}
	v.store.SetListener(v.onChange)
	surface.Bind(v)
	return v
}

// Store returns the underlying row store. Mutating it directly still
// notifies the surface.
func (v *View[T, K]) Store() *RowStore[T, K] {
	return v.store
}

// Surface returns the rendering surface.
func (v *View[T, K]) Surface() Surface[T, K] {
	return v.surface
}

// Add appends a row. It reports false when a unique store skipped it.
func (v *View[T, K]) Add(row T) (bool, error) {
	return v.store.Add(row)
}

// Remove deletes the first row with row's identity and reports whether
// one was found.
func (v *View[T, K]) Remove(row T) (bool, error) {
	return v.store.Remove(row)
}

// AddAll appends rows as one change and returns how many were appended.
func (v *View[T, K]) AddAll(rows []T) (int, error) {
	return v.store.AddAll(rows)
}

// SetRows replaces all rows as one change.
func (v *View[T, K]) SetRows(rows []T) error {
	return v.store.SetRows(rows)
}

// Rows returns a copy of the current rows.
func (v *View[T, K]) Rows() []T {
	return v.store.Rows()
}

// AddComponentColumn renders columnID with generator. A later call for
// the same id replaces the generator, and the surface re-renders the
// column with it.
func (v *View[T, K]) AddComponentColumn(columnID string, generator Generator[T]) error {
	if columnID == "" {
		return fmt.Errorf("%w: empty column id", ErrInvalidArgument)
	}
	if generator == nil {
		return fmt.Errorf("%w: nil generator for column %q", ErrInvalidArgument, columnID)
	}

	if _, exists := v.generators[columnID]; !exists {
		v.columns = append(v.columns, columnID)
	}
	v.generators[columnID] = generator
	if v.surface.HasColumn(columnID) {
		v.surface.ColumnChanged(columnID)
	} else {
		v.surface.AddColumn(columnID)
	}

	v.mu.Lock()
	v.stats.Columns = len(v.columns)
	v.mu.Unlock()
	return nil
}

// Columns returns the component column ids in registration order.
func (v *View[T, K]) Columns() []string {
	out := make([]string, len(v.columns))
	copy(out, v.columns)
	return out
}

// Refresh repaints every row and component column, then restores focus
// to the previously focused row and column when both still exist.
// A focus that cannot be restored is dropped and logged.
func (v *View[T, K]) Refresh() error {
	if v.refreshing {
		return ErrReentrantRefresh
	}
	v.refreshing = true
	defer func() { v.refreshing = false }()

	coord, focused := v.surface.Focused()
	v.surface.Repaint()

	restored := false
	if focused && v.store.Contains(coord.Row) && v.surface.HasColumn(coord.Column) {
		restored = v.surface.SetFocus(coord)
	}
	if focused && !restored {
		v.logger.Info("focus dropped on refresh", "row", coord.Row, "column", coord.Column)
	}

	v.mu.Lock()
	v.stats.Refreshes++
	if restored {
		v.stats.FocusRestores++
	} else if focused {
		v.stats.FocusDrops++
	}
	v.mu.Unlock()
	return nil
}

// Stats returns a snapshot of view counters.
func (v *View[T, K]) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// --- Source ---

// Len implements Source.
func (v *View[T, K]) Len() int {
	return v.store.Len()
}

// At implements Source.
func (v *View[T, K]) At(i int) T {
	return v.store.At(i)
}

// Key implements Source.
func (v *View[T, K]) Key(row T) K {
	return v.store.Key(row)
}

// Generator implements Source.
func (v *View[T, K]) Generator(columnID string) (Generator[T], bool) {
	g, ok := v.generators[columnID]
	return g, ok
}

func (v *View[T, K]) onChange(c Change) {
	v.surface.DataChanged(c)

	v.mu.Lock()
	v.stats.Rows = v.store.Len()
	v.stats.DataChanges++
	v.stats.LastChangeKind = c.Kind
	v.mu.Unlock()
}

var _ Source[int, int] = (*View[int, int])(nil)
