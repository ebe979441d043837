package grid

// Component is a renderable cell value produced by a Generator.
type Component interface {
	View() string
}

// Generator builds the component shown in one column for a row.
// Generators are called on every render and must not call Refresh.
type Generator[T any] func(row T) Component

// FocusCoordinate is the logical position of a focused cell.
type FocusCoordinate[K comparable] struct {
	Row    K
	Column string
}

// Source is the read side a Surface renders from. View implements it.
type Source[T any, K comparable] interface {
	Len() int
	At(i int) T
	Key(row T) K
	Generator(columnID string) (Generator[T], bool)
}

// Surface is the rendering collaborator a View drives.
//
// Repaint re-evaluates every row and generator and leaves the surface
// without focus; View restores it. DataChanged must not move focus.
// ColumnChanged is called when an existing column gets a new generator;
// the surface must stop showing output of the previous one.
type Surface[T any, K comparable] interface {
	Bind(src Source[T, K])
	AddColumn(columnID string)
	HasColumn(columnID string) bool
	ColumnChanged(columnID string)
	Focused() (FocusCoordinate[K], bool)
	SetFocus(coord FocusCoordinate[K]) bool
	DataChanged(c Change)
	Repaint()
}
