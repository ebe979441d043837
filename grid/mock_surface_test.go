package grid

import "fmt"

type label string

func (l label) View() string { return string(l) }

// MockSurface implements Surface for testing.
type MockSurface[T any, K comparable] struct {
	src     Source[T, K]
	columns []string

	focus    FocusCoordinate[K]
	hasFocus bool

	// Captured calls
	Changes       []Change
	ColumnChanges []string
	Repaints      int
	Rendered      map[K]map[string]string
	OnRepaint     func()
}

func NewMockSurface[T any, K comparable](columns ...string) *MockSurface[T, K] {
	return &MockSurface[T, K]{columns: columns}
}

func (m *MockSurface[T, K]) Bind(src Source[T, K]) { m.src = src }

func (m *MockSurface[T, K]) AddColumn(id string) { m.columns = append(m.columns, id) }

func (m *MockSurface[T, K]) HasColumn(id string) bool {
	for _, c := range m.columns {
		if c == id {
			return true
		}
	}
	return false
}

func (m *MockSurface[T, K]) ColumnChanged(id string) {
	m.ColumnChanges = append(m.ColumnChanges, id)
}

func (m *MockSurface[T, K]) Focused() (FocusCoordinate[K], bool) {
	return m.focus, m.hasFocus
}

func (m *MockSurface[T, K]) SetFocus(c FocusCoordinate[K]) bool {
	m.focus, m.hasFocus = c, true
	return true
}

func (m *MockSurface[T, K]) DataChanged(c Change) { m.Changes = append(m.Changes, c) }

func (m *MockSurface[T, K]) Repaint() {
	m.Repaints++
	m.hasFocus = false
	m.focus = FocusCoordinate[K]{}
	m.Rendered = make(map[K]map[string]string)
	for i := 0; i < m.src.Len(); i++ {
		row := m.src.At(i)
		cells := make(map[string]string)
		for _, col := range m.columns {
			if g, ok := m.src.Generator(col); ok {
				cells[col] = g(row).View()
			}
		}
		m.Rendered[m.src.Key(row)] = cells
	}
	if m.OnRepaint != nil {
		m.OnRepaint()
	}
}

func upper(prefix string) Generator[string] {
	return func(row string) Component {
		return label(fmt.Sprintf("%s:%s", prefix, row))
	}
}
