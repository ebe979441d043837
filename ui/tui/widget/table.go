package widget

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/componentgrid/grid"
	"github.com/drake/componentgrid/text"
	"github.com/drake/componentgrid/ui/style"
)

// Compile-time check that Table implements Widget and grid.Surface
var (
	_ Widget                 = (*Table[int, int])(nil)
	_ grid.Surface[int, int] = (*Table[int, int])(nil)
)

const (
	defaultMaxColumnWidth = 24
	columnGap             = "  "
)

// Column describes one table column. Value is set for property columns;
// component columns leave it nil and render through the bound source's
// generator for the same ID.
type Column[T any] struct {
	ID    string
	Title string
	Width int // 0 sizes to content, capped at the table's max column width
	Value func(row T) string
}

// TextColumn returns a property column.
func TextColumn[T any](id, title string, value func(row T) string) Column[T] {
	return Column[T]{ID: id, Title: title, Value: value}
}

// Table is a terminal grid that implements grid.Surface.
//
// It keeps a snapshot of rendered cell text. Data changes patch the
// snapshot; Repaint rebuilds it. Focus is held as a row key and column
// ID, so it survives data changes but is cleared by Repaint.
type Table[T any, K comparable] struct {
	src     grid.Source[T, K]
	columns []Column[T]

	keys  []K
	cells [][]string

	focus   grid.FocusCoordinate[K]
	focused bool
	anchor  int // last known index of the focused row
	offset  int

	width          int
	height         int
	maxColumnWidth int
	styles         style.Styles
	keymap         KeyMap
}

// NewTable creates a table with the given property columns.
func NewTable[T any, K comparable](styles style.Styles, columns ...Column[T]) *Table[T, K] {
	return &Table[T, K]{
		columns:        slices.Clone(columns),
		maxColumnWidth: defaultMaxColumnWidth,
		styles:         styles,
		keymap:         DefaultKeyMap(),
	}
}

// SetKeyMap replaces the focus movement bindings.
func (t *Table[T, K]) SetKeyMap(km KeyMap) {
	t.keymap = km
}

// KeyMap returns the focus movement bindings.
func (t *Table[T, K]) KeyMap() KeyMap {
	return t.keymap
}

// SetMaxColumnWidth caps auto-sized columns.
func (t *Table[T, K]) SetMaxColumnWidth(w int) {
	if w > 0 {
		t.maxColumnWidth = w
	}
}

// SetColumnTitle sets the header of an existing column.
func (t *Table[T, K]) SetColumnTitle(id, title string) {
	if i := t.columnIndex(id); i >= 0 {
		t.columns[i].Title = title
	}
}

// SetColumnWidth fixes the width of an existing column. 0 restores auto.
func (t *Table[T, K]) SetColumnWidth(id string, width int) {
	if i := t.columnIndex(id); i >= 0 {
		t.columns[i].Width = width
	}
}

// --- grid.Surface ---

// Bind implements grid.Surface.
func (t *Table[T, K]) Bind(src grid.Source[T, K]) {
	t.src = src
	t.rebuild()
}

// AddColumn implements grid.Surface. The new column is rendered for the
// current rows right away.
func (t *Table[T, K]) AddColumn(columnID string) {
	if t.HasColumn(columnID) {
		return
	}
	t.columns = append(t.columns, Column[T]{ID: columnID, Title: columnID})
	col := t.columns[len(t.columns)-1]
	for i := range t.cells {
		t.cells[i] = append(t.cells[i], t.renderCell(col, t.src.At(i)))
	}
}

// ColumnChanged implements grid.Surface. The column's cells are
// regenerated for every displayed row.
func (t *Table[T, K]) ColumnChanged(columnID string) {
	c := t.columnIndex(columnID)
	if c < 0 {
		return
	}
	if t.src == nil || len(t.cells) != t.src.Len() {
		t.rebuild()
		t.clampOffset()
		return
	}
	col := t.columns[c]
	for i := range t.cells {
		t.cells[i][c] = t.renderCell(col, t.src.At(i))
	}
}

// HasColumn implements grid.Surface.
func (t *Table[T, K]) HasColumn(columnID string) bool {
	return t.columnIndex(columnID) >= 0
}

// Focused implements grid.Surface. Data changes do not move focus, so
// the row may have been removed since the last Repaint; View.Refresh
// drops such a focus.
func (t *Table[T, K]) Focused() (grid.FocusCoordinate[K], bool) {
	return t.focus, t.focused
}

// SetFocus implements grid.Surface. It fails if the row or column is not
// currently displayed.
func (t *Table[T, K]) SetFocus(coord grid.FocusCoordinate[K]) bool {
	row := slices.Index(t.keys, coord.Row)
	if row < 0 || !t.HasColumn(coord.Column) {
		return false
	}
	t.focus = coord
	t.focused = true
	t.anchor = row
	t.scrollTo(row)
	return true
}

// ClearFocus removes focus from the table.
func (t *Table[T, K]) ClearFocus() {
	t.focus = grid.FocusCoordinate[K]{}
	t.focused = false
	t.anchor = 0
}

// DataChanged implements grid.Surface.
func (t *Table[T, K]) DataChanged(c grid.Change) {
	if t.src == nil {
		return
	}
	n := t.src.Len()

	switch c.Kind {
	case grid.ChangeInsert:
		if len(t.keys)+1 != n {
			break
		}
		row := t.src.At(c.Index)
		t.keys = slices.Insert(t.keys, c.Index, t.src.Key(row))
		t.cells = slices.Insert(t.cells, c.Index, t.renderRow(row))
		if t.focused && c.Index <= t.anchor {
			t.anchor++
		}
		return

	case grid.ChangeRemove:
		if len(t.keys)-1 != n || c.Index >= len(t.keys) {
			break
		}
		t.keys = slices.Delete(t.keys, c.Index, c.Index+1)
		t.cells = slices.Delete(t.cells, c.Index, c.Index+1)
		if t.focused && c.Index < t.anchor {
			t.anchor--
		}
		t.clampOffset()
		return

	case grid.ChangeAppend:
		if len(t.keys)+c.Count != n || c.Index != len(t.keys) {
			break
		}
		for i := c.Index; i < n; i++ {
			row := t.src.At(i)
			t.keys = append(t.keys, t.src.Key(row))
			t.cells = append(t.cells, t.renderRow(row))
		}
		return
	}

	// Reset, or a change that does not line up with the snapshot.
	t.rebuild()
	t.clampOffset()
}

// Repaint implements grid.Surface. Every cell is regenerated and focus
// is cleared.
func (t *Table[T, K]) Repaint() {
	t.ClearFocus()
	t.rebuild()
	t.clampOffset()
}

// --- Snapshot access ---

// Len returns the number of displayed rows.
func (t *Table[T, K]) Len() int {
	return len(t.keys)
}

// RowKeys returns the keys of the displayed rows in order.
func (t *Table[T, K]) RowKeys() []K {
	return append([]K(nil), t.keys...)
}

// ColumnIDs returns all column ids in display order.
func (t *Table[T, K]) ColumnIDs() []string {
	ids := make([]string, len(t.columns))
	for i, c := range t.columns {
		ids[i] = c.ID
	}
	return ids
}

// Cell returns the rendered text of a displayed cell.
func (t *Table[T, K]) Cell(row K, columnID string) (string, bool) {
	r := slices.Index(t.keys, row)
	c := t.columnIndex(columnID)
	if r < 0 || c < 0 {
		return "", false
	}
	return t.cells[r][c], true
}

// --- Input ---

// HandleKey moves focus according to the key map and reports whether the
// key was consumed. With no focus, any movement focuses the first cell.
// When the focused row was removed, movement continues from its old
// position: down lands on the row that took its place.
func (t *Table[T, K]) HandleKey(msg tea.KeyMsg) bool {
	if len(t.keys) == 0 || len(t.columns) == 0 {
		return false
	}

	row, col := 0, 0
	gone := false
	if t.focused {
		row = slices.Index(t.keys, t.focus.Row)
		if row < 0 {
			row, gone = t.anchor, true
		}
		col = max(0, t.columnIndex(t.focus.Column))
	}

	switch {
	case key.Matches(msg, t.keymap.Up):
		if t.focused {
			row--
		}
	case key.Matches(msg, t.keymap.Down):
		if t.focused && !gone {
			row++
		}
	case key.Matches(msg, t.keymap.Left):
		if t.focused {
			col--
		}
	case key.Matches(msg, t.keymap.Right):
		if t.focused {
			col++
		}
	case key.Matches(msg, t.keymap.Home):
		row = 0
	case key.Matches(msg, t.keymap.End):
		row = len(t.keys) - 1
	default:
		return false
	}

	row = min(max(row, 0), len(t.keys)-1)
	col = min(max(col, 0), len(t.columns)-1)
	t.SetFocus(grid.FocusCoordinate[K]{Row: t.keys[row], Column: t.columns[col].ID})
	return true
}

// --- Widget ---

// SetSize implements Widget.
func (t *Table[T, K]) SetSize(width, height int) {
	t.width = width
	t.height = height
	if t.focused {
		t.scrollTo(slices.Index(t.keys, t.focus.Row))
	}
	t.clampOffset()
}

// PreferredHeight implements Widget: header plus one line per row.
func (t *Table[T, K]) PreferredHeight() int {
	return 1 + len(t.keys)
}

// View implements Widget.
func (t *Table[T, K]) View() string {
	widths := t.columnWidths()

	lines := make([]string, 0, t.visibleRows()+1)
	lines = append(lines, t.renderHeader(widths))

	focusRow := -1
	focusCol := -1
	if t.focused {
		focusRow = slices.Index(t.keys, t.focus.Row)
		focusCol = t.columnIndex(t.focus.Column)
	}

	end := min(t.offset+t.visibleRows(), len(t.keys))
	for r := t.offset; r < end; r++ {
		parts := make([]string, len(t.columns))
		for c := range t.columns {
			cell := text.Fit(t.cells[r][c], widths[c])
			if r == focusRow && c == focusCol {
				cell = t.styles.CellFocused.Render(text.StripANSI(cell))
			} else {
				cell = t.styles.Cell.Render(cell)
			}
			parts[c] = cell
		}
		lines = append(lines, strings.Join(parts, t.styles.Separator.Render(columnGap)))
	}

	return strings.Join(lines, "\n")
}

func (t *Table[T, K]) renderHeader(widths []int) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		parts[i] = t.styles.Header.Render(text.Fit(c.Title, widths[i]))
	}
	return strings.Join(parts, t.styles.Separator.Render(columnGap))
}

func (t *Table[T, K]) columnWidths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		w := text.Width(c.Title)
		for _, row := range t.cells {
			w = max(w, text.Width(text.FirstLine(row[i])))
		}
		widths[i] = min(w, t.maxColumnWidth)
	}

	if t.width <= 0 {
		return widths
	}

	// Shrink the widest columns until the row fits the table width.
	gap := text.Width(columnGap) * max(len(widths)-1, 0)
	for total := sum(widths) + gap; total > t.width; total-- {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			break
		}
		widths[widest]--
	}
	return widths
}

func (t *Table[T, K]) visibleRows() int {
	if t.height <= 1 {
		return len(t.keys)
	}
	return t.height - 1
}

func (t *Table[T, K]) scrollTo(row int) {
	if row < 0 {
		return
	}
	visible := t.visibleRows()
	if row < t.offset {
		t.offset = row
	} else if row >= t.offset+visible {
		t.offset = row - visible + 1
	}
}

func (t *Table[T, K]) clampOffset() {
	maxOffset := max(len(t.keys)-t.visibleRows(), 0)
	t.offset = min(max(t.offset, 0), maxOffset)
}

func (t *Table[T, K]) rebuild() {
	t.keys = t.keys[:0]
	t.cells = t.cells[:0]
	if t.src == nil {
		return
	}
	for i := 0; i < t.src.Len(); i++ {
		row := t.src.At(i)
		t.keys = append(t.keys, t.src.Key(row))
		t.cells = append(t.cells, t.renderRow(row))
	}
}

func (t *Table[T, K]) renderRow(row T) []string {
	cells := make([]string, len(t.columns))
	for i, c := range t.columns {
		cells[i] = t.renderCell(c, row)
	}
	return cells
}

// renderCell prefers a registered generator over the column's Value, so a
// component column can take over a property column with the same ID.
func (t *Table[T, K]) renderCell(c Column[T], row T) string {
	if t.src != nil {
		if gen, ok := t.src.Generator(c.ID); ok {
			if comp := gen(row); comp != nil {
				return comp.View()
			}
			return ""
		}
	}
	if c.Value != nil {
		return c.Value(row)
	}
	return ""
}

func (t *Table[T, K]) columnIndex(id string) int {
	for i, c := range t.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
