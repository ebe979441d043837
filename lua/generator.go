package lua

import (
	"github.com/drake/componentgrid/grid"
)

// ErrorCell is shown in place of a cell whose Lua function failed.
var ErrorCell = Cell{Text: "!err", Style: "error"}

// Generator adapts Lua column id into a grid generator. fields builds the
// table passed to Lua for a row; render turns the returned Cell into a
// component. Lua errors are logged and rendered as ErrorCell.
func Generator[T any](e *Engine, id string, fields func(row T) map[string]any, render func(Cell) grid.Component) grid.Generator[T] {
	return func(row T) grid.Component {
		cell, err := e.Render(id, fields(row))
		if err != nil {
			e.logger.Error("column render failed", "column", id, "err", err)
			cell = ErrorCell
		}
		return render(cell)
	}
}

// Install registers every Lua column on v and returns the column list so
// callers can apply titles and widths to their surface.
func Install[T any, K comparable](e *Engine, v *grid.View[T, K], fields func(row T) map[string]any, render func(Cell) grid.Component) ([]Column, error) {
	cols := e.Columns()
	for _, c := range cols {
		if err := v.AddComponentColumn(c.ID, Generator(e, c.ID, fields, render)); err != nil {
			return nil, err
		}
	}
	return cols, nil
}
