package lua

import glua "github.com/yuin/gopher-lua"

func (e *Engine) registerAPIs() {
	e.gridTable = e.L.NewTable()
	e.L.SetGlobal("grid", e.gridTable)

	e.registerColumnFuncs()
	e.registerRegexFuncs()
	e.registerLogFuncs()
}

// registerColumnFuncs registers grid.column.
func (e *Engine) registerColumnFuncs() {
	// grid.column(id, title, fn [, width]): Register a component column
	e.L.SetField(e.gridTable, "column", e.L.NewFunction(func(L *glua.LState) int {
		id := L.CheckString(1)
		title := L.OptString(2, id)
		fn := L.CheckFunction(3)
		width := L.OptInt(4, 0)

		if id == "" {
			L.ArgError(1, "column id must not be empty")
			return 0
		}
		if title == "" {
			title = id
		}
		e.addColumn(Column{ID: id, Title: title, Width: width}, fn)
		return 0
	}))
}

// registerLogFuncs registers grid.log.
func (e *Engine) registerLogFuncs() {
	// grid.log(msg): Write an info line to the program log
	e.L.SetField(e.gridTable, "log", e.L.NewFunction(func(L *glua.LState) int {
		e.logger.Info(L.CheckString(1))
		return 0
	}))
}
