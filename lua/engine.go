// Package lua runs user Lua scripts that define grid component columns.
package lua

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
)

const regexCacheSize = 100

// Column is a column registered from Lua with grid.column.
type Column struct {
	ID    string
	Title string
	Width int
}

// Cell is what a Lua column function returns for one row.
type Cell struct {
	Text  string
	Style string
}

// Engine wraps gopher-lua and manages the VM lifecycle.
// It is not safe for concurrent use; call it from the UI goroutine.
type Engine struct {
	L          *glua.LState
	regexCache *lru.Cache[string, *regexp.Regexp]
	logger     *log.Logger

	// Cached table reference
	gridTable *glua.LTable

	columns []Column
	fns     map[string]*glua.LFunction
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cache, _ := lru.New[string, *regexp.Regexp](regexCacheSize)
	return &Engine{
		regexCache: cache,
		logger:     logger.WithPrefix("lua"),
		fns:        make(map[string]*glua.LFunction),
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// Registered columns are forgotten.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}

	e.L = glua.NewState()
	e.regexCache.Purge()
	e.columns = nil
	e.fns = make(map[string]*glua.LFunction)

	e.registerAPIs()
	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	e.fns = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// --- Execution ---

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.L.DoFile(absPath)

	e.L.SetField(pkg, "path", glua.LString(oldPath))
	return err
}

// --- Columns ---

// Columns returns the registered columns in registration order.
func (e *Engine) Columns() []Column {
	out := make([]Column, len(e.columns))
	copy(out, e.columns)
	return out
}

// Render calls the Lua function of column id with a table built from
// fields. The function may return a string, a number, nil, or a table
// with text and style fields.
func (e *Engine) Render(id string, fields map[string]any) (Cell, error) {
	if e.L == nil {
		return Cell{}, fmt.Errorf("lua: engine not initialized")
	}
	fn, ok := e.fns[id]
	if !ok {
		return Cell{}, fmt.Errorf("lua: unknown column %q", id)
	}

	if err := e.L.CallByParam(glua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, e.rowTable(fields)); err != nil {
		return Cell{}, fmt.Errorf("lua: column %q: %w", id, err)
	}

	ret := e.L.Get(-1)
	e.L.Pop(1)
	return toCell(ret), nil
}

func (e *Engine) addColumn(c Column, fn *glua.LFunction) {
	if _, exists := e.fns[c.ID]; exists {
		for i := range e.columns {
			if e.columns[i].ID == c.ID {
				e.columns[i] = c
			}
		}
	} else {
		e.columns = append(e.columns, c)
	}
	e.fns[c.ID] = fn
}

// --- Private Helpers ---

func (e *Engine) rowTable(fields map[string]any) *glua.LTable {
	tbl := e.L.NewTable()
	for k, v := range fields {
		tbl.RawSetString(k, toLValue(e.L, v))
	}
	return tbl
}

func toLValue(L *glua.LState, v any) glua.LValue {
	switch v := v.(type) {
	case nil:
		return glua.LNil
	case string:
		return glua.LString(v)
	case bool:
		return glua.LBool(v)
	case int:
		return glua.LNumber(v)
	case int64:
		return glua.LNumber(v)
	case int32:
		return glua.LNumber(v)
	case uint:
		return glua.LNumber(v)
	case uint64:
		return glua.LNumber(v)
	case float32:
		return glua.LNumber(v)
	case float64:
		return glua.LNumber(v)
	case []string:
		tbl := L.NewTable()
		for i, s := range v {
			tbl.RawSetInt(i+1, glua.LString(s))
		}
		return tbl
	case fmt.Stringer:
		return glua.LString(v.String())
	}
	return glua.LString(fmt.Sprint(v))
}

func toCell(v glua.LValue) Cell {
	switch v := v.(type) {
	case *glua.LNilType:
		return Cell{}
	case *glua.LTable:
		c := Cell{}
		if t := v.RawGetString("text"); t != glua.LNil {
			c.Text = t.String()
		}
		if s := v.RawGetString("style"); s != glua.LNil {
			c.Style = s.String()
		}
		return c
	}
	return Cell{Text: v.String()}
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
