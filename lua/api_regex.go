package lua

import (
	"regexp"

	glua "github.com/yuin/gopher-lua"
)

const luaRegexTypeName = "Regex"

// registerRegexType registers the Regex userdata type.
func registerRegexType(L *glua.LState) {
	mt := L.NewTypeMetatable(luaRegexTypeName)
	L.SetField(mt, "__index", L.NewFunction(regexIndex))
}

// regexIndex handles method calls on Regex userdata.
func regexIndex(L *glua.LState) int {
	re := L.CheckUserData(1).Value.(*regexp.Regexp)
	method := L.CheckString(2)

	switch method {
	case "match":
		L.Push(L.NewFunction(func(L *glua.LState) int {
			// Accept both re:match(s) and re.match(s).
			text := L.CheckString(L.GetTop())
			L.Push(submatchTable(L, re, text))
			return 1
		}))
		return 1
	case "pattern":
		L.Push(glua.LString(re.String()))
		return 1
	}

	return 0
}

func submatchTable(L *glua.LState, re *regexp.Regexp, text string) glua.LValue {
	matches := re.FindStringSubmatch(text)
	if matches == nil {
		return glua.LNil
	}
	tbl := L.NewTable()
	for i, m := range matches {
		tbl.RawSetInt(i+1, glua.LString(m))
	}
	return tbl
}

// compile returns a cached compiled pattern.
func (e *Engine) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.regexCache.Add(pattern, re)
	return re, nil
}

// RegexCacheLen returns the number of cached patterns.
func (e *Engine) RegexCacheLen() int {
	return e.regexCache.Len()
}

// registerRegexFuncs registers grid.regex and grid.match.
func (e *Engine) registerRegexFuncs() {
	registerRegexType(e.L)

	// grid.regex(pattern): Compile and return a Regex userdata
	e.L.SetField(e.gridTable, "regex", e.L.NewFunction(func(L *glua.LState) int {
		re, err := e.compile(L.CheckString(1))
		if err != nil {
			L.Push(glua.LNil)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		ud := L.NewUserData()
		ud.Value = re
		L.SetMetatable(ud, L.GetTypeMetatable(luaRegexTypeName))
		L.Push(ud)
		return 1
	}))

	// grid.match(pattern, text): Submatch table or nil. Bad patterns raise.
	e.L.SetField(e.gridTable, "match", e.L.NewFunction(func(L *glua.LState) int {
		pattern := L.CheckString(1)
		text := L.CheckString(2)
		re, err := e.compile(pattern)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(submatchTable(L, re, text))
		return 1
	}))
}
