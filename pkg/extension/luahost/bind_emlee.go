package luahost

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const (
	emleeName       = "emlee"
	emleeAfterName  = "emlee_after"
	emleeBeforeName = "emlee_before"
)

// Emlee is the root object scripts hang their handler functions on.
type Emlee struct {
	After  EmleeAfterFuncs
	Before EmleeBeforeFuncs
}

// EmleeAfterFuncs holds handlers run after an operation completes.
type EmleeAfterFuncs struct {
	MessageOpened *lua.LFunction
}

// EmleeBeforeFuncs holds handlers that may influence an operation.
type EmleeBeforeFuncs struct {
	AttachmentWrite *lua.LFunction
}

func registerEmleeTypes(ls *lua.LState) {
	// emlee type.
	mt := ls.NewTypeMetatable(emleeName)
	ls.SetField(mt, "__index", ls.NewFunction(emleeIndex))

	// emlee.after type.
	mt = ls.NewTypeMetatable(emleeAfterName)
	ls.SetField(mt, "__index", ls.NewFunction(emleeAfterIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(emleeAfterNewIndex))

	// emlee.before type.
	mt = ls.NewTypeMetatable(emleeBeforeName)
	ls.SetField(mt, "__index", ls.NewFunction(emleeBeforeIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(emleeBeforeNewIndex))

	// emlee global.
	ud := ls.NewUserData()
	ud.Value = &Emlee{}
	ls.SetMetatable(ud, ls.GetTypeMetatable(emleeName))
	ls.SetGlobal(emleeName, ud)
}

func getEmlee(ls *lua.LState) (*Emlee, error) {
	lv := ls.GetGlobal(emleeName)
	if lv == nil {
		return nil, errors.New("emlee object was nil")
	}

	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, fmt.Errorf("emlee object was type %s instead of UserData", lv.Type())
	}

	val, ok := ud.Value.(*Emlee)
	if !ok {
		return nil, fmt.Errorf("emlee object (%v) could not be cast", ud.Value)
	}

	return val, nil
}

func checkEmlee(ls *lua.LState, pos int) *Emlee {
	ud := ls.CheckUserData(pos)
	if val, ok := ud.Value.(*Emlee); ok {
		return val
	}
	ls.ArgError(1, emleeName+" expected")
	return nil
}

func checkEmleeAfter(ls *lua.LState, pos int) *EmleeAfterFuncs {
	ud := ls.CheckUserData(pos)
	if val, ok := ud.Value.(*EmleeAfterFuncs); ok {
		return val
	}
	ls.ArgError(1, emleeAfterName+" expected")
	return nil
}

func checkEmleeBefore(ls *lua.LState, pos int) *EmleeBeforeFuncs {
	ud := ls.CheckUserData(pos)
	if val, ok := ud.Value.(*EmleeBeforeFuncs); ok {
		return val
	}
	ls.ArgError(1, emleeBeforeName+" expected")
	return nil
}

// emlee getter.
func emleeIndex(ls *lua.LState) int {
	e := checkEmlee(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "after":
		ud := ls.NewUserData()
		ud.Value = &e.After
		ls.SetMetatable(ud, ls.GetTypeMetatable(emleeAfterName))
		ls.Push(ud)
	case "before":
		ud := ls.NewUserData()
		ud.Value = &e.Before
		ls.SetMetatable(ud, ls.GetTypeMetatable(emleeBeforeName))
		ls.Push(ud)
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// emlee.after getter.
func emleeAfterIndex(ls *lua.LState) int {
	after := checkEmleeAfter(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "message_opened":
		ls.Push(funcOrNil(after.MessageOpened))
	default:
		ls.Push(lua.LNil)
	}

	return 1
}

// emlee.after setter.
func emleeAfterNewIndex(ls *lua.LState) int {
	after := checkEmleeAfter(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "message_opened":
		after.MessageOpened = ls.CheckFunction(3)
	default:
		ls.RaiseError("invalid emlee.after index %q", index)
	}

	return 0
}

// emlee.before getter.
func emleeBeforeIndex(ls *lua.LState) int {
	before := checkEmleeBefore(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "attachment_write":
		ls.Push(funcOrNil(before.AttachmentWrite))
	default:
		ls.Push(lua.LNil)
	}

	return 1
}

// emlee.before setter.
func emleeBeforeNewIndex(ls *lua.LState) int {
	before := checkEmleeBefore(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "attachment_write":
		before.AttachmentWrite = ls.CheckFunction(3)
	default:
		ls.RaiseError("invalid emlee.before index %q", index)
	}

	return 0
}

func funcOrNil(f *lua.LFunction) lua.LValue {
	if f == nil {
		return lua.LNil
	}

	return f
}
