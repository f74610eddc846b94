package luahost

import (
	"github.com/bitosaur/emlee/pkg/extension/event"
	lua "github.com/yuin/gopher-lua"
)

const messageOpenedName = "message_opened"

func registerMessageOpenedType(ls *lua.LState) {
	mt := ls.NewTypeMetatable(messageOpenedName)
	ls.SetGlobal(messageOpenedName, mt)

	// Static attributes.
	ls.SetField(mt, "new", ls.NewFunction(newMessageOpened))

	// Methods.
	ls.SetField(mt, "__index", ls.NewFunction(messageOpenedIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(messageOpenedNewIndex))
}

func newMessageOpened(ls *lua.LState) int {
	val := &event.MessageOpened{}
	ls.Push(wrapMessageOpened(ls, val))

	return 1
}

func wrapMessageOpened(ls *lua.LState, val *event.MessageOpened) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(messageOpenedName))

	return ud
}

func checkMessageOpened(ls *lua.LState, pos int) *event.MessageOpened {
	ud := ls.CheckUserData(pos)
	if v, ok := ud.Value.(*event.MessageOpened); ok {
		return v
	}
	ls.ArgError(1, messageOpenedName+" expected")
	return nil
}

// Gets a field value from a MessageOpened user object.  This emulates a Lua
// table, allowing `msg.subject` instead of `msg:subject()`.
func messageOpenedIndex(ls *lua.LState) int {
	m := checkMessageOpened(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "path":
		ls.Push(lua.LString(m.Path))
	case "from":
		ls.Push(lua.LString(m.From))
	case "to":
		ls.Push(lua.LString(m.To))
	case "subject":
		ls.Push(lua.LString(m.Subject))
	case "date":
		ls.Push(lua.LString(m.Date))
	case "body_is_html":
		ls.Push(lua.LBool(m.BodyIsHTML))
	case "attachments":
		lt := &lua.LTable{}
		for _, name := range m.Attachments {
			lt.Append(lua.LString(name))
		}
		ls.Push(lt)
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// Sets a field value on a MessageOpened user object.
func messageOpenedNewIndex(ls *lua.LState) int {
	m := checkMessageOpened(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "path":
		m.Path = ls.CheckString(3)
	case "from":
		m.From = ls.CheckString(3)
	case "to":
		m.To = ls.CheckString(3)
	case "subject":
		m.Subject = ls.CheckString(3)
	case "date":
		m.Date = ls.CheckString(3)
	case "body_is_html":
		m.BodyIsHTML = lua.LVAsBool(ls.CheckAny(3))
	case "attachments":
		lt := ls.CheckTable(3)
		names := make([]string, 0, lt.Len())
		lt.ForEach(func(k, lv lua.LValue) {
			if s, ok := lv.(lua.LString); ok {
				names = append(names, string(s))
			}
		})
		m.Attachments = names
	default:
		ls.RaiseError("invalid index %q", index)
	}

	return 0
}
