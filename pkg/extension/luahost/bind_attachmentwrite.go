package luahost

import (
	"github.com/bitosaur/emlee/pkg/extension/event"
	lua "github.com/yuin/gopher-lua"
)

const attachmentWriteName = "attachment_write"

func registerAttachmentWriteType(ls *lua.LState) {
	mt := ls.NewTypeMetatable(attachmentWriteName)
	ls.SetGlobal(attachmentWriteName, mt)

	// Static attributes.
	ls.SetField(mt, "new", ls.NewFunction(newAttachmentWrite))

	// Methods.
	ls.SetField(mt, "__index", ls.NewFunction(attachmentWriteIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(attachmentWriteNewIndex))
}

func newAttachmentWrite(ls *lua.LState) int {
	val := &event.AttachmentWrite{}
	ls.Push(wrapAttachmentWrite(ls, val))

	return 1
}

func wrapAttachmentWrite(ls *lua.LState, val *event.AttachmentWrite) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(attachmentWriteName))

	return ud
}

func checkAttachmentWrite(ls *lua.LState, pos int) *event.AttachmentWrite {
	ud := ls.CheckUserData(pos)
	if v, ok := ud.Value.(*event.AttachmentWrite); ok {
		return v
	}
	ls.ArgError(1, attachmentWriteName+" expected")
	return nil
}

func attachmentWriteIndex(ls *lua.LState) int {
	aw := checkAttachmentWrite(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "path":
		ls.Push(lua.LString(aw.Path))
	case "filename":
		ls.Push(lua.LString(aw.FileName))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

func attachmentWriteNewIndex(ls *lua.LState) int {
	aw := checkAttachmentWrite(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "path":
		aw.Path = ls.CheckString(3)
	case "filename":
		aw.FileName = ls.CheckString(3)
	default:
		ls.RaiseError("invalid index %q", index)
	}

	return 0
}
