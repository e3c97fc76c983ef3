// Package keymap translates between event keys and buttons, the virtual
// key codes delivered by the input hook, and the names understood by the
// input synthesizer.
package keymap

import (
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

type entry struct {
	key   event.Key
	code  uint16 // hook virtual key code, 0 = none
	robot string // synthesizer key name, "" = none
}

var table = []entry{
	{event.KeyAlt, 0x0038, "lalt"},
	{event.KeyAltGr, 0x0E38, "ralt"},
	{event.KeyBackspace, 0x000E, "backspace"},
	{event.KeyCapsLock, 0x003A, "capslock"},
	{event.KeyControlLeft, 0x001D, "lctrl"},
	{event.KeyControlRight, 0x0E1D, "rctrl"},
	{event.KeyDelete, 0x0E53, "delete"},
	{event.KeyDownArrow, 0xE050, "down"},
	{event.KeyEnd, 0x0E4F, "end"},
	{event.KeyEscape, 0x0001, "esc"},
	{event.KeyF1, 0x003B, "f1"},
	{event.KeyF2, 0x003C, "f2"},
	{event.KeyF3, 0x003D, "f3"},
	{event.KeyF4, 0x003E, "f4"},
	{event.KeyF5, 0x003F, "f5"},
	{event.KeyF6, 0x0040, "f6"},
	{event.KeyF7, 0x0041, "f7"},
	{event.KeyF8, 0x0042, "f8"},
	{event.KeyF9, 0x0043, "f9"},
	{event.KeyF10, 0x0044, "f10"},
	{event.KeyF11, 0x0057, "f11"},
	{event.KeyF12, 0x0058, "f12"},
	{event.KeyHome, 0x0E47, "home"},
	{event.KeyLeftArrow, 0xE04B, "left"},
	{event.KeyMetaLeft, 0x0E5B, "lcmd"},
	{event.KeyMetaRight, 0x0E5C, "rcmd"},
	{event.KeyPageDown, 0x0E51, "pagedown"},
	{event.KeyPageUp, 0x0E49, "pageup"},
	{event.KeyReturn, 0x001C, "enter"},
	{event.KeyRightArrow, 0xE04D, "right"},
	{event.KeyShiftLeft, 0x002A, "lshift"},
	{event.KeyShiftRight, 0x0036, "rshift"},
	{event.KeySpace, 0x0039, "space"},
	{event.KeyTab, 0x000F, "tab"},
	{event.KeyUpArrow, 0xE048, "up"},
	{event.KeyPrintScreen, 0x0E37, "printscreen"},
	{event.KeyScrollLock, 0x0046, ""},
	{event.KeyPause, 0x0E45, ""},
	{event.KeyNumLock, 0x0045, "num_lock"},
	{event.KeyBackQuote, 0x0029, "`"},
	{event.KeyNum1, 0x0002, "1"},
	{event.KeyNum2, 0x0003, "2"},
	{event.KeyNum3, 0x0004, "3"},
	{event.KeyNum4, 0x0005, "4"},
	{event.KeyNum5, 0x0006, "5"},
	{event.KeyNum6, 0x0007, "6"},
	{event.KeyNum7, 0x0008, "7"},
	{event.KeyNum8, 0x0009, "8"},
	{event.KeyNum9, 0x000A, "9"},
	{event.KeyNum0, 0x000B, "0"},
	{event.KeyMinus, 0x000C, "-"},
	{event.KeyEqual, 0x000D, "="},
	{event.KeyQ, 0x0010, "q"},
	{event.KeyW, 0x0011, "w"},
	{event.KeyE, 0x0012, "e"},
	{event.KeyR, 0x0013, "r"},
	{event.KeyT, 0x0014, "t"},
	{event.KeyY, 0x0015, "y"},
	{event.KeyU, 0x0016, "u"},
	{event.KeyI, 0x0017, "i"},
	{event.KeyO, 0x0018, "o"},
	{event.KeyP, 0x0019, "p"},
	{event.KeyLeftBracket, 0x001A, "["},
	{event.KeyRightBracket, 0x001B, "]"},
	{event.KeyA, 0x001E, "a"},
	{event.KeyS, 0x001F, "s"},
	{event.KeyD, 0x0020, "d"},
	{event.KeyF, 0x0021, "f"},
	{event.KeyG, 0x0022, "g"},
	{event.KeyH, 0x0023, "h"},
	{event.KeyJ, 0x0024, "j"},
	{event.KeyK, 0x0025, "k"},
	{event.KeyL, 0x0026, "l"},
	{event.KeySemiColon, 0x0027, ";"},
	{event.KeyQuote, 0x0028, "'"},
	{event.KeyBackSlash, 0x002B, "\\"},
	{event.KeyIntlBackslash, 0, ""},
	{event.KeyZ, 0x002C, "z"},
	{event.KeyX, 0x002D, "x"},
	{event.KeyC, 0x002E, "c"},
	{event.KeyV, 0x002F, "v"},
	{event.KeyB, 0x0030, "b"},
	{event.KeyN, 0x0031, "n"},
	{event.KeyM, 0x0032, "m"},
	{event.KeyComma, 0x0033, ","},
	{event.KeyDot, 0x0034, "."},
	{event.KeySlash, 0x0035, "/"},
	{event.KeyInsert, 0x0E52, "insert"},
	{event.KeyKpReturn, 0x0E1C, "num_enter"},
	{event.KeyKpMinus, 0x004A, "num-"},
	{event.KeyKpPlus, 0x004E, "num+"},
	{event.KeyKpMultiply, 0x0037, "num*"},
	{event.KeyKpDivide, 0x0E35, "num/"},
	{event.KeyKp0, 0x0052, "num0"},
	{event.KeyKp1, 0x004F, "num1"},
	{event.KeyKp2, 0x0050, "num2"},
	{event.KeyKp3, 0x0051, "num3"},
	{event.KeyKp4, 0x004B, "num4"},
	{event.KeyKp5, 0x004C, "num5"},
	{event.KeyKp6, 0x004D, "num6"},
	{event.KeyKp7, 0x0047, "num7"},
	{event.KeyKp8, 0x0048, "num8"},
	{event.KeyKp9, 0x0049, "num9"},
	{event.KeyKpDelete, 0x0053, "num."},
	{event.KeyFunction, 0, ""},
}

var (
	byCode  = make(map[uint16]event.Key, len(table))
	byKey   = make(map[event.Key]entry, len(table))
	byRobot = make(map[string]event.Key, len(table))
)

func init() {
	for _, e := range table {
		byKey[e.key] = e
		if e.code != 0 {
			byCode[e.code] = e.key
		}
		if e.robot != "" {
			byRobot[e.robot] = e.key
		}
	}
}

// FromHookCode maps a hook virtual key code to a Key. Unmapped codes
// return KeyUnknown and false.
func FromHookCode(code uint16) (event.Key, bool) {
	k, ok := byCode[code]
	return k, ok
}

// HookCode returns the hook virtual key code for k.
func HookCode(k event.Key) (uint16, bool) {
	e, ok := byKey[k]
	if !ok || e.code == 0 {
		return 0, false
	}
	return e.code, true
}

// RobotName returns the synthesizer key name for k.
func RobotName(k event.Key) (string, bool) {
	e, ok := byKey[k]
	if !ok || e.robot == "" {
		return "", false
	}
	return e.robot, true
}

// FromRobotName maps a synthesizer key name back to a Key.
func FromRobotName(name string) (event.Key, bool) {
	k, ok := byRobot[name]
	return k, ok
}

// FromHookButton maps a hook button number (1 left, 2 right, 3 middle).
// Other numbers return ButtonUnknown with the number as code.
func FromHookButton(b uint16) (event.Button, uint32) {
	switch b {
	case 1:
		return event.ButtonLeft, 0
	case 2:
		return event.ButtonRight, 0
	case 3:
		return event.ButtonMiddle, 0
	default:
		return event.ButtonUnknown, uint32(b)
	}
}

// RobotButton returns the synthesizer button name for b.
func RobotButton(b event.Button) (string, bool) {
	switch b {
	case event.ButtonLeft:
		return "left", true
	case event.ButtonRight:
		return "right", true
	case event.ButtonMiddle:
		return "center", true
	default:
		return "", false
	}
}

// Wheel directions reported by the hook.
const (
	WheelVertical   = 3
	WheelHorizontal = 4
)

// WheelDelta converts a hook wheel rotation into deltas where positive y
// scrolls up and positive x scrolls right.
func WheelDelta(direction uint8, rotation int32) (dx, dy int64) {
	if direction == WheelHorizontal {
		return int64(rotation), 0
	}
	return 0, -int64(rotation)
}
