package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned when a key or button name is not part of the
// closed enumeration and is not an Unknown(<n>) escape either.
var ErrUnknownKey = errors.New("unknown key name")

// UnknownPlaceholder is the code carried by Unknown keys and buttons that
// were parsed back from text. The original platform code is not restored.
const UnknownPlaceholder = 1

// Key identifies a keyboard key. KeyUnknown carries the platform code in
// Input.Code.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyAlt
	KeyAltGr
	KeyBackspace
	KeyCapsLock
	KeyControlLeft
	KeyControlRight
	KeyDelete
	KeyDownArrow
	KeyEnd
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyHome
	KeyLeftArrow
	KeyMetaLeft
	KeyMetaRight
	KeyPageDown
	KeyPageUp
	KeyReturn
	KeyRightArrow
	KeyShiftLeft
	KeyShiftRight
	KeySpace
	KeyTab
	KeyUpArrow
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyNumLock
	KeyBackQuote
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0
	KeyMinus
	KeyEqual
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemiColon
	KeyQuote
	KeyBackSlash
	KeyIntlBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeyInsert
	KeyKpReturn
	KeyKpMinus
	KeyKpPlus
	KeyKpMultiply
	KeyKpDivide
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDelete
	KeyFunction

	keyCount
)

// keyNames are the persisted names; they are part of the file format.
var keyNames = [keyCount]string{
	KeyUnknown:       "Unknown",
	KeyAlt:           "Alt",
	KeyAltGr:         "AltGr",
	KeyBackspace:     "Backspace",
	KeyCapsLock:      "CapsLock",
	KeyControlLeft:   "ControlLeft",
	KeyControlRight:  "ControlRight",
	KeyDelete:        "Delete",
	KeyDownArrow:     "DownArrow",
	KeyEnd:           "End",
	KeyEscape:        "Escape",
	KeyF1:            "F1",
	KeyF2:            "F2",
	KeyF3:            "F3",
	KeyF4:            "F4",
	KeyF5:            "F5",
	KeyF6:            "F6",
	KeyF7:            "F7",
	KeyF8:            "F8",
	KeyF9:            "F9",
	KeyF10:           "F10",
	KeyF11:           "F11",
	KeyF12:           "F12",
	KeyHome:          "Home",
	KeyLeftArrow:     "LeftArrow",
	KeyMetaLeft:      "MetaLeft",
	KeyMetaRight:     "MetaRight",
	KeyPageDown:      "PageDown",
	KeyPageUp:        "PageUp",
	KeyReturn:        "Return",
	KeyRightArrow:    "RightArrow",
	KeyShiftLeft:     "ShiftLeft",
	KeyShiftRight:    "ShiftRight",
	KeySpace:         "Space",
	KeyTab:           "Tab",
	KeyUpArrow:       "UpArrow",
	KeyPrintScreen:   "PrintScreen",
	KeyScrollLock:    "ScrollLock",
	KeyPause:         "Pause",
	KeyNumLock:       "NumLock",
	KeyBackQuote:     "BackQuote",
	KeyNum1:          "Num1",
	KeyNum2:          "Num2",
	KeyNum3:          "Num3",
	KeyNum4:          "Num4",
	KeyNum5:          "Num5",
	KeyNum6:          "Num6",
	KeyNum7:          "Num7",
	KeyNum8:          "Num8",
	KeyNum9:          "Num9",
	KeyNum0:          "Num0",
	KeyMinus:         "Minus",
	KeyEqual:         "Equal",
	KeyQ:             "KeyQ",
	KeyW:             "KeyW",
	KeyE:             "KeyE",
	KeyR:             "KeyR",
	KeyT:             "KeyT",
	KeyY:             "KeyY",
	KeyU:             "KeyU",
	KeyI:             "KeyI",
	KeyO:             "KeyO",
	KeyP:             "KeyP",
	KeyLeftBracket:   "LeftBracket",
	KeyRightBracket:  "RightBracket",
	KeyA:             "KeyA",
	KeyS:             "KeyS",
	KeyD:             "KeyD",
	KeyF:             "KeyF",
	KeyG:             "KeyG",
	KeyH:             "KeyH",
	KeyJ:             "KeyJ",
	KeyK:             "KeyK",
	KeyL:             "KeyL",
	KeySemiColon:     "SemiColon",
	KeyQuote:         "Quote",
	KeyBackSlash:     "BackSlash",
	KeyIntlBackslash: "IntlBackslash",
	KeyZ:             "KeyZ",
	KeyX:             "KeyX",
	KeyC:             "KeyC",
	KeyV:             "KeyV",
	KeyB:             "KeyB",
	KeyN:             "KeyN",
	KeyM:             "KeyM",
	KeyComma:         "Comma",
	KeyDot:           "Dot",
	KeySlash:         "Slash",
	KeyInsert:        "Insert",
	KeyKpReturn:      "KpReturn",
	KeyKpMinus:       "KpMinus",
	KeyKpPlus:        "KpPlus",
	KeyKpMultiply:    "KpMultiply",
	KeyKpDivide:      "KpDivide",
	KeyKp0:           "Kp0",
	KeyKp1:           "Kp1",
	KeyKp2:           "Kp2",
	KeyKp3:           "Kp3",
	KeyKp4:           "Kp4",
	KeyKp5:           "Kp5",
	KeyKp6:           "Kp6",
	KeyKp7:           "Kp7",
	KeyKp8:           "Kp8",
	KeyKp9:           "Kp9",
	KeyKpDelete:      "KpDelete",
	KeyFunction:      "Function",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, keyCount)
	for k := KeyAlt; k < keyCount; k++ {
		m[keyNames[k]] = k
	}
	return m
}()

// Keys returns every named key, excluding KeyUnknown.
func Keys() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyAlt; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Key) String() string {
	if k >= keyCount {
		return fmt.Sprintf("Key(%d)", uint16(k))
	}
	return keyNames[k]
}

// ParseKey looks a persisted key name up in the enumeration. Names of the
// form "Unknown(<n>)" yield KeyUnknown; the returned code is always
// UnknownPlaceholder.
func ParseKey(name string) (Key, uint32, error) {
	if k, ok := keysByName[name]; ok {
		return k, 0, nil
	}
	if strings.Contains(name, "Unknown") {
		raw := strings.NewReplacer("Unknown(", "", ")", "").Replace(name)
		if _, err := strconv.ParseUint(raw, 10, 32); err != nil {
			return KeyUnknown, 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
		return KeyUnknown, UnknownPlaceholder, nil
	}
	return KeyUnknown, 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Button identifies a mouse button. ButtonUnknown carries the platform code
// in Input.Code.
type Button uint8

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// ParseButton never fails: unrecognized names decode to ButtonUnknown with
// UnknownPlaceholder as the code.
func ParseButton(name string) (Button, uint32) {
	switch name {
	case "Left":
		return ButtonLeft, 0
	case "Right":
		return ButtonRight, 0
	case "Middle":
		return ButtonMiddle, 0
	default:
		return ButtonUnknown, UnknownPlaceholder
	}
}

func unknownName(code uint32) string {
	return "Unknown(" + strconv.FormatUint(uint64(code), 10) + ")"
}
