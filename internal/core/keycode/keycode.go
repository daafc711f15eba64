// Package keycode names key and button codes using the Linux input-event
// numbering that every backend translates its native identifiers into.
package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	BTNLeft   uint16 = 0x110
	BTNRight  uint16 = 0x111
	BTNMiddle uint16 = 0x112
	BTNSide   uint16 = 0x113
	BTNExtra  uint16 = 0x114
)

const (
	KeyEsc        uint16 = 1
	Key1          uint16 = 2
	Key2          uint16 = 3
	Key3          uint16 = 4
	Key4          uint16 = 5
	Key5          uint16 = 6
	Key6          uint16 = 7
	Key7          uint16 = 8
	Key8          uint16 = 9
	Key9          uint16 = 10
	Key0          uint16 = 11
	KeyMinus      uint16 = 12
	KeyEqual      uint16 = 13
	KeyBackspace  uint16 = 14
	KeyTab        uint16 = 15
	KeyQ          uint16 = 16
	KeyW          uint16 = 17
	KeyE          uint16 = 18
	KeyR          uint16 = 19
	KeyT          uint16 = 20
	KeyY          uint16 = 21
	KeyU          uint16 = 22
	KeyI          uint16 = 23
	KeyO          uint16 = 24
	KeyP          uint16 = 25
	KeyLeftBrace  uint16 = 26
	KeyRightBrace uint16 = 27
	KeyEnter      uint16 = 28
	KeyLeftCtrl   uint16 = 29
	KeyA          uint16 = 30
	KeyS          uint16 = 31
	KeyD          uint16 = 32
	KeyF          uint16 = 33
	KeyG          uint16 = 34
	KeyH          uint16 = 35
	KeyJ          uint16 = 36
	KeyK          uint16 = 37
	KeyL          uint16 = 38
	KeySemicolon  uint16 = 39
	KeyApostrophe uint16 = 40
	KeyGrave      uint16 = 41
	KeyLeftShift  uint16 = 42
	KeyBackslash  uint16 = 43
	KeyZ          uint16 = 44
	KeyX          uint16 = 45
	KeyC          uint16 = 46
	KeyV          uint16 = 47
	KeyB          uint16 = 48
	KeyN          uint16 = 49
	KeyM          uint16 = 50
	KeyComma      uint16 = 51
	KeyDot        uint16 = 52
	KeySlash      uint16 = 53
	KeyRightShift uint16 = 54
	KeyKPAsterisk uint16 = 55
	KeyLeftAlt    uint16 = 56
	KeySpace      uint16 = 57
	KeyCapsLock   uint16 = 58
	KeyF1         uint16 = 59
	KeyF2         uint16 = 60
	KeyF3         uint16 = 61
	KeyF4         uint16 = 62
	KeyF5         uint16 = 63
	KeyF6         uint16 = 64
	KeyF7         uint16 = 65
	KeyF8         uint16 = 66
	KeyF9         uint16 = 67
	KeyF10        uint16 = 68
	KeyNumLock    uint16 = 69
	KeyScrollLock uint16 = 70
	KeyKP7        uint16 = 71
	KeyKP8        uint16 = 72
	KeyKP9        uint16 = 73
	KeyKPMinus    uint16 = 74
	KeyKP4        uint16 = 75
	KeyKP5        uint16 = 76
	KeyKP6        uint16 = 77
	KeyKPPlus     uint16 = 78
	KeyKP1        uint16 = 79
	KeyKP2        uint16 = 80
	KeyKP3        uint16 = 81
	KeyKP0        uint16 = 82
	KeyKPDot      uint16 = 83
	KeyF11        uint16 = 87
	KeyF12        uint16 = 88
	KeyKPEnter    uint16 = 96
	KeyRightCtrl  uint16 = 97
	KeyKPSlash    uint16 = 98
	KeySysRq      uint16 = 99
	KeyRightAlt   uint16 = 100
	KeyHome       uint16 = 102
	KeyUp         uint16 = 103
	KeyPageUp     uint16 = 104
	KeyLeft       uint16 = 105
	KeyRight      uint16 = 106
	KeyEnd        uint16 = 107
	KeyDown       uint16 = 108
	KeyPageDown   uint16 = 109
	KeyInsert     uint16 = 110
	KeyDelete     uint16 = 111
	KeyMute       uint16 = 113
	KeyVolumeDown uint16 = 114
	KeyVolumeUp   uint16 = 115
	KeyPause      uint16 = 119
	KeyLeftMeta   uint16 = 125
	KeyRightMeta  uint16 = 126
	KeyMenu       uint16 = 139
	KeyF13        uint16 = 183
	KeyF14        uint16 = 184
	KeyF15        uint16 = 185
	KeyF16        uint16 = 186
	KeyF17        uint16 = 187
	KeyF18        uint16 = 188
	KeyF19        uint16 = 189
	KeyF20        uint16 = 190
	KeyF21        uint16 = 191
	KeyF22        uint16 = 192
	KeyF23        uint16 = 193
	KeyF24        uint16 = 194
)

// names lists the canonical spelling first; aliases follow and are only
// accepted by Parse.
var names = []struct {
	code uint16
	name string
}{
	{BTNLeft, "BTN_LEFT"}, {BTNRight, "BTN_RIGHT"}, {BTNMiddle, "BTN_MIDDLE"},
	{BTNSide, "BTN_SIDE"}, {BTNExtra, "BTN_EXTRA"},
	{KeyEsc, "KEY_ESC"},
	{Key1, "KEY_1"}, {Key2, "KEY_2"}, {Key3, "KEY_3"}, {Key4, "KEY_4"}, {Key5, "KEY_5"},
	{Key6, "KEY_6"}, {Key7, "KEY_7"}, {Key8, "KEY_8"}, {Key9, "KEY_9"}, {Key0, "KEY_0"},
	{KeyMinus, "KEY_MINUS"}, {KeyEqual, "KEY_EQUAL"}, {KeyBackspace, "KEY_BACKSPACE"}, {KeyTab, "KEY_TAB"},
	{KeyQ, "KEY_Q"}, {KeyW, "KEY_W"}, {KeyE, "KEY_E"}, {KeyR, "KEY_R"}, {KeyT, "KEY_T"},
	{KeyY, "KEY_Y"}, {KeyU, "KEY_U"}, {KeyI, "KEY_I"}, {KeyO, "KEY_O"}, {KeyP, "KEY_P"},
	{KeyLeftBrace, "KEY_LEFTBRACE"}, {KeyRightBrace, "KEY_RIGHTBRACE"}, {KeyEnter, "KEY_ENTER"}, {KeyLeftCtrl, "KEY_LEFTCTRL"},
	{KeyA, "KEY_A"}, {KeyS, "KEY_S"}, {KeyD, "KEY_D"}, {KeyF, "KEY_F"}, {KeyG, "KEY_G"},
	{KeyH, "KEY_H"}, {KeyJ, "KEY_J"}, {KeyK, "KEY_K"}, {KeyL, "KEY_L"},
	{KeySemicolon, "KEY_SEMICOLON"}, {KeyApostrophe, "KEY_APOSTROPHE"}, {KeyGrave, "KEY_GRAVE"},
	{KeyLeftShift, "KEY_LEFTSHIFT"}, {KeyBackslash, "KEY_BACKSLASH"},
	{KeyZ, "KEY_Z"}, {KeyX, "KEY_X"}, {KeyC, "KEY_C"}, {KeyV, "KEY_V"}, {KeyB, "KEY_B"},
	{KeyN, "KEY_N"}, {KeyM, "KEY_M"},
	{KeyComma, "KEY_COMMA"}, {KeyDot, "KEY_DOT"}, {KeySlash, "KEY_SLASH"}, {KeyRightShift, "KEY_RIGHTSHIFT"},
	{KeyKPAsterisk, "KEY_KPASTERISK"}, {KeyLeftAlt, "KEY_LEFTALT"}, {KeySpace, "KEY_SPACE"}, {KeyCapsLock, "KEY_CAPSLOCK"},
	{KeyF1, "KEY_F1"}, {KeyF2, "KEY_F2"}, {KeyF3, "KEY_F3"}, {KeyF4, "KEY_F4"}, {KeyF5, "KEY_F5"}, {KeyF6, "KEY_F6"},
	{KeyF7, "KEY_F7"}, {KeyF8, "KEY_F8"}, {KeyF9, "KEY_F9"}, {KeyF10, "KEY_F10"}, {KeyF11, "KEY_F11"}, {KeyF12, "KEY_F12"},
	{KeyNumLock, "KEY_NUMLOCK"}, {KeyScrollLock, "KEY_SCROLLLOCK"},
	{KeyKP0, "KEY_KP0"}, {KeyKP1, "KEY_KP1"}, {KeyKP2, "KEY_KP2"}, {KeyKP3, "KEY_KP3"}, {KeyKP4, "KEY_KP4"},
	{KeyKP5, "KEY_KP5"}, {KeyKP6, "KEY_KP6"}, {KeyKP7, "KEY_KP7"}, {KeyKP8, "KEY_KP8"}, {KeyKP9, "KEY_KP9"},
	{KeyKPMinus, "KEY_KPMINUS"}, {KeyKPPlus, "KEY_KPPLUS"}, {KeyKPDot, "KEY_KPDOT"}, {KeyKPEnter, "KEY_KPENTER"}, {KeyKPSlash, "KEY_KPSLASH"},
	{KeyRightCtrl, "KEY_RIGHTCTRL"}, {KeySysRq, "KEY_SYSRQ"}, {KeyRightAlt, "KEY_RIGHTALT"},
	{KeyHome, "KEY_HOME"}, {KeyUp, "KEY_UP"}, {KeyPageUp, "KEY_PAGEUP"}, {KeyLeft, "KEY_LEFT"}, {KeyRight, "KEY_RIGHT"},
	{KeyEnd, "KEY_END"}, {KeyDown, "KEY_DOWN"}, {KeyPageDown, "KEY_PAGEDOWN"}, {KeyInsert, "KEY_INSERT"}, {KeyDelete, "KEY_DELETE"},
	{KeyMute, "KEY_MUTE"}, {KeyVolumeDown, "KEY_VOLUMEDOWN"}, {KeyVolumeUp, "KEY_VOLUMEUP"},
	{KeyPause, "KEY_PAUSE"}, {KeyLeftMeta, "KEY_LEFTMETA"}, {KeyRightMeta, "KEY_RIGHTMETA"}, {KeyMenu, "KEY_MENU"},
	{KeyF13, "KEY_F13"}, {KeyF14, "KEY_F14"}, {KeyF15, "KEY_F15"}, {KeyF16, "KEY_F16"}, {KeyF17, "KEY_F17"}, {KeyF18, "KEY_F18"},
	{KeyF19, "KEY_F19"}, {KeyF20, "KEY_F20"}, {KeyF21, "KEY_F21"}, {KeyF22, "KEY_F22"}, {KeyF23, "KEY_F23"}, {KeyF24, "KEY_F24"},

	{BTNSide, "BTN_BACK"}, {BTNExtra, "BTN_FORWARD"},
}

var (
	byName = make(map[string]uint16, len(names))
	byCode = make(map[uint16]string, len(names))
)

func init() {
	for _, entry := range names {
		if _, ok := byName[entry.name]; !ok {
			byName[entry.name] = entry.code
		}
		if _, ok := byCode[entry.code]; !ok {
			byCode[entry.code] = entry.name
		}
	}
}

// Parse accepts a KEY_*/BTN_* name (case-insensitive) or a numeric code.
func Parse(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("key code is empty")
	}
	if code, ok := byName[raw]; ok {
		return code, nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q: use names like KEY_1/KEY_F8 or a numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("key code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

func Format(code uint16) string {
	if name, ok := byCode[code]; ok {
		return name
	}
	return strconv.Itoa(int(code))
}
