package x11input

import (
	"strings"

	"github.com/justcode1234/AutoClicker/internal/core/keycode"
)

var keysymNames = map[string]string{
	"escape":       "KEY_ESC",
	"return":       "KEY_ENTER",
	"tab":          "KEY_TAB",
	"space":        "KEY_SPACE",
	"backspace":    "KEY_BACKSPACE",
	"shift_l":      "KEY_LEFTSHIFT",
	"shift_r":      "KEY_RIGHTSHIFT",
	"control_l":    "KEY_LEFTCTRL",
	"control_r":    "KEY_RIGHTCTRL",
	"alt_l":        "KEY_LEFTALT",
	"alt_r":        "KEY_RIGHTALT",
	"super_l":      "KEY_LEFTMETA",
	"super_r":      "KEY_RIGHTMETA",
	"caps_lock":    "KEY_CAPSLOCK",
	"num_lock":     "KEY_NUMLOCK",
	"scroll_lock":  "KEY_SCROLLLOCK",
	"page_up":      "KEY_PAGEUP",
	"prior":        "KEY_PAGEUP",
	"page_down":    "KEY_PAGEDOWN",
	"next":         "KEY_PAGEDOWN",
	"insert":       "KEY_INSERT",
	"delete":       "KEY_DELETE",
	"home":         "KEY_HOME",
	"end":          "KEY_END",
	"up":           "KEY_UP",
	"down":         "KEY_DOWN",
	"left":         "KEY_LEFT",
	"right":        "KEY_RIGHT",
	"menu":         "KEY_MENU",
	"pause":        "KEY_PAUSE",
	"print":        "KEY_SYSRQ",
	"minus":        "KEY_MINUS",
	"equal":        "KEY_EQUAL",
	"bracketleft":  "KEY_LEFTBRACE",
	"bracketright": "KEY_RIGHTBRACE",
	"semicolon":    "KEY_SEMICOLON",
	"apostrophe":   "KEY_APOSTROPHE",
	"grave":        "KEY_GRAVE",
	"backslash":    "KEY_BACKSLASH",
	"comma":        "KEY_COMMA",
	"period":       "KEY_DOT",
	"slash":        "KEY_SLASH",
	"kp_add":       "KEY_KPPLUS",
	"kp_subtract":  "KEY_KPMINUS",
	"kp_multiply":  "KEY_KPASTERISK",
	"kp_divide":    "KEY_KPSLASH",
	"kp_decimal":   "KEY_KPDOT",
	"kp_enter":     "KEY_KPENTER",
}

// keysymToCode maps the unshifted keysym string of an X keycode to an
// input-event key code.
func keysymToCode(value string) (uint16, bool) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if raw == "" {
		return 0, false
	}

	keyName, ok := keysymNames[raw]
	if !ok {
		switch {
		case len(raw) == 1 && (raw[0] >= 'a' && raw[0] <= 'z' || raw[0] >= '0' && raw[0] <= '9'):
			keyName = "KEY_" + strings.ToUpper(raw)
		case strings.HasPrefix(raw, "f") && isDigits(raw[1:]):
			keyName = "KEY_" + strings.ToUpper(raw)
		case strings.HasPrefix(raw, "kp_") && len(raw) == 4 && isDigits(raw[3:]):
			keyName = "KEY_KP" + raw[3:]
		default:
			return 0, false
		}
	}

	code, err := keycode.Parse(keyName)
	if err != nil {
		return 0, false
	}
	return code, true
}

// risingEdges reports the mapped codes of keys that are down in cur but were
// up in prev. Both are QueryKeymap bit vectors indexed by X keycode.
func risingEdges(prev, cur []byte, keyToCode map[byte]uint16) []uint16 {
	var out []uint16
	for i := range cur {
		var was byte
		if i < len(prev) {
			was = prev[i]
		}
		pressed := cur[i] &^ was
		if pressed == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if pressed&(1<<bit) == 0 {
				continue
			}
			if code, ok := keyToCode[byte(i*8+bit)]; ok {
				out = append(out, code)
			}
		}
	}
	return out
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
