package hookinput

import "github.com/justcode1234/AutoClicker/internal/core/keycode"

// rawToCode maps macOS virtual key codes (kVK_*) as reported in the hook
// event Rawcode to input-event key codes.
var rawToCode = map[uint16]uint16{
	0x00: keycode.KeyA,
	0x01: keycode.KeyS,
	0x02: keycode.KeyD,
	0x03: keycode.KeyF,
	0x04: keycode.KeyH,
	0x05: keycode.KeyG,
	0x06: keycode.KeyZ,
	0x07: keycode.KeyX,
	0x08: keycode.KeyC,
	0x09: keycode.KeyV,
	0x0B: keycode.KeyB,
	0x0C: keycode.KeyQ,
	0x0D: keycode.KeyW,
	0x0E: keycode.KeyE,
	0x0F: keycode.KeyR,
	0x10: keycode.KeyY,
	0x11: keycode.KeyT,
	0x12: keycode.Key1,
	0x13: keycode.Key2,
	0x14: keycode.Key3,
	0x15: keycode.Key4,
	0x16: keycode.Key6,
	0x17: keycode.Key5,
	0x18: keycode.KeyEqual,
	0x19: keycode.Key9,
	0x1A: keycode.Key7,
	0x1B: keycode.KeyMinus,
	0x1C: keycode.Key8,
	0x1D: keycode.Key0,
	0x1E: keycode.KeyRightBrace,
	0x1F: keycode.KeyO,
	0x20: keycode.KeyU,
	0x21: keycode.KeyLeftBrace,
	0x22: keycode.KeyI,
	0x23: keycode.KeyP,
	0x24: keycode.KeyEnter,
	0x25: keycode.KeyL,
	0x26: keycode.KeyJ,
	0x27: keycode.KeyApostrophe,
	0x28: keycode.KeyK,
	0x29: keycode.KeySemicolon,
	0x2A: keycode.KeyBackslash,
	0x2B: keycode.KeyComma,
	0x2C: keycode.KeySlash,
	0x2D: keycode.KeyN,
	0x2E: keycode.KeyM,
	0x2F: keycode.KeyDot,
	0x30: keycode.KeyTab,
	0x31: keycode.KeySpace,
	0x32: keycode.KeyGrave,
	0x33: keycode.KeyBackspace,
	0x35: keycode.KeyEsc,
	0x36: keycode.KeyRightMeta,
	0x37: keycode.KeyLeftMeta,
	0x38: keycode.KeyLeftShift,
	0x39: keycode.KeyCapsLock,
	0x3A: keycode.KeyLeftAlt,
	0x3B: keycode.KeyLeftCtrl,
	0x3C: keycode.KeyRightShift,
	0x3D: keycode.KeyRightAlt,
	0x3E: keycode.KeyRightCtrl,
	0x40: keycode.KeyF17,
	0x41: keycode.KeyKPDot,
	0x43: keycode.KeyKPAsterisk,
	0x45: keycode.KeyKPPlus,
	0x4B: keycode.KeyKPSlash,
	0x4C: keycode.KeyKPEnter,
	0x4E: keycode.KeyKPMinus,
	0x4F: keycode.KeyF18,
	0x50: keycode.KeyF19,
	0x52: keycode.KeyKP0,
	0x53: keycode.KeyKP1,
	0x54: keycode.KeyKP2,
	0x55: keycode.KeyKP3,
	0x56: keycode.KeyKP4,
	0x57: keycode.KeyKP5,
	0x58: keycode.KeyKP6,
	0x59: keycode.KeyKP7,
	0x5A: keycode.KeyF20,
	0x5B: keycode.KeyKP8,
	0x5C: keycode.KeyKP9,
	0x60: keycode.KeyF5,
	0x61: keycode.KeyF6,
	0x62: keycode.KeyF7,
	0x63: keycode.KeyF3,
	0x64: keycode.KeyF8,
	0x65: keycode.KeyF9,
	0x67: keycode.KeyF11,
	0x69: keycode.KeyF13,
	0x6A: keycode.KeyF16,
	0x6B: keycode.KeyF14,
	0x6D: keycode.KeyF10,
	0x6F: keycode.KeyF12,
	0x71: keycode.KeyF15,
	0x72: keycode.KeyInsert,
	0x73: keycode.KeyHome,
	0x74: keycode.KeyPageUp,
	0x75: keycode.KeyDelete,
	0x76: keycode.KeyF4,
	0x77: keycode.KeyEnd,
	0x78: keycode.KeyF2,
	0x79: keycode.KeyPageDown,
	0x7A: keycode.KeyF1,
	0x7B: keycode.KeyLeft,
	0x7C: keycode.KeyRight,
	0x7D: keycode.KeyDown,
	0x7E: keycode.KeyUp,
}

func CodeFromRaw(raw uint16) (uint16, bool) {
	code, ok := rawToCode[raw]
	return code, ok
}

// buttonAction maps a left-button key event onto the robotgo toggle
// direction. ok is false for anything that is not a left press or release.
func buttonAction(code uint16, value int32) (direction string, ok bool) {
	if code != keycode.BTNLeft {
		return "", false
	}
	switch value {
	case 1:
		return "down", true
	case 0:
		return "up", true
	default:
		return "", false
	}
}
