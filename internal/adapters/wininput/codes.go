package wininput

import "github.com/justcode1234/AutoClicker/internal/core/keycode"

const (
	vkBACK       uint32 = 0x08
	vkTAB        uint32 = 0x09
	vkRETURN     uint32 = 0x0D
	vkSHIFT      uint32 = 0x10
	vkCONTROL    uint32 = 0x11
	vkMENU       uint32 = 0x12
	vkPAUSE      uint32 = 0x13
	vkCAPITAL    uint32 = 0x14
	vkESCAPE     uint32 = 0x1B
	vkSPACE      uint32 = 0x20
	vkPRIOR      uint32 = 0x21
	vkNEXT       uint32 = 0x22
	vkEND        uint32 = 0x23
	vkHOME       uint32 = 0x24
	vkLEFT       uint32 = 0x25
	vkUP         uint32 = 0x26
	vkRIGHT      uint32 = 0x27
	vkDOWN       uint32 = 0x28
	vkSNAPSHOT   uint32 = 0x2C
	vkINSERT     uint32 = 0x2D
	vkDELETE     uint32 = 0x2E
	vk0          uint32 = 0x30
	vk1          uint32 = 0x31
	vk2          uint32 = 0x32
	vk3          uint32 = 0x33
	vk4          uint32 = 0x34
	vk5          uint32 = 0x35
	vk6          uint32 = 0x36
	vk7          uint32 = 0x37
	vk8          uint32 = 0x38
	vk9          uint32 = 0x39
	vkA          uint32 = 0x41
	vkB          uint32 = 0x42
	vkC          uint32 = 0x43
	vkD          uint32 = 0x44
	vkE          uint32 = 0x45
	vkF          uint32 = 0x46
	vkG          uint32 = 0x47
	vkH          uint32 = 0x48
	vkI          uint32 = 0x49
	vkJ          uint32 = 0x4A
	vkK          uint32 = 0x4B
	vkL          uint32 = 0x4C
	vkM          uint32 = 0x4D
	vkN          uint32 = 0x4E
	vkO          uint32 = 0x4F
	vkP          uint32 = 0x50
	vkQ          uint32 = 0x51
	vkR          uint32 = 0x52
	vkS          uint32 = 0x53
	vkT          uint32 = 0x54
	vkU          uint32 = 0x55
	vkV          uint32 = 0x56
	vkW          uint32 = 0x57
	vkX          uint32 = 0x58
	vkY          uint32 = 0x59
	vkZ          uint32 = 0x5A
	vkLWIN       uint32 = 0x5B
	vkRWIN       uint32 = 0x5C
	vkAPPS       uint32 = 0x5D
	vkNUMPAD0    uint32 = 0x60
	vkNUMPAD1    uint32 = 0x61
	vkNUMPAD2    uint32 = 0x62
	vkNUMPAD3    uint32 = 0x63
	vkNUMPAD4    uint32 = 0x64
	vkNUMPAD5    uint32 = 0x65
	vkNUMPAD6    uint32 = 0x66
	vkNUMPAD7    uint32 = 0x67
	vkNUMPAD8    uint32 = 0x68
	vkNUMPAD9    uint32 = 0x69
	vkMULTIPLY   uint32 = 0x6A
	vkADD        uint32 = 0x6B
	vkSUBTRACT   uint32 = 0x6D
	vkDECIMAL    uint32 = 0x6E
	vkDIVIDE     uint32 = 0x6F
	vkF1         uint32 = 0x70
	vkF2         uint32 = 0x71
	vkF3         uint32 = 0x72
	vkF4         uint32 = 0x73
	vkF5         uint32 = 0x74
	vkF6         uint32 = 0x75
	vkF7         uint32 = 0x76
	vkF8         uint32 = 0x77
	vkF9         uint32 = 0x78
	vkF10        uint32 = 0x79
	vkF11        uint32 = 0x7A
	vkF12        uint32 = 0x7B
	vkF13        uint32 = 0x7C
	vkF14        uint32 = 0x7D
	vkF15        uint32 = 0x7E
	vkF16        uint32 = 0x7F
	vkF17        uint32 = 0x80
	vkF18        uint32 = 0x81
	vkF19        uint32 = 0x82
	vkF20        uint32 = 0x83
	vkF21        uint32 = 0x84
	vkF22        uint32 = 0x85
	vkF23        uint32 = 0x86
	vkF24        uint32 = 0x87
	vkNUMLOCK    uint32 = 0x90
	vkSCROLL     uint32 = 0x91
	vkLSHIFT     uint32 = 0xA0
	vkRSHIFT     uint32 = 0xA1
	vkLCONTROL   uint32 = 0xA2
	vkRCONTROL   uint32 = 0xA3
	vkLMENU      uint32 = 0xA4
	vkRMENU      uint32 = 0xA5
	vkVOLUMEMUTE uint32 = 0xAD
	vkVOLUMEDOWN uint32 = 0xAE
	vkVOLUMEUP   uint32 = 0xAF
	vkOEM1       uint32 = 0xBA
	vkOEMPLUS    uint32 = 0xBB
	vkOEMCOMMA   uint32 = 0xBC
	vkOEMMINUS   uint32 = 0xBD
	vkOEMPERIOD  uint32 = 0xBE
	vkOEM2       uint32 = 0xBF
	vkOEM3       uint32 = 0xC0
	vkOEM4       uint32 = 0xDB
	vkOEM5       uint32 = 0xDC
	vkOEM6       uint32 = 0xDD
	vkOEM7       uint32 = 0xDE
)

const (
	llkhfExtended = 0x01
	llkhfInjected = 0x10
)

// vkToCode maps virtual-key codes to input-event key codes. Keys whose
// meaning depends on the extended flag are resolved in CodeFromVK.
var vkToCode = map[uint32]uint16{
	vkESCAPE:     keycode.KeyEsc,
	vk1:          keycode.Key1,
	vk2:          keycode.Key2,
	vk3:          keycode.Key3,
	vk4:          keycode.Key4,
	vk5:          keycode.Key5,
	vk6:          keycode.Key6,
	vk7:          keycode.Key7,
	vk8:          keycode.Key8,
	vk9:          keycode.Key9,
	vk0:          keycode.Key0,
	vkOEMMINUS:   keycode.KeyMinus,
	vkOEMPLUS:    keycode.KeyEqual,
	vkBACK:       keycode.KeyBackspace,
	vkTAB:        keycode.KeyTab,
	vkQ:          keycode.KeyQ,
	vkW:          keycode.KeyW,
	vkE:          keycode.KeyE,
	vkR:          keycode.KeyR,
	vkT:          keycode.KeyT,
	vkY:          keycode.KeyY,
	vkU:          keycode.KeyU,
	vkI:          keycode.KeyI,
	vkO:          keycode.KeyO,
	vkP:          keycode.KeyP,
	vkOEM4:       keycode.KeyLeftBrace,
	vkOEM6:       keycode.KeyRightBrace,
	vkRETURN:     keycode.KeyEnter,
	vkLCONTROL:   keycode.KeyLeftCtrl,
	vkA:          keycode.KeyA,
	vkS:          keycode.KeyS,
	vkD:          keycode.KeyD,
	vkF:          keycode.KeyF,
	vkG:          keycode.KeyG,
	vkH:          keycode.KeyH,
	vkJ:          keycode.KeyJ,
	vkK:          keycode.KeyK,
	vkL:          keycode.KeyL,
	vkOEM1:       keycode.KeySemicolon,
	vkOEM7:       keycode.KeyApostrophe,
	vkOEM3:       keycode.KeyGrave,
	vkLSHIFT:     keycode.KeyLeftShift,
	vkOEM5:       keycode.KeyBackslash,
	vkZ:          keycode.KeyZ,
	vkX:          keycode.KeyX,
	vkC:          keycode.KeyC,
	vkV:          keycode.KeyV,
	vkB:          keycode.KeyB,
	vkN:          keycode.KeyN,
	vkM:          keycode.KeyM,
	vkOEMCOMMA:   keycode.KeyComma,
	vkOEMPERIOD:  keycode.KeyDot,
	vkOEM2:       keycode.KeySlash,
	vkRSHIFT:     keycode.KeyRightShift,
	vkMULTIPLY:   keycode.KeyKPAsterisk,
	vkLMENU:      keycode.KeyLeftAlt,
	vkSPACE:      keycode.KeySpace,
	vkCAPITAL:    keycode.KeyCapsLock,
	vkF1:         keycode.KeyF1,
	vkF2:         keycode.KeyF2,
	vkF3:         keycode.KeyF3,
	vkF4:         keycode.KeyF4,
	vkF5:         keycode.KeyF5,
	vkF6:         keycode.KeyF6,
	vkF7:         keycode.KeyF7,
	vkF8:         keycode.KeyF8,
	vkF9:         keycode.KeyF9,
	vkF10:        keycode.KeyF10,
	vkNUMLOCK:    keycode.KeyNumLock,
	vkSCROLL:     keycode.KeyScrollLock,
	vkNUMPAD7:    keycode.KeyKP7,
	vkNUMPAD8:    keycode.KeyKP8,
	vkNUMPAD9:    keycode.KeyKP9,
	vkSUBTRACT:   keycode.KeyKPMinus,
	vkNUMPAD4:    keycode.KeyKP4,
	vkNUMPAD5:    keycode.KeyKP5,
	vkNUMPAD6:    keycode.KeyKP6,
	vkADD:        keycode.KeyKPPlus,
	vkNUMPAD1:    keycode.KeyKP1,
	vkNUMPAD2:    keycode.KeyKP2,
	vkNUMPAD3:    keycode.KeyKP3,
	vkNUMPAD0:    keycode.KeyKP0,
	vkDECIMAL:    keycode.KeyKPDot,
	vkF11:        keycode.KeyF11,
	vkF12:        keycode.KeyF12,
	vkRCONTROL:   keycode.KeyRightCtrl,
	vkDIVIDE:     keycode.KeyKPSlash,
	vkSNAPSHOT:   keycode.KeySysRq,
	vkRMENU:      keycode.KeyRightAlt,
	vkHOME:       keycode.KeyHome,
	vkUP:         keycode.KeyUp,
	vkPRIOR:      keycode.KeyPageUp,
	vkLEFT:       keycode.KeyLeft,
	vkRIGHT:      keycode.KeyRight,
	vkEND:        keycode.KeyEnd,
	vkDOWN:       keycode.KeyDown,
	vkNEXT:       keycode.KeyPageDown,
	vkINSERT:     keycode.KeyInsert,
	vkDELETE:     keycode.KeyDelete,
	vkVOLUMEMUTE: keycode.KeyMute,
	vkVOLUMEDOWN: keycode.KeyVolumeDown,
	vkVOLUMEUP:   keycode.KeyVolumeUp,
	vkPAUSE:      keycode.KeyPause,
	vkLWIN:       keycode.KeyLeftMeta,
	vkRWIN:       keycode.KeyRightMeta,
	vkAPPS:       keycode.KeyMenu,
	vkF13:        keycode.KeyF13,
	vkF14:        keycode.KeyF14,
	vkF15:        keycode.KeyF15,
	vkF16:        keycode.KeyF16,
	vkF17:        keycode.KeyF17,
	vkF18:        keycode.KeyF18,
	vkF19:        keycode.KeyF19,
	vkF20:        keycode.KeyF20,
	vkF21:        keycode.KeyF21,
	vkF22:        keycode.KeyF22,
	vkF23:        keycode.KeyF23,
	vkF24:        keycode.KeyF24,
}

// CodeFromVK translates a KBDLLHOOKSTRUCT vkCode/flags pair.
func CodeFromVK(vk, flags uint32) (uint16, bool) {
	extended := flags&llkhfExtended != 0
	switch vk {
	case vkRETURN:
		if extended {
			return keycode.KeyKPEnter, true
		}
		return keycode.KeyEnter, true
	case vkSHIFT:
		return keycode.KeyLeftShift, true
	case vkCONTROL:
		if extended {
			return keycode.KeyRightCtrl, true
		}
		return keycode.KeyLeftCtrl, true
	case vkMENU:
		if extended {
			return keycode.KeyRightAlt, true
		}
		return keycode.KeyLeftAlt, true
	}

	code, ok := vkToCode[vk]
	return code, ok
}
