package wininput

import (
	"testing"

	"github.com/justcode1234/AutoClicker/internal/core/keycode"
)

func TestCodeFromVKMappings(t *testing.T) {
	tests := []struct {
		name  string
		vk    uint32
		flags uint32
		want  uint16
	}{
		{name: "digit 1", vk: vk1, want: keycode.Key1},
		{name: "digit 2", vk: vk2, want: keycode.Key2},
		{name: "letter", vk: vkA, want: keycode.KeyA},
		{name: "enter", vk: vkRETURN, want: keycode.KeyEnter},
		{name: "keypad enter", vk: vkRETURN, flags: llkhfExtended, want: keycode.KeyKPEnter},
		{name: "right ctrl", vk: vkCONTROL, flags: llkhfExtended, want: keycode.KeyRightCtrl},
		{name: "f24", vk: vkF24, want: keycode.KeyF24},
	}

	for _, tc := range tests {
		code, ok := CodeFromVK(tc.vk, tc.flags)
		if !ok || code != tc.want {
			t.Fatalf("%s: CodeFromVK(%#x, %#x)=%d,%v, want %d,true", tc.name, tc.vk, tc.flags, code, ok, tc.want)
		}
	}
}

func TestCodeFromVKUnknown(t *testing.T) {
	if code, ok := CodeFromVK(0xFF, 0); ok {
		t.Fatalf("CodeFromVK(0xFF)=%d,true, want false", code)
	}
}
