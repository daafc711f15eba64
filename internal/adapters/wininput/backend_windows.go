//go:build windows

package wininput

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
)

const (
	whKeyboardLL = 13

	wmQuit       = 0x0012
	wmKeyDown    = 0x0100
	wmSysKeyDown = 0x0104

	llkhfLowerILInjected = 0x00000002

	inputMouse          = 0
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")

	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procGetCurrentThreadID = kernel32.NewProc("GetCurrentThreadId")

	keyboardHookCallback = syscall.NewCallback(keyboardLLCallback)

	// The LL hook callback has no user data pointer, so the installed
	// backend is routed through here.
	activeBackend atomic.Pointer[Backend]
)

type point struct {
	X int32
	Y int32
}

type keyboardLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type message struct {
	Hwnd     uintptr
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

// Backend listens for key-downs with a WH_KEYBOARD_LL hook and clicks with
// SendInput. Events are always passed on to the next hook.
type Backend struct {
	logger autoclicker.Logger

	mu       sync.Mutex
	emit     func(uint16)
	threadID uint32
	loopDone chan struct{}
}

func NewBackend(logger autoclicker.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Backend{logger: logger}, nil
}

func (b *Backend) Install(emit func(uint16)) error {
	if emit == nil {
		return fmt.Errorf("emit is nil")
	}
	if !activeBackend.CompareAndSwap(nil, b) {
		return fmt.Errorf("windows keyboard hook is already active")
	}

	b.mu.Lock()
	b.emit = emit
	b.loopDone = make(chan struct{})
	done := b.loopDone
	b.mu.Unlock()

	ready := make(chan error, 1)
	go b.hookLoop(ready, done)

	if err := <-ready; err != nil {
		<-done
		b.mu.Lock()
		b.emit = nil
		b.threadID = 0
		b.loopDone = nil
		b.mu.Unlock()
		return err
	}
	b.logger.Debug("Keyboard hook installed")
	return nil
}

// Uninstall posts WM_QUIT to the hook thread and waits for it to unhook.
func (b *Backend) Uninstall() error {
	b.mu.Lock()
	threadID := b.threadID
	done := b.loopDone
	b.mu.Unlock()

	if done == nil {
		return nil
	}
	if threadID != 0 {
		_, _, _ = procPostThreadMessageW.Call(uintptr(threadID), uintptr(wmQuit), 0, 0)
	}
	<-done

	b.mu.Lock()
	b.emit = nil
	b.threadID = 0
	b.loopDone = nil
	b.mu.Unlock()
	b.logger.Debug("Keyboard hook removed")
	return nil
}

func (b *Backend) hookLoop(ready chan<- error, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)
	defer activeBackend.CompareAndSwap(b, nil)

	threadID, _, _ := procGetCurrentThreadID.Call()
	b.mu.Lock()
	b.threadID = uint32(threadID)
	b.mu.Unlock()

	keyboardHook, _, keyboardErr := procSetWindowsHookExW.Call(uintptr(whKeyboardLL), keyboardHookCallback, 0, 0)
	if keyboardHook == 0 {
		ready <- fmt.Errorf("failed to install keyboard hook: %w", keyboardErr)
		return
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(keyboardHook)
	}()

	ready <- nil

	var msg message
	for {
		ret, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			b.logger.Warn("Windows message loop failed", "err", callErr)
			return
		case 0:
			return
		default:
			_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
		}
	}
}

func keyboardLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 {
		if b := activeBackend.Load(); b != nil {
			b.handleKeyboardHook(wParam, lParam)
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

func (b *Backend) handleKeyboardHook(wParam uintptr, lParam uintptr) {
	if lParam == 0 {
		return
	}
	switch uint32(wParam) {
	case wmKeyDown, wmSysKeyDown:
	default:
		return
	}

	event := (*keyboardLLHookStruct)(unsafe.Pointer(lParam))
	if event.Flags&llkhfInjected != 0 || event.Flags&llkhfLowerILInjected != 0 {
		return
	}

	code, ok := CodeFromVK(event.VkCode, event.Flags)
	if !ok {
		return
	}

	b.mu.Lock()
	emit := b.emit
	b.mu.Unlock()
	if emit != nil {
		emit(code)
	}
}

// WriteEvents maps left-button key events onto SendInput mouse flags.
// Other events are ignored.
func (b *Backend) WriteEvents(events ...autoclicker.Event) error {
	inputs := make([]input, 0, len(events))
	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey || event.Code != autoclicker.LeftButtonCode {
			continue
		}

		var flags uint32
		switch event.Value {
		case 1:
			flags = mouseeventfLeftDown
		case 0:
			flags = mouseeventfLeftUp
		default:
			continue
		}
		inputs = append(inputs, input{
			Type: inputMouse,
			Mi:   mouseInput{DwFlags: flags},
		})
	}

	if len(inputs) == 0 {
		return nil
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}

func (b *Backend) Close() error {
	return nil
}

// DeviceInfo describes the single global hook source Windows exposes.
type DeviceInfo struct {
	Path string
	Name string
}

func ListInputDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{Path: "global", Name: "Windows Global Input"},
	}, nil
}
