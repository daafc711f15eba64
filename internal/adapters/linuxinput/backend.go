//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
)

// Backend reads key-downs straight from keyboard event devices and clicks
// through a uinput virtual pointer. It works under Wayland, where neither
// X11 polling nor XTest are available, but needs access to /dev/input and
// /dev/uinput.
type Backend struct {
	sourceDevices []*evdev.InputDevice
	injector      *evdevInjector
	logger        autoclicker.Logger
	poll          time.Duration

	mu        sync.Mutex
	stopCh    chan struct{}
	readersWG sync.WaitGroup
}

type evdevInjector struct {
	dev *evdev.InputDevice
}

func (e *evdevInjector) WriteEvents(events ...autoclicker.Event) error {
	for _, event := range events {
		ev := evdev.InputEvent{
			Type:  evdev.EvType(event.Type),
			Code:  evdev.EvCode(event.Code),
			Value: event.Value,
		}
		if err := e.dev.WriteOne(&ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *evdevInjector) Close() error {
	if e.dev == nil {
		return nil
	}
	return e.dev.Close()
}

// NewBackend opens the keyboards that can emit any of keys (or only
// devicePath when set) and creates the virtual pointer.
func NewBackend(devicePath string, keys []uint16, poll time.Duration, logger autoclicker.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if poll <= 0 {
		return nil, fmt.Errorf("poll interval must be > 0")
	}

	devices, err := OpenKeyboards(devicePath, keys...)
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if err := dev.NonBlock(); err != nil {
			closeInputDevices(devices)
			return nil, fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
	}

	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}
	injectorDev, err := evdev.CreateDevice(virtualDeviceName, id, pointerCapabilities())
	if err != nil {
		closeInputDevices(devices)
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	for _, dev := range devices {
		name, _ := dev.Name()
		logger.Info("Listening on input device", "path", dev.Path(), "name", name)
	}

	return &Backend{
		sourceDevices: devices,
		injector:      &evdevInjector{dev: injectorDev},
		logger:        logger,
		poll:          poll,
	}, nil
}

// pointerCapabilities advertises relative motion alongside BTN_LEFT so the
// compositor classifies the device as a mouse.
func pointerCapabilities() map[evdev.EvType][]evdev.EvCode {
	return map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT},
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y},
	}
}

func (b *Backend) Install(emit func(uint16)) error {
	if emit == nil {
		return fmt.Errorf("emit is nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopCh != nil {
		return fmt.Errorf("evdev listener is already running")
	}

	b.stopCh = make(chan struct{})
	for _, dev := range b.sourceDevices {
		b.readersWG.Add(1)
		go b.readLoop(dev, emit, b.stopCh)
	}
	return nil
}

func (b *Backend) Uninstall() error {
	b.mu.Lock()
	stopCh := b.stopCh
	b.stopCh = nil
	b.mu.Unlock()

	if stopCh == nil {
		return nil
	}
	close(stopCh)
	b.readersWG.Wait()
	return nil
}

func (b *Backend) WriteEvents(events ...autoclicker.Event) error {
	return b.injector.WriteEvents(events...)
}

func (b *Backend) Close() error {
	err := b.Uninstall()
	closeInputDevices(b.sourceDevices)
	return errors.Join(err, b.injector.Close())
}

func (b *Backend) readLoop(dev *evdev.InputDevice, emit func(uint16), stopCh <-chan struct{}) {
	defer b.readersWG.Done()

	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if isDeviceClosedError(err) {
				b.logger.Warn("Input device went away", "path", path)
				return
			}
			if isWouldBlockError(err) {
				if !sleepWithStop(stopCh, b.poll) {
					return
				}
				continue
			}
			b.logger.Warn("Read failed", "path", path, "err", err)
			if !sleepWithStop(stopCh, 100*time.Millisecond) {
				return
			}
			continue
		}

		for _, event := range events {
			if code, ok := keyDownCode(event); ok {
				emit(code)
			}
		}

		select {
		case <-stopCh:
			return
		default:
		}
	}
}

func sleepWithStop(stopCh <-chan struct{}, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stopCh:
		return false
	case <-timer.C:
		return true
	}
}

func closeInputDevices(devices []*evdev.InputDevice) {
	for _, dev := range devices {
		_ = dev.Close()
	}
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
