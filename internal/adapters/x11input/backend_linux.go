//go:build linux

package x11input

import (
	"fmt"
	"sync"
	"time"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

const sourceIdentity = "x11-global"

type DeviceInfo struct {
	Path string
	Name string
}

// Backend polls the server keymap for key-downs and clicks through XTest.
// Nothing is grabbed, so other clients still receive every key.
type Backend struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window

	logger autoclicker.Logger
	poll   time.Duration

	keyToCode map[byte]uint16

	injectMu sync.Mutex

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewBackend(poll time.Duration, logger autoclicker.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if poll <= 0 {
		return nil, fmt.Errorf("poll interval must be > 0")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}

	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	b := &Backend{
		xu:      xu,
		conn:    conn,
		rootWin: xu.RootWin(),
		logger:  logger,
		poll:    poll,
	}
	b.keyToCode = b.buildKeyMap()
	if len(b.keyToCode) == 0 {
		conn.Close()
		return nil, fmt.Errorf("X11 keyboard mapping has no usable keys")
	}
	logger.Debug("X11 keymap loaded", "keys", len(b.keyToCode))
	return b, nil
}

func (b *Backend) buildKeyMap() map[byte]uint16 {
	setup := xproto.Setup(b.conn)
	out := make(map[byte]uint16)
	for kc := int(setup.MinKeycode); kc <= int(setup.MaxKeycode); kc++ {
		lookup := keybind.LookupString(b.xu, 0, xproto.Keycode(kc))
		if code, ok := keysymToCode(lookup); ok {
			out[byte(kc)] = code
		}
	}
	return out
}

func (b *Backend) Install(emit func(uint16)) error {
	if emit == nil {
		return fmt.Errorf("emit is nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopCh != nil {
		return fmt.Errorf("x11 listener is already running")
	}

	initial, err := xproto.QueryKeymap(b.conn).Reply()
	if err != nil {
		return fmt.Errorf("query keymap: %w", err)
	}

	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	go b.pollLoop(emit, initial.Keys, b.stopCh, b.doneCh)
	return nil
}

func (b *Backend) Uninstall() error {
	b.mu.Lock()
	stopCh, doneCh := b.stopCh, b.doneCh
	b.stopCh, b.doneCh = nil, nil
	b.mu.Unlock()

	if stopCh == nil {
		return nil
	}
	close(stopCh)
	<-doneCh
	return nil
}

func (b *Backend) pollLoop(emit func(uint16), prev []byte, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(b.poll)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		reply, err := xproto.QueryKeymap(b.conn).Reply()
		if err != nil {
			select {
			case <-stopCh:
				return
			default:
			}
			b.logger.Warn("X11 keymap query failed", "err", err)
			continue
		}

		for _, code := range risingEdges(prev, reply.Keys, b.keyToCode) {
			emit(code)
		}
		prev = reply.Keys
	}
}

func (b *Backend) WriteEvents(events ...autoclicker.Event) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	dirty := false
	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey || event.Code != autoclicker.LeftButtonCode {
			continue
		}

		var eventType byte
		switch event.Value {
		case 1:
			eventType = xproto.ButtonPress
		case 0:
			eventType = xproto.ButtonRelease
		default:
			continue
		}

		if err := xtest.FakeInputChecked(
			b.conn,
			eventType,
			byte(xproto.ButtonIndex1),
			xproto.TimeCurrentTime,
			b.rootWin,
			0,
			0,
			0,
		).Check(); err != nil {
			return err
		}
		dirty = true
	}

	if dirty {
		b.conn.Sync()
	}
	return nil
}

func (b *Backend) Close() error {
	if err := b.Uninstall(); err != nil {
		return err
	}
	b.conn.Close()
	return nil
}

func ListInputDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{Path: sourceIdentity, Name: "X11 Global Input"},
	}, nil
}
