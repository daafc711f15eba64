package autoclicker

import "github.com/justcode1234/AutoClicker/internal/core/keycode"

const (
	EventTypeSyn uint16 = 0x00
	EventTypeKey uint16 = 0x01

	SynReportCode  uint16 = 0
	LeftButtonCode        = keycode.BTNLeft
)

type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

var (
	pressEvents = []Event{
		{Type: EventTypeKey, Code: LeftButtonCode, Value: 1},
		{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
	}
	releaseEvents = []Event{
		{Type: EventTypeKey, Code: LeftButtonCode, Value: 0},
		{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
	}
)

// RunState is the controller's only state.
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "Running"
	default:
		return "Stopped"
	}
}

// Injector writes synthetic input at the current cursor position.
type Injector interface {
	WriteEvents(events ...Event) error
	Close() error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Rand is the subset of *rand.Rand the click loop samples from.
type Rand interface {
	Float64() float64
}
