// Package hal holds the pin and bus abstractions the examples are written
// against. On the micro:bit they are backed by TinyGo's machine package; on
// the host they are backed by in-memory fakes so the example logic can be
// exercised by unit tests.
package hal

import "tinygo.org/x/drivers"

// I2C is the transaction shape shared with tinygo drivers: a write of w
// followed by a repeated-start read into r when both are non-empty.
type I2C = drivers.I2C

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is a single digital pin.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// IRQPin extends GPIOPin with interrupts. The handler runs in interrupt
// context on the device and must not block or allocate.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by flat number (P0.n = n, P1.n = 32+n).
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}
