package buttons

import (
	"context"
	"sync/atomic"

	"microbit-go/hal"
)

// Toggler flips a single lock-free flag from the pin interrupt. The interrupt
// handler does nothing else; Run observes the flag from the main loop and
// applies changes there.
//
// The flag has exactly one writer (the handler) and one reader (Run), so
// plain atomic loads and stores are sufficient.
type Toggler struct {
	pin   hal.IRQPin
	state atomic.Bool
	irqs  atomic.Uint32
}

// NewToggler registers the interrupt for edge on pin. The pin must already be
// configured as an input.
func NewToggler(pin hal.IRQPin, edge hal.Edge) (*Toggler, error) {
	t := &Toggler{pin: pin}
	if err := pin.SetIRQ(edge, t.handle); err != nil {
		return nil, err
	}
	return t, nil
}

// handle runs in interrupt context: one load, one store, one counter bump.
func (t *Toggler) handle() {
	cur := t.state.Load()
	t.state.Store(!cur)
	t.irqs.Add(1)
}

// State returns the current flag value.
func (t *Toggler) State() bool { return t.state.Load() }

// Interrupts returns how many times the handler has run.
func (t *Toggler) Interrupts() uint32 { return t.irqs.Load() }

// Run calls apply whenever the flag differs from the last applied value, and
// sleeps until the next interrupt in between. It returns when ctx is done.
func (t *Toggler) Run(ctx context.Context, apply func(on bool)) {
	last := false
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if cur := t.state.Load(); cur != last {
			apply(cur)
			last = cur
		}
		hal.WaitForInterrupt()
	}
}

// Close detaches the interrupt handler.
func (t *Toggler) Close() error { return t.pin.ClearIRQ() }
