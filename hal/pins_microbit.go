//go:build microbit_v2

package hal

import "machine"

// DefaultPinFactory maps flat numbers directly onto machine.Pin, which uses
// the same P0/P1 numbering on nRF52.
func DefaultPinFactory() PinFactory { return nrfPinFactory{} }

type nrfPinFactory struct{}

func (nrfPinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 || n > MaxPin {
		return nil, false
	}
	return &nrfPin{p: machine.Pin(n), n: n}, true
}

type nrfPin struct {
	p machine.Pin
	n int
}

func (r *nrfPin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *nrfPin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *nrfPin) Set(level bool) { r.p.Set(level) }
func (r *nrfPin) Get() bool      { return r.p.Get() }

func (r *nrfPin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *nrfPin) Number() int { return r.n }

// SetIRQ claims a GPIOTE channel for the pin (TinyGo allocates one per call).
func (r *nrfPin) SetIRQ(edge Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *nrfPin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e Edge) machine.PinChange {
	switch e {
	case EdgeRising:
		return machine.PinRising
	case EdgeFalling:
		return machine.PinFalling
	case EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}
