// Package buttons implements the two ways the examples read the micro:bit
// buttons: sampling the pin in a loop, and reacting to a GPIOTE interrupt.
package buttons

import (
	"microbit-go/edge"
	"microbit-go/hal"
)

// Poller samples a button pin and reports each press once. It also keeps a
// latch that flips on every press.
type Poller struct {
	pin       hal.GPIOPin
	activeLow bool
	latch     *edge.Toggle
}

// NewPoller configures pin as an input. The micro:bit buttons have external
// pull-ups and read low while pressed, so activeLow is normally true and pull
// is hal.PullNone.
func NewPoller(pin hal.GPIOPin, pull hal.Pull, activeLow bool) (*Poller, error) {
	if err := pin.ConfigureInput(pull); err != nil {
		return nil, err
	}
	p := &Poller{pin: pin, activeLow: activeLow}
	p.latch = edge.NewToggle(edge.Rising, p.Pressed())
	return p, nil
}

// Pressed reads the pin and converts it to a logical pressed state.
func (p *Poller) Pressed() bool {
	return p.pin.Get() != p.activeLow
}

// Poll takes one sample and reports true only on the released->pressed
// transition.
func (p *Poller) Poll() bool {
	return p.latch.Update(p.Pressed())
}

// On reports the latch: true after an odd number of presses.
func (p *Poller) On() bool { return p.latch.On() }
