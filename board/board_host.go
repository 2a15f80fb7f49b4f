//go:build !microbit_v2

package board

import (
	"microbit-go/drivers/lsm303agr"
	"microbit-go/hal"
	"microbit-go/i2creg"
)

// host gives tests and host runs access to the simulated world.
type host struct {
	Pins  *hal.HostPinFactory
	Line  *i2creg.SimLine
	Accel *lsm303agr.Sim
}

func newBoard() (*Board, error) {
	f := &hal.HostPinFactory{}
	b, err := pins(f)
	if err != nil {
		return nil, err
	}
	// Released buttons read high through the board's pull-ups.
	b.ButtonA.Set(true)
	b.ButtonB.Set(true)

	b.Pins = f
	b.Line = i2creg.NewSimLine()
	b.Accel = lsm303agr.NewSim()
	b.Accel.Attach(b.Line)
	b.I2C = i2creg.NewBus(b.Line)
	return b, nil
}

// Press drives a button pin low, as a finger would.
func (b *Board) Press(btn hal.IRQPin) { btn.Set(false) }

// Release lets a button pin return high.
func (b *Board) Release(btn hal.IRQPin) { btn.Set(true) }
