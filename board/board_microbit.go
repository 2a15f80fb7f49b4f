//go:build microbit_v2

package board

import (
	"machine"

	"microbit-go/errcode"
	"microbit-go/hal"
)

type host struct{}

func newBoard() (*Board, error) {
	b, err := pins(hal.DefaultPinFactory())
	if err != nil {
		return nil, err
	}
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: I2CHz,
		SCL:       machine.Pin(InternalSCL),
		SDA:       machine.Pin(InternalSDA),
	}); err != nil {
		return nil, errcode.Wrap(errcode.Error, "board.Take", err)
	}
	b.I2C = bus
	return b, nil
}
