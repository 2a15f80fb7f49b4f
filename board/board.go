// Package board describes the micro:bit v2 and hands out its peripherals.
//
// Peripherals are claimed once per program with Take. The returned Board
// owns the LED matrix pins, both buttons and the internal I2C bus; a second
// Take fails with errcode.Taken so two parts of a program cannot drive the
// same pins.
package board

import (
	"sync/atomic"

	"microbit-go/errcode"
	"microbit-go/hal"
)

type Board struct {
	Rows    [5]hal.GPIOPin
	Cols    [5]hal.GPIOPin
	ButtonA hal.IRQPin
	ButtonB hal.IRQPin

	// I2C is the internal bus, already configured at I2CHz.
	I2C hal.I2C

	host // platform extras; empty on the device
}

var taken atomic.Bool

// Take claims the board.
func Take() (*Board, error) {
	if !taken.CompareAndSwap(false, true) {
		return nil, errcode.Taken
	}
	b, err := newBoard()
	if err != nil {
		taken.Store(false)
		return nil, err
	}
	return b, nil
}

// MustTake is Take for programs with nothing better to do than stop.
func MustTake() *Board {
	b, err := Take()
	if err != nil {
		panic(err)
	}
	return b
}

// Row1 and Col1 are the pins behind the top-left LED.
func (b *Board) Row1() hal.GPIOPin { return b.Rows[0] }
func (b *Board) Col1() hal.GPIOPin { return b.Cols[0] }

func pins(f hal.PinFactory) (b *Board, err error) {
	b = &Board{}
	get := func(n int) hal.GPIOPin {
		p, ok := f.ByNumber(n)
		if !ok && err == nil {
			err = &errcode.E{C: errcode.UnknownPin, Op: "board.Take"}
		}
		return p
	}
	for i := range Rows {
		b.Rows[i] = get(Rows[i])
		b.Cols[i] = get(Cols[i])
	}
	for _, x := range []struct {
		n   int
		dst *hal.IRQPin
	}{{ButtonA, &b.ButtonA}, {ButtonB, &b.ButtonB}} {
		irq, ok := get(x.n).(hal.IRQPin)
		if !ok && err == nil {
			err = &errcode.E{C: errcode.Unsupported, Op: "board.Take", Msg: "pin without interrupts"}
		}
		*x.dst = irq
	}
	return b, err
}
