package i2creg

import (
	"sync"

	"microbit-go/errcode"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*Bus)(nil)

// Bus adapts a Line to drivers.I2C so that drivers written for TinyGo can
// run over it. Transactions are serialised.
type Bus struct {
	mu sync.Mutex
	l  Line
}

func NewBus(l Line) *Bus { return &Bus{l: l} }

// Tx writes w then, after a repeated start, reads r, without releasing the
// bus in between. With both empty it checks that the address is acknowledged. A one-byte w with a
// read is a register read; a write-only Tx is a register write.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return errcode.InvalidParams
	}
	a := uint8(addr)
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case len(w) == 1 && len(r) > 0:
		return ReadRegister(b.l, a, w[0], r)
	case len(w) > 0 && len(r) == 0:
		return WriteRegister(b.l, a, w[0], w[1:])
	}
	return b.raw(a, w, r)
}

// raw covers the shapes that are not register accesses: bare address checks,
// bare reads and multi-byte command prefixes.
func (b *Bus) raw(a uint8, w, r []byte) error {
	l := b.l
	if len(w) > 0 || len(r) == 0 {
		l.Start()
		if !l.Send(addrW(a)) {
			l.Stop()
			return noAck("i2c tx", "address")
		}
		for _, c := range w {
			if !l.Send(c) {
				l.Stop()
				return noAck("i2c tx", "data")
			}
		}
	}
	if len(r) > 0 {
		l.Start()
		if !l.Send(addrR(a)) {
			l.Stop()
			return noAck("i2c tx", "address")
		}
		last := len(r) - 1
		for i := range r {
			r[i] = l.Recv(i < last)
		}
	}
	l.Stop()
	return nil
}
