// Package gpioreg drives nRF52833 GPIO port 0 through its memory-mapped
// registers, without the machine package.
//
// OUTSET and OUTCLR are write-one-to-act: writing bit n sets or clears pin n
// and leaves every other pin alone, so no read-modify-write is needed.
package gpioreg

import "microbit-go/errcode"

// Port 0 register map.
const (
	P0Base uintptr = 0x5000_0000

	OffOUT    uintptr = 0x504
	OffOUTSET uintptr = 0x508
	OffOUTCLR uintptr = 0x50C
	OffIN     uintptr = 0x510
	OffDIR    uintptr = 0x514
	OffDIRSET uintptr = 0x518
	OffDIRCLR uintptr = 0x51C
	OffPINCNF uintptr = 0x700 // PIN_CNF[n] at OffPINCNF + 4*n
)

// PIN_CNF fields.
const (
	CnfDirOutput   uint32 = 1 << 0
	CnfInputDiscon uint32 = 1 << 1
	CnfPullPos            = 2
	CnfPullDown    uint32 = 1 << CnfPullPos
	CnfPullUp      uint32 = 3 << CnfPullPos
)

type Pull uint8

const (
	PullNone Pull = iota
	PullDown
	PullUp
)

// Memory is 32-bit register access at absolute addresses.
type Memory interface {
	Load(addr uintptr) uint32
	Store(addr uintptr, v uint32)
}

// Port is one GPIO port at a base address.
type Port struct {
	mem  Memory
	base uintptr
}

// NewPort returns port 0 over mem.
func NewPort(mem Memory) *Port { return &Port{mem: mem, base: P0Base} }

func (p *Port) reg(off uintptr) uintptr { return p.base + off }

func pinCnf(pin uint8) uintptr { return OffPINCNF + 4*uintptr(pin) }

func checkPin(pin uint8) error {
	if pin > 31 {
		return errcode.UnknownPin
	}
	return nil
}

// ConfigureOutput writes PIN_CNF[pin] = DIR output, input buffer disconnected.
func (p *Port) ConfigureOutput(pin uint8) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	p.mem.Store(p.reg(pinCnf(pin)), CnfDirOutput|CnfInputDiscon)
	return nil
}

// ConfigureInput writes PIN_CNF[pin] = DIR input, buffer connected, pull.
func (p *Port) ConfigureInput(pin uint8, pull Pull) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	var v uint32
	switch pull {
	case PullDown:
		v |= CnfPullDown
	case PullUp:
		v |= CnfPullUp
	}
	p.mem.Store(p.reg(pinCnf(pin)), v)
	return nil
}

// Set drives pin high via OUTSET.
func (p *Port) Set(pin uint8) { p.mem.Store(p.reg(OffOUTSET), 1<<pin) }

// Clear drives pin low via OUTCLR.
func (p *Port) Clear(pin uint8) { p.mem.Store(p.reg(OffOUTCLR), 1<<pin) }

// Get reads pin from IN.
func (p *Port) Get(pin uint8) bool { return p.mem.Load(p.reg(OffIN))&(1<<pin) != 0 }

// Out returns the OUT latch.
func (p *Port) Out() uint32 { return p.mem.Load(p.reg(OffOUT)) }

// Config returns PIN_CNF[pin].
func (p *Port) Config(pin uint8) uint32 { return p.mem.Load(p.reg(pinCnf(pin))) }
