// Package i2creg implements register access on an I2C bus.
//
// Most I2C peripherals expose a register file. Reading a register is a fixed
// transaction:
//
//	START, addr+W, reg, REPEATED START, addr+R, data..., NACK, STOP
//
// Every byte read is acknowledged except the last, which the controller NACKs
// to tell the target to release SDA before the stop condition. There is no
// retry: a missing acknowledgement is reported as errcode.NoAck after the bus
// has been released with a stop.
//
// Two forms are provided. ReadRegister/WriteRegister drive a byte-level Line
// step by step. Read/Write express the same transaction as one drivers.I2C Tx
// call, which is how the nRF52 TWIM peripheral (machine.I2C) sequences it in
// hardware.
package i2creg

import (
	"microbit-go/errcode"

	"tinygo.org/x/drivers"
)

// Line is byte-level control of an I2C controller.
type Line interface {
	// Start drives a start condition, or a repeated start if the bus is held.
	Start()
	// Send clocks out b and reports whether the target acknowledged it.
	Send(b byte) (ack bool)
	// Recv clocks in one byte and answers with ACK (true) or NACK.
	Recv(ack bool) byte
	// Stop drives a stop condition and releases the bus.
	Stop()
}

func addrW(addr uint8) byte { return addr << 1 }
func addrR(addr uint8) byte { return addr<<1 | 1 }

func noAck(op, what string) error {
	return &errcode.E{C: errcode.NoAck, Op: op, Msg: what}
}

// ReadRegister reads len(dst) bytes starting at reg from the target at the
// 7-bit address addr.
func ReadRegister(l Line, addr, reg uint8, dst []byte) error {
	if len(dst) == 0 {
		return errcode.InvalidParams
	}
	l.Start()
	if !l.Send(addrW(addr)) {
		l.Stop()
		return noAck("i2c read", "address")
	}
	if !l.Send(reg) {
		l.Stop()
		return noAck("i2c read", "register")
	}
	l.Start()
	if !l.Send(addrR(addr)) {
		l.Stop()
		return noAck("i2c read", "address")
	}
	last := len(dst) - 1
	for i := range dst {
		dst[i] = l.Recv(i < last)
	}
	l.Stop()
	return nil
}

// WriteRegister writes data starting at reg.
func WriteRegister(l Line, addr, reg uint8, data []byte) error {
	l.Start()
	if !l.Send(addrW(addr)) {
		l.Stop()
		return noAck("i2c write", "address")
	}
	if !l.Send(reg) {
		l.Stop()
		return noAck("i2c write", "register")
	}
	for _, b := range data {
		if !l.Send(b) {
			l.Stop()
			return noAck("i2c write", "data")
		}
	}
	l.Stop()
	return nil
}

// Read is ReadRegister over a drivers.I2C bus.
func Read(bus drivers.I2C, addr, reg uint8, dst []byte) error {
	if len(dst) == 0 {
		return errcode.InvalidParams
	}
	return bus.Tx(uint16(addr), []byte{reg}, dst)
}

// ReadByte reads a single register.
func ReadByte(bus drivers.I2C, addr, reg uint8) (byte, error) {
	var b [1]byte
	if err := Read(bus, addr, reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Write is WriteRegister over a drivers.I2C bus.
func Write(bus drivers.I2C, addr, reg uint8, data []byte) error {
	w := make([]byte, 1+len(data))
	w[0] = reg
	copy(w[1:], data)
	return bus.Tx(uint16(addr), w, nil)
}

// WriteByte writes a single register.
func WriteByte(bus drivers.I2C, addr, reg, v uint8) error {
	return bus.Tx(uint16(addr), []byte{reg, v}, nil)
}
