// Package lsm303agr provides a driver for the accelerometer half of the
// LSM303AGR on the micro:bit v2 internal I2C bus.
//
//	d := lsm303agr.New(bus)
//	id, err := d.AccelerometerID()            // 0x33 when the part answers
//	err = d.SetAccelModeAndODR(lsm303agr.HighResolution, lsm303agr.ODR50Hz)
//	s, err := d.Acceleration()                // milli-g, ±2 g full scale
//
// Every register access is a single write-then-read transaction; bus errors
// are returned as-is.
package lsm303agr

import (
	"errors"
	"time"

	"microbit-go/i2creg"
	"microbit-go/x/mathx"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver.
var (
	ErrInvalidODR = errors.New("lsm303agr: data rate not supported in mode")
	ErrPoweredOff = errors.New("lsm303agr: accelerometer powered down")
)

// AccelMode selects resolution and power.
type AccelMode uint8

const (
	PowerDown      AccelMode = iota
	LowPower                 // 8-bit
	Normal                   // 10-bit
	HighResolution           // 12-bit
)

func (m AccelMode) String() string {
	switch m {
	case LowPower:
		return "low-power"
	case Normal:
		return "normal"
	case HighResolution:
		return "high-resolution"
	default:
		return "power-down"
	}
}

// shift right-aligns the left-justified sample; scale is mg per LSB at ±2 g.
func (m AccelMode) shiftScale() (shift uint8, scale int32) {
	switch m {
	case LowPower:
		return 8, 16
	case Normal:
		return 6, 4
	default:
		return 4, 1
	}
}

// ODR is the output data rate.
type ODR uint8

// Values are the CTRL_REG1_A ODR field.
const (
	ODR1Hz   ODR = 1
	ODR10Hz  ODR = 2
	ODR25Hz  ODR = 3
	ODR50Hz  ODR = 4
	ODR100Hz ODR = 5
	ODR200Hz ODR = 6
	ODR400Hz ODR = 7
)

// Hz returns the rate in hertz.
func (o ODR) Hz() uint32 {
	switch o {
	case ODR1Hz:
		return 1
	case ODR10Hz:
		return 10
	case ODR25Hz:
		return 25
	case ODR50Hz:
		return 50
	case ODR100Hz:
		return 100
	case ODR200Hz:
		return 200
	case ODR400Hz:
		return 400
	}
	return 0
}

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// AccelAddress defaults to 0x19 if zero.
	AccelAddress uint16
	// MagAddress defaults to 0x1E if zero.
	MagAddress uint16
	// Delay waits out the turn-on time after a mode change. Default time.Sleep.
	Delay func(time.Duration)
}

// Device wraps an I2C connection to an LSM303AGR.
type Device struct {
	bus          drivers.I2C
	AccelAddress uint16
	MagAddress   uint16

	delay func(time.Duration)
	mode  AccelMode
	odr   ODR
	buf   [6]byte
}

// New creates a Device on an already configured bus. It does not touch the
// hardware.
func New(bus drivers.I2C) Device {
	return Device{
		bus:          bus,
		AccelAddress: AccelAddress,
		MagAddress:   MagAddress,
		delay:        time.Sleep,
	}
}

// Configure applies optional config.
func (d *Device) Configure(cfgs ...Config) {
	if len(cfgs) == 0 {
		return
	}
	c := cfgs[0]
	if c.AccelAddress != 0 {
		d.AccelAddress = c.AccelAddress
	}
	if c.MagAddress != 0 {
		d.MagAddress = c.MagAddress
	}
	if c.Delay != nil {
		d.delay = c.Delay
	}
}

func (d *Device) readAccel(reg uint8, dst []byte) error {
	return i2creg.Read(d.bus, uint8(d.AccelAddress), reg, dst)
}

// AccelerometerID reads WHO_AM_I_A. A healthy part returns 0x33.
func (d *Device) AccelerometerID() (uint8, error) {
	return i2creg.ReadByte(d.bus, uint8(d.AccelAddress), regWhoAmIA)
}

// MagnetometerID reads WHO_AM_I_M. A healthy part returns 0x40.
func (d *Device) MagnetometerID() (uint8, error) {
	return i2creg.ReadByte(d.bus, uint8(d.MagAddress), regWhoAmIM)
}

// Connected reports whether both dies answer with their documented identity.
func (d *Device) Connected() bool {
	a, err := d.AccelerometerID()
	if err != nil || a != AccelID {
		return false
	}
	m, err := d.MagnetometerID()
	return err == nil && m == MagID
}

// Mode returns the last mode set.
func (d *Device) Mode() AccelMode { return d.mode }

// SetAccelModeAndODR powers the accelerometer into mode at odr and waits for
// the first valid sample. PowerDown ignores odr.
func (d *Device) SetAccelModeAndODR(mode AccelMode, odr ODR) error {
	if mode != PowerDown && odr.Hz() == 0 {
		return ErrInvalidODR
	}
	var ctrl1, ctrl4 byte
	switch mode {
	case PowerDown:
		odr = 0
	case LowPower:
		ctrl1 |= ctrl1LPen
	case HighResolution:
		ctrl4 |= ctrl4HR
	}
	ctrl1 |= byte(odr)<<ctrl1ODRPos | ctrl1XYZen
	ctrl4 |= ctrl4BDU

	// HR and LPen must never be set together: clear LPen first when leaving
	// low-power, otherwise clear or set HR first.
	first, second := regWrite{regCtrl4A, ctrl4}, regWrite{regCtrl1A, ctrl1}
	prev := d.mode
	if prev == LowPower {
		first, second = second, first
	}
	for _, w := range [2]regWrite{first, second} {
		if err := i2creg.WriteByte(d.bus, uint8(d.AccelAddress), w.reg, w.v); err != nil {
			return err
		}
	}
	d.mode, d.odr = mode, odr
	if mode != PowerDown && mode != prev {
		d.delay(TurnOnTime(mode, odr))
	}
	return nil
}

type regWrite struct{ reg, v byte }

// TurnOnTime is the datasheet settling time after entering mode at odr:
// 1/ODR in low-power, 1.6/ODR in normal and 7/ODR in high-resolution.
func TurnOnTime(mode AccelMode, odr ODR) time.Duration {
	hz := odr.Hz()
	if hz == 0 {
		return 0
	}
	var tenths uint32
	switch mode {
	case LowPower:
		tenths = 10
	case Normal:
		tenths = 16
	case HighResolution:
		tenths = 70
	default:
		return 0
	}
	return time.Duration(mathx.CeilDiv(tenths*100_000, hz)) * time.Microsecond
}

// Status is STATUS_REG_A.
type Status uint8

// XYZDataAvailable reports a new set of samples.
func (s Status) XYZDataAvailable() bool { return s&statusZYXDA != 0 }

// XYZOverrun reports that a sample set was overwritten before being read.
func (s Status) XYZOverrun() bool { return s&statusZYXOR != 0 }

// AccelStatus reads STATUS_REG_A.
func (d *Device) AccelStatus() (Status, error) {
	b, err := i2creg.ReadByte(d.bus, uint8(d.AccelAddress), regStatusA)
	return Status(b), err
}

// Sample is one acceleration reading in milli-g.
type Sample struct {
	X, Y, Z int32
}

// XYZmg returns the three axes in milli-g.
func (s Sample) XYZmg() (x, y, z int32) { return s.X, s.Y, s.Z }

// Acceleration reads OUT_X_L_A..OUT_Z_H_A in one auto-incrementing burst and
// converts to milli-g for the current mode.
func (d *Device) Acceleration() (Sample, error) {
	if d.mode == PowerDown {
		return Sample{}, ErrPoweredOff
	}
	b := d.buf[:]
	if err := d.readAccel(regOutXLA|autoIncrAcc, b); err != nil {
		return Sample{}, err
	}
	shift, scale := d.mode.shiftScale()
	conv := func(lo, hi byte) int32 {
		raw := int16(uint16(hi)<<8 | uint16(lo))
		return int32(raw>>shift) * scale
	}
	return Sample{
		X: conv(b[0], b[1]),
		Y: conv(b[2], b[3]),
		Z: conv(b[4], b[5]),
	}, nil
}
