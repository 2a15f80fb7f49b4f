package lsm303agr

import (
	"microbit-go/i2creg"
)

// Sim is a register-level model of the LSM303AGR for host builds and tests.
// It answers the identity registers and turns the acceleration set with
// SetAcceleration into output registers encoded for the active mode.
type Sim struct {
	Accel *i2creg.Target
	Mag   *i2creg.Target

	mg [3]int32
}

// NewSim returns a part lying flat: 0, 0, +1000 mg.
func NewSim() *Sim {
	s := &Sim{
		Accel: &i2creg.Target{Addr: AccelAddress, AutoIncrement: autoIncrAcc},
		Mag:   &i2creg.Target{Addr: MagAddress, AutoIncrement: autoIncrAcc},
		mg:    [3]int32{0, 0, 1000},
	}
	s.Accel.Regs[regWhoAmIA] = AccelID
	s.Mag.Regs[regWhoAmIM] = MagID
	ro := map[uint8]bool{regWhoAmIA: true, regStatusA: true}
	for i := uint8(0); i < 6; i++ {
		ro[regOutXLA+i] = true
	}
	s.Accel.ReadOnly = ro
	s.Mag.ReadOnly = map[uint8]bool{regWhoAmIM: true}
	s.Accel.OnWrite = func(reg, _ byte) {
		if reg == regCtrl1A || reg == regCtrl4A {
			s.encode()
		}
	}
	return s
}

// Attach puts both dies on line.
func (s *Sim) Attach(line *i2creg.SimLine) {
	line.Attach(s.Accel)
	line.Attach(s.Mag)
}

// SetAcceleration sets the simulated reading in milli-g.
func (s *Sim) SetAcceleration(x, y, z int32) {
	s.mg = [3]int32{x, y, z}
	s.encode()
}

func (s *Sim) mode() AccelMode {
	c1, c4 := s.Accel.Regs[regCtrl1A], s.Accel.Regs[regCtrl4A]
	switch {
	case c1>>ctrl1ODRPos == 0:
		return PowerDown
	case c1&ctrl1LPen != 0:
		return LowPower
	case c4&ctrl4HR != 0:
		return HighResolution
	default:
		return Normal
	}
}

func (s *Sim) encode() {
	m := s.mode()
	if m == PowerDown {
		s.Accel.Regs[regStatusA] = 0
		return
	}
	shift, scale := m.shiftScale()
	for i, v := range s.mg {
		raw := uint16(int16(v/scale) << shift)
		s.Accel.Regs[regOutXLA+uint8(2*i)] = byte(raw)
		s.Accel.Regs[regOutXLA+uint8(2*i)+1] = byte(raw >> 8)
	}
	s.Accel.Regs[regStatusA] = statusZYXDA
}
