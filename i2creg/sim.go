package i2creg

import (
	"fmt"
	"sync"
)

// StepKind identifies one bus event in a recorded trace.
type StepKind uint8

const (
	StepStart StepKind = iota
	StepWrite
	StepRead
	StepStop
)

// Step is one bus event. For StepWrite, Ack is the target's answer; for
// StepRead, Ack is the controller's answer.
type Step struct {
	Kind StepKind
	Byte byte
	Ack  bool
}

func (s Step) String() string {
	a := "NACK"
	if s.Ack {
		a = "ACK"
	}
	switch s.Kind {
	case StepStart:
		return "S"
	case StepWrite:
		return fmt.Sprintf("W%02X/%s", s.Byte, a)
	case StepRead:
		return fmt.Sprintf("R%02X/%s", s.Byte, a)
	default:
		return "P"
	}
}

// Target is a simulated register-file peripheral. The first byte written
// after the address selects the register pointer; subsequent bytes are
// written there. When AutoIncrement is non-zero, the pointer only advances
// if that bit was set in the selecting byte (LSM303AGR uses 0x80); the bit
// itself is masked off the register number.
type Target struct {
	Addr          uint8
	AutoIncrement byte
	Regs          [256]byte
	// ReadOnly registers ignore writes.
	ReadOnly map[uint8]bool
	// OnWrite, when set, runs after every accepted register write.
	OnWrite func(reg, v byte)

	ptr      byte
	inc      bool
	havePtr  bool
	reading  bool
	selected bool
}

func (t *Target) begin(read bool) {
	t.selected = true
	t.reading = read
	if !read {
		t.havePtr = false
	}
}

func (t *Target) write(b byte) bool {
	if !t.selected || t.reading {
		return false
	}
	if !t.havePtr {
		t.ptr, t.inc = b, true
		if t.AutoIncrement != 0 {
			t.inc = b&t.AutoIncrement != 0
			t.ptr = b &^ t.AutoIncrement
		}
		t.havePtr = true
		return true
	}
	if !t.ReadOnly[t.ptr] {
		t.Regs[t.ptr] = b
		if t.OnWrite != nil {
			t.OnWrite(t.ptr, b)
		}
	}
	t.advance()
	return true
}

func (t *Target) read() byte {
	v := t.Regs[t.ptr]
	t.advance()
	return v
}

func (t *Target) advance() {
	if t.inc {
		t.ptr++
	}
}

func (t *Target) end() { t.selected = false }

// SimLine is a Line with simulated targets attached. It records every step.
type SimLine struct {
	mu        sync.Mutex
	targets   map[uint8]*Target
	active    *Target
	addrPhase bool
	trace     []Step
}

func NewSimLine(targets ...*Target) *SimLine {
	s := &SimLine{targets: map[uint8]*Target{}}
	for _, t := range targets {
		s.Attach(t)
	}
	return s
}

// Attach adds t to the bus.
func (s *SimLine) Attach(t *Target) {
	s.mu.Lock()
	s.targets[t.Addr] = t
	s.mu.Unlock()
}

func (s *SimLine) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, Step{Kind: StepStart})
	s.addrPhase = true
}

func (s *SimLine) Send(b byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ack := false
	if s.addrPhase {
		s.addrPhase = false
		if s.active != nil {
			s.active.end()
		}
		s.active = s.targets[b>>1]
		if s.active != nil {
			s.active.begin(b&1 == 1)
			ack = true
		}
	} else if s.active != nil {
		ack = s.active.write(b)
	}
	s.trace = append(s.trace, Step{Kind: StepWrite, Byte: b, Ack: ack})
	return ack
}

func (s *SimLine) Recv(ack bool) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := byte(0xFF) // released SDA reads high
	if s.active != nil && s.active.reading {
		v = s.active.read()
	}
	s.trace = append(s.trace, Step{Kind: StepRead, Byte: v, Ack: ack})
	return v
}

func (s *SimLine) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.end()
		s.active = nil
	}
	s.addrPhase = false
	s.trace = append(s.trace, Step{Kind: StepStop})
}

// Trace returns the recorded steps and clears the record.
func (s *SimLine) Trace() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.trace
	s.trace = nil
	return t
}
