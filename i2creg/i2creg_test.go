package i2creg

import (
	"errors"
	"strings"
	"testing"

	"microbit-go/errcode"
)

const (
	accelAddr = 0x19
	whoAmI    = 0x0F
)

func newAccel() *Target {
	t := &Target{Addr: accelAddr, AutoIncrement: 0x80}
	t.Regs[whoAmI] = 0x33
	return t
}

func traceString(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func TestReadRegisterSequence(t *testing.T) {
	line := NewSimLine(newAccel())

	var id [1]byte
	if err := ReadRegister(line, accelAddr, whoAmI, id[:]); err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if id[0] != 0x33 {
		t.Fatalf("id=%#x want 0x33", id[0])
	}
	want := "S W32/ACK W0F/ACK S W33/ACK R33/NACK P"
	if got := traceString(line.Trace()); got != want {
		t.Fatalf("trace\n got %s\nwant %s", got, want)
	}
}

func TestReadRegisterMultiByteAcksAllButLast(t *testing.T) {
	acc := newAccel()
	for i := 0; i < 6; i++ {
		acc.Regs[0x28+i] = byte(0xA0 + i)
	}
	line := NewSimLine(acc)

	var buf [6]byte
	if err := ReadRegister(line, accelAddr, 0x28|0x80, buf[:]); err != nil {
		t.Fatal(err)
	}
	for i, b := range buf {
		if b != byte(0xA0+i) {
			t.Fatalf("buf[%d]=%#x", i, b)
		}
	}
	steps := line.Trace()
	var reads []Step
	for _, s := range steps {
		if s.Kind == StepRead {
			reads = append(reads, s)
		}
	}
	if len(reads) != 6 {
		t.Fatalf("reads=%d", len(reads))
	}
	for i, r := range reads {
		if wantAck := i < 5; r.Ack != wantAck {
			t.Fatalf("read %d ack=%v want %v", i, r.Ack, wantAck)
		}
	}
}

func TestReadRegisterWithoutAutoIncrementRepeats(t *testing.T) {
	acc := newAccel()
	acc.Regs[0x28] = 0x11
	acc.Regs[0x29] = 0x22
	line := NewSimLine(acc)

	var buf [2]byte
	if err := ReadRegister(line, accelAddr, 0x28, buf[:]); err != nil {
		t.Fatal(err)
	}
	if buf != [2]byte{0x11, 0x11} {
		t.Fatalf("buf=%x", buf)
	}
}

func TestReadRegisterNoDevice(t *testing.T) {
	line := NewSimLine()
	var id [1]byte
	err := ReadRegister(line, accelAddr, whoAmI, id[:])
	if !errors.Is(err, errcode.NoAck) {
		t.Fatalf("err=%v want no_ack", err)
	}
	if got, want := traceString(line.Trace()), "S W32/NACK P"; got != want {
		t.Fatalf("trace %q want %q", got, want)
	}
}

func TestReadRegisterEmptyBuffer(t *testing.T) {
	if err := ReadRegister(NewSimLine(), accelAddr, whoAmI, nil); err != errcode.InvalidParams {
		t.Fatalf("err=%v", err)
	}
}

func TestWriteRegister(t *testing.T) {
	acc := newAccel()
	var seen []byte
	acc.OnWrite = func(reg, v byte) { seen = append(seen, reg, v) }
	line := NewSimLine(acc)

	if err := WriteRegister(line, accelAddr, 0x20, []byte{0x57}); err != nil {
		t.Fatal(err)
	}
	if acc.Regs[0x20] != 0x57 {
		t.Fatalf("CTRL_REG1=%#x", acc.Regs[0x20])
	}
	if string(seen) != string([]byte{0x20, 0x57}) {
		t.Fatalf("OnWrite saw %x", seen)
	}
	if got, want := traceString(line.Trace()), "S W32/ACK W20/ACK W57/ACK P"; got != want {
		t.Fatalf("trace %q want %q", got, want)
	}
}

func TestReadOnlyRegister(t *testing.T) {
	acc := newAccel()
	acc.ReadOnly = map[uint8]bool{whoAmI: true}
	line := NewSimLine(acc)
	if err := WriteRegister(line, accelAddr, whoAmI, []byte{0}); err != nil {
		t.Fatal(err)
	}
	if acc.Regs[whoAmI] != 0x33 {
		t.Fatal("read-only register was overwritten")
	}
}

func TestBusTxMatchesReadRegister(t *testing.T) {
	line := NewSimLine(newAccel())
	bus := NewBus(line)

	id, err := ReadByte(bus, accelAddr, whoAmI)
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x33 {
		t.Fatalf("id=%#x", id)
	}
	if got, want := traceString(line.Trace()), "S W32/ACK W0F/ACK S W33/ACK R33/NACK P"; got != want {
		t.Fatalf("trace %q want %q", got, want)
	}
}

func TestBusWriteAndAddressCheck(t *testing.T) {
	acc := newAccel()
	line := NewSimLine(acc)
	bus := NewBus(line)

	if err := WriteByte(bus, accelAddr, 0x23, 0x88); err != nil {
		t.Fatal(err)
	}
	if acc.Regs[0x23] != 0x88 {
		t.Fatalf("CTRL_REG4=%#x", acc.Regs[0x23])
	}
	line.Trace()

	if err := bus.Tx(accelAddr, nil, nil); err != nil {
		t.Fatalf("address present: %v", err)
	}
	if err := bus.Tx(0x1E, nil, nil); !errors.Is(err, errcode.NoAck) {
		t.Fatalf("address absent: %v", err)
	}
	if err := bus.Tx(0x80, nil, nil); err != errcode.InvalidParams {
		t.Fatalf("10-bit address: %v", err)
	}
}

func TestWriteHelper(t *testing.T) {
	acc := newAccel()
	bus := NewBus(NewSimLine(acc))
	if err := Write(bus, accelAddr, 0x20|0x80, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if acc.Regs[0x20] != 1 || acc.Regs[0x21] != 2 || acc.Regs[0x22] != 3 {
		t.Fatalf("regs=%x", acc.Regs[0x20:0x23])
	}
	if err := Read(bus, accelAddr, 0x20, nil); err != errcode.InvalidParams {
		t.Fatalf("Read(nil)=%v", err)
	}
}

// nackLine acknowledges every sent byte except the one at index nackAt
// (counting from zero) and answers reads with 0x33.
type nackLine struct {
	nackAt int
	sent   int
	trace  []Step
}

func (l *nackLine) Start() { l.trace = append(l.trace, Step{Kind: StepStart}) }
func (l *nackLine) Stop()  { l.trace = append(l.trace, Step{Kind: StepStop}) }

func (l *nackLine) Send(b byte) bool {
	ack := l.sent != l.nackAt
	l.sent++
	l.trace = append(l.trace, Step{Kind: StepWrite, Byte: b, Ack: ack})
	return ack
}

func (l *nackLine) Recv(ack bool) byte {
	l.trace = append(l.trace, Step{Kind: StepRead, Byte: 0x33, Ack: ack})
	return 0x33
}

func TestMissingAckStopsWithNoAck(t *testing.T) {
	read := func(l Line) error {
		var b [1]byte
		return ReadRegister(l, accelAddr, whoAmI, b[:])
	}
	write := func(l Line) error {
		return WriteRegister(l, accelAddr, 0x20, []byte{0x57, 0x58})
	}
	tx := func(l Line) error {
		var b [1]byte
		return NewBus(l).Tx(accelAddr, []byte{whoAmI}, b[:])
	}
	cases := []struct {
		name   string
		nackAt int
		run    func(Line) error
		op     string
		trace  string
	}{
		{"read address", 0, read, "i2c read", "S W32/NACK P"},
		{"read register", 1, read, "i2c read", "S W32/ACK W0F/NACK P"},
		{"read address after repeated start", 2, read, "i2c read", "S W32/ACK W0F/ACK S W33/NACK P"},
		{"write register", 1, write, "i2c write", "S W32/ACK W20/NACK P"},
		{"write data", 2, write, "i2c write", "S W32/ACK W20/ACK W57/NACK P"},
		{"bus register read", 1, tx, "i2c read", "S W32/ACK W0F/NACK P"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := &nackLine{nackAt: c.nackAt}
			err := c.run(l)
			if !errors.Is(err, errcode.NoAck) {
				t.Fatalf("err=%v want no_ack", err)
			}
			var e *errcode.E
			if !errors.As(err, &e) || e.Op != c.op {
				t.Fatalf("err=%v want op %q", err, c.op)
			}
			if got := traceString(l.trace); got != c.trace {
				t.Fatalf("trace %q want %q", got, c.trace)
			}
		})
	}
}

func TestFullReadEndsWithNackAndStop(t *testing.T) {
	l := &nackLine{nackAt: -1}
	var b [2]byte
	if err := ReadRegister(l, accelAddr, whoAmI, b[:]); err != nil {
		t.Fatal(err)
	}
	if got, want := traceString(l.trace), "S W32/ACK W0F/ACK S W33/ACK R33/ACK R33/NACK P"; got != want {
		t.Fatalf("trace %q want %q", got, want)
	}
}
