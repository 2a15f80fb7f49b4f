package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"microbit-go/drivers/lsm303agr"
	"microbit-go/errcode"
	"microbit-go/i2creg"
	"microbit-go/rtt"
)

// unplugged passes transactions through until cut is set.
type unplugged struct {
	bus *i2creg.Bus
	cut bool
}

func (u *unplugged) Tx(addr uint16, w, r []byte) error {
	if u.cut {
		return errcode.NoAck
	}
	return u.bus.Tx(addr, w, r)
}

func newDevice(t *testing.T) (*lsm303agr.Device, *lsm303agr.Sim, *unplugged) {
	t.Helper()
	sim := lsm303agr.NewSim()
	line := i2creg.NewSimLine()
	sim.Attach(line)
	bus := &unplugged{bus: i2creg.NewBus(line)}
	dev := lsm303agr.New(bus)
	dev.Configure(lsm303agr.Config{Delay: func(time.Duration) {}})
	if err := dev.SetAccelModeAndODR(lsm303agr.HighResolution, lsm303agr.ODR50Hz); err != nil {
		t.Fatal(err)
	}
	return &dev, sim, bus
}

func TestReportPrintsReading(t *testing.T) {
	dev, sim, _ := newDevice(t)
	sim.SetAcceleration(-250, 16, 1000)
	var out, logs bytes.Buffer
	report(rtt.NewLogger(&logs, slog.LevelInfo), &out, dev)
	if got := out.String(); got != "Accelerometer: x -250 y 16 z 1000\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReportHaltsOnBusError(t *testing.T) {
	dev, _, bus := newDevice(t)
	bus.cut = true
	var out, logs bytes.Buffer
	defer func() {
		if recover() == nil {
			t.Fatal("read error did not halt")
		}
		if !strings.HasPrefix(logs.String(), "ERROR fatal err=no_ack") {
			t.Fatalf("log %q", logs.String())
		}
		if out.Len() != 0 {
			t.Fatalf("printed %q", out.String())
		}
	}()
	report(rtt.NewLogger(&logs, slog.LevelInfo), &out, dev)
}
