//go:build !microbit_v2

package buttons

import (
	"context"
	"testing"
	"time"

	"microbit-go/hal"
)

func TestPollerReportsEachPressOnce(t *testing.T) {
	pin := hal.NewFakePin(14)
	pin.Set(true) // external pull-up: released

	p, err := NewPoller(pin, hal.PullNone, true)
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}

	presses := 0
	// release, press (held 3 samples), release, press
	for _, level := range []bool{true, false, false, false, true, false} {
		pin.Set(level)
		if p.Poll() {
			presses++
		}
	}
	if presses != 2 {
		t.Fatalf("presses=%d want 2", presses)
	}
	if p.On() {
		t.Fatal("latch should be off after two presses")
	}
}

func TestPollerHeldAtStartIsNotAPress(t *testing.T) {
	pin := hal.NewFakePin(14)
	pin.Set(false) // held down at boot

	p, err := NewPoller(pin, hal.PullNone, true)
	if err != nil {
		t.Fatal(err)
	}
	if p.Poll() {
		t.Fatal("held button reported as press")
	}
	pin.Set(true)
	if p.Poll() {
		t.Fatal("release reported as press")
	}
	pin.Set(false)
	if !p.Poll() {
		t.Fatal("expected press after release and re-press")
	}
	if !p.On() {
		t.Fatal("latch should be on after one press")
	}
}

func TestTogglerFlipsOnFallingEdge(t *testing.T) {
	pin := hal.NewFakePin(14)
	_ = pin.ConfigureInput(hal.PullUp)

	tg, err := NewToggler(pin, hal.EdgeFalling)
	if err != nil {
		t.Fatalf("NewToggler: %v", err)
	}
	defer tg.Close()

	pin.Set(false) // press
	if !tg.State() {
		t.Fatal("flag not set after first press")
	}
	pin.Set(true) // release: rising edge ignored
	if !tg.State() {
		t.Fatal("release changed the flag")
	}
	pin.Set(false)
	if tg.State() {
		t.Fatal("second press did not clear the flag")
	}
	if n := tg.Interrupts(); n != 2 {
		t.Fatalf("interrupts=%d want 2", n)
	}
}

func TestTogglerRunAppliesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := hal.NewFakePin(14)
	_ = pin.ConfigureInput(hal.PullUp)
	tg, err := NewToggler(pin, hal.EdgeFalling)
	if err != nil {
		t.Fatal(err)
	}

	applied := make(chan bool, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tg.Run(ctx, func(on bool) { applied <- on })
	}()

	pin.Set(false)
	select {
	case on := <-applied:
		if !on {
			t.Fatal("first apply should turn the LED on")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for apply")
	}

	pin.Set(true)
	pin.Set(false)
	select {
	case on := <-applied:
		if on {
			t.Fatal("second apply should turn the LED off")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for second apply")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Run did not return after cancel")
	}
}
