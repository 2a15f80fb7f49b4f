//go:build !microbit_v2

package hal

import "testing"

func TestFakePinPullLevels(t *testing.T) {
	p := NewFakePin(14)
	_ = p.ConfigureInput(PullUp)
	if !p.Get() {
		t.Fatal("pull-up input should idle high")
	}
	_ = p.ConfigureInput(PullDown)
	if p.Get() {
		t.Fatal("pull-down input should idle low")
	}
}

func TestFakePinIRQOnConfiguredEdgeOnly(t *testing.T) {
	p := NewFakePin(14)
	_ = p.ConfigureInput(PullUp)
	fired := 0
	if err := p.SetIRQ(EdgeFalling, func() { fired++ }); err != nil {
		t.Fatal(err)
	}
	p.Set(true)  // no change
	p.Set(false) // falling
	p.Set(false) // level held
	p.Set(true)  // rising
	if fired != 1 {
		t.Fatalf("fired=%d want 1", fired)
	}
	_ = p.ClearIRQ()
	p.Set(false)
	if fired != 1 {
		t.Fatalf("IRQ fired after ClearIRQ")
	}
}

func TestHostPinFactoryStableAndBounded(t *testing.T) {
	f := DefaultPinFactory().(*HostPinFactory)
	a, ok := f.ByNumber(P0(21))
	if !ok {
		t.Fatal("P0.21 not available")
	}
	b, _ := f.ByNumber(21)
	if a != b {
		t.Fatal("factory returned different instances for one pin")
	}
	if _, ok := f.ByNumber(P1(16)); ok {
		t.Fatal("P1.16 should be out of range")
	}
	if got := P1(4); got != 36 {
		t.Fatalf("P1(4)=%d", got)
	}
}

func TestEdgeString(t *testing.T) {
	for e, want := range map[Edge]string{EdgeNone: "none", EdgeRising: "rising", EdgeFalling: "falling", EdgeBoth: "both"} {
		if e.String() != want {
			t.Fatalf("%d.String()=%q want %q", e, e.String(), want)
		}
	}
}
