package edge

import "testing"

func TestDetectorFiresOncePerTransition(t *testing.T) {
	samples := []bool{false, false, true, true, true, false, false, true, false}
	want := []Edge{None, None, Rising, None, None, Falling, None, Rising, Falling}

	var d Detector
	for i, s := range samples {
		if got := d.Update(s); got != want[i] {
			t.Fatalf("sample %d (%v): got %v want %v", i, s, got, want[i])
		}
	}
}

func TestDetectorFirstSampleSeeds(t *testing.T) {
	var d Detector
	if e := d.Update(true); e != None {
		t.Fatalf("first sample produced %v", e)
	}
	if !d.Level() {
		t.Fatal("Level should be the seeded sample")
	}
	if e := d.Update(true); e != None {
		t.Fatalf("sustained level produced %v", e)
	}
}

func TestNewDetectorIsSeeded(t *testing.T) {
	d := NewDetector(false)
	if e := d.Update(true); e != Rising {
		t.Fatalf("got %v want rising", e)
	}
}

func TestSustainedLevelNeverFires(t *testing.T) {
	d := NewDetector(false)
	d.Update(true)
	for i := 0; i < 1000; i++ {
		if e := d.Update(true); e != None {
			t.Fatalf("iteration %d fired %v", i, e)
		}
	}
}

func TestToggle(t *testing.T) {
	tg := NewToggle(Rising, false)
	// pressed = true; three presses with holds and releases in between.
	seq := []bool{false, true, true, false, true, false, false, true}
	flips := 0
	for _, s := range seq {
		if tg.Update(s) {
			flips++
		}
	}
	if flips != 3 {
		t.Fatalf("flips=%d want 3", flips)
	}
	if !tg.On() {
		t.Fatal("odd number of flips should leave the toggle on")
	}
}

func TestToggleNoneNeverFlips(t *testing.T) {
	tg := NewToggle(None, false)
	for _, s := range []bool{false, true, false, true} {
		if tg.Update(s) {
			t.Fatal("Toggle(None) flipped")
		}
	}
}

func TestToggleSeededHighIgnoresHeldSample(t *testing.T) {
	tg := NewToggle(Rising, true)
	if tg.Update(true) {
		t.Fatal("held sample flipped a toggle seeded high")
	}
	if tg.Update(false) || !tg.Update(true) {
		t.Fatal("expected a flip on release then press")
	}
	if !tg.On() {
		t.Fatal("toggle should be on after one flip")
	}
}

func TestEdgeString(t *testing.T) {
	if Rising.String() != "rising" || Falling.String() != "falling" || None.String() != "none" {
		t.Fatal("unexpected Edge strings")
	}
}
