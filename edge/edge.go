// Package edge turns a stream of boolean samples into transition events.
//
// A Detector remembers only the previous sample. The first sample seeds that
// memory and never produces an event, so a button held down at power-on is
// not reported as a press.
package edge

// Edge is a transition between two consecutive samples.
type Edge uint8

const (
	None Edge = iota
	Rising
	Falling
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "none"
	}
}

// Detector compares each sample with the one before it.
type Detector struct {
	prev   bool
	seeded bool
}

// NewDetector returns a Detector whose previous sample is already initial.
func NewDetector(initial bool) *Detector {
	return &Detector{prev: initial, seeded: true}
}

// Update records sample and reports the transition from the previous one.
func (d *Detector) Update(sample bool) Edge {
	if !d.seeded {
		d.prev, d.seeded = sample, true
		return None
	}
	var e Edge
	switch {
	case sample && !d.prev:
		e = Rising
	case !sample && d.prev:
		e = Falling
	}
	d.prev = sample
	return e
}

// Level returns the last recorded sample.
func (d *Detector) Level() bool { return d.prev }

// Toggle flips its state each time the watched edge occurs.
type Toggle struct {
	on      bool
	trigger Edge
	det     Detector
}

// NewToggle returns a Toggle that flips on edge e, starting from off, whose
// detector is seeded with initial.
func NewToggle(e Edge, initial bool) *Toggle {
	return &Toggle{trigger: e, det: *NewDetector(initial)}
}

// Update feeds one sample and reports whether the state flipped.
func (t *Toggle) Update(sample bool) bool {
	if t.trigger == None || t.det.Update(sample) != t.trigger {
		return false
	}
	t.on = !t.on
	return true
}

// On reports the current toggled state.
func (t *Toggle) On() bool { return t.on }
