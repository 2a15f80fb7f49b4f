package main

import (
	"fmt"
	"io"

	"microbit-go/drivers/lsm303agr"
	"microbit-go/rtt"
)

// report prints one reading. A failed read halts the program.
func report(log *rtt.Logger, out io.Writer, dev *lsm303agr.Device) {
	s, err := dev.Acceleration()
	s = rtt.Must(log, s, err)
	x, y, z := s.XYZmg()
	fmt.Fprintf(out, "Accelerometer: x %d y %d z %d\n", x, y, z)
}
