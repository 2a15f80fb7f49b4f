package board

import "microbit-go/hal"

// micro:bit v2 wiring. The 5x5 LED matrix is driven row-high/column-low.
var (
	Rows = [5]int{hal.P0(21), hal.P0(22), hal.P0(15), hal.P0(24), hal.P0(19)}
	Cols = [5]int{hal.P0(28), hal.P0(11), hal.P0(31), hal.P1(5), hal.P0(30)}
)

const (
	ButtonA = 14 // P0.14, external pull-up, low while pressed
	ButtonB = 23 // P0.23

	// Internal I2C bus shared by the LSM303AGR and the interface MCU.
	InternalSCL = 8  // P0.08
	InternalSDA = 16 // P0.16
	I2CHz       = 100_000
)
