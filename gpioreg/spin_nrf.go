//go:build nrf

package gpioreg

import "device/arm"

// Spin burns roughly n loop iterations. At 64 MHz one iteration is a few
// cycles, so 800_000 is in the order of 100 ms.
func Spin(n uint32) {
	for i := uint32(0); i < n; i++ {
		arm.Asm("nop")
	}
}
