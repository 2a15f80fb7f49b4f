//go:build microbit_v2

package hal

import "device/arm"

// WaitForInterrupt parks the core until the next interrupt.
func WaitForInterrupt() { arm.Asm("wfi") }
