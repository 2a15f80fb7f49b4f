//go:build !microbit_v2

package hal

import "time"

// WaitForInterrupt stands in for the core sleep on host builds.
func WaitForInterrupt() { time.Sleep(time.Millisecond) }
