//go:build nrf

package gpioreg

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO is volatile access to the peripheral address space.
type MMIO struct{}

func (MMIO) Load(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (MMIO) Store(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}

// Default returns port 0 on the real hardware.
func Default() *Port { return NewPort(MMIO{}) }
