//go:build !nrf

package gpioreg

// Spin is a counting loop on host builds; the compiler may elide it.
func Spin(n uint32) {
	for i := uint32(0); i < n; i++ {
	}
}
