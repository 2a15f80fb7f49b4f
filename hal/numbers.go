package hal

// MaxPin is the highest flat pin number on the nRF52833 (P1.15).
const MaxPin = 47

// P0 and P1 convert port-local pin numbers into flat numbers.
func P0(n int) int { return n }
func P1(n int) int { return 32 + n }
