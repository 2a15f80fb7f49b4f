// cmd/blinky-registers/main.go
//
// Same blink as cmd/blinky but with no machine package: GPIO registers are
// written directly and delays are busy loops.
package main

import (
	"microbit-go/board"
	"microbit-go/gpioreg"
)

// Loop counts at 64 MHz, roughly 300 ms and 100 ms.
const (
	offSpin = 4_000_000
	onSpin  = 1_300_000
)

func main() {
	p := gpioreg.Default()
	row := uint8(board.Rows[0])
	col := uint8(board.Cols[0])

	must(p.ConfigureOutput(col))
	p.Clear(col)
	must(p.ConfigureOutput(row))

	for {
		gpioreg.Spin(offSpin)
		p.Set(row)
		gpioreg.Spin(onSpin)
		p.Clear(row)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
