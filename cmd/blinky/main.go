// cmd/blinky/main.go
package main

import (
	"time"

	"microbit-go/board"
)

const (
	offTime = 300 * time.Millisecond
	onTime  = 100 * time.Millisecond
)

func main() {
	b := board.MustTake()

	// Column low sinks the top-left LED; the row drives it.
	must(b.Col1().ConfigureOutput(false))
	row := b.Row1()
	must(row.ConfigureOutput(false))

	for {
		time.Sleep(offTime)
		row.Set(true)
		time.Sleep(onTime)
		row.Set(false)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
