// cmd/buttons-polled/main.go
package main

import (
	"time"

	"microbit-go/board"
	"microbit-go/buttons"
	"microbit-go/hal"
)

const pollEvery = 10 * time.Millisecond

func main() {
	b := board.MustTake()
	must(b.Col1().ConfigureOutput(false))
	led := b.Row1()
	must(led.ConfigureOutput(false))

	// External pull-ups on the board; pressed reads low.
	btn, err := buttons.NewPoller(b.ButtonA, hal.PullNone, true)
	must(err)

	for {
		if btn.Poll() {
			led.Set(btn.On())
		}
		time.Sleep(pollEvery)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
