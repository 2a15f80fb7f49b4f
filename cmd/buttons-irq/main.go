// cmd/buttons-irq/main.go
package main

import (
	"context"

	"microbit-go/board"
	"microbit-go/buttons"
	"microbit-go/hal"
)

func main() {
	b := board.MustTake()
	must(b.Col1().ConfigureOutput(false))
	led := b.Row1()
	must(led.ConfigureOutput(false))

	must(b.ButtonA.ConfigureInput(hal.PullNone))
	t, err := buttons.NewToggler(b.ButtonA, hal.EdgeFalling)
	must(err)
	defer t.Close()

	t.Run(context.Background(), led.Set)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
