// cmd/rtt-echo/main.go
package main

import (
	"log/slog"
	"time"

	"microbit-go/rtt"
)

const ready = "Ready! Type on the host and press ENTER to send to the target. It will then respond in uppercase.\n"

func main() {
	cb, err := rtt.Init(rtt.Config{
		Up:   []rtt.ChannelConfig{{Name: "log", Size: 1024, Mode: rtt.NoBlockSkip}},
		Down: []rtt.ChannelConfig{{Name: "stdin", Size: 64}},
	})
	if err != nil {
		panic(err)
	}
	up, down := cb.Up(0), cb.Down(0)
	log := rtt.NewLogger(up, slog.LevelInfo)
	log.Info("rtt-echo", slog.Uint64("block", uint64(cb.Address())))

	up.WriteString(ready)

	var buf [64]byte
	for {
		if down.Buffered() == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		echo(up, down, buf[:])
	}
}
