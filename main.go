package main

import (
	"log/slog"
	"time"

	"microbit-go/rtt"
)

func main() {
	rtt.InitPrint()
	rtt.Println("boot")

	log := rtt.NewLogger(rtt.Output(), slog.LevelInfo)

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	var n uint64
	for t := range tick.C {
		n++
		log.Info("heartbeat", slog.String("t", t.Format("15:04:05")), slog.Uint64("n", n))
	}
}
