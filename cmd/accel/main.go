// cmd/accel/main.go
package main

import (
	"log/slog"
	"time"

	"microbit-go/board"
	"microbit-go/drivers/lsm303agr"
	"microbit-go/rtt"
)

const sampleEvery = 250 * time.Millisecond

func main() {
	rtt.InitPrint()
	log := rtt.NewLogger(rtt.Output(), slog.LevelInfo)

	b, err := board.Take()
	b = rtt.Must(log, b, err)
	dev := lsm303agr.New(b.I2C)
	dev.Configure(lsm303agr.Config{})

	id, err := dev.AccelerometerID()
	id = rtt.Must(log, id, err)
	rtt.Printf("Accelerometer ID: %d (expected: 51)\n", id)

	err = dev.SetAccelModeAndODR(lsm303agr.HighResolution, lsm303agr.ODR50Hz)
	rtt.Must(log, dev.Mode(), err)

	for {
		report(log, rtt.Output(), &dev)
		time.Sleep(sampleEvery)
	}
}
