package rttclient

import (
	"context"
	"fmt"
	"io"
	"net"

	"go.bug.st/serial"
)

// DialTCP connects to an RTT server such as OpenOCD's "rtt server start",
// which exposes one channel pair as a TCP byte stream.
func DialTCP(ctx context.Context, addr string) (io.ReadWriteCloser, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

// OpenSerial opens the interface chip's CDC UART, for firmware that mirrors
// its output to the serial port.
func OpenSerial(port string, baud int) (io.ReadWriteCloser, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}
	return p, nil
}

// SerialPorts lists candidate ports for -port auto detection.
func SerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
