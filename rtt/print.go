package rtt

import (
	"fmt"
	"io"
)

// InitPrint makes sure the process-wide block exists, creating it with
// DefaultConfig when Init was never called. It is safe to call repeatedly.
func InitPrint() *ControlBlock {
	if b := global.Load(); b != nil {
		return b
	}
	b, err := Init(DefaultConfig())
	if err != nil {
		// Lost a race with another Init: wait for it to publish.
		for global.Load() == nil {
			yield()
		}
		return global.Load()
	}
	return b
}

func printTarget() *UpChannel { return InitPrint().Up(0) }

// Print writes s to the print channel.
func Print(s string) { printTarget().WriteString(s) }

// Println writes s and a newline to the print channel.
func Println(s string) { printTarget().Write(append([]byte(s), '\n')) }

// Printf formats to the print channel.
func Printf(format string, args ...any) { fmt.Fprintf(printTarget(), format, args...) }

// Output returns an io.Writer over the print channel, for loggers.
func Output() io.Writer { return printWriter{} }

type printWriter struct{}

func (printWriter) Write(p []byte) (int, error) { return printTarget().Write(p) }
