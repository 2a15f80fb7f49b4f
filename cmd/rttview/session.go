package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/shlex"

	"microbit-go/rttclient"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiDim    = "\x1b[2m"
)

// errQuit ends the input loop.
var errQuit = errors.New("quit")

// session ties one target stream to the terminal.
type session struct {
	target io.ReadWriter
	out    io.Writer
	log    *slog.Logger

	mu    sync.Mutex
	rec   *rttclient.Recorder
	hex   bool
	color bool
}

// pump copies target output to the terminal until the stream ends.
func (s *session) pump(ctx context.Context) error {
	r := bufio.NewReader(s.target)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			s.show(line)
		}
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (s *session) show(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec != nil {
		if err := s.rec.Record(rttclient.Up, 0, p); err != nil {
			s.log.Warn("record", "err", err)
		}
	}
	if s.hex {
		io.WriteString(s.out, hex.Dump(p))
		return
	}
	if s.color {
		s.out.Write(colorize(p))
		return
	}
	s.out.Write(p)
}

// colorize wraps a "LEVEL msg ..." line from rtt.Logger in its level colour.
func colorize(line []byte) []byte {
	var c string
	switch {
	case bytes.HasPrefix(line, []byte("ERROR")):
		c = ansiRed
	case bytes.HasPrefix(line, []byte("WARN")):
		c = ansiYellow
	case bytes.HasPrefix(line, []byte("INFO")):
		c = ansiGreen
	case bytes.HasPrefix(line, []byte("DEBUG")), bytes.HasPrefix(line, []byte("TRACE")):
		c = ansiDim
	default:
		return line
	}
	body := bytes.TrimRight(line, "\r\n")
	out := make([]byte, 0, len(line)+len(c)+len(ansiReset))
	out = append(out, c...)
	out = append(out, body...)
	out = append(out, ansiReset...)
	return append(out, line[len(body):]...)
}

// input handles one line typed by the user: ":" lines are local commands,
// everything else goes to the target with a newline.
func (s *session) input(line string) error {
	if strings.HasPrefix(line, ":") {
		return s.command(line[1:])
	}
	p := []byte(line + "\n")
	if _, err := s.target.Write(p); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec != nil {
		return s.rec.Record(rttclient.Down, 0, p)
	}
	return nil
}

func (s *session) command(cmdline string) error {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return fmt.Errorf("parse %q: %w", cmdline, err)
	}
	if len(args) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch args[0] {
	case "quit", "q":
		return errQuit
	case "record":
		if len(args) != 2 {
			return fmt.Errorf("usage: :record <file>")
		}
		if s.rec != nil {
			s.rec.Close()
		}
		rec, err := rttclient.NewRecorder(args[1])
		if err != nil {
			return err
		}
		s.rec = rec
		s.log.Info("recording", "file", args[1], "session", rec.Session())
	case "stop":
		if s.rec != nil {
			err := s.rec.Close()
			s.rec = nil
			return err
		}
	case "hex":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return fmt.Errorf("usage: :hex on|off")
		}
		s.hex = args[1] == "on"
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec != nil {
		return s.rec.Close()
	}
	return nil
}
