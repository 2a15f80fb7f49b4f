// cmd/rttview/main.go
//
// rttview shows an RTT up channel and sends typed lines to the down channel.
// It talks to an RTT TCP server (OpenOCD or J-Link), the micro:bit's serial
// port, or a RAM image file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/mattn/go-colorable"

	"microbit-go/rttclient"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rttview:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath   = flag.String("config", "", "YAML config file")
		transport = flag.String("transport", "", "tcp, serial or image")
		addr      = flag.String("addr", "", "RTT server address (tcp)")
		port      = flag.String("port", "", "serial port, empty to pick the first found")
		baud      = flag.Int("baud", 0, "serial baud rate")
		image     = flag.String("image", "", "RAM dump file (image)")
		base      = flag.Uint("base", 0, "RAM dump base address")
		length    = flag.Uint("length", 0, "bytes to scan for the control block")
		record    = flag.String("record", "", "append traffic to this CBOR file")
		color     = flag.Bool("color", true, "colour log levels")
		hexMode   = flag.Bool("hex", false, "hex dump instead of text")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := rttclient.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "transport":
			cfg.Transport = *transport
		case "addr":
			cfg.Address = *addr
		case "port":
			cfg.Serial.Port = *port
		case "baud":
			cfg.Serial.Baud = *baud
		case "image":
			cfg.Image.Path = *image
		case "base":
			cfg.Image.Base = uint32(*base)
		case "length":
			cfg.Image.Length = uint32(*length)
		case "record":
			cfg.Record = *record
		case "color":
			cfg.Color = *color
		case "hex":
			cfg.Hex = *hexMode
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	target, closer, err := open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rtt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          colorable.NewColorableStdout(),
		Stderr:          colorable.NewColorableStderr(),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	s := &session{
		target: target,
		out:    rl.Stdout(),
		log:    log,
		hex:    cfg.Hex,
		color:  cfg.Color,
	}
	defer s.close()
	if cfg.Record != "" {
		if err := s.command("record " + cfg.Record); err != nil {
			return err
		}
	}

	go func() {
		if err := s.pump(ctx); err != nil {
			log.Error("target", "err", err)
		}
		stop()
		rl.Close()
	}()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}
		if err := s.input(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			log.Warn("input", "err", err)
		}
	}
}

// open connects the configured transport and returns the stream plus what
// to close when done.
func open(ctx context.Context, cfg rttclient.Config, log *slog.Logger) (io.ReadWriter, io.Closer, error) {
	switch cfg.Transport {
	case rttclient.TransportTCP:
		c, err := rttclient.DialTCP(ctx, cfg.Address)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected", "addr", cfg.Address)
		return c, c, nil

	case rttclient.TransportSerial:
		port := cfg.Serial.Port
		if port == "" {
			ports, err := rttclient.SerialPorts()
			if err != nil {
				return nil, nil, err
			}
			if len(ports) == 0 {
				return nil, nil, errors.New("no serial ports found")
			}
			port = ports[0]
		}
		p, err := rttclient.OpenSerial(port, cfg.Serial.Baud)
		if err != nil {
			return nil, nil, err
		}
		log.Info("opened", "port", port, "baud", cfg.Serial.Baud)
		return p, p, nil

	case rttclient.TransportImage:
		img, err := rttclient.LoadImage(cfg.Image.Path, cfg.Image.Base)
		if err != nil {
			return nil, nil, err
		}
		c, err := rttclient.Attach(img, cfg.Image.Base, cfg.Image.Length)
		if err != nil {
			return nil, nil, err
		}
		cb := c.ControlBlock()
		log.Info("control block", "addr", fmt.Sprintf("%#08x", cb.Addr), "up", len(cb.Up), "down", len(cb.Down))
		for _, ch := range cb.Up {
			log.Debug("up", "index", ch.Index, "name", ch.Name, "size", ch.Size, "mode", ch.Mode(), "pending", ch.Pending())
		}
		return &rttclient.Stream{C: c, Ctx: ctx}, saver{img, cfg.Image.Path}, nil
	}
	return nil, nil, fmt.Errorf("unknown transport %q", cfg.Transport)
}

// saver writes updated offsets back to the image file on exit.
type saver struct {
	img  *rttclient.Image
	path string
}

func (s saver) Close() error { return s.img.Save(s.path) }
