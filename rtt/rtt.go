// Package rtt implements SEGGER-compatible Real Time Transfer: ring buffers
// in target RAM that a debugger reads and writes over SWD while the CPU
// keeps running.
//
// A control block starting with the "SEGGER RTT" signature describes up
// (target to host) and down (host to target) channels. Each channel has a
// write offset owned by the producer and a read offset owned by the
// consumer; neither side ever writes the other's offset. Host tools find the
// block by scanning RAM for the signature.
package rtt

import (
	"sync/atomic"
	"unsafe"

	"microbit-go/errcode"
)

// ChannelConfig describes one channel.
type ChannelConfig struct {
	Name string
	Size int
	Mode Mode // up channels only
}

// Config lists the channels of a control block.
type Config struct {
	Up   []ChannelConfig
	Down []ChannelConfig
}

// DefaultConfig is one 1 KiB up channel named "Terminal" that drops writes
// that do not fit.
func DefaultConfig() Config {
	return Config{Up: []ChannelConfig{{Name: "Terminal", Size: 1024, Mode: NoBlockSkip}}}
}

// ControlBlock owns the RAM-resident block and its channel storage.
type ControlBlock struct {
	cb   controlBlock
	up   []*UpChannel
	down []*DownChannel
	keep [][]byte
}

var (
	claimed atomic.Bool
	global  atomic.Pointer[ControlBlock]
)

// Init builds the process-wide control block. It succeeds once; later calls
// return errcode.Taken.
func Init(cfg Config) (*ControlBlock, error) {
	if !claimed.CompareAndSwap(false, true) {
		return nil, errcode.Taken
	}
	b, err := New(cfg)
	if err != nil {
		claimed.Store(false)
		return nil, err
	}
	global.Store(b)
	return b, nil
}

// New builds a control block outside the process-wide slot.
func New(cfg Config) (*ControlBlock, error) {
	if len(cfg.Up) == 0 || len(cfg.Up) > MaxUp || len(cfg.Down) > MaxDown {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "rtt.New", Msg: "channel count"}
	}
	b := &ControlBlock{}
	b.cb.maxUp = MaxUp
	b.cb.maxDown = MaxDown

	for i, c := range cfg.Up {
		d, buf, err := b.setup(&b.cb.up[i], c)
		if err != nil {
			return nil, err
		}
		d.flags.Store(uint32(c.Mode & modeMask))
		b.up = append(b.up, &UpChannel{desc: d, buf: buf, name: c.Name})
	}
	for i, c := range cfg.Down {
		d, buf, err := b.setup(&b.cb.down[i], c)
		if err != nil {
			return nil, err
		}
		b.down = append(b.down, &DownChannel{desc: d, buf: buf, name: c.Name})
	}

	// Signature last: a debugger that finds it sees a complete block.
	for i := len(reversed) - 1; i >= 0; i-- {
		b.cb.id[len(reversed)-1-i] = reversed[i]
	}
	return b, nil
}

func (b *ControlBlock) setup(d *bufferDesc, c ChannelConfig) (*bufferDesc, []byte, error) {
	if c.Size < 2 {
		return nil, nil, &errcode.E{C: errcode.InvalidParams, Op: "rtt.New", Msg: "channel " + c.Name + " too small"}
	}
	name := append([]byte(c.Name), 0)
	buf := make([]byte, c.Size)
	b.keep = append(b.keep, name, buf)
	d.name = addrOf(name)
	d.buffer = addrOf(buf)
	d.size = uint32(c.Size)
	return d, buf, nil
}

// addrOf is the 32-bit target address of p[0]. On host builds the value is
// only informational.
func addrOf(p []byte) uint32 { return uint32(uintptr(unsafe.Pointer(&p[0]))) }

// Address is where the debugger will find the block.
func (b *ControlBlock) Address() uintptr { return uintptr(unsafe.Pointer(&b.cb)) }

// Up returns up channel i, or nil.
func (b *ControlBlock) Up(i int) *UpChannel {
	if i < 0 || i >= len(b.up) {
		return nil
	}
	return b.up[i]
}

// Down returns down channel i, or nil.
func (b *ControlBlock) Down(i int) *DownChannel {
	if i < 0 || i >= len(b.down) {
		return nil
	}
	return b.down[i]
}

// ID returns the signature bytes currently in the block.
func (b *ControlBlock) ID() string {
	n := 0
	for n < IDSize && b.cb.id[n] != 0 {
		n++
	}
	return string(b.cb.id[:n])
}

// UpChannel is the target side of a target-to-host ring.
type UpChannel struct {
	cs   critical
	desc *bufferDesc
	buf  []byte
	name string
}

func (c *UpChannel) Name() string { return c.name }

// Mode returns the current full-buffer behaviour. The host may change it.
func (c *UpChannel) Mode() Mode { return Mode(c.desc.flags.Load() & modeMask) }

// SetMode changes the full-buffer behaviour.
func (c *UpChannel) SetMode(m Mode) {
	for {
		old := c.desc.flags.Load()
		if c.desc.flags.CompareAndSwap(old, old&^modeMask|uint32(m&modeMask)) {
			return
		}
	}
}

// Pending is the number of bytes written but not yet read by the host.
func (c *UpChannel) Pending() int {
	return int(ringUsed(c.desc.size, c.desc.wrOff.Load(), c.desc.rdOff.Load()))
}

// Write queues p for the host according to the channel mode and returns the
// number of bytes queued. It never returns an error; the signature matches
// io.Writer so the channel can back loggers and fmt.
func (c *UpChannel) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	switch c.Mode() {
	case BlockIfFull:
		written := 0
		for written < len(p) {
			written += c.writeSome(p[written:], false)
			if written < len(p) {
				yield()
			}
		}
		return written, nil
	case NoBlockTrim:
		return c.writeSome(p, false), nil
	default:
		return c.writeSome(p, true), nil
	}
}

// WriteString is Write for strings.
func (c *UpChannel) WriteString(s string) (int, error) { return c.Write([]byte(s)) }

func (c *UpChannel) writeSome(p []byte, allOrNothing bool) int {
	c.cs.lock()
	defer c.cs.unlock()

	wr := c.desc.wrOff.Load()
	rd := c.desc.rdOff.Load()
	free := ringFree(c.desc.size, wr, rd)
	n := uint32(len(p))
	if n > free {
		if allOrNothing {
			return 0
		}
		n = free
	}
	if n == 0 {
		return 0
	}
	// Data first, then the offset that publishes it.
	c.desc.wrOff.Store(ringWrite(c.buf, wr, p[:n]))
	return int(n)
}

// DownChannel is the target side of a host-to-target ring.
type DownChannel struct {
	cs   critical
	desc *bufferDesc
	buf  []byte
	name string
}

func (c *DownChannel) Name() string { return c.name }

// Buffered is the number of bytes the host has written and the target has
// not yet read.
func (c *DownChannel) Buffered() int {
	return int(ringUsed(c.desc.size, c.desc.wrOff.Load(), c.desc.rdOff.Load()))
}

// Read copies pending bytes into p without blocking. It returns 0 when
// nothing is pending.
func (c *DownChannel) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c.cs.lock()
	defer c.cs.unlock()
	n, rd := ringRead(c.buf, c.desc.wrOff.Load(), c.desc.rdOff.Load(), p)
	if n > 0 {
		c.desc.rdOff.Store(rd)
	}
	return n, nil
}
