package rttclient

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"microbit-go/errcode"
	"microbit-go/rtt"
)

// maxName bounds channel name reads.
const maxName = 32

// Channel is one decoded buffer descriptor.
type Channel struct {
	Index  int
	Name   string
	Buffer uint32
	Size   uint32
	WrOff  uint32
	RdOff  uint32
	Flags  uint32

	desc uint32 // address of the descriptor
}

// Mode is the up-channel full-buffer behaviour.
func (c Channel) Mode() rtt.Mode { return rtt.Mode(c.Flags & 3) }

// Pending is the number of unread bytes at decode time.
func (c Channel) Pending() uint32 {
	if c.WrOff >= c.RdOff {
		return c.WrOff - c.RdOff
	}
	return c.Size - c.RdOff + c.WrOff
}

// ControlBlock is a decoded control block.
type ControlBlock struct {
	Addr uint32
	Up   []Channel
	Down []Channel
}

// FindControlBlock scans [base, base+length) for the signature and decodes
// the block found there. Unused descriptors (size zero) are skipped.
func FindControlBlock(mem Memory, base, length uint32) (*ControlBlock, error) {
	ram := make([]byte, length)
	if err := mem.ReadMem(base, ram); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	sig := append([]byte(rtt.Signature), 0)
	for from := 0; ; {
		i := bytes.Index(ram[from:], sig)
		if i < 0 {
			return nil, &errcode.E{C: errcode.NotFound, Op: "rttclient.Find", Msg: "no control block"}
		}
		at := from + i
		if at%4 == 0 && at+rtt.HeaderSize <= len(ram) {
			return decode(mem, base+uint32(at))
		}
		from = at + 1
	}
}

// decode reads the block at addr. It is also used to refresh offsets.
func decode(mem Memory, addr uint32) (*ControlBlock, error) {
	var hdr [rtt.HeaderSize]byte
	if err := mem.ReadMem(addr, hdr[:]); err != nil {
		return nil, err
	}
	maxUp := int32(binary.LittleEndian.Uint32(hdr[rtt.IDSize:]))
	maxDown := int32(binary.LittleEndian.Uint32(hdr[rtt.IDSize+4:]))
	if maxUp < 0 || maxUp > 16 || maxDown < 0 || maxDown > 16 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "rttclient.decode", Msg: fmt.Sprintf("implausible channel counts %d/%d", maxUp, maxDown)}
	}

	cb := &ControlBlock{Addr: addr}
	descs := make([]byte, int(maxUp+maxDown)*rtt.DescSize)
	if err := mem.ReadMem(addr+rtt.HeaderSize, descs); err != nil {
		return nil, err
	}
	for i := 0; i < int(maxUp+maxDown); i++ {
		d := descs[i*rtt.DescSize:]
		ch := Channel{
			Buffer: binary.LittleEndian.Uint32(d[rtt.DescBuffer:]),
			Size:   binary.LittleEndian.Uint32(d[rtt.DescLength:]),
			WrOff:  binary.LittleEndian.Uint32(d[rtt.DescWrOff:]),
			RdOff:  binary.LittleEndian.Uint32(d[rtt.DescRdOff:]),
			Flags:  binary.LittleEndian.Uint32(d[rtt.DescFlags:]),
			desc:   addr + rtt.HeaderSize + uint32(i*rtt.DescSize),
		}
		if ch.Size == 0 {
			continue
		}
		ch.Name = readName(mem, binary.LittleEndian.Uint32(d[rtt.DescName:]))
		if i < int(maxUp) {
			ch.Index = i
			cb.Up = append(cb.Up, ch)
		} else {
			ch.Index = i - int(maxUp)
			cb.Down = append(cb.Down, ch)
		}
	}
	return cb, nil
}

func readName(mem Memory, addr uint32) string {
	if addr == 0 {
		return ""
	}
	var b [maxName]byte
	// Names near the end of RAM may be shorter than maxName; shrink until
	// the read fits.
	for n := maxName; n > 0; n /= 2 {
		if mem.ReadMem(addr, b[:n]) == nil {
			if i := bytes.IndexByte(b[:n], 0); i >= 0 {
				return string(b[:i])
			}
			return string(b[:n])
		}
	}
	return ""
}

const (
	descWrOff = rtt.DescWrOff
	descRdOff = rtt.DescRdOff
)
