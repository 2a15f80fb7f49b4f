// Package rttclient is the host side of RTT: it locates a control block in
// target RAM, drains up channels and fills down channels, and records the
// traffic.
package rttclient

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
)

// Memory is target RAM as seen through a debugger.
type Memory interface {
	ReadMem(addr uint32, p []byte) error
	WriteMem(addr uint32, p []byte) error
}

// Image is a RAM snapshot held in host memory starting at Base. It is what
// a debugger dump of the target's RAM looks like and doubles as a fake target.
type Image struct {
	mu   sync.Mutex
	Base uint32
	Data []byte
}

// NewImage returns a zeroed image of size bytes at base.
func NewImage(base uint32, size int) *Image {
	return &Image{Base: base, Data: make([]byte, size)}
}

// LoadImage reads a RAM dump file that was taken starting at base.
func LoadImage(path string, base uint32) (*Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return &Image{Base: base, Data: b}, nil
}

func (m *Image) span(addr uint32, n int) (int, error) {
	off := int64(addr) - int64(m.Base)
	if off < 0 || off+int64(n) > int64(len(m.Data)) {
		return 0, fmt.Errorf("address %#08x+%d outside image [%#08x, %#08x)", addr, n, m.Base, m.Base+uint32(len(m.Data)))
	}
	return int(off), nil
}

func (m *Image) ReadMem(addr uint32, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	off, err := m.span(addr, len(p))
	if err != nil {
		return err
	}
	copy(p, m.Data[off:])
	return nil
}

func (m *Image) WriteMem(addr uint32, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	off, err := m.span(addr, len(p))
	if err != nil {
		return err
	}
	copy(m.Data[off:], p)
	return nil
}

// Save writes the image back to path.
func (m *Image) Save(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return os.WriteFile(path, m.Data, 0o644)
}

func readU32(mem Memory, addr uint32) (uint32, error) {
	var b [4]byte
	if err := mem.ReadMem(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func writeU32(mem Memory, addr, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return mem.WriteMem(addr, b[:])
}
