//go:build !nrf

package gpioreg

import "sync"

// SimMemory models port 0 well enough for the blink examples: OUTSET/OUTCLR
// and DIRSET/DIRCLR act on OUT/DIR. IN reads 0 for pins whose input buffer
// is disconnected in PIN_CNF; connected pins read OUT when they are outputs
// and External when they are inputs.
type SimMemory struct {
	mu       sync.Mutex
	regs     map[uintptr]uint32
	External uint32 // levels applied to input pins from outside
	stores   []Store
}

// Store is one recorded register write.
type Store struct {
	Addr  uintptr
	Value uint32
}

func NewSimMemory() *SimMemory { return &SimMemory{regs: map[uintptr]uint32{}} }

func (m *SimMemory) Load(addr uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch addr {
	case P0Base + OffIN:
		dir := m.regs[P0Base+OffDIR]
		level := (m.regs[P0Base+OffOUT] & dir) | (m.External &^ dir)
		var connected uint32
		for n := uintptr(0); n < 32; n++ {
			if m.regs[P0Base+OffPINCNF+4*n]&CnfInputDiscon == 0 {
				connected |= 1 << n
			}
		}
		return level & connected
	case P0Base + OffOUTSET, P0Base + OffOUTCLR:
		return m.regs[P0Base+OffOUT]
	case P0Base + OffDIRSET, P0Base + OffDIRCLR:
		return m.regs[P0Base+OffDIR]
	}
	return m.regs[addr]
}

func (m *SimMemory) Store(addr uintptr, v uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = append(m.stores, Store{Addr: addr, Value: v})
	switch {
	case addr == P0Base+OffOUTSET:
		m.regs[P0Base+OffOUT] |= v
	case addr == P0Base+OffOUTCLR:
		m.regs[P0Base+OffOUT] &^= v
	case addr == P0Base+OffDIRSET:
		m.regs[P0Base+OffDIR] |= v
	case addr == P0Base+OffDIRCLR:
		m.regs[P0Base+OffDIR] &^= v
	case addr == P0Base+OffIN:
		// read-only
	case addr >= P0Base+OffPINCNF && addr < P0Base+OffPINCNF+32*4:
		m.regs[addr] = v
		// PIN_CNF.DIR is the same bit as DIR[n].
		n := (addr - P0Base - OffPINCNF) / 4
		if v&CnfDirOutput != 0 {
			m.regs[P0Base+OffDIR] |= 1 << n
		} else {
			m.regs[P0Base+OffDIR] &^= 1 << n
		}
	default:
		m.regs[addr] = v
	}
}

// Stores returns every register write seen so far, in order.
func (m *SimMemory) Stores() []Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Store(nil), m.stores...)
}

// Default returns port 0 on a fresh simulated register file.
func Default() *Port { return NewPort(NewSimMemory()) }
