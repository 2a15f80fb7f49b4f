package rtt

import (
	"sync/atomic"
)

// Wire layout of the control block. Every field is 32 bits wide on every
// build so that a host tool can decode the block from a RAM image with the
// constants below.
const (
	IDSize     = 16
	HeaderSize = IDSize + 4 + 4 // id, maxUp, maxDown
	DescSize   = 6 * 4

	// Descriptor field offsets.
	DescName   = 0
	DescBuffer = 4
	DescLength = 8
	DescWrOff  = 12
	DescRdOff  = 16
	DescFlags  = 20

	// MaxUp and MaxDown are the descriptor slots reserved in every block.
	MaxUp   = 3
	MaxDown = 3
)

// Signature marks an initialised control block.
const Signature = "SEGGER RTT"

// reversed keeps the plain signature out of the flash image, where a host
// scanning memory could mistake it for the live block.
const reversed = "TTR REGGES"

// Mode is the up-channel behaviour when the ring is full (flags bits 0-1).
type Mode uint32

const (
	NoBlockSkip Mode = 0 // drop the whole write
	NoBlockTrim Mode = 1 // write what fits
	BlockIfFull Mode = 2 // wait for the host to drain
	modeMask         = 3
)

func (m Mode) String() string {
	switch m {
	case NoBlockSkip:
		return "no-block-skip"
	case NoBlockTrim:
		return "no-block-trim"
	case BlockIfFull:
		return "block-if-full"
	}
	return "unknown"
}

// bufferDesc mirrors SEGGER_RTT_BUFFER_UP / _DOWN.
type bufferDesc struct {
	name   uint32
	buffer uint32
	size   uint32
	wrOff  atomic.Uint32
	rdOff  atomic.Uint32
	flags  atomic.Uint32
}

// controlBlock mirrors SEGGER_RTT_CB.
type controlBlock struct {
	id      [IDSize]byte
	maxUp   int32
	maxDown int32
	up      [MaxUp]bufferDesc
	down    [MaxDown]bufferDesc
}
