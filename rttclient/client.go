package rttclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"microbit-go/errcode"
	"microbit-go/x/mathx"
)

// Client moves bytes through a control block in target memory. The host
// owns rdOff of up channels and wrOff of down channels and never writes the
// other offset.
type Client struct {
	mem Memory
	cb  *ControlBlock
}

// Attach finds the control block in [base, base+length).
func Attach(mem Memory, base, length uint32) (*Client, error) {
	cb, err := FindControlBlock(mem, base, length)
	if err != nil {
		return nil, err
	}
	return &Client{mem: mem, cb: cb}, nil
}

// ControlBlock returns the block as decoded at Attach.
func (c *Client) ControlBlock() *ControlBlock { return c.cb }

func (c *Client) up(i int) (Channel, error) {
	for _, ch := range c.cb.Up {
		if ch.Index == i {
			return ch, nil
		}
	}
	return Channel{}, &errcode.E{C: errcode.NotFound, Op: "rttclient", Msg: fmt.Sprintf("up channel %d", i)}
}

func (c *Client) down(i int) (Channel, error) {
	for _, ch := range c.cb.Down {
		if ch.Index == i {
			return ch, nil
		}
	}
	return Channel{}, &errcode.E{C: errcode.NotFound, Op: "rttclient", Msg: fmt.Sprintf("down channel %d", i)}
}

// offsets loads both ring offsets of ch and rejects any that would index
// outside its buffer.
func (c *Client) offsets(ch Channel, op string) (wr, rd uint32, err error) {
	if wr, err = readU32(c.mem, ch.desc+descWrOff); err != nil {
		return 0, 0, err
	}
	if rd, err = readU32(c.mem, ch.desc+descRdOff); err != nil {
		return 0, 0, err
	}
	if wr >= ch.Size || rd >= ch.Size {
		return 0, 0, &errcode.E{C: errcode.InvalidParams, Op: op, Msg: fmt.Sprintf("offsets %d/%d beyond size %d", wr, rd, ch.Size)}
	}
	return wr, rd, nil
}

// ReadUp copies pending bytes from up channel i into p and releases them to
// the target. It returns 0 when nothing is pending.
func (c *Client) ReadUp(i int, p []byte) (int, error) {
	ch, err := c.up(i)
	if err != nil || len(p) == 0 {
		return 0, err
	}
	wr, rd, err := c.offsets(ch, "rttclient.ReadUp")
	if err != nil {
		return 0, err
	}
	n := 0
	for n < len(p) && rd != wr {
		end := wr
		if rd > wr {
			end = ch.Size
		}
		chunk := min(int(end-rd), len(p)-n)
		if err := c.mem.ReadMem(ch.Buffer+rd, p[n:n+chunk]); err != nil {
			return 0, err
		}
		n += chunk
		rd += uint32(chunk)
		if rd == ch.Size {
			rd = 0
		}
	}
	if n > 0 {
		if err := writeU32(c.mem, ch.desc+descRdOff, rd); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// WriteDown inserts as much of p as fits into down channel i, keeping one
// slot empty, and publishes it by advancing wrOff.
func (c *Client) WriteDown(i int, p []byte) (int, error) {
	ch, err := c.down(i)
	if err != nil || len(p) == 0 {
		return 0, err
	}
	wr, rd, err := c.offsets(ch, "rttclient.WriteDown")
	if err != nil {
		return 0, err
	}
	var used uint32
	if wr >= rd {
		used = wr - rd
	} else {
		used = ch.Size - rd + wr
	}
	free := int(ch.Size - 1 - used)
	n := 0
	for n < len(p) && n < free {
		chunk := min(int(ch.Size-wr), len(p)-n, free-n)
		if err := c.mem.WriteMem(ch.Buffer+wr, p[n:n+chunk]); err != nil {
			return 0, err
		}
		n += chunk
		wr += uint32(chunk)
		if wr == ch.Size {
			wr = 0
		}
	}
	if n > 0 {
		if err := writeU32(c.mem, ch.desc+descWrOff, wr); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Stream adapts one up/down channel pair to io.ReadWriter by polling.
type Stream struct {
	C        *Client
	Up, Down int
	Interval time.Duration
	Ctx      context.Context
}

var _ io.ReadWriter = (*Stream)(nil)

// Read polls until at least one byte is pending or the context ends.
func (s *Stream) Read(p []byte) (int, error) {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	iv := s.Interval
	if iv == 0 {
		iv = 10 * time.Millisecond
	}
	iv = mathx.Clamp(iv, time.Millisecond, time.Second)
	for {
		n, err := s.C.ReadUp(s.Up, p)
		if n > 0 || err != nil {
			return n, err
		}
		select {
		case <-ctx.Done():
			return 0, io.EOF
		case <-time.After(iv):
		}
	}
}

// Write keeps inserting until all of p is accepted or the context ends.
func (s *Stream) Write(p []byte) (int, error) {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	done := 0
	for done < len(p) {
		n, err := s.C.WriteDown(s.Down, p[done:])
		done += n
		if err != nil {
			return done, err
		}
		if n == 0 {
			select {
			case <-ctx.Done():
				return done, ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}
	}
	return done, nil
}
