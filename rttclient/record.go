package rttclient

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Direction of a recorded chunk.
type Direction uint8

const (
	Up   Direction = 0 // target to host
	Down Direction = 1 // host to target
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Record is one chunk of channel traffic. CBOR uses integer keys.
type Record struct {
	Session uuid.UUID `cbor:"1,keyasint"`
	Seq     uint64    `cbor:"2,keyasint"`
	Time    time.Time `cbor:"3,keyasint"`
	Dir     Direction `cbor:"4,keyasint"`
	Channel int       `cbor:"5,keyasint"`
	Data    []byte    `cbor:"6,keyasint"`
}

var (
	recEncMode cbor.EncMode
	recDecMode cbor.DecMode
)

func init() {
	var err error
	recEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("record encoder mode: %v", err))
	}
	recDecMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("record decoder mode: %v", err))
	}
}

// Recorder appends Records to a file. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	f       *os.File
	enc     *cbor.Encoder
	session uuid.UUID
	seq     uint64
	now     func() time.Time
	closed  bool
}

// NewRecorder opens path for appending and starts a new session.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		f:       f,
		enc:     recEncMode.NewEncoder(f),
		session: uuid.New(),
		now:     time.Now,
	}, nil
}

// Session identifies this recorder's records in a shared file.
func (r *Recorder) Session() uuid.UUID { return r.session }

// Record stores a copy of data.
func (r *Recorder) Record(dir Direction, channel int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return os.ErrClosed
	}
	rec := Record{
		Session: r.session,
		Seq:     r.seq,
		Time:    r.now(),
		Dir:     dir,
		Channel: channel,
		Data:    append([]byte(nil), data...),
	}
	r.seq++
	return r.enc.Encode(rec)
}

// Close is safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}

// Tee returns a reader that records everything read from src as dir traffic.
func (r *Recorder) Tee(src io.Reader, dir Direction, channel int) io.Reader {
	return &teeReader{src: src, rec: r, dir: dir, ch: channel}
}

type teeReader struct {
	src io.Reader
	rec *Recorder
	dir Direction
	ch  int
}

func (t *teeReader) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 {
		if rerr := t.rec.Record(t.dir, t.ch, p[:n]); rerr != nil && err == nil {
			err = rerr
		}
	}
	return n, err
}

// ReadRecords decodes every record in r, in file order.
func ReadRecords(r io.Reader) ([]Record, error) {
	dec := recDecMode.NewDecoder(r)
	var out []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, rec)
	}
}
