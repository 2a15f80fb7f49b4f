package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microbit-go/rttclient"
)

type fakeTarget struct {
	io.Reader
	sent bytes.Buffer
}

func (f *fakeTarget) Write(p []byte) (int, error) { return f.sent.Write(p) }

func newSession(in string) (*session, *fakeTarget, *bytes.Buffer) {
	ft := &fakeTarget{Reader: strings.NewReader(in)}
	var out bytes.Buffer
	return &session{
		target: ft,
		out:    &out,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, ft, &out
}

func TestColorize(t *testing.T) {
	assert.Equal(t, ansiRed+"ERROR boom"+ansiReset+"\n", string(colorize([]byte("ERROR boom\n"))))
	assert.Equal(t, ansiDim+"TRACE tx"+ansiReset+"\r\n", string(colorize([]byte("TRACE tx\r\n"))))
	assert.Equal(t, "Count: 3\n", string(colorize([]byte("Count: 3\n"))))
}

func TestPumpWritesLines(t *testing.T) {
	s, _, out := newSession("INFO up\nCount: 1\npartial")
	s.color = true
	require.NoError(t, s.pump(context.Background()))
	assert.Equal(t, ansiGreen+"INFO up"+ansiReset+"\nCount: 1\npartial", out.String())
}

func TestInputSendsLine(t *testing.T) {
	s, ft, _ := newSession("")
	require.NoError(t, s.input("hello"))
	assert.Equal(t, "hello\n", ft.sent.String())
}

func TestCommands(t *testing.T) {
	s, ft, _ := newSession("")
	assert.ErrorIs(t, s.input(":quit"), errQuit)
	require.NoError(t, s.input(":hex on"))
	assert.True(t, s.hex)
	require.NoError(t, s.input(":hex off"))
	assert.False(t, s.hex)
	assert.Error(t, s.input(":hex maybe"))
	assert.Error(t, s.input(":bogus"))
	assert.Error(t, s.input(`:record "unterminated`))
	require.NoError(t, s.input(":"))
	assert.Zero(t, ft.sent.Len())
}

func TestRecordAndStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my session.rttrec")
	s, _, _ := newSession("Count: 0\n")
	require.NoError(t, s.input(`:record "`+path+`"`))
	require.NoError(t, s.pump(context.Background()))
	require.NoError(t, s.input("hi"))
	require.NoError(t, s.input(":stop"))
	assert.Nil(t, s.rec)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := rttclient.ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rttclient.Up, recs[0].Dir)
	assert.Equal(t, "Count: 0\n", string(recs[0].Data))
	assert.Equal(t, rttclient.Down, recs[1].Dir)
	assert.Equal(t, recs[0].Session, recs[1].Session)
}

func TestHexMode(t *testing.T) {
	s, _, out := newSession("AB\n")
	s.hex = true
	require.NoError(t, s.pump(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "00000000  41 42 0a"), out.String())
}
