package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestEchoUppercasesASCII(t *testing.T) {
	var out bytes.Buffer
	buf := make([]byte, 64)
	if n := echo(&out, strings.NewReader("hello, rtt 42!\n"), buf); n != 15 {
		t.Fatalf("n=%d", n)
	}
	if got := out.String(); got != "HELLO, RTT 42!\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEchoNothingPending(t *testing.T) {
	var out bytes.Buffer
	if n := echo(&out, strings.NewReader(""), make([]byte, 8)); n != 0 || out.Len() != 0 {
		t.Fatalf("n=%d out=%q", n, out.String())
	}
}
