package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"no_ack":         NoAck,
		"taken":          Taken,
		"unknown_pin":    UnknownPin,
		"invalid_params": InvalidParams,
		"not_found":      NotFound,
		"unsupported":    Unsupported,
		"error":          Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) = %q", got)
	}
	if got := Of(NoAck); got != NoAck {
		t.Fatalf("Of(NoAck) = %q", got)
	}
	if got := Of(Wrap(Taken, "board.Take", nil)); got != Taken {
		t.Fatalf("Of(E) = %q", got)
	}
	if got := Of(errors.New("boom")); got != Error {
		t.Fatalf("Of(plain) = %q", got)
	}
}

func TestWrapIsAndUnwrap(t *testing.T) {
	cause := errors.New("twim: anack")
	err := Wrap(NoAck, "i2c.read", cause)
	if !errors.Is(err, NoAck) {
		t.Fatal("errors.Is(err, NoAck) = false")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if got, want := err.Error(), "i2c.read: no_ack"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
