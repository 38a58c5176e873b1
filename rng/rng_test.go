package rng_test

import (
	"bytes"
	"testing"

	"github.com/uniyakcom/pulse/rng"
)

func TestCryptoProducesRandomData(t *testing.T) {
	buf := make([]byte, 32)
	if !(rng.Crypto{}).Fill(buf) {
		t.Fatal("crypto rng reported unavailable")
	}
	if bytes.Equal(buf, make([]byte, 32)) {
		t.Error("filled buffer is all zero")
	}
}

func TestTraceSpanIDs(t *testing.T) {
	trace, ok := rng.TraceID(rng.Crypto{})
	if !ok || len(trace) != 32 {
		t.Errorf("TraceID = %q, %v, want 32 hex chars", trace, ok)
	}
	span, ok := rng.SpanID(rng.Crypto{})
	if !ok || len(span) != 16 {
		t.Errorf("SpanID = %q, %v, want 16 hex chars", span, ok)
	}
}

func TestUUID(t *testing.T) {
	u, ok := rng.UUID(rng.Crypto{})
	if !ok || len(u) != 36 {
		t.Errorf("UUID = %q, %v, want 36-char uuid", u, ok)
	}
	if u[14] != '4' {
		t.Errorf("UUID version nibble = %c, want 4", u[14])
	}
}

func TestUnavailableOmitsIdentifiers(t *testing.T) {
	if _, ok := rng.TraceID(rng.Unavailable{}); ok {
		t.Error("TraceID from unavailable rng = ok, want omission")
	}
	if _, ok := rng.UUID(rng.Unavailable{}); ok {
		t.Error("UUID from unavailable rng = ok, want omission")
	}
}
