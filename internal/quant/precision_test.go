package quant

import (
	"math"
	"testing"
)

func TestParsePrecision(t *testing.T) {
	for _, s := range []string{"int4", "int8", "none"} {
		p, err := ParsePrecision(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if string(p) != s {
			t.Fatalf("parse %q gave %q", s, p)
		}
	}
	_, err := ParsePrecision("fp8")
	if err == nil {
		t.Fatalf("expected error for unknown precision")
	}
	if !IsUnsupportedPrecision(err) {
		t.Fatalf("expected IsUnsupportedPrecision, got %v", err)
	}
	if IsUnsupportedPrecision(ErrModelIncompatible("x")) {
		t.Fatalf("predicate must not match other errors")
	}
}

func TestFootprintRatios(t *testing.T) {
	const params = 1_000_000
	full := PrecisionFull.Footprint(params)
	if full != 2*params {
		t.Fatalf("full footprint=%d", full)
	}
	if got := PrecisionInt8.Footprint(params); got != full/2 {
		t.Fatalf("int8 footprint=%d want %d", got, full/2)
	}
	if got := PrecisionInt4.Footprint(params); got != full/4 {
		t.Fatalf("int4 footprint=%d want %d", got, full/4)
	}
}

func TestSnap(t *testing.T) {
	// Full precision passes values through untouched.
	for _, v := range []float32{0, 0.1234, -0.9876, 1.5} {
		if got := PrecisionFull.Snap(v); got != v {
			t.Fatalf("full snap changed %v to %v", v, got)
		}
	}
	// int8 snaps onto the /127 grid.
	got := PrecisionInt8.Snap(0.5)
	want := float32(math.Round(0.5*127)) / 127
	if got != want {
		t.Fatalf("int8 snap=%v want %v", got, want)
	}
	// int4 grid is coarser: 0.1 lands on 1/7.
	if got := PrecisionInt4.Snap(0.1); got != float32(1)/7 {
		t.Fatalf("int4 snap=%v", got)
	}
	// Values beyond the grid clamp to +/-1.
	if got := PrecisionInt4.Snap(3.0); got != 1 {
		t.Fatalf("clamp high=%v", got)
	}
	if got := PrecisionInt8.Snap(-3.0); got != -1 {
		t.Fatalf("clamp low=%v", got)
	}
	// Negative values snap symmetrically.
	if PrecisionInt4.Snap(-0.1) != -PrecisionInt4.Snap(0.1) {
		t.Fatalf("snap not symmetric")
	}
}
