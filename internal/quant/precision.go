package quant

// Precision selects the numeric precision model weights are loaded at.
type Precision string

const (
	// PrecisionInt4 stores weights on a 4-bit grid (~4x smaller than full).
	PrecisionInt4 Precision = "int4"
	// PrecisionInt8 stores weights on an 8-bit grid (~2x smaller than full).
	PrecisionInt8 Precision = "int8"
	// PrecisionFull keeps weights at full (16-bit float) precision.
	PrecisionFull Precision = "none"
)

// ParsePrecision validates a precision string from config.
func ParsePrecision(s string) (Precision, error) {
	switch Precision(s) {
	case PrecisionInt4, PrecisionInt8, PrecisionFull:
		return Precision(s), nil
	}
	return "", ErrUnsupportedPrecision(s)
}

// BytesPerParam returns the per-parameter footprint cost. Full precision
// is modeled as fp16 (2 bytes); int8 halves it and int4 quarters it.
func (p Precision) BytesPerParam() float64 {
	switch p {
	case PrecisionInt4:
		return 0.5
	case PrecisionInt8:
		return 1.0
	default:
		return 2.0
	}
}

// Footprint estimates the accelerator bytes needed for params parameters.
func (p Precision) Footprint(params int64) int64 {
	return int64(float64(params) * p.BytesPerParam())
}

// grid returns the number of positive quantization levels, 0 for no snapping.
func (p Precision) grid() float32 {
	switch p {
	case PrecisionInt4:
		return 7 // symmetric 4-bit: [-7, 7]
	case PrecisionInt8:
		return 127 // symmetric 8-bit: [-127, 127]
	default:
		return 0
	}
}

// Snap rounds x onto the precision's quantization grid. Full precision
// returns x unchanged. Snapping is deterministic, so two loads at the
// same precision always yield identical weights.
func (p Precision) Snap(x float32) float32 {
	g := p.grid()
	if g == 0 {
		return x
	}
	q := x * g
	if q >= 0 {
		q = float32(int32(q + 0.5))
	} else {
		q = float32(int32(q - 0.5))
	}
	if q > g {
		q = g
	} else if q < -g {
		q = -g
	}
	return q / g
}
