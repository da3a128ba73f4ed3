package gds

import (
	"errors"
	"fmt"
	"math"
)

// ErrRealRange reports a value whose magnitude cannot be represented in
// the GDSII 8-byte real format. Its base-16 exponent range is narrower
// than an IEEE double's, so extreme values are a hard error rather than
// a silent truncation.
var ErrRealRange = errors.New("value outside GDSII real exponent range")

// mantissaLimit is 2^56, one past the largest 56-bit mantissa.
const mantissaLimit = float64(1 << 56)

// encodeReal converts v to the GDSII 8-byte real format: a sign bit, a
// 7-bit excess-64 base-16 exponent and a 56-bit mantissa. Zero encodes
// to eight zero bytes.
func encodeReal(v float64) ([8]byte, error) {
	var out [8]byte
	if v == 0 {
		return out, nil
	}

	var sign byte
	if v < 0 {
		sign = 0x80
		v = -v
	}

	exponent := int(math.Floor(math.Log2(v) / 4))
	mantissa := v * math.Pow(16, float64(14-exponent))
	// Log2 rounding can overshoot the mantissa by one exponent step.
	for mantissa >= mantissaLimit {
		exponent++
		mantissa = v * math.Pow(16, float64(14-exponent))
	}

	if exponent < -64 || exponent > 63 {
		return out, fmt.Errorf("%w: %g", ErrRealRange, v)
	}

	m := uint64(mantissa)
	out[0] = sign | byte(exponent+64)
	for i := 1; i < 8; i++ {
		out[i] = byte(m >> (8 * (7 - i)))
	}
	return out, nil
}

// decodeReal converts an 8-byte GDSII real to a float64.
func decodeReal(b []byte) float64 {
	exponent := int(b[0]&0x7f) - 64
	var m uint64
	for i := 1; i < 8; i++ {
		m = m<<8 | uint64(b[i])
	}
	v := float64(m) / mantissaLimit * math.Pow(16, float64(exponent))
	if b[0]&0x80 != 0 {
		return -v
	}
	return v
}
