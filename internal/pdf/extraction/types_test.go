package extraction

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBDistance(t *testing.T) {
	assert.Zero(t, White.Distance(White))
	assert.Zero(t, Black.Distance(Black))

	// Symmetric.
	red := RGB{R: 255}
	assert.InDelta(t, red.Distance(Black), Black.Distance(red), 0.0001)

	// Full-range single channels reflect the perceptual weights.
	assert.InDelta(t, 255*math.Sqrt(2), RGB{R: 255}.Distance(Black), 0.0001)
	assert.InDelta(t, 255*math.Sqrt(4), RGB{G: 255}.Distance(Black), 0.0001)
	assert.InDelta(t, 255*math.Sqrt(3), RGB{B: 255}.Distance(Black), 0.0001)
}

func TestMaxColorDistance(t *testing.T) {
	assert.InDelta(t, 255*math.Sqrt(9), MaxColorDistance, 0.0001)

	// Nothing exceeds the black-white distance.
	for _, c := range []RGB{{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 128, B: 7}} {
		assert.LessOrEqual(t, c.Distance(White), MaxColorDistance)
		assert.LessOrEqual(t, c.Distance(Black), MaxColorDistance)
	}
}

func TestRGBIsNearGray(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		tol   uint8
		want  bool
	}{
		{"pure white", White, 15, true},
		{"pure black", Black, 15, true},
		{"mid gray", RGB{R: 128, G: 128, B: 128}, 15, true},
		{"warm gray within tolerance", RGB{R: 130, G: 125, B: 120}, 15, true},
		{"spread exactly at tolerance", RGB{R: 115, G: 100, B: 100}, 15, true},
		{"spread just past tolerance", RGB{R: 116, G: 100, B: 100}, 15, false},
		{"saturated red", RGB{R: 220, G: 40, B: 40}, 15, false},
		{"zero tolerance accepts only exact gray", RGB{R: 100, G: 101, B: 100}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.color.IsNearGray(tt.tol))
		})
	}
}

func TestTextSpanGeometry(t *testing.T) {
	s := TextSpan{X0: 72, Y0: 100, X1: 172, Y1: 114}
	assert.InDelta(t, 100.0, s.Width(), 0.0001)
	assert.InDelta(t, 14.0, s.Height(), 0.0001)
}

func TestPageError(t *testing.T) {
	cause := errors.New("stream truncated")
	pe := &PageError{Page: 7, Err: cause}

	assert.Equal(t, "page 7: stream truncated", pe.Error())
	assert.ErrorIs(t, pe, cause)
}
