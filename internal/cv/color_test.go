package cv

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomColor(r *rand.Rand) Color {
	return Color{R: uint8(r.IntN(256)), G: uint8(r.IntN(256)), B: uint8(r.IntN(256))}
}

func TestMatchesSymmetric(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		a, b := randomColor(r), randomColor(r)
		tol := r.IntN(256)
		assert.Equal(t, Matches(a, b, tol), Matches(b, a, tol), "a=%v b=%v t=%d", a, b, tol)
	}
}

func TestMatchesReflexive(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		a := randomColor(r)
		for _, tol := range []int{0, 1, 30, 255} {
			assert.True(t, Matches(a, a, tol), "a=%v t=%d", a, tol)
		}
	}
}

func TestMatchesZeroToleranceIsEquality(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 5000; i++ {
		a, b := randomColor(r), randomColor(r)
		if i%4 == 0 {
			b = a
		}
		assert.Equal(t, a == b, Matches(a, b, 0), "a=%v b=%v", a, b)
	}
}

func TestMatchesPerChannel(t *testing.T) {
	target := RGB(255, 0, 0)

	tests := []struct {
		name string
		c    Color
		tol  int
		want bool
	}{
		{"within on all channels", RGB(250, 5, 5), 10, true},
		{"exactly at tolerance", RGB(245, 10, 10), 10, true},
		{"one channel over", RGB(250, 11, 5), 10, false},
		{"red channel over", RGB(244, 0, 0), 10, false},
		{"channel deviations do not add up", RGB(246, 9, 9), 9, true},
		{"negative tolerance", RGB(255, 0, 0), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.c, target, tt.tol))
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 128, 0), c)

	c, err = ParseHex("00ff7f")
	require.NoError(t, err)
	assert.Equal(t, RGB(0, 255, 127), c)
	assert.Equal(t, "#00ff7f", c.Hex())

	_, err = ParseHex("not-a-color")
	assert.Error(t, err)
}

func TestColorConversions(t *testing.T) {
	c := FromColor(color.RGBA{R: 12, G: 34, B: 56, A: 255})
	assert.Equal(t, RGB(12, 34, 56), c)
	assert.Equal(t, color.NRGBA{R: 12, G: 34, B: 56, A: 255}, c.NRGBA())

	// GDI packs colors as 0x00BBGGRR
	assert.Equal(t, RGB(0x11, 0x22, 0x33), fromCOLORREF(0x00332211))
}
