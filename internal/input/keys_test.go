package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want KeyCode
	}{
		{"", KeyNone},
		{"none", KeyNone},
		{"n", KeyN},
		{"W", KeyW},
		{"7", KeyCode('7')},
		{"F2", KeyF2},
		{"f12", KeyF12},
		{"Up", KeyUp},
		{"left", KeyLeft},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"F13", "F0", "shift", "?"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeyCodeStringRoundTrip(t *testing.T) {
	for _, k := range append([]KeyCode{KeyNone, KeyN, KeyF2, KeyF12}, MovementKeys...) {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, parsed)
	}
}

func TestAnyPressed(t *testing.T) {
	held := map[KeyCode]bool{KeyDown: true}
	ks := KeyStateFunc(func(k KeyCode) bool { return held[k] })

	assert.True(t, AnyPressed(ks, MovementKeys))
	assert.False(t, AnyPressed(ks, []KeyCode{KeyW, KeyN}))
	assert.False(t, AnyPressed(ks, nil))
}

func TestCountingSynthesizer(t *testing.T) {
	inner := &CountingSynthesizer{}
	outer := &CountingSynthesizer{Next: inner}

	outer.Click()
	outer.Click()

	assert.EqualValues(t, 2, outer.Count())
	assert.EqualValues(t, 2, inner.Count())
}
