package input

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyCode is a Windows virtual-key code. Zero means "no key".
type KeyCode uint16

const (
	KeyNone  KeyCode = 0
	KeyLeft  KeyCode = 0x25
	KeyUp    KeyCode = 0x26
	KeyRight KeyCode = 0x27
	KeyDown  KeyCode = 0x28
	KeyF1    KeyCode = 0x70
	KeyF2    KeyCode = 0x71
	KeyF12   KeyCode = 0x7B

	KeyA KeyCode = 'A'
	KeyD KeyCode = 'D'
	KeyN KeyCode = 'N'
	KeyS KeyCode = 'S'
	KeyW KeyCode = 'W'
)

// MovementKeys suppress clicking while any of them is held
var MovementKeys = []KeyCode{KeyW, KeyA, KeyS, KeyD, KeyUp, KeyLeft, KeyDown, KeyRight}

var namedKeys = map[string]KeyCode{
	"left":  KeyLeft,
	"up":    KeyUp,
	"right": KeyRight,
	"down":  KeyDown,
}

// ParseKey accepts "", "none", a single letter or digit, F1..F12, or an arrow name
func ParseKey(s string) (KeyCode, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case lower == "" || lower == "none" || lower == "0":
		return KeyNone, nil
	case len(s) == 1:
		c := strings.ToUpper(s)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return KeyCode(c), nil
		}
	case lower[0] == 'f' && len(lower) <= 3:
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 12 {
			return KeyF1 + KeyCode(n-1), nil
		}
	}

	if k, ok := namedKeys[lower]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}

func (k KeyCode) String() string {
	switch {
	case k == KeyNone:
		return "none"
	case (k >= 'A' && k <= 'Z') || (k >= '0' && k <= '9'):
		return string(rune(k))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	for name, code := range namedKeys {
		if code == k {
			return name
		}
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// KeyState reports the physical state of keys at the time of the call
type KeyState interface {
	IsPressed(k KeyCode) bool
}

// KeyStateFunc adapts a function to KeyState
type KeyStateFunc func(k KeyCode) bool

func (f KeyStateFunc) IsPressed(k KeyCode) bool {
	return f(k)
}

// AnyPressed reports whether at least one of keys is held
func AnyPressed(ks KeyState, keys []KeyCode) bool {
	for _, k := range keys {
		if ks.IsPressed(k) {
			return true
		}
	}
	return false
}
