package input

import (
	"sync/atomic"
	"time"
)

// Synthesizer emits a left click at the current pointer position.
//
// Implementations deliver the click over several independent paths and
// swallow per-path failures; there is nothing for the caller to handle.
type Synthesizer interface {
	Click()
}

// Pauses between button down and up for the message and legacy paths
const (
	messagePathPause = 20 * time.Millisecond
	legacyPathPause  = 15 * time.Millisecond
)

// CountingSynthesizer wraps another synthesizer and counts clicks, test clicks included.
// A nil Next only counts.
type CountingSynthesizer struct {
	Next  Synthesizer
	count atomic.Int64
}

func (c *CountingSynthesizer) Click() {
	c.count.Add(1)
	if c.Next != nil {
		c.Next.Click()
	}
}

// Count returns the number of clicks issued so far
func (c *CountingSynthesizer) Count() int64 {
	return c.count.Load()
}
