package config

import (
	"sync"
	"sync/atomic"
)

// Shared is the configuration handle passed to both the UI and the detector.
//
// Readers take a Snapshot once per use; writers go through Update, which copies,
// mutates, normalizes and swaps the whole struct. A reader therefore never sees
// a mix of two updates. The detection flag is kept apart as its own atomic so
// the hotkey and the UI can flip it without touching the rest.
type Shared struct {
	current   atomic.Pointer[Config]
	detection atomic.Bool

	mu        sync.Mutex
	observers map[int]func(Config)
	nextID    int
}

// NewShared wraps cfg (normalized) and seeds the detection flag from StartEnabled
func NewShared(cfg Config) *Shared {
	cfg.Normalize()
	s := &Shared{}
	s.current.Store(&cfg)
	s.detection.Store(cfg.StartEnabled)
	return s
}

// Snapshot returns a copy of the current configuration
func (s *Shared) Snapshot() Config {
	return *s.current.Load()
}

// Update applies fn to a copy of the configuration and publishes the result.
// Observers run after the swap, on the caller's goroutine.
func (s *Shared) Update(fn func(*Config)) Config {
	s.mu.Lock()
	next := *s.current.Load()
	fn(&next)
	next.Normalize()
	s.current.Store(&next)
	observers := make([]func(Config), 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs(next)
	}
	return next
}

// OnChange registers fn to be called after every Update.
// The returned func removes it again.
func (s *Shared) OnChange(fn func(Config)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.observers == nil {
		s.observers = make(map[int]func(Config))
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// DetectionEnabled reports whether scanning is armed
func (s *Shared) DetectionEnabled() bool {
	return s.detection.Load()
}

// SetDetectionEnabled arms or disarms scanning
func (s *Shared) SetDetectionEnabled(enabled bool) {
	s.detection.Store(enabled)
}

// ToggleDetection flips the detection flag and returns the new value
func (s *Shared) ToggleDetection() bool {
	for {
		old := s.detection.Load()
		if s.detection.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
