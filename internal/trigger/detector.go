package trigger

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/events"
	"jordanella.com/pixel-trigger-go/internal/input"
	"jordanella.com/pixel-trigger-go/internal/logging"
)

// Poll intervals of the loop
const (
	disabledPoll = 10 * time.Millisecond // detection switched off
	lockoutPoll  = 5 * time.Millisecond  // hold key released or movement key held
	scanPoll     = 1 * time.Millisecond  // between two scan passes
)

// ErrAlreadyRunning is returned by Start when the worker is already up
var ErrAlreadyRunning = errors.New("detector already running")

// Stats are cumulative counters for the status line
type Stats struct {
	Scans        int64
	Matches      int64
	Clicks       int64
	Abandoned    int64
	SampleErrors int64
	LastClick    time.Time
}

// detectionState belongs to one Run; it is created at start and dropped at exit
type detectionState struct {
	lastClick time.Time // detection time of the last click, loop start before the first
	blind     bool // the last pass could not read a single pixel
}

// Detector is the worker that watches the disk around the screen center and
// clicks when the target color shows up.
type Detector struct {
	shared  *config.Shared
	sampler cv.PixelSampler
	clicker input.Synthesizer
	keys    input.KeyState

	clock    Clock
	rng      *rand.Rand
	bus      events.EventBus
	logger   *logging.Logger
	centerFn func() (image.Point, error)
	disk     cv.DiskCache

	invalidateMu sync.Mutex
	invalidate   func()

	scans        atomic.Int64
	matches      atomic.Int64
	clicks       atomic.Int64
	abandoned    atomic.Int64
	sampleErrors atomic.Int64
	lastClickNs  atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Detector
type Option func(*Detector)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(d *Detector) { d.clock = c }
}

// WithRand sets the random source for humanization delays
func WithRand(r *rand.Rand) Option {
	return func(d *Detector) { d.rng = r }
}

// WithEventBus publishes detector events on bus
func WithEventBus(bus events.EventBus) Option {
	return func(d *Detector) { d.bus = bus }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithCenterFunc replaces the screen center lookup done at start
func WithCenterFunc(fn func() (image.Point, error)) Option {
	return func(d *Detector) { d.centerFn = fn }
}

// New creates a detector. Nothing runs until Start or Run.
func New(shared *config.Shared, sampler cv.PixelSampler, clicker input.Synthesizer, keys input.KeyState, opts ...Option) *Detector {
	d := &Detector{
		shared:   shared,
		sampler:  sampler,
		clicker:  clicker,
		keys:     keys,
		clock:    RealClock{},
		centerFn: cv.ScreenCenter,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = newRand()
	}
	if d.logger == nil {
		d.logger = logging.NewLogger("Detector")
	}
	return d
}

// SetInvalidateHook registers fn to be called after changes that affect the
// on-screen indicator (toggles and clicks). fn must not block.
func (d *Detector) SetInvalidateHook(fn func()) {
	d.invalidateMu.Lock()
	defer d.invalidateMu.Unlock()
	d.invalidate = fn
}

func (d *Detector) notifyInvalidate() {
	d.invalidateMu.Lock()
	fn := d.invalidate
	d.invalidateMu.Unlock()
	if fn != nil {
		fn()
	}
}

func (d *Detector) publish(e events.Event) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}

// anchor resolves the screen center and stores it in the shared config
func (d *Detector) anchor() (image.Point, error) {
	if d.centerFn == nil {
		return d.shared.Snapshot().Center, nil
	}
	center, err := d.centerFn()
	if err != nil {
		return image.Point{}, fmt.Errorf("failed to locate screen center: %w", err)
	}
	d.shared.Update(func(c *config.Config) { c.Center = center })
	return center, nil
}

// Run anchors the center and loops until ctx is done.
// It only fails when the center cannot be found; ctx cancellation returns nil.
func (d *Detector) Run(ctx context.Context) error {
	center, err := d.anchor()
	if err != nil {
		return err
	}
	d.loop(ctx, center)
	return nil
}

func (d *Detector) loop(ctx context.Context, center image.Point) {
	d.logger.InfoWithContext("Detector started", map[string]interface{}{
		"center_x": center.X,
		"center_y": center.Y,
	})
	d.publish(events.NewDetectorStartedEvent(center.X, center.Y))

	st := &detectionState{lastClick: d.clock.Now()}
	for ctx.Err() == nil {
		if err := d.iterate(ctx, st); err != nil {
			break
		}
	}

	clicks := d.clicks.Load()
	d.logger.InfoWithContext("Detector stopped", map[string]interface{}{"clicks": clicks})
	d.publish(events.NewDetectorStoppedEvent(clicks))
}

// iterate is one pass of the loop. The only error it returns is ctx's.
func (d *Detector) iterate(ctx context.Context, st *detectionState) error {
	if !d.shared.DetectionEnabled() {
		return d.clock.Sleep(ctx, disabledPoll)
	}

	cfg := d.shared.Snapshot()

	if cfg.HoldKey != input.KeyNone && !d.keys.IsPressed(cfg.HoldKey) {
		return d.clock.Sleep(ctx, lockoutPoll)
	}
	if d.MovementLocked() {
		return d.clock.Sleep(ctx, lockoutPoll)
	}

	d.scans.Add(1)
	at, found, err := d.scan(cfg)
	d.trackBlind(st, err)
	if found {
		d.matches.Add(1)
		if err := d.trigger(ctx, cfg, st, at); err != nil {
			return err
		}
	}

	return d.clock.Sleep(ctx, scanPoll)
}

// scan walks the disk around the center and stops at the first matching pixel.
// A failed sample counts as a non-match for that pixel only. The returned error
// is set only when no pixel of the pass could be read.
func (d *Detector) scan(cfg config.Config) (image.Point, bool, error) {
	var lastErr error
	read := 0
	for _, off := range d.disk.Offsets(cfg.Radius) {
		p := cfg.Center.Add(off)
		c, err := d.sampler.Sample(p.X, p.Y)
		if err != nil {
			d.sampleErrors.Add(1)
			lastErr = err
			continue
		}
		read++
		if cv.Matches(c, cfg.TargetColor, cfg.Tolerance) {
			return p, true, nil
		}
	}
	if read == 0 && lastErr != nil {
		return image.Point{}, false, lastErr
	}
	return image.Point{}, false, nil
}

// trackBlind reports the transitions between readable and unreadable screen once each
func (d *Detector) trackBlind(st *detectionState, err error) {
	switch {
	case err != nil && !st.blind:
		st.blind = true
		d.logger.Error("Screen unreadable around the center", err)
		d.publish(events.NewErrorEvent("sampler", err))
	case err == nil && st.blind:
		st.blind = false
		d.logger.Info("Screen readable again")
	}
}

// trigger applies the click policy to a match found at time now
func (d *Detector) trigger(ctx context.Context, cfg config.Config, st *detectionState, at image.Point) error {
	now := d.clock.Now()

	if !cfg.ClickEnabled {
		return nil
	}
	cooldown := time.Duration(cfg.CooldownMs) * time.Millisecond
	if now.Sub(st.lastClick) < cooldown {
		return nil
	}

	if cfg.ClickDelayMs > 0 {
		if err := d.clock.Sleep(ctx, time.Duration(cfg.ClickDelayMs)*time.Millisecond); err != nil {
			return err
		}
		if d.MovementLocked() {
			d.abandoned.Add(1)
			d.logger.Debug("Trigger abandoned: movement key pressed during click delay")
			d.publish(events.NewTriggerAbandonedEvent("movement"))
			return nil
		}
	}

	pre := HumanDelay(d.rng, cfg.MinDelayMs, cfg.MaxDelayMs)
	if err := d.clock.Sleep(ctx, pre); err != nil {
		return err
	}

	d.clicker.Click()
	st.lastClick = now

	d.clicks.Add(1)
	d.lastClickNs.Store(d.clock.Now().UnixNano())
	d.logger.DebugWithContext("Trigger fired", map[string]interface{}{
		"x":        at.X,
		"y":        at.Y,
		"delay_ms": pre.Milliseconds(),
	})
	d.publish(events.NewTriggerFiredEvent(at.X, at.Y, pre))
	d.notifyInvalidate()

	// Second, independent delay after the click. Same distribution as the first.
	return d.clock.Sleep(ctx, HumanDelay(d.rng, cfg.MinDelayMs, cfg.MaxDelayMs))
}

// MovementLocked reports whether any movement key is held right now
func (d *Detector) MovementLocked() bool {
	return input.AnyPressed(d.keys, input.MovementKeys)
}

// Start runs the loop on its own goroutine. The screen center is resolved
// before Start returns, so a missing display is reported to the caller.
func (d *Detector) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done != nil {
		return ErrAlreadyRunning
	}

	center, err := d.anchor()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel, d.done = cancel, done

	go func() {
		defer close(done)
		d.loop(ctx, center)
	}()

	return nil
}

// RequestStop asks the worker to exit after its current iteration without waiting
func (d *Detector) RequestStop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

// Stop cancels the worker and waits for it to exit
func (d *Detector) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a worker started with Start is alive
func (d *Detector) Running() bool {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// RequestToggleDetection flips the detection flag on behalf of the UI
func (d *Detector) RequestToggleDetection() bool {
	return d.ToggleFrom("ui")
}

// ToggleFrom flips the detection flag and reports who did it
func (d *Detector) ToggleFrom(source string) bool {
	enabled := d.shared.ToggleDetection()
	d.detectionChanged(source, enabled)
	return enabled
}

// SetDetectionEnabled sets the detection flag explicitly (checkbox)
func (d *Detector) SetDetectionEnabled(source string, enabled bool) {
	if d.shared.DetectionEnabled() == enabled {
		return
	}
	d.shared.SetDetectionEnabled(enabled)
	d.detectionChanged(source, enabled)
}

func (d *Detector) detectionChanged(source string, enabled bool) {
	d.logger.InfoWithContext("Detection toggled", map[string]interface{}{
		"enabled": enabled,
		"source":  source,
	})
	d.publish(events.NewDetectionToggledEvent(source, enabled))
	d.notifyInvalidate()
}

// TestClick clicks immediately, bypassing detection, cooldown and delays
func (d *Detector) TestClick() {
	d.logger.Info("Test click")
	d.clicker.Click()
}

// Stats returns a copy of the counters
func (d *Detector) Stats() Stats {
	s := Stats{
		Scans:        d.scans.Load(),
		Matches:      d.matches.Load(),
		Clicks:       d.clicks.Load(),
		Abandoned:    d.abandoned.Load(),
		SampleErrors: d.sampleErrors.Load(),
	}
	if ns := d.lastClickNs.Load(); ns != 0 {
		s.LastClick = time.Unix(0, ns)
	}
	return s
}
