package timectrl

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/signalsfoundry/orrery/core"
)

// SimClock is the read side of the controller. Scene owners and other
// consumers depend on it instead of the concrete TimeController.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
	// After returns a channel that receives the simulation time once
	// simulated time has moved forward by at least d.
	After(d time.Duration) <-chan time.Time
}

// State is the play state of the controller.
type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// Mode describes how Run measures the real time between frames.
type Mode int

const (
	// FixedStep advances by exactly 1/frameRate seconds per frame,
	// regardless of how late the frame is.
	FixedStep Mode = iota
	// RealTime advances by the measured wall-clock time between frames.
	RealTime
)

const (
	DefaultTimeScale    = 365.0
	DefaultMinTimeScale = 1.0
	DefaultMaxTimeScale = 3650.0
	DefaultFrameRate    = 60.0
)

// Options configures a TimeController. Zero values take the defaults.
type Options struct {
	// TimeScale is simulated days per real second.
	TimeScale    float64
	MinTimeScale float64
	MaxTimeScale float64
	Mode         Mode
	// StartPaused leaves the controller paused after construction.
	StartPaused bool
}

func (o Options) withDefaults() Options {
	if o.TimeScale <= 0 {
		o.TimeScale = DefaultTimeScale
	}
	if o.MinTimeScale <= 0 {
		o.MinTimeScale = DefaultMinTimeScale
	}
	if o.MaxTimeScale <= 0 {
		o.MaxTimeScale = DefaultMaxTimeScale
	}
	if o.MaxTimeScale < o.MinTimeScale {
		o.MaxTimeScale = o.MinTimeScale
	}
	return o
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	CurrentTime  time.Time
	StartTime    time.Time
	TimeScale    float64
	MinTimeScale float64
	MaxTimeScale float64
	State        State
}

// IsPlaying reports whether the snapshot was taken while playing.
func (s Snapshot) IsPlaying() bool { return s.State == Playing }

type timer struct {
	deadline time.Time
	ch       chan time.Time
}

// TimeController owns simulated time. It implements SimClock and is safe
// for concurrent use; listeners run outside the lock on the goroutine that
// changed the time.
type TimeController struct {
	mu sync.RWMutex

	startTime   time.Time
	currentTime time.Time
	timeScale   float64
	minScale    float64
	maxScale    float64
	state       State
	mode        Mode

	listeners map[int]func(time.Time)
	nextID    int
	timers    []timer
}

// NewTimeController constructs a controller starting at start.
func NewTimeController(start time.Time, opts Options) *TimeController {
	opts = opts.withDefaults()
	tc := &TimeController{
		startTime:   start,
		currentTime: start,
		minScale:    opts.MinTimeScale,
		maxScale:    opts.MaxTimeScale,
		state:       Playing,
		mode:        opts.Mode,
		listeners:   make(map[int]func(time.Time)),
	}
	tc.timeScale = tc.clamp(opts.TimeScale)
	if opts.StartPaused {
		tc.state = Paused
	}
	return tc
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// After implements SimClock. The channel fires from whichever call moves
// simulated time past now+d; with d <= 0 it fires immediately.
func (tc *TimeController) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if d <= 0 {
		ch <- tc.currentTime
		return ch
	}
	tc.timers = append(tc.timers, timer{deadline: tc.currentTime.Add(d), ch: ch})
	return ch
}

// AddListener registers a callback invoked whenever simulated time changes.
// The returned func removes it.
func (tc *TimeController) AddListener(fn func(time.Time)) (remove func()) {
	tc.mu.Lock()
	id := tc.nextID
	tc.nextID++
	tc.listeners[id] = fn
	tc.mu.Unlock()

	return func() {
		tc.mu.Lock()
		delete(tc.listeners, id)
		tc.mu.Unlock()
	}
}

// Play resumes time advancement.
func (tc *TimeController) Play() {
	tc.mu.Lock()
	tc.state = Playing
	tc.mu.Unlock()
}

// Pause stops time advancement. Advance becomes a no-op until Play.
func (tc *TimeController) Pause() {
	tc.mu.Lock()
	tc.state = Paused
	tc.mu.Unlock()
}

// Toggle flips between Playing and Paused and returns the new state.
func (tc *TimeController) Toggle() State {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.state == Playing {
		tc.state = Paused
	} else {
		tc.state = Playing
	}
	return tc.state
}

// IsPlaying reports whether the controller is advancing time.
func (tc *TimeController) IsPlaying() bool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.state == Playing
}

// TimeScale returns simulated days per real second.
func (tc *TimeController) TimeScale() float64 {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.timeScale
}

// SetTimeScale clamps s into [min, max] and returns the value applied.
// NaN leaves the scale unchanged.
func (tc *TimeController) SetTimeScale(s float64) float64 {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if math.IsNaN(s) {
		return tc.timeScale
	}
	tc.timeScale = tc.clamp(s)
	return tc.timeScale
}

// Mode returns how Run measures frame time.
func (tc *TimeController) Mode() Mode {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.mode
}

// SetTime jumps simulated time to t.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	tc.currentTime = t
	fire := tc.setTimeLocked()
	tc.mu.Unlock()
	fire()
}

// Reset returns to the start time. The play state is kept.
func (tc *TimeController) Reset() {
	tc.mu.Lock()
	tc.currentTime = tc.startTime
	fire := tc.setTimeLocked()
	tc.mu.Unlock()
	fire()
}

// Advance moves simulated time forward by timeScale*deltaSeconds days
// while playing and returns the resulting time. Paused controllers and
// deltas that are non-positive or non-finite leave time untouched.
func (tc *TimeController) Advance(deltaSeconds float64) time.Time {
	tc.mu.Lock()
	if tc.state != Playing || !(deltaSeconds > 0) || math.IsInf(deltaSeconds, 0) {
		now := tc.currentTime
		tc.mu.Unlock()
		return now
	}
	tc.currentTime = core.AddDays(tc.currentTime, tc.timeScale*deltaSeconds)
	now := tc.currentTime
	fire := tc.setTimeLocked()
	tc.mu.Unlock()

	fire()
	return now
}

// Snapshot returns a consistent copy of the controller state.
func (tc *TimeController) Snapshot() Snapshot {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return Snapshot{
		CurrentTime:  tc.currentTime,
		StartTime:    tc.startTime,
		TimeScale:    tc.timeScale,
		MinTimeScale: tc.minScale,
		MaxTimeScale: tc.maxScale,
		State:        tc.state,
	}
}

// Run drives Advance from a ticker at frameRate frames per real second
// until ctx is cancelled. It returns a channel closed when the loop exits.
func (tc *TimeController) Run(ctx context.Context, frameRate float64) <-chan struct{} {
	if !(frameRate > 0) || math.IsInf(frameRate, 0) {
		frameRate = DefaultFrameRate
	}
	step := 1 / frameRate
	period := time.Duration(step * float64(time.Second))
	if period <= 0 {
		period = time.Nanosecond
	}
	mode := tc.Mode()

	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				delta := step
				if mode == RealTime {
					delta = now.Sub(last).Seconds()
				}
				last = now
				tc.Advance(delta)
			}
		}
	}()
	return done
}

func (tc *TimeController) clamp(s float64) float64 {
	return math.Min(math.Max(s, tc.minScale), tc.maxScale)
}

// setTimeLocked collects the listeners and expired timers for the new
// current time. The caller must hold tc.mu and invoke the returned func
// after releasing it.
func (tc *TimeController) setTimeLocked() func() {
	now := tc.currentTime

	fns := make([]func(time.Time), 0, len(tc.listeners))
	for id := 0; id < tc.nextID; id++ {
		if fn, ok := tc.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}

	pending := tc.timers[:0]
	for _, tm := range tc.timers {
		if now.Before(tm.deadline) {
			pending = append(pending, tm)
			continue
		}
		tm.ch <- now
	}
	tc.timers = pending

	return func() {
		for _, fn := range fns {
			fn(now)
		}
	}
}
