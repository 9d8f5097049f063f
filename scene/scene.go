package scene

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/signalsfoundry/orrery/catalog"
	"github.com/signalsfoundry/orrery/core"
	"github.com/signalsfoundry/orrery/internal/logging"
	"github.com/signalsfoundry/orrery/model"
)

const tracerName = "github.com/signalsfoundry/orrery/scene"

// DefaultDistanceScale is scene units per AU.
const DefaultDistanceScale = 15.0

// BodyState is one body's computed state for a frame.
type BodyState struct {
	ID string
	// Position is heliocentric ecliptic, multiplied by the distance scale.
	Position core.Vec3
	// DistanceAU is the unscaled heliocentric distance.
	DistanceAU float64
	// MeanAnomaly is in degrees, [0, 360). Zero for the star.
	MeanAnomaly float64
	// RotationAngle is the spin angle in radians, [0, 2π).
	RotationAngle float64
	// Illumination is relative sunlight intensity. Zero for the star.
	Illumination float64
}

// Frame is an immutable snapshot produced by Update.
type Frame struct {
	Seq    int64
	Time   time.Time
	Bodies []BodyState
}

// Body looks up a state by body ID.
func (f Frame) Body(id string) (BodyState, bool) {
	for _, s := range f.Bodies {
		if s.ID == id {
			return s, true
		}
	}
	return BodyState{}, false
}

// Recorder observes completed updates.
type Recorder interface {
	ObserveUpdate(d time.Duration, bodies int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveUpdate(time.Duration, int) {}

// Option configures a Scene.
type Option func(*Scene)

// WithDistanceScale sets scene units per AU.
func WithDistanceScale(s float64) Option {
	return func(sc *Scene) {
		if s > 0 {
			sc.distanceScale = s
		}
	}
}

// WithOrbitSegments sets the number of segments of each cached orbit path.
func WithOrbitSegments(n int) Option {
	return func(sc *Scene) {
		if n > 0 {
			sc.segments = n
		}
	}
}

// WithLogger sets the scene logger.
func WithLogger(l logging.Logger) Option {
	return func(sc *Scene) {
		if l != nil {
			sc.log = l
		}
	}
}

// WithRecorder sets the update recorder.
func WithRecorder(r Recorder) Option {
	return func(sc *Scene) {
		if r != nil {
			sc.recorder = r
		}
	}
}

// WithConcurrency bounds the number of bodies computed in parallel.
func WithConcurrency(n int) Option {
	return func(sc *Scene) {
		if n > 0 {
			sc.concurrency = n
		}
	}
}

type entry struct {
	body   model.Body
	motion core.MotionModel
	path   []core.Vec3
}

// Scene holds the per-frame state of every cataloged body. Update is
// normally called from a single render loop; readers may call Snapshot,
// State and OrbitPath concurrently.
type Scene struct {
	entries       []entry
	index         map[string]int
	distanceScale float64
	segments      int
	concurrency   int
	log           logging.Logger
	recorder      Recorder

	mu    sync.RWMutex
	frame Frame
	subs  map[int]func(Frame)
	subID int
}

// New builds a scene over cat. Orbit paths are sampled once here.
func New(cat *catalog.Catalog, p *core.Propagator, opts ...Option) *Scene {
	if p == nil {
		p = core.NewPropagator()
	}
	sc := &Scene{
		index:         make(map[string]int, cat.Len()),
		distanceScale: DefaultDistanceScale,
		segments:      core.DefaultOrbitSegments,
		concurrency:   runtime.GOMAXPROCS(0),
		log:           logging.Noop(),
		recorder:      noopRecorder{},
		subs:          make(map[int]func(Frame)),
	}
	for _, opt := range opts {
		opt(sc)
	}

	for _, b := range cat.Bodies() {
		e := entry{body: b, motion: core.NewMotionModel(b, p)}
		if b.Elements != nil {
			e.path = p.GenerateOrbitPath(*b.Elements, sc.segments, sc.distanceScale)
		}
		sc.index[b.ID] = len(sc.entries)
		sc.entries = append(sc.entries, e)
	}
	return sc
}

// DistanceScale returns scene units per AU.
func (sc *Scene) DistanceScale() float64 { return sc.distanceScale }

// Update recomputes every body at simTime, publishes the frame and
// notifies subscribers. It fails only when ctx is done.
func (sc *Scene) Update(ctx context.Context, simTime time.Time) (Frame, error) {
	sc.mu.RLock()
	seq := sc.frame.Seq + 1
	sc.mu.RUnlock()

	ctx = logging.ContextWithFrame(ctx, seq)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "scene.Update")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("scene.frame", seq),
		attribute.String("scene.sim_time", simTime.UTC().Format(time.RFC3339)),
		attribute.Int("scene.bodies", len(sc.entries)),
	)

	started := time.Now()
	states := make([]BodyState, len(sc.entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sc.concurrency)
	for i := range sc.entries {
		e := &sc.entries[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			states[i] = sc.compute(gctx, e, simTime)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		sc.log.Warn(ctx, "scene update aborted", logging.Err(err))
		return Frame{}, fmt.Errorf("scene update at %s: %w", simTime.Format(time.RFC3339), err)
	}

	frame := Frame{Seq: seq, Time: simTime, Bodies: states}

	sc.mu.Lock()
	sc.frame = frame
	subs := make([]func(Frame), 0, len(sc.subs))
	for id := 0; id < sc.subID; id++ {
		if fn, ok := sc.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	sc.mu.Unlock()

	sc.recorder.ObserveUpdate(time.Since(started), len(states))
	sc.log.Debug(ctx, "scene updated",
		logging.Time("sim_time", simTime),
		logging.Int("bodies", len(states)),
	)

	for _, fn := range subs {
		fn(frame.clone())
	}
	return frame.clone(), nil
}

func (sc *Scene) compute(ctx context.Context, e *entry, simTime time.Time) BodyState {
	pos := e.motion.Position(ctx, simTime, 1)
	state := BodyState{
		ID:            e.body.ID,
		Position:      pos.Scale(sc.distanceScale),
		DistanceAU:    pos.Norm(),
		RotationAngle: core.RotationAngle(e.body, simTime),
	}
	if e.body.Elements != nil {
		state.MeanAnomaly = core.MeanAnomaly(simTime, *e.body.Elements)
		state.Illumination = core.Illumination(state.DistanceAU)
	}
	return state
}

// Snapshot returns the most recent frame. Before the first Update it is
// the zero Frame.
func (sc *Scene) Snapshot() Frame {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.frame.clone()
}

// State returns the latest state of one body.
func (sc *Scene) State(id string) (BodyState, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.frame.Body(id)
}

// OrbitPath returns a copy of the cached orbit path of a body. The star
// has no path.
func (sc *Scene) OrbitPath(id string) ([]core.Vec3, bool) {
	i, ok := sc.index[id]
	if !ok || sc.entries[i].path == nil {
		return nil, false
	}
	return append([]core.Vec3(nil), sc.entries[i].path...), true
}

// Body returns the catalog entry behind a scene body.
func (sc *Scene) Body(id string) (model.Body, bool) {
	i, ok := sc.index[id]
	if !ok {
		return model.Body{}, false
	}
	b := sc.entries[i].body
	if b.Elements != nil {
		el := *b.Elements
		b.Elements = &el
	}
	return b, true
}

// Subscribe registers fn to receive every published frame. It returns an
// unsubscribe function.
func (sc *Scene) Subscribe(fn func(Frame)) (unsubscribe func()) {
	sc.mu.Lock()
	id := sc.subID
	sc.subID++
	sc.subs[id] = fn
	sc.mu.Unlock()

	return func() {
		sc.mu.Lock()
		delete(sc.subs, id)
		sc.mu.Unlock()
	}
}

func (f Frame) clone() Frame {
	if f.Bodies != nil {
		f.Bodies = append([]BodyState(nil), f.Bodies...)
	}
	return f
}
