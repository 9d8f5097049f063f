package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/orrery/internal/logging"
	"github.com/signalsfoundry/orrery/model"
)

// QualityRecorder receives degraded-accuracy events from the propagator.
// observability.EngineCollector satisfies it.
type QualityRecorder interface {
	RecordFallback(bodyID string)
	RecordNonConvergence(bodyID string)
}

type noopRecorder struct{}

func (noopRecorder) RecordFallback(string)       {}
func (noopRecorder) RecordNonConvergence(string) {}

var (
	errMissingElements = errors.New("body has no orbital elements")
	errNonFinite       = errors.New("computed position is not finite")
)

// Propagator turns a body's elements and an instant into a heliocentric
// position. It holds only configuration; every method is safe for
// concurrent use.
type Propagator struct {
	solver   KeplerSolver
	log      logging.Logger
	recorder QualityRecorder
}

// PropagatorOption configures a Propagator.
type PropagatorOption func(*Propagator)

// WithSolver overrides the Kepler solver settings.
func WithSolver(s KeplerSolver) PropagatorOption {
	return func(p *Propagator) { p.solver = s }
}

// WithLogger sets the logger used for quality warnings.
func WithLogger(l logging.Logger) PropagatorOption {
	return func(p *Propagator) {
		if l != nil {
			p.log = l
		}
	}
}

// WithQualityRecorder sets the sink for fallback and non-convergence events.
func WithQualityRecorder(r QualityRecorder) PropagatorOption {
	return func(p *Propagator) {
		if r != nil {
			p.recorder = r
		}
	}
}

// NewPropagator constructs a propagator with the default solver, a noop
// logger and no metrics unless overridden.
func NewPropagator(opts ...PropagatorOption) *Propagator {
	p := &Propagator{
		solver:   DefaultKeplerSolver(),
		log:      logging.Noop(),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Solver returns the solver settings in use.
func (p *Propagator) Solver() KeplerSolver { return p.solver }

var defaultPropagator = NewPropagator()

// CalculatePlanetPosition returns the body's heliocentric position at t,
// multiplied by scale, using the default propagator.
func CalculatePlanetPosition(body model.Body, t time.Time, scale float64) Vec3 {
	return defaultPropagator.CalculatePlanetPosition(body, t, scale)
}

// CalculatePlanetPosition returns the body's heliocentric position at t,
// multiplied by scale.
func (p *Propagator) CalculatePlanetPosition(body model.Body, t time.Time, scale float64) Vec3 {
	return p.PositionAt(context.Background(), body, t, scale)
}

// PositionAt is CalculatePlanetPosition with a context for log correlation.
//
// It never panics: a panic or a non-finite result inside the propagation
// chain is logged and replaced by a circular-orbit estimate built from the
// body's mean distance and period. The star is always at the origin.
func (p *Propagator) PositionAt(ctx context.Context, body model.Body, t time.Time, scale float64) (pos Vec3) {
	if body.IsStar() {
		return Vec3{}
	}
	jd := JulianDate(t)

	defer func() {
		if r := recover(); r != nil {
			pos = p.fallback(ctx, body, jd, scale, fmt.Errorf("panic: %v", r))
		}
	}()

	if body.Elements == nil {
		return p.fallback(ctx, body, jd, scale, errMissingElements)
	}
	elements := *body.Elements

	pos = p.heliocentric(ctx, body.ID, elements, meanAnomalyAtJD(jd, elements)).Scale(scale)
	if !pos.IsFinite() {
		return p.fallback(ctx, body, jd, scale, errNonFinite)
	}
	return pos
}

// heliocentric runs M → E → ν → r → ecliptic vector, in AU.
func (p *Propagator) heliocentric(ctx context.Context, bodyID string, elements model.OrbitalElements, meanAnomalyDeg float64) Vec3 {
	e := elements.Eccentricity
	E, iterations, converged := p.solver.Solve(meanAnomalyDeg, e)
	if !converged {
		p.recorder.RecordNonConvergence(bodyID)
		p.log.Warn(ctx, "kepler solver hit iteration cap; using last iterate",
			logging.String("body", bodyID),
			logging.Float("mean_anomaly_deg", meanAnomalyDeg),
			logging.Float("eccentricity", e),
			logging.Int("iterations", iterations),
		)
	}
	nu := trueAnomalyFromEccentric(E, e)
	r := OrbitalRadius(nu, elements.SemiMajorAxis, e)
	return OrbitalToHeliocentric(r, nu, elements)
}

func (p *Propagator) fallback(ctx context.Context, body model.Body, jd, scale float64, cause error) Vec3 {
	p.recorder.RecordFallback(body.ID)
	p.log.Warn(ctx, "position calculation failed; using circular orbit estimate",
		logging.String("body", body.ID),
		logging.Err(cause),
	)
	pos := circularEstimate(body, jd).Scale(scale)
	if !pos.IsFinite() {
		return Vec3{}
	}
	return pos
}

// circularEstimate places the body on a circle of radius distanceFromSun in
// the ecliptic plane, at a phase that advances uniformly from J2000.
func circularEstimate(body model.Body, jd float64) Vec3 {
	distance := body.DistanceFromSun
	if distance <= 0 && body.Elements != nil {
		distance = body.Elements.SemiMajorAxis
	}
	if !(distance > 0) {
		return Vec3{}
	}
	period := body.OrbitalPeriod
	if !(period > 0) {
		period = OrbitalPeriod(distance)
	}
	angle := twoPi * (jd - J2000) / period
	sin, cos := math.Sincos(angle)
	return Vec3{X: cos * distance, Y: sin * distance}
}
