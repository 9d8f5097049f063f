package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineCollector bundles Prometheus metrics for the position engine, the
// scene loop and the simulation clock. It satisfies core.QualityRecorder
// and scene.Recorder. A nil *EngineCollector is a valid no-op.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	Frames         prometheus.Counter
	UpdateDuration prometheus.Histogram
	SceneBodies    prometheus.Gauge

	PositionFallbacks  *prometheus.CounterVec
	KeplerNonConverged *prometheus.CounterVec

	SimulatedTime prometheus.Gauge
	TimeScale     prometheus.Gauge
	Playing       prometheus.Gauge
}

// NewEngineCollector registers engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Total number of scene frames computed.",
	}), "orrery_frames_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_scene_update_duration_seconds",
		Help:    "Time spent computing one scene frame.",
		Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	}), "orrery_scene_update_duration_seconds")
	if err != nil {
		return nil, err
	}

	bodies, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_scene_bodies",
		Help: "Number of bodies in the last computed frame.",
	}), "orrery_scene_bodies")
	if err != nil {
		return nil, err
	}

	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_position_fallbacks_total",
		Help: "Position calculations replaced by the circular-orbit estimate, labeled by body.",
	}, []string{"body"})
	fallbacks, err = registerCounterVec(reg, fallbacks, "orrery_position_fallbacks_total")
	if err != nil {
		return nil, err
	}

	nonConverged := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_kepler_nonconverged_total",
		Help: "Kepler solves that hit the iteration cap before reaching tolerance, labeled by body.",
	}, []string{"body"})
	nonConverged, err = registerCounterVec(reg, nonConverged, "orrery_kepler_nonconverged_total")
	if err != nil {
		return nil, err
	}

	simTime, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_simulated_time_seconds",
		Help: "Current simulated time as Unix seconds.",
	}), "orrery_simulated_time_seconds")
	if err != nil {
		return nil, err
	}
	scale, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_time_scale_days_per_second",
		Help: "Simulated days advanced per real second.",
	}), "orrery_time_scale_days_per_second")
	if err != nil {
		return nil, err
	}
	playing, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_clock_playing",
		Help: "1 while the simulation clock is playing, 0 while paused.",
	}), "orrery_clock_playing")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:           gatherer,
		Frames:             frames,
		UpdateDuration:     duration,
		SceneBodies:        bodies,
		PositionFallbacks:  fallbacks,
		KeplerNonConverged: nonConverged,
		SimulatedTime:      simTime,
		TimeScale:          scale,
		Playing:            playing,
	}, nil
}

// Gatherer exposes the underlying gatherer for tests.
func (c *EngineCollector) Gatherer() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EngineCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Gatherer(), promhttp.HandlerOpts{})
}

// RecordFallback counts a position replaced by the circular estimate.
func (c *EngineCollector) RecordFallback(bodyID string) {
	if c == nil || c.PositionFallbacks == nil {
		return
	}
	c.PositionFallbacks.WithLabelValues(bodyID).Inc()
}

// RecordNonConvergence counts a Kepler solve that hit its iteration cap.
func (c *EngineCollector) RecordNonConvergence(bodyID string) {
	if c == nil || c.KeplerNonConverged == nil {
		return
	}
	c.KeplerNonConverged.WithLabelValues(bodyID).Inc()
}

// ObserveUpdate records one completed scene frame.
func (c *EngineCollector) ObserveUpdate(d time.Duration, bodies int) {
	if c == nil {
		return
	}
	if c.Frames != nil {
		c.Frames.Inc()
	}
	if c.UpdateDuration != nil {
		c.UpdateDuration.Observe(d.Seconds())
	}
	if c.SceneBodies != nil {
		c.SceneBodies.Set(float64(bodies))
	}
}

// SetClock mirrors the simulation clock state into gauges.
func (c *EngineCollector) SetClock(simTime time.Time, timeScale float64, playing bool) {
	if c == nil {
		return
	}
	if c.SimulatedTime != nil {
		c.SimulatedTime.Set(float64(simTime.UnixNano()) / float64(time.Second))
	}
	if c.TimeScale != nil {
		c.TimeScale.Set(timeScale)
	}
	if c.Playing != nil {
		v := 0.0
		if playing {
			v = 1
		}
		c.Playing.Set(v)
	}
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
