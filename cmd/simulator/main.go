package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/orrery/catalog"
	"github.com/signalsfoundry/orrery/core"
	"github.com/signalsfoundry/orrery/internal/config"
	"github.com/signalsfoundry/orrery/internal/logging"
	"github.com/signalsfoundry/orrery/internal/observability"
	"github.com/signalsfoundry/orrery/scene"
	"github.com/signalsfoundry/orrery/timectrl"
)

type options struct {
	ConfigPath  string
	CatalogPath string
	Duration    time.Duration
	FrameRate   float64
	Mode        string
	TimeScale   float64
	Start       time.Time
	MetricsAddr string
	ReportEvery int

	// Registerer defaults to the global Prometheus registry.
	Registerer prometheus.Registerer
	// Logger overrides the logger built from config.
	Logger logging.Logger
}

type summary struct {
	Frames    int64
	StartTime time.Time
	EndTime   time.Time
}

func main() {
	configPath := flag.String("config", "", "path to a YAML/JSON/TOML config file")
	catalogPath := flag.String("catalog", "", "path to a body catalog file (overrides catalog.path)")
	duration := flag.Duration("duration", 10*time.Second, "wall-clock run time; 0 runs until interrupted")
	frameRate := flag.Float64("frame-rate", 0, "frames per real second (overrides time.frameRate)")
	mode := flag.String("mode", "", "fixed or realtime frame stepping (overrides time.mode)")
	timeScale := flag.Float64("time-scale", 0, "simulated days per real second (overrides time.scale)")
	startStr := flag.String("start", "", "RFC3339 simulated start time; defaults to now")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (overrides metrics.addr)")
	reportEvery := flag.Int("report-every", 60, "print body positions every N frames")
	flag.Parse()

	start := time.Now().UTC()
	if *startStr != "" {
		t, err := time.Parse(time.RFC3339, *startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -start %q: %v\n", *startStr, err)
			os.Exit(2)
		}
		start = t.UTC()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := run(ctx, options{
		ConfigPath:  *configPath,
		CatalogPath: *catalogPath,
		Duration:    *duration,
		FrameRate:   *frameRate,
		Mode:        *mode,
		TimeScale:   *timeScale,
		Start:       start,
		MetricsAddr: *metricsAddr,
		ReportEvery: *reportEvery,
	}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulator: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) (summary, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return summary{}, err
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return summary{}, err
	}

	log := opts.Logger
	if log == nil {
		log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return summary{}, fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return summary{}, err
		}
		log.Info(ctx, "loaded body catalog", logging.String("path", cfg.Catalog.Path), logging.Int("bodies", cat.Len()))
	}

	collector, err := observability.NewEngineCollector(opts.Registerer)
	if err != nil {
		return summary{}, fmt.Errorf("init metrics collector: %w", err)
	}
	if srv := serveMetrics(cfg.Metrics.Addr, collector, log); srv != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	propagator := core.NewPropagator(
		core.WithSolver(cfg.Solver()),
		core.WithLogger(log),
		core.WithQualityRecorder(collector),
	)
	sc := scene.New(cat, propagator,
		scene.WithDistanceScale(cfg.Scale.Distance),
		scene.WithOrbitSegments(cfg.Orbit.Segments),
		scene.WithLogger(log),
		scene.WithRecorder(collector),
	)

	start := opts.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}
	tc := timectrl.NewTimeController(start, cfg.ClockOptions())

	runCtx := ctx
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	first, err := sc.Update(runCtx, start)
	if err != nil {
		return summary{}, err
	}
	printFrame(out, first)

	reportEvery := int64(opts.ReportEvery)
	var frames atomic.Int64
	tc.AddListener(func(simTime time.Time) {
		frame, err := sc.Update(runCtx, simTime)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				log.Warn(runCtx, "frame update failed", logging.Err(err))
			}
			return
		}
		snap := tc.Snapshot()
		collector.SetClock(snap.CurrentTime, snap.TimeScale, snap.IsPlaying())
		if n := frames.Add(1); reportEvery > 0 && n%reportEvery == 0 {
			printFrame(out, frame)
		}
	})

	snap := tc.Snapshot()
	collector.SetClock(snap.CurrentTime, snap.TimeScale, snap.IsPlaying())
	log.Info(ctx, "starting simulation",
		logging.Time("start", start),
		logging.Float("time_scale", snap.TimeScale),
		logging.Float("frame_rate", cfg.Time.FrameRate),
		logging.String("mode", cfg.Time.Mode),
		logging.Int("bodies", cat.Len()),
	)

	<-tc.Run(runCtx, cfg.Time.FrameRate)

	res := summary{Frames: frames.Load(), StartTime: start, EndTime: tc.Now()}
	printFrame(out, sc.Snapshot())
	log.Info(ctx, "simulation complete",
		logging.Int("frames", int(res.Frames)),
		logging.Time("sim_time", res.EndTime),
		logging.Float("sim_days", res.EndTime.Sub(start).Hours()/24),
	)
	return res, nil
}

func applyOverrides(cfg *config.Config, opts options) {
	if opts.CatalogPath != "" {
		cfg.Catalog.Path = opts.CatalogPath
	}
	if opts.FrameRate > 0 {
		cfg.Time.FrameRate = opts.FrameRate
	}
	if opts.Mode != "" {
		cfg.Time.Mode = opts.Mode
	}
	if opts.TimeScale > 0 {
		cfg.Time.Scale = opts.TimeScale
	}
	if opts.MetricsAddr != "" {
		cfg.Metrics.Addr = opts.MetricsAddr
	}
}

func printFrame(w io.Writer, f scene.Frame) {
	fmt.Fprintf(w, "[%s] frame %d\n", f.Time.UTC().Format(time.RFC3339), f.Seq)
	for _, b := range f.Bodies {
		fmt.Fprintf(w, "  %-8s r=%7.4f AU  M=%7.3f°  pos=(%9.3f, %9.3f, %8.3f)\n",
			b.ID, b.DistanceAU, b.MeanAnomaly, b.Position.X, b.Position.Y, b.Position.Z)
	}
}

func serveMetrics(addr string, collector *observability.EngineCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
