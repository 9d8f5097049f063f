package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/orrery/core"
	"github.com/signalsfoundry/orrery/timectrl"
)

// EnvPrefix namespaces environment overrides, e.g. ORRERY_TIME_SCALE.
const EnvPrefix = "ORRERY"

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScaleConfig holds render scale factors.
type ScaleConfig struct {
	Distance float64 `mapstructure:"distance"` // scene units per AU
	Size     float64 `mapstructure:"size"`     // scene units per Earth radius
}

// TimeConfig holds simulation clock settings.
type TimeConfig struct {
	Scale     float64 `mapstructure:"scale"`
	MinScale  float64 `mapstructure:"minScale"`
	MaxScale  float64 `mapstructure:"maxScale"`
	FrameRate float64 `mapstructure:"frameRate"`
	Mode      string  `mapstructure:"mode"` // fixed | realtime
}

// OrbitConfig holds orbit path sampling settings.
type OrbitConfig struct {
	Segments int `mapstructure:"segments"`
}

// KeplerConfig mirrors core.KeplerSolver.
type KeplerConfig struct {
	MaxIterations                 int     `mapstructure:"maxIterations"`
	HighEccentricityMaxIterations int     `mapstructure:"highEccentricityMaxIterations"`
	HighEccentricityThreshold     float64 `mapstructure:"highEccentricityThreshold"`
	Tolerance                     float64 `mapstructure:"tolerance"`
}

// CatalogConfig points at an optional body catalog file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig holds the Prometheus listener address. Empty disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the full simulator configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Scale   ScaleConfig   `mapstructure:"scale"`
	Time    TimeConfig    `mapstructure:"time"`
	Orbit   OrbitConfig   `mapstructure:"orbit"`
	Kepler  KeplerConfig  `mapstructure:"kepler"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	solver := core.DefaultKeplerSolver()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("scale.distance", 15.0)
	v.SetDefault("scale.size", 10.0)

	v.SetDefault("time.scale", timectrl.DefaultTimeScale)
	v.SetDefault("time.minScale", timectrl.DefaultMinTimeScale)
	v.SetDefault("time.maxScale", timectrl.DefaultMaxTimeScale)
	v.SetDefault("time.frameRate", timectrl.DefaultFrameRate)
	v.SetDefault("time.mode", "fixed")

	v.SetDefault("orbit.segments", core.DefaultOrbitSegments)

	v.SetDefault("kepler.maxIterations", solver.MaxIterations)
	v.SetDefault("kepler.highEccentricityMaxIterations", solver.HighEccentricityMaxIterations)
	v.SetDefault("kepler.highEccentricityThreshold", solver.HighEccentricityThreshold)
	v.SetDefault("kepler.tolerance", solver.Tolerance)

	v.SetDefault("catalog.path", "")
	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from path (JSON, YAML or TOML by extension),
// applies defaults and ORRERY_* environment overrides. An empty path skips
// the file and uses defaults plus environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Scale.Distance <= 0 {
		errs = append(errs, fmt.Errorf("scale.distance must be positive, got %v", c.Scale.Distance))
	}
	if c.Time.MinScale <= 0 || c.Time.MaxScale < c.Time.MinScale {
		errs = append(errs, fmt.Errorf("time scale bounds [%v, %v] are invalid", c.Time.MinScale, c.Time.MaxScale))
	}
	if c.Time.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("time.frameRate must be positive, got %v", c.Time.FrameRate))
	}
	if _, err := ParseMode(c.Time.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Orbit.Segments < 1 {
		errs = append(errs, fmt.Errorf("orbit.segments must be at least 1, got %d", c.Orbit.Segments))
	}
	if c.Kepler.MaxIterations < 1 || c.Kepler.HighEccentricityMaxIterations < 1 {
		errs = append(errs, errors.New("kepler iteration caps must be at least 1"))
	}
	if c.Kepler.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("kepler.tolerance must be positive, got %v", c.Kepler.Tolerance))
	}
	return errors.Join(errs...)
}

// Solver builds the Kepler solver described by the config.
func (c Config) Solver() core.KeplerSolver {
	return core.KeplerSolver{
		MaxIterations:                 c.Kepler.MaxIterations,
		HighEccentricityMaxIterations: c.Kepler.HighEccentricityMaxIterations,
		HighEccentricityThreshold:     c.Kepler.HighEccentricityThreshold,
		Tolerance:                     c.Kepler.Tolerance,
	}
}

// ClockOptions builds the time controller options described by the config.
func (c Config) ClockOptions() timectrl.Options {
	mode, _ := ParseMode(c.Time.Mode)
	return timectrl.Options{
		TimeScale:    c.Time.Scale,
		MinTimeScale: c.Time.MinScale,
		MaxTimeScale: c.Time.MaxScale,
		Mode:         mode,
	}
}

// ParseMode maps "fixed" and "realtime" to a timectrl.Mode.
func ParseMode(s string) (timectrl.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed", "fixedstep":
		return timectrl.FixedStep, nil
	case "realtime", "real-time":
		return timectrl.RealTime, nil
	default:
		return timectrl.FixedStep, fmt.Errorf("unknown time.mode %q", s)
	}
}
