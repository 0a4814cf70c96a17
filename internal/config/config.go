package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/spf13/pflag"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

const (
	DefaultTileURL     = "http://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "© OpenStreetMap contributors"
)

// Config holds everything the session needs that is not user data.
type Config struct {
	HomeLat float64
	HomeLng float64
	// HasHome is false until a home coordinate is provided; without one the
	// locator reports the position as unavailable.
	HasHome bool

	Store      string
	ZoomPolicy domain.ZoomPolicy

	DefaultZoom     int
	SelectZoom      int
	ZoomDelayMs     int
	ZoomAnimationMs int

	TileURL       string
	Attribution   string
	PopupMaxWidth int

	LogFile string
}

// DefaultConfig returns a Config with the stock map settings and no home.
func DefaultConfig() Config {
	return Config{
		Store:           StoreMemory,
		ZoomPolicy:      domain.ZoomStack,
		DefaultZoom:     8,
		SelectZoom:      15,
		ZoomDelayMs:     3500,
		ZoomAnimationMs: 2000,
		TileURL:         DefaultTileURL,
		Attribution:     DefaultAttribution,
		PopupMaxWidth:   150,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or unparsable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	lat, latOK := envFloat("PINLOG_HOME_LAT")
	lng, lngOK := envFloat("PINLOG_HOME_LNG")
	if latOK && lngOK {
		cfg.HomeLat, cfg.HomeLng, cfg.HasHome = lat, lng, true
	}
	if v := os.Getenv("PINLOG_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("PINLOG_ZOOM_POLICY"); v != "" {
		cfg.ZoomPolicy = domain.ZoomPolicy(v)
	}
	applyIntEnv(&cfg.DefaultZoom, "PINLOG_DEFAULT_ZOOM", 0)
	applyIntEnv(&cfg.SelectZoom, "PINLOG_SELECT_ZOOM", 0)
	applyIntEnv(&cfg.ZoomDelayMs, "PINLOG_ZOOM_DELAY_MS", 0)
	applyIntEnv(&cfg.ZoomAnimationMs, "PINLOG_ZOOM_ANIMATION_MS", 0)
	if v := os.Getenv("PINLOG_TILE_URL"); v != "" {
		cfg.TileURL = v
	}
	if v := os.Getenv("PINLOG_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}

// BindFlags registers the command-line overrides on fs. Call Finalize after
// parsing so that --lat/--lng mark the home as set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&c.HomeLat, "lat", c.HomeLat, "home latitude used as the current position")
	fs.Float64Var(&c.HomeLng, "lng", c.HomeLng, "home longitude used as the current position")
	fs.StringVar(&c.Store, "store", c.Store, "workout store: memory or sqlite")
	fs.StringVar((*string)(&c.ZoomPolicy), "zoom-policy", string(c.ZoomPolicy), "deferred zoom policy: stack or latest")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write structured logs to this file")
}

// Finalize applies flag-derived state after parsing.
func (c *Config) Finalize(fs *pflag.FlagSet) {
	if fs.Changed("lat") && fs.Changed("lng") {
		c.HasHome = true
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("invalid store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	switch c.ZoomPolicy {
	case domain.ZoomStack, domain.ZoomLatest:
	default:
		return fmt.Errorf("invalid zoom policy %q (want %s or %s)", c.ZoomPolicy, domain.ZoomStack, domain.ZoomLatest)
	}
	if c.DefaultZoom < 0 || c.SelectZoom < 0 {
		return fmt.Errorf("zoom levels must not be negative")
	}
	if c.PopupMaxWidth <= 0 {
		return fmt.Errorf("popup width must be positive")
	}
	return nil
}

func (c Config) ZoomDelay() time.Duration {
	return time.Duration(c.ZoomDelayMs) * time.Millisecond
}

func (c Config) ZoomAnimation() time.Duration {
	return time.Duration(c.ZoomAnimationMs) * time.Millisecond
}

// Home returns the configured home coordinate, if any.
func (c Config) Home() (domain.Coords, bool) {
	return domain.Coords{Lat: c.HomeLat, Lng: c.HomeLng}, c.HasHome
}

// NewLogger returns a text logger writing to LogFile, or a discarding logger
// when no file is configured. The closer releases the file.
func (c Config) NewLogger() (*slog.Logger, func() error, error) {
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if dir := filepath.Dir(c.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f.Close, nil
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func applyIntEnv(dst *int, name string, floor int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		return
	}
	*dst = n
}
