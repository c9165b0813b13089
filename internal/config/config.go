package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/pointcode/internal/logging"
	"github.com/danmuck/pointcode/internal/pointcode/schema"
)

var ErrInvalidConfig = errors.New("config: invalid")

// ServerConfig drives pointd.
type ServerConfig struct {
	Name          string
	Addr          string
	Metrics       bool
	ReadTimeout   time.Duration
	DefaultWidth  int
	DefaultTarget string
	LogLevel      string
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:          "pointd",
		Addr:          ":9300",
		Metrics:       true,
		ReadTimeout:   5 * time.Second,
		DefaultWidth:  schema.Width14,
		DefaultTarget: schema.PC77,
		LogLevel:      "info",
	}
}

type fileConfig struct {
	Name          string `toml:"name"`
	Addr          string `toml:"addr"`
	Metrics       bool   `toml:"metrics"`
	ReadTimeout   string `toml:"read_timeout"`
	DefaultWidth  int    `toml:"default_width"`
	DefaultTarget string `toml:"default_target"`
	LogLevel      string `toml:"log_level"`
}

// LoadServerConfig overlays the keys present in path onto DefaultServerConfig
// and validates the result.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("load pointd config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return ServerConfig{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("metrics") {
		cfg.Metrics = raw.Metrics
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return ServerConfig{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("default_width") {
		cfg.DefaultWidth = raw.DefaultWidth
	}
	if meta.IsDefined("default_target") {
		cfg.DefaultTarget = strings.TrimSpace(raw.DefaultTarget)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// ValidateServerConfig checks cfg against the default schema catalog.
func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: missing addr", ErrInvalidConfig)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read_timeout must be positive", ErrInvalidConfig)
	}
	reg := schema.Default()
	if len(reg.AllForWidth(cfg.DefaultWidth)) == 0 {
		return fmt.Errorf("%w: default_width %d has no schemas (have %v)", ErrInvalidConfig, cfg.DefaultWidth, reg.Widths())
	}
	if _, ok := reg.Lookup(cfg.DefaultTarget); !ok {
		return fmt.Errorf("%w: unknown default_target %q", ErrInvalidConfig, cfg.DefaultTarget)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	return nil
}
