// YAML config loader with CUE validation integration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"asteroid-tracker/internal/neows"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// FeedConfig configures the NeoWs client.
type FeedConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	// Timeout bounds each feed request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// AdminConfig configures the admin HTTP server.
type AdminConfig struct {
	Addr           string        `yaml:"addr"`
	StreamInterval time.Duration `yaml:"stream_interval"`
}

// SinkConfig configures where headless body state goes.
type SinkConfig struct {
	SampleEvery      int    `yaml:"sample_every"`
	GreptimeEndpoint string `yaml:"greptime_endpoint"`
	GreptimeDatabase string `yaml:"greptime_database"`
	Table            string `yaml:"table"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives logs in the terminal view.
	File string `yaml:"file"`
}

// Config is the root tracker configuration.
type Config struct {
	SessionID       string        `yaml:"session_id"`
	Feed            FeedConfig    `yaml:"feed"`
	FrameInterval   time.Duration `yaml:"frame_interval"`
	DangerThreshold float64       `yaml:"danger_threshold"`
	ScaleMode       string        `yaml:"scale_mode"`
	Admin           AdminConfig   `yaml:"admin"`
	Sink            SinkConfig    `yaml:"sink"`
	Log             LogConfig     `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	if c.Feed.Endpoint == "" {
		c.Feed.Endpoint = neows.DefaultEndpoint
	}
	if c.Feed.APIKey == "" {
		c.Feed.APIKey = "DEMO_KEY"
	}
	if c.FrameInterval == 0 {
		c.FrameInterval = time.Second / 30
	}
	if c.DangerThreshold == 0 {
		c.DangerThreshold = 100
	}
	if c.ScaleMode == "" {
		c.ScaleMode = "exaggerated"
	}
	if c.Admin.Addr == "" {
		c.Admin.Addr = ":8080"
	}
	if c.Admin.StreamInterval == 0 {
		c.Admin.StreamInterval = time.Second
	}
	if c.Sink.SampleEvery == 0 {
		c.Sink.SampleEvery = 30
	}
	if c.Sink.GreptimeDatabase == "" {
		c.Sink.GreptimeDatabase = "public"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.File == "" {
		c.Log.File = "asteroid-tracker.log"
	}
}

// Load reads a YAML config, validates it against a CUE schema when
// cueSchemaPath is set, then applies environment overrides and defaults.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return Parse(data, os.Getenv)
}

// Parse decodes YAML config bytes. getenv supplies overrides; nil skips them.
func Parse(data []byte, getenv func(string) string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if getenv != nil {
		if err := cfg.ApplyEnv(getenv); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from NASA_API_KEY, NEOWS_ENDPOINT,
// FRAME_INTERVAL, GREPTIMEDB_ENDPOINT, GREPTIMEDB_DATABASE and
// GREPTIMEDB_TABLE.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("NASA_API_KEY"); v != "" {
		c.Feed.APIKey = v
	}
	if v := getenv("NEOWS_ENDPOINT"); v != "" {
		c.Feed.Endpoint = v
	}
	if v := getenv("FRAME_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: FRAME_INTERVAL: %v", ErrInvalid, err)
		}
		c.FrameInterval = d
	}
	if v := getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		c.Sink.GreptimeEndpoint = v
	}
	if v := getenv("GREPTIMEDB_DATABASE"); v != "" {
		c.Sink.GreptimeDatabase = v
	}
	if v := getenv("GREPTIMEDB_TABLE"); v != "" {
		c.Sink.Table = v
	}
	return nil
}

// Validate rejects values the tracker cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.FrameInterval <= 0 {
		problems = append(problems, "frame_interval must be positive")
	}
	if c.DangerThreshold <= 0 {
		problems = append(problems, "danger_threshold must be positive")
	}
	if c.Feed.Timeout < 0 {
		problems = append(problems, "feed.timeout must not be negative")
	}
	switch strings.ToLower(c.ScaleMode) {
	case "exaggerated", "realistic":
	default:
		problems = append(problems, fmt.Sprintf("scale_mode %q is not exaggerated or realistic", c.ScaleMode))
	}
	if c.Sink.SampleEvery < 1 {
		problems = append(problems, "sink.sample_every must be at least 1")
	}
	if c.Admin.StreamInterval <= 0 {
		problems = append(problems, "admin.stream_interval must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is unknown", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is unknown", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
