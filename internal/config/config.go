package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by folio.
const (
	EnvConfigHome = "FOLIO_CONFIG_HOME"
	EnvOutputDir  = "FOLIO_OUTPUT_DIR"
	EnvStoryDir   = "FOLIO_STORY_DIR"
	EnvAddr       = "FOLIO_ADDR"
	EnvLogMode    = "FOLIO_LOG_MODE"
	EnvLogLevel   = "FOLIO_LOG_LEVEL"
	EnvJobs       = "FOLIO_JOBS"
)

// Config is the contents of config.yaml.
type Config struct {
	OutputDir string       `yaml:"output_dir"`
	StoryDir  string       `yaml:"story_dir"`
	LogMode   string       `yaml:"log_mode"`
	LogLevel  string       `yaml:"log_level"`
	Server    ServerConfig `yaml:"server"`
	Fetch     FetchConfig  `yaml:"fetch"`
	Export    ExportConfig `yaml:"export"`
}

// ServerConfig configures `folio serve`.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// FetchConfig configures remote story downloads.
type FetchConfig struct {
	Retries   int           `yaml:"retries"`
	RetryWait time.Duration `yaml:"retry_wait"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// ExportConfig holds defaults for `folio export`.
type ExportConfig struct {
	Formats   []string `yaml:"formats"`
	Jobs      int      `yaml:"jobs"`
	Overwrite bool     `yaml:"overwrite"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: ".",
		StoryDir:  ".",
		LogMode:   "dev",
		LogLevel:  "warn",
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxBodyBytes: 4 << 20,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Fetch: FetchConfig{
			Retries:   2,
			RetryWait: 500 * time.Millisecond,
			Timeout:   15 * time.Second,
			UserAgent: "folio",
		},
		Export: ExportConfig{
			Formats: []string{"txt", "pdf"},
			Jobs:    4,
		},
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvOutputDir, &cfg.OutputDir},
		{EnvStoryDir, &cfg.StoryDir},
		{EnvAddr, &cfg.Server.Addr},
		{EnvLogMode, &cfg.LogMode},
		{EnvLogLevel, &cfg.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}

	if v := os.Getenv(EnvJobs); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		cfg.Export.Jobs = jobs
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Export.Jobs < 1 {
		return fmt.Errorf("export.jobs must be at least 1, got %d", c.Export.Jobs)
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must not be negative, got %d", c.Fetch.Retries)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}
