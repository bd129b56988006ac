package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is used when no analysis API address is configured.
const DefaultBaseURL = "https://ai-backend-464341659510.asia-northeast1.run.app"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Views    ViewsConfig    `mapstructure:"views"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type AnalysisConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	EnableCompression bool          `mapstructure:"enable_compression"`
	CompressionRatio  float64       `mapstructure:"compression_ratio"`
}

type ViewsConfig struct {
	// How long a page view keeps its state without being touched
	TTL time.Duration `mapstructure:"ttl"`

	// Upper bound on live page views; the least recently used is evicted
	Max int `mapstructure:"max"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"server.host":                 "0.0.0.0",
	"server.port":                 "8000",
	"server.read_timeout":         "45s",
	"server.write_timeout":        "45s",
	"analysis.base_url":           DefaultBaseURL,
	"analysis.timeout":            "30s",
	"analysis.enable_compression": false,
	"analysis.compression_ratio":  0.6,
	"views.ttl":                   "30m",
	"views.max":                   1000,
	"log.level":                   "info",
	"log.format":                  "text",
}

// Environment variables per key. The first name wins when several are set.
var envBindings = map[string][]string{
	"server.host":                 {"SERVER_HOST"},
	"server.port":                 {"SERVER_PORT", "PORT"},
	"server.read_timeout":         {"SERVER_READ_TIMEOUT"},
	"server.write_timeout":        {"SERVER_WRITE_TIMEOUT"},
	"analysis.base_url":           {"API_BASE_URL", "VITE_API_BASE_URL"},
	"analysis.timeout":            {"ANALYSIS_TIMEOUT"},
	"analysis.enable_compression": {"ANALYSIS_ENABLE_COMPRESSION"},
	"analysis.compression_ratio":  {"ANALYSIS_COMPRESSION_RATIO"},
	"views.ttl":                   {"VIEWS_TTL"},
	"views.max":                   {"VIEWS_MAX"},
	"log.level":                   {"LOG_LEVEL"},
	"log.format":                  {"LOG_FORMAT"},
}

// LoadConfig reads configuration from defaults, an optional config file,
// a .env file in the working directory, and the environment, in
// increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "analysis_base_url", cfg.Analysis.BaseURL)
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Analysis.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("analysis.base_url must be an absolute http(s) URL, got %q", c.Analysis.BaseURL))
	}
	if c.Analysis.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("analysis.timeout must be positive, got %s", c.Analysis.Timeout))
	}
	if c.Analysis.CompressionRatio <= 0 || c.Analysis.CompressionRatio > 1 {
		errs = append(errs, fmt.Errorf("analysis.compression_ratio must be in (0, 1], got %v", c.Analysis.CompressionRatio))
	}
	if c.Views.TTL <= 0 {
		errs = append(errs, fmt.Errorf("views.ttl must be positive, got %s", c.Views.TTL))
	}
	if c.Views.Max <= 0 {
		errs = append(errs, fmt.Errorf("views.max must be positive, got %d", c.Views.Max))
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Analysis.Timeout {
		errs = append(errs, fmt.Errorf("server.write_timeout (%s) must exceed analysis.timeout (%s)", c.Server.WriteTimeout, c.Analysis.Timeout))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port cannot be empty"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
