// Package config loads runtime settings from defaults, an optional YAML
// file, and CHARTMAKER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/chartmaker/internal/layout"
)

const envPrefix = "CHARTMAKER_"

// Progress backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendS3     = "s3"
)

type Config struct {
	Port         string             `yaml:"port"`
	DBPath       string             `yaml:"db_path"`
	Log          LogConfig          `yaml:"log"`
	Progress     ProgressConfig     `yaml:"progress"`
	Illustration IllustrationConfig `yaml:"illustration"`
	PageSize     int                `yaml:"page_size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ProgressConfig struct {
	Backend string   `yaml:"backend"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
}

type IllustrationConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	QueueSize  int           `yaml:"queue_size"`
	RateLimit  int           `yaml:"rate_limit"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port:   "8080",
		DBPath: "chartmaker.db",
		Log:    LogConfig{Level: "info", Format: "text"},
		Progress: ProgressConfig{
			Backend: BackendSQLite,
			S3:      S3Config{Region: "auto", Prefix: "progress"},
		},
		Illustration: IllustrationConfig{
			Timeout:    60 * time.Second,
			MaxRetries: 2,
			QueueSize:  32,
			RateLimit:  10,
		},
		PageSize: layout.DefaultPageSize,
	}
}

// Load builds the configuration. An empty path falls back to
// CHARTMAKER_CONFIG; when neither is set no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(envPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("PORT", &c.Port)
	str("DB_PATH", &c.DBPath)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("PROGRESS_BACKEND", &c.Progress.Backend)
	str("S3_ENDPOINT", &c.Progress.S3.Endpoint)
	str("S3_BUCKET", &c.Progress.S3.Bucket)
	str("S3_REGION", &c.Progress.S3.Region)
	str("S3_ACCESS_KEY", &c.Progress.S3.AccessKey)
	str("S3_SECRET_KEY", &c.Progress.S3.SecretKey)
	str("S3_PREFIX", &c.Progress.S3.Prefix)
	str("ILLUSTRATION_ENDPOINT", &c.Illustration.Endpoint)
	str("ILLUSTRATION_API_KEY", &c.Illustration.APIKey)

	if v, ok := lookup(envPrefix + "ILLUSTRATION_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sILLUSTRATION_TIMEOUT: %w", envPrefix, err)
		}
		c.Illustration.Timeout = d
	}
	for name, dst := range map[string]*int{
		"ILLUSTRATION_MAX_RETRIES": &c.Illustration.MaxRetries,
		"ILLUSTRATION_QUEUE_SIZE":  &c.Illustration.QueueSize,
		"ILLUSTRATION_RATE_LIMIT":  &c.Illustration.RateLimit,
		"PAGE_SIZE":                &c.PageSize,
	} {
		if err := num(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	switch c.Progress.Backend {
	case BackendSQLite, BackendMemory:
	case BackendS3:
		s3 := c.Progress.S3
		if s3.Bucket == "" || s3.AccessKey == "" || s3.SecretKey == "" {
			errs = append(errs, errors.New("s3 progress backend needs bucket, access_key and secret_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown progress backend %q", c.Progress.Backend))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if !layout.ValidPageSize(c.PageSize) {
		errs = append(errs, fmt.Errorf("page_size %d must be one of %v", c.PageSize, layout.PageSizes))
	}
	if c.Illustration.Timeout <= 0 {
		errs = append(errs, errors.New("illustration timeout must be positive"))
	}
	if c.Illustration.MaxRetries < 0 {
		errs = append(errs, errors.New("illustration max_retries must not be negative"))
	}
	if c.Illustration.QueueSize <= 0 {
		errs = append(errs, errors.New("illustration queue_size must be positive"))
	}
	if c.Illustration.RateLimit <= 0 {
		errs = append(errs, errors.New("illustration rate_limit must be positive"))
	}
	return errors.Join(errs...)
}
