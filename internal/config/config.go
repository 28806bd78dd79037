// Package config loads and validates application configuration from
// config files and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/jobtechs/internal/crawl"
	"github.com/jonesrussell/jobtechs/internal/logger"
)

// Default per-host politeness settings.
const (
	defaultPerHostConcurrency = 1
	defaultPerHostInterval    = 500 * time.Millisecond
)

// defaultTermsFile is the term list read when none is configured.
const defaultTermsFile = "techs.txt"

// defaultFailuresFile receives the failure log when none is configured.
const defaultFailuresFile = "failed_urls.txt"

// ErrNoURLs is returned when no URL source is configured.
var ErrNoURLs = errors.New("no urls file configured (use scan.urls_file or --urls, \"-\" for stdin)")

// Config is the full application configuration.
type Config struct {
	Scan   ScanConfig    `mapstructure:"scan"`
	Crawl  CrawlConfig   `mapstructure:"crawl"`
	Terms  TermsConfig   `mapstructure:"terms"`
	Logger logger.Config `mapstructure:"logger"`
}

// ScanConfig names the input and output files of one scan run.
// URLsFile and OutputFile accept "-" for stdin and stdout.
type ScanConfig struct {
	URLsFile     string `mapstructure:"urls_file"`
	TermsFile    string `mapstructure:"terms_file"`
	OutputFile   string `mapstructure:"output_file"`
	FailuresFile string `mapstructure:"failures_file"`
}

// CrawlConfig extends the coordinator config with the per-host politeness
// settings and the robots.txt switch.
type CrawlConfig struct {
	crawl.Config `mapstructure:",squash"`

	PerHostConcurrency int           `mapstructure:"per_host_concurrency"`
	PerHostInterval    time.Duration `mapstructure:"per_host_interval"`
	RespectRobots      bool          `mapstructure:"respect_robots"`
}

// TermsConfig tunes the term matcher. MaxNgram of zero derives the window
// from the longest loaded term.
type TermsConfig struct {
	MaxNgram int `mapstructure:"max_ngram"`
}

// Load decodes the configuration from viper and applies defaults.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// WithDefaults returns a copy of the config with default values applied
// for zero-value fields.
func (c Config) WithDefaults() *Config {
	c.Crawl.Config = c.Crawl.Config.WithDefaults()

	if c.Scan.TermsFile == "" {
		c.Scan.TermsFile = defaultTermsFile
	}
	if c.Scan.FailuresFile == "" {
		c.Scan.FailuresFile = defaultFailuresFile
	}
	if c.Crawl.PerHostConcurrency <= 0 {
		c.Crawl.PerHostConcurrency = defaultPerHostConcurrency
	}
	if c.Crawl.PerHostInterval <= 0 {
		c.Crawl.PerHostInterval = defaultPerHostInterval
	}

	return &c
}

// Validate reports configuration the scan cannot run with.
func (c *Config) Validate() error {
	if c.Scan.URLsFile == "" {
		return ErrNoURLs
	}
	if c.Terms.MaxNgram < 0 {
		return fmt.Errorf("terms.max_ngram must not be negative, got %d", c.Terms.MaxNgram)
	}

	return nil
}

// SetDefaults registers configuration defaults on the viper instance so
// they show through for keys the config file leaves out.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.terms_file", defaultTermsFile)
	v.SetDefault("scan.failures_file", defaultFailuresFile)
	v.SetDefault("crawl.respect_robots", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
}
