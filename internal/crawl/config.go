package crawl

import "time"

// Default configuration values.
const (
	defaultConcurrency      = 8
	defaultUserAgent        = "jobtechs/1.0 (+https://github.com/jonesrussell/jobtechs)"
	defaultRequestTimeout   = 30 * time.Second
	defaultMaxRetries       = 3
	defaultRetryInitialWait = 500 * time.Millisecond
	defaultRetryMaxWait     = 10 * time.Second
	defaultMaxRedirects     = 10
)

// Config holds fetch coordinator configuration.
type Config struct {
	Concurrency      int           `mapstructure:"global_concurrency"`
	UserAgent        string        `mapstructure:"user_agent"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryInitialWait time.Duration `mapstructure:"retry_initial_wait"`
	RetryMaxWait     time.Duration `mapstructure:"retry_max_wait"`
	MaxRedirects     int           `mapstructure:"max_redirects"`
}

// WithDefaults returns a copy of the config with default values applied
// for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryInitialWait <= 0 {
		c.RetryInitialWait = defaultRetryInitialWait
	}
	if c.RetryMaxWait <= 0 {
		c.RetryMaxWait = defaultRetryMaxWait
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	return c
}
