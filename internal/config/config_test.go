package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/jobtechs/internal/config"
)

func loadFromYAML(t *testing.T, yaml string) *config.Config {
	t.Helper()

	v := viper.New()
	v.SetConfigType("yaml")
	config.SetDefaults(v)
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))

	cfg, err := config.Load(v)
	require.NoError(t, err)

	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromYAML(t, `
scan:
  urls_file: urls.txt
`)

	assert.Equal(t, "urls.txt", cfg.Scan.URLsFile)
	assert.Equal(t, "techs.txt", cfg.Scan.TermsFile)
	assert.Equal(t, "failed_urls.txt", cfg.Scan.FailuresFile)
	assert.Equal(t, 8, cfg.Crawl.Concurrency)
	assert.Equal(t, 1, cfg.Crawl.PerHostConcurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Crawl.PerHostInterval)
	assert.Equal(t, 30*time.Second, cfg.Crawl.RequestTimeout)
	assert.Equal(t, 10, cfg.Crawl.MaxRedirects)
	assert.True(t, cfg.Crawl.RespectRobots)
	assert.Zero(t, cfg.Terms.MaxNgram)
	assert.Equal(t, "info", cfg.Logger.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg := loadFromYAML(t, `
scan:
  urls_file: "-"
  output_file: results.csv
crawl:
  global_concurrency: 2
  per_host_interval: 2s
  request_timeout: 5s
  respect_robots: false
terms:
  max_ngram: 4
logger:
  level: debug
`)

	assert.Equal(t, "-", cfg.Scan.URLsFile)
	assert.Equal(t, "results.csv", cfg.Scan.OutputFile)
	assert.Equal(t, 2, cfg.Crawl.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Crawl.PerHostInterval)
	assert.Equal(t, 5*time.Second, cfg.Crawl.RequestTimeout)
	assert.False(t, cfg.Crawl.RespectRobots)
	assert.Equal(t, 4, cfg.Terms.MaxNgram)
	assert.Equal(t, "debug", cfg.Logger.Level)

	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiresURLs(t *testing.T) {
	cfg := loadFromYAML(t, `{}`)

	require.ErrorIs(t, cfg.Validate(), config.ErrNoURLs)
}

func TestValidate_RejectsNegativeNgram(t *testing.T) {
	cfg := loadFromYAML(t, `
scan:
  urls_file: urls.txt
terms:
  max_ngram: -1
`)

	require.Error(t, cfg.Validate())
}
