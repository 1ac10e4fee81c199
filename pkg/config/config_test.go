package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port       int     `env:"TEST_CFG_PORT" envDefault:"8020"`
	CatalogURL string  `env:"TEST_CFG_CATALOG_URL" envDefault:"http://localhost:8021"`
	LogLevel   string  `env:"TEST_CFG_LOG_LEVEL" envDefault:"info"`
	CacheOn    bool    `env:"TEST_CFG_CACHE" envDefault:"false"`
	RateRPS    float64 `env:"TEST_CFG_RPS" envDefault:"10"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8020, cfg.Port)
	assert.Equal(t, "http://localhost:8021", cfg.CatalogURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CacheOn)
	assert.Equal(t, 10.0, cfg.RateRPS)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_CATALOG_URL", "http://catalog:8080")
	t.Setenv("TEST_CFG_LOG_LEVEL", "debug")
	t.Setenv("TEST_CFG_CACHE", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://catalog:8080", cfg.CatalogURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.CacheOn)
}

type requiredConfig struct {
	APIURL string `env:"TEST_CFG_REQUIRED_URL,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadWithDotenv_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_URL=http://from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_DOTENV_URL") })

	var cfg struct {
		URL string `env:"TEST_CFG_DOTENV_URL"`
	}
	require.NoError(t, LoadWithDotenv(&cfg, path))
	assert.Equal(t, "http://from-file", cfg.URL)
}

func TestLoadWithDotenv_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_PORT=1111\n"), 0o600))
	t.Setenv("TEST_CFG_PORT", "2222")

	var cfg testConfig
	require.NoError(t, LoadWithDotenv(&cfg, path))
	assert.Equal(t, 2222, cfg.Port)
}

func TestLoadWithDotenv_MissingFileSkipped(t *testing.T) {
	var cfg testConfig
	require.NoError(t, LoadWithDotenv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, 8020, cfg.Port)
}
