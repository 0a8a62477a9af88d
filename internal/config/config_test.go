package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonesrussell/queryvalidator/internal/config"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWith(t *testing.T, cfgFile string) (*config.Config, error) {
	t.Helper()

	v := viper.New()
	require.NoError(t, config.InitializeViper(v, cfgFile))
	return config.Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadWith(t, "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Endpoint.URL)
	assert.Equal(t, 3*time.Second, cfg.Endpoint.ConnectTimeout)
	assert.Equal(t, 60*time.Second, cfg.Endpoint.ReadTimeout)
	assert.Equal(t, domain.DefaultThresholds(), cfg.DomainThresholds())
	assert.True(t, cfg.Sources.Local)
	assert.True(t, cfg.Sources.Catalog)
	assert.True(t, cfg.Sources.Dashboards)
	assert.Equal(t, ".", cfg.Sources.Path)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.Sources.Extensions)
	assert.Equal(t, "questdb-sql", cfg.Sources.DialectTag)
	assert.Len(t, cfg.Sources.DashboardURLs, 2)
	assert.Equal(t, "all_queries.sql", cfg.Output.AllQueries)
	assert.False(t, cfg.History.Enabled)
	assert.False(t, cfg.Elasticsearch.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUESTDB_URL", "https://demo.questdb.io")
	t.Setenv("QUESTDB_READ_TIMEOUT", "5s")
	t.Setenv("SOURCES_CATALOG", "no")
	t.Setenv("SOURCES_DASHBOARDS", "off")
	t.Setenv("ELASTICSEARCH_HOSTS", "http://es1:9200,http://es2:9200")

	cfg, err := loadWith(t, "")
	require.NoError(t, err)

	assert.Equal(t, "https://demo.questdb.io", cfg.Endpoint.URL)
	assert.Equal(t, 5*time.Second, cfg.Endpoint.ReadTimeout)
	assert.True(t, cfg.Sources.Local)
	assert.False(t, cfg.Sources.Catalog)
	assert.False(t, cfg.Sources.Dashboards)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	yaml := `
endpoint:
  url: http://questdb:9000
thresholds:
  slow_ms: 500
  very_slow_ms: 1500
sources:
  path: ./documentation
  local: yes
  catalog: no
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := loadWith(t, path)
	require.NoError(t, err)

	assert.Equal(t, "http://questdb:9000", cfg.Endpoint.URL)
	assert.Equal(t, domain.Thresholds{SlowMs: 500, VerySlowMs: 1500}, cfg.DomainThresholds())
	assert.Equal(t, "./documentation", cfg.Sources.Path)
	assert.False(t, cfg.Sources.Catalog)
	assert.True(t, cfg.Sources.Dashboards)
}

func TestLoad_InvalidThresholds(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("THRESHOLDS_SLOW_MS", "3000")

	_, err := loadWith(t, "")
	require.ErrorIs(t, err, config.ErrConfigLoadFailed)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "thresholds.very_slow_ms", verr.Field)
}

func TestInitializeViper_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	err := config.InitializeViper(viper.New(), "does-not-exist.yaml")
	var verr *config.ViperError
	require.ErrorAs(t, err, &verr)
}

func TestYesNoBoolHookFunc(t *testing.T) {
	t.Parallel()

	type target struct {
		Enabled bool `mapstructure:"enabled"`
	}

	for input, want := range map[string]bool{"yes": true, "YES": true, "on": true, "no": false, "off": false, "true": true} {
		v := viper.New()
		v.Set("enabled", input)

		var out target
		require.NoError(t, v.Unmarshal(&out, viper.DecodeHook(config.YesNoBoolHookFunc())), input)
		assert.Equal(t, want, out.Enabled, input)
	}
}
