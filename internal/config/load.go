package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/internal/config/app"
	"github.com/jonesrussell/queryvalidator/internal/config/database"
	"github.com/jonesrussell/queryvalidator/internal/config/elasticsearch"
	"github.com/jonesrussell/queryvalidator/internal/config/endpoint"
	"github.com/jonesrussell/queryvalidator/internal/config/output"
	"github.com/jonesrussell/queryvalidator/internal/config/schedule"
	"github.com/jonesrussell/queryvalidator/internal/config/server"
	"github.com/jonesrussell/queryvalidator/internal/config/sources"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string][]string{
	"app.environment":          {"APP_ENV"},
	"app.debug":                {"APP_DEBUG"},
	"logger.level":             {"LOG_LEVEL"},
	"logger.encoding":          {"LOG_FORMAT"},
	"endpoint.url":             {"QUESTDB_URL", "ENDPOINT_URL"},
	"endpoint.connect_timeout": {"QUESTDB_CONNECT_TIMEOUT"},
	"endpoint.read_timeout":    {"QUESTDB_READ_TIMEOUT"},
	"history.enabled":          {"HISTORY_ENABLED"},
	"history.host":             {"DB_HOST"},
	"history.port":             {"DB_PORT"},
	"history.user":             {"DB_USER"},
	"history.password":         {"DB_PASSWORD"},
	"history.dbname":           {"DB_NAME"},
	"history.sslmode":          {"DB_SSLMODE"},
	"elasticsearch.enabled":    {"ELASTICSEARCH_ENABLED"},
	"elasticsearch.addresses":  {"ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES"},
	"elasticsearch.api_key":    {"ELASTICSEARCH_API_KEY"},
	"elasticsearch.username":   {"ELASTICSEARCH_USERNAME"},
	"elasticsearch.password":   {"ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"},
	"elasticsearch.index_name": {"ELASTICSEARCH_INDEX_NAME"},
	"server.address":           {"SERVER_ADDRESS"},
	"server.api_key":           {"SERVER_API_KEY"},
	"schedule.cron":            {"SCHEDULE_CRON"},
}

// InitializeViper loads .env, sets defaults, reads the optional config file
// and binds environment variables on the given Viper instance.
func InitializeViper(v *viper.Viper, cfgFile string) error {
	// .env is optional; existing environment variables are never overwritten
	_ = godotenv.Load()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return &ViperError{Operation: "read config", Err: err}
		}
	}

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return &ViperError{Operation: "bind " + key, Err: err}
		}
	}

	setupDevelopmentLogging(v)
	return nil
}

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        app.DefaultName,
		"version":     app.DefaultVersion,
		"environment": app.DefaultEnvironment,
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        string(logger.DefaultLevel),
		"development":  false,
		"encoding":     logger.DefaultEncoding,
		"output_paths": []string{"stderr"},
	})

	v.SetDefault("endpoint", map[string]any{
		"url":             endpoint.DefaultURL,
		"connect_timeout": endpoint.DefaultConnectTimeout.String(),
		"read_timeout":    endpoint.DefaultReadTimeout.String(),
	})

	v.SetDefault("thresholds", map[string]any{
		"slow_ms":      domain.DefaultSlowMs,
		"very_slow_ms": domain.DefaultVerySlowMs,
	})

	v.SetDefault("sources", map[string]any{
		"local":                 true,
		"catalog":               true,
		"dashboards":            true,
		"path":                  sources.DefaultPath,
		"extensions":            sources.DefaultExtensions,
		"exclude_suffix":        sources.DefaultExcludeSuffix,
		"dialect_tag":           sources.DefaultDialectTag,
		"marker":                sources.DefaultMarker,
		"catalog_url":           sources.DefaultCatalogURL,
		"dashboard_urls":        sources.DefaultDashboardURLs,
		"dashboard_link_marker": sources.DefaultDashboardLinkMarker,
		"user_agent":            sources.DefaultUserAgent,
	})

	v.SetDefault("output", map[string]any{
		"all_queries":    output.DefaultAllQueriesPath,
		"failed_queries": output.DefaultFailedQueriesPath,
		"report":         output.DefaultReportPath,
	})

	v.SetDefault("history", map[string]any{
		"enabled": false,
		"host":    database.DefaultHost,
		"port":    database.DefaultPort,
		"user":    database.DefaultUser,
		"dbname":  database.DefaultDBName,
		"sslmode": database.DefaultSSLMode,
	})

	v.SetDefault("elasticsearch", map[string]any{
		"enabled":    false,
		"addresses":  []string{elasticsearch.DefaultAddresses},
		"index_name": elasticsearch.DefaultIndexName,
		"timeout":    elasticsearch.DefaultTimeout.String(),
	})

	v.SetDefault("server", map[string]any{
		"address":       server.DefaultAddress,
		"read_timeout":  server.DefaultReadTimeout.String(),
		"write_timeout": server.DefaultWriteTimeout.String(),
		"idle_timeout":  server.DefaultIdleTimeout.String(),
		"api_key":       "",
	})

	v.SetDefault("schedule", map[string]any{
		"cron":         schedule.DefaultCron,
		"run_on_start": false,
	})
}

// setupDevelopmentLogging switches to colored console output in development
// and to debug level when debug mode is requested.
func setupDevelopmentLogging(v *viper.Viper) {
	if v.GetBool("app.debug") {
		v.Set("logger.level", string(logger.DebugLevel))
	}
	if v.GetString("app.environment") == "development" {
		v.Set("logger.development", true)
		v.Set("logger.encoding", "console")
	}
}

// Load decodes the Viper state into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg, decodeHooks()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParseFailed, err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}

	return cfg, nil
}
