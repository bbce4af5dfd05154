// Package config loads service configuration via viper. Defaults are set
// for every key so a missing config entry never panics downstream.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the JSON config file read from the config directory.
const ConfigFileName = "tourkita.cfg.json"

// StorageConfig selects and parameterizes the document-store backend.
type StorageConfig struct {
	Type     string `json:"type" mapstructure:"type"`
	SeedFile string `json:"seedFile" mapstructure:"seedFile"`
	// SQLitePath is the database file; empty means in-memory.
	SQLitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// RedisConfig holds the optional place-cache backend settings.
type RedisConfig struct {
	Enabled bool          `json:"enabled" mapstructure:"enabled"`
	Addr    string        `json:"addr" mapstructure:"addr"`
	TTL     time.Duration `json:"ttl" mapstructure:"ttl"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// Load reads configuration from the JSON file in configDir and sets default
// values.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./tourkitalogs")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.serviceName", "tourkita-core")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.seedFile", "")
	viper.SetDefault("storage.sqlitePath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "tourkita")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.ttl", "10m")

	viper.SetDefault("query.timeout", "10s")

	viper.SetDefault("refresh.schedule", "@every 5m")

	viper.SetDefault("routing.serverUrl", "http://localhost:5000")
	viper.SetDefault("routing.apiKey", "")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "tourkita-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "tourkita-core")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:       viper.GetString("storage.type"),
		SeedFile:   viper.GetString("storage.seedFile"),
		SQLitePath: viper.GetString("storage.sqlitePath"),
	}
}

// GetRedisConfig returns the redis cache configuration.
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled: viper.GetBool("redis.enabled"),
		Addr:    viper.GetString("redis.addr"),
		TTL:     viper.GetDuration("redis.ttl"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
