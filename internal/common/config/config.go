package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// NATSConfig holds settings for the request/reply transport.
type NATSConfig struct {
	URL            string `mapstructure:"url"`
	RequestSubject string `mapstructure:"request_subject"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
}

// GetTimeout returns the request timeout as a duration.
func (n NATSConfig) GetTimeout() time.Duration {
	return GetDuration(n.Timeout)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// ElasticsearchConfig holds the product search index settings. The index is
// optional: when no address is configured, catalog search falls back to SQL.
type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	ProductIndex string   `mapstructure:"product_index"`
}

// Enabled reports whether a search index address is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AssistantConfig holds settings for the message-handling pipeline.
type AssistantConfig struct {
	SessionTTL     int  `mapstructure:"session_ttl"`     // minutes
	ReplyTimeout   int  `mapstructure:"reply_timeout"`   // milliseconds
	MaxSearchHits  int  `mapstructure:"max_search_hits"` // catalog result cap
	SpeakReplies   bool `mapstructure:"speak_replies"`   // mark replies for TTS
	HistoryEnabled bool `mapstructure:"history_enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}
