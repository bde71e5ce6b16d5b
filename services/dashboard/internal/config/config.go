package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceFile       = "file"
	SourceClickHouse = "clickhouse"
)

type Config struct {
	DataSource string
	DataFile   string
	DataSheet  string

	HTTPAddr string
	LogMode  string

	// CORSAllowOrigins restricts cross-origin callers; empty allows any.
	CORSAllowOrigins []string

	NATSURL         string
	NATSConnTimeout time.Duration
	NATSSubject     string
	NATSQueue       string

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string
	ClickHouseTable        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	OTelCollectorURL string
	ShutdownTimeout  time.Duration
}

func LoadConfig() (*Config, error) {
	config := &Config{
		DataSource: getEnvString("DATA_SOURCE", SourceFile),
		DataFile:   getEnvString("DATA_FILE", "freelance_dashboard_data.xlsx"),
		DataSheet:  getEnvString("DATA_SHEET", ""),

		HTTPAddr:         getEnvString("HTTP_ADDR", ":8501"),
		LogMode:          getEnvString("LOG_MODE", "development"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS"),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		NATSSubject:     getEnvString("NATS_SUBJECT", "dashboard.filter.changed"),
		NATSQueue:       getEnvString("NATS_QUEUE", "dashboard-service"),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "gigdash"),
		ClickHouseTable:        getEnvString("CLICKHOUSE_TABLE", "job_postings"),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		OTelCollectorURL: getEnvString("OTEL_COLLECTOR_URL", ""),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
