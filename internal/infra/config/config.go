package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment
// variables. Kafka, Mongo and Redis are optional: leaving them unset degrades
// to in-memory adapters, which is the expected dev setup.
type Config struct {
	Env                string
	HTTPAddr           string
	PMSBaseURL         string
	PMSTimeout         time.Duration
	HorizonDays        int
	CellWidthPx        int
	RefreshInterval    time.Duration
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	KafkaConsumerGroup string
	KafkaSyncTopics    []string
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:                getEnv("APP_ENV", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		PMSBaseURL:         os.Getenv("PMS_BASE_URL"),
		KafkaTopicPrefix:   getEnv("KAFKA_TOPIC_PREFIX", ""),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "frontdesk"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            getEnv("MONGO_DB", "frontdesk"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if topics := getEnv("KAFKA_SYNC_TOPICS", "booking.events.v1,rates.events.v1"); topics != "" {
		cfg.KafkaSyncTopics = strings.Split(topics, ",")
	}

	timeout, err := parseDurationEnv("PMS_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.PMSTimeout = timeout

	horizon, err := parseIntEnv("HORIZON_DAYS", 365)
	if err != nil {
		return Config{}, err
	}
	cfg.HorizonDays = horizon

	cellWidth, err := parseIntEnv("CELL_WIDTH_PX", 40)
	if err != nil {
		return Config{}, err
	}
	cfg.CellWidthPx = cellWidth

	refresh, err := parseDurationEnv("SNAPSHOT_REFRESH_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshInterval = refresh

	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 168*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	if cfg.PMSBaseURL == "" {
		return Config{}, fmt.Errorf("PMS_BASE_URL is required")
	}
	if cfg.HorizonDays <= 0 {
		return Config{}, fmt.Errorf("HORIZON_DAYS must be positive")
	}
	if cfg.CellWidthPx <= 0 {
		return Config{}, fmt.Errorf("CELL_WIDTH_PX must be positive")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
