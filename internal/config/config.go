package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Source documents: plain paths, file:// or http(s):// URLs.
	CrashesSource   string
	AgeSource       string
	BACSource       string
	GeographySource string
	SourceTimeout   time.Duration

	InvalidNumberPolicy domain.NumberPolicy
	DatasetYear         int
	// Zero loads the dataset once at startup.
	ReloadInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Optional Kafka sink for joined records.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := parsePositiveDuration("SOURCE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	year, err := strconv.Atoi(sharedcfg.EnvOrDefault("DATASET_YEAR", "2012"))
	if err != nil || year < 1975 {
		return nil, errors.New("invalid DATASET_YEAR")
	}

	policy, err := domain.ParseNumberPolicy(sharedcfg.EnvOrDefault("INVALID_NUMBER_POLICY", string(domain.NumberPolicyReject)))
	if err != nil {
		return nil, fmt.Errorf("invalid INVALID_NUMBER_POLICY: %w", err)
	}

	reloadInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("RELOAD_INTERVAL", "0s"))
	if err != nil || reloadInterval < 0 {
		return nil, errors.New("invalid RELOAD_INTERVAL")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		CrashesSource:   sharedcfg.EnvOrDefault("CRASHES_SOURCE", "data/dataset0.txt"),
		AgeSource:       sharedcfg.EnvOrDefault("AGE_SOURCE", "data/dataset1.txt"),
		BACSource:       sharedcfg.EnvOrDefault("BAC_SOURCE", "data/dataset2.txt"),
		GeographySource: sharedcfg.EnvOrDefault("GEOGRAPHY_SOURCE", "https://d3js.org/us-10m.v1.json"),
		SourceTimeout:   sourceTimeout,

		InvalidNumberPolicy: policy,
		DatasetYear:         year,
		ReloadInterval:      reloadInterval,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "fars-state-records"),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 100
}
