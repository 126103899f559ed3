package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"zscaler-release-feed/common"
	"zscaler-release-feed/internal/models"
	"zscaler-release-feed/internal/portal"
)

// ErrNoProducts is the only fatal configuration error: with zero products
// there is nothing to aggregate, so the run aborts before any network I/O.
var ErrNoProducts = errors.New("no products configured")

// File is the YAML product configuration.
type File struct {
	Products   []models.Product `yaml:"products"`
	MaxWorkers int              `yaml:"max_workers"`
}

// Config carries everything a pipeline run needs, immutable once built.
type Config struct {
	Products       []models.Product
	MaxWorkers     int
	BackfillDays   int
	YearLookback   int
	BaseURL        string
	RequestTimeout time.Duration
	OutputPath     string

	RedisAddr string
	CacheTTL  time.Duration

	KafkaBroker string
	KafkaTopic  string
}

// Load reads the products file, expands environment references in it, and
// applies env-var overrides for the runtime knobs.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, ErrNoProducts
	}
	for i, p := range file.Products {
		if p.Slug == "" || p.Domain == "" {
			return nil, fmt.Errorf("product %d is missing slug or domain", i)
		}
	}

	maxWorkers := file.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 10
	}

	cfg := &Config{
		Products:       file.Products,
		MaxWorkers:     common.ParseInt(common.GetEnv("MAX_WORKERS", ""), maxWorkers),
		BackfillDays:   common.ParseInt(common.GetEnv("BACKFILL_DAYS", "14"), 14),
		YearLookback:   common.ParseInt(common.GetEnv("YEAR_LOOKBACK", "3"), 3),
		BaseURL:        common.GetEnv("BASE_URL", portal.DefaultBaseURL),
		RequestTimeout: common.ParseDuration(common.GetEnv("REQUEST_TIMEOUT", "30s"), 30*time.Second),
		OutputPath:     common.GetEnv("OUTPUT_PATH", "public/rss.xml"),
		RedisAddr:      common.GetEnv("REDIS_ADDR", ""),
		CacheTTL:       common.ParseDuration(common.GetEnv("CACHE_TTL", "6h"), 6*time.Hour),
		KafkaBroker:    common.GetEnv("KAFKA_BROKER", ""),
		KafkaTopic:     common.GetEnv("KAFKA_TOPIC", "zscaler.release.items"),
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if cfg.BackfillDays < 0 {
		cfg.BackfillDays = 0
	}
	if cfg.YearLookback < 0 {
		cfg.YearLookback = 0
	}
	return cfg, nil
}
