package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zscaler-release-feed/common"
	"zscaler-release-feed/internal/cache"
	"zscaler-release-feed/internal/config"
	"zscaler-release-feed/internal/events"
	"zscaler-release-feed/internal/models"
	"zscaler-release-feed/internal/pipeline"
	"zscaler-release-feed/internal/portal"
	"zscaler-release-feed/internal/rss"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	configPath := common.GetEnv("CONFIG_PATH", "products.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := portal.NewClient(cfg.RequestTimeout, cfg.MaxWorkers)

	var vcache cache.ValidationCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, "feedvalid:", cfg.CacheTTL)
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Printf("failed to close validation cache: %v", err)
			}
		}()
		vcache = redisCache
	}

	log.Printf("run starting base=%s products=%d workers=%d backfill_days=%d",
		cfg.BaseURL, len(cfg.Products), cfg.MaxWorkers, cfg.BackfillDays)

	items, report, err := pipeline.New(cfg, client, vcache).Run(ctx)
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}

	body, err := rss.Write(items, cfg.BaseURL, report.FinishedAt)
	if err != nil {
		log.Fatalf("failed to build feed document: %v", err)
	}
	if err := writeArtifact(cfg.OutputPath, body); err != nil {
		log.Fatalf("failed to write feed: %v", err)
	}
	log.Printf("feed written path=%s items=%d", cfg.OutputPath, len(items))

	if cfg.KafkaBroker != "" {
		publishEvents(ctx, cfg, items, report)
	}

	logReport(report)
	if allStagesFailed(report, len(cfg.Products)) {
		log.Fatalf("run failed: every discovery probe errored, nothing was reachable")
	}
}

func writeArtifact(path string, body []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, body, 0o644)
}

// publishEvents best-effort publishes items and the report to Kafka. The feed
// on disk is already written; a broker outage only costs the event stream.
func publishEvents(ctx context.Context, cfg *config.Config, items []models.FeedItem, report models.Report) {
	publisher := events.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("failed to close publisher: %v", err)
		}
	}()

	runID := newRunID(report.StartedAt)
	publishCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := publisher.PublishItems(publishCtx, runID, items); err != nil {
		log.Printf("item publish failed: %v", err)
	}
	if err := publisher.PublishReport(publishCtx, runID, report); err != nil {
		log.Printf("report publish failed: %v", err)
	}
}

func logReport(report models.Report) {
	log.Printf("run done duration=%s years_found=%d candidates=%d feeds_valid=%d feeds_invalid=%d cache_hits=%d feeds_parsed=%d feeds_failed=%d items_parsed=%d items_dropped=%d items_published=%d",
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
		report.YearsFound, report.Candidates, report.FeedsValid, report.FeedsInvalid,
		report.CacheHits, report.FeedsParsed, report.FeedsFailed,
		report.ItemsParsed, report.ItemsDropped, report.ItemsPublished)
}

// allStagesFailed reports the fatal everything-broke condition: no year was
// discovered and every single probe errored on the network. A portal that
// answers 404 everywhere is still a successful empty run; a portal nothing
// could reach is not.
func allStagesFailed(report models.Report, products int) bool {
	return report.YearsFound == 0 &&
		report.ProbesSkipped > 0 &&
		report.ProbesSkipped == report.YearsProbed*products
}

func newRunID(startedAt time.Time) string {
	return strings.ReplaceAll(startedAt.UTC().Format("20060102150405.000000000"), ".", "")
}
