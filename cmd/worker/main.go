package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/pkg/app"
	"github.com/ghuser/equiptrack/pkg/cache"
	"github.com/ghuser/equiptrack/pkg/config"
	"github.com/ghuser/equiptrack/pkg/database"
	"github.com/ghuser/equiptrack/pkg/events"
	"github.com/ghuser/equiptrack/pkg/logger"
	"github.com/ghuser/equiptrack/pkg/telemetry"
	trackingevents "github.com/ghuser/equiptrack/services/tracking/domain/events"
	trackingpg "github.com/ghuser/equiptrack/services/tracking/infrastructure/persistence/postgres"
)

// orphanGracePeriod excludes freshly appended events from the orphan audit;
// a bulk insert may still be in flight for them.
const orphanGracePeriod = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	auditCtx, cancelAudit := context.WithCancel(ctx)
	go runOrphanAudit(auditCtx, appConfig, cfg.OrphanAuditInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelAudit()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, trackingevents.TopicBulkRecorded, handleBulkRecorded(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", trackingevents.TopicBulkRecorded,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{trackingevents.TopicBulkRecorded})
	return nil
}

// handleBulkRecorded returns a handler for tracking.bulk_recorded events.
// Handlers must be idempotent; the EventBus retries up to 3 times on failure.
// Warms the Redis last-event read model so the expanded item listing is served
// from cache after each bulk. The API invalidates the same keys on write, so a
// duplicate delivery only rewrites an identical hash.
func handleBulkRecorded(a *app.Application) func(context.Context, *message.Message) error {
	lastEvents := cache.NewLastEventCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt trackingevents.BulkRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		// All events in a bulk share one date; for duplicate device ids the
		// later snapshot overwrites, matching insert order.
		warmed := make(map[uuid.UUID]struct{}, len(evt.Events))
		for _, snap := range evt.Events {
			if err := lastEvents.Set(ctx, evt.OrgID, evt.Domain, &cache.CachedLastEvent{
				EventID:   snap.EventID,
				ItemID:    snap.ItemID,
				Type:      snap.Type,
				Date:      snap.Date,
				UserID:    snap.UserID,
				FirstName: snap.FirstName,
				LastName:  snap.LastName,
				Email:     snap.Email,
			}); err != nil {
				// Cache warming is best-effort; log but do not fail the handler.
				a.Logger.WarnContext(ctx, "cache warm failed for bulk event",
					"item_id", snap.ItemID, "error", err)
				continue
			}
			warmed[snap.ItemID] = struct{}{}
		}

		a.Logger.InfoContext(ctx, "last-event cache warmed",
			"bulk_id", evt.BulkID, "org_id", evt.OrgID,
			"domain", evt.Domain, "items", len(warmed))
		return nil
	}
}

// runOrphanAudit periodically counts events that no bulk references. Bulk
// recording spans three writes without a transaction, so a crash mid-flow
// strands appended events. Orphans stay queryable through the per-item event
// history; the audit only surfaces them for operators, it never deletes.
func runOrphanAudit(ctx context.Context, a *app.Application, interval time.Duration) {
	events := trackingpg.NewEventRepository(a.Db)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("orphan audit shutting down")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-orphanGracePeriod)
			count, err := events.CountOrphans(ctx, cutoff)
			if err != nil {
				a.Logger.ErrorContext(ctx, "orphan audit failed", "error", err)
				continue
			}
			if count > 0 {
				a.Logger.WarnContext(ctx, "orphaned events detected",
					"count", count, "created_before", cutoff)
			} else {
				a.Logger.InfoContext(ctx, "orphan audit clean")
			}
		}
	}
}
