// cmd/assistant/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kirana-assistant/internal/assistant"
	"kirana-assistant/internal/common/config"
	"kirana-assistant/internal/common/database"
	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/common/observability"
	"kirana-assistant/internal/services/cart"
	"kirana-assistant/internal/services/catalog"
	"kirana-assistant/internal/services/orders"
	"kirana-assistant/internal/services/session"
	"kirana-assistant/internal/transport"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting kirana assistant...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rd *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rd, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rd.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rd.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire services ---
	catalogService := catalog.New(pg.DB, log)

	// Elasticsearch is optional: SQL search serves when it is not configured.
	if cfg.Database.Elasticsearch.Enabled() {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		catalogService = catalogService.WithElasticsearch(es.Client, cfg.Database.Elasticsearch.ProductIndex)
		zapLog.Info("Elasticsearch connected successfully")
	}

	orderService := orders.New(pg.DB, log)
	cartService := cart.New(pg.DB, log)
	sessionStore := session.NewStore(rd.Client, cfg.Assistant.GetSessionTTL(), log)

	handler := assistant.NewHandler(
		assistant.NewConfig(cfg.Assistant),
		catalogService, orderService, cartService, sessionStore,
		log,
	).WithObservability(obs)

	// --- Init NATS transport with retry ---
	var nt *transport.NATSTransport
	err = retryWithBackoff(func() error {
		var err error
		nt, err = transport.NewNATSTransport(&cfg.NATS, handler, log)
		return err
	}, 10, 2*time.Second, zapLog, "NATS connection")

	if err != nil {
		zapLog.Fatal("nats failed after retries", zap.Error(err))
	}
	defer nt.Close()

	if err := nt.Start(); err != nil {
		zapLog.Fatal("transport start failed", zap.Error(err))
	}
	zapLog.Info("NATS transport started",
		zap.String("subject", cfg.NATS.RequestSubject),
	)

	// --- Metrics endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics endpoint listening", zap.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	zapLog.Info("Kirana assistant is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutting down...")

	if err := nt.Drain(); err != nil {
		zapLog.Warn("transport drain failed", zap.Error(err))
	}
}
