// cmd/chat-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/api"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/analytics"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/ratelimit"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/widget"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/camunda"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/config"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/database"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/logger"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/observability"

	rcm "github.com/eumatoliveira/leanhealth-websit/internal/workers/chat/respond-chat-message"

	"go.uber.org/zap"
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
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chat server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, zapLog)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]api.Checker{}

	// --- PostgreSQL (optional) ---
	var recorder *analytics.Recorder
	if cfg.Database.Postgres.Enabled() {
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

		recorder = analytics.NewRecorder(pg.DB)
		if err := recorder.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("analytics schema failed", zap.Error(err))
		}
		checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Info("PostgreSQL not configured, intent analytics disabled")
	}

	// --- Redis (optional) ---
	var limiter *ratelimit.Limiter
	if cfg.Database.Redis.Enabled() {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()

		limiter = ratelimit.New(rdb.Client, cfg.RateLimit.Requests, config.GetDuration(cfg.RateLimit.Window), log)
		checks["redis"] = rdb
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Redis not configured, rate limiting disabled")
	}

	// --- Chat core ---
	matcher, err := newMatcher(cfg.Chat)
	if err != nil {
		zapLog.Fatal("intent rules failed", zap.Error(err))
	}
	if cfg.Chat.CatalogPath != "" {
		zapLog.Info("Serving intent catalog", zap.String("path", cfg.Chat.CatalogPath))
	}
	conversation := widget.NewConversation(matcher, widget.ConversationConfig{
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		MinDelay:         config.GetDuration(cfg.Chat.MinReplyDelay),
		MaxDelay:         config.GetDuration(cfg.Chat.MaxReplyDelay),
	})

	// --- Zeebe (optional) ---
	var zeebe *camunda.Client
	var chatWorker *camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		checks["zeebe"] = api.CheckerFunc(zeebe.HealthCheck)
		zapLog.Info("Zeebe client connected successfully")

		wcfg := config.GetWorkerConfig(cfg, rcm.TaskType)
		handlerCfg := rcm.LoadConfig()
		handlerCfg.Timeout = config.GetDuration(wcfg.Timeout)
		handlerCfg.MaxMessageLength = cfg.Chat.MaxMessageLength
		handlerCfg.RequireAnalytics = wcfg.RequireAnalytics
		handler := rcm.NewHandler(handlerCfg, matcher, recorder, obs, log)

		chatWorker = camunda.StartWorker(zeebe.GetClient(), rcm.TaskType, wcfg, handler.Handle, zapLog)
	}

	// --- HTTP API ---
	server, err := api.NewServer(api.Config{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		CalculatorLimits: calculatorLimits(cfg.Calculator),
	}, api.Dependencies{
		Matcher:       matcher,
		Conversation:  conversation,
		Panel:         &widget.Panel{},
		Limiter:       limiter,
		Recorder:      recorder,
		Observability: obs,
		Checks:        checks,
	}, log)
	if err != nil {
		zapLog.Fatal("api server setup failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	chatWorker.Stop()
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Chat server stopped gracefully")
}
