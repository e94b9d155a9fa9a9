// cmd/wizard-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"benefits-wizard/internal/common/aws"
	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/database"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/notify"
	"benefits-wizard/internal/prefill"
	"benefits-wizard/internal/server"
	"benefits-wizard/internal/wizard"
	"benefits-wizard/pkg/registry"
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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting wizard server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("wizard-server")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init Redis (prefill cache) with retry ---
	var cache *database.RedisClient
	if cfg.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			cache, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			return cache.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			// The cache only saves repeat scans; run without it.
			zapLog.Warn("redis unavailable, prefill cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Init acknowledgement clients ---
	var emailSender notify.EmailSender
	var textSender notify.TextSender
	if cfg.Notifications.Email.Enabled {
		client, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			zapLog.Fatal("SES client failed", zap.Error(err))
		}
		emailSender = client
	}
	if cfg.Notifications.SMS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.SMS.SenderID)
		if err != nil {
			zapLog.Fatal("SNS client failed", zap.Error(err))
		}
		textSender = client
	}
	notifier := notify.New(cfg.Notifications, log, emailSender, textSender)

	// --- Wire the wizard ---
	var scanner *prefill.Service
	if cfg.Prefill.Enabled {
		scanner = prefill.NewService(cfg.Prefill, cache, log, obs)
	}
	session := wizard.NewSession(cfg.Wizard, log, obs, notifier)

	var catalog *registry.StepCatalog
	if cfg.Server.StepsCatalog != "" {
		cat, err := registry.LoadCatalog(cfg.Server.StepsCatalog)
		if err != nil {
			zapLog.Fatal("step catalog failed to load", zap.Error(err))
		}
		if err := cat.Validate(); err != nil {
			zapLog.Fatal("step catalog is invalid", zap.Error(err))
		}
		catalog = cat
	}

	srv := server.New(cfg.Server, session, scanner, catalog, log)

	zapLog.Info("wizard ready",
		zap.String("address", cfg.Server.Address),
		zap.String("defaultPolicy", cfg.Wizard.DefaultPolicy),
		zap.Bool("prefill", cfg.Prefill.Enabled),
	)

	if err := srv.ListenAndServe(ctx); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}
	zapLog.Info("shutdown complete")
}
