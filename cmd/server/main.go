package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/archetype/internal/application"
	"github.com/eugenenazirov/archetype/internal/config"
	"github.com/eugenenazirov/archetype/internal/logging"
)

var signalNotify = signal.Notify

// shutdowner is the part of application.App the signal loop needs.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func main() {
	kingpinApp := kingpin.New("archetype", "Archetype service - serves values from the application settings file")
	configFile := kingpinApp.Flag("config", "Path to YAML service configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	basePath := kingpinApp.Flag("settings-base-path", "Directory containing the settings file").String()
	settingsFile := kingpinApp.Flag("settings-file", "Settings file name (.json, .yaml, .yml or .toml)").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile:       *configFile,
		Port:             port,
		SettingsBasePath: basePath,
		SettingsFile:     settingsFile,
		LogLevel:         logLevel,
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	source, err := application.LoadSettings(cfg)
	if err != nil {
		logger.Fatal("failed to load settings",
			zap.String("base_path", cfg.SettingsBasePath),
			zap.String("file", cfg.SettingsFile),
			zap.Error(err),
		)
	}

	app, err := application.New(cfg, source, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app, cfg.ShutdownGracePeriod, logger)
}

func shutdown(app shutdowner, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
