package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/archetype/internal/api"
	"github.com/eugenenazirov/archetype/internal/config"
	"github.com/eugenenazirov/archetype/internal/settings"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	settings settings.Source
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
	listener net.Listener
}

// LoadSettings reads the settings file named by cfg. ARCHETYPE_ environment
// variables fill in keys the file does not set; the file wins on conflicts.
// A missing or malformed file is an error.
func LoadSettings(cfg config.Config) (settings.Source, error) {
	file, err := settings.LoadFile(cfg.SettingsBasePath, cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	return settings.Chain{settings.FromEnv(settings.EnvPrefix), file}, nil
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, source settings.Source, logger *zap.Logger) (*App, error) {
	if source == nil {
		return nil, errors.New("settings source is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	handler := api.NewHandler(source)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		settings: source,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start binds the listen address and serves HTTP in a goroutine.
// Bind errors are returned; later serve errors are logged.
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.listener = ln

	go func() {
		a.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded, or the configured one.
func (a *App) Addr() string {
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.server.Addr
}

// Shutdown gracefully stops the server, forcing a close when ctx expires first.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := a.server.Close(); closeErr != nil {
			return fmt.Errorf("force close: %w", closeErr)
		}
		return err
	}
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
