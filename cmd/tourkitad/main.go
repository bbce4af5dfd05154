package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/zneright/tourkita-core/internal/cache"
	"github.com/zneright/tourkita-core/internal/config"
	"github.com/zneright/tourkita-core/internal/influx"
	"github.com/zneright/tourkita-core/internal/logging"
	intOtel "github.com/zneright/tourkita-core/internal/otel"
	"github.com/zneright/tourkita-core/internal/query"
	"github.com/zneright/tourkita-core/internal/refresh"
	"github.com/zneright/tourkita-core/internal/report"
	"github.com/zneright/tourkita-core/internal/routing"
	"github.com/zneright/tourkita-core/internal/server"
	"github.com/zneright/tourkita-core/internal/store"
)

var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	ServiceName string = "tourkitad"
)

var (
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env overrides are optional
	_ = godotenv.Load()

	configDir := flag.String("config", ".", "directory containing "+config.ConfigFileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		return err
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}
	logFilePath := logging.LogFilePath(logsDir, ServiceName, SessionStartTime)
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	SlogManager = logging.NewSlogManager()

	// bootstrap logging before OTel is up
	SlogManager.Setup(logFile, config.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()
	Logger.Info("Starting", "service", ServiceName, "version", Version, "buildDate", BuildDate)

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		otelLogPath := filepath.Join(logsDir, fmt.Sprintf("%s.otel.%s.log", ServiceName, SessionStartTime.Format("20060102_150405")))
		otelLogFile, err := os.OpenFile(otelLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening otel log file: %w", err)
		}
		defer otelLogFile.Close()

		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    otelLogFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "file", otelLogPath)
		}
	}

	var extraHandlers []slog.Handler
	if config.GetBool("graylog.enabled") {
		addr := config.GetString("graylog.address")
		gelfHandler, err := logging.NewGelfHandler(addr, config.GetString("logLevel"))
		if err != nil {
			Logger.Warn("Graylog unavailable", "addr", addr, "error", err)
		} else {
			extraHandlers = append(extraHandlers, gelfHandler)
			Logger.Info("Graylog handler attached", "addr", addr)
		}
	}

	// re-setup logging with OTel and GELF attached
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logFile, config.GetString("logLevel"), otelLogProvider, extraHandlers...)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logFilePath)

	zlog := zerolog.New(logFile).With().Timestamp().Str("service", ServiceName).Logger()

	storageCfg := config.GetStorageConfig()
	backend, err := store.NewStore(storageCfg, Logger, zlog)
	if err != nil {
		return fmt.Errorf("initializing %s storage: %w", storageCfg.Type, err)
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var placeCache cache.PlaceCache
	redisCfg := config.GetRedisConfig()
	if redisCfg.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, redisCfg.Addr, redisCfg.TTL, zlog)
		if err != nil {
			Logger.Warn("Redis unavailable, using in-process cache", "addr", redisCfg.Addr, "error", err)
			placeCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			placeCache = redisCache
			Logger.Info("Redis cache connected", "addr", redisCfg.Addr)
		}
	} else {
		placeCache = cache.NewMemoryCache()
	}

	cachedStore := cache.NewCachedStore(backend, placeCache, Logger)
	if err := cachedStore.WarmUp(ctx); err != nil {
		Logger.Warn("Initial cache warm-up failed", "error", err)
	}

	influxManager := influx.NewManager(zlog)
	if err := influxManager.Connect(); err != nil {
		Logger.Info("InfluxDB reporting disabled", "reason", err)
		influxManager = nil
	}

	queries := query.NewService(query.Dependencies{
		Store:    cachedStore,
		Reporter: report.NewSlogReporter(Logger),
		Logger:   Logger,
		Influx:   influxManager,
		Timeout:  config.GetDuration("query.timeout"),
	})

	refresher := refresh.New(cachedStore, Logger)
	if err := refresher.Start(config.GetString("refresh.schedule")); err != nil {
		return err
	}
	defer refresher.Stop()

	var routes *routing.Client
	if url := config.GetString("routing.serverUrl"); url != "" {
		routes = routing.New(url, config.GetString("routing.apiKey"))
		if err := routes.Healthcheck(ctx); err != nil {
			Logger.Warn("Routing frontend unreachable", "url", url, "error", err)
		}
	}

	addr := config.GetString("server.addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewServer(config.GetString("server.serviceName"), queries, cachedStore, routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		Logger.Error("HTTP shutdown failed", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(shutdownCtx); err != nil {
			Logger.Error("OTel shutdown failed", "error", err)
		}
	}
	_ = SlogManager.Flush(shutdownCtx)
	return nil
}
