package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/weather-report/internal/api/http"
	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/observability"
	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/scheduler"
	"github.com/i474232898/weather-report/internal/source"
	"github.com/i474232898/weather-report/internal/store"
)

const usage = `usage:
  weather-report summary <file.csv>   print the overview and daily summary
  weather-report serve                run the HTTP API and scheduled refreshes
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "summary":
		if len(args) != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		if err := printSummary(args[1], stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	case "serve":
		if err := serve(); err != nil {
			slog.Error("server failed", "error", err)
			return 1
		}
		return 0
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
}

func printSummary(path string, w io.Writer) error {
	records, err := source.LoadFile(path)
	if err != nil {
		return err
	}

	r, err := report.Render(path, records, time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, r.Text())
	return err
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := observability.NewLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	sources := make([]report.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src, err := source.FromLocation(sc.Name, sc.Location, cfg.HTTPTimeout)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	service := report.NewService(memStore, sources, log, metrics)

	// Scheduler that periodically re-reads every source. A run gets as long as
	// the slowest retrying download can take.
	refreshTimeout := source.DefaultBackoff.Budget(cfg.HTTPTimeout)
	sched := scheduler.New(cfg.RefreshInterval, refreshTimeout, service, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-report",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-report",
			"sources": service.Sources(),
		})
	})

	httpapi.RegisterRoutes(app, service)
	httpapi.RegisterMetrics(app, reg)

	go func() {
		log.Info("http server starting", "port", cfg.Port, "sources", len(sources))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	return nil
}
