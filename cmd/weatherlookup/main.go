package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-lookup/internal/app"
	"github.com/Nazarious-ucu/weather-lookup/internal/config"
	"github.com/Nazarious-ucu/weather-lookup/internal/presenter"
	metricsSvc "github.com/Nazarious-ucu/weather-lookup/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-lookup/pkg/logger"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	city := flag.String("city", "", "look up one city, print the result and exit")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLoggerWithLevel(cfg.LogsPath, app.ServiceName, cfg.LogLevel)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	application := app.New(*cfg, l, metricsSvc.NewMetrics(app.ServiceName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *city != "" {
		os.Exit(lookupOnce(ctx, application, *city, cfg.UpstreamTimeout()))
	}

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed to run")
		os.Exit(1)
	}
}

// lookupOnce prints the window for a single city to stdout.
func lookupOnce(ctx context.Context, application *app.App, city string, timeout time.Duration) int {
	container := application.Build(ctx)
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("failed to release resources: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	view := container.Presenter.Lookup(ctx, presenter.NewView(), city, func(v presenter.View) {
		fmt.Fprintln(os.Stderr, v.Status)
	})
	fmt.Print(view.Text())

	if view.Status != presenter.StatusDone {
		return 1
	}
	return 0
}
