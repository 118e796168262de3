package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/tellor-io/node-storage-monitor/internal/alert"
	"github.com/tellor-io/node-storage-monitor/internal/config"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
	"github.com/tellor-io/node-storage-monitor/internal/monitor"
	"github.com/tellor-io/node-storage-monitor/internal/notify"
	"github.com/tellor-io/node-storage-monitor/internal/report"
	"github.com/tellor-io/node-storage-monitor/internal/sampler"
	"github.com/tellor-io/node-storage-monitor/internal/storage/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, relying on system environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.Info("node-storage-monitor: starting...",
		"server_name", cfg.ServerName,
		"targets", len(cfg.Targets),
		"poll_interval", cfg.PollInterval(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize components
	targets := cfg.BuildTargets()
	samplers, err := sampler.ForTargets(targets)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	webhook := notify.NewDiscord(cfg.WebhookURL, cfg.ServerName, cfg.RequestTimeout(), appLog)
	controller := alert.NewController(webhook, cfg.NotifyRecovery, appLog)
	store := snapshot.NewSampleStore()
	loop := monitor.NewLoop(cfg.PollInterval(), targets, samplers, controller, store, appLog)

	if cfg.AnnounceStartup {
		msg := "🤖 Storage monitor online for " + cfg.ServerName + " at " + time.Now().UTC().Format(time.RFC822)
		if err := webhook.Send(ctx, msg); err != nil {
			appLog.Warn("startup announcement failed", "error", err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Poll loop
	g.Go(func() error {
		return loop.Run(gCtx)
	})

	// 2. Scheduled status reports
	if cfg.ReportSchedule != "" {
		reporter := report.New(cfg.ReportSchedule, cfg.ServerName, targets, store, webhook, appLog)
		g.Go(func() error {
			return reporter.Run(gCtx)
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		appLog.Error("monitor failed unexpectedly", "error", err)
	}

	appLog.Info("node-storage-monitor stopped gracefully.")
}
