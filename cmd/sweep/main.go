// Command sweep runs the lifecycle sweeps once and exits. It is meant for a
// cron job when the API runs with SWEEPS_ENABLED=false.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/config"
	"github.com/sakibmtatva/online-job-portal-be/internal/bootstrap"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

func main() {
	only := flag.String("only", "", "run a single sweep: meeting-expiry or job-expiry")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer app.Close(context.Background())

	failed := false
	ran := 0
	for _, s := range app.Sweepers() {
		if *only != "" && s.Name() != *only {
			continue
		}
		ran++
		n, err := s.RunOnce(ctx)
		if err != nil {
			failed = true
			continue
		}
		logger.Log.Info("Sweep complete", "sweeper", s.Name(), "changed", n)
	}

	if ran == 0 {
		logger.Log.Error("Unknown sweep", "only", *only)
		failed = true
	}
	if failed {
		app.Close(context.Background())
		os.Exit(1)
	}
}
