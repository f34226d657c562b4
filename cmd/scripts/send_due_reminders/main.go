// One-shot version of the hourly due-reminder scan, for catching up after
// downtime or testing the notification pipeline against real data.
//
// Usage:
//
//	go run ./cmd/scripts/send_due_reminders [-from-hours 0] [-to-hours 24]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage/connect"
	"github.com/planbase/planbase/pkg/logger"
)

func main() {
	fromHours := flag.Int("from-hours", 0, "window start, hours from now")
	toHours := flag.Int("to-hours", 24, "window end, hours from now")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := connect.Open(ctx, &cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close(ctx)

	// Always deliver inline: the script should finish with the notifications
	// written, not parked in Redis for a worker that may not be running.
	queue := services.NewSyncQueue()
	notify := services.NewNotifyService(store, queue)
	reminder := services.NewReminderService(store, notify)

	from := time.Now().Add(time.Duration(*fromHours) * time.Hour)
	to := time.Now().Add(time.Duration(*toHours) * time.Hour)

	sent, err := reminder.RunWindow(ctx, from, to)
	if err != nil {
		logger.Fatalf("Reminder scan failed: %v", err)
	}
	queue.Close()

	logger.Info().
		Int("sent", sent).
		Time("from", from).
		Time("to", to).
		Msg("due reminder scan complete")
}
