package services

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReminderService scans for tasks due within the next 24 hours and notifies
// their assignees. The scan window advances hourly, so each task is picked up
// by exactly one run: the one where its due date first enters [now+23h, now+24h).
type ReminderService struct {
	store  storage.Store
	notify *NotifyService
	cron   *cron.Cron
}

func NewReminderService(store storage.Store, notify *NotifyService) *ReminderService {
	return &ReminderService{store: store, notify: notify}
}

// Start schedules the hourly reminder scan.
func (s *ReminderService) Start() {
	s.cron = cron.New()
	s.cron.AddFunc("@hourly", s.scan)
	s.cron.Start()
	logger.Info().Msg("due reminder scheduler started")
}

// Stop halts the scheduler, waiting for a running scan to finish.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *ReminderService) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	from := time.Now().Add(23 * time.Hour)
	to := time.Now().Add(24 * time.Hour)

	if _, err := s.RunWindow(ctx, from, to); err != nil {
		logger.Error().Err(err).Msg("due reminder scan failed")
	}
}

// RunWindow sends reminders for tasks due inside [from, to) and returns how
// many were sent. Used by the hourly scan and the one-shot ops script.
func (s *ReminderService) RunWindow(ctx context.Context, from, to time.Time) (int, error) {
	tasks, err := s.store.ListTasksDueBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	for i := range tasks {
		s.notify.DueReminder(&tasks[i])
	}
	if len(tasks) > 0 {
		logger.Info().Int("count", len(tasks)).Msg("due reminders sent")
	}
	return len(tasks), nil
}
