package main

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/handlers"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/internal/storage/connect"
	"github.com/planbase/planbase/internal/utils"
	"github.com/planbase/planbase/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	store    storage.Store
	queue    services.TaskQueue
	worker   *services.Worker
	reminder *services.ReminderService

	authHandler         *handlers.AuthHandler
	organizationHandler *handlers.OrganizationHandler
	projectHandler      *handlers.ProjectHandler
	taskHandler         *handlers.TaskHandler
	milestoneHandler    *handlers.MilestoneHandler
	timeLogHandler      *handlers.TimeLogHandler
	commentHandler      *handlers.CommentHandler
	notificationHandler *handlers.NotificationHandler
	dashboardHandler    *handlers.DashboardHandler
}

// bootstrap initializes all application dependencies: storage backend,
// services, queue, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := connect.Open(ctx, &cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}

	// Notification queue: async via Redis when enabled, inline otherwise.
	queue := services.NewTaskQueue(cfg)
	notify := services.NewNotifyService(store, queue)

	var worker *services.Worker
	if cfg.Redis.Enabled && queue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notify.Deliver)
			worker.Start()
		}
	}

	seeder := services.NewSeedService(store)
	authService := services.NewAuthService(store, &cfg.JWT, seeder)
	invitationService := services.NewInvitationService(store)
	timerService := services.NewTimerService(store)

	reminder := services.NewReminderService(store, notify)
	reminder.Start()

	return &appServices{
		store:    store,
		queue:    queue,
		worker:   worker,
		reminder: reminder,

		authHandler:         handlers.NewAuthHandler(authService),
		organizationHandler: handlers.NewOrganizationHandler(store, invitationService),
		projectHandler:      handlers.NewProjectHandler(store, notify),
		taskHandler:         handlers.NewTaskHandler(store, notify),
		milestoneHandler:    handlers.NewMilestoneHandler(store),
		timeLogHandler:      handlers.NewTimeLogHandler(store, timerService),
		commentHandler:      handlers.NewCommentHandler(store, notify),
		notificationHandler: handlers.NewNotificationHandler(store),
		dashboardHandler:    handlers.NewDashboardHandler(store),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminder.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.queue != nil {
		s.queue.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to close storage")
	}
	logger.Info().Msg("shutdown complete")
}
