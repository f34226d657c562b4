package services

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

// TimerService enforces the one-running-timer-per-user rule on top of the
// time log storage primitives.
type TimerService struct {
	store storage.Store
}

func NewTimerService(store storage.Store) *TimerService {
	return &TimerService{store: store}
}

// Start opens a new time log for the task. Fails when the user already has a
// running timer; the caller must stop it first.
func (s *TimerService) Start(ctx context.Context, userID, taskID string) (*models.TimeLog, error) {
	ok, err := s.store.CanUserAccessTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("no access to this task")
	}

	if _, err := s.store.GetActiveTimeLog(ctx, userID); err == nil {
		return nil, response.NewConflict("a timer is already running")
	} else if !storage.IsNotFound(err) {
		return nil, err
	}

	log := models.TimeLog{
		TaskID:    taskID,
		UserID:    userID,
		StartTime: time.Now(),
	}
	if err := s.store.CreateTimeLog(ctx, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// Stop ends the user's running timer and returns the completed log with its
// duration filled in.
func (s *TimerService) Stop(ctx context.Context, userID string) (*models.TimeLog, error) {
	active, err := s.store.GetActiveTimeLog(ctx, userID)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, response.NewBadRequest("no running timer")
		}
		return nil, err
	}
	return s.store.StopTimeLog(ctx, active.ID, time.Now())
}

// Active returns the user's running timer, or nil when none is running.
func (s *TimerService) Active(ctx context.Context, userID string) (*models.TimeLog, error) {
	log, err := s.store.GetActiveTimeLog(ctx, userID)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}
