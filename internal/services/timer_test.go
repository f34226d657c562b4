package services

import (
	"context"
	"errors"
	"testing"

	"github.com/planbase/planbase/pkg/response"
)

func TestTimerStart(t *testing.T) {
	store := newTestStore(t)
	timer := NewTimerService(store)
	ctx := context.Background()

	user, org := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	task := seedTask(t, store, org, user, "Fix login")

	log, err := timer.Start(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if log.TaskID != task.ID || log.UserID != user.ID {
		t.Errorf("log = %+v", log)
	}
	if log.EndTime != nil {
		t.Error("fresh timer should have no end time")
	}
}

func TestTimerStart_SecondTimerConflicts(t *testing.T) {
	store := newTestStore(t)
	timer := NewTimerService(store)
	ctx := context.Background()

	user, org := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	task := seedTask(t, store, org, user, "Fix login")
	other := seedTask(t, store, org, user, "Write docs")

	if _, err := timer.Start(ctx, user.ID, task.ID); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	_, err := timer.Start(ctx, user.ID, other.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("second Start() error = %v, expected 409 conflict", err)
	}
}

func TestTimerStart_NoTaskAccess(t *testing.T) {
	store := newTestStore(t)
	timer := NewTimerService(store)
	ctx := context.Background()

	owner, org := seedUserWithOrg(t, store, "owner@example.com", "Owner")
	outsider, _ := seedUserWithOrg(t, store, "out@example.com", "Outsider")
	task := seedTask(t, store, org, owner, "Fix login")

	_, err := timer.Start(ctx, outsider.ID, task.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Errorf("Start() error = %v, expected 403 forbidden", err)
	}
}

func TestTimerStopAndActive(t *testing.T) {
	store := newTestStore(t)
	timer := NewTimerService(store)
	ctx := context.Background()

	user, org := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	task := seedTask(t, store, org, user, "Fix login")

	active, err := timer.Active(ctx, user.ID)
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if active != nil {
		t.Errorf("no timer started, Active() = %+v", active)
	}

	started, err := timer.Start(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	active, err = timer.Active(ctx, user.ID)
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if active == nil || active.ID != started.ID {
		t.Errorf("Active() = %+v, expected %q", active, started.ID)
	}

	stopped, err := timer.Stop(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if stopped.EndTime == nil || stopped.Duration == nil {
		t.Errorf("stopped log incomplete: %+v", stopped)
	}

	// A second stop has nothing to stop.
	_, err = timer.Stop(ctx, user.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("second Stop() error = %v, expected 400", err)
	}
}
