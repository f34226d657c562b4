package services

import (
	"context"
	"sync"
	"testing"

	"github.com/planbase/planbase/internal/config"
)

func TestSyncQueue_RunsProcessor(t *testing.T) {
	q := NewSyncQueue()

	var mu sync.Mutex
	var got []string
	q.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, task.UserID)
		return nil
	})

	if q.IsAsync() {
		t.Error("sync queue reported async")
	}

	for _, userID := range []string{"u1", "u2"} {
		if err := q.Enqueue(&NotificationTask{UserID: userID, Type: "test"}); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Errorf("processed = %d tasks, expected 2", len(got))
	}
}

func TestSyncQueue_NoProcessorDropsTask(t *testing.T) {
	q := NewSyncQueue()

	// Without a processor the task is dropped, not an error.
	if err := q.Enqueue(&NotificationTask{UserID: "u1", Type: "test"}); err != nil {
		t.Errorf("Enqueue() error = %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewTaskQueue_RedisDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Redis.Enabled = false

	q := NewTaskQueue(cfg)
	defer q.Close()

	if q.IsAsync() {
		t.Error("queue should be synchronous when redis is disabled")
	}
}

func TestNewTaskQueue_RedisUnreachableFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1" // nothing listens here

	q := NewTaskQueue(cfg)
	defer q.Close()

	if q.IsAsync() {
		t.Error("unreachable redis should fall back to the sync queue")
	}
}
