package services

import (
	"context"
	"fmt"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/logger"
)

// NotifyService fans out in-app notifications through the task queue. The
// queue decouples notification writes from the request path; delivery is the
// queue processor persisting the row.
type NotifyService struct {
	store storage.Store
	queue TaskQueue
}

func NewNotifyService(store storage.Store, queue TaskQueue) *NotifyService {
	s := &NotifyService{store: store, queue: queue}
	if sync, ok := queue.(*SyncQueue); ok {
		sync.SetProcessor(s.Deliver)
	}
	return s
}

// Deliver persists a queued notification. Registered as the queue/worker
// processor.
func (s *NotifyService) Deliver(ctx context.Context, task *NotificationTask) error {
	notification := models.Notification{
		UserID:    task.UserID,
		Type:      task.Type,
		Title:     task.Title,
		Message:   task.Message,
		TaskID:    task.TaskID,
		ProjectID: task.ProjectID,
	}
	return s.store.CreateNotification(ctx, &notification)
}

func (s *NotifyService) enqueue(task *NotificationTask) {
	if err := s.queue.Enqueue(task); err != nil {
		logger.Error().Err(err).Str("type", task.Type).Msg("failed to enqueue notification")
	}
}

// TaskAssigned notifies the assignee, unless they assigned it to themselves.
func (s *NotifyService) TaskAssigned(task *models.Task, assigneeID, actorID string) {
	if assigneeID == "" || assigneeID == actorID {
		return
	}
	s.enqueue(&NotificationTask{
		UserID:    assigneeID,
		Type:      models.NotificationTaskAssigned,
		Title:     "Task assigned to you",
		Message:   fmt.Sprintf("You were assigned %q", task.Title),
		TaskID:    &task.ID,
		ProjectID: &task.ProjectID,
	})
}

// StatusChanged notifies the assignee when someone else moves their task.
func (s *NotifyService) StatusChanged(task *models.Task, actorID string) {
	if task.AssigneeID == nil || *task.AssigneeID == actorID {
		return
	}
	s.enqueue(&NotificationTask{
		UserID:    *task.AssigneeID,
		Type:      models.NotificationStatusChanged,
		Title:     "Task status changed",
		Message:   fmt.Sprintf("%q moved to %s", task.Title, task.Status),
		TaskID:    &task.ID,
		ProjectID: &task.ProjectID,
	})
}

// Mentioned notifies every user mentioned in a comment, except the author.
func (s *NotifyService) Mentioned(comment *models.Comment, task *models.Task) {
	for _, userID := range comment.Mentions {
		if userID == comment.AuthorID {
			continue
		}
		s.enqueue(&NotificationTask{
			UserID:    userID,
			Type:      models.NotificationMentioned,
			Title:     "You were mentioned",
			Message:   fmt.Sprintf("You were mentioned in a comment on %q", task.Title),
			TaskID:    &task.ID,
			ProjectID: &task.ProjectID,
		})
	}
}

// AddedToProject notifies a user who was added to a project by someone else.
func (s *NotifyService) AddedToProject(project *models.Project, userID, actorID string) {
	if userID == actorID {
		return
	}
	s.enqueue(&NotificationTask{
		UserID:    userID,
		Type:      models.NotificationAddedToProject,
		Title:     "Added to project",
		Message:   fmt.Sprintf("You were added to %q", project.Name),
		ProjectID: &project.ID,
	})
}

// DueReminder notifies the assignee that a task is due soon.
func (s *NotifyService) DueReminder(task *models.Task) {
	if task.AssigneeID == nil {
		return
	}
	s.enqueue(&NotificationTask{
		UserID:    *task.AssigneeID,
		Type:      models.NotificationDueReminder,
		Title:     "Task due soon",
		Message:   fmt.Sprintf("%q is due within 24 hours", task.Title),
		TaskID:    &task.ID,
		ProjectID: &task.ProjectID,
	})
}
