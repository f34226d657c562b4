package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

func seedNotification(t *testing.T, store storage.Store, userID, title string) *models.Notification {
	t.Helper()
	n := &models.Notification{UserID: userID, Type: models.NotificationMentioned, Title: title}
	if err := store.CreateNotification(context.Background(), n); err != nil {
		t.Fatalf("CreateNotification() error = %v", err)
	}
	return n
}

func TestNotificationMarkRead(t *testing.T) {
	store := newTestStore(t)
	h := NewNotificationHandler(store)

	user, _ := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	n := seedNotification(t, store, user.ID, "ping")

	r := gin.New()
	r.Use(asUser(user.ID))
	r.PUT("/api/notifications/:id/read", h.MarkRead)

	w := doJSON(t, r, "PUT", "/api/notifications/"+n.ID+"/read", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var marked models.Notification
	decodeData(t, w, &marked)
	if !marked.Read {
		t.Error("notification not marked read")
	}
}

func TestNotificationMarkRead_OtherUsersNotification(t *testing.T) {
	store := newTestStore(t)
	h := NewNotificationHandler(store)
	ctx := context.Background()

	alice, _ := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	bob, _ := seedUserWithOrg(t, store, "bob@example.com", "Bob")
	bobsNotification := seedNotification(t, store, bob.ID, "private")

	r := gin.New()
	r.Use(asUser(alice.ID))
	r.PUT("/api/notifications/:id/read", h.MarkRead)

	w := doJSON(t, r, "PUT", "/api/notifications/"+bobsNotification.ID+"/read", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}

	// Bob's notification is untouched.
	unread, err := store.ListNotificationsByUser(ctx, bob.ID, true)
	if err != nil {
		t.Fatalf("ListNotificationsByUser() error = %v", err)
	}
	if len(unread) != 1 {
		t.Errorf("bob's unread = %d, expected 1", len(unread))
	}
}

func TestNotificationList_UnreadFilter(t *testing.T) {
	store := newTestStore(t)
	h := NewNotificationHandler(store)
	ctx := context.Background()

	user, _ := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	read := seedNotification(t, store, user.ID, "old")
	seedNotification(t, store, user.ID, "new")
	if _, err := store.MarkNotificationRead(ctx, read.ID); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}

	r := gin.New()
	r.Use(asUser(user.ID))
	r.GET("/api/notifications", h.List)

	w := doJSON(t, r, "GET", "/api/notifications?unread=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var unread []models.Notification
	decodeData(t, w, &unread)
	if len(unread) != 1 || unread[0].Title != "new" {
		t.Errorf("unread = %+v", unread)
	}

	w = doJSON(t, r, "GET", "/api/notifications", nil)
	var all []models.Notification
	decodeData(t, w, &all)
	if len(all) != 2 {
		t.Errorf("all = %d, expected 2", len(all))
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	store := newTestStore(t)
	h := NewNotificationHandler(store)
	ctx := context.Background()

	user, _ := seedUserWithOrg(t, store, "alice@example.com", "Alice")
	seedNotification(t, store, user.ID, "one")
	seedNotification(t, store, user.ID, "two")

	r := gin.New()
	r.Use(asUser(user.ID))
	r.PUT("/api/notifications/read-all", h.MarkAllRead)

	w := doJSON(t, r, "PUT", "/api/notifications/read-all", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	unread, err := store.ListNotificationsByUser(ctx, user.ID, true)
	if err != nil {
		t.Fatalf("ListNotificationsByUser() error = %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("unread after mark-all = %d", len(unread))
	}
}
