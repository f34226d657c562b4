package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/internal/storage/sqlstore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	s := sqlstore.New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

// asUser injects the authenticated user, standing in for the JWT middleware.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func newNotify(store storage.Store) (*services.NotifyService, *services.SyncQueue) {
	queue := services.NewSyncQueue()
	return services.NewNotifyService(store, queue), queue
}

func seedUserWithOrg(t *testing.T, store storage.Store, email, name string) (*models.User, *models.Organization) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: email, Name: name, Password: "hash"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", email, err)
	}
	org, err := store.EnsureWorkspace(ctx, user)
	if err != nil {
		t.Fatalf("EnsureWorkspace() error = %v", err)
	}
	return user, org
}

func seedProject(t *testing.T, store storage.Store, org *models.Organization, creator *models.User, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, OrganizationID: org.ID, CreatedBy: creator.ID}
	if err := store.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("CreateProject(%s) error = %v", name, err)
	}
	return project
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response wrapper with Data left raw.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v (body %s)", err, w.Body.String())
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
}
