package storage

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
)

// Task sort fields accepted by SearchTasks.
const (
	SortByCreatedAt = "created_at"
	SortByDueDate   = "due_date"
	SortByPriority  = "priority"
	SortByStatus    = "status"
	SortByOrder     = "order"
)

// TaskFilter selects tasks for SearchTasks. ProjectIDs is the tenant scope
// and must be resolved from the caller's memberships before searching; an
// empty ProjectIDs matches nothing.
type TaskFilter struct {
	ProjectIDs  []string
	Statuses    []string
	Priorities  []string
	AssigneeIDs []string
	ParentID    *string
	Query       string // case-insensitive title substring
	DueFrom     *time.Time
	DueTo       *time.Time
	SortBy      string // one of the SortBy* constants; created_at if empty
	SortDesc    bool
	Limit       int
	Offset      int
}

// TaskPage is a page of search results. Total counts all rows matching the
// filter before limit/offset is applied.
type TaskPage struct {
	Items []models.Task `json:"items"`
	Total int64         `json:"total"`
}

// DashboardStats aggregates a user's workload across their accessible
// projects. All fields are zero when the user has no projects.
type DashboardStats struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	OverdueTasks    int64 `json:"overdueTasks"`
	TotalTimeLogged int64 `json:"totalTimeLogged"` // seconds
	ProjectCount    int64 `json:"projectCount"`
}

// Patch types carry partial updates. A nil field is left unchanged. For
// optional reference fields (*string) a non-nil empty string clears the
// value; for optional dates a non-nil zero time clears it.

type UserPatch struct {
	Name     *string
	Avatar   *string
	Password *string
	Seeded   *bool
}

type OrganizationPatch struct {
	Name         *string
	ContactEmail *string
	Address      *string
}

type ProjectPatch struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	AssigneeID   *string
	ReviewerID   *string
	TesterID     *string
	StartDate    *time.Time
	DueDate      *time.Time
	DeliveryRole *string
	MilestoneID  *string
	Order        *int
	ParentID     *string
}

type MilestonePatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

type TimeLogPatch struct {
	Approved *bool
}

// Store is the single persistence contract. Exactly one implementation — the
// relational (sqlstore) or the document (mongostore) backend — is constructed
// at startup and injected into every caller; results have the same shape
// regardless of backend, differing only in id format.
//
// Create methods fill in the generated id and timestamps on the passed
// entity. Get methods return ErrNotFound for missing or malformed ids.
// Update methods return the updated entity or ErrNotFound. Delete methods are
// idempotent and cascade as documented per entity.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error)

	// Organizations. CreateOrganization also inserts the owner as the
	// organization's first admin member.
	CreateOrganization(ctx context.Context, org *models.Organization) error
	GetOrganization(ctx context.Context, id string) (*models.Organization, error)
	ListOrganizationsByUser(ctx context.Context, userID string) ([]models.Organization, error)
	UpdateOrganization(ctx context.Context, id string, patch OrganizationPatch) (*models.Organization, error)

	// EnsureWorkspace is idempotent: it returns the first organization the
	// user already belongs to, or creates one named after the user with the
	// user as sole admin member. Concurrent calls for the same new user may
	// race; last write wins and both callers get a valid organization.
	EnsureWorkspace(ctx context.Context, user *models.User) (*models.Organization, error)

	// Organization members. Add is idempotent per (org, user).
	AddOrganizationMember(ctx context.Context, member *models.OrganizationMember) (*models.OrganizationMember, error)
	ListOrganizationMembers(ctx context.Context, orgID string) ([]models.OrganizationMemberInfo, error)
	RemoveOrganizationMember(ctx context.Context, orgID, userID string) error

	// Projects. CreateProject derives a unique slug from the name. Deleting
	// a project cascades to its tasks (with their time logs and comments),
	// milestones and project members.
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjectsByOrganization(ctx context.Context, orgID string) ([]models.Project, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Project members. Add is idempotent per (project, user).
	AddProjectMember(ctx context.Context, member *models.ProjectMember) (*models.ProjectMember, error)
	ListProjectMembers(ctx context.Context, projectID string) ([]models.ProjectMemberInfo, error)
	RemoveProjectMember(ctx context.Context, projectID, userID string) error

	// Authorization primitives consumed by the thin authz layer above
	// storage.
	IsUserInProject(ctx context.Context, userID, projectID string) (bool, error)
	CanUserAccessTask(ctx context.Context, userID, taskID string) (bool, error)

	// Tasks. CreateTask derives a unique slug from the title. Deleting a
	// task cascades to its time logs and comments.
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	SearchTasks(ctx context.Context, filter TaskFilter) (*TaskPage, error)
	ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)

	// Milestones. Delete does not cascade to tasks.
	CreateMilestone(ctx context.Context, milestone *models.Milestone) error
	GetMilestone(ctx context.Context, id string) (*models.Milestone, error)
	ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, id string, patch MilestonePatch) (*models.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error

	// Time logs. GetActiveTimeLog returns the user's running log (nil
	// EndTime) or ErrNotFound. StopTimeLog sets the end time and computes
	// Duration = end - start in seconds.
	CreateTimeLog(ctx context.Context, log *models.TimeLog) error
	GetTimeLog(ctx context.Context, id string) (*models.TimeLog, error)
	GetActiveTimeLog(ctx context.Context, userID string) (*models.TimeLog, error)
	StopTimeLog(ctx context.Context, id string, end time.Time) (*models.TimeLog, error)
	ListTimeLogsByTask(ctx context.Context, taskID string) ([]models.TimeLog, error)
	ListTimeLogsByUser(ctx context.Context, userID string) ([]models.TimeLog, error)
	UpdateTimeLog(ctx context.Context, id string, patch TimeLogPatch) (*models.TimeLog, error)
	DeleteTimeLog(ctx context.Context, id string) error

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByTask(ctx context.Context, taskID string) ([]models.Comment, error)

	// Notifications
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error

	// Invitations
	CreateInvitation(ctx context.Context, invitation *models.Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error)
	ListInvitationsByOrganization(ctx context.Context, orgID string) ([]models.Invitation, error)
	UpdateInvitationStatus(ctx context.Context, id, status string) (*models.Invitation, error)

	// Dashboard
	GetDashboardStats(ctx context.Context, userID string) (*DashboardStats, error)

	Close(ctx context.Context) error
}
