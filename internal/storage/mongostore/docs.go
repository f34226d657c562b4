package mongostore

import (
	"time"

	"github.com/planbase/planbase/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document shapes. The internal _id is an ObjectID; it is renamed to the
// public string id field when converting back to the entity model, so callers
// observe the same shape on both backends. Relations are stored as plain
// string ids.

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Password  string             `bson:"password"`
	Avatar    string             `bson:"avatar,omitempty"`
	Seeded    bool               `bson:"seeded"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newUserDoc(u *models.User) *userDoc {
	return &userDoc{
		ID:        primitive.NewObjectID(),
		Email:     u.Email,
		Name:      u.Name,
		Password:  u.Password,
		Avatar:    u.Avatar,
		Seeded:    u.Seeded,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d *userDoc) model() models.User {
	return models.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Password:  d.Password,
		Avatar:    d.Avatar,
		Seeded:    d.Seeded,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type organizationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	ContactEmail string             `bson:"contact_email,omitempty"`
	Address      string             `bson:"address,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newOrganizationDoc(o *models.Organization) *organizationDoc {
	return &organizationDoc{
		ID:           primitive.NewObjectID(),
		Name:         o.Name,
		ContactEmail: o.ContactEmail,
		Address:      o.Address,
		OwnerID:      o.OwnerID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (d *organizationDoc) model() models.Organization {
	return models.Organization{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		ContactEmail: d.ContactEmail,
		Address:      d.Address,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type orgMemberDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OrganizationID string             `bson:"organization_id"`
	UserID         string             `bson:"user_id"`
	Role           string             `bson:"role"`
	JoinedAt       time.Time          `bson:"joined_at"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func newOrgMemberDoc(m *models.OrganizationMember) *orgMemberDoc {
	return &orgMemberDoc{
		ID:             primitive.NewObjectID(),
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           m.Role,
		JoinedAt:       m.JoinedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (d *orgMemberDoc) model() models.OrganizationMember {
	return models.OrganizationMember{
		ID:             d.ID.Hex(),
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		Role:           d.Role,
		JoinedAt:       d.JoinedAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type projectDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Slug           string             `bson:"slug"`
	Description    string             `bson:"description,omitempty"`
	OrganizationID string             `bson:"organization_id"`
	IsPrivate      bool               `bson:"is_private"`
	CreatedBy      string             `bson:"created_by,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func newProjectDoc(p *models.Project) *projectDoc {
	return &projectDoc{
		ID:             primitive.NewObjectID(),
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		OrganizationID: p.OrganizationID,
		IsPrivate:      p.IsPrivate,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d *projectDoc) model() models.Project {
	return models.Project{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Slug:           d.Slug,
		Description:    d.Description,
		OrganizationID: d.OrganizationID,
		IsPrivate:      d.IsPrivate,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type projectMemberDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID string             `bson:"project_id"`
	UserID    string             `bson:"user_id"`
	Role      string             `bson:"role"`
	AddedAt   time.Time          `bson:"added_at"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newProjectMemberDoc(m *models.ProjectMember) *projectMemberDoc {
	return &projectMemberDoc{
		ID:        primitive.NewObjectID(),
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      m.Role,
		AddedAt:   m.AddedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (d *projectMemberDoc) model() models.ProjectMember {
	return models.ProjectMember{
		ID:        d.ID.Hex(),
		ProjectID: d.ProjectID,
		UserID:    d.UserID,
		Role:      d.Role,
		AddedAt:   d.AddedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type taskDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	ProjectID    string             `bson:"project_id"`
	Status       string             `bson:"status"`
	Priority     string             `bson:"priority"`
	AssigneeID   *string            `bson:"assignee_id,omitempty"`
	ReviewerID   *string            `bson:"reviewer_id,omitempty"`
	TesterID     *string            `bson:"tester_id,omitempty"`
	StartDate    *time.Time         `bson:"start_date,omitempty"`
	DueDate      *time.Time         `bson:"due_date,omitempty"`
	DeliveryRole string             `bson:"delivery_role,omitempty"`
	MilestoneID  *string            `bson:"milestone_id,omitempty"`
	Slug         string             `bson:"slug"`
	Order        int                `bson:"order"`
	ParentID     *string            `bson:"parent_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newTaskDoc(t *models.Task) *taskDoc {
	return &taskDoc{
		ID:           primitive.NewObjectID(),
		Title:        t.Title,
		Description:  t.Description,
		ProjectID:    t.ProjectID,
		Status:       t.Status,
		Priority:     t.Priority,
		AssigneeID:   t.AssigneeID,
		ReviewerID:   t.ReviewerID,
		TesterID:     t.TesterID,
		StartDate:    t.StartDate,
		DueDate:      t.DueDate,
		DeliveryRole: t.DeliveryRole,
		MilestoneID:  t.MilestoneID,
		Slug:         t.Slug,
		Order:        t.Order,
		ParentID:     t.ParentID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d *taskDoc) model() models.Task {
	return models.Task{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ProjectID:    d.ProjectID,
		Status:       d.Status,
		Priority:     d.Priority,
		AssigneeID:   d.AssigneeID,
		ReviewerID:   d.ReviewerID,
		TesterID:     d.TesterID,
		StartDate:    d.StartDate,
		DueDate:      d.DueDate,
		DeliveryRole: d.DeliveryRole,
		MilestoneID:  d.MilestoneID,
		Slug:         d.Slug,
		Order:        d.Order,
		ParentID:     d.ParentID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type milestoneDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	ProjectID   string             `bson:"project_id"`
	Status      string             `bson:"status"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newMilestoneDoc(m *models.Milestone) *milestoneDoc {
	return &milestoneDoc{
		ID:          primitive.NewObjectID(),
		Title:       m.Title,
		Description: m.Description,
		ProjectID:   m.ProjectID,
		Status:      m.Status,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (d *milestoneDoc) model() models.Milestone {
	return models.Milestone{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		ProjectID:   d.ProjectID,
		Status:      d.Status,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type timeLogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    string             `bson:"task_id"`
	UserID    string             `bson:"user_id"`
	StartTime time.Time          `bson:"start_time"`
	EndTime   *time.Time         `bson:"end_time,omitempty"`
	Duration  *int64             `bson:"duration,omitempty"`
	Approved  bool               `bson:"approved"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newTimeLogDoc(l *models.TimeLog) *timeLogDoc {
	return &timeLogDoc{
		ID:        primitive.NewObjectID(),
		TaskID:    l.TaskID,
		UserID:    l.UserID,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
		Duration:  l.Duration,
		Approved:  l.Approved,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (d *timeLogDoc) model() models.TimeLog {
	return models.TimeLog{
		ID:        d.ID.Hex(),
		TaskID:    d.TaskID,
		UserID:    d.UserID,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Duration:  d.Duration,
		Approved:  d.Approved,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    string             `bson:"task_id"`
	AuthorID  string             `bson:"author_id"`
	Content   string             `bson:"content"`
	Mentions  []string           `bson:"mentions,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newCommentDoc(c *models.Comment) *commentDoc {
	return &commentDoc{
		ID:        primitive.NewObjectID(),
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		Mentions:  c.Mentions,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d *commentDoc) model() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		TaskID:    d.TaskID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		Mentions:  d.Mentions,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type notificationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Type      string             `bson:"type"`
	Title     string             `bson:"title,omitempty"`
	Message   string             `bson:"message,omitempty"`
	Read      bool               `bson:"read"`
	TaskID    *string            `bson:"task_id,omitempty"`
	ProjectID *string            `bson:"project_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newNotificationDoc(n *models.Notification) *notificationDoc {
	return &notificationDoc{
		ID:        primitive.NewObjectID(),
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		TaskID:    n.TaskID,
		ProjectID: n.ProjectID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (d *notificationDoc) model() models.Notification {
	return models.Notification{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Type:      d.Type,
		Title:     d.Title,
		Message:   d.Message,
		Read:      d.Read,
		TaskID:    d.TaskID,
		ProjectID: d.ProjectID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type invitationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	Role           string             `bson:"role"`
	OrganizationID *string            `bson:"organization_id,omitempty"`
	ProjectID      *string            `bson:"project_id,omitempty"`
	InvitedBy      string             `bson:"invited_by"`
	Token          string             `bson:"token,omitempty"`
	Status         string             `bson:"status"`
	ExpiresAt      time.Time          `bson:"expires_at"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func newInvitationDoc(i *models.Invitation) *invitationDoc {
	return &invitationDoc{
		ID:             primitive.NewObjectID(),
		Email:          i.Email,
		Role:           i.Role,
		OrganizationID: i.OrganizationID,
		ProjectID:      i.ProjectID,
		InvitedBy:      i.InvitedBy,
		Token:          i.Token,
		Status:         i.Status,
		ExpiresAt:      i.ExpiresAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func (d *invitationDoc) model() models.Invitation {
	return models.Invitation{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		Role:           d.Role,
		OrganizationID: d.OrganizationID,
		ProjectID:      d.ProjectID,
		InvitedBy:      d.InvitedBy,
		Token:          d.Token,
		Status:         d.Status,
		ExpiresAt:      d.ExpiresAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
