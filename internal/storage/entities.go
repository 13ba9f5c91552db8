package storage

import (
	"time"

	"github.com/taskerhq/taskdash/internal/model"
)

type Task struct {
	ID            string
	Title         string
	Description   string
	Status        string
	ReporterID    string
	AssignerID    string
	ReviewerID    string
	ApproverID    string
	ApproveStatus string
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Deadline      time.Time
	DashboardID   string
	BlockedBy     []string
}

type Dashboard struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type User struct {
	ID         string
	Name       string
	Surname    string
	Middlename string
	Login      string
	RoleID     int
}

func (t Task) ToModel() model.Task {
	return model.Task{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        model.TaskStatus(t.Status),
		ReporterID:    t.ReporterID,
		AssignerID:    t.AssignerID,
		ReviewerID:    t.ReviewerID,
		ApproverID:    t.ApproverID,
		ApproveStatus: model.ApproveStatus(t.ApproveStatus),
		CreatedAt:     t.CreatedAt,
		StartedAt:     t.StartedAt,
		CompletedAt:   t.CompletedAt,
		Deadline:      t.Deadline,
		DashboardID:   t.DashboardID,
		BlockedBy:     t.BlockedBy,
	}
}

func (d Dashboard) ToModel() model.Dashboard {
	return model.Dashboard{ID: d.ID, Name: d.Name}
}

func (u User) ToModel() model.User {
	return model.User{
		ID:         u.ID,
		Name:       u.Name,
		Surname:    u.Surname,
		Middlename: u.Middlename,
		Login:      u.Login,
		RoleID:     u.RoleID,
	}
}

func TasksToModel(in []Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		out = append(out, t.ToModel())
	}
	return out
}

func DashboardsToModel(in []Dashboard) []model.Dashboard {
	out := make([]model.Dashboard, 0, len(in))
	for _, d := range in {
		out = append(out, d.ToModel())
	}
	return out
}

func UsersToModel(in []User) []model.User {
	out := make([]model.User, 0, len(in))
	for _, u := range in {
		out = append(out, u.ToModel())
	}
	return out
}
