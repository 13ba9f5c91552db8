package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus        = errors.New("model: invalid task status")
	ErrInvalidApproveStatus = errors.New("model: invalid approve status")
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "to-do"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
	StatusCanceled   TaskStatus = "canceled"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusBlocked, StatusDone, StatusCanceled:
		return true
	default:
		return false
	}
}

// SortableStatuses is the fixed rank order used when sorting by status.
// review and blocked are valid statuses with no rank of their own; they
// sort as to-do.
var SortableStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusDone, StatusCanceled}

// StatusRank returns the position of s in the sortable order. Statuses
// outside the order rank as to-do.
func StatusRank(s TaskStatus) int {
	for i, known := range SortableStatuses {
		if s == known {
			return i
		}
	}
	return 0
}

// Label returns the display name used in the task table and forms.
func (s TaskStatus) Label() string {
	switch s {
	case StatusToDo:
		return "К выполнению"
	case StatusInProgress:
		return "В процессе"
	case StatusReview:
		return "На проверке"
	case StatusBlocked:
		return "Заблокирована"
	case StatusDone:
		return "Завершена"
	case StatusCanceled:
		return "Отменена"
	default:
		return string(s)
	}
}

type ApproveStatus string

const (
	ApproveNeedApproval ApproveStatus = "need-approval"
	ApproveInReview     ApproveStatus = "approval"
	ApproveApproved     ApproveStatus = "approved"
	ApproveRejected     ApproveStatus = "rejected"
)

func (a ApproveStatus) IsValid() bool {
	switch a {
	case ApproveNeedApproval, ApproveInReview, ApproveApproved, ApproveRejected:
		return true
	default:
		return false
	}
}

type Task struct {
	ID            string
	Title         string
	Description   string
	Status        TaskStatus
	ReporterID    string
	AssignerID    string
	ReviewerID    string
	ApproverID    string
	ApproveStatus ApproveStatus
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Deadline      time.Time
	DashboardID   string
	// BlockedBy lists task IDs that must complete before this one.
	// References are advisory: no cycle or existence checks are done.
	BlockedBy []string
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.ApproveStatus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidApproveStatus, t.ApproveStatus)
	}
	if strings.TrimSpace(t.ReporterID) == "" {
		return errors.New("model: task reporter is required")
	}
	if t.ApproveStatus == ApproveNeedApproval && strings.TrimSpace(t.ApproverID) == "" {
		return errors.New("model: approver is required when approval is needed")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Deadline.IsZero() {
		return errors.New("model: task deadline is required")
	}
	if strings.TrimSpace(t.DashboardID) == "" {
		return errors.New("model: task dashboard is required")
	}
	if t.DashboardID == AllDashboardID {
		return errors.New("model: task cannot belong to the aggregate dashboard")
	}
	for _, blocker := range t.BlockedBy {
		if blocker == t.ID {
			return errors.New("model: task cannot block itself")
		}
	}
	return nil
}
