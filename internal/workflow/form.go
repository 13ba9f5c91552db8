// Package workflow turns in-progress form state into normalized
// create/update payloads for the task store, enforcing the conditional
// approval and blocker rules before anything leaves the client.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskerhq/taskdash/internal/model"
)

var (
	ErrTitleRequired     = errors.New("workflow: task title is required")
	ErrDeadlineRequired  = errors.New("workflow: deadline is required")
	ErrDeadlineInvalid   = errors.New("workflow: deadline is not a valid date")
	ErrDashboardRequired = errors.New("workflow: dashboard is required")
	ErrApproverRequired  = errors.New("workflow: approver is required when approval is needed")
	ErrApproverUnknown   = errors.New("workflow: approver is not a known user")
)

// deadlineLayouts are the accepted deadline input formats: the
// datetime-local shape the form fields produce, plus full RFC 3339 and
// a bare date.
var deadlineLayouts = []string{"2006-01-02T15:04", time.RFC3339, "2006-01-02"}

// Form is the in-progress state of the create/edit surface. The
// RequireApproval and HasBlockers toggles gate the ApproverID and
// BlockedBy values: a toggle switched off leaves the underlying
// selection in place so nothing is lost while editing, and the stale
// value is stripped only at payload construction.
type Form struct {
	TaskID          string // empty while creating
	Title           string
	Description     string
	Deadline        string
	DashboardID     string
	ReporterID      string
	ApproverID      string
	RequireApproval bool
	HasBlockers     bool
	BlockedBy       []string
	Status          model.TaskStatus // update only
	AssignerID      string           // update only
}

// NewCreateForm opens a blank form for the acting user. Reporter and
// approver both default to the user's own identity; the approver can be
// overridden once approval is required.
func NewCreateForm(acting model.User) Form {
	return Form{
		ReporterID: acting.ID,
		ApproverID: acting.ID,
		Status:     model.StatusToDo,
	}
}

// NewEditForm pre-populates a form from an existing task. The blocker
// toggle reflects whether the task currently has blockers.
func NewEditForm(task model.Task) Form {
	return Form{
		TaskID:          task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Deadline:        formatDeadline(task.Deadline),
		DashboardID:     task.DashboardID,
		ReporterID:      task.ReporterID,
		ApproverID:      task.ApproverID,
		RequireApproval: task.ApproveStatus == model.ApproveNeedApproval,
		HasBlockers:     len(task.BlockedBy) > 0,
		BlockedBy:       append([]string(nil), task.BlockedBy...),
		Status:          task.Status,
		AssignerID:      task.AssignerID,
	}
}

// CreatePayload is the normalized body for the create collaborator.
type CreatePayload struct {
	Title         string
	Description   string
	Deadline      time.Time
	DashboardID   string
	ReporterID    string
	ApproveStatus model.ApproveStatus
	ApproverID    string // empty when approval is not required
	BlockedBy     []string
}

// UpdatePayload is the normalized body for the update collaborator. A
// nil BlockedBy means "clear the blocker list".
type UpdatePayload struct {
	TaskID        string
	Title         string
	Description   string
	Deadline      time.Time
	DashboardID   string
	ReporterID    string
	ApproveStatus model.ApproveStatus
	ApproverID    string
	BlockedBy     []string
	Status        model.TaskStatus
	AssignerID    string
}

// BuildCreate validates the form and produces a create payload. The
// approval toggle switched off forces ApproveStatus to approved and
// drops any stale approver; the blocker toggle switched off forces an
// empty blocker list regardless of leftover selections.
func (f Form) BuildCreate(knownUsers []model.User) (CreatePayload, error) {
	base, err := f.normalize(knownUsers)
	if err != nil {
		return CreatePayload{}, err
	}
	blockers := []string{}
	if f.HasBlockers {
		blockers = append(blockers, f.BlockedBy...)
	}
	return CreatePayload{
		Title:         base.title,
		Description:   strings.TrimSpace(f.Description),
		Deadline:      base.deadline,
		DashboardID:   f.DashboardID,
		ReporterID:    f.ReporterID,
		ApproveStatus: base.approveStatus,
		ApproverID:    base.approverID,
		BlockedBy:     blockers,
	}, nil
}

// BuildUpdate validates the form and produces an update payload. The
// blocker toggle switched off yields a nil list, which the store
// interprets as clearing the dependency set.
func (f Form) BuildUpdate(knownUsers []model.User) (UpdatePayload, error) {
	base, err := f.normalize(knownUsers)
	if err != nil {
		return UpdatePayload{}, err
	}
	var blockers []string
	if f.HasBlockers {
		blockers = append([]string{}, f.BlockedBy...)
	}
	return UpdatePayload{
		TaskID:        f.TaskID,
		Title:         base.title,
		Description:   strings.TrimSpace(f.Description),
		Deadline:      base.deadline,
		DashboardID:   f.DashboardID,
		ReporterID:    f.ReporterID,
		ApproveStatus: base.approveStatus,
		ApproverID:    base.approverID,
		BlockedBy:     blockers,
		Status:        f.Status,
		AssignerID:    f.AssignerID,
	}, nil
}

type normalized struct {
	title         string
	deadline      time.Time
	approveStatus model.ApproveStatus
	approverID    string
}

func (f Form) normalize(knownUsers []model.User) (normalized, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return normalized{}, ErrTitleRequired
	}
	if strings.TrimSpace(f.Deadline) == "" {
		return normalized{}, ErrDeadlineRequired
	}
	deadline, err := ParseDeadline(f.Deadline)
	if err != nil {
		return normalized{}, err
	}
	if strings.TrimSpace(f.DashboardID) == "" || f.DashboardID == model.AllDashboardID {
		return normalized{}, ErrDashboardRequired
	}

	out := normalized{title: title, deadline: deadline}
	if f.RequireApproval {
		approver := strings.TrimSpace(f.ApproverID)
		if approver == "" {
			return normalized{}, ErrApproverRequired
		}
		if !userKnown(knownUsers, approver) {
			return normalized{}, fmt.Errorf("%w: %q", ErrApproverUnknown, approver)
		}
		out.approveStatus = model.ApproveNeedApproval
		out.approverID = approver
		return out, nil
	}
	// Approval not required: the payload carries no approver even if a
	// stale selection is still sitting in the form.
	out.approveStatus = model.ApproveApproved
	out.approverID = ""
	return out, nil
}

// ParseDeadline parses a deadline in any accepted input format.
func ParseDeadline(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if out, err := time.Parse(layout, trimmed); err == nil {
			return out, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDeadlineInvalid, value)
}

func formatDeadline(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02T15:04")
}

func userKnown(users []model.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// GenericSubmitError is surfaced when the store rejects a mutation.
const GenericSubmitError = "An unexpected error occurred."

// SubmitErrorMessage is the user-facing message for a failed create or
// update. Validation problems get their own sentinel text before
// submission; anything the store rejects is reported uniformly, with
// the underlying error going to the log instead of the screen.
func SubmitErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return GenericSubmitError
}
