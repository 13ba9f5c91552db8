package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/views"
	"github.com/taskerhq/taskdash/internal/workflow"
)

// Form focus slots, in traversal order. Status and assignee only exist
// while editing; the traversal skips them in create mode.
const (
	focusTitle = iota
	focusDescription
	focusDeadline
	focusDashboard
	focusApprovalToggle
	focusApprover
	focusBlockersToggle
	focusBlockers
	focusStatus
	focusAssignee
	focusSlotCount
)

func (m *Model) openCreateForm() {
	form := workflow.NewCreateForm(m.ActingUser)
	if m.ActiveDashboardID != "" && m.ActiveDashboardID != model.AllDashboardID {
		form.DashboardID = m.ActiveDashboardID
	}
	m.Form = FormState{Mode: FormModeCreate, Data: form}
	m.seedFormComponents()
	m.CurrentView = ViewForm
}

func (m *Model) openEditForm(task model.Task) {
	m.Form = FormState{Mode: FormModeEdit, Data: workflow.NewEditForm(task)}
	m.seedFormComponents()
	m.CurrentView = ViewForm
}

func (m *Model) seedFormComponents() {
	m.titleInput.SetValue(m.Form.Data.Title)
	m.descArea.SetValue(m.Form.Data.Description)
	m.deadlineInput.SetValue(m.Form.Data.Deadline)
	m.Form.Focus = focusTitle
	m.Form.Choice = 0
	m.titleInput.Focus()
	m.descArea.Blur()
	m.deadlineInput.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewBoard
		m.Form = FormState{}
		m.Status = StatusBar{Text: "form discarded", IsError: false}
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		m.moveFormFocus(delta)
		return m, nil
	}

	switch m.Form.Focus {
	case focusTitle:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.Form.Data.Title = m.titleInput.Value()
		return m, cmd
	case focusDescription:
		var cmd tea.Cmd
		m.descArea, cmd = m.descArea.Update(msg)
		m.Form.Data.Description = m.descArea.Value()
		return m, cmd
	case focusDeadline:
		var cmd tea.Cmd
		m.deadlineInput, cmd = m.deadlineInput.Update(msg)
		m.Form.Data.Deadline = m.deadlineInput.Value()
		return m, cmd
	default:
		m.handleChoiceKey(msg.String())
		return m, nil
	}
}

func (m *Model) moveFormFocus(delta int) {
	slots := focusSlotCount
	if m.Form.Mode == FormModeCreate {
		slots = focusStatus
	}
	m.Form.Focus = (m.Form.Focus + delta + slots) % slots
	m.Form.Choice = 0

	m.titleInput.Blur()
	m.descArea.Blur()
	m.deadlineInput.Blur()
	switch m.Form.Focus {
	case focusTitle:
		m.titleInput.Focus()
	case focusDescription:
		m.descArea.Focus()
	case focusDeadline:
		m.deadlineInput.Focus()
	}
}

// handleChoiceKey drives the non-text slots: h/l cycle the candidate,
// space commits toggles and the blocker multi-select.
func (m *Model) handleChoiceKey(keyName string) {
	switch m.Form.Focus {
	case focusDashboard:
		options := m.realDashboards()
		if id, ok := cycleChoice(keyName, &m.Form.Choice, len(options)); ok {
			m.Form.Data.DashboardID = options[id].ID
		}
	case focusApprovalToggle:
		if keyName == " " || keyName == "space" || keyName == "enter" {
			m.Form.Data.RequireApproval = !m.Form.Data.RequireApproval
		}
	case focusApprover:
		options := m.Users.Items
		if id, ok := cycleChoice(keyName, &m.Form.Choice, len(options)); ok {
			m.Form.Data.ApproverID = options[id].ID
		}
	case focusBlockersToggle:
		if keyName == " " || keyName == "space" || keyName == "enter" {
			m.Form.Data.HasBlockers = !m.Form.Data.HasBlockers
		}
	case focusBlockers:
		options := m.blockerCandidates()
		if len(options) == 0 {
			return
		}
		if keyName == " " || keyName == "space" || keyName == "enter" {
			if m.Form.Choice < len(options) {
				m.toggleBlocker(options[m.Form.Choice].ID)
			}
			return
		}
		cycleChoice(keyName, &m.Form.Choice, len(options))
	case focusStatus:
		options := allStatuses()
		if id, ok := cycleChoice(keyName, &m.Form.Choice, len(options)); ok {
			m.Form.Data.Status = options[id]
		}
	case focusAssignee:
		options := m.Users.Items
		if id, ok := cycleChoice(keyName, &m.Form.Choice, len(options)); ok {
			m.Form.Data.AssignerID = options[id].ID
		}
	}
}

// cycleChoice moves idx through n options on h/l and reports the new
// index when a selection changed.
func cycleChoice(keyName string, idx *int, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	switch keyName {
	case "l", "right":
		*idx = (*idx + 1) % n
		return *idx, true
	case "h", "left":
		*idx = (*idx - 1 + n) % n
		return *idx, true
	}
	return 0, false
}

func (m Model) realDashboards() []model.Dashboard {
	out := make([]model.Dashboard, 0, len(m.Dashboards.Items))
	for _, d := range m.Dashboards.Items {
		if d.ID != model.AllDashboardID {
			out = append(out, d)
		}
	}
	return out
}

// blockerCandidates lists the tasks a blocker can point at: everything
// loaded except the task being edited.
func (m Model) blockerCandidates() []model.Task {
	out := make([]model.Task, 0, len(m.Tasks.Items))
	for _, t := range m.Tasks.Items {
		if t.ID == m.Form.Data.TaskID {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (m *Model) toggleBlocker(taskID string) {
	for i, id := range m.Form.Data.BlockedBy {
		if id == taskID {
			m.Form.Data.BlockedBy = append(m.Form.Data.BlockedBy[:i], m.Form.Data.BlockedBy[i+1:]...)
			return
		}
	}
	m.Form.Data.BlockedBy = append(m.Form.Data.BlockedBy, taskID)
}

func allStatuses() []model.TaskStatus {
	return []model.TaskStatus{
		model.StatusToDo,
		model.StatusInProgress,
		model.StatusReview,
		model.StatusBlocked,
		model.StatusDone,
		model.StatusCanceled,
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.Form.Data.Title = m.titleInput.Value()
	m.Form.Data.Description = m.descArea.Value()
	m.Form.Data.Deadline = m.deadlineInput.Value()

	switch m.Form.Mode {
	case FormModeEdit:
		payload, err := m.Form.Data.BuildUpdate(m.Users.Items)
		if err != nil {
			m.Form.ErrText = err.Error()
			return m, nil
		}
		m.Form.ErrText = ""
		m.Form.Saving = true
		return m, m.updateTaskCmd(payload)
	default:
		payload, err := m.Form.Data.BuildCreate(m.Users.Items)
		if err != nil {
			m.Form.ErrText = err.Error()
			return m, nil
		}
		m.Form.ErrText = ""
		m.Form.Saving = true
		return m, m.createTaskCmd(payload)
	}
}

func (m Model) renderFormView() string {
	dir := board.NewDirectory(m.Users.Items, m.Dashboards.Items)

	blockerLabels := make([]string, 0, len(m.Form.Data.BlockedBy))
	for _, id := range m.Form.Data.BlockedBy {
		blockerLabels = append(blockerLabels, id)
	}

	candidate := ""
	switch m.Form.Focus {
	case focusDashboard:
		if opts := m.realDashboards(); len(opts) > 0 && m.Form.Choice < len(opts) {
			candidate = opts[m.Form.Choice].Name
		}
	case focusApprover, focusAssignee:
		if opts := m.Users.Items; len(opts) > 0 && m.Form.Choice < len(opts) {
			candidate = opts[m.Form.Choice].FullName()
		}
	case focusBlockers:
		if opts := m.blockerCandidates(); len(opts) > 0 && m.Form.Choice < len(opts) {
			candidate = fmt.Sprintf("%s (%s)", opts[m.Form.Choice].Title, opts[m.Form.Choice].ID)
		}
	case focusStatus:
		if opts := allStatuses(); m.Form.Choice < len(opts) {
			candidate = opts[m.Form.Choice].Label()
		}
	}

	return views.RenderFormPanel(views.FormPanelData{
		Mode:            string(m.Form.Mode),
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descArea.View(),
		DeadlineView:    m.deadlineInput.View(),
		Dashboard:       dir.DashboardName(m.Form.Data.DashboardID),
		Reporter:        dir.UserName(m.Form.Data.ReporterID),
		RequireApproval: m.Form.Data.RequireApproval,
		Approver:        dir.UserName(m.Form.Data.ApproverID),
		HasBlockers:     m.Form.Data.HasBlockers,
		Blockers:        blockerLabels,
		Status:          m.Form.Data.Status.Label(),
		Assignee:        dir.UserName(m.Form.Data.AssignerID),
		FocusSlot:       m.Form.Focus,
		Candidate:       candidate,
		ErrText:         m.Form.ErrText,
		Saving:          m.Form.Saving,
		EditMode:        m.Form.Mode == FormModeEdit,
	})
}
