package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/tasksort"
	"github.com/taskerhq/taskdash/internal/views"
)

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Title", Width: 26},
		{Title: "Status", Width: 14},
		{Title: "Deadline", Width: 16},
		{Title: "Created", Width: 16},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.deadlineInput = textinput.New()
	m.deadlineInput.Prompt = "deadline> "
	m.deadlineInput.Placeholder = "2006-01-02T15:04"
	m.deadlineInput.CharLimit = 32
	m.deadlineInput.Width = 24

	m.descArea = textarea.New()
	m.descArea.SetWidth(54)
	m.descArea.SetHeight(6)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "Task description (markdown)"

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 12)
}

// visibleTasks filters by the active dashboard, then applies the sort
// state. Filtering always happens before sorting.
func (m Model) visibleTasks() []model.Task {
	filtered := board.FilterByDashboard(m.Tasks.Items, m.ActiveDashboardID)
	return m.Sort.Sorted(filtered)
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) syncSelectedTaskToCursor() {
	if task, ok := m.selectedTask(); ok {
		m.SelectedTaskID = task.ID
	} else {
		m.SelectedTaskID = ""
	}
}

// syncTableData rebuilds the task table rows and headers from the
// current collection, sort state, and cursor.
func (m *Model) syncTableData() {
	visible := m.visibleTasks()

	cols := []table.Column{
		{Title: "Title", Width: 26},
		{Title: fmt.Sprintf("Status %s", tasksort.Indicator(m.Sort, tasksort.FieldStatus)), Width: 14},
		{Title: fmt.Sprintf("Deadline %s", tasksort.Indicator(m.Sort, tasksort.FieldDeadline)), Width: 16},
		{Title: fmt.Sprintf("Created %s", tasksort.Indicator(m.Sort, tasksort.FieldCreated)), Width: 16},
	}

	rows := make([]table.Row, 0, len(visible))
	for _, task := range visible {
		rows = append(rows, table.Row{
			task.Title,
			task.Status.Label(),
			task.Deadline.Format("2006-01-02 15:04"),
			task.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	m.taskTable.SetColumns(cols)
	m.taskTable.SetRows(rows)
	if len(rows) > 0 && m.Cursor < len(rows) {
		m.taskTable.SetCursor(m.Cursor)
	}

	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if task, ok := m.selectedTask(); ok {
		m.detailViewport.SetContent(views.RenderMarkdown(m.detailMarkdown(task)))
	} else {
		m.detailViewport.SetContent("")
	}
}

func (m Model) detailMarkdown(task model.Task) string {
	dir := board.NewDirectory(m.Users.Items, m.Dashboards.Items)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", task.Title)
	fmt.Fprintf(&b, "- Status: %s\n", task.Status.Label())
	fmt.Fprintf(&b, "- Dashboard: %s\n", dir.DashboardName(task.DashboardID))
	fmt.Fprintf(&b, "- Reporter: %s\n", dir.UserName(task.ReporterID))
	if task.AssignerID != "" {
		fmt.Fprintf(&b, "- Assignee: %s\n", dir.UserName(task.AssignerID))
	}
	if task.ApproveStatus == model.ApproveNeedApproval || task.ApproverID != "" {
		fmt.Fprintf(&b, "- Approver: %s (%s)\n", dir.UserName(task.ApproverID), task.ApproveStatus)
	}
	fmt.Fprintf(&b, "- Deadline: %s\n", task.Deadline.Format("2006-01-02 15:04"))
	if len(task.BlockedBy) > 0 {
		fmt.Fprintf(&b, "- Blocked by: %s\n", strings.Join(task.BlockedBy, ", "))
	}
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(&b, "\n%s\n", task.Description)
	}
	return b.String()
}
