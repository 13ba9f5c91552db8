package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchDashboardsCmd(),
		m.fetchUsersCmd(),
		m.loadSpinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.CurrentView == ViewForm {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit, "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.Refresh:
			return m.refreshTasks()
		case m.Keys.NewTask:
			m.openCreateForm()
			return m, nil
		case m.Keys.Edit:
			if task, ok := m.selectedTask(); ok {
				m.openEditForm(task)
			}
			return m, nil
		}

		if m.CurrentView == ViewDetail {
			return m.handleDetailKey(typed)
		}
		return m.handleBoardKey(typed)

	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case SelectDashboardMsg:
		return m.selectDashboard(typed.ID)

	case ToggleSortMsg:
		m.Sort.Toggle(typed.Field)
		m.Cursor = 0
		m.syncSelectedTaskToCursor()
		m.syncTableData()
		return m, nil

	case DashboardsLoadedMsg:
		m.Dashboards = DashboardCollection{Items: typed.Dashboards, Err: typed.Err}
		m.syncSpinner()
		if typed.Err != "" {
			m.Status = StatusBar{Text: typed.Err, IsError: true}
		}
		// Resolve the initial selection once dashboards are known and
		// kick off the matching task fetch.
		resolved := board.ResolveActiveID(m.ActiveDashboardID, m.Dashboards.Items)
		if resolved != "" && m.Tasks.DashboardID != resolved {
			m.ActiveDashboardID = resolved
			m.Tasks.Loading = true
			m.spinnerActive = true
			return m, m.fetchTasksCmd(resolved)
		}
		m.ActiveDashboardID = resolved
		return m, nil

	case TasksLoadedMsg:
		// Last write wins: whatever selection resolved most recently
		// becomes the cached collection.
		m.Tasks = TaskCollection{Items: typed.Tasks, DashboardID: typed.DashboardID, Err: typed.Err}
		m.syncSpinner()
		if typed.Err != "" {
			m.Status = StatusBar{Text: typed.Err, IsError: true}
		}
		if m.Cursor >= len(typed.Tasks) {
			m.Cursor = 0
		}
		m.syncSelectedTaskToCursor()
		m.syncTableData()
		return m, nil

	case UsersLoadedMsg:
		m.Users = UserCollection{Items: typed.Users, Err: typed.Err}
		m.syncSpinner()
		if typed.Err != "" {
			m.Status = StatusBar{Text: typed.Err, IsError: true}
		}
		return m, nil

	case SubmitFormMsg:
		return m.submitForm()

	case TaskSavedMsg:
		m.Form.Saving = false
		if typed.Err != "" {
			// Keep the form open and populated for correction.
			m.Form.ErrText = typed.Err
			m.Status = StatusBar{Text: typed.Err, IsError: true}
			return m, nil
		}
		m.CurrentView = ViewBoard
		if typed.Mode == FormModeCreate {
			m.Status = StatusBar{Text: "task created", IsError: false}
		} else {
			m.Status = StatusBar{Text: "task updated", IsError: false}
		}
		// The store is the source of truth: refresh instead of patching
		// the cached collection.
		m.Tasks.Loading = true
		m.spinnerActive = true
		return m, m.fetchTasksCmd(m.ActiveDashboardID)
	}

	return m, nil
}

// selectDashboard applies a dashboard selection. Re-selecting the
// active aggregate asks for fresh tasks; re-selecting any other active
// dashboard is a no-op.
func (m Model) selectDashboard(id string) (tea.Model, tea.Cmd) {
	if id == m.ActiveDashboardID {
		if id == model.AllDashboardID {
			m.Tasks.Loading = true
			m.spinnerActive = true
			m.Status = StatusBar{Text: "refreshing all dashboards", IsError: false}
			return m, m.fetchTasksCmd(id)
		}
		return m, nil
	}
	m.ActiveDashboardID = id
	m.Cursor = 0
	m.Tasks.Loading = true
	m.spinnerActive = true
	return m, m.fetchTasksCmd(id)
}

func (m Model) refreshTasks() (tea.Model, tea.Cmd) {
	m.Tasks.Loading = true
	m.spinnerActive = true
	m.Status = StatusBar{Text: "refreshing tasks", IsError: false}
	return m, m.fetchTasksCmd(m.ActiveDashboardID)
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewForm:
		leftPane = m.renderFormView()
		rightPane = m.renderHelpIfVisible()
	case ViewDetail:
		leftPane = m.renderBoardView()
		rightPane = m.renderDetailView() + m.renderHelpIfVisible()
	default:
		leftPane = m.renderBoardView()
		rightPane = m.renderDetailView() + m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	loading := ""
	if m.spinnerActive {
		loading = m.loadSpinner.View() + " loading"
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskdash | board: %s | selected: %s", m.activeDashboardName(), m.SelectedTaskID),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Loading:    loading,
		Footer: fmt.Sprintf(
			"keys: h/l boards | s/d/c sort | %s new | %s edit | %s refresh | / cmd | %s help | %s quit",
			m.Keys.NewTask, m.Keys.Edit, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit,
		),
	})
}

func (m Model) activeDashboardName() string {
	dir := board.NewDirectory(nil, m.Dashboards.Items)
	return dir.DashboardName(m.ActiveDashboardID)
}

// syncSpinner stops the loading spinner once nothing is in flight.
func (m *Model) syncSpinner() {
	m.spinnerActive = m.Tasks.Loading || m.Dashboards.Loading || m.Users.Loading
}

func isKnownView(v View) bool {
	switch v {
	case ViewBoard, ViewDetail, ViewForm:
		return true
	default:
		return false
	}
}
