package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskerhq/taskdash/internal/commands"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/tasksort"
	"github.com/taskerhq/taskdash/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			m.Sort.Toggle(tasksort.Field(a.Column))
			m.Cursor = 0
			m.syncSelectedTaskToCursor()
			m.syncTableData()
			return commands.Result{Message: fmt.Sprintf("sort toggled on %s", a.Column)}, nil
		},
		Board: func(a commands.BoardArgs) (commands.Result, error) {
			id, ok := m.dashboardIDByName(a.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown dashboard: %s", a.Name),
				}
			}
			next, selectCmd := m.selectDashboard(id)
			m = next.(Model)
			followUp = selectCmd
			return commands.Result{Message: fmt.Sprintf("switched to board %s", a.Name)}, nil
		},
		Refresh: func() (commands.Result, error) {
			next, refreshCmd := m.refreshTasks()
			m = next.(Model)
			followUp = refreshCmd
			return commands.Result{Message: "refreshing tasks"}, nil
		},
		New: func(a commands.NewArgs) (commands.Result, error) {
			m.openCreateForm()
			m.Form.Data.Title = a.Title
			m.titleInput.SetValue(a.Title)
			return commands.Result{Message: fmt.Sprintf("new task form: %s", a.Title)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, followUp
}

// dashboardIDByName resolves a palette board argument. "all" and the
// aggregate's display name both hit the synthetic entry; everything
// else matches loaded dashboard names case-insensitively.
func (m Model) dashboardIDByName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if strings.EqualFold(trimmed, model.AllDashboardID) {
		return model.AllDashboardID, true
	}
	for _, d := range m.Dashboards.Items {
		if strings.EqualFold(d.Name, trimmed) || d.ID == trimmed {
			return d.ID, true
		}
	}
	return "", false
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderPalettePanel(views.PalettePanelData{
		InputView: m.commandInput.View(),
		Hint:      "commands: /sort <status|deadline|created> | /board <name> | /refresh | /new <title>",
	})
}
