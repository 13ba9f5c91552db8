package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskerhq/taskdash/internal/tasksort"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		visible := m.visibleTasks()
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
		m.syncSelectedTaskToCursor()
		m.syncTableData()
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectedTaskToCursor()
		m.syncTableData()
		return m, nil
	case "s":
		return m.Update(ToggleSortMsg{Field: tasksort.FieldStatus})
	case "d":
		return m.Update(ToggleSortMsg{Field: tasksort.FieldDeadline})
	case "c":
		return m.Update(ToggleSortMsg{Field: tasksort.FieldCreated})
	case "h", "left":
		return m.Update(SelectDashboardMsg{ID: m.neighborDashboardID(-1)})
	case "l", "right":
		return m.Update(SelectDashboardMsg{ID: m.neighborDashboardID(1)})
	case "enter":
		if _, ok := m.selectedTask(); ok {
			m.syncSelectedTaskToCursor()
			m.CurrentView = ViewDetail
			m.syncTableData()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.CurrentView = ViewBoard
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// neighborDashboardID walks the loaded dashboard list relative to the
// active selection. The list always starts with the aggregate, so the
// walk wraps around it.
func (m Model) neighborDashboardID(delta int) string {
	items := m.Dashboards.Items
	if len(items) == 0 {
		return m.ActiveDashboardID
	}
	current := 0
	for i, d := range items {
		if d.ID == m.ActiveDashboardID {
			current = i
			break
		}
	}
	next := (current + delta + len(items)) % len(items)
	return items[next].ID
}
