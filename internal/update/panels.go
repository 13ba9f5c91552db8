package update

import (
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/views"
)

func (m Model) renderBoardView() string {
	dir := board.NewDirectory(m.Users.Items, m.Dashboards.Items)

	tabs := make([]views.DashboardTabData, 0, len(m.Dashboards.Items))
	for _, d := range m.Dashboards.Items {
		tabs = append(tabs, views.DashboardTabData{
			Name:   d.Name,
			Active: d.ID == m.ActiveDashboardID,
		})
	}

	visible := m.visibleTasks()
	return views.RenderBoardPanel(views.BoardPanelData{
		Tabs:       tabs,
		TableView:  m.taskTable.View(),
		TaskCount:  len(visible),
		Loading:    m.Tasks.Loading,
		ErrText:    m.Tasks.Err,
		Directory:  dir.DashboardName(m.ActiveDashboardID),
		SortActive: m.Sort.Active(),
	})
}

func (m Model) renderDetailView() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{Empty: true})
	}
	dir := board.NewDirectory(m.Users.Items, m.Dashboards.Items)
	return views.RenderDetailPanel(views.DetailPanelData{
		Title:        task.Title,
		Status:       task.Status.Label(),
		Dashboard:    dir.DashboardName(task.DashboardID),
		Reporter:     dir.UserName(task.ReporterID),
		Deadline:     task.Deadline.Format("2006-01-02 15:04"),
		ViewportView: m.detailViewport.View(),
	})
}
