// Package board narrows the task collection to the active dashboard
// and resolves entity IDs to display names for rendering.
package board

import "github.com/taskerhq/taskdash/internal/model"

// FilterByDashboard returns the tasks belonging to dashboardID, in
// their original relative order. The aggregate "all" selection (and an
// unresolved empty selection) passes the collection through untouched.
// The input slice is never mutated.
func FilterByDashboard(tasks []model.Task, dashboardID string) []model.Task {
	if dashboardID == "" || dashboardID == model.AllDashboardID {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.DashboardID == dashboardID {
			out = append(out, task)
		}
	}
	return out
}

// ResolveActiveID picks the dashboard the view should show. An explicit
// selection wins; otherwise the first real dashboard after the "all"
// aggregate is a sensible default; with nothing loaded yet the result
// is empty.
func ResolveActiveID(explicit string, dashboards []model.Dashboard) string {
	if explicit != "" {
		return explicit
	}
	for _, d := range dashboards {
		if d.ID != model.AllDashboardID {
			return d.ID
		}
	}
	if len(dashboards) > 0 {
		return model.AllDashboardID
	}
	return ""
}

// WithAllFirst returns the dashboard list with the synthetic aggregate
// entry prepended. An existing aggregate entry is moved to the front
// rather than duplicated.
func WithAllFirst(dashboards []model.Dashboard) []model.Dashboard {
	out := make([]model.Dashboard, 0, len(dashboards)+1)
	out = append(out, model.AllDashboard())
	for _, d := range dashboards {
		if d.ID == model.AllDashboardID {
			continue
		}
		out = append(out, d)
	}
	return out
}
