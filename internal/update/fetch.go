package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/storage"
	"github.com/taskerhq/taskdash/internal/workflow"
)

const fetchTimeout = 5 * time.Second

func (m Model) fetchDashboardsCmd() tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		raw, err := repo.ListDashboards(ctx)
		if err != nil {
			log.Error().Err(err).Msg("fetch dashboards failed")
			// Even a failed fetch keeps the aggregate entry around so
			// the view stays navigable.
			return DashboardsLoadedMsg{Dashboards: board.WithAllFirst(nil), Err: err.Error()}
		}
		return DashboardsLoadedMsg{Dashboards: board.WithAllFirst(storage.DashboardsToModel(raw))}
	}
}

// fetchTasksCmd loads the task collection for the given selection.
// Exactly one fetch path is active per selection: the aggregate (or an
// unresolved selection) loads everything, a concrete dashboard loads
// its own subset.
func (m Model) fetchTasksCmd(dashboardID string) tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var raw []storage.Task
		var err error
		if dashboardID == "" || dashboardID == model.AllDashboardID {
			raw, err = repo.ListTasks(ctx)
		} else {
			raw, err = repo.ListTasksByDashboard(ctx, dashboardID)
		}
		if err != nil {
			log.Error().Err(err).Str("dashboard", dashboardID).Msg("fetch tasks failed")
			return TasksLoadedMsg{DashboardID: dashboardID, Err: err.Error()}
		}
		return TasksLoadedMsg{Tasks: storage.TasksToModel(raw), DashboardID: dashboardID}
	}
}

func (m Model) fetchUsersCmd() tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		raw, err := repo.ListUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("fetch users failed")
			return UsersLoadedMsg{Err: err.Error()}
		}
		return UsersLoadedMsg{Users: storage.UsersToModel(raw)}
	}
}

func (m Model) createTaskCmd(payload workflow.CreatePayload) tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		now := time.Now().UTC()
		in := storage.Task{
			ID:            newTaskID(now),
			Title:         payload.Title,
			Description:   payload.Description,
			Status:        string(model.StatusToDo),
			ReporterID:    payload.ReporterID,
			ApproverID:    payload.ApproverID,
			ApproveStatus: string(payload.ApproveStatus),
			CreatedAt:     now,
			Deadline:      payload.Deadline,
			DashboardID:   payload.DashboardID,
			BlockedBy:     payload.BlockedBy,
		}
		if err := repo.CreateTask(ctx, in); err != nil {
			log.Error().Err(err).Str("task", in.ID).Msg("create task failed")
			return TaskSavedMsg{Mode: FormModeCreate, Err: workflow.SubmitErrorMessage(err)}
		}
		log.Info().Str("task", in.ID).Str("dashboard", in.DashboardID).Msg("task created")
		return TaskSavedMsg{Mode: FormModeCreate}
	}
}

func (m Model) updateTaskCmd(payload workflow.UpdatePayload) tea.Cmd {
	repo := m.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		existing, err := repo.GetTask(ctx, payload.TaskID)
		if err != nil {
			log.Error().Err(err).Str("task", payload.TaskID).Msg("load task for update failed")
			return TaskSavedMsg{Mode: FormModeEdit, Err: workflow.SubmitErrorMessage(err)}
		}
		existing.Title = payload.Title
		existing.Description = payload.Description
		existing.Status = string(payload.Status)
		existing.ReporterID = payload.ReporterID
		existing.AssignerID = payload.AssignerID
		existing.ApproverID = payload.ApproverID
		existing.ApproveStatus = string(payload.ApproveStatus)
		existing.Deadline = payload.Deadline
		existing.DashboardID = payload.DashboardID
		existing.BlockedBy = payload.BlockedBy
		if err := repo.UpdateTask(ctx, existing); err != nil {
			log.Error().Err(err).Str("task", payload.TaskID).Msg("update task failed")
			return TaskSavedMsg{Mode: FormModeEdit, Err: workflow.SubmitErrorMessage(err)}
		}
		log.Info().Str("task", payload.TaskID).Msg("task updated")
		return TaskSavedMsg{Mode: FormModeEdit}
	}
}

func newTaskID(now time.Time) string {
	return fmt.Sprintf("task-%d", now.UnixNano())
}
