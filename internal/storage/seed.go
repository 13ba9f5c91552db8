package storage

import (
	"context"
	"time"
)

// SeedDemoData populates an empty store with a small demo team, two
// dashboards and a handful of tasks so a fresh install has something to
// show. A store that already has users is left alone.
func (r *SQLiteRepository) SeedDemoData(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []User{
		{ID: "u-1", Name: "Анна", Surname: "Петрова", Middlename: "Сергеевна", Login: "apetrova", RoleID: 1},
		{ID: "u-2", Name: "Иван", Surname: "Сидоров", Login: "isidorov", RoleID: 2},
		{ID: "u-3", Name: "Мария", Surname: "Козлова", Login: "mkozlova", RoleID: 2},
	}
	for _, u := range users {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO users (id, name, surname, middlename, login, role_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Surname, nullString(u.Middlename), u.Login, u.RoleID,
		)
		if err != nil {
			return err
		}
	}

	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	dashboards := []Dashboard{
		{ID: "dash-1", Name: "Сайт", CreatedAt: now},
		{ID: "dash-2", Name: "Мобильное приложение", CreatedAt: now.Add(time.Minute)},
	}
	for _, d := range dashboards {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO dashboards (id, name, created_at) VALUES (?, ?, ?)`,
			d.ID, d.Name, mustTime(d.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	tasks := []Task{
		{
			ID: "task-1", Title: "Сверстать главную страницу",
			Description: "Адаптивная вёрстка по макету из Figma.",
			Status:      "done", ReporterID: "u-1", AssignerID: "u-2",
			ApproverID: "u-1", ApproveStatus: "approved",
			CreatedAt: now, Deadline: now.AddDate(0, 0, 14), DashboardID: "dash-1",
		},
		{
			ID: "task-2", Title: "Подключить авторизацию",
			Description: "JWT в httpOnly cookie, refresh по таймеру.",
			Status:      "in-progress", ReporterID: "u-1", AssignerID: "u-3",
			ApproverID: "u-2", ApproveStatus: "need-approval",
			CreatedAt: now.Add(time.Hour), Deadline: now.AddDate(0, 0, 21), DashboardID: "dash-1",
			BlockedBy: []string{"task-1"},
		},
		{
			ID: "task-3", Title: "Собрать прототип экрана задач",
			Description: "Список задач с фильтром по доске.",
			Status:      "to-do", ReporterID: "u-2",
			ApproverID: "u-2", ApproveStatus: "approved",
			CreatedAt: now.Add(2 * time.Hour), Deadline: now.AddDate(0, 0, 10), DashboardID: "dash-2",
		},
	}
	for _, t := range tasks {
		if err := r.CreateTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
