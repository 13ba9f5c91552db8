package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const taskColumns = `id, title, description, status, reporter_id, assigner_id, reviewer_id,
	approver_id, approve_status, created_at, started_at, completed_at, deadline, dashboard_id`

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]Task, error) {
	return r.listTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC`)
}

func (r *SQLiteRepository) ListTasksByDashboard(ctx context.Context, dashboardID string) ([]Task, error) {
	return r.listTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE dashboard_id = ? ORDER BY created_at ASC`, dashboardID)
}

func (r *SQLiteRepository) listTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		blockers, blockErr := r.listBlockers(ctx, out[i].ID)
		if blockErr != nil {
			return nil, blockErr
		}
		out[i].BlockedBy = blockers
	}
	return out, nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	blockers, err := r.listBlockers(ctx, id)
	if err != nil {
		return Task{}, err
	}
	task.BlockedBy = blockers
	return task, nil
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Status, in.ReporterID, nullString(in.AssignerID),
		nullString(in.ReviewerID), nullString(in.ApproverID), in.ApproveStatus,
		mustTime(in.CreatedAt), nullTime(in.StartedAt), nullTime(in.CompletedAt),
		mustTime(in.Deadline), in.DashboardID,
	)
	if err != nil {
		return err
	}
	if err := replaceBlockers(ctx, tx, in.ID, in.BlockedBy); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, reporter_id = ?, assigner_id = ?,
			reviewer_id = ?, approver_id = ?, approve_status = ?, started_at = ?,
			completed_at = ?, deadline = ?, dashboard_id = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Status, in.ReporterID, nullString(in.AssignerID),
		nullString(in.ReviewerID), nullString(in.ApproverID), in.ApproveStatus,
		nullTime(in.StartedAt), nullTime(in.CompletedAt), mustTime(in.Deadline),
		in.DashboardID, in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if err := replaceBlockers(ctx, tx, in.ID, in.BlockedBy); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListDashboards(ctx context.Context) ([]Dashboard, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM dashboards ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Dashboard, 0)
	for rows.Next() {
		var d Dashboard
		var created string
		if err := rows.Scan(&d.ID, &d.Name, &created); err != nil {
			return nil, err
		}
		createdAt, parseErr := parseRequiredTime(created)
		if parseErr != nil {
			return nil, parseErr
		}
		d.CreatedAt = createdAt
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, surname, middlename, login, role_id FROM users ORDER BY surname ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) FindUserByLogin(ctx context.Context, login string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, surname, middlename, login, role_id FROM users WHERE login = ?`, login)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *SQLiteRepository) listBlockers(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT blocked_by_id FROM task_blockers WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// replaceBlockers rewrites the dependency list, preserving selection
// order through the position column.
func replaceBlockers(ctx context.Context, tx *sql.Tx, taskID string, blockedBy []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_blockers WHERE task_id = ?`, taskID); err != nil {
		return err
	}
	for i, blockerID := range blockedBy {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_blockers (task_id, blocked_by_id, position) VALUES (?, ?, ?)`,
			taskID, blockerID, i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var assigner, reviewer, approver sql.NullString
	var created, deadline string
	var started, completed sql.NullString
	if err := s.Scan(
		&out.ID, &out.Title, &out.Description, &out.Status, &out.ReporterID,
		&assigner, &reviewer, &approver, &out.ApproveStatus,
		&created, &started, &completed, &deadline, &out.DashboardID,
	); err != nil {
		return Task{}, err
	}
	out.AssignerID = assigner.String
	out.ReviewerID = reviewer.String
	out.ApproverID = approver.String

	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	deadlineAt, err := parseRequiredTime(deadline)
	if err != nil {
		return Task{}, err
	}
	startedAt, err := parseNullableTime(started)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Task{}, err
	}
	out.CreatedAt = createdAt
	out.Deadline = deadlineAt
	out.StartedAt = startedAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanUser(s scanner) (User, error) {
	var out User
	var middlename sql.NullString
	if err := s.Scan(&out.ID, &out.Name, &out.Surname, &middlename, &out.Login, &out.RoleID); err != nil {
		return User{}, err
	}
	out.Middlename = middlename.String
	return out, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
