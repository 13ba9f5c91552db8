package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/storage"
	"github.com/taskerhq/taskdash/internal/tasksort"
	"github.com/taskerhq/taskdash/internal/workflow"
)

type fakeRepo struct {
	tasks      []storage.Task
	dashboards []storage.Dashboard
	users      []storage.User
	failCreate bool
	created    []storage.Task
	updated    []storage.Task
}

func (f *fakeRepo) ListTasks(ctx context.Context) ([]storage.Task, error) {
	return f.tasks, nil
}

func (f *fakeRepo) ListTasksByDashboard(ctx context.Context, dashboardID string) ([]storage.Task, error) {
	var out []storage.Task
	for _, t := range f.tasks {
		if t.DashboardID == dashboardID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetTask(ctx context.Context, id string) (storage.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return storage.Task{}, storage.ErrNotFound
}

func (f *fakeRepo) CreateTask(ctx context.Context, in storage.Task) error {
	if f.failCreate {
		return errors.New("disk full")
	}
	f.created = append(f.created, in)
	f.tasks = append(f.tasks, in)
	return nil
}

func (f *fakeRepo) UpdateTask(ctx context.Context, in storage.Task) error {
	f.updated = append(f.updated, in)
	return nil
}

func (f *fakeRepo) ListDashboards(ctx context.Context) ([]storage.Dashboard, error) {
	return f.dashboards, nil
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]storage.User, error) {
	return f.users, nil
}

func (f *fakeRepo) FindUserByLogin(ctx context.Context, login string) (storage.User, error) {
	for _, u := range f.users {
		if u.Login == login {
			return u, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func testActingUser() model.User {
	return model.User{ID: "user-1", Name: "Иван", Surname: "Иванов", Login: "ivanov"}
}

func testRepo() *fakeRepo {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	return &fakeRepo{
		dashboards: []storage.Dashboard{
			{ID: "dash-1", Name: "Сайт"},
			{ID: "dash-2", Name: "Мобильное приложение"},
		},
		users: []storage.User{
			{ID: "user-1", Name: "Иван", Surname: "Иванов", Login: "ivanov"},
			{ID: "user-2", Name: "Анна", Surname: "Петрова", Login: "petrova"},
		},
		tasks: []storage.Task{
			{ID: "task-1", Title: "Настроить CI", Status: "in-progress", DashboardID: "dash-1", CreatedAt: base, Deadline: base.AddDate(0, 0, 5)},
			{ID: "task-2", Title: "Дизайн формы", Status: "to-do", DashboardID: "dash-2", CreatedAt: base.Add(time.Hour), Deadline: base.AddDate(0, 0, 2)},
			{ID: "task-3", Title: "Фикс логина", Status: "done", DashboardID: "dash-1", CreatedAt: base.Add(2 * time.Hour), Deadline: base.AddDate(0, 0, 1)},
		},
	}
}

func loadedModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	m := NewModel(repo, testActingUser())

	updated, cmd := m.Update(DashboardsLoadedMsg{Dashboards: dashboardsWithAll(repo)})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected task fetch after dashboards load")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	users, _ := repo.ListUsers(context.Background())
	updated, _ = m.Update(UsersLoadedMsg{Users: storage.UsersToModel(users)})
	return updated.(Model)
}

func dashboardsWithAll(repo *fakeRepo) []model.Dashboard {
	out := []model.Dashboard{model.AllDashboard()}
	for _, d := range repo.dashboards {
		out = append(out, d.ToModel())
	}
	return out
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(&fakeRepo{}, testActingUser())
	if m.CurrentView != ViewBoard {
		t.Fatalf("expected default view %q, got %q", ViewBoard, m.CurrentView)
	}
	if !m.Tasks.Loading || !m.Dashboards.Loading || !m.Users.Loading {
		t.Fatalf("expected all collections loading: %+v %+v %+v", m.Tasks, m.Dashboards, m.Users)
	}
	if m.Keys.Quit != "q" || m.Keys.NewTask != "n" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if m.Sort.Active() {
		t.Fatalf("expected no sort by default, got %+v", m.Sort)
	}
}

func TestDashboardsLoadedResolvesSelection(t *testing.T) {
	repo := testRepo()
	m := NewModel(repo, testActingUser())

	updated, cmd := m.Update(DashboardsLoadedMsg{Dashboards: dashboardsWithAll(repo)})
	next := updated.(Model)
	if next.ActiveDashboardID != "dash-1" {
		t.Fatalf("expected first real dashboard selected, got %q", next.ActiveDashboardID)
	}
	if cmd == nil {
		t.Fatal("expected a task fetch command")
	}
	msg, ok := cmd().(TasksLoadedMsg)
	if !ok {
		t.Fatalf("expected TasksLoadedMsg, got %T", cmd())
	}
	if msg.DashboardID != "dash-1" {
		t.Fatalf("expected fetch for dash-1, got %q", msg.DashboardID)
	}
	if len(msg.Tasks) != 2 {
		t.Fatalf("expected 2 dash-1 tasks, got %d", len(msg.Tasks))
	}
}

func TestDashboardsFetchErrorKeepsAggregate(t *testing.T) {
	m := NewModel(&fakeRepo{}, testActingUser())
	updated, _ := m.Update(DashboardsLoadedMsg{
		Dashboards: []model.Dashboard{model.AllDashboard()},
		Err:        "connection refused",
	})
	next := updated.(Model)
	if len(next.Dashboards.Items) != 1 || next.Dashboards.Items[0].ID != model.AllDashboardID {
		t.Fatalf("expected synthetic aggregate to survive, got %+v", next.Dashboards.Items)
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestReselectAggregateRefetches(t *testing.T) {
	repo := testRepo()
	m := loadedModel(t, repo)

	updated, cmd := m.Update(SelectDashboardMsg{ID: model.AllDashboardID})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected fetch when switching to aggregate")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if len(m.Tasks.Items) != 3 {
		t.Fatalf("expected all tasks on aggregate, got %d", len(m.Tasks.Items))
	}

	// Re-selecting the active aggregate still asks for fresh data.
	_, cmd = m.Update(SelectDashboardMsg{ID: model.AllDashboardID})
	if cmd == nil {
		t.Fatal("expected refetch on aggregate re-select")
	}

	// A concrete dashboard re-select is a no-op.
	updated, cmd = m.Update(SelectDashboardMsg{ID: "dash-2"})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected fetch when switching dashboards")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	_, cmd = m.Update(SelectDashboardMsg{ID: "dash-2"})
	if cmd != nil {
		t.Fatal("expected no refetch on concrete dashboard re-select")
	}
}

func TestSortKeyCyclesDirections(t *testing.T) {
	m := loadedModel(t, testRepo())

	press := func(r rune) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}

	press('d')
	if m.Sort.Field != tasksort.FieldDeadline || m.Sort.Order != tasksort.OrderAsc {
		t.Fatalf("expected deadline asc, got %+v", m.Sort)
	}
	press('d')
	if m.Sort.Order != tasksort.OrderDesc {
		t.Fatalf("expected deadline desc, got %+v", m.Sort)
	}
	press('d')
	if m.Sort.Active() {
		t.Fatalf("expected sort cleared, got %+v", m.Sort)
	}
	press('s')
	if m.Sort.Field != tasksort.FieldStatus || m.Sort.Order != tasksort.OrderAsc {
		t.Fatalf("expected status asc after switch, got %+v", m.Sort)
	}
}

func TestSortToggleMovesSelectionWithCursor(t *testing.T) {
	m := loadedModel(t, testRepo())
	if m.SelectedTaskID != "task-1" {
		t.Fatalf("expected task-1 selected before sorting, got %q", m.SelectedTaskID)
	}

	// Ascending deadline puts task-3 first on dash-1; the selection
	// must follow the reset cursor immediately.
	updated, _ := m.Update(ToggleSortMsg{Field: tasksort.FieldDeadline})
	next := updated.(Model)
	if next.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", next.Cursor)
	}
	if next.SelectedTaskID != "task-3" {
		t.Fatalf("expected selection to follow sorted order, got %q", next.SelectedTaskID)
	}
}

func TestVisibleTasksFilterBeforeSort(t *testing.T) {
	m := loadedModel(t, testRepo())
	m.Sort = tasksort.State{Field: tasksort.FieldDeadline, Order: tasksort.OrderAsc}

	visible := m.visibleTasks()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible tasks on dash-1, got %d", len(visible))
	}
	if visible[0].ID != "task-3" || visible[1].ID != "task-1" {
		t.Fatalf("unexpected order: %s, %s", visible[0].ID, visible[1].ID)
	}
}

func TestTasksLoadedClampsCursor(t *testing.T) {
	m := loadedModel(t, testRepo())
	m.Cursor = 5

	updated, _ := m.Update(TasksLoadedMsg{
		Tasks:       []model.Task{{ID: "task-1", DashboardID: "dash-1"}},
		DashboardID: "dash-1",
	})
	next := updated.(Model)
	if next.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", next.Cursor)
	}
	if next.SelectedTaskID != "task-1" {
		t.Fatalf("expected selection to follow cursor, got %q", next.SelectedTaskID)
	}
}

func TestCreateFormDefaultsToActingUser(t *testing.T) {
	m := loadedModel(t, testRepo())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	next := updated.(Model)
	if next.CurrentView != ViewForm || next.Form.Mode != FormModeCreate {
		t.Fatalf("expected create form, got %+v", next.Form)
	}
	if next.Form.Data.ReporterID != "user-1" || next.Form.Data.ApproverID != "user-1" {
		t.Fatalf("expected acting user defaults, got %+v", next.Form.Data)
	}
	if next.Form.Data.DashboardID != "dash-1" {
		t.Fatalf("expected active dashboard pre-selected, got %q", next.Form.Data.DashboardID)
	}
}

func TestSubmitFormValidationFailureKeepsForm(t *testing.T) {
	m := loadedModel(t, testRepo())
	m.openCreateForm()

	updated, cmd := m.Update(SubmitFormMsg{})
	next := updated.(Model)
	if cmd != nil {
		t.Fatal("expected no store command on validation failure")
	}
	if next.CurrentView != ViewForm {
		t.Fatalf("expected form to stay open, got %q", next.CurrentView)
	}
	if next.Form.ErrText == "" {
		t.Fatal("expected validation error text")
	}
}

func TestSubmitFormCreateRoundTrip(t *testing.T) {
	repo := testRepo()
	m := loadedModel(t, repo)
	m.openCreateForm()
	m.titleInput.SetValue("Новая задача")
	m.deadlineInput.SetValue("2025-09-15T12:00")

	updated, cmd := m.Update(SubmitFormMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected create command")
	}
	if !m.Form.Saving {
		t.Fatal("expected saving flag while the store call is in flight")
	}

	saved, ok := cmd().(TaskSavedMsg)
	if !ok {
		t.Fatalf("expected TaskSavedMsg, got %T", cmd())
	}
	if saved.Err != "" {
		t.Fatalf("unexpected save error: %q", saved.Err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created task, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Status != string(model.StatusToDo) {
		t.Fatalf("expected new task to start as to-do, got %q", created.Status)
	}
	if created.ApproveStatus != string(model.ApproveApproved) || created.ApproverID != "" {
		t.Fatalf("expected approval-off normalization, got %q/%q", created.ApproveStatus, created.ApproverID)
	}

	updated, refresh := m.Update(saved)
	m = updated.(Model)
	if m.CurrentView != ViewBoard {
		t.Fatalf("expected board after save, got %q", m.CurrentView)
	}
	if refresh == nil {
		t.Fatal("expected task refetch after save")
	}
}

func TestSubmitFormStoreFailureShowsGenericError(t *testing.T) {
	repo := testRepo()
	repo.failCreate = true
	m := loadedModel(t, repo)
	m.openCreateForm()
	m.titleInput.SetValue("Новая задача")
	m.deadlineInput.SetValue("2025-09-15T12:00")

	updated, cmd := m.Update(SubmitFormMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected create command")
	}
	saved := cmd().(TaskSavedMsg)
	if saved.Err != workflow.GenericSubmitError {
		t.Fatalf("expected generic submit error, got %q", saved.Err)
	}

	updated, _ = m.Update(saved)
	m = updated.(Model)
	if m.CurrentView != ViewForm {
		t.Fatalf("expected form to stay open on failure, got %q", m.CurrentView)
	}
	if m.Form.ErrText != workflow.GenericSubmitError {
		t.Fatalf("expected form error text, got %q", m.Form.ErrText)
	}
}

func TestPaletteSortCommand(t *testing.T) {
	m := loadedModel(t, testRepo())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sort deadline")})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Palette.Active {
		t.Fatal("expected palette closed after execution")
	}
	if m.Sort.Field != tasksort.FieldDeadline || m.Sort.Order != tasksort.OrderAsc {
		t.Fatalf("expected deadline asc from palette, got %+v", m.Sort)
	}
	if m.SelectedTaskID != "task-3" {
		t.Fatalf("expected selection to follow sorted order, got %q", m.SelectedTaskID)
	}
}

func TestPaletteBoardCommandSwitchesDashboard(t *testing.T) {
	m := loadedModel(t, testRepo())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("board Мобильное приложение")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.ActiveDashboardID != "dash-2" {
		t.Fatalf("expected dash-2 active, got %q", m.ActiveDashboardID)
	}
	if cmd == nil {
		t.Fatal("expected task fetch for the new dashboard")
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := loadedModel(t, testRepo())
	updated, _ := m.Update(SwitchViewMsg{View: ViewDetail})
	next := updated.(Model)
	if next.CurrentView != ViewDetail {
		t.Fatalf("expected detail view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewDetail {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := loadedModel(t, testRepo())
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	boom := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: boom})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := loadedModel(t, testRepo())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := loadedModel(t, testRepo())
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "board: Сайт") {
		t.Fatalf("expected active board in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "Все дашборды") {
		t.Fatalf("expected aggregate tab in output: %q", out)
	}
}

func TestDetailViewOpensOnEnter(t *testing.T) {
	m := loadedModel(t, testRepo())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if next.CurrentView != ViewDetail {
		t.Fatalf("expected detail view, got %q", next.CurrentView)
	}
	if next.SelectedTaskID == "" {
		t.Fatal("expected a selected task")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)
	if next.CurrentView != ViewBoard {
		t.Fatalf("expected board after esc, got %q", next.CurrentView)
	}
}
