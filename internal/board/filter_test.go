package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskerhq/taskdash/internal/board"
	"github.com/taskerhq/taskdash/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", DashboardID: "dash-1"},
		{ID: "2", DashboardID: "dash-2"},
		{ID: "3", DashboardID: "dash-1"},
		{ID: "4", DashboardID: "dash-2"},
		{ID: "5", DashboardID: "dash-3"},
	}
}

func TestFilterByDashboardExactSubset(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tasks := sampleTasks()
	got := board.FilterByDashboard(tasks, "dash-2")

	assert.Len(got, 2)
	assert.Equal("2", got[0].ID)
	assert.Equal("4", got[1].ID)
	// Input keeps its order and length.
	assert.Len(tasks, 5)
	assert.Equal("1", tasks[0].ID)
}

func TestFilterByDashboardAllIsIdentity(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tasks := sampleTasks()
	got := board.FilterByDashboard(tasks, model.AllDashboardID)
	assert.Equal(tasks, got)

	got = board.FilterByDashboard(tasks, "")
	assert.Equal(tasks, got)
}

func TestFilterByDashboardUnknownIDIsEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	got := board.FilterByDashboard(sampleTasks(), "dash-404")
	assert.Empty(got)
}

func TestResolveActiveID(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dashboards := []model.Dashboard{
		model.AllDashboard(),
		{ID: "dash-1", Name: "Backend"},
		{ID: "dash-2", Name: "Frontend"},
	}

	assert.Equal("dash-2", board.ResolveActiveID("dash-2", dashboards))
	assert.Equal(model.AllDashboardID, board.ResolveActiveID(model.AllDashboardID, dashboards))
	assert.Equal("dash-1", board.ResolveActiveID("", dashboards))
	assert.Equal(model.AllDashboardID, board.ResolveActiveID("", []model.Dashboard{model.AllDashboard()}))
	assert.Equal("", board.ResolveActiveID("", nil))
}

func TestWithAllFirst(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	got := board.WithAllFirst([]model.Dashboard{
		{ID: "dash-1", Name: "Backend"},
		{ID: "dash-2", Name: "Frontend"},
	})
	assert.Len(got, 3)
	assert.Equal(model.AllDashboardID, got[0].ID)
	assert.Equal(model.AllDashboardName, got[0].Name)
	assert.Equal("dash-1", got[1].ID)

	// An aggregate entry already present is not duplicated.
	again := board.WithAllFirst(got)
	assert.Len(again, 3)
	assert.Equal(model.AllDashboardID, again[0].ID)

	empty := board.WithAllFirst(nil)
	assert.Len(empty, 1)
	assert.Equal(model.AllDashboardID, empty[0].ID)
}

func TestDirectoryUserLookup(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := board.NewDirectory(
		[]model.User{
			{ID: "u1", Name: "Анна", Surname: "Петрова"},
			{ID: "u2", Name: "Иван", Surname: "Сидоров"},
		},
		nil,
	)

	assert.Equal("Анна", dir.UserName("u1"))
	assert.Equal(board.UnknownUserLabel, dir.UserName("nonexistent-id"))
	assert.Equal(board.UnknownUserLabel, dir.UserName(""))

	u, ok := dir.User("u2")
	assert.True(ok)
	assert.Equal("Иван Сидоров", u.FullName())
}

func TestDirectoryDashboardLookup(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := board.NewDirectory(nil, board.WithAllFirst([]model.Dashboard{
		{ID: "dash-1", Name: "Backend"},
	}))

	assert.Equal("Backend", dir.DashboardName("dash-1"))
	assert.Equal(model.AllDashboardName, dir.DashboardName(model.AllDashboardID))
	assert.Equal(board.UnknownDashboardLabel, dir.DashboardName("dash-404"))
}
