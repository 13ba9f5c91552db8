package tasksort

import (
	"testing"
	"time"

	"github.com/taskerhq/taskdash/internal/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return out
}

func taskIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToggleCycleReturnsToUnsorted(t *testing.T) {
	var s State
	s.Toggle(FieldStatus)
	if s.Field != FieldStatus || s.Order != OrderAsc {
		t.Fatalf("expected (status, asc), got (%q, %q)", s.Field, s.Order)
	}
	s.Toggle(FieldStatus)
	if s.Field != FieldStatus || s.Order != OrderDesc {
		t.Fatalf("expected (status, desc), got (%q, %q)", s.Field, s.Order)
	}
	s.Toggle(FieldStatus)
	if s.Field != FieldNone || s.Order != OrderNone {
		t.Fatalf("expected cleared state, got (%q, %q)", s.Field, s.Order)
	}
}

func TestToggleSwitchingFieldsResetsToAscending(t *testing.T) {
	var s State
	s.Toggle(FieldDeadline)
	s.Toggle(FieldDeadline)
	if s.Order != OrderDesc {
		t.Fatalf("expected desc before switch, got %q", s.Order)
	}
	s.Toggle(FieldCreated)
	if s.Field != FieldCreated || s.Order != OrderAsc {
		t.Fatalf("expected (createdAt, asc), got (%q, %q)", s.Field, s.Order)
	}
}

func TestToggleRecoversFromHalfSetState(t *testing.T) {
	s := State{Field: FieldStatus, Order: OrderNone}
	s.Toggle(FieldStatus)
	if s.Field != FieldStatus || s.Order != OrderAsc {
		t.Fatalf("expected (status, asc), got (%q, %q)", s.Field, s.Order)
	}
}

func TestToggleIgnoresUnknownField(t *testing.T) {
	var s State
	s.Toggle(Field("priority"))
	if s.Active() {
		t.Fatalf("expected inactive state, got (%q, %q)", s.Field, s.Order)
	}
}

func TestSortWithoutActiveStateReturnsInputOrder(t *testing.T) {
	tasks := []model.Task{{ID: "b"}, {ID: "a"}}
	got := Sort(tasks, FieldNone, OrderNone)
	if !sameIDs(taskIDs(got), "b", "a") {
		t.Fatalf("expected input order preserved, got %v", taskIDs(got))
	}
}

func TestSortByStatusAscending(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Status: model.StatusDone},
		{ID: "2", Status: model.StatusToDo},
		{ID: "3", Status: model.StatusCanceled},
		{ID: "4", Status: model.StatusInProgress},
	}
	got := Sort(tasks, FieldStatus, OrderAsc)
	if !sameIDs(taskIDs(got), "2", "4", "1", "3") {
		t.Fatalf("unexpected status order: %v", taskIDs(got))
	}
	// The input must not be reordered.
	if !sameIDs(taskIDs(tasks), "1", "2", "3", "4") {
		t.Fatalf("input mutated: %v", taskIDs(tasks))
	}
}

func TestSortStatusRanksReviewAndBlockedAsToDo(t *testing.T) {
	tasks := []model.Task{
		{ID: "done", Status: model.StatusDone},
		{ID: "review", Status: model.StatusReview},
		{ID: "blocked", Status: model.StatusBlocked},
		{ID: "todo", Status: model.StatusToDo},
	}
	got := Sort(tasks, FieldStatus, OrderAsc)
	// review, blocked and to-do all rank 0 and keep input order.
	if !sameIDs(taskIDs(got), "review", "blocked", "todo", "done") {
		t.Fatalf("unexpected order with unranked statuses: %v", taskIDs(got))
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	deadline := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "first", Deadline: deadline},
		{ID: "second", Deadline: deadline},
		{ID: "third", Deadline: deadline},
	}
	got := Sort(tasks, FieldDeadline, OrderAsc)
	if !sameIDs(taskIDs(got), "first", "second", "third") {
		t.Fatalf("stable sort broke equal-key order: %v", taskIDs(got))
	}
}

func TestSortIsIdempotent(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", CreatedAt: day(t, "2025-03-03")},
		{ID: "2", CreatedAt: day(t, "2025-01-01")},
		{ID: "3", CreatedAt: day(t, "2025-02-02")},
	}
	once := Sort(tasks, FieldCreated, OrderAsc)
	twice := Sort(once, FieldCreated, OrderAsc)
	if !sameIDs(taskIDs(twice), taskIDs(once)...) {
		t.Fatalf("second application reordered: %v vs %v", taskIDs(twice), taskIDs(once))
	}
}

func TestDeadlineToggleEndToEnd(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Status: model.StatusDone, Deadline: day(t, "2025-08-01"), DashboardID: "d1"},
		{ID: "2", Status: model.StatusToDo, Deadline: day(t, "2025-07-01"), DashboardID: "d1"},
	}

	var s State
	s.Toggle(FieldDeadline)
	got := s.Sorted(tasks)
	if !sameIDs(taskIDs(got), "2", "1") {
		t.Fatalf("expected ascending deadline order, got %v", taskIDs(got))
	}

	s.Toggle(FieldDeadline)
	got = s.Sorted(tasks)
	if !sameIDs(taskIDs(got), "1", "2") {
		t.Fatalf("expected descending deadline order, got %v", taskIDs(got))
	}
}

func TestIndicator(t *testing.T) {
	var s State
	if got := Indicator(s, FieldStatus); got != "⇅" {
		t.Fatalf("expected neutral indicator, got %q", got)
	}
	s.Toggle(FieldStatus)
	if got := Indicator(s, FieldStatus); got != "↑" {
		t.Fatalf("expected ascending indicator, got %q", got)
	}
	s.Toggle(FieldStatus)
	if got := Indicator(s, FieldStatus); got != "↓" {
		t.Fatalf("expected descending indicator, got %q", got)
	}
	if got := Indicator(s, FieldDeadline); got != "⇅" {
		t.Fatalf("expected neutral indicator for other column, got %q", got)
	}
}
