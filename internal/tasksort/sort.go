// Package tasksort holds the single-key, tri-state column sorter used
// by the dashboard table. A column click cycles unsorted → ascending →
// descending → unsorted; switching columns always restarts at
// ascending.
package tasksort

import (
	"sort"
	"time"

	"github.com/taskerhq/taskdash/internal/model"
)

type Field string

const (
	FieldNone     Field = ""
	FieldStatus   Field = "status"
	FieldDeadline Field = "deadline"
	FieldCreated  Field = "createdAt"
)

func (f Field) IsValid() bool {
	switch f {
	case FieldStatus, FieldDeadline, FieldCreated:
		return true
	default:
		return false
	}
}

type Order string

const (
	OrderNone Order = ""
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// State is the active sort column and direction. The zero value means
// unsorted: tasks keep their input order.
type State struct {
	Field Field
	Order Order
}

// Toggle advances the sort state for a column click on field.
func (s *State) Toggle(field Field) {
	if !field.IsValid() {
		return
	}
	if s.Field != field {
		s.Field = field
		s.Order = OrderAsc
		return
	}
	switch s.Order {
	case OrderAsc:
		s.Order = OrderDesc
	case OrderDesc:
		s.Field = FieldNone
		s.Order = OrderNone
	default:
		// Unreachable through Toggle itself, but a stored state can
		// start at (field, none).
		s.Order = OrderAsc
	}
}

// Active reports whether a sort is in effect.
func (s State) Active() bool {
	return s.Field != FieldNone && s.Order != OrderNone
}

// Sort returns tasks ordered by the given field and direction. With no
// active sort the input slice is returned as-is; otherwise a new slice
// is built and sorted stably, so equal keys keep their relative order
// and the input is never mutated.
func Sort(tasks []model.Task, field Field, order Order) []model.Task {
	if field == FieldNone || order == OrderNone {
		return tasks
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		comp := compare(out[i], out[j], field)
		if order == OrderDesc {
			comp = -comp
		}
		return comp < 0
	})
	return out
}

// Sorted applies the state to tasks.
func (s State) Sorted(tasks []model.Task) []model.Task {
	return Sort(tasks, s.Field, s.Order)
}

func compare(a, b model.Task, field Field) int {
	switch field {
	case FieldStatus:
		return model.StatusRank(a.Status) - model.StatusRank(b.Status)
	case FieldDeadline:
		return compareTimes(a.Deadline, b.Deadline)
	case FieldCreated:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	default:
		return 0
	}
}

func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// Indicator returns the header glyph for a column: a neutral arrow for
// inactive columns, up/down for the active direction.
func Indicator(s State, field Field) string {
	if s.Field != field {
		return "⇅"
	}
	switch s.Order {
	case OrderAsc:
		return "↑"
	case OrderDesc:
		return "↓"
	default:
		return "⇅"
	}
}
