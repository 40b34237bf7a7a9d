// Package task defines the task record and its field rules.
package task

import (
	"slices"

	"github.com/antopolskiy/taskboard/internal/date"
)

// Status values. Their order is the column order on the board.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// Statuses lists every known status in column order.
var Statuses = []string{StatusTodo, StatusInProgress, StatusDone}

// Task is a single card on the board.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *date.Date `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	UserID      string     `json:"userId"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Tags = slices.Clone(t.Tags)
	return &c
}

// IsStatus reports whether s names one of the known statuses.
func IsStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

// StatusIndex returns the column index of s, or -1.
func StatusIndex(s string) int {
	return slices.Index(Statuses, s)
}

// CloneAll deep-copies a task slice.
func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
