// Package board provides the read side of the board: the filter/sort
// pipeline that decides which tasks a user sees, the per-status column
// split, and the activity log.
package board

import (
	"slices"
	"strings"

	"github.com/antopolskiy/taskboard/internal/task"
)

// ViewOptions are the toolbar controls applied to the task collection.
type ViewOptions struct {
	Search    string // case-insensitive substring of the title
	Tag       string // case-insensitive substring of any tag; empty keeps all
	SortByDue bool   // stable ascending sort by due date
	Status    string // restrict to one status; empty keeps all
}

// Visible runs the pipeline: ownership, title search, tag filter, then the
// optional due-date sort. The input slice is not modified.
func Visible(tasks []*task.Task, userID string, opts ViewOptions) []*task.Task {
	search := strings.ToLower(opts.Search)
	tag := strings.ToLower(opts.Tag)

	result := []*task.Task{}
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if tag != "" && !hasTagLike(t.Tags, tag) {
			continue
		}
		if opts.Status != "" && t.Status != opts.Status {
			continue
		}
		result = append(result, t)
	}

	if opts.SortByDue {
		SortByDue(result)
	}
	return result
}

func hasTagLike(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// SortByDue stable-sorts tasks by due date, earliest first. When either
// task of a pair has no due date the comparison reports no preference,
// so undated tasks do not have a well-defined position relative to the
// dated ones around them.
func SortByDue(tasks []*task.Task) {
	slices.SortStableFunc(tasks, compareDue)
}

func compareDue(a, b *task.Task) int {
	if a.DueDate == nil || b.DueDate == nil {
		return 0
	}
	return a.DueDate.Compare(b.DueDate.Time)
}
