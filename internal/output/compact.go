package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// SummaryCompact renders per-status counts on one line.
func SummaryCompact(w io.Writer, email string, counts map[string]int) {
	parts := make([]string, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		parts = append(parts, s+"="+strconv.Itoa(counts[s]))
	}
	fmt.Fprintf(w, "%s %s\n", email, strings.Join(parts, " "))
}

// ActivityLogCompact renders activity log entries in compact format.
func ActivityLogCompact(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No activity log entries found.")
		return
	}
	for _, e := range entries {
		line := e.Timestamp.Format("2006-01-02 15:04:05") + " " + e.Action
		if e.TaskID != "" {
			line += " #" + e.TaskID
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := "#" + t.ID + " [" + t.Status + "] " + t.Title
	if len(t.Tags) > 0 {
		line += " (" + task.JoinTags(t.Tags) + ")"
	}
	if t.DueDate != nil {
		line += " due:" + t.DueDate.String()
	}
	return line
}
