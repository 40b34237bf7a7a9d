package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
}

const maxTitleWidth = 48

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	const pad = 2
	idW, statusW, titleW, dueW := 4, 8, 7, 12
	for _, t := range tasks {
		idW = max(idW, len(t.ID)+pad)
		statusW = max(statusW, len(t.Status)+pad)
		titleW = max(titleW, min(len(t.Title), maxTitleWidth)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", titleW, "TITLE", dueW, "DUE", "TAGS")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		// Pad before styling so ANSI codes do not skew the columns.
		due := fmt.Sprintf("%-*s", dueW, "--")
		if t.DueDate != nil {
			due = fmt.Sprintf("%-*s", dueW, t.DueDate.String())
		} else {
			due = dimStyle.Render(due)
		}
		tags := dimStyle.Render("--")
		if len(t.Tags) > 0 {
			tags = task.JoinTags(t.Tags)
		}
		fmt.Fprintf(w, "%-*s %-*s %-*s %s %s\n",
			idW, t.ID, statusW, t.Status, titleW, truncate(t.Title, maxTitleWidth), due, tags)
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := fmt.Sprintf("Task %s: %s", t.ID, t.Title)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Status", t.Status)
	if t.DueDate != nil {
		printField(w, "Due", t.DueDate.String())
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	if len(t.Tags) > 0 {
		printField(w, "Tags", task.JoinTags(t.Tags))
	} else {
		printField(w, "Tags", dimStyle.Render("--"))
	}
	printField(w, "Owner", t.UserID)

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// SummaryTable renders per-status counts for the current user.
func SummaryTable(w io.Writer, email string, counts map[string]int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Fprintln(w, titleStyle.Render(email))
	fmt.Fprintf(w, "Total: %d tasks\n\n", total)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-12s %6s", "STATUS", "COUNT")))
	for _, s := range task.Statuses {
		fmt.Fprintf(w, "%-12s %6d\n", s, counts[s])
	}
}

// ActivityLogTable renders activity log entries as a table.
func ActivityLogTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No activity log entries found.")
		return
	}
	header := fmt.Sprintf("%-20s %-8s %-8s %-38s %s", "TIME", "USER", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		taskID := e.TaskID
		if taskID == "" {
			taskID = "--"
		}
		fmt.Fprintf(w, "%-20s %-8s %-8s %-38s %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.UserID, e.Action, taskID, e.Detail)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-8s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
