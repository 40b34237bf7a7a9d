package board

import "github.com/antopolskiy/taskboard/internal/task"

// Columns holds the visible tasks split by status, each in pipeline order.
type Columns map[string][]*task.Task

// Partition splits tasks into one sub-sequence per status, preserving the
// order they arrive in. Every known status is present, possibly empty.
// Tasks with an unknown status are dropped.
func Partition(tasks []*task.Task) Columns {
	cols := make(Columns, len(task.Statuses))
	for _, s := range task.Statuses {
		cols[s] = []*task.Task{}
	}
	for _, t := range tasks {
		if _, ok := cols[t.Status]; ok {
			cols[t.Status] = append(cols[t.Status], t)
		}
	}
	return cols
}

// CountByStatus returns the number of tasks in each status.
func CountByStatus(tasks []*task.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
