package task

import "github.com/antopolskiy/taskboard/internal/clierr"

// IndexByID returns the position of the task with the given id, or -1.
func IndexByID(tasks []*Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns the task with the given id.
func FindByID(tasks []*Task, id string) (*Task, error) {
	if i := IndexByID(tasks, id); i >= 0 {
		return tasks[i], nil
	}
	return nil, NotFoundError(id)
}

// NotFoundError builds the CLI error for a missing task id.
func NotFoundError(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}
