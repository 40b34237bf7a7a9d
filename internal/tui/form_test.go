package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antopolskiy/taskboard/internal/task"
)

func findByTitle(tasks []*task.Task, title string) *task.Task {
	for _, t := range tasks {
		if t.Title == title {
			return t
		}
	}
	return nil
}

func TestCreateTask(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendKey(b, "a")
	if b.view != viewForm || !strings.Contains(b.View(), "New task") {
		t.Fatal("a did not open the create form")
	}

	sendKey(b, "Buy milk")
	sendSpecialKey(b, tea.KeyTab) // description
	sendSpecialKey(b, tea.KeyTab) // due date
	sendKey(b, "2026-10-20")
	sendSpecialKey(b, tea.KeyTab) // status
	sendSpecialKey(b, tea.KeyRight)
	sendSpecialKey(b, tea.KeyTab) // tags
	sendKey(b, "home, errands")
	cmd := sendSpecialKey(b, tea.KeyEnter)

	if b.view != viewBoard {
		t.Fatalf("form still open:\n%s", b.View())
	}
	if cmd == nil {
		t.Error("no dismissal scheduled for the notification")
	}
	got := findByTitle(env.state.Tasks(), "Buy milk")
	if got == nil {
		t.Fatal("task not created")
	}
	if got.Status != task.StatusInProgress {
		t.Errorf("status = %q, want inprogress", got.Status)
	}
	if got.DueDate == nil || got.DueDate.String() != "2026-10-20" {
		t.Errorf("due = %v", got.DueDate)
	}
	if got.UserID != "a" {
		t.Errorf("userId = %q", got.UserID)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "home" || got.Tags[1] != "errands" {
		t.Errorf("tags = %v", got.Tags)
	}
	if !strings.Contains(b.View(), "Task added successfully.") {
		t.Error("success toast not shown")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendKey(b, "a")
	sendSpecialKey(b, tea.KeyEnter)

	if b.view != viewForm {
		t.Fatal("invalid form was closed")
	}
	v := b.View()
	for _, want := range []string{"Title is required", "Due date is required"} {
		if !strings.Contains(v, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(v, "Error:") {
		t.Error("validation errors leaked into the error line")
	}

	sendKey(b, "x")
	if strings.Contains(b.View(), "Title is required") {
		t.Error("title error not cleared after typing")
	}

	sendSpecialKey(b, tea.KeyTab)
	sendSpecialKey(b, tea.KeyTab)
	sendKey(b, "2026-10-01")
	sendSpecialKey(b, tea.KeyEnter)
	if !strings.Contains(b.View(), "Due date must be today or a future date") {
		t.Error("past date accepted")
	}
	if len(env.state.Tasks()) != 5 {
		t.Error("invalid form created a task")
	}
}

func TestCancelCreate(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendKey(b, "a")
	sendKey(b, "draft")
	sendSpecialKey(b, tea.KeyEsc)
	if b.view != viewBoard || env.state.Form() != nil {
		t.Fatal("esc did not close the form")
	}
	if findByTitle(env.state.Tasks(), "draft") != nil {
		t.Error("cancelled form created a task")
	}
}

func TestEditTask(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendSpecialKey(b, tea.KeyEnter)
	v := b.View()
	if !strings.Contains(v, "Edit task") || !strings.Contains(v, "Write report") {
		t.Fatalf("edit form:\n%s", v)
	}

	sendKey(b, " v2")
	sendSpecialKey(b, tea.KeyEnter)

	got, err := env.state.Task("1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Write report v2" {
		t.Errorf("title = %q", got.Title)
	}
	if len(env.state.Tasks()) != 5 {
		t.Error("edit changed the task count")
	}
	if !strings.Contains(b.View(), "Task updated successfully.") {
		t.Error("update toast not shown")
	}
}

func TestEditFormCyclesStatus(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendSpecialKey(b, tea.KeyEnter)
	sendSpecialKey(b, tea.KeyShiftTab) // tags
	sendSpecialKey(b, tea.KeyShiftTab) // status
	sendSpecialKey(b, tea.KeyLeft)     // wraps to done
	sendSpecialKey(b, tea.KeyEnter)

	if got := statusOf(t, env.state, "1"); got != task.StatusDone {
		t.Errorf("status = %q, want done", got)
	}
}

func TestDeleteFromEditForm(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendSpecialKey(b, tea.KeyEnter)
	sendSpecialKey(b, tea.KeyCtrlD)

	if b.view != viewBoard {
		t.Fatal("delete did not close the form")
	}
	if _, err := env.state.Task("1"); err == nil {
		t.Error("task still present")
	}
	if !strings.Contains(b.View(), "Task deleted.") {
		t.Error("delete toast not shown")
	}
	if got := b.selectedTask(); got == nil || got.ID != "2" {
		t.Errorf("selection after delete = %v", got)
	}
}

func TestDeleteInCreateFormIsRejected(t *testing.T) {
	env := newEnv(t, sampleTasks(), nil)
	b := env.board

	sendKey(b, "a")
	sendSpecialKey(b, tea.KeyCtrlD)
	if len(env.state.Tasks()) != 5 {
		t.Error("ctrl+d in create form deleted a task")
	}
}
