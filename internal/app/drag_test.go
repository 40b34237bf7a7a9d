package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/antopolskiy/taskboard/internal/task"
)

func dragFixture(t *testing.T) *fixture {
	t.Helper()
	return loggedIn(t,
		&task.Task{ID: "1", Title: "write", Description: "d", Status: task.StatusTodo, DueDate: due(2), Tags: []string{"x"}, UserID: "a"},
		&task.Task{ID: "2", Title: "other", Status: task.StatusDone, UserID: "b"},
	)
}

func TestDropOnOwnColumnIsNoop(t *testing.T) {
	f := dragFixture(t)
	before := storedTasks(t, f.store)

	mustDispatch(t, f.state, BeginDrag{ID: "1"})
	res := mustDispatch(t, f.state, DropOn{Target: task.StatusTodo})

	if res.Changed || res.Notification != nil {
		t.Errorf("result = %+v, want no change and no notification", res)
	}
	if res.Drop == nil || res.Drop.Moved {
		t.Errorf("Drop = %+v, want no-op outcome", res.Drop)
	}
	if f.state.Notification() != nil {
		t.Error("notification raised")
	}
	if diff := cmp.Diff(before, storedTasks(t, f.store)); diff != "" {
		t.Errorf("stored tasks changed (-want +got):\n%s", diff)
	}
	if f.state.Drag().Phase() != DragIdle {
		t.Errorf("phase = %v, want idle", f.state.Drag().Phase())
	}
}

func TestDropOnOtherColumnChangesOnlyStatus(t *testing.T) {
	f := dragFixture(t)
	before := storedTasks(t, f.store)

	mustDispatch(t, f.state, BeginDrag{ID: "1"})
	if f.state.Drag().Phase() != DragDragging || f.state.Drag().TaskID() != "1" {
		t.Fatalf("drag = %v/%q", f.state.Drag().Phase(), f.state.Drag().TaskID())
	}
	res := mustDispatch(t, f.state, DropOn{Target: task.StatusInProgress})

	if !res.Changed || res.Drop == nil || !res.Drop.Moved {
		t.Fatalf("result = %+v, want a move", res)
	}
	want := task.CloneAll(before)
	want[0].Status = task.StatusInProgress
	if diff := cmp.Diff(want, storedTasks(t, f.store)); diff != "" {
		t.Errorf("stored tasks (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, f.state.Tasks()); diff != "" {
		t.Errorf("in-memory tasks (-want +got):\n%s", diff)
	}

	n := f.state.Notification()
	if n == nil || n.Message != "Task moved to inprogress" || n.Severity != SeveritySuccess {
		t.Errorf("notification = %+v", n)
	}
	if res.Notification != n {
		t.Error("result notification differs from active notification")
	}
}

func TestDropOutsideColumnsIsNoop(t *testing.T) {
	for _, target := range []string{"", "archive", "TODO"} {
		f := dragFixture(t)
		mustDispatch(t, f.state, BeginDrag{ID: "1"})
		res := mustDispatch(t, f.state, DropOn{Target: target})
		if res.Changed || f.state.Notification() != nil {
			t.Errorf("drop on %q changed state", target)
		}
		if got, _ := f.state.Task("1"); got.Status != task.StatusTodo {
			t.Errorf("drop on %q: status = %q", target, got.Status)
		}
	}
}

func TestDropWithoutDragIsIgnored(t *testing.T) {
	f := dragFixture(t)
	res := mustDispatch(t, f.state, DropOn{Target: task.StatusDone})
	if res.Changed || res.Drop != nil {
		t.Errorf("result = %+v", res)
	}
}

func TestCancelDrag(t *testing.T) {
	f := dragFixture(t)
	mustDispatch(t, f.state, BeginDrag{ID: "1"})
	mustDispatch(t, f.state, CancelDrag{})
	if f.state.Drag().Dragging() {
		t.Error("still dragging after cancel")
	}
	res := mustDispatch(t, f.state, DropOn{Target: task.StatusDone})
	if res.Changed {
		t.Error("drop after cancel moved the task")
	}
}

func TestBeginDragUnknownOrForeignTask(t *testing.T) {
	f := dragFixture(t)
	for _, id := range []string{"missing", "2"} {
		_, err := f.state.Dispatch(BeginDrag{ID: id})
		if err == nil {
			t.Errorf("BeginDrag(%q) succeeded", id)
		}
		if f.state.Drag().Phase() != DragIdle {
			t.Errorf("BeginDrag(%q) left phase %v", id, f.state.Drag().Phase())
		}
	}
}

func TestDragHover(t *testing.T) {
	f := dragFixture(t)
	d := f.state.Drag()
	d.SetHover(task.StatusDone)
	if d.Hover() != "" {
		t.Error("hover set while idle")
	}

	mustDispatch(t, f.state, BeginDrag{ID: "1"})
	if d.Hover() != task.StatusTodo {
		t.Errorf("initial hover = %q, want todo", d.Hover())
	}
	d.SetHover("bogus")
	if d.Hover() != task.StatusTodo {
		t.Errorf("hover = %q after bogus target", d.Hover())
	}
	d.SetHover(task.StatusDone)
	res := mustDispatch(t, f.state, DropOn{Target: d.Hover()})
	if !res.Changed {
		t.Error("drop on hovered column did not move")
	}
}

func TestDropSaveFailure(t *testing.T) {
	fs := &failingStore{MemoryStore: dragFixture(t).store}
	s := New(Options{Store: fs, Now: (&clock{now: fixedNow}).Now})
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	mustDispatch(t, s, BeginDrag{ID: "1"})
	fs.fail = true

	_, err := s.Dispatch(DropOn{Target: task.StatusDone})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("error = %v, want errDiskFull", err)
	}
	if got, _ := s.Task("1"); got.Status != task.StatusTodo {
		t.Errorf("in-memory status = %q after failed save", got.Status)
	}
	n := s.Notification()
	if n == nil || n.Severity != SeverityError {
		t.Errorf("notification = %+v, want error", n)
	}
}

func TestDragPhaseString(t *testing.T) {
	if DragIdle.String() != "idle" || DragDragging.String() != "dragging" {
		t.Errorf("phase names = %q, %q", DragIdle, DragDragging)
	}
}
