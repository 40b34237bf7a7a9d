package app

import (
	"errors"
	"testing"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/task"
)

func TestCommandsRequireLogin(t *testing.T) {
	f := newFixture(t)
	for _, cmd := range []Command{
		OpenCreate{},
		OpenEdit{ID: "1"},
		CommitTask{},
		DeleteTask{ID: "1"},
		BeginDrag{ID: "1"},
	} {
		if _, err := f.state.Dispatch(cmd); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("Dispatch(%T) error = %v, want ErrNotLoggedIn", cmd, err)
		}
	}
}

func TestViewCommands(t *testing.T) {
	f := loggedIn(t,
		&task.Task{ID: "1", Title: "Later", Status: task.StatusTodo, DueDate: due(5), Tags: []string{"home"}, UserID: "a"},
		&task.Task{ID: "2", Title: "Sooner", Status: task.StatusTodo, DueDate: due(1), Tags: []string{"work"}, UserID: "a"},
		&task.Task{ID: "3", Title: "Hidden", Status: task.StatusTodo, DueDate: due(0), Tags: []string{"home"}, UserID: "b"},
	)

	ids := func() []string {
		var out []string
		for _, tk := range f.state.Visible() {
			out = append(out, tk.ID)
		}
		return out
	}

	if got := ids(); len(got) != 2 || got[0] != "1" {
		t.Fatalf("visible = %v, want [1 2]", got)
	}

	mustDispatch(t, f.state, ToggleSort{})
	if got := ids(); len(got) != 2 || got[0] != "2" {
		t.Errorf("sorted = %v, want [2 1]", got)
	}
	mustDispatch(t, f.state, ToggleSort{})
	if f.state.View().SortByDue {
		t.Error("second toggle left sort on")
	}

	mustDispatch(t, f.state, SetTag{Tag: "HOM"})
	if got := ids(); len(got) != 1 || got[0] != "1" {
		t.Errorf("tag filter = %v, want [1]", got)
	}
	mustDispatch(t, f.state, SetTag{Tag: ""})
	mustDispatch(t, f.state, SetSearch{Term: "soon"})
	if got := ids(); len(got) != 1 || got[0] != "2" {
		t.Errorf("search = %v, want [2]", got)
	}
}

func TestVisibleLoggedOut(t *testing.T) {
	f := newFixture(t)
	if got := f.state.Visible(); got == nil || len(got) != 0 {
		t.Errorf("Visible() = %v, want empty non-nil", got)
	}
}

func TestReloadPicksUpOutsideWrites(t *testing.T) {
	f := loggedIn(t)
	outside := []*task.Task{{ID: "9", Title: "from elsewhere", Status: task.StatusDone, UserID: "a"}}
	if err := f.store.Save(store.KeyTasks, outside); err != nil {
		t.Fatal(err)
	}
	mustDispatch(t, f.state, Reload{})
	if got := f.state.Columns()[task.StatusDone]; len(got) != 1 || got[0].ID != "9" {
		t.Errorf("done column = %v", got)
	}
}

func TestCloseForm(t *testing.T) {
	f := loggedIn(t)
	mustDispatch(t, f.state, OpenCreate{})
	mustDispatch(t, f.state, CloseForm{})
	if f.state.Form() != nil {
		t.Error("form still open")
	}
}

func TestActivityLogRecordsMutations(t *testing.T) {
	dir := t.TempDir()
	st := store.NewMemoryStore()
	s := New(Options{
		Store:       st,
		Seeder:      &stubSeeder{},
		Now:         (&clock{now: fixedNow}).Now,
		NewID:       sequentialIDs(),
		ActivityDir: dir,
	})
	if err := st.Save(store.KeyTasks, []*task.Task{}); err != nil {
		t.Fatal(err)
	}
	mustDispatch(t, s, Login{Email: "a@x.com"})
	mustDispatch(t, s, OpenCreate{})
	mustDispatch(t, s, SetField{Field: task.FieldTitle, Value: "t"})
	mustDispatch(t, s, SetField{Field: task.FieldDueDate, Value: today.String()})
	mustDispatch(t, s, CommitTask{})
	mustDispatch(t, s, BeginDrag{ID: "id-1"})
	mustDispatch(t, s, DropOn{Target: task.StatusDone})
	mustDispatch(t, s, DeleteTask{ID: "id-1"})
	mustDispatch(t, s, Logout{})

	entries, err := board.ReadLog(dir, board.LogFilterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action)
		if e.UserID != "a" {
			t.Errorf("%s entry user = %q, want a", e.Action, e.UserID)
		}
	}
	want := []string{"login", "create", "move", "delete", "logout"}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("actions = %v, want %v", actions, want)
			break
		}
	}
}
