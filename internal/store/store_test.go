package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/task"
)

type user struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	stores := make(map[string]Store, len(Backends))
	for _, b := range Backends {
		s, err := Open(b, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", b, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		stores[b] = s
	}
	return stores
}

func sampleTasks() []*task.Task {
	due := date.New(2026, time.November, 3)
	return []*task.Task{
		{
			ID:          "8f0c",
			Title:       "Write report",
			Description: "quarterly numbers",
			Status:      task.StatusInProgress,
			DueDate:     &due,
			Tags:        []string{"urgent", "home"},
			UserID:      "a",
		},
		{ID: "2", Title: "No due date", Status: task.StatusTodo, UserID: "b"},
	}
}

func TestRoundTripPreservesEveryField(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleTasks()
			if err := s.Save(KeyTasks, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			var got []*task.Task
			ok, err := s.Load(KeyTasks, &got)
			if err != nil || !ok {
				t.Fatalf("Load = %v, %v", ok, err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Empty and absent tags are the same value: both are stored without a
// "tags" field and load back as nil.
func TestRoundTripEmptyTags(t *testing.T) {
	due := date.New(2026, time.October, 20)
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			want := []*task.Task{
				{ID: "1", Title: "no tags", Status: task.StatusTodo, DueDate: &due, Tags: []string{}, UserID: "a"},
				{ID: "2", Title: "nil tags", Status: task.StatusDone, UserID: "a"},
			}
			if err := s.Save(KeyTasks, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			var got []*task.Task
			if _, err := s.Load(KeyTasks, &got); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if got[0].Tags != nil {
				t.Errorf("empty tags loaded as %#v, want nil", got[0].Tags)
			}
		})
	}
}

func TestLoadAbsentKey(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			var u user
			ok, err := s.Load(KeyUser, &u)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if ok {
				t.Error("Load reported a value for an absent key")
			}
		})
	}
}

func TestSaveOverwritesAndClear(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(KeyUser, user{Email: "a@x.com", UserID: "a"}); err != nil {
				t.Fatal(err)
			}
			if err := s.Save(KeyUser, user{Email: "b@x.com", UserID: "b"}); err != nil {
				t.Fatal(err)
			}
			var u user
			if _, err := s.Load(KeyUser, &u); err != nil {
				t.Fatal(err)
			}
			if u.UserID != "b" {
				t.Errorf("UserID = %q, want b", u.UserID)
			}

			if err := s.Clear(KeyUser); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if err := s.Clear(KeyUser); err != nil {
				t.Fatalf("second Clear: %v", err)
			}
			ok, err := s.Load(KeyUser, &u)
			if err != nil || ok {
				t.Errorf("Load after Clear = %v, %v", ok, err)
			}
		})
	}
}

func TestFileStoreCorruptValue(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(KeyTasks), []byte("[{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	var got []*task.Task
	_, err = s.Load(KeyTasks, &got)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := s.Save(KeyTasks, sampleTasks()); err != nil {
			t.Fatal(err)
		}
	}
	tmps, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tmps) != 0 {
		t.Errorf("temp files left behind: %v", tmps)
	}
}

func TestMemoryStoreCorruptValue(t *testing.T) {
	s := NewMemoryStore()
	s.SetRaw(KeyUser, []byte("{"))
	var u user
	if _, err := s.Load(KeyUser, &u); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestSQLiteStoreCorruptValue(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		KeyUser, "nope", "2026-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	var u user
	if _, err := s.Load(KeyUser, &u); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFileName)
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(KeyUser, user{Email: "a@x.com", UserID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	var u user
	ok, err := s.Load(KeyUser, &u)
	if err != nil || !ok || u.Email != "a@x.com" {
		t.Errorf("Load after reopen = %+v, %v, %v", u, ok, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(redis) error = %v, want ErrUnknownBackend", err)
	}
}
