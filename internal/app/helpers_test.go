package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/task"
)

var (
	fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	today    = date.Today(fixedNow)
)

// clock is an adjustable time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

// stubSeeder returns fixed tasks or an error and counts calls.
type stubSeeder struct {
	tasks []*task.Task
	err   error
	calls int
}

func (s *stubSeeder) Fetch(_ context.Context, userID string, _ date.Date) ([]*task.Task, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := task.CloneAll(s.tasks)
	for _, t := range out {
		t.UserID = userID
	}
	return out, nil
}

// failingStore wraps a MemoryStore and fails every Save once armed.
type failingStore struct {
	*store.MemoryStore
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Save(key string, v any) error {
	if f.fail {
		return errDiskFull
	}
	return f.MemoryStore.Save(key, v)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	state  *State
	store  *store.MemoryStore
	clock  *clock
	seeder *stubSeeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  store.NewMemoryStore(),
		clock:  &clock{now: fixedNow},
		seeder: &stubSeeder{},
	}
	f.state = New(Options{
		Store:  f.store,
		Seeder: f.seeder,
		Now:    f.clock.Now,
		NewID:  sequentialIDs(),
	})
	return f
}

func due(days int) *date.Date {
	d := today.AddDays(days)
	return &d
}

// loggedIn returns a fixture logged in as a@x.com with the given tasks stored.
func loggedIn(t *testing.T, tasks ...*task.Task) *fixture {
	t.Helper()
	f := newFixture(t)
	if tasks == nil {
		tasks = []*task.Task{}
	}
	if err := f.store.Save(store.KeyTasks, tasks); err != nil {
		t.Fatal(err)
	}
	if err := f.state.Login(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return f
}

func storedTasks(t *testing.T, s store.Store) []*task.Task {
	t.Helper()
	var tasks []*task.Task
	if _, err := s.Load(store.KeyTasks, &tasks); err != nil {
		t.Fatalf("loading stored tasks: %v", err)
	}
	return tasks
}

func mustDispatch(t *testing.T, s *State, cmd Command) Result {
	t.Helper()
	res, err := s.Dispatch(cmd)
	if err != nil {
		t.Fatalf("Dispatch(%T): %v", cmd, err)
	}
	return res
}
