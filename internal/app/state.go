// Package app holds the board's application state and the controllers
// that mutate it: session, drag-and-drop, the task form and notifications.
// Views never mutate tasks directly; they dispatch commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/task"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 3 * time.Second

// ErrNotLoggedIn is returned by commands that need a current user.
var ErrNotLoggedIn = errors.New("not logged in")

// User is the persisted current user.
type User struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// Seeder produces the placeholder tasks for a fresh board.
type Seeder interface {
	Fetch(ctx context.Context, userID string, today date.Date) ([]*task.Task, error)
}

// Options configures a State. Store is required.
type Options struct {
	Store           store.Store
	Seeder          Seeder       // nil disables seeding
	Logger          *slog.Logger // nil discards
	Now             func() time.Time
	NewID           func() string
	ActivityDir     string        // empty disables the activity log
	NotificationTTL time.Duration // zero means DefaultNotificationTTL
}

// State is the single owner of the user, the task collection and the
// transient UI state around it.
type State struct {
	store       store.Store
	seeder      Seeder
	log         *slog.Logger
	now         func() time.Time
	newID       func() string
	activityDir string
	ttl         time.Duration

	user        *User
	tasks       []*task.Task
	tasksStored bool

	view   board.ViewOptions
	form   *Form
	drag   DragCoordinator
	notice *Notification
}

// New creates a State. Call Restore to load persisted data.
func New(opts Options) *State {
	s := &State{
		store:       opts.Store,
		seeder:      opts.Seeder,
		log:         opts.Logger,
		now:         opts.Now,
		newID:       opts.NewID,
		activityDir: opts.ActivityDir,
		ttl:         opts.NotificationTTL,
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.ttl <= 0 {
		s.ttl = DefaultNotificationTTL
	}
	return s
}

// Restore loads the persisted user and tasks. Corrupt values are logged
// and treated as absent.
func (s *State) Restore() error {
	var u User
	found, err := s.store.Load(store.KeyUser, &u)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		s.log.Warn("corrupt_user_ignored", "error", err)
		s.user = nil
	case err != nil:
		return fmt.Errorf("restoring user: %w", err)
	case found:
		s.user = &u
	default:
		s.user = nil
	}

	tasks, found, err := s.loadTasks()
	if err != nil {
		return err
	}
	s.tasks, s.tasksStored = tasks, found
	s.log.Debug("state_restored", "logged_in", s.user != nil, "tasks", len(s.tasks))
	return nil
}

// loadTasks reads the tasks key. found is false when the key is absent or corrupt.
func (s *State) loadTasks() ([]*task.Task, bool, error) {
	var tasks []*task.Task
	found, err := s.store.Load(store.KeyTasks, &tasks)
	if errors.Is(err, store.ErrCorrupt) {
		s.log.Warn("corrupt_tasks_ignored", "error", err)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("restoring tasks: %w", err)
	}
	return tasks, found, nil
}

// User returns the current user, or nil when logged out.
func (s *State) User() *User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// NeedsSeed reports a logged-in user with no stored task collection.
func (s *State) NeedsSeed() bool {
	return s.user != nil && !s.tasksStored
}

// Tasks returns a copy of the whole collection, every user included.
func (s *State) Tasks() []*task.Task {
	return task.CloneAll(s.tasks)
}

// Task returns a copy of the task with the given id.
func (s *State) Task(id string) (*task.Task, error) {
	t, err := task.FindByID(s.tasks, id)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// View returns the current filter and sort settings.
func (s *State) View() board.ViewOptions {
	return s.view
}

// SetView replaces the filter and sort settings.
func (s *State) SetView(v board.ViewOptions) {
	s.view = v
}

// Visible returns the current user's tasks after the filter/sort pipeline.
func (s *State) Visible() []*task.Task {
	if s.user == nil {
		return []*task.Task{}
	}
	return board.Visible(s.tasks, s.user.UserID, s.view)
}

// Columns partitions the visible tasks by status.
func (s *State) Columns() board.Columns {
	return board.Partition(s.Visible())
}

// Form returns the open form, or nil.
func (s *State) Form() *Form {
	return s.form
}

// Drag returns the drag-and-drop coordinator.
func (s *State) Drag() *DragCoordinator {
	return &s.drag
}

// Notification returns the active notification, dropping it once expired.
func (s *State) Notification() *Notification {
	if s.notice != nil && s.notice.Expired(s.now()) {
		s.notice = nil
	}
	return s.notice
}

func (s *State) today() date.Date {
	return date.Today(s.now())
}

func (s *State) requireUser() error {
	if s.user == nil {
		return ErrNotLoggedIn
	}
	return nil
}

// commit persists next and, only once that succeeds, makes it the
// in-memory collection. A failed write leaves both sides unchanged.
func (s *State) commit(next []*task.Task) error {
	if err := s.store.Save(store.KeyTasks, next); err != nil {
		s.log.Error("tasks_save_failed", "error", err)
		s.notify("Could not save tasks: "+err.Error(), SeverityError)
		return fmt.Errorf("saving tasks: %w", err)
	}
	s.tasks, s.tasksStored = next, true
	return nil
}

// record appends to the activity log. Failures are logged only.
func (s *State) record(action, taskID, detail string) {
	if s.activityDir == "" {
		return
	}
	entry := board.LogEntry{
		Timestamp: s.now().UTC(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	}
	if s.user != nil {
		entry.UserID = s.user.UserID
	}
	if err := board.AppendLog(s.activityDir, entry); err != nil {
		s.log.Warn("activity_log_failed", "action", action, "error", err)
	}
}
