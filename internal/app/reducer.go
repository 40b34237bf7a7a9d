package app

import (
	"fmt"
	"slices"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/task"
)

// Command is an intent dispatched by a view.
type Command interface {
	command()
}

// Commands.
type (
	Login               struct{ Email string }
	Logout              struct{}
	SetSearch           struct{ Term string }
	SetTag              struct{ Tag string }
	ToggleSort          struct{}
	OpenCreate          struct{}
	OpenEdit            struct{ ID string }
	SetField            struct{ Field, Value string }
	CommitTask          struct{}
	DeleteTask          struct{ ID string } // empty ID means the task open in the form
	CloseForm           struct{}
	BeginDrag           struct{ ID string }
	DropOn              struct{ Target string }
	CancelDrag          struct{}
	DismissNotification struct{}

	// SeedLoaded delivers the result of a SeedFunc fetch.
	SeedLoaded struct {
		Tasks []*task.Task
		Err   error
	}
	// Reload re-reads the store after an outside change.
	Reload struct{}
)

func (Login) command()               {}
func (Logout) command()              {}
func (SetSearch) command()           {}
func (SetTag) command()              {}
func (ToggleSort) command()          {}
func (OpenCreate) command()          {}
func (OpenEdit) command()            {}
func (SetField) command()            {}
func (CommitTask) command()          {}
func (DeleteTask) command()          {}
func (CloseForm) command()           {}
func (BeginDrag) command()           {}
func (DropOn) command()              {}
func (CancelDrag) command()          {}
func (DismissNotification) command() {}
func (SeedLoaded) command()          {}
func (Reload) command()              {}

// Result reports what a command did.
type Result struct {
	Task         *task.Task    // copy of the task created, changed or removed
	Changed      bool          // the task collection was written
	SeedNeeded   bool          // Login found no task collection
	Drop         *DropOutcome  // set by DropOn
	Notification *Notification // set when the command raised one
}

// Dispatch applies cmd to the state. Validation failures are returned as
// task.ValidationErrors and are also kept on the form.
func (s *State) Dispatch(cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case Login:
		seed, err := s.login(c.Email)
		return Result{SeedNeeded: seed}, err
	case Logout:
		return Result{Changed: true}, s.logout()
	case SetSearch:
		s.view.Search = c.Term
		return Result{}, nil
	case SetTag:
		s.view.Tag = c.Tag
		return Result{}, nil
	case ToggleSort:
		s.view.SortByDue = !s.view.SortByDue
		return Result{}, nil
	case OpenCreate:
		if err := s.requireUser(); err != nil {
			return Result{}, err
		}
		s.form = NewCreateForm()
		return Result{}, nil
	case OpenEdit:
		return s.openEdit(c.ID)
	case SetField:
		if s.form == nil {
			return Result{}, errNoForm
		}
		return Result{}, s.form.set(c.Field, c.Value, s.today())
	case CommitTask:
		return s.commitForm()
	case DeleteTask:
		return s.deleteTask(c.ID)
	case CloseForm:
		s.form = nil
		return Result{}, nil
	case BeginDrag:
		return s.beginDrag(c.ID)
	case DropOn:
		return s.dropOn(c.Target)
	case CancelDrag:
		s.drag.Cancel()
		return Result{}, nil
	case DismissNotification:
		s.notice = nil
		return Result{}, nil
	case SeedLoaded:
		if err := s.applySeed(c.Tasks, c.Err); err != nil {
			return Result{}, err
		}
		return Result{Changed: true}, nil
	case Reload:
		return Result{}, s.Restore()
	default:
		return Result{}, fmt.Errorf("unknown command %T", cmd)
	}
}

var errNoForm = clierr.New(clierr.InvalidInput, "no form is open")

func (s *State) openEdit(id string) (Result, error) {
	if err := s.requireUser(); err != nil {
		return Result{}, err
	}
	t, err := s.ownTask(id)
	if err != nil {
		return Result{}, err
	}
	s.form = NewEditForm(t)
	return Result{Task: t.Clone()}, nil
}

// ownTask finds id among the current user's tasks.
func (s *State) ownTask(id string) (*task.Task, error) {
	t, err := task.FindByID(s.tasks, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != s.user.UserID {
		return nil, task.NotFoundError(id)
	}
	return t, nil
}

func (s *State) commitForm() (Result, error) {
	if err := s.requireUser(); err != nil {
		return Result{}, err
	}
	f := s.form
	if f == nil {
		return Result{}, errNoForm
	}
	if errs := f.validate(s.today()); len(errs) > 0 {
		return Result{}, errs
	}

	next := task.CloneAll(s.tasks)
	var (
		saved  *task.Task
		msg    string
		action string
	)
	switch f.Mode {
	case FormCreate:
		saved = &task.Task{ID: s.newID(), UserID: s.user.UserID}
		if err := f.apply(saved); err != nil {
			return Result{}, err
		}
		next = append(next, saved)
		msg, action = "Task added successfully.", "create"
	case FormEdit:
		i := task.IndexByID(next, f.TaskID)
		if i < 0 {
			return Result{}, task.NotFoundError(f.TaskID)
		}
		saved = next[i]
		if err := f.apply(saved); err != nil {
			return Result{}, err
		}
		msg, action = "Task updated successfully.", "edit"
	}

	if err := s.commit(next); err != nil {
		return Result{}, err
	}
	s.form = nil
	s.record(action, saved.ID, saved.Title)
	s.log.Debug("task_saved", "action", action, "task_id", saved.ID)
	return Result{
		Task:         saved.Clone(),
		Changed:      true,
		Notification: s.notify(msg, SeveritySuccess),
	}, nil
}

func (s *State) deleteTask(id string) (Result, error) {
	if err := s.requireUser(); err != nil {
		return Result{}, err
	}
	if id == "" {
		if s.form == nil || s.form.Mode != FormEdit {
			return Result{}, clierr.New(clierr.InvalidInput, "delete is only available while editing a task")
		}
		id = s.form.TaskID
	}
	t, err := s.ownTask(id)
	if err != nil {
		return Result{}, err
	}
	removed := t.Clone()
	next := slices.DeleteFunc(task.CloneAll(s.tasks), func(x *task.Task) bool { return x.ID == id })
	if err := s.commit(next); err != nil {
		return Result{}, err
	}
	if s.form != nil && s.form.TaskID == id {
		s.form = nil
	}
	s.record("delete", id, removed.Title)
	return Result{
		Task:         removed,
		Changed:      true,
		Notification: s.notify("Task deleted.", SeveritySuccess),
	}, nil
}

func (s *State) beginDrag(id string) (Result, error) {
	if err := s.requireUser(); err != nil {
		return Result{}, err
	}
	t, err := s.ownTask(id)
	if err != nil {
		return Result{}, err
	}
	s.drag.begin(t)
	return Result{}, nil
}

func (s *State) dropOn(target string) (Result, error) {
	if !s.drag.Dragging() {
		return Result{}, nil
	}
	i := task.IndexByID(s.tasks, s.drag.TaskID())
	if i < 0 {
		// Removed by a reload while dragging.
		s.drag.Cancel()
		return Result{}, nil
	}
	out := s.drag.resolve(s.tasks[i], target)
	res := Result{Drop: &out, Task: s.tasks[i].Clone()}
	if !out.Moved {
		return res, nil
	}

	next := task.CloneAll(s.tasks)
	next[i].Status = out.To
	if err := s.commit(next); err != nil {
		return Result{}, err
	}
	s.record("move", out.TaskID, out.From+" -> "+out.To)
	res.Task = next[i].Clone()
	res.Changed = true
	res.Notification = s.notify("Task moved to "+out.To, SeveritySuccess)
	return res, nil
}
