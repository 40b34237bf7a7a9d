package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/store"
	"github.com/antopolskiy/taskboard/internal/task"
)

// ErrSeedUnavailable is returned when seeding is requested without a Seeder.
var ErrSeedUnavailable = errors.New("no seed source configured")

// UserIDFromEmail derives the user id: everything before the first '@',
// or the whole input when there is none.
func UserIDFromEmail(email string) string {
	id, _, _ := strings.Cut(email, "@")
	return id
}

// login persists the user. seedNeeded reports that no task collection exists.
func (s *State) login(email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	u := &User{Email: email, UserID: UserIDFromEmail(email)}
	if err := s.store.Save(store.KeyUser, u); err != nil {
		s.notify("Could not save user: "+err.Error(), SeverityError)
		return false, fmt.Errorf("saving user: %w", err)
	}
	s.user = u
	s.log.Info("user_logged_in", "user_id", u.UserID)
	s.record("login", "", u.Email)

	tasks, found, err := s.loadTasks()
	if err != nil {
		return false, err
	}
	s.tasks, s.tasksStored = tasks, found
	return !found, nil
}

// logout clears the persisted user and the whole task collection. Tasks
// of every user are removed, not only the current user's.
func (s *State) logout() error {
	s.record("logout", "", "")
	var errs []error
	for _, key := range []string{store.KeyUser, store.KeyTasks} {
		if err := s.store.Clear(key); err != nil {
			errs = append(errs, fmt.Errorf("clearing %s: %w", key, err))
		}
	}
	if s.user != nil {
		s.log.Info("user_logged_out", "user_id", s.user.UserID)
	}
	s.user = nil
	s.tasks, s.tasksStored = nil, false
	s.form = nil
	s.drag.Cancel()
	s.view = board.ViewOptions{}
	return errors.Join(errs...)
}

// SeedFunc returns a fetch bound to the current user and day. It does not
// touch the State, so it may run off the event loop; deliver its result
// with SeedLoaded.
func (s *State) SeedFunc() (func(ctx context.Context) ([]*task.Task, error), error) {
	if err := s.requireUser(); err != nil {
		return nil, err
	}
	if s.seeder == nil {
		return nil, ErrSeedUnavailable
	}
	seeder, userID, today := s.seeder, s.user.UserID, s.today()
	return func(ctx context.Context) ([]*task.Task, error) {
		return seeder.Fetch(ctx, userID, today)
	}, nil
}

// applySeed stores seeded tasks. It writes even when the user has logged
// out since the fetch started.
func (s *State) applySeed(tasks []*task.Task, fetchErr error) error {
	if fetchErr != nil {
		s.log.Warn("seed_failed", "error", fetchErr)
		return fmt.Errorf("seeding tasks: %w", fetchErr)
	}
	if err := s.commit(tasks); err != nil {
		return err
	}
	s.log.Info("seed_loaded", "count", len(tasks))
	s.record("seed", "", fmt.Sprintf("%d tasks", len(tasks)))
	return nil
}

// Login logs in and, when no task collection exists, seeds it
// synchronously. A seed failure leaves the collection empty and is
// returned alongside the successful login.
func (s *State) Login(ctx context.Context, email string) error {
	res, err := s.Dispatch(Login{Email: email})
	if err != nil || !res.SeedNeeded || s.seeder == nil {
		return err
	}
	fetch, err := s.SeedFunc()
	if err != nil {
		return err
	}
	tasks, fetchErr := fetch(ctx)
	_, err = s.Dispatch(SeedLoaded{Tasks: tasks, Err: fetchErr})
	return err
}
