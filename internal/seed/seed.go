// Package seed builds placeholder tasks from a remote content listing the
// first time a user logs in to an empty board.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/task"
)

// Defaults for the placeholder source.
const (
	DefaultURL     = "https://jsonplaceholder.typicode.com/posts"
	DefaultCount   = 9
	DefaultTimeout = 10 * time.Second

	// SampleTag is attached to every seeded task.
	SampleTag = "sample"
)

// ErrBadResponse indicates the endpoint answered with a non-2xx status.
var ErrBadResponse = errors.New("unexpected response from seed endpoint")

// post is one entry of the remote listing. Only these fields are used.
type post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Loader fetches the listing and turns its head into tasks.
type Loader struct {
	client *http.Client
	url    string
	count  int
}

// NewLoader returns a Loader. Zero values fall back to the defaults.
func NewLoader(url string, count int, timeout time.Duration) *Loader {
	if url == "" {
		url = DefaultURL
	}
	if count <= 0 {
		count = DefaultCount
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		client: &http.Client{Timeout: timeout},
		url:    url,
		count:  count,
	}
}

// Fetch retrieves the listing and returns up to Count tasks owned by
// userID. Entry i gets status Statuses[i mod 3] and is due today+i days.
// There is no retry; any failure is returned as is.
func (l *Loader) Fetch(ctx context.Context, userID string, today date.Date) ([]*task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building seed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, resp.Status)
	}

	var posts []post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decoding seed data: %w", err)
	}

	return buildTasks(posts, l.count, userID, today), nil
}

func buildTasks(posts []post, limit int, userID string, today date.Date) []*task.Task {
	if len(posts) > limit {
		posts = posts[:limit]
	}
	tasks := make([]*task.Task, 0, len(posts))
	for i, p := range posts {
		due := today.AddDays(i)
		tasks = append(tasks, &task.Task{
			ID:          strconv.Itoa(p.ID),
			Title:       p.Title,
			Description: p.Body,
			Status:      task.Statuses[i%len(task.Statuses)],
			DueDate:     &due,
			Tags:        []string{SampleTag},
			UserID:      userID,
		})
	}
	return tasks
}
