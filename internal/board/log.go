package board

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LogFileName is the activity log file inside the data directory.
const LogFileName = "activity.jsonl"

// maxLogEntries caps the log; older entries are dropped on append.
const maxLogEntries = 1000

const logFileMode = 0o600

// LogEntry records one board mutation.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    string    `json:"task_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Detail    string    `json:"detail"`
}

// LogFilterOptions narrows ReadLog results.
type LogFilterOptions struct {
	Since  time.Time
	Action string
	TaskID string
	Limit  int // most recent N after filtering
}

// AppendLog adds an entry to the activity log, trimming the oldest entries
// once the log grows past maxLogEntries.
func AppendLog(dir string, entry LogEntry) error {
	path := filepath.Join(dir, LogFileName)

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding log entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode) //nolint:gosec // path inside data dir
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing activity log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing activity log: %w", err)
	}

	return truncateLog(path)
}

func truncateLog(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path inside data dir
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) <= maxLogEntries {
		return nil
	}
	kept := bytes.Join(lines[len(lines)-maxLogEntries:], []byte("\n"))
	kept = append(kept, '\n')
	return os.WriteFile(path, kept, logFileMode)
}

// ReadLog returns log entries oldest first. A missing log yields nil.
// Lines that fail to decode are skipped.
func ReadLog(dir string, opts LogFilterOptions) ([]LogEntry, error) {
	f, err := os.Open(filepath.Join(dir, LogFileName)) //nolint:gosec // path inside data dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading activity log: %w", readErr)
		}
		if e, ok := decodeEntry(line); ok && opts.match(e) {
			entries = append(entries, e)
		}
		if readErr != nil {
			break
		}
	}

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}
	return entries, nil
}

// decodeEntry parses one log line. Blank and malformed lines are rejected.
func decodeEntry(line []byte) (LogEntry, bool) {
	var e LogEntry
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return e, false
	}
	if err := json.Unmarshal(line, &e); err != nil {
		return e, false
	}
	return e, true
}

func (opts LogFilterOptions) match(e LogEntry) bool {
	if !opts.Since.IsZero() && e.Timestamp.Before(opts.Since) {
		return false
	}
	if opts.Action != "" && e.Action != opts.Action {
		return false
	}
	return opts.TaskID == "" || e.TaskID == opts.TaskID
}
