package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes data as indented JSON.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	_ = JSON(w, resp) // best-effort; if the writer fails, nothing we can do
}

// MoveResult is the JSON body for a move.
type MoveResult struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Unchanged bool   `json:"unchanged,omitempty"`
}

// SessionResult is the JSON body for login and whoami.
type SessionResult struct {
	Email     string `json:"email"`
	UserID    string `json:"userId"`
	TaskCount int    `json:"taskCount"`
	Seeded    bool   `json:"seeded,omitempty"`
}
