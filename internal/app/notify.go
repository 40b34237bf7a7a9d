package app

import "time"

// Severity of a notification.
type Severity string

// Severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient message shown after an action.
type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

// Expired reports whether the notification should no longer be shown.
func (n *Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// notify replaces any active notification.
func (s *State) notify(msg string, sev Severity) *Notification {
	s.notice = &Notification{
		Message:   msg,
		Severity:  sev,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return s.notice
}
