package app

import (
	"fmt"

	"github.com/antopolskiy/taskboard/internal/task"
)

// DragPhase is the coordinator's state.
type DragPhase int

// Drag phases. A drop resolves immediately to a DropOutcome and the
// coordinator returns to DragIdle.
const (
	DragIdle DragPhase = iota
	DragDragging
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return fmt.Sprintf("DragPhase(%d)", int(p))
	}
}

// DropOutcome describes how a drop resolved.
type DropOutcome struct {
	TaskID string
	From   string
	To     string
	Moved  bool // false for a no-op drop
}

// DragCoordinator tracks one drag gesture at a time.
type DragCoordinator struct {
	phase  DragPhase
	taskID string
	hover  string
}

// Phase returns the current phase.
func (d *DragCoordinator) Phase() DragPhase { return d.phase }

// TaskID returns the id of the dragged task, or "" when idle.
func (d *DragCoordinator) TaskID() string { return d.taskID }

// Hover returns the column the keyboard drag currently points at.
func (d *DragCoordinator) Hover() string { return d.hover }

// Dragging reports whether a drag is in progress.
func (d *DragCoordinator) Dragging() bool { return d.phase == DragDragging }

// SetHover moves the keyboard drop target. Ignored while idle.
func (d *DragCoordinator) SetHover(status string) {
	if d.phase == DragDragging && task.IsStatus(status) {
		d.hover = status
	}
}

// Cancel abandons the drag without effect.
func (d *DragCoordinator) Cancel() {
	d.phase = DragIdle
	d.taskID = ""
	d.hover = ""
}

// begin starts dragging t. The hover column starts at t's own status.
func (d *DragCoordinator) begin(t *task.Task) {
	d.phase = DragDragging
	d.taskID = t.ID
	d.hover = t.Status
}

// resolve ends the drag and decides whether dropping on target moves t.
// The move is valid only for a known status different from t's.
func (d *DragCoordinator) resolve(t *task.Task, target string) DropOutcome {
	out := DropOutcome{TaskID: t.ID, From: t.Status, To: target}
	out.Moved = task.IsStatus(target) && target != t.Status
	d.Cancel()
	return out
}
