package app

import (
	"fmt"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/task"
)

// FormMode distinguishes creating from editing.
type FormMode int

// Form modes.
const (
	FormCreate FormMode = iota
	FormEdit
)

// Fields lists the form fields in display order.
var Fields = []string{
	task.FieldTitle,
	task.FieldDescription,
	task.FieldDueDate,
	task.FieldStatus,
	task.FieldTags,
}

// Form is the create/edit dialog's field buffer. Values are raw text as
// typed; they are parsed only when the form is committed.
type Form struct {
	Mode   FormMode
	TaskID string // edit mode only

	values map[string]string
	errors map[string]string
}

// NewCreateForm returns a blank form with status todo.
func NewCreateForm() *Form {
	return &Form{
		Mode: FormCreate,
		values: map[string]string{
			task.FieldStatus: task.StatusTodo,
		},
		errors: map[string]string{},
	}
}

// NewEditForm returns a form pre-filled from t.
func NewEditForm(t *task.Task) *Form {
	f := &Form{
		Mode:   FormEdit,
		TaskID: t.ID,
		values: map[string]string{
			task.FieldTitle:       t.Title,
			task.FieldDescription: t.Description,
			task.FieldStatus:      t.Status,
			task.FieldTags:        task.JoinTags(t.Tags),
		},
		errors: map[string]string{},
	}
	if t.DueDate != nil {
		f.values[task.FieldDueDate] = t.DueDate.String()
	}
	return f
}

// Value returns the raw text of a field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Error returns the validation message for a field, or "".
func (f *Form) Error(field string) string {
	return f.errors[field]
}

// HasErrors reports whether any field currently shows an error.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// set stores a field value. A shown error on that field is cleared as
// soon as the new value passes the field's own rule.
func (f *Form) set(field, value string, today date.Date) error {
	switch field {
	case task.FieldTitle:
		if task.ValidateTitle(value) == nil {
			delete(f.errors, field)
		}
	case task.FieldDueDate:
		if task.ValidateDueDate(value, today) == nil {
			delete(f.errors, field)
		}
	case task.FieldStatus:
		if err := task.ValidateStatus(value); err != nil {
			return err
		}
	case task.FieldDescription, task.FieldTags:
	default:
		return clierr.Newf(clierr.InvalidInput, "unknown field %q", field)
	}
	f.values[field] = value
	return nil
}

// validate checks every rule and records the failures per field.
func (f *Form) validate(today date.Date) task.ValidationErrors {
	errs := task.Validate(f.values[task.FieldTitle], f.values[task.FieldDueDate], today)
	f.errors = make(map[string]string, len(errs))
	for _, e := range errs {
		f.errors[e.Field] = e.Message
	}
	return errs
}

// apply writes the form's values onto t. The form must have validated.
func (f *Form) apply(t *task.Task) error {
	d, err := date.Parse(f.values[task.FieldDueDate])
	if err != nil {
		return fmt.Errorf("due date: %w", err)
	}
	t.Title = f.values[task.FieldTitle]
	t.Description = f.values[task.FieldDescription]
	t.Status = f.values[task.FieldStatus]
	t.DueDate = &d
	t.Tags = task.ParseTags(f.values[task.FieldTags])
	return nil
}
