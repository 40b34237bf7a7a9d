package task

import (
	"strings"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/date"
)

// Form field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
	FieldStatus      = "status"
	FieldTags        = "tags"
)

// ValidationError is a failed rule for a single form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects per-field failures from one save attempt.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Field returns the error for the named field, or nil.
func (errs ValidationErrors) Field(name string) *ValidationError {
	for _, e := range errs {
		if e.Field == name {
			return e
		}
	}
	return nil
}

// ValidateTitle fails when the title is empty or whitespace only.
func ValidateTitle(title string) *ValidationError {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: FieldTitle, Message: "Title is required"}
	}
	return nil
}

// ValidateDueDate fails when the due date is missing, malformed, or
// before today. Today itself is accepted.
func ValidateDueDate(input string, today date.Date) *ValidationError {
	if input == "" {
		return &ValidationError{Field: FieldDueDate, Message: "Due date is required"}
	}
	d, err := date.Parse(input)
	if err != nil || d.Before(today) {
		return &ValidationError{Field: FieldDueDate, Message: "Due date must be today or a future date"}
	}
	return nil
}

// Validate runs the title and due date rules together.
func Validate(title, dueDate string, today date.Date) ValidationErrors {
	var errs ValidationErrors
	if e := ValidateTitle(title); e != nil {
		errs = append(errs, e)
	}
	if e := ValidateDueDate(dueDate, today); e != nil {
		errs = append(errs, e)
	}
	return errs
}

// ValidateStatus returns a CLI error for a status outside Statuses.
func ValidateStatus(status string) error {
	if IsStatus(status) {
		return nil
	}
	return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status).
		WithDetails(map[string]any{
			"status":  status,
			"allowed": Statuses,
		})
}

// ValidateDate returns a CLI error for unparsable date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ToCLIError converts validation failures into a single CLI error.
func (errs ValidationErrors) ToCLIError() *clierr.Error {
	fields := make(map[string]any, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	return clierr.New(clierr.ValidationFailed, errs.Error()).WithDetails(fields)
}
