package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/task"
)

// formDialog holds the text inputs behind the create/edit dialog. The
// authoritative values and errors live on the app form.
type formDialog struct {
	inputs map[string]*textinput.Model
	focus  int // index into app.Fields
}

var fieldLabels = map[string]string{
	task.FieldTitle:       "Title",
	task.FieldDescription: "Description",
	task.FieldDueDate:     "Due date",
	task.FieldStatus:      "Status",
	task.FieldTags:        "Tags",
}

var fieldPlaceholders = map[string]string{
	task.FieldTitle:       "What needs doing?",
	task.FieldDescription: "Details",
	task.FieldDueDate:     "YYYY-MM-DD",
	task.FieldTags:        "comma, separated",
}

func newFormDialog(f *app.Form) *formDialog {
	d := &formDialog{inputs: make(map[string]*textinput.Model)}
	for _, field := range app.Fields {
		if field == task.FieldStatus {
			continue
		}
		ti := newInput(fieldPlaceholders[field], 40) //nolint:mnd // dialog input width
		ti.Prompt = ""
		ti.SetValue(f.Value(field))
		d.inputs[field] = &ti
	}
	d.inputs[task.FieldTitle].Focus()
	return d
}

func (d *formDialog) focusedField() string {
	return app.Fields[d.focus]
}

func (d *formDialog) setFocus(i int) tea.Cmd {
	n := len(app.Fields)
	d.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for field, ti := range d.inputs {
		if field == d.focusedField() {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

func (b *Board) openCreate() (tea.Model, tea.Cmd) {
	cmd := b.dispatch(app.OpenCreate{})
	if f := b.state.Form(); f != nil {
		b.form = newFormDialog(f)
		b.view = viewForm
	}
	return b, cmd
}

func (b *Board) openEdit() (tea.Model, tea.Cmd) {
	t := b.selectedTask()
	if t == nil {
		return b, nil
	}
	cmd := b.dispatch(app.OpenEdit{ID: t.ID})
	if f := b.state.Form(); f != nil {
		b.form = newFormDialog(f)
		b.view = viewForm
	}
	return b, cmd
}

func (b *Board) closeForm() {
	b.form = nil
	b.view = viewBoard
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := b.form
	f := b.state.Form()
	if d == nil || f == nil {
		b.closeForm()
		return b, nil
	}

	switch {
	case key.Matches(msg, keys.Cancel):
		cmd := b.dispatch(app.CloseForm{})
		b.closeForm()
		return b, cmd
	case key.Matches(msg, keys.NextFld):
		return b, d.setFocus(d.focus + 1)
	case key.Matches(msg, keys.PrevFld):
		return b, d.setFocus(d.focus - 1)
	case key.Matches(msg, keys.Save):
		cmd := b.dispatch(app.CommitTask{})
		if b.state.Form() == nil {
			b.closeForm()
		}
		return b, cmd
	case key.Matches(msg, keys.Delete):
		cmd := b.dispatch(app.DeleteTask{})
		if b.state.Form() == nil {
			b.closeForm()
		}
		return b, cmd
	}

	field := d.focusedField()
	if field == task.FieldStatus {
		return b, b.cycleStatus(f, msg)
	}

	ti := d.inputs[field]
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if ti.Value() != before {
		return b, tea.Batch(cmd, b.dispatch(app.SetField{Field: field, Value: ti.Value()}))
	}
	return b, cmd
}

func (b *Board) cycleStatus(f *app.Form, msg tea.KeyMsg) tea.Cmd {
	step := 0
	switch {
	case key.Matches(msg, keys.Left):
		step = -1
	case key.Matches(msg, keys.Right), msg.Type == tea.KeySpace:
		step = 1
	default:
		return nil
	}
	n := len(task.Statuses)
	idx := (task.StatusIndex(f.Value(task.FieldStatus)) + step + n) % n
	return b.dispatch(app.SetField{Field: task.FieldStatus, Value: task.Statuses[idx]})
}
