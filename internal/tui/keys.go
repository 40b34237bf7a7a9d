package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	Detail  key.Binding
	Add     key.Binding
	Search  key.Binding
	Tag     key.Binding
	Sort    key.Binding
	Grab    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Reload  key.Binding
	Logout  key.Binding
	Help    key.Binding
	Quit    key.Binding
	ForceQ  key.Binding
	Drop    key.Binding
	Cancel  key.Binding
	Save    key.Binding
	Delete  key.Binding
	NextFld key.Binding
	PrevFld key.Binding
}

var keys = keyMap{
	Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "Move to left column")),
	Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "Move to right column")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "Move cursor up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "Move cursor down")),
	Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "Edit task")),
	Detail:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "Show task detail")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Add task")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search titles")),
	Tag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Filter by tag")),
	Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Toggle sort by due date")),
	Grab:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Grab task, then h/l and space to drop")),
	Next:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "Move task to next status")),
	Prev:    key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "Move task to previous status")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Refresh board")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "Log out")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show this help")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("esc/q", "Quit")),
	ForceQ:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Force quit")),
	Drop:    key.NewBinding(key.WithKeys(" ", "enter")),
	Cancel:  key.NewBinding(key.WithKeys("esc")),
	Save:    key.NewBinding(key.WithKeys("enter", "ctrl+s")),
	Delete:  key.NewBinding(key.WithKeys("ctrl+d")),
	NextFld: key.NewBinding(key.WithKeys("tab", "down")),
	PrevFld: key.NewBinding(key.WithKeys("shift+tab", "up")),
}

// helpBindings lists the board shortcuts shown on the help screen.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.Down, k.Up,
		k.Edit, k.Detail, k.Add,
		k.Search, k.Tag, k.Sort,
		k.Grab, k.Next, k.Prev,
		k.Reload, k.Logout, k.Help, k.Quit, k.ForceQ,
	}
}
