// Package tui implements the interactive terminal board.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewLogin view = iota
	viewBoard
	viewDetail
	viewForm
	viewConfirmLogout
	viewHelp
)

// toolbarFocus is the toolbar input receiving keys, if any.
type toolbarFocus int

const (
	focusNone toolbarFocus = iota
	focusSearch
	focusTag
)

// Layout constants.
const (
	tagMaxFraction = 2 // tags get at most 1/N of card width
	toolbarHeight  = 2 // toolbar + blank line above the columns
	footerHeight   = 3 // blank line + toast line + status bar
	boardChrome    = toolbarHeight + footerHeight
	maxScrollOff   = 1<<31 - 1
)

// Board is the top-level bubbletea model. All task mutations go through
// the app state's Dispatch.
type Board struct {
	cfg   *config.Config
	state *app.State
	log   *slog.Logger
	now   func() time.Time

	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error

	login  textinput.Model
	search textinput.Model
	tag    textinput.Model
	focus  toolbarFocus

	form *formDialog

	detailTask      *task.Task
	detailScrollOff int

	seeding    bool
	lastNotice *app.Notification
}

// column groups visible tasks belonging to a single status.
type column struct {
	status    string
	tasks     []*task.Task
	scrollOff int // first visible row index
}

// NewBoard creates a Board over a restored state.
func NewBoard(cfg *config.Config, state *app.State, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Board{
		cfg:    cfg,
		state:  state,
		log:    logger,
		now:    time.Now,
		login:  newInput("you@example.com", 0),
		search: newInput("title", 20), //nolint:mnd // toolbar input width
		tag:    newInput("tag", 12),   //nolint:mnd // toolbar input width
	}
	b.login.Prompt = "Email: "
	b.search.Prompt = ""
	b.tag.Prompt = ""

	v := state.View()
	b.search.SetValue(v.Search)
	b.tag.SetValue(v.Tag)

	if state.User() == nil {
		b.view = viewLogin
		b.login.Focus()
	} else {
		b.view = viewBoard
	}
	b.refresh()
	return b
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = 256 //nolint:mnd // generous bound for a single field
	return ti
}

// SetNow overrides the clock used for due date labels (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model. A restored user without stored tasks gets
// the seed fetched.
func (b *Board) Init() tea.Cmd {
	if b.view == viewLogin {
		return textinput.Blink
	}
	if b.state.NeedsSeed() {
		return b.startSeed()
	}
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.MouseMsg:
		return b.handleMouse(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.clampRow()
		return b, nil
	case ReloadMsg:
		return b, b.reload()
	case seedMsg:
		b.seeding = false
		cmd := b.dispatch(app.SeedLoaded{Tasks: msg.tasks, Err: msg.err})
		if msg.err != nil {
			b.err = errors.New("could not load sample tasks")
		}
		return b, cmd
	case toastExpiredMsg:
		if n := b.state.Notification(); n != nil && n.ExpiresAt.Equal(msg.expiresAt) {
			_, _ = b.state.Dispatch(app.DismissNotification{})
		}
		return b, nil
	case WatchErrMsg:
		b.err = msg.Err
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewLogin:
		return b.viewLogin()
	case viewDetail:
		return b.viewDetail()
	case viewForm:
		return b.viewForm()
	case viewConfirmLogout:
		return b.viewLogoutConfirm()
	case viewHelp:
		return b.viewHelp()
	default:
		return b.viewBoard()
	}
}

// dispatch runs a command, refreshes the columns and schedules the
// dismissal of any new notification. Validation errors stay on the form.
func (b *Board) dispatch(cmd app.Command) tea.Cmd {
	_, err := b.state.Dispatch(cmd)
	var verrs task.ValidationErrors
	switch {
	case err == nil:
		b.err = nil
	case errors.As(err, &verrs):
	default:
		b.err = err
		b.log.Warn("command_failed", "command", commandName(cmd), "error", err)
	}
	b.refresh()
	return b.toastCmd()
}

func commandName(cmd app.Command) string {
	switch cmd.(type) {
	case app.CommitTask:
		return "commit_task"
	case app.DeleteTask:
		return "delete_task"
	case app.DropOn:
		return "drop"
	case app.SeedLoaded:
		return "seed"
	default:
		return "other"
	}
}

func (b *Board) toastCmd() tea.Cmd {
	n := b.state.Notification()
	if n == nil || n == b.lastNotice {
		return nil
	}
	b.lastNotice = n
	expiresAt := n.ExpiresAt
	return tea.Tick(b.cfg.NotificationDuration(), func(time.Time) tea.Msg {
		return toastExpiredMsg{expiresAt: expiresAt}
	})
}

func (b *Board) startSeed() tea.Cmd {
	fetch, err := b.state.SeedFunc()
	if err != nil {
		b.log.Warn("seed_unavailable", "error", err)
		return nil
	}
	b.seeding = true
	return func() tea.Msg {
		tasks, err := fetch(context.Background())
		return seedMsg{tasks: tasks, err: err}
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQ) {
		return b, tea.Quit
	}

	switch b.view {
	case viewLogin:
		return b.handleLoginKey(msg)
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewDetail:
		return b.handleDetailKey(msg)
	case viewForm:
		return b.handleFormKey(msg)
	case viewConfirmLogout:
		return b.handleLogoutKey(msg)
	case viewHelp:
		return b.handleHelpKey(msg)
	}
	return b, nil
}

func (b *Board) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return b, tea.Quit
	case tea.KeyEnter:
		_, err := b.state.Dispatch(app.Login{Email: b.login.Value()})
		if err != nil {
			b.err = err
			return b, nil
		}
		if b.state.User() == nil {
			return b, nil
		}
		b.err = nil
		b.login.Blur()
		b.login.SetValue("")
		b.view = viewBoard
		b.refresh()
		if b.state.NeedsSeed() {
			return b, b.startSeed()
		}
		return b, nil
	}
	var cmd tea.Cmd
	b.login, cmd = b.login.Update(msg)
	return b, cmd
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b.focus != focusNone {
		return b.handleToolbarKey(msg)
	}
	if b.state.Drag().Dragging() {
		return b.handleDragKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, keys.Help):
		b.view = viewHelp
	case key.Matches(msg, keys.Left, keys.Right, keys.Up, keys.Down):
		b.handleNavigation(msg)
	case key.Matches(msg, keys.Edit):
		return b.openEdit()
	case key.Matches(msg, keys.Detail):
		b.handleDetail()
	case key.Matches(msg, keys.Add):
		return b.openCreate()
	case key.Matches(msg, keys.Search):
		b.focus = focusSearch
		return b, b.search.Focus()
	case key.Matches(msg, keys.Tag):
		b.focus = focusTag
		return b, b.tag.Focus()
	case key.Matches(msg, keys.Sort):
		return b, b.dispatch(app.ToggleSort{})
	case key.Matches(msg, keys.Grab):
		if t := b.selectedTask(); t != nil {
			return b, b.dispatch(app.BeginDrag{ID: t.ID})
		}
	case key.Matches(msg, keys.Next):
		return b, b.moveBy(1)
	case key.Matches(msg, keys.Prev):
		return b, b.moveBy(-1)
	case key.Matches(msg, keys.Reload):
		return b, b.reload()
	case key.Matches(msg, keys.Logout):
		b.view = viewConfirmLogout
	}
	return b, nil
}

func (b *Board) handleToolbarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := &b.search
	if b.focus == focusTag {
		input = &b.tag
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || msg.Type == tea.KeyTab {
		input.Blur()
		b.focus = focusNone
		return b, nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	var dcmd tea.Cmd
	if b.focus == focusSearch {
		dcmd = b.dispatch(app.SetSearch{Term: input.Value()})
	} else {
		dcmd = b.dispatch(app.SetTag{Tag: input.Value()})
	}
	return b, tea.Batch(cmd, dcmd)
}

// handleDragKey drives a keyboard drag: h/l pick the column, space or
// enter drops, esc cancels.
func (b *Board) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := b.state.Drag()
	switch {
	case key.Matches(msg, keys.Left, keys.Right):
		step := 1
		if key.Matches(msg, keys.Left) {
			step = -1
		}
		idx := task.StatusIndex(d.Hover()) + step
		if idx >= 0 && idx < len(task.Statuses) {
			d.SetHover(task.Statuses[idx])
		}
	case key.Matches(msg, keys.Drop):
		return b, b.dispatch(app.DropOn{Target: d.Hover()})
	case key.Matches(msg, keys.Cancel):
		return b, b.dispatch(app.CancelDrag{})
	}
	return b, nil
}

func (b *Board) handleNavigation(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Left):
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case key.Matches(msg, keys.Right):
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case key.Matches(msg, keys.Down):
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case key.Matches(msg, keys.Up):
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	}
}

func (b *Board) handleDetail() {
	if t := b.selectedTask(); t != nil {
		b.detailTask = t
		b.detailScrollOff = 0
		b.view = viewDetail
	}
}

// moveBy moves the selected task step columns over using the same drop
// rules as a drag.
func (b *Board) moveBy(step int) tea.Cmd {
	t := b.selectedTask()
	if t == nil {
		return nil
	}
	idx := task.StatusIndex(t.Status) + step
	if idx < 0 || idx >= len(task.Statuses) {
		return nil
	}
	b.dispatch(app.BeginDrag{ID: t.ID})
	if !b.state.Drag().Dragging() {
		return nil
	}
	return b.dispatch(app.DropOn{Target: task.Statuses[idx]})
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		b.view = viewBoard
		b.detailTask = nil
		b.detailScrollOff = 0
	case "j", "down":
		b.detailScrollOff++
	case "k", "up":
		if b.detailScrollOff > 0 {
			b.detailScrollOff--
		}
	case "g":
		b.detailScrollOff = 0
	case "G":
		// Set to large value; viewDetail will clamp it.
		b.detailScrollOff = maxScrollOff
	}
	return b, nil
}

func (b *Board) handleLogoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		cmd := b.dispatch(app.Logout{})
		b.search.SetValue("")
		b.tag.SetValue("")
		b.activeCol, b.activeRow = 0, 0
		b.view = viewLogin
		return b, tea.Batch(cmd, b.login.Focus())
	case "n", "N", "esc", "q":
		b.view = viewBoard
	}
	return b, nil
}

// reload re-reads the store, then follows a login or logout made by
// another process.
func (b *Board) reload() tea.Cmd {
	cmd := b.dispatch(app.Reload{})
	return tea.Batch(cmd, b.syncSession())
}

func (b *Board) syncSession() tea.Cmd {
	loggedIn := b.state.User() != nil
	switch {
	case !loggedIn && b.view != viewLogin:
		b.search.Blur()
		b.tag.Blur()
		b.search.SetValue("")
		b.tag.SetValue("")
		_, _ = b.state.Dispatch(app.SetSearch{})
		_, _ = b.state.Dispatch(app.SetTag{})
		_, _ = b.state.Dispatch(app.CloseForm{})
		_, _ = b.state.Dispatch(app.CancelDrag{})
		b.focus = focusNone
		b.detailTask = nil
		b.activeCol, b.activeRow = 0, 0
		b.view = viewLogin
		b.refresh()
		return b.login.Focus()
	case loggedIn && b.view == viewLogin:
		b.login.Blur()
		b.login.SetValue("")
		b.view = viewBoard
		b.refresh()
		if b.state.NeedsSeed() && !b.seeding {
			return b.startSeed()
		}
	}
	return nil
}

func (b *Board) handleHelpKey(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.view = viewBoard
	return b, nil
}

// refresh rebuilds the columns from the state's visible tasks, keeping
// the selection on the same task where possible.
func (b *Board) refresh() {
	selected := ""
	if t := b.selectedTask(); t != nil {
		selected = t.ID
	}

	parts := b.state.Columns()
	old := b.columns
	b.columns = make([]column, len(task.Statuses))
	for i, status := range task.Statuses {
		b.columns[i] = column{status: status, tasks: parts[status]}
		if i < len(old) {
			b.columns[i].scrollOff = old[i].scrollOff
		}
	}

	if selected != "" {
		b.selectTask(selected)
	}
	b.clampRow()
}

// selectTask moves the cursor onto the task with the given id, if visible.
func (b *Board) selectTask(id string) {
	if id == "" {
		return
	}
	for ci, col := range b.columns {
		for ri, t := range col.tasks {
			if t.ID == id {
				b.activeCol, b.activeRow = ci, ri
				b.ensureVisible()
				return
			}
		}
	}
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) today() date.Date {
	return date.Today(b.now())
}

// cardHeight returns the height of a single card in lines:
// top border + title lines + 1 detail line + bottom border.
func (b *Board) cardHeight() int {
	return b.cfg.TitleLines() + 3 //nolint:mnd // borders(2) + detail line(1)
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (b *Board) visibleCardsForColumn(col *column) int {
	budget := b.height - boardChrome
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail--
	}

	ch := b.cardHeight()
	n := max(avail/ch, 1)

	if col.scrollOff+n < len(col.tasks) {
		// Re-compute with 1 fewer line for the down indicator.
		n = max((avail-1)/ch, 1)
	}
	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	maxVis := b.visibleCardsForColumn(col)

	if b.activeRow >= col.scrollOff+maxVis {
		col.scrollOff = b.activeRow - maxVis + 1
	}
	if b.activeRow < col.scrollOff {
		col.scrollOff = b.activeRow
	}
}

// WatchPaths returns the paths that should be watched for store changes.
func (b *Board) WatchPaths() []string {
	return []string{b.cfg.Dir()}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

// WatchErrMsg reports a file watcher failure.
type WatchErrMsg struct{ Err error }

type seedMsg struct {
	tasks []*task.Task
	err   error
}

type toastExpiredMsg struct{ expiresAt time.Time }
