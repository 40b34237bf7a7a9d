package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/app"
	"github.com/antopolskiy/taskboard/internal/date"
	"github.com/antopolskiy/taskboard/internal/task"
)

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	dropTargetHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("34")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	draggedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("34")).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)

	errorToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	boldStyle = lipgloss.NewStyle().Bold(true)

	detailLabelStyle = lipgloss.NewStyle().Bold(true).Width(14) //nolint:mnd // label column width

	fieldLabelStyle = lipgloss.NewStyle().Bold(true).Width(13) //nolint:mnd // label column width

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (b *Board) viewLogin() string {
	lines := []string{
		boldStyle.Render(b.cfg.Board.Name),
		"",
		"Log in with your email to see your tasks.",
		"",
		b.login.View(),
		"",
		dimStyle.Render("enter:log in  esc:quit"),
	}
	if b.err != nil {
		lines = append(lines, "", errorStyle.Render("Error: "+b.err.Error()))
	}
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (b *Board) viewBoard() string {
	colWidth := b.columnWidth()

	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Pad the column area so the footer stays at a fixed row.
	if area := b.height - boardChrome; area > 0 {
		boardView = lipgloss.NewStyle().Height(area).MaxHeight(area).Render(boardView)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		b.renderToolbar(), "", boardView, "", b.renderToast(), b.renderStatusBar())
}

func (b *Board) renderToolbar() string {
	user := ""
	if u := b.state.User(); u != nil {
		user = u.Email
	}
	sort := "off"
	if b.state.View().SortByDue {
		sort = "due ↑"
	}
	parts := []string{
		boldStyle.Render(b.cfg.Board.Name),
		dimStyle.Render(user),
		"/ " + b.search.View(),
		"t " + b.tag.View(),
		"s sort:" + sort,
		dimStyle.Render("a:add  L:logout"),
	}
	return lipgloss.NewStyle().MaxWidth(b.width).Render(" " + strings.Join(parts, "  "))
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	// Total rendered width = w * numColumns (JoinHorizontal adds no gaps).
	w := b.width / len(b.columns)
	const maxColWidth = 50
	return min(w, maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	drag := b.state.Drag()
	headerText := fmt.Sprintf("%s (%d)", col.status, len(col.tasks))
	// Truncate to fit within padding (1 left + 1 right).
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	switch {
	case drag.Dragging() && drag.Hover() == col.status:
		header = dropTargetHeaderStyle.Width(width).Render(headerText)
	case colIdx == b.activeCol:
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	default:
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := b.visibleCardsForColumn(&col)
	start := min(col.scrollOff, len(col.tasks))
	end := min(start+maxVis, len(col.tasks))

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			t := col.tasks[rowIdx]
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(t, active, drag.TaskID() == t.ID, width))
		}
	}

	if end < len(col.tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active, dragged bool, width int) string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := max(width-cardChrome, 1)

	titleLines := b.cfg.TitleLines()
	var contentLines []string
	if titleLines == 1 {
		contentLines = append(contentLines, truncate(t.Title, cardWidth))
	} else {
		contentLines = append(contentLines, wrapTitle(t.Title, cardWidth, titleLines)...)
		// Pad to exactly titleLines for uniform card height.
		for len(contentLines) < titleLines {
			contentLines = append(contentLines, "")
		}
	}

	var details []string
	if t.DueDate != nil {
		label := dueLabel(*t.DueDate, b.today())
		if t.DueDate.Before(b.today()) && t.Status != task.StatusDone {
			details = append(details, overdueStyle.Render(label))
		} else {
			details = append(details, dimStyle.Render(label))
		}
	}
	if len(t.Tags) > 0 {
		tagStr := truncate(strings.Join(t.Tags, ","), cardWidth/tagMaxFraction)
		details = append(details, dimStyle.Render(tagStr))
	}
	contentLines = append(contentLines, strings.Join(details, " "))

	style := cardStyle
	switch {
	case dragged:
		style = draggedCardStyle
	case active:
		style = activeCardStyle
	}

	return style.Width(width - 2).Render(strings.Join(contentLines, "\n")) //nolint:mnd // border width
}

// dueLabel describes a due date relative to today.
func dueLabel(due, today date.Date) string {
	days := int(due.Sub(today.Time).Hours() / 24) //nolint:mnd // hours per day
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 0 && days < 7: //nolint:mnd // one week
		return "due in " + strconv.Itoa(days) + "d"
	case days < 0:
		return "overdue " + strconv.Itoa(-days) + "d"
	default:
		return "due " + due.String()
	}
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapTitle(title string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= maxWidth || maxLines == 1 {
		return []string{truncate(title, maxWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func (b *Board) renderToast() string {
	n := b.state.Notification()
	if n == nil {
		return ""
	}
	style := successStyle
	if n.Severity == app.SeverityError {
		style = errorToastStyle
	}
	return style.Render(truncate(n.Message, max(b.width-2, 4))) //nolint:mnd // toast padding
}

func (b *Board) renderStatusBar() string {
	hint := "←↓↑→/hjkl:navigate enter:edit v:view space:grab N/P:move ?:help esc/q:quit"
	if b.state.Drag().Dragging() {
		hint = "dragging: h/l:choose column  space/enter:drop  esc:cancel"
	}
	if b.focus != focusNone {
		hint = "typing filter: enter/esc:done"
	}
	status := fmt.Sprintf(" %d tasks | %s", len(b.state.Visible()), hint)
	if b.seeding {
		status = " Loading sample tasks... | " + hint
	}
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) viewDetail() string {
	t := b.detailTask
	if t == nil {
		return "No task selected."
	}

	lines := detailLines(t, b.width)

	// Reserve the last line for the fixed status hint.
	viewHeight := b.height - 1
	if viewHeight < 1 {
		viewHeight = len(lines)
	}

	hint := "q/esc:back"
	if len(lines) > viewHeight {
		hint += "  j/k:scroll  g/G:top/bottom"
	}

	off := min(b.detailScrollOff, max(len(lines)-viewHeight, 0))
	end := min(off+viewHeight, len(lines))

	return strings.Join(lines[off:end], "\n") + "\n" + dimStyle.Render(hint)
}

func detailLines(t *task.Task, width int) []string {
	var lines []string
	titleLine := boldStyle.Render(fmt.Sprintf("Task %s: %s", t.ID, t.Title))
	lines = append(lines, titleLine)
	lines = append(lines, strings.Repeat("─", lipgloss.Width(titleLine)))
	lines = append(lines, "")
	lines = append(lines, detailLabelStyle.Render("Status:")+"  "+t.Status)
	if t.DueDate != nil {
		lines = append(lines, detailLabelStyle.Render("Due:")+"  "+t.DueDate.String())
	}
	if len(t.Tags) > 0 {
		lines = append(lines, detailLabelStyle.Render("Tags:")+"  "+task.JoinTags(t.Tags))
	}
	lines = append(lines, detailLabelStyle.Render("Owner:")+"  "+t.UserID)
	if t.Description != "" {
		lines = append(lines, "")
		wrapped := lipgloss.NewStyle().Width(width).Render(t.Description)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	return lines
}

func (b *Board) viewForm() string {
	f := b.state.Form()
	d := b.form
	if f == nil || d == nil {
		return b.viewBoard()
	}

	title := "New task"
	hint := "tab:next field  ←/→:status  enter:save  esc:cancel"
	if f.Mode == app.FormEdit {
		title = "Edit task"
		hint = "tab:next field  ←/→:status  enter:save  ctrl+d:delete  esc:cancel"
	}

	lines := []string{boldStyle.Render(title), ""}
	for i, field := range app.Fields {
		cursor := "  "
		if i == d.focus {
			cursor = "> "
		}
		var value string
		if field == task.FieldStatus {
			value = renderStatusPicker(f.Value(task.FieldStatus))
		} else {
			value = d.inputs[field].View()
		}
		lines = append(lines, cursor+fieldLabelStyle.Render(fieldLabels[field]+":")+value)
		if msg := f.Error(field); msg != "" {
			lines = append(lines, "  "+fieldLabelStyle.Render("")+errorStyle.Render(msg))
		}
	}
	lines = append(lines, "", dimStyle.Render(hint))
	if b.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+b.err.Error()))
	}
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func renderStatusPicker(current string) string {
	opts := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		if s == current {
			opts[i] = boldStyle.Render("[" + s + "]")
		} else {
			opts[i] = dimStyle.Render(" " + s + " ")
		}
	}
	return strings.Join(opts, " ")
}

func (b *Board) viewLogoutConfirm() string {
	content := errorStyle.Render("Log out?") + "\n\n" +
		"  This removes every stored task on this board,\n" +
		"  including other users' tasks.\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (b *Board) viewHelp() string {
	lines := []string{boldStyle.Render("Keyboard Shortcuts"), ""}

	keyStyle := lipgloss.NewStyle().Bold(true).Width(12) //nolint:mnd // key column width
	for _, kb := range keys.helpBindings() {
		h := kb.Help()
		lines = append(lines, keyStyle.Render(h.Key)+"  "+h.Desc)
	}
	lines = append(lines, "",
		"Mouse: drag a card onto another column to move it.",
		"",
		dimStyle.Render("Press any key to close"))

	return dialogStyle.Render(strings.Join(lines, "\n"))
}

// truncate shortens s to maxLen cells, marking the cut with "...".
func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
