package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antopolskiy/taskboard/internal/app"
)

// Screen geometry: columns start below the toolbar, and each column is a
// header line, an optional "↑ N more" line, then fixed-height cards.

// columnAt returns the column index under x, or -1.
func (b *Board) columnAt(x int) int {
	w := b.columnWidth()
	if x < 0 || w <= 0 {
		return -1
	}
	i := x / w
	if i >= len(b.columns) {
		return -1
	}
	return i
}

// inBoardArea reports whether row y lies within the column area.
func (b *Board) inBoardArea(y int) bool {
	return y >= toolbarHeight && y < b.height-footerHeight
}

// cardAt returns the column and row of the card under (x, y).
func (b *Board) cardAt(x, y int) (int, int, bool) {
	ci := b.columnAt(x)
	if ci < 0 || !b.inBoardArea(y) {
		return 0, 0, false
	}
	col := &b.columns[ci]
	top := toolbarHeight + 1 // header
	if col.scrollOff > 0 {
		top++
	}
	if y < top {
		return 0, 0, false
	}
	row := col.scrollOff + (y-top)/b.cardHeight()
	end := min(col.scrollOff+b.visibleCardsForColumn(col), len(col.tasks))
	if row >= end {
		return 0, 0, false
	}
	return ci, row, true
}

// dropTarget returns the status of the column under (x, y), or "" when
// the pointer is outside every column.
func (b *Board) dropTarget(x, y int) string {
	if !b.inBoardArea(y) {
		return ""
	}
	ci := b.columnAt(x)
	if ci < 0 {
		return ""
	}
	return b.columns[ci].status
}

// handleMouse maps pointer gestures onto the drag coordinator: press on
// a card begins, motion updates the hovered column, release drops.
func (b *Board) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if b.view != viewBoard || b.focus != focusNone {
		return b, nil
	}
	d := b.state.Drag()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return b, nil
		}
		ci, row, ok := b.cardAt(msg.X, msg.Y)
		if !ok {
			return b, nil
		}
		b.activeCol, b.activeRow = ci, row
		return b, b.dispatch(app.BeginDrag{ID: b.columns[ci].tasks[row].ID})
	case tea.MouseActionMotion:
		if target := b.dropTarget(msg.X, msg.Y); target != "" {
			d.SetHover(target)
		}
	case tea.MouseActionRelease:
		if !d.Dragging() {
			return b, nil
		}
		return b, b.dispatch(app.DropOn{Target: b.dropTarget(msg.X, msg.Y)})
	}
	return b, nil
}
