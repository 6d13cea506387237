// internal/tui/drawing.go
package tui

import (
	"strings"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/outline"
	"github.com/bethropolis/grove/internal/theme"
	"github.com/bethropolis/grove/internal/tree"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Row markers.
const (
	MarkerExpanded  = "▾"
	MarkerCollapsed = "▸"
	MarkerLeaf      = "•"
)

// Layout returns the first screen row of the outline area and its height
// for a screen of the given height. A title takes the top row and the
// status bar the bottom one.
func Layout(height int, title string, statusBarHeight int) (top, rows int) {
	if title != "" {
		top = 1
	}
	return top, max(height-statusBarHeight-top, 0)
}

// DrawOutline draws the title and the visible outline rows of ed, indenting
// each depth level by ed.IndentWidth() columns.
func DrawOutline(tuiManager *TUI, ed *outline.Editor, activeTheme *theme.Theme, statusBarHeight int) {
	if activeTheme == nil {
		logger.Warnf("DrawOutline called with nil theme, using package default.")
		activeTheme = &theme.DefaultDark
	}

	screen := tuiManager.screen
	width, height := tuiManager.Size()
	title := ed.Title()
	top, viewHeight := Layout(height, title, statusBarHeight)
	if width <= 0 {
		return
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	if top > 0 {
		fillLine(screen, 0, width, activeTheme.GetStyle(theme.StyleTitle))
		drawString(screen, 0, 0, width, title, activeTheme.GetStyle(theme.StyleTitle))
	}

	rows := ed.Rows()
	indent := ed.IndentWidth()
	cursor := ed.Cursor()
	viewY := ed.Viewport()

	for screenY := 0; screenY < viewHeight; screenY++ {
		y := top + screenY
		idx := viewY + screenY

		rowStyle := defaultStyle
		if idx == cursor && idx < len(rows) {
			rowStyle = activeTheme.GetStyle(theme.StyleSelection)
		}
		fillLine(screen, y, width, rowStyle)

		if idx >= len(rows) {
			if len(rows) == 0 && screenY == 0 {
				drawString(screen, 0, y, width, "(empty outline, :add to create a node)", activeTheme.GetStyle(theme.StyleDisabled))
			}
			continue
		}
		drawRow(screen, y, width, indent, rows[idx], activeTheme, idx == cursor)
	}
}

func drawRow(screen tcell.Screen, y, width, indent int, row tree.FlattenedNode, th *theme.Theme, selected bool) {
	marker, markerStyleName := MarkerLeaf, theme.StyleLeafMarker
	if len(row.Node.Children) > 0 {
		if row.Collapsed {
			marker, markerStyleName = MarkerCollapsed, theme.StyleMarkerCollapsed
		} else {
			marker, markerStyleName = MarkerExpanded, theme.StyleMarker
		}
	}

	labelStyle := th.GetStyle(theme.StyleDefault)
	markerStyle := th.GetStyle(markerStyleName)
	if row.Node.Disabled {
		labelStyle = th.GetStyle(theme.StyleDisabled)
	}
	if selected {
		labelStyle = th.GetStyle(theme.StyleSelection)
		markerStyle = labelStyle
	}

	x := drawString(screen, 0, y, width, strings.Repeat(" ", row.Depth*indent), labelStyle)
	x = drawString(screen, x, y, width, marker+" ", markerStyle)
	drawString(screen, x, y, width, row.Node.Label, labelStyle)
}

func fillLine(screen tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawString draws text at (x, y) clipped to maxX, using grapheme cluster
// widths, and returns the next free column. Wide clusters that would be cut
// at the right edge are dropped.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		// Fill the trailing cells of a wide character so stale content is
		// not left behind.
		for i := 1; i < w; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		x += w
	}
	return x
}
