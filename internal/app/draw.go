package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true)
	styleDir      = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
)

// draw renders the directory list on the left, the preview on the right,
// and the status line at the bottom.
func (a *App) draw() {
	a.screen.Clear()

	a.drawText(0, 0, a.width, styleHeader, a.path)

	listWidth := a.width
	if len(a.preview) > 0 && a.width > 40 {
		listWidth = a.width / 2
		a.drawPreview(listWidth + 1)
	}

	height := a.listHeight()
	for row := 0; row < height; row++ {
		idx := a.offset + row
		if idx >= len(a.entries) {
			break
		}
		entry := a.entries[idx]

		style := styleDefault
		if entry.Kind == message.KindDirectory {
			style = styleDir
		}
		if idx == a.cursor {
			style = styleSelected
		}

		name := entry.Name
		if entry.Kind == message.KindDirectory {
			name += "/"
		}
		a.drawText(0, row+1, listWidth, style, name)
	}

	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawPreview(x int) {
	for row, line := range a.preview {
		if row+1 >= a.height-1 {
			break
		}
		a.drawText(x, row+1, a.width-x, styleDefault, line)
	}
}

func (a *App) drawStatus() {
	y := a.height - 1
	if y < 1 {
		return
	}

	left := a.status
	if a.mode == mode.Command {
		left = ":" + a.cmdline
	}
	a.drawText(0, y, a.width, styleDefault, left)

	right := fmt.Sprintf("%s %s", a.sequence, a.mode)
	if x := a.width - len(right); x > len(left)+1 {
		a.drawText(x, y, len(right), styleDefault, right)
	}
}

func (a *App) drawText(x, y, max int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+max || col >= a.width {
			break
		}
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
