package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawStatus renders a separator and up to two lines of text at the bottom
// of the screen. The first line is highlighted.
func (r *Renderer) DrawStatus(lines ...string) {
	_, screenH := r.screen.Size()
	hudY := screenH - statusRows
	if hudY < 0 {
		return
	}

	r.drawHLine(hudY, tcell.ColorGray)
	styles := []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorWhite),
		tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
	for i, line := range lines {
		if i >= len(styles) {
			break
		}
		r.drawText(0, hudY+1+i, line, styles[i])
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		if col >= w {
			return
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
