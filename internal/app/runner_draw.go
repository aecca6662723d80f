package app

import (
	"fmt"
	"unicode/utf8"

	"example.com/batata/pkg/config"
	"example.com/batata/pkg/syntax"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Version is shown on the welcome screen of an empty buffer.
const Version = "0.1.0"

// paint draws f onto s: the text rows with their gutter, the status bar and
// the message line.
func paint(s tcell.Screen, f Frame, theme config.Theme) {
	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	s.SetStyle(base)
	s.Clear()
	width, height := s.Size()
	textRows := max(height-chromeRows, 0)

	for y := 0; y < textRows; y++ {
		if y < len(f.Rows) {
			drawRow(s, y, f.Gutter, width, f.Rows[y], base, theme)
			continue
		}
		s.SetContent(0, y, '~', nil, base.Foreground(theme.LineNumber))
	}
	if len(f.Rows) == 0 && textRows > 0 {
		msg := "Batata -- version " + Version
		x := max((width-runewidth.StringWidth(msg))/2, 1)
		drawString(s, x, textRows/3, width, msg, base)
	}

	if height >= 2 {
		bar := base.Background(theme.StatusBackground).Foreground(theme.StatusForeground)
		for x := 0; x < width; x++ {
			s.SetContent(x, height-2, ' ', nil, bar)
		}
		drawString(s, 0, height-2, width, f.Status, bar)
	}
	if height >= 1 {
		drawString(s, 0, height-1, width, f.Message, base.Foreground(theme.MessageForeground))
	}

	if f.Mode == ModeInsert {
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	} else {
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	if f.CursorY >= 0 && f.CursorY < textRows {
		s.ShowCursor(f.CursorX, f.CursorY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func drawRow(s tcell.Screen, y, gutter, width int, row FrameRow, base tcell.Style, theme config.Theme) {
	num := base.Foreground(theme.LineNumber)
	if row.Current {
		num = base.Foreground(theme.CurrentLineNumber)
	}
	drawString(s, 0, y, gutter-1, fmt.Sprintf("%*d", gutter-1, row.Number), num)

	x := gutter
	for j := 0; j < len(row.Render) && x < width; {
		r, size := rune(row.Render[j]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(row.Render[j:])
		}
		style := cellStyle(row, j, base, theme)
		if r < ' ' || r == 0x7f {
			sym := '?'
			if r <= 26 {
				sym = '@' + r
			}
			r = sym
			style = style.Reverse(true)
		}
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
		j += size
	}
}

func cellStyle(row FrameRow, j int, base tcell.Style, theme config.Theme) tcell.Style {
	hl := syntax.Normal
	if j < len(row.Highlight) {
		hl = row.Highlight[j]
	}
	switch {
	case j >= row.SelStart && j < row.SelEnd:
		return base.Background(theme.SelectionBackground).Foreground(theme.SelectionForeground)
	case hl == syntax.Match:
		return base.Background(theme.MatchBackground).Foreground(theme.MatchForeground)
	case hl == syntax.Normal:
		return base
	}
	return base.Foreground(theme.SyntaxColor(hl.Group()))
}

// drawString writes str from column x, stopping at limit.
func drawString(s tcell.Screen, x, y, limit int, str string, style tcell.Style) {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if x+w > limit {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x += max(w, 1)
	}
}
