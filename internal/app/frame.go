package app

import (
	"fmt"
	"strings"
	"time"

	"example.com/batata/pkg/syntax"
	"github.com/mattn/go-runewidth"
)

// FrameRow is one visible document row, already cut to the viewport.
type FrameRow struct {
	// Number is the line number shown in the gutter, relative to the
	// cursor row when RELATIVE_LINE_NUMBERS is on.
	Number    int
	Current   bool
	Render    []byte
	Highlight []syntax.Class
	// SelStart and SelEnd bound the selected columns of Render, or are
	// both -1.
	SelStart, SelEnd int
}

// Frame is everything the painter needs for one screen.
type Frame struct {
	Rows    []FrameRow
	Gutter  int
	Width   int
	Height  int
	CursorX int
	CursorY int
	Status  string
	Message string
	Mode    Mode
}

// Frame snapshots the visible part of the session. The message line shows
// the open prompt, or the last message while it is younger than five
// seconds.
func (s *Session) Frame(now time.Time) Frame {
	s.scroll()
	b := s.Buf
	f := Frame{
		Gutter: s.gutterWidth(),
		Width:  s.width,
		Height: s.height,
		Mode:   s.Mode,
	}
	cols := s.textCols()
	selStart, selEnd, hasSel := s.selection()
	hasSel = hasSel && s.Mode == ModeVisual
	for y := 0; y < s.textRows(); y++ {
		i := b.RowOffset + y
		r := b.Row(i)
		if r == nil {
			break
		}
		lo := min(b.ColOffset, len(r.Render))
		hi := min(lo+cols, len(r.Render))
		fr := FrameRow{
			Number:    s.lineNumber(i),
			Current:   i == b.Cursor.Row,
			Render:    append([]byte(nil), r.Render[lo:hi]...),
			Highlight: append([]syntax.Class(nil), r.Highlight[lo:hi]...),
			SelStart:  -1,
			SelEnd:    -1,
		}
		if m := s.match; m != nil && m.Row == i {
			from := b.ToRenderCol(i, m.Start) - lo
			to := b.ToRenderCol(i, m.End) - lo
			for x := max(from, 0); x < min(to, len(fr.Highlight)); x++ {
				fr.Highlight[x] = syntax.Match
			}
		}
		if hasSel && i >= selStart.Row && i <= selEnd.Row {
			from, to := 0, len(r.Render)
			if i == selStart.Row {
				from = b.ToRenderCol(i, selStart.Col)
			}
			if i == selEnd.Row {
				to = b.ToRenderCol(i, selEnd.Col)
			}
			fr.SelStart = min(max(from-lo, 0), len(fr.Render))
			fr.SelEnd = min(max(to-lo, 0), len(fr.Render))
		}
		f.Rows = append(f.Rows, fr)
	}
	f.CursorX = f.Gutter + b.RenderCol - b.ColOffset
	f.CursorY = b.Cursor.Row - b.RowOffset
	f.Status = s.statusLine()
	f.Message = s.messageLine(now)
	return f
}

func (s *Session) lineNumber(i int) int {
	cur := s.Buf.Cursor.Row
	if !s.Config.RelativeLineNumbers || i == cur {
		return i + 1
	}
	if i < cur {
		return cur - i
	}
	return i - cur
}

// statusLine lays out " [MODE] name - N lines (modified)" on the left and
// "filetype | row/total" on the right edge.
func (s *Session) statusLine() string {
	b := s.Buf
	name := s.FilePath
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if b.Dirty {
		modified = "(modified)"
	}
	left := fmt.Sprintf(" [%s] %s - %d lines %s", s.Mode, runewidth.Truncate(name, 20, ""), b.NumRows(), modified)
	ft := "no filetype"
	if b.Lang != nil {
		ft = b.Lang.Name
	}
	right := fmt.Sprintf("%s | %d/%d", ft, b.Cursor.Row+1, b.NumRows())

	width := s.width
	rw := runewidth.StringWidth(right)
	if rw > width {
		return runewidth.Truncate(left, width, "")
	}
	left = runewidth.Truncate(left, width-rw, "")
	return left + strings.Repeat(" ", width-rw-runewidth.StringWidth(left)) + right
}

func (s *Session) messageLine(now time.Time) string {
	msg := ""
	switch {
	case s.prompt != nil:
		msg = s.prompt.String()
	case s.message != "" && now.Sub(s.messageAt) < messageTTL:
		msg = s.message
	}
	return runewidth.Truncate(msg, max(s.width, 0), "")
}
