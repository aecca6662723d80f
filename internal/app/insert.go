package app

import (
	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/input"
)

func (s *Session) handleInsert(k input.Key) bool {
	if cmd := s.command(k); cmd != "" {
		return s.run(cmd)
	}
	b := s.Buf
	switch k.Code {
	case input.Escape:
		s.setMode(ModeNormal)
	case input.Enter:
		s.newline()
	case input.Backspace:
		s.backspace()
	case input.Delete:
		s.deleteForward()
	case input.ArrowLeft, input.ArrowRight, input.ArrowUp, input.ArrowDown:
		s.moveInsert(k.Code)
	case input.Home:
		s.History.Break()
		b.Cursor.Col = 0
	case input.End:
		s.History.Break()
		b.Cursor.Col = b.RowLen(b.Cursor.Row)
	case input.PageUp:
		s.History.Break()
		s.page(-s.textRows())
	case input.PageDown:
		s.History.Break()
		s.page(s.textRows())
	case input.Byte:
		switch {
		case k.IsCtrl('h'):
			s.backspace()
		case k.IsCtrl('l'):
			s.setMode(ModeNormal)
		case k.Printable():
			s.insertChar(k.Byte)
		}
	}
	return false
}

// insertChar types c at the cursor. Consecutive calls coalesce into one
// undo step.
func (s *Session) insertChar(c byte) {
	b := s.Buf
	if b.NumRows() == 0 {
		b.InsertRow(0, nil)
		b.Cursor = buffer.Pos{}
	}
	b.InsertChar(b.Cursor.Row, b.Cursor.Col, c)
	b.Cursor.Col++
}

func (s *Session) newline() {
	b := s.Buf
	if b.NumRows() == 0 {
		b.InsertRow(0, nil)
		b.Cursor = buffer.Pos{}
	}
	b.SplitLine(b.Cursor.Row, b.Cursor.Col)
	b.Cursor = buffer.Pos{Row: b.Cursor.Row + 1}
}

// backspace removes the byte before the cursor, joining with the previous
// row at column 0.
func (s *Session) backspace() {
	b := s.Buf
	switch {
	case b.Cursor.Col > 0:
		b.DeleteChar(b.Cursor.Row, b.Cursor.Col-1)
		b.Cursor.Col--
	case b.Cursor.Row > 0:
		b.JoinWithPrevious(b.Cursor.Row)
	}
}

// deleteForward removes the byte under the cursor, pulling up the next row
// at the end of the line.
func (s *Session) deleteForward() {
	b := s.Buf
	switch {
	case b.Cursor.Col < b.RowLen(b.Cursor.Row):
		b.DeleteChar(b.Cursor.Row, b.Cursor.Col)
	case b.Cursor.Row+1 < b.NumRows():
		b.JoinWithPrevious(b.Cursor.Row + 1)
	}
}

// moveInsert moves the cursor in insert mode, where left and right wrap
// across row ends.
func (s *Session) moveInsert(c input.Code) {
	s.History.Break()
	b := s.Buf
	p := b.Cursor
	switch c {
	case input.ArrowLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Row > 0 {
			p.Row--
			p.Col = b.RowLen(p.Row)
		}
	case input.ArrowRight:
		if p.Col < b.RowLen(p.Row) {
			p.Col++
		} else if p.Row+1 < b.NumRows() {
			p = buffer.Pos{Row: p.Row + 1}
		}
	case input.ArrowUp:
		p.Row--
	case input.ArrowDown:
		p.Row++
	}
	b.Cursor = p
	b.ClampCursor(true)
}
