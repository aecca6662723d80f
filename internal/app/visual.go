package app

import (
	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/input"
)

func (s *Session) handleVisual(k input.Key) bool {
	if k.IsCtrl('y') {
		s.pend = pending{}
		s.redo()
		return false
	}
	if cmd := s.command(k); cmd != "" && cmd != "find" {
		return s.run(cmd)
	}
	if s.pend.inner || s.pend.arg != 0 {
		p := s.pend
		s.pend = pending{}
		if k.Code != input.Byte {
			return false
		}
		switch {
		case p.inner:
			s.selectObject(k.Byte)
		case p.arg == 'g' && k.Byte == 'g':
			s.moveTo('g', max(p.count, 1), p.count)
		}
		return false
	}
	if k.Code == input.Byte && countDigit(k.Byte, s.pend.count) {
		s.pend.count = min(s.pend.count*10+int(k.Byte-'0'), maxCount)
		return false
	}
	count := s.pend.count
	s.pend = pending{}
	n := max(count, 1)

	switch k.Code {
	case input.Escape:
		s.setMode(ModeNormal)
	case input.ArrowLeft:
		s.moveTo('h', n, count)
	case input.ArrowRight:
		s.moveTo('l', n, count)
	case input.ArrowUp:
		s.moveTo('k', n, count)
	case input.ArrowDown:
		s.moveTo('j', n, count)
	case input.Home:
		s.moveTo('0', n, count)
	case input.End:
		s.moveTo('$', n, count)
	case input.Byte:
		switch c := k.Byte; c {
		case 'h', 'j', 'k', 'l', 'w', 'W', 'b', 'B', 'e', 'E', '0', '$', 'G':
			s.moveTo(c, n, count)
		case 'g':
			s.pend = pending{count: count, arg: 'g'}
		case 'i':
			s.pend = pending{inner: true}
		case 'o':
			b := s.Buf
			b.Anchor, b.Cursor = b.Cursor, b.Anchor
			b.ClampCursor(false)
		case 'd', 'x':
			s.deleteSelection(false)
		case 'c':
			s.deleteSelection(true)
		case 'y':
			s.yankSelection()
		}
	}
	return false
}

// selection returns the ordered half-open range covered by the anchor and
// the cursor. Both ends are inclusive on screen, so the end is one byte
// past the later of the two.
func (s *Session) selection() (start, end buffer.Pos, ok bool) {
	b := s.Buf
	if b.NumRows() == 0 {
		return buffer.Pos{}, buffer.Pos{}, false
	}
	start, end = buffer.Order(s.clampPos(b.Anchor), s.clampPos(b.Cursor))
	end.Col = min(end.Col+1, b.RowLen(end.Row))
	return start, end, true
}

func (s *Session) clampPos(p buffer.Pos) buffer.Pos {
	b := s.Buf
	p.Row = min(max(p.Row, 0), b.NumRows()-1)
	p.Col = min(max(p.Col, 0), b.RowLen(p.Row))
	return p
}

// selectObject replaces the selection with the bounds of a text object.
func (s *Session) selectObject(c byte) {
	sp, ok := s.textObject(c)
	if !ok {
		return
	}
	b := s.Buf
	b.Anchor = sp.Start
	last := sp.End
	if last.Col > 0 {
		last.Col--
	} else if last.Row > 0 {
		last.Row--
		last.Col = max(b.RowLen(last.Row)-1, 0)
	}
	b.Cursor = last
}

// deleteSelection removes the selected text as one undo step. Rows left
// empty are removed unless change is set, which enters insert mode.
func (s *Session) deleteSelection(change bool) {
	start, end, ok := s.selection()
	if !ok {
		s.setMode(ModeNormal)
		return
	}
	b := s.Buf
	s.KillRing.Push(b.Slice(start, end))
	s.History.Begin()
	b.DeleteRange(start, end)
	if !change && b.RowLen(start.Row) == 0 {
		b.DeleteRow(start.Row)
	}
	s.History.Commit()
	b.Cursor = start
	if change {
		s.setMode(ModeInsert)
		s.action("change.selection")
		return
	}
	s.setMode(ModeNormal)
	s.action("delete.selection")
}

func (s *Session) yankSelection() {
	if start, end, ok := s.selection(); ok {
		s.KillRing.Push(s.Buf.Slice(start, end))
		s.Buf.Cursor = start
		s.SetMessage("%d bytes yanked", len(s.KillRing.Get()))
	}
	s.setMode(ModeNormal)
}
