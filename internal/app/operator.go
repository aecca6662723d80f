package app

import (
	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/input"
	"example.com/batata/pkg/syntax"
)

// span is the target of an operator. Linewise spans cover the whole rows
// Start.Row..End.Row; others are the half-open byte range [Start, End).
type span struct {
	Start, End buffer.Pos
	Linewise   bool
}

// operatorTarget completes a pending d or c with a motion, a text object
// or the doubled operator. Anything else cancels the command.
func (s *Session) operatorTarget(k input.Key) {
	p := s.pend
	s.pend = pending{}
	if k.Code != input.Byte {
		return
	}
	count := max(p.opCount, 1) * max(p.count, 1)
	var (
		sp span
		ok bool
	)
	switch {
	case p.inner:
		sp, ok = s.textObject(k.Byte)
	case k.Byte == 'i':
		p.inner = true
		s.pend = p
		return
	default:
		sp, ok = s.operatorSpan(p.op, k.Byte, count, p.count)
	}
	if !ok {
		return
	}
	s.applyOperator(p.op, sp)
}

// operatorSpan returns what op followed by motion c covers.
func (s *Session) operatorSpan(op, c byte, n, count int) (span, bool) {
	b := s.Buf
	if b.NumRows() == 0 {
		return span{}, false
	}
	cur := b.Cursor
	last := b.NumRows() - 1
	row := func(r int) buffer.Pos { return buffer.Pos{Row: r} }
	switch c {
	case op:
		return span{Start: cur, End: row(min(cur.Row+n-1, last)), Linewise: true}, true
	case 'j':
		if cur.Row == last {
			return span{}, false
		}
		return span{Start: cur, End: row(min(cur.Row+n, last)), Linewise: true}, true
	case 'k':
		if cur.Row == 0 {
			return span{}, false
		}
		return span{Start: row(max(cur.Row-n, 0)), End: cur, Linewise: true}, true
	case 'G':
		target, _ := s.motion('G', n, count)
		start, end := buffer.Order(cur, target)
		return span{Start: start, End: end, Linewise: true}, true
	}

	var start, end buffer.Pos
	size := b.RowLen(cur.Row)
	switch c {
	case 'h':
		start = buffer.Pos{Row: cur.Row, Col: max(cur.Col-n, 0)}
		end = cur
	case 'l':
		start = cur
		end = buffer.Pos{Row: cur.Row, Col: min(cur.Col+n, size)}
	case '0':
		start = buffer.Pos{Row: cur.Row}
		end = cur
	case '$':
		r := min(cur.Row+n-1, last)
		start = cur
		end = buffer.Pos{Row: r, Col: b.RowLen(r)}
	case 'w', 'W':
		wc := wordClass(c)
		col := cur.Col
		for i := 0; i < n; i++ {
			next := b.WordDeleteEnd(buffer.Pos{Row: cur.Row, Col: col}, wc)
			if next == col {
				break
			}
			col = next
		}
		if op == 'c' {
			col = trimTrailingBlanks(b.Row(cur.Row), cur.Col, col)
		}
		start = cur
		end = buffer.Pos{Row: cur.Row, Col: col}
	case 'e', 'E':
		p, _ := s.motion(c, n, count)
		start = cur
		end = buffer.Pos{Row: p.Row, Col: min(p.Col+1, b.RowLen(p.Row))}
	case 'b', 'B':
		p, _ := s.motion(c, n, count)
		start = p
		end = cur
	default:
		return span{}, false
	}
	if !start.Less(end) {
		return span{}, false
	}
	return span{Start: start, End: end}, true
}

// trimTrailingBlanks shortens [from, to) so that a change of a word keeps
// the blanks after it, unless the range is nothing but blanks.
func trimTrailingBlanks(r *buffer.Row, from, to int) int {
	if r == nil || from >= r.Len() || syntax.IsWhitespace(r.Content[from]) {
		return to
	}
	for to > from && syntax.IsWhitespace(r.Content[to-1]) {
		to--
	}
	return to
}

// textObject returns the inner word, WORD or parenthesized range at the
// cursor.
func (s *Session) textObject(c byte) (span, bool) {
	b := s.Buf
	cur := b.Cursor
	switch c {
	case 'w', 'W':
		start, end, ok := b.InnerWord(cur, wordClass(c))
		if !ok {
			return span{}, false
		}
		return span{Start: buffer.Pos{Row: cur.Row, Col: start}, End: buffer.Pos{Row: cur.Row, Col: end}}, true
	case '(', ')', 'b':
		start, end, ok := b.InnerParens(cur)
		if !ok || !start.Less(end) {
			return span{}, false
		}
		return span{Start: start, End: end}, true
	}
	return span{}, false
}

// applyOperator deletes sp, keeping the text in the kill ring, as a single
// undo step. A 'd' that leaves a row empty removes the row; 'c' keeps it
// and enters insert mode.
func (s *Session) applyOperator(op byte, sp span) {
	b := s.Buf
	if sp.Linewise {
		if op == 'd' {
			s.deleteRows(sp.Start.Row, sp.End.Row)
			return
		}
		rows := make([]string, 0, sp.End.Row-sp.Start.Row+1)
		for i := sp.Start.Row; i <= sp.End.Row; i++ {
			rows = append(rows, b.RowText(i))
		}
		s.KillRing.PushLines(rows)
		s.History.Begin()
		for i := sp.End.Row; i > sp.Start.Row; i-- {
			b.DeleteRow(i)
		}
		b.DeleteRange(buffer.Pos{Row: sp.Start.Row}, buffer.Pos{Row: sp.Start.Row, Col: b.RowLen(sp.Start.Row)})
		s.History.Commit()
		b.Cursor = buffer.Pos{Row: sp.Start.Row}
		s.setMode(ModeInsert)
		s.action("change.rows")
		return
	}

	s.KillRing.Push(b.Slice(sp.Start, sp.End))
	s.History.Begin()
	b.DeleteRange(sp.Start, sp.End)
	b.Cursor = sp.Start
	if op == 'c' {
		s.History.Commit()
		s.setMode(ModeInsert)
		s.action("change")
		return
	}
	if b.RowLen(sp.Start.Row) == 0 {
		b.DeleteRow(sp.Start.Row)
	}
	s.History.Commit()
	b.ClampCursor(false)
	s.action("delete")
}
