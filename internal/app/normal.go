package app

import (
	"strconv"
	"strings"

	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/history"
	"example.com/batata/pkg/input"
	"example.com/batata/pkg/syntax"
)

func (s *Session) handleNormal(k input.Key) bool {
	if cmd := s.command(k); cmd != "" && cmd != "find" {
		return s.run(cmd)
	}
	if s.pend.arg != 0 {
		s.normalArg(k)
		return false
	}
	if k.Code == input.Byte && countDigit(k.Byte, s.pend.count) {
		s.pend.count = min(s.pend.count*10+int(k.Byte-'0'), maxCount)
		return false
	}
	if s.pend.op != 0 {
		s.operatorTarget(k)
		return false
	}
	count := s.pend.count
	s.pend = pending{}
	n := max(count, 1)

	switch k.Code {
	case input.Escape:
		s.History.Break()
		return false
	case input.ArrowLeft, input.Backspace:
		s.moveTo('h', n, count)
	case input.ArrowRight:
		s.moveTo('l', n, count)
	case input.ArrowUp:
		s.moveTo('k', n, count)
	case input.ArrowDown, input.Enter:
		s.moveTo('j', n, count)
	case input.Home:
		s.moveTo('0', n, count)
	case input.End:
		s.moveTo('$', n, count)
	case input.PageUp:
		s.page(-n * s.textRows())
	case input.PageDown:
		s.page(n * s.textRows())
	case input.Delete:
		s.deleteChars(n)
	case input.Byte:
		return s.normalByte(k.Byte, n, count)
	}
	return false
}

func (s *Session) normalByte(c byte, n, count int) bool {
	b := s.Buf
	switch c {
	case 'h', 'j', 'k', 'l', 'w', 'W', 'b', 'B', 'e', 'E', '0', '$', 'G':
		s.moveTo(c, n, count)
	case 'g', 'r', 's':
		s.pend = pending{count: count, arg: c}
	case 'i':
		s.setMode(ModeInsert)
	case 'I':
		b.Cursor.Col = firstNonBlank(b.Row(b.Cursor.Row))
		s.setMode(ModeInsert)
	case 'a':
		if b.RowLen(b.Cursor.Row) > 0 {
			b.Cursor.Col++
		}
		s.setMode(ModeInsert)
	case 'A':
		b.Cursor.Col = b.RowLen(b.Cursor.Row)
		s.setMode(ModeInsert)
	case 'o', 'O':
		s.openLine(c == 'o')
	case 'v':
		b.Anchor = b.Cursor
		s.setMode(ModeVisual)
	case 'd', 'c':
		s.pend = pending{op: c, opCount: count}
	case 'D':
		s.deleteRows(b.Cursor.Row, b.Cursor.Row+n-1)
	case 'C':
		s.changeToEnd()
	case 'x':
		s.deleteChars(n)
	case '~':
		s.toggleCase(n)
	case 'u':
		s.undo()
	case 'p', 'P':
		s.paste(c == 'p', n)
	case '/':
		s.startSearch()
	default:
		return s.normalCtrl(c, n)
	}
	return false
}

func (s *Session) normalCtrl(c byte, n int) bool {
	half := max(s.textRows()/2, 1)
	switch c {
	case 'a' & 0x1f:
		s.increment(n)
	case 'x' & 0x1f:
		s.increment(-n)
	case 'e' & 0x1f:
		s.scrollBy(n)
	case 'y' & 0x1f:
		s.scrollBy(-n)
	case 'd' & 0x1f:
		s.page(n * half)
	case 'u' & 0x1f:
		s.page(-n * half)
	case 'f' & 0x1f:
		s.page(n * s.textRows())
	case 'b' & 0x1f:
		s.page(-n * s.textRows())
	}
	return false
}

// normalArg completes r, s and g with the key that follows them.
func (s *Session) normalArg(k input.Key) {
	p := s.pend
	s.pend = pending{}
	if k.Code != input.Byte {
		return
	}
	b := s.Buf
	switch p.arg {
	case 'g':
		if k.Byte == 'g' {
			s.moveTo('g', max(p.count, 1), p.count)
		}
	case 'r', 's':
		if !k.Printable() || b.RowLen(b.Cursor.Row) == 0 {
			return
		}
		b.ReplaceByte(b.Cursor.Row, b.Cursor.Col, k.Byte)
		if p.arg == 's' {
			b.Cursor.Col++
			s.setMode(ModeInsert)
		}
		s.action(string(p.arg))
	}
}

// moveTo applies a motion to the cursor.
func (s *Session) moveTo(c byte, n, count int) {
	s.History.Break()
	p, ok := s.motion(c, n, count)
	if !ok {
		return
	}
	s.Buf.Cursor = p
	s.Buf.ClampCursor(s.Mode == ModeInsert)
}

// motion returns where motion c repeated n times takes the cursor. count is
// the typed count, zero when none was given.
func (s *Session) motion(c byte, n, count int) (buffer.Pos, bool) {
	b := s.Buf
	p := b.Cursor
	if b.NumRows() == 0 {
		return p, false
	}
	last := b.NumRows() - 1
	switch c {
	case 'h':
		p.Col = max(p.Col-n, 0)
	case 'l':
		p.Col = min(p.Col+n, max(b.RowLen(p.Row)-1, 0))
	case 'j':
		p.Row = min(p.Row+n, last)
	case 'k':
		p.Row = max(p.Row-n, 0)
	case 'w', 'W':
		for i := 0; i < n; i++ {
			p = b.NextWord(p, wordClass(c))
		}
	case 'b', 'B':
		for i := 0; i < n; i++ {
			p = b.PrevWord(p, wordClass(c))
		}
	case 'e', 'E':
		for i := 0; i < n; i++ {
			p = b.WordEnd(p, wordClass(c))
		}
	case '0':
		p.Col = 0
	case '$':
		p.Row = min(p.Row+n-1, last)
		p.Col = max(b.RowLen(p.Row)-1, 0)
	case 'G':
		p.Row = last
		if count > 0 {
			p.Row = min(count-1, last)
		}
	case 'g':
		p.Row = min(n-1, last)
	default:
		return p, false
	}
	return p, true
}

func wordClass(c byte) buffer.WordClass {
	if c >= 'A' && c <= 'Z' {
		return buffer.BigWord
	}
	return buffer.Word
}

func countDigit(c byte, count int) bool {
	return c >= '1' && c <= '9' || c == '0' && count > 0
}

func firstNonBlank(r *buffer.Row) int {
	if r == nil {
		return 0
	}
	col := 0
	for col < r.Len() && syntax.IsWhitespace(r.Content[col]) {
		col++
	}
	return col
}

func (s *Session) openLine(below bool) {
	b := s.Buf
	at := b.Cursor.Row
	if below && b.NumRows() > 0 {
		at++
	}
	b.InsertRow(at, nil)
	b.Cursor = buffer.Pos{Row: at}
	s.setMode(ModeInsert)
	s.action("open.line")
}

// deleteRows removes rows first..last, clamped to the buffer, and keeps
// them in the kill ring.
func (s *Session) deleteRows(first, last int) {
	b := s.Buf
	if b.NumRows() == 0 {
		return
	}
	first = max(first, 0)
	last = min(last, b.NumRows()-1)
	if first > last {
		return
	}
	rows := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		rows = append(rows, b.RowText(i))
	}
	s.KillRing.PushLines(rows)
	s.History.Begin()
	for i := last; i >= first; i-- {
		b.DeleteRow(i)
	}
	s.History.Commit()
	b.Cursor = buffer.Pos{Row: first}
	b.ClampCursor(false)
	s.action("delete.rows")
}

func (s *Session) changeToEnd() {
	b := s.Buf
	if b.NumRows() == 0 {
		s.setMode(ModeInsert)
		return
	}
	end := buffer.Pos{Row: b.Cursor.Row, Col: b.RowLen(b.Cursor.Row)}
	s.KillRing.Push(b.Slice(b.Cursor, end))
	b.DeleteRange(b.Cursor, end)
	s.setMode(ModeInsert)
	s.action("change.eol")
}

func (s *Session) deleteChars(n int) {
	b := s.Buf
	p := b.Cursor
	size := b.RowLen(p.Row)
	if p.Col >= size {
		return
	}
	end := buffer.Pos{Row: p.Row, Col: min(p.Col+n, size)}
	s.KillRing.Push(b.Slice(p, end))
	b.DeleteRange(p, end)
	b.ClampCursor(false)
	s.action("delete.chars")
}

// toggleCase flips the case of n bytes starting at the cursor and leaves
// the cursor after them, never past the last byte.
func (s *Session) toggleCase(n int) {
	b := s.Buf
	r := b.Row(b.Cursor.Row)
	if r == nil || r.Len() == 0 {
		return
	}
	s.History.Begin()
	for i := 0; i < n && b.Cursor.Col < r.Len(); i++ {
		c := r.Content[b.Cursor.Col]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		b.ReplaceByte(b.Cursor.Row, b.Cursor.Col, c)
		b.Cursor.Col++
	}
	s.History.Commit()
	b.ClampCursor(false)
	s.action("toggle.case")
}

// increment adds delta to the decimal number under the cursor. The cursor
// must be on a digit, or on a '-' directly before one; a '-' right before
// the digit run makes the number negative. The cursor ends on the last
// digit of the result.
func (s *Session) increment(delta int) {
	b := s.Buf
	r := b.Row(b.Cursor.Row)
	if r == nil {
		return
	}
	line := r.Content
	col := b.Cursor.Col
	if col < len(line) && line[col] == '-' && col+1 < len(line) && syntax.IsDigit(line[col+1]) {
		col++
	}
	if col >= len(line) || !syntax.IsDigit(line[col]) {
		return
	}
	start, end := col, col
	for start > 0 && syntax.IsDigit(line[start-1]) {
		start--
	}
	for end < len(line) && syntax.IsDigit(line[end]) {
		end++
	}
	if start > 0 && line[start-1] == '-' {
		start--
	}
	num, err := strconv.ParseInt(string(line[start:end]), 10, 64)
	if err != nil {
		return
	}
	out := strconv.FormatInt(num+int64(delta), 10)
	s.History.Begin()
	b.DeleteRange(buffer.Pos{Row: b.Cursor.Row, Col: start}, buffer.Pos{Row: b.Cursor.Row, Col: end})
	b.InsertBytes(b.Cursor.Row, start, []byte(out))
	s.History.Commit()
	b.Cursor.Col = start + len(out) - 1
	s.action("increment")
}

// paste inserts the current kill ring entry n times, after the cursor when
// after is set. Linewise entries become whole rows.
func (s *Session) paste(after bool, n int) {
	if !s.KillRing.HasData() {
		return
	}
	text := strings.Repeat(s.KillRing.Get(), n)
	b := s.Buf
	s.History.Begin()
	defer s.History.Commit()
	if history.IsLinewise(text) {
		at := b.Cursor.Row
		if after && b.NumRows() > 0 {
			at++
		}
		for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			b.InsertRow(at+i, []byte(line))
		}
		b.Cursor = buffer.Pos{Row: at}
		b.ClampCursor(false)
		s.action("paste.lines")
		return
	}
	p := b.Cursor
	if after && b.RowLen(p.Row) > 0 {
		p.Col++
	}
	end := s.insertText(p, text)
	b.Cursor = buffer.Pos{Row: end.Row, Col: max(end.Col-1, 0)}
	b.ClampCursor(false)
	s.action("paste")
}

// insertText inserts text at p, splitting rows at newlines, and returns the
// position just after it.
func (s *Session) insertText(p buffer.Pos, text string) buffer.Pos {
	b := s.Buf
	if b.NumRows() == 0 {
		b.InsertRow(0, nil)
		p = buffer.Pos{}
	}
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.SplitLine(p.Row, p.Col)
			p = buffer.Pos{Row: p.Row + 1}
		}
		b.InsertBytes(p.Row, p.Col, []byte(part))
		p.Col += len(part)
	}
	return p
}
