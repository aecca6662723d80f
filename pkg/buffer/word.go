package buffer

import "example.com/batata/pkg/syntax"

// WordClass selects which bytes end a word for a motion.
type WordClass int

const (
	// Word ends at separators (punctuation and whitespace): w, b, e.
	Word WordClass = iota
	// BigWord ends at whitespace only: W, B, E.
	BigWord
)

// Boundary reports whether c ends a word of class wc.
func (wc WordClass) Boundary(c byte) bool {
	if wc == BigWord {
		return syntax.IsWhitespace(c)
	}
	return syntax.IsSeparator(c)
}

// NextWord returns the start of the token after p, like Vim's 'w'. Empty
// rows are stops. With no further token the last byte of the buffer is
// returned.
func (b *Buffer) NextWord(p Pos, wc WordClass) Pos {
	if len(b.Rows) == 0 {
		return Pos{}
	}
	p = b.clampPos(p)
	line := b.Rows[p.Row].Content
	col := p.Col
	if col < len(line) {
		if wc.Boundary(line[col]) {
			for col < len(line) && wc.Boundary(line[col]) {
				col++
			}
		} else {
			for col < len(line) && !wc.Boundary(line[col]) {
				col++
			}
		}
		for col < len(line) && syntax.IsWhitespace(line[col]) {
			col++
		}
		if col < len(line) {
			return Pos{Row: p.Row, Col: col}
		}
	}
	for r := p.Row + 1; r < len(b.Rows); r++ {
		line = b.Rows[r].Content
		c := 0
		for c < len(line) && syntax.IsWhitespace(line[c]) {
			c++
		}
		if len(line) == 0 || c < len(line) {
			return Pos{Row: r, Col: c}
		}
	}
	last := len(b.Rows) - 1
	return Pos{Row: last, Col: max(b.Rows[last].Len()-1, 0)}
}

// PrevWord returns the start of the token before p, like Vim's 'b'.
func (b *Buffer) PrevWord(p Pos, wc WordClass) Pos {
	if len(b.Rows) == 0 {
		return Pos{}
	}
	p = b.clampPos(p)
	row, col := p.Row, p.Col-1
	for {
		line := b.Rows[row].Content
		if col >= len(line) {
			col = len(line) - 1
		}
		for col >= 0 && syntax.IsWhitespace(line[col]) {
			col--
		}
		if col >= 0 {
			break
		}
		if row == 0 {
			return Pos{}
		}
		row--
		col = b.Rows[row].Len() - 1
		if col < 0 {
			return Pos{Row: row}
		}
	}
	line := b.Rows[row].Content
	punct := wc.Boundary(line[col])
	for col > 0 {
		c := line[col-1]
		if syntax.IsWhitespace(c) || wc.Boundary(c) != punct {
			break
		}
		col--
	}
	return Pos{Row: row, Col: col}
}

// WordEnd returns the last byte of the token after p, like Vim's 'e'.
// Leading whitespace, including row ends, is skipped first.
func (b *Buffer) WordEnd(p Pos, wc WordClass) Pos {
	if len(b.Rows) == 0 {
		return Pos{}
	}
	p = b.clampPos(p)
	row, col := p.Row, p.Col+1
	for {
		line := b.Rows[row].Content
		for col < len(line) && syntax.IsWhitespace(line[col]) {
			col++
		}
		if col < len(line) {
			break
		}
		if row+1 >= len(b.Rows) {
			return Pos{Row: row, Col: max(len(line)-1, 0)}
		}
		row++
		col = 0
	}
	line := b.Rows[row].Content
	punct := wc.Boundary(line[col])
	for col+1 < len(line) {
		c := line[col+1]
		if syntax.IsWhitespace(c) || wc.Boundary(c) != punct {
			break
		}
		col++
	}
	return Pos{Row: row, Col: col}
}

// WordDeleteEnd returns the exclusive column where a 'dw' starting at p
// stops. On whitespace it covers the whitespace run, on a separator the
// single byte, otherwise the word and the whitespace after it. It never
// leaves the row.
func (b *Buffer) WordDeleteEnd(p Pos, wc WordClass) int {
	r := b.Row(p.Row)
	if r == nil {
		return 0
	}
	line := r.Content
	col := clamp(p.Col, 0, len(line))
	if col == len(line) {
		return col
	}
	switch {
	case syntax.IsWhitespace(line[col]):
		for col < len(line) && syntax.IsWhitespace(line[col]) {
			col++
		}
	case wc.Boundary(line[col]):
		col++
	default:
		for col < len(line) && !wc.Boundary(line[col]) {
			col++
		}
		for col < len(line) && syntax.IsWhitespace(line[col]) {
			col++
		}
	}
	return col
}

// InnerWord returns the half-open column span of the word under p. ok is
// false when p is on a boundary byte or past the end of the row.
func (b *Buffer) InnerWord(p Pos, wc WordClass) (start, end int, ok bool) {
	r := b.Row(p.Row)
	if r == nil || p.Col < 0 || p.Col >= r.Len() || wc.Boundary(r.Content[p.Col]) {
		return 0, 0, false
	}
	start, end = p.Col, p.Col
	for start > 0 && !wc.Boundary(r.Content[start-1]) {
		start--
	}
	for end < r.Len() && !wc.Boundary(r.Content[end]) {
		end++
	}
	return start, end, true
}
