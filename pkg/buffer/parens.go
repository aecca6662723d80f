package buffer

// OpenParen scans backward from p (inclusive) for the nearest '(' that is
// not closed before p.
func (b *Buffer) OpenParen(p Pos) (Pos, bool) {
	depth := 0
	found := Pos{}
	ok := false
	b.scanBackward(p, func(q Pos, c byte) bool {
		switch c {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				found, ok = q, true
				return false
			}
			depth--
		}
		return true
	})
	return found, ok
}

// MatchingParen scans forward from p (inclusive), usually a '(', for the
// ')' that brings the nesting depth back to zero.
func (b *Buffer) MatchingParen(p Pos) (Pos, bool) {
	depth := 0
	found := Pos{}
	ok := false
	b.scanForward(p, func(q Pos, c byte) bool {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				found, ok = q, true
				return false
			}
		}
		return true
	})
	return found, ok
}

// InsideParens reports whether p lies within a parenthesised pair. Walking
// backward, a ')' seen first means no; a '(' whose match is at or after p
// means yes.
func (b *Buffer) InsideParens(p Pos) bool {
	inside := false
	b.scanBackward(p, func(q Pos, c byte) bool {
		switch c {
		case ')':
			return false
		case '(':
			m, ok := b.MatchingParen(q)
			if !ok {
				return true
			}
			inside = !m.Less(p)
			return false
		}
		return true
	})
	return inside
}

// InnerParens returns the half-open range between the parentheses around
// p. When p is not inside a pair, the first '(' at or after p on its row is
// used instead.
func (b *Buffer) InnerParens(p Pos) (start, end Pos, ok bool) {
	if b.Row(p.Row) == nil {
		return Pos{}, Pos{}, false
	}
	open, found := Pos{}, false
	if b.InsideParens(p) {
		open, found = b.OpenParen(p)
	} else {
		line := b.Rows[p.Row].Content
		for i := max(p.Col, 0); i < len(line); i++ {
			if line[i] == '(' {
				open, found = Pos{Row: p.Row, Col: i}, true
				break
			}
		}
	}
	if !found {
		return Pos{}, Pos{}, false
	}
	closing, found := b.MatchingParen(open)
	if !found {
		return Pos{}, Pos{}, false
	}
	return Pos{Row: open.Row, Col: open.Col + 1}, closing, true
}

func (b *Buffer) scanBackward(p Pos, fn func(Pos, byte) bool) {
	if len(b.Rows) == 0 || p.Row < 0 {
		return
	}
	row := min(p.Row, len(b.Rows)-1)
	col := min(p.Col, b.Rows[row].Len()-1)
	for row >= 0 {
		line := b.Rows[row].Content
		for ; col >= 0; col-- {
			if !fn(Pos{Row: row, Col: col}, line[col]) {
				return
			}
		}
		row--
		if row >= 0 {
			col = b.Rows[row].Len() - 1
		}
	}
}

func (b *Buffer) scanForward(p Pos, fn func(Pos, byte) bool) {
	if p.Row < 0 {
		return
	}
	col := max(p.Col, 0)
	for row := p.Row; row < len(b.Rows); row++ {
		line := b.Rows[row].Content
		for ; col < len(line); col++ {
			if !fn(Pos{Row: row, Col: col}, line[col]) {
				return
			}
		}
		col = 0
	}
}
