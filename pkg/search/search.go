package search

import "strings"

// Range is a match on one row: the half-open byte interval [Start, End).
type Range struct {
	Row   int
	Start int
	End   int
}

// Direction is the way Next walks through the rows.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Source is the row text a search walks over.
type Source interface {
	NumRows() int
	RowText(i int) string
}

// SearchAll returns all non-overlapping occurrences of query in text.
// An empty query returns nil.
func SearchAll(text, query string) []Range {
	if query == "" {
		return nil
	}
	var res []Range
	off := 0
	for {
		idx := strings.Index(text[off:], query)
		if idx < 0 {
			break
		}
		start := off + idx
		end := start + len(query)
		res = append(res, Range{Start: start, End: end})
		off = end
	}
	return res
}

// Next returns the match nearest to (row, col) in dir, wrapping around the
// buffer. A forward search accepts a match starting at col itself only when
// inclusive is set; a backward search only accepts matches starting before
// col.
func Next(src Source, query string, row, col int, dir Direction, inclusive bool) (Range, bool) {
	n := src.NumRows()
	if query == "" || n == 0 {
		return Range{}, false
	}
	row = min(max(row, 0), n-1)
	if dir == Backward {
		if r, ok := lastBefore(src.RowText(row), query, col); ok {
			r.Row = row
			return r, true
		}
		for i := 1; i <= n; i++ {
			cur := ((row-i)%n + n) % n
			if r, ok := lastBefore(src.RowText(cur), query, -1); ok {
				r.Row = cur
				return r, true
			}
		}
		return Range{}, false
	}
	from := col
	if !inclusive {
		from++
	}
	if r, ok := firstFrom(src.RowText(row), query, from); ok {
		r.Row = row
		return r, true
	}
	for i := 1; i <= n; i++ {
		cur := (row + i) % n
		if r, ok := firstFrom(src.RowText(cur), query, 0); ok {
			r.Row = cur
			return r, true
		}
	}
	return Range{}, false
}

func firstFrom(line, query string, from int) (Range, bool) {
	for _, r := range SearchAll(line, query) {
		if r.Start >= from {
			return r, true
		}
	}
	return Range{}, false
}

// lastBefore returns the last match starting before limit; a negative
// limit means anywhere in the line.
func lastBefore(line, query string, limit int) (Range, bool) {
	found, ok := Range{}, false
	for _, r := range SearchAll(line, query) {
		if limit >= 0 && r.Start >= limit {
			break
		}
		found, ok = r, true
	}
	return found, ok
}
