package buffer

import (
	"bytes"

	"example.com/batata/pkg/syntax"
)

// DefaultTabLength is the tab stop width used when none is configured.
const DefaultTabLength = 4

// Pos addresses a byte in the buffer by row and raw column.
type Pos struct {
	Row int
	Col int
}

// Less reports whether p comes before q in reading order.
func (p Pos) Less(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Order returns a and b sorted in reading order.
func Order(a, b Pos) (Pos, Pos) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// EditKind tells the history which way a row edit goes.
type EditKind int

const (
	EditInsert EditKind = iota
	EditDelete
)

func (k EditKind) String() string {
	if k == EditDelete {
		return "delete"
	}
	return "insert"
}

// Recorder is notified before every mutation so that it can snapshot the
// rows about to change. Begin and Commit bracket mutations that must be
// undone together and may nest.
type Recorder interface {
	RecordBeforeEdit(kind EditKind, row, col int)
	RecordRowInserted(row int)
	RecordRowRemoved(row int)
	Begin()
	Commit()
}

// Buffer is the ordered set of rows of one document plus the cursor and
// viewport state that belongs to it.
type Buffer struct {
	Rows      []Row
	Cursor    Pos
	RenderCol int
	RowOffset int
	ColOffset int
	// Anchor is the fixed end of a Visual selection.
	Anchor    Pos
	Dirty     bool
	Lang      *syntax.Language
	TabLength int

	rec Recorder
}

// New returns an empty buffer with the given tab stop width.
func New(tabLength int) *Buffer {
	if tabLength < 1 {
		tabLength = DefaultTabLength
	}
	return &Buffer{TabLength: tabLength}
}

// SetRecorder installs the history hook. A nil recorder disables history.
func (b *Buffer) SetRecorder(r Recorder) { b.rec = r }

// SetLanguage changes the language and reclassifies every row.
func (b *Buffer) SetLanguage(l *syntax.Language) {
	b.Lang = l
	b.reclassifyAll()
}

// NumRows returns the number of rows.
func (b *Buffer) NumRows() int { return len(b.Rows) }

// Row returns row i or nil when i is out of range.
func (b *Buffer) Row(i int) *Row {
	if i < 0 || i >= len(b.Rows) {
		return nil
	}
	return &b.Rows[i]
}

// RowLen returns the length of row i, or 0 when i is out of range.
func (b *Buffer) RowLen(i int) int {
	if r := b.Row(i); r != nil {
		return r.Len()
	}
	return 0
}

// RowText returns a copy of the content of row i.
func (b *Buffer) RowText(i int) string {
	if r := b.Row(i); r != nil {
		return string(r.Content)
	}
	return ""
}

// ByteAt returns the byte at p; ok is false past the end of a row.
func (b *Buffer) ByteAt(p Pos) (byte, bool) {
	r := b.Row(p.Row)
	if r == nil || p.Col < 0 || p.Col >= r.Len() {
		return 0, false
	}
	return r.Content[p.Col], true
}

// Text joins the rows with newlines, without a trailing terminator.
func (b *Buffer) Text() string {
	var sb bytes.Buffer
	for i := range b.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(b.Rows[i].Content)
	}
	return sb.String()
}

// Serialize returns every row followed by a newline.
func (b *Buffer) Serialize() []byte {
	n := 0
	for i := range b.Rows {
		n += b.Rows[i].Len() + 1
	}
	out := make([]byte, 0, n)
	for i := range b.Rows {
		out = append(out, b.Rows[i].Content...)
		out = append(out, '\n')
	}
	return out
}

// Open replaces the buffer content with data split on newlines. Trailing
// carriage returns are stripped and a final newline does not add a row.
// History is not recorded and the buffer is left clean.
func (b *Buffer) Open(data []byte) {
	b.Rows = nil
	if len(data) > 0 {
		lines := bytes.Split(data, []byte{'\n'})
		if len(lines[len(lines)-1]) == 0 {
			lines = lines[:len(lines)-1]
		}
		b.Rows = make([]Row, 0, len(lines))
		for i, l := range lines {
			l = bytes.TrimRight(l, "\r\n")
			r := Row{Index: i, Content: append([]byte(nil), l...)}
			r.render(b.TabLength)
			b.Rows = append(b.Rows, r)
		}
	}
	b.reclassifyAll()
	b.Cursor = Pos{}
	b.Anchor = Pos{}
	b.RowOffset, b.ColOffset, b.RenderCol = 0, 0, 0
	b.Dirty = false
}

// ToRenderCol maps a raw column of row to its render column.
func (b *Buffer) ToRenderCol(row, raw int) int {
	r := b.Row(row)
	if r == nil {
		return 0
	}
	return r.RenderCol(raw, b.TabLength)
}

// ToRawCol maps a render column of row to its raw column.
func (b *Buffer) ToRawCol(row, render int) int {
	r := b.Row(row)
	if r == nil {
		return 0
	}
	return r.RawCol(render, b.TabLength)
}

// InsertRow inserts a row holding s at index at (0..NumRows).
func (b *Buffer) InsertRow(at int, s []byte) {
	if at < 0 || at > len(b.Rows) {
		return
	}
	if b.rec != nil {
		b.rec.RecordRowInserted(at)
	}
	b.insertRow(at, Row{Content: append([]byte(nil), s...)})
}

// DeleteRow removes row at.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.Rows) {
		return
	}
	if b.rec != nil {
		b.rec.RecordRowRemoved(at)
	}
	b.removeRow(at)
}

// InsertChar inserts c into row at col, clamped to [0, size].
func (b *Buffer) InsertChar(row, col int, c byte) {
	r := b.Row(row)
	if r == nil {
		return
	}
	col = clamp(col, 0, r.Len())
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditInsert, row, col)
	}
	r.Content = append(r.Content, 0)
	copy(r.Content[col+1:], r.Content[col:])
	r.Content[col] = c
	b.updateRow(row)
}

// DeleteChar removes the byte at col of row; col must be in [0, size).
func (b *Buffer) DeleteChar(row, col int) {
	r := b.Row(row)
	if r == nil || col < 0 || col >= r.Len() {
		return
	}
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditDelete, row, col)
	}
	r.Content = append(r.Content[:col], r.Content[col+1:]...)
	b.updateRow(row)
}

// InsertBytes inserts s into row at col as a single edit.
func (b *Buffer) InsertBytes(row, col int, s []byte) {
	r := b.Row(row)
	if r == nil || len(s) == 0 {
		return
	}
	col = clamp(col, 0, r.Len())
	b.begin()
	defer b.commit()
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditInsert, row, col)
	}
	out := make([]byte, 0, r.Len()+len(s))
	out = append(out, r.Content[:col]...)
	out = append(out, s...)
	out = append(out, r.Content[col:]...)
	r.Content = out
	b.updateRow(row)
}

// ReplaceByte overwrites the byte at col of row with c.
func (b *Buffer) ReplaceByte(row, col int, c byte) {
	r := b.Row(row)
	if r == nil || col < 0 || col >= r.Len() || r.Content[col] == c {
		return
	}
	b.begin()
	defer b.commit()
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditInsert, row, col)
	}
	r.Content[col] = c
	b.updateRow(row)
}

// SplitLine truncates row at col and inserts the remainder as row+1.
func (b *Buffer) SplitLine(row, col int) {
	r := b.Row(row)
	if r == nil {
		return
	}
	col = clamp(col, 0, r.Len())
	b.begin()
	defer b.commit()
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditInsert, row, col)
	}
	rest := append([]byte(nil), r.Content[col:]...)
	r.Content = r.Content[:col]
	b.updateRow(row)
	b.InsertRow(row+1, rest)
}

// JoinWithPrevious appends row to row-1, removes row and moves the cursor
// to the join point.
func (b *Buffer) JoinWithPrevious(row int) {
	if row <= 0 || row >= len(b.Rows) {
		return
	}
	prev := &b.Rows[row-1]
	at := prev.Len()
	b.begin()
	defer b.commit()
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditInsert, row-1, at)
	}
	prev.Content = append(prev.Content, b.Rows[row].Content...)
	b.updateRow(row - 1)
	b.DeleteRow(row)
	b.Cursor = Pos{Row: row - 1, Col: at}
}

// DeleteRange removes the half-open range [start, end). A range spanning
// several rows joins the head of the first row with the tail of the last.
func (b *Buffer) DeleteRange(start, end Pos) {
	if len(b.Rows) == 0 {
		return
	}
	start, end = Order(b.clampPos(start), b.clampPos(end))
	if !start.Less(end) {
		return
	}
	b.begin()
	defer b.commit()
	if b.rec != nil {
		b.rec.RecordBeforeEdit(EditDelete, start.Row, start.Col)
	}
	first := &b.Rows[start.Row]
	if start.Row == end.Row {
		first.Content = append(first.Content[:start.Col], first.Content[end.Col:]...)
		b.updateRow(start.Row)
		return
	}
	tail := b.Rows[end.Row].Content[end.Col:]
	joined := make([]byte, 0, start.Col+len(tail))
	joined = append(joined, first.Content[:start.Col]...)
	joined = append(joined, tail...)
	first.Content = joined
	b.updateRow(start.Row)
	for r := end.Row; r > start.Row; r-- {
		b.DeleteRow(r)
	}
}

// Slice returns a copy of the text in [start, end) with rows joined by
// newlines.
func (b *Buffer) Slice(start, end Pos) string {
	if len(b.Rows) == 0 {
		return ""
	}
	start, end = Order(b.clampPos(start), b.clampPos(end))
	if start.Row == end.Row {
		return string(b.Rows[start.Row].Content[start.Col:end.Col])
	}
	var sb bytes.Buffer
	sb.Write(b.Rows[start.Row].Content[start.Col:])
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.Write(b.Rows[r].Content)
	}
	sb.WriteByte('\n')
	sb.Write(b.Rows[end.Row].Content[:end.Col])
	return sb.String()
}

// RestoreRow replaces row at with snap without recording history.
func (b *Buffer) RestoreRow(at int, snap Row) {
	r := b.Row(at)
	if r == nil {
		return
	}
	r.Content = append([]byte(nil), snap.Content...)
	b.updateRow(at)
}

// ReinsertRow inserts snap at index at without recording history.
func (b *Buffer) ReinsertRow(at int, snap Row) {
	if at < 0 || at > len(b.Rows) {
		return
	}
	b.insertRow(at, Row{Content: append([]byte(nil), snap.Content...)})
}

// RemoveRow removes row at without recording history and returns it.
func (b *Buffer) RemoveRow(at int) (Row, bool) {
	r := b.Row(at)
	if r == nil {
		return Row{}, false
	}
	out := r.Clone()
	b.removeRow(at)
	return out, true
}

// ClampCursor keeps the cursor inside the buffer. When insert is false the
// cursor may not sit past the last byte of a non-empty row.
func (b *Buffer) ClampCursor(insert bool) {
	if len(b.Rows) == 0 {
		b.Cursor = Pos{}
		return
	}
	b.Cursor.Row = clamp(b.Cursor.Row, 0, len(b.Rows)-1)
	limit := b.Rows[b.Cursor.Row].Len()
	if !insert && limit > 0 {
		limit--
	}
	b.Cursor.Col = clamp(b.Cursor.Col, 0, limit)
}

func (b *Buffer) clampPos(p Pos) Pos {
	p.Row = clamp(p.Row, 0, len(b.Rows)-1)
	p.Col = clamp(p.Col, 0, b.Rows[p.Row].Len())
	return p
}

func (b *Buffer) insertRow(at int, r Row) {
	b.Rows = append(b.Rows, Row{})
	copy(b.Rows[at+1:], b.Rows[at:])
	if at > 0 {
		r.OpenComment = b.Rows[at-1].OpenComment
	}
	b.Rows[at] = r
	b.renumber(at)
	b.updateRow(at)
}

func (b *Buffer) removeRow(at int) {
	copy(b.Rows[at:], b.Rows[at+1:])
	b.Rows[len(b.Rows)-1] = Row{}
	b.Rows = b.Rows[:len(b.Rows)-1]
	b.renumber(at)
	if at < len(b.Rows) {
		b.updateSyntax(at)
	}
	b.Dirty = true
}

func (b *Buffer) renumber(from int) {
	for i := from; i < len(b.Rows); i++ {
		b.Rows[i].Index = i
	}
}

func (b *Buffer) updateRow(at int) {
	b.Rows[at].render(b.TabLength)
	b.updateSyntax(at)
	b.Dirty = true
}

// updateSyntax classifies row at and keeps going down while the open
// comment state of the row just classified changed.
func (b *Buffer) updateSyntax(at int) {
	for i := at; i < len(b.Rows); i++ {
		r := &b.Rows[i]
		inComment := i > 0 && b.Rows[i-1].OpenComment
		hl, open := syntax.Classify(r.Render, b.Lang, inComment)
		r.Highlight = hl
		changed := open != r.OpenComment
		r.OpenComment = open
		if !changed {
			return
		}
	}
}

func (b *Buffer) reclassifyAll() {
	inComment := false
	for i := range b.Rows {
		r := &b.Rows[i]
		if r.Render == nil && r.Content != nil {
			r.render(b.TabLength)
		}
		r.Highlight, r.OpenComment = syntax.Classify(r.Render, b.Lang, inComment)
		inComment = r.OpenComment
	}
}

func (b *Buffer) begin() {
	if b.rec != nil {
		b.rec.Begin()
	}
}

func (b *Buffer) commit() {
	if b.rec != nil {
		b.rec.Commit()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
