package history

import "example.com/batata/pkg/buffer"

// DefaultCapacity bounds each stack when no size is configured.
const DefaultCapacity = 100

// Op is the action that reverses a recorded change.
type Op int

const (
	// Restore puts a row back to its snapshot.
	Restore Op = iota
	// Remove drops a row that the edit inserted.
	Remove
	// Reinsert puts back a row that the edit removed.
	Reinsert
)

// Change is one reversible step of an Entry.
type Change struct {
	Row      int
	Op       Op
	Snapshot buffer.Row
}

// Entry is one undo unit. Changes are applied newest first.
type Entry struct {
	Kind    buffer.EditKind
	Changes []Change
}

// Row returns the row the entry was recorded against.
func (e Entry) Row() int {
	if len(e.Changes) == 0 {
		return 0
	}
	return e.Changes[0].Row
}

// coalesce tracks the single-byte edit run that new records may join.
type coalesce struct {
	kind    buffer.EditKind
	row     int
	lastCol int
	active  bool
}

func (c coalesce) extends(kind buffer.EditKind, row, col int) bool {
	if !c.active || c.kind != kind || c.row != row {
		return false
	}
	if kind == buffer.EditInsert {
		return col == c.lastCol+1
	}
	return col == c.lastCol-1
}

// History keeps bounded undo and redo stacks of row snapshots for one
// buffer. It implements buffer.Recorder.
type History struct {
	buf      *buffer.Buffer
	capacity int
	undo     []Entry
	redo     []Entry
	co       coalesce

	depth   int
	pending Entry
}

// New attaches a history to buf. Each stack holds at most capacity entries.
func New(buf *buffer.Buffer, capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	h := &History{buf: buf, capacity: capacity}
	buf.SetRecorder(h)
	return h
}

// Len returns the number of undo entries.
func (h *History) Len() int { return len(h.undo) }

// RedoLen returns the number of redo entries.
func (h *History) RedoLen() int { return len(h.redo) }

// CanUndo reports whether there is an entry to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is an entry to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Capacity returns the stack bound.
func (h *History) Capacity() int { return h.capacity }

// Reset drops both stacks.
func (h *History) Reset() {
	h.undo, h.redo = nil, nil
	h.co = coalesce{}
	h.depth = 0
	h.pending = Entry{}
}

// Break ends the current coalescing run.
func (h *History) Break() { h.co = coalesce{} }

// Begin opens a group; every record until the matching Commit becomes one
// entry. Groups nest.
func (h *History) Begin() {
	if h.depth == 0 {
		h.pending = Entry{}
		h.co = coalesce{}
	}
	h.depth++
}

// Commit closes a group opened by Begin.
func (h *History) Commit() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	if len(h.pending.Changes) > 0 {
		h.undo = h.push(h.undo, h.pending)
	}
	h.pending = Entry{}
}

// RecordBeforeEdit snapshots row before a byte-level edit at col. Outside
// a group, an edit adjacent to the previous one of the same kind on the
// same row joins its entry, which keeps the earliest snapshot.
func (h *History) RecordBeforeEdit(kind buffer.EditKind, row, col int) {
	r := h.buf.Row(row)
	if r == nil {
		return
	}
	h.redo = nil
	if h.depth > 0 {
		if n := len(h.pending.Changes); n > 0 {
			last := h.pending.Changes[n-1]
			if last.Op == Restore && last.Row == row {
				return
			}
		}
		h.add(kind, Change{Row: row, Op: Restore, Snapshot: r.Clone()})
		return
	}
	if h.co.extends(kind, row, col) && len(h.undo) > 0 {
		h.co.lastCol = col
		return
	}
	h.undo = h.push(h.undo, Entry{Kind: kind, Changes: []Change{{Row: row, Op: Restore, Snapshot: r.Clone()}}})
	h.co = coalesce{kind: kind, row: row, lastCol: col, active: true}
}

// RecordRowInserted notes that a row is about to be inserted at row.
func (h *History) RecordRowInserted(row int) {
	if row < 0 || row > h.buf.NumRows() {
		return
	}
	h.redo = nil
	h.co = coalesce{}
	h.add(buffer.EditInsert, Change{Row: row, Op: Remove})
}

// RecordRowRemoved snapshots row before it is removed.
func (h *History) RecordRowRemoved(row int) {
	r := h.buf.Row(row)
	if r == nil {
		return
	}
	h.redo = nil
	h.co = coalesce{}
	h.add(buffer.EditDelete, Change{Row: row, Op: Reinsert, Snapshot: r.Clone()})
}

func (h *History) add(kind buffer.EditKind, c Change) {
	if h.depth > 0 {
		if len(h.pending.Changes) == 0 {
			h.pending.Kind = kind
		}
		h.pending.Changes = append(h.pending.Changes, c)
		return
	}
	h.undo = h.push(h.undo, Entry{Kind: kind, Changes: []Change{c}})
}

// Undo reverts the newest entry. It reports false when there is nothing
// to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	e := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = Entry{}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, h.apply(e))
	h.co = coalesce{}
	return true
}

// Redo reapplies the newest undone entry.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	e := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = Entry{}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, h.apply(e))
	h.co = coalesce{}
	return true
}

// apply replays e's changes newest first and returns the entry that
// reverses it. The cursor lands on the row of e's oldest change.
func (h *History) apply(e Entry) Entry {
	inv := Entry{Kind: e.Kind, Changes: make([]Change, 0, len(e.Changes))}
	for i := len(e.Changes) - 1; i >= 0; i-- {
		c := e.Changes[i]
		switch c.Op {
		case Restore:
			r := h.buf.Row(c.Row)
			if r == nil {
				continue
			}
			inv.Changes = append(inv.Changes, Change{Row: c.Row, Op: Restore, Snapshot: r.Clone()})
			h.buf.RestoreRow(c.Row, c.Snapshot)
		case Remove:
			snap, ok := h.buf.RemoveRow(c.Row)
			if !ok {
				continue
			}
			inv.Changes = append(inv.Changes, Change{Row: c.Row, Op: Reinsert, Snapshot: snap})
		case Reinsert:
			h.buf.ReinsertRow(c.Row, c.Snapshot)
			inv.Changes = append(inv.Changes, Change{Row: c.Row, Op: Remove})
		}
	}
	h.buf.Dirty = true
	h.placeCursor(e.Row())
	return inv
}

func (h *History) placeCursor(row int) {
	b := h.buf
	if b.NumRows() == 0 {
		b.Cursor = buffer.Pos{}
		return
	}
	row = min(max(row, 0), b.NumRows()-1)
	b.Cursor = buffer.Pos{Row: row, Col: min(b.Cursor.Col, b.RowLen(row))}
}

// push appends e to s, evicting the oldest entry when s is full.
func (h *History) push(s []Entry, e Entry) []Entry {
	if len(s) >= h.capacity {
		n := len(s) - h.capacity + 1
		copy(s, s[n:])
		for i := len(s) - n; i < len(s); i++ {
			s[i] = Entry{}
		}
		s = s[:len(s)-n]
	}
	return append(s, e)
}
