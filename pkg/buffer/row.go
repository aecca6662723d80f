package buffer

import "example.com/batata/pkg/syntax"

// Row is one line of the document. Render and Highlight are derived from
// Content and always have the same length.
type Row struct {
	Index       int
	Content     []byte
	Render      []byte
	Highlight   []syntax.Class
	OpenComment bool
}

// Clone returns a deep copy of r that shares no memory with it.
func (r Row) Clone() Row {
	return Row{
		Index:       r.Index,
		Content:     append([]byte(nil), r.Content...),
		Render:      append([]byte(nil), r.Render...),
		Highlight:   append([]syntax.Class(nil), r.Highlight...),
		OpenComment: r.OpenComment,
	}
}

// Len returns the number of raw bytes in the row.
func (r *Row) Len() int { return len(r.Content) }

func (r *Row) render(tab int) {
	tab = tabStop(tab)
	n := 0
	for _, c := range r.Content {
		if c == '\t' {
			n += tab
			continue
		}
		n++
	}
	out := make([]byte, 0, n)
	for _, c := range r.Content {
		if c == '\t' {
			out = append(out, ' ')
			for len(out)%tab != 0 {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, c)
	}
	r.Render = out
}

// RenderCol maps a raw column to its on-screen column.
func (r *Row) RenderCol(raw, tab int) int {
	tab = tabStop(tab)
	rx := 0
	for j := 0; j < raw && j < len(r.Content); j++ {
		if r.Content[j] == '\t' {
			rx += (tab - 1) - (rx % tab)
		}
		rx++
	}
	return rx
}

// RawCol maps an on-screen column back to a raw column. Columns inside an
// expanded tab resolve to the tab itself.
func (r *Row) RawCol(render, tab int) int {
	tab = tabStop(tab)
	rx := 0
	for cx, c := range r.Content {
		if c == '\t' {
			rx += (tab - 1) - (rx % tab)
		}
		rx++
		if rx > render {
			return cx
		}
	}
	return len(r.Content)
}

func tabStop(tab int) int {
	if tab < 1 {
		return DefaultTabLength
	}
	return tab
}
