package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/config"
	"example.com/batata/pkg/input"
	"github.com/stretchr/testify/require"
)

// memStore keeps documents in memory.
type memStore struct {
	files map[string][]byte
	err   error
}

func (m *memStore) Load(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memStore) Save(path string, data []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[path] = append([]byte(nil), data...)
	return len(data), nil
}

func newSession(t *testing.T, lines ...string) *Session {
	t.Helper()
	s := NewSession(Options{Store: &memStore{}})
	s.Buf.Open([]byte(strings.Join(lines, "\n")))
	s.SetSize(80, 24)
	return s
}

// feed sends a key specification to s and reports whether it asked to
// quit.
func feed(t *testing.T, s *Session, keys string) bool {
	t.Helper()
	for _, k := range input.MustParse(keys) {
		if s.HandleKey(k) {
			return true
		}
	}
	return false
}

func rows(s *Session) []string {
	out := make([]string, s.Buf.NumRows())
	for i := range out {
		out[i] = s.Buf.RowText(i)
	}
	return out
}

func TestDeleteWord_OneUndoStep(t *testing.T) {
	s := newSession(t, "foo bar")
	feed(t, s, "dw")
	require.Equal(t, []string{"bar"}, rows(s))
	require.Equal(t, 1, s.History.Len())

	feed(t, s, "u")
	require.Equal(t, []string{"foo bar"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 0, Col: 0}, s.Buf.Cursor)
}

func TestVisualDelete_Inclusive(t *testing.T) {
	s := newSession(t, "hello world")
	feed(t, s, "ll")
	require.Equal(t, 2, s.Buf.Cursor.Col)
	feed(t, s, "vlll")
	require.Equal(t, ModeVisual, s.Mode)
	feed(t, s, "d")
	require.Equal(t, []string{"heworld"}, rows(s))
	require.Equal(t, ModeNormal, s.Mode)
	require.Equal(t, 1, s.History.Len())
	require.Equal(t, "llo ", s.KillRing.Get())
}

func TestInsert_TypingCoalesces(t *testing.T) {
	s := newSession(t, "x")
	feed(t, s, "iabc<esc>")
	require.Equal(t, []string{"abcx"}, rows(s))
	require.Equal(t, 1, s.History.Len())
	require.Equal(t, ModeNormal, s.Mode)

	feed(t, s, "u")
	require.Equal(t, []string{"x"}, rows(s))
}

func TestInsert_EscapeClosesGroup(t *testing.T) {
	s := newSession(t, "")
	feed(t, s, "iab<esc>")
	before := s.History.Len()
	feed(t, s, "acd<esc>")
	require.Equal(t, []string{"abcd"}, rows(s))
	require.Equal(t, before+1, s.History.Len())
}

func TestInsert_EmptyBuffer(t *testing.T) {
	s := newSession(t)
	require.Equal(t, 0, s.Buf.NumRows())
	feed(t, s, "ihi<cr>there<esc>")
	require.Equal(t, []string{"hi", "there"}, rows(s))
}

func TestInsert_BackspaceJoinsRows(t *testing.T) {
	s := newSession(t, "ab", "cd")
	feed(t, s, "ji<bs>")
	require.Equal(t, []string{"abcd"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 0, Col: 2}, s.Buf.Cursor)

	feed(t, s, "<bs><bs>")
	require.Equal(t, []string{"cd"}, rows(s))
	feed(t, s, "<esc>u")
	require.Equal(t, []string{"abcd"}, rows(s))
}

func TestInsert_DeleteJoinsNextRow(t *testing.T) {
	s := newSession(t, "ab", "cd")
	feed(t, s, "A<del>")
	require.Equal(t, []string{"abcd"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 0, Col: 2}, s.Buf.Cursor)
}

func TestInsert_EnterSplits(t *testing.T) {
	s := newSession(t, "abcd")
	feed(t, s, "lli<cr><esc>")
	require.Equal(t, []string{"ab", "cd"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 1, Col: 0}, s.Buf.Cursor)
}

func TestInsert_CtrlLLeaves(t *testing.T) {
	s := newSession(t, "a")
	feed(t, s, "A<c-l>")
	require.Equal(t, ModeNormal, s.Mode)
	require.Equal(t, 0, s.Buf.Cursor.Col)
}

func TestNormal_Motions(t *testing.T) {
	s := newSession(t, "foo bar.baz qux", "", "  last line")
	cases := []struct {
		keys string
		want buffer.Pos
	}{
		{"w", buffer.Pos{Row: 0, Col: 4}},
		{"w", buffer.Pos{Row: 0, Col: 7}},
		{"W", buffer.Pos{Row: 0, Col: 12}},
		{"b", buffer.Pos{Row: 0, Col: 8}},
		{"e", buffer.Pos{Row: 0, Col: 10}},
		{"$", buffer.Pos{Row: 0, Col: 14}},
		{"0", buffer.Pos{Row: 0, Col: 0}},
		{"G", buffer.Pos{Row: 2, Col: 0}},
		{"gg", buffer.Pos{Row: 0, Col: 0}},
		{"2j", buffer.Pos{Row: 2, Col: 0}},
		{"k", buffer.Pos{Row: 1, Col: 0}},
		{"3G", buffer.Pos{Row: 2, Col: 0}},
		{"10l", buffer.Pos{Row: 2, Col: 10}},
		{"<left>", buffer.Pos{Row: 2, Col: 9}},
		{"<home>", buffer.Pos{Row: 2, Col: 0}},
	}
	for _, c := range cases {
		feed(t, s, c.keys)
		require.Equal(t, c.want, s.Buf.Cursor, "after %q", c.keys)
	}
}

func TestNormal_UpFromFirstRowIsNoop(t *testing.T) {
	s := newSession(t, "abc")
	feed(t, s, "kkh")
	require.Equal(t, buffer.Pos{}, s.Buf.Cursor)
	feed(t, s, "dk")
	require.Equal(t, []string{"abc"}, rows(s))
	require.Equal(t, 0, s.History.Len())
}

func TestNormal_Counts(t *testing.T) {
	s := newSession(t, "one two three four")
	feed(t, s, "2dw")
	require.Equal(t, []string{"three four"}, rows(s))

	s = newSession(t, "one two three four")
	feed(t, s, "d2w")
	require.Equal(t, []string{"three four"}, rows(s))

	s = newSession(t, "abcdef")
	feed(t, s, "3x")
	require.Equal(t, []string{"def"}, rows(s))
	require.Equal(t, "abc", s.KillRing.Get())
}

func TestNormal_DeleteRows(t *testing.T) {
	s := newSession(t, "a", "b", "c")
	feed(t, s, "2dd")
	require.Equal(t, []string{"c"}, rows(s))
	require.Equal(t, 1, s.History.Len())

	feed(t, s, "p")
	require.Equal(t, []string{"c", "a", "b"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 1}, s.Buf.Cursor)

	feed(t, s, "D")
	require.Equal(t, []string{"c", "b"}, rows(s))

	feed(t, s, "ggP")
	require.Equal(t, []string{"a", "c", "b"}, rows(s))
}

func TestNormal_DeleteLastRow(t *testing.T) {
	s := newSession(t, "only")
	feed(t, s, "dd")
	require.Equal(t, 0, s.Buf.NumRows())
	feed(t, s, "ix<esc>")
	require.Equal(t, []string{"x"}, rows(s))
	feed(t, s, "uu")
	require.Equal(t, 0, s.Buf.NumRows())
	feed(t, s, "u")
	require.Equal(t, []string{"only"}, rows(s))
}

func TestNormal_DeleteLinewiseMotions(t *testing.T) {
	s := newSession(t, "a", "b", "c", "d")
	feed(t, s, "jdj")
	require.Equal(t, []string{"a", "d"}, rows(s))

	s = newSession(t, "a", "b", "c", "d")
	feed(t, s, "Gdk")
	require.Equal(t, []string{"a", "b"}, rows(s))

	s = newSession(t, "a", "b", "c", "d")
	feed(t, s, "jdG")
	require.Equal(t, []string{"a"}, rows(s))
}

func TestNormal_DeleteToLineEdges(t *testing.T) {
	s := newSession(t, "abcdef", "next")
	feed(t, s, "lld$")
	require.Equal(t, []string{"ab", "next"}, rows(s))
	require.Equal(t, buffer.Pos{Row: 0, Col: 1}, s.Buf.Cursor)

	feed(t, s, "d0")
	require.Equal(t, []string{"b", "next"}, rows(s))

	// A row emptied by an operator is removed.
	feed(t, s, "d$")
	require.Equal(t, []string{"next"}, rows(s))

	s = newSession(t, "abcdef")
	feed(t, s, "ll2dh")
	require.Equal(t, []string{"cdef"}, rows(s))
	feed(t, s, "2dl")
	require.Equal(t, []string{"ef"}, rows(s))
}

func TestNormal_DeleteWordEndAndBack(t *testing.T) {
	s := newSession(t, "foo bar baz")
	feed(t, s, "de")
	require.Equal(t, []string{" bar baz"}, rows(s))

	s = newSession(t, "foo bar baz")
	feed(t, s, "$db")
	require.Equal(t, []string{"foo bar z"}, rows(s))
}

func TestNormal_Change(t *testing.T) {
	s := newSession(t, "foo bar")
	feed(t, s, "cwx<esc>")
	require.Equal(t, []string{"x bar"}, rows(s))

	s = newSession(t, "foo", "bar")
	feed(t, s, "ccnew<esc>")
	require.Equal(t, []string{"new", "bar"}, rows(s))

	s = newSession(t, "foo bar")
	feed(t, s, "wCbaz<esc>")
	require.Equal(t, []string{"foo baz"}, rows(s))
	require.Equal(t, 2, s.History.Len())
}

func TestNormal_TextObjects(t *testing.T) {
	s := newSession(t, "call(foo, bar) x")
	feed(t, s, "5ldi(")
	require.Equal(t, []string{"call() x"}, rows(s))

	s = newSession(t, "hello world")
	feed(t, s, "ldiw")
	require.Equal(t, []string{" world"}, rows(s))

	s = newSession(t, "f(a,", "  b) + 1")
	feed(t, s, "jlldi(")
	require.Equal(t, []string{"f() + 1"}, rows(s))

	// cursor before any parenthesis on the row uses the next pair
	s = newSession(t, "if (ok) {")
	feed(t, s, "ci(yes<esc>")
	require.Equal(t, []string{"if (yes) {"}, rows(s))

	// no object under the cursor is a no-op
	s = newSession(t, "a  b")
	feed(t, s, "ldiw")
	require.Equal(t, []string{"a  b"}, rows(s))
	require.Equal(t, 0, s.History.Len())
}

func TestNormal_ReplaceAndToggle(t *testing.T) {
	s := newSession(t, "abc")
	feed(t, s, "rX")
	require.Equal(t, []string{"Xbc"}, rows(s))
	require.Equal(t, ModeNormal, s.Mode)

	feed(t, s, "l~")
	require.Equal(t, []string{"XBc"}, rows(s))
	require.Equal(t, 2, s.Buf.Cursor.Col)

	feed(t, s, "0sZ")
	require.Equal(t, []string{"ZBc"}, rows(s))
	require.Equal(t, ModeInsert, s.Mode)
	require.Equal(t, 1, s.Buf.Cursor.Col)

	s = newSession(t, "abc")
	feed(t, s, "r<esc>")
	require.Equal(t, []string{"abc"}, rows(s))
}

func TestNormal_Increment(t *testing.T) {
	s := newSession(t, "x = 41;")
	feed(t, s, "4l<c-a>")
	require.Equal(t, []string{"x = 42;"}, rows(s))
	require.Equal(t, 5, s.Buf.Cursor.Col)
	require.Equal(t, 1, s.History.Len())

	feed(t, s, "5<c-x>")
	require.Equal(t, []string{"x = 37;"}, rows(s))

	s = newSession(t, "a -1 b")
	feed(t, s, "3l<c-a>")
	require.Equal(t, []string{"a 0 b"}, rows(s))
	require.Equal(t, 2, s.Buf.Cursor.Col)

	s = newSession(t, "v9")
	feed(t, s, "<c-a>")
	require.Equal(t, []string{"v9"}, rows(s))
	feed(t, s, "l<c-a>")
	require.Equal(t, []string{"v10"}, rows(s))
	require.Equal(t, 2, s.Buf.Cursor.Col)
}

func TestNormal_OpenLine(t *testing.T) {
	s := newSession(t, "a", "c")
	feed(t, s, "ob<esc>")
	require.Equal(t, []string{"a", "b", "c"}, rows(s))
	feed(t, s, "ggOz<esc>")
	require.Equal(t, []string{"z", "a", "b", "c"}, rows(s))
	feed(t, s, "I-<esc>")
	require.Equal(t, "-z", s.Buf.RowText(0))
}

func TestUndoRedo(t *testing.T) {
	s := newSession(t, "abc")
	feed(t, s, "x")
	require.Equal(t, []string{"bc"}, rows(s))
	feed(t, s, "u")
	require.Equal(t, []string{"abc"}, rows(s))
	feed(t, s, "<c-r>")
	require.Equal(t, []string{"bc"}, rows(s))

	// a new edit drops the redo stack
	feed(t, s, "ux<c-r>")
	require.Equal(t, []string{"bc"}, rows(s))
	require.False(t, s.History.CanRedo())

	// ctrl-z is undo in every mode
	feed(t, s, "i<c-z>")
	require.Equal(t, []string{"abc"}, rows(s))
}

func TestVisual_TextObjectsAndYank(t *testing.T) {
	s := newSession(t, "foo(bar, baz) end")
	feed(t, s, "5lvi(")
	require.Equal(t, buffer.Pos{Row: 0, Col: 4}, s.Buf.Anchor)
	require.Equal(t, buffer.Pos{Row: 0, Col: 11}, s.Buf.Cursor)
	feed(t, s, "y")
	require.Equal(t, "bar, baz", s.KillRing.Get())
	require.Equal(t, ModeNormal, s.Mode)
	require.Equal(t, buffer.Pos{Row: 0, Col: 4}, s.Buf.Cursor)

	feed(t, s, "viwc")
	require.Equal(t, ModeInsert, s.Mode)
	require.Equal(t, []string{"foo(, baz) end"}, rows(s))

	s = newSession(t, "one two-three four")
	feed(t, s, "5lviWd")
	require.Equal(t, []string{"one  four"}, rows(s))
}

func TestVisual_MultiRowDelete(t *testing.T) {
	s := newSession(t, "abc", "def", "ghi")
	feed(t, s, "lvjd")
	require.Equal(t, []string{"af", "ghi"}, rows(s))

	s = newSession(t, "abc", "def")
	feed(t, s, "vj$d")
	require.Equal(t, []string{}, rows(s))
	feed(t, s, "u")
	require.Equal(t, []string{"abc", "def"}, rows(s))
}

func TestVisual_EscapeAndSwap(t *testing.T) {
	s := newSession(t, "abcdef")
	feed(t, s, "lvll")
	feed(t, s, "o")
	require.Equal(t, buffer.Pos{Row: 0, Col: 1}, s.Buf.Cursor)
	require.Equal(t, buffer.Pos{Row: 0, Col: 3}, s.Buf.Anchor)
	feed(t, s, "<esc>")
	require.Equal(t, ModeNormal, s.Mode)
	require.Equal(t, []string{"abcdef"}, rows(s))
}

func TestSearchPrompt(t *testing.T) {
	s := newSession(t, "alpha", "beta", "alphabet")
	feed(t, s, "/bet")
	require.NotNil(t, s.prompt)
	require.Equal(t, buffer.Pos{Row: 1, Col: 0}, s.Buf.Cursor)
	require.Equal(t, "Search: bet (Esc to cancel)", s.Frame(time.Now()).Message)

	feed(t, s, "<down>")
	require.Equal(t, buffer.Pos{Row: 2, Col: 5}, s.Buf.Cursor)
	feed(t, s, "<up>")
	require.Equal(t, buffer.Pos{Row: 1, Col: 0}, s.Buf.Cursor)

	feed(t, s, "<cr>")
	require.Nil(t, s.prompt)
	require.Equal(t, buffer.Pos{Row: 1, Col: 0}, s.Buf.Cursor)

	feed(t, s, "gg/alpha<down>")
	require.Equal(t, buffer.Pos{Row: 2, Col: 0}, s.Buf.Cursor)
	feed(t, s, "<esc>")
	require.Nil(t, s.prompt)
	require.Equal(t, buffer.Pos{Row: 0, Col: 0}, s.Buf.Cursor)
}

func TestSearchPrompt_MatchHighlight(t *testing.T) {
	s := newSession(t, "int x;", "x = y;")
	feed(t, s, "/y")
	f := s.Frame(time.Now())
	require.Equal(t, "match", f.Rows[1].Highlight[4].String())
	feed(t, s, "<bs>")
	f = s.Frame(time.Now())
	require.NotEqual(t, "match", f.Rows[1].Highlight[4].String())
}

func TestSearchPrompt_FromInsert(t *testing.T) {
	s := newSession(t, "abc", "xyz")
	feed(t, s, "i<c-f>y<cr>")
	require.Equal(t, ModeInsert, s.Mode)
	require.Equal(t, buffer.Pos{Row: 1, Col: 1}, s.Buf.Cursor)
}

func TestSave(t *testing.T) {
	st := &memStore{}
	s := NewSession(Options{Store: st})
	require.NoError(t, s.Open("new.c"))
	require.Equal(t, "c", s.Buf.Lang.Name)
	feed(t, s, "iint x;<esc><c-s>")
	require.Equal(t, "int x;\n", string(st.files["new.c"]))
	require.False(t, s.Buf.Dirty)
	require.Equal(t, "7 bytes written to disk", s.Message())

	st.err = errors.New("disk full")
	feed(t, s, "x<c-s>")
	require.True(t, s.Buf.Dirty)
	require.Equal(t, "I/O error: disk full", s.Message())
}

func TestSaveAsPrompt(t *testing.T) {
	st := &memStore{}
	s := NewSession(Options{Store: st})
	s.SetSize(80, 24)
	feed(t, s, "ihello<esc><c-s>")
	require.NotNil(t, s.prompt)
	require.Equal(t, "Save as:  (press ESC to cancel)", s.Frame(time.Now()).Message)
	feed(t, s, "<esc>")
	require.Equal(t, "Save Aborted", s.Message())
	require.Empty(t, st.files)

	feed(t, s, "<c-s>out.go<cr>")
	require.Equal(t, "out.go", s.FilePath)
	require.Equal(t, "hello\n", string(st.files["out.go"]))
	require.Equal(t, "go", s.Buf.Lang.Name)
}

func TestOpen(t *testing.T) {
	st := &memStore{files: map[string][]byte{"a.txt": []byte("one\r\ntwo\n")}}
	s := NewSession(Options{Store: st})
	require.NoError(t, s.Open("a.txt"))
	require.Equal(t, []string{"one", "two"}, rows(s))
	require.Nil(t, s.Buf.Lang)
	require.False(t, s.Buf.Dirty)

	bad := NewSession(Options{Store: failingStore{}})
	err := bad.Open("x")
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrPermission)
}

type failingStore struct{}

func (failingStore) Load(string) ([]byte, error) { return nil, fs.ErrPermission }
func (failingStore) Save(string, []byte) (int, error) { return 0, fs.ErrPermission }

func TestQuit(t *testing.T) {
	s := newSession(t, "abc")
	require.True(t, feed(t, s, "<c-q>"))

	s = newSession(t, "abc")
	feed(t, s, "x")
	require.False(t, feed(t, s, "<c-q>"))
	require.Equal(t, quitPrompt, s.Frame(time.Now()).Message)
	require.False(t, feed(t, s, "n"))
	require.Equal(t, "Quitting Cancelled", s.Message())
	require.Equal(t, []string{"bc"}, rows(s))

	require.True(t, feed(t, s, "<c-q>Y"))
}

func TestKeymapOverride(t *testing.T) {
	cfg := config.Default()
	kb, err := config.ParseKeybinding("Ctrl+W")
	require.NoError(t, err)
	cfg.Keymap["quit"] = kb
	s := NewSession(Options{Config: cfg, Store: &memStore{}})
	require.False(t, feed(t, s, "<c-q>"))
	require.True(t, feed(t, s, "<c-w>"))
}

func TestMessageExpires(t *testing.T) {
	s := newSession(t, "abc")
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }
	s.SetMessage("hello %d", 1)
	require.Equal(t, "hello 1", s.Frame(start.Add(4*time.Second)).Message)
	require.Equal(t, "", s.Frame(start.Add(6*time.Second)).Message)
}

func TestMouse(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	s := newSession(t, lines...)
	s.SetSize(40, 12) // ten text rows

	s.HandleKey(input.Click(input.WheelDown, 0, 0, true))
	require.Equal(t, 3, s.Buf.RowOffset)
	require.Equal(t, 3, s.Buf.Cursor.Row)

	for i := 0; i < 20; i++ {
		s.HandleKey(input.Click(input.WheelDown, 0, 0, true))
	}
	require.Equal(t, 29, s.Buf.RowOffset)
	require.Equal(t, 29, s.Buf.Cursor.Row)

	for i := 0; i < 20; i++ {
		s.HandleKey(input.Click(input.WheelUp, 0, 0, true))
	}
	require.Equal(t, 0, s.Buf.RowOffset)
	require.Equal(t, 9, s.Buf.Cursor.Row)

	// gutter is "30" plus a blank
	s.HandleKey(input.Click(input.ButtonLeft, 5, 2, true))
	require.Equal(t, buffer.Pos{Row: 2, Col: 2}, s.Buf.Cursor)
	s.HandleKey(input.Click(input.ButtonLeft, 39, 4, true))
	require.Equal(t, buffer.Pos{Row: 4, Col: 3}, s.Buf.Cursor)
	s.HandleKey(input.Click(input.ButtonLeft, 0, 11, true))
	require.Equal(t, buffer.Pos{Row: 4, Col: 3}, s.Buf.Cursor)
}

func TestScrollKeys(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "x"
	}
	s := newSession(t, lines...)
	s.SetSize(40, 12)

	feed(t, s, "<c-e>")
	require.Equal(t, 1, s.Buf.RowOffset)
	require.Equal(t, 1, s.Buf.Cursor.Row)
	feed(t, s, "<c-y>")
	require.Equal(t, 0, s.Buf.RowOffset)

	feed(t, s, "<c-d>")
	require.Equal(t, 6, s.Buf.Cursor.Row)
	feed(t, s, "<c-u>")
	require.Equal(t, 1, s.Buf.Cursor.Row)
	feed(t, s, "<c-f>")
	require.Equal(t, 11, s.Buf.Cursor.Row)
	feed(t, s, "<c-b>")
	require.Equal(t, 1, s.Buf.Cursor.Row)
}

func TestFrame(t *testing.T) {
	s := newSession(t, "int x = 1;", "\tb", "c")
	s.Config.RelativeLineNumbers = true
	s.Buf.SetLanguage(s.Languages.Select("main.c"))
	feed(t, s, "j")
	f := s.Frame(time.Now())
	require.Len(t, f.Rows, 3)
	require.Equal(t, []int{1, 2, 1}, []int{f.Rows[0].Number, f.Rows[1].Number, f.Rows[2].Number})
	require.True(t, f.Rows[1].Current)
	require.Equal(t, "type", f.Rows[0].Highlight[0].String())
	require.Equal(t, "    b", string(f.Rows[1].Render))
	require.Equal(t, 2, f.Gutter)
	require.Equal(t, 2, f.CursorX)
	require.Equal(t, 1, f.CursorY)
	require.True(t, strings.HasPrefix(f.Status, " [NORMAL] [No Name] - 3 lines"))
	require.True(t, strings.HasSuffix(f.Status, "c | 2/3"))
	require.Equal(t, 80, len(f.Status))

	feed(t, s, "kvl")
	f = s.Frame(time.Now())
	require.Equal(t, 0, f.Rows[0].SelStart)
	require.Equal(t, 2, f.Rows[0].SelEnd)
	require.Equal(t, -1, f.Rows[1].SelStart)
	require.Equal(t, ModeVisual, f.Mode)
}
