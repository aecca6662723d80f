package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/config"
	"example.com/batata/pkg/history"
	"example.com/batata/pkg/input"
	"example.com/batata/pkg/logs"
	"example.com/batata/pkg/search"
	"example.com/batata/pkg/store"
	"example.com/batata/pkg/syntax"
)

// Mode represents the current editor mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	}
	return "NORMAL"
}

const (
	// messageTTL is how long a status message stays visible.
	messageTTL = 5 * time.Second
	// wheelRows is the number of rows one mouse wheel step scrolls.
	wheelRows = 3
	// chromeRows are the status bar and the message line.
	chromeRows = 2
	maxCount   = 99999
)

// commands are the keymap entries a control chord can trigger.
var commands = []string{"quit", "save", "undo", "redo", "find"}

// Options configures a Session. Nil fields select the defaults.
type Options struct {
	Config    *config.Config
	Store     store.Store
	Languages *syntax.Registry
	Logger    *logs.Logger
}

// Session is one editing session: the document, its history and the modal
// command state. HandleKey consumes one key at a time and Frame describes
// what belongs on screen. Nothing in a Session is shared.
type Session struct {
	Buf       *buffer.Buffer
	History   *history.History
	KillRing  history.KillRing
	Mode      Mode
	FilePath  string
	Config    *config.Config
	Store     store.Store
	Languages *syntax.Registry
	Logger    *logs.Logger

	width, height int

	message   string
	messageAt time.Time
	now       func() time.Time

	pend   pending
	prompt *prompt
	// match is the search hit painted with the Match class.
	match *search.Range
}

// pending is the partially typed normal or visual mode command.
type pending struct {
	count   int
	op      byte // 'd' or 'c'
	opCount int
	inner   bool // 'i' typed, a text object follows
	arg     byte // 'r', 's' or 'g' waiting for the next key
}

// NewSession returns a session with an empty buffer.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	st := opts.Store
	if st == nil {
		st = store.FileStore{}
	}
	langs := opts.Languages
	if langs == nil {
		langs = syntax.NewRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = logs.Nop()
	}
	buf := buffer.New(cfg.TabLength)
	return &Session{
		Buf:       buf,
		History:   history.New(buf, cfg.UndoStackSize),
		Mode:      ModeNormal,
		Config:    cfg,
		Store:     st,
		Languages: langs,
		Logger:    log,
		width:     80,
		height:    24,
		now:       time.Now,
	}
}

// Open loads path into the buffer and selects its language. A file that
// does not exist yet opens an empty buffer under that name.
func (s *Session) Open(path string) error {
	log := s.Logger.With().Str("file", path).Logger()
	data, err := s.Store.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Msg("open.new")
		data = nil
	case err != nil:
		log.Error().Err(err).Msg("open.error")
		return fmt.Errorf("open: %w", err)
	}
	s.FilePath = path
	s.Buf.Lang = s.Languages.Select(path)
	s.Buf.Open(data)
	s.History.Reset()
	s.Mode = ModeNormal
	s.pend = pending{}
	lang := ""
	if s.Buf.Lang != nil {
		lang = s.Buf.Lang.Name
	}
	log.Info().Int("bytes", len(data)).Int("rows", s.Buf.NumRows()).Str("lang", lang).Msg("open.success")
	return nil
}

// SetSize tells the session the terminal size in cells.
func (s *Session) SetSize(width, height int) {
	s.width, s.height = width, height
	s.scroll()
}

// SetMessage shows a formatted message on the message line.
func (s *Session) SetMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageAt = s.now()
}

// Message returns the last message set, expired or not.
func (s *Session) Message() string { return s.message }

// HandleKey processes one key to completion. It returns true when the
// session should end.
func (s *Session) HandleKey(k input.Key) bool {
	s.Logger.Trace().Stringer("key", k).Stringer("mode", s.Mode).Msg("key")
	var quit bool
	switch {
	case s.prompt != nil:
		quit = s.handlePrompt(k)
	case k.Code == input.Mouse:
		s.handleMouse(k.Mouse)
	case s.Mode == ModeInsert:
		quit = s.handleInsert(k)
	case s.Mode == ModeVisual:
		quit = s.handleVisual(k)
	default:
		quit = s.handleNormal(k)
	}
	s.scroll()
	return quit
}

// command returns the keymap command bound to k, if any.
func (s *Session) command(k input.Key) string {
	if k.Code != input.Byte || k.Byte >= ' ' || k.Byte == '\t' {
		return ""
	}
	for _, name := range commands {
		if kb, ok := s.Config.Keymap[name]; ok && kb.Byte() == k.Byte {
			return name
		}
	}
	return ""
}

func (s *Session) run(cmd string) bool {
	s.pend = pending{}
	switch cmd {
	case "quit":
		if s.Buf.Dirty {
			s.startPrompt(promptQuit)
			return false
		}
		s.Logger.Info().Str("file", s.FilePath).Msg("quit")
		return true
	case "save":
		s.save()
	case "undo":
		s.undo()
	case "redo":
		s.redo()
	case "find":
		s.startSearch()
	}
	return false
}

func (s *Session) save() {
	if s.FilePath == "" {
		s.startPrompt(promptSaveAs)
		return
	}
	s.write()
}

func (s *Session) write() {
	n, err := s.Store.Save(s.FilePath, s.Buf.Serialize())
	if err != nil {
		s.Logger.Error().Err(err).Str("file", s.FilePath).Msg("save.error")
		s.SetMessage("I/O error: %s", err)
		return
	}
	s.Buf.Dirty = false
	s.Logger.Info().Str("file", s.FilePath).Int("bytes", n).Msg("save.success")
	s.SetMessage("%d bytes written to disk", n)
}

func (s *Session) undo() {
	if s.History.Undo() {
		s.action("undo")
	}
	s.Buf.ClampCursor(s.Mode == ModeInsert)
}

func (s *Session) redo() {
	if s.History.Redo() {
		s.action("redo")
	}
	s.Buf.ClampCursor(s.Mode == ModeInsert)
}

func (s *Session) action(name string) {
	s.Logger.Debug().
		Str("action", name).
		Int("row", s.Buf.Cursor.Row).
		Int("col", s.Buf.Cursor.Col).
		Int("rows", s.Buf.NumRows()).
		Msg("action")
}

func (s *Session) setMode(m Mode) {
	if s.Mode != m {
		s.History.Break()
	}
	s.Mode = m
	s.Buf.ClampCursor(m == ModeInsert)
}

// textRows is the height of the text area.
func (s *Session) textRows() int {
	return max(s.height-chromeRows, 1)
}

// textCols is the width of the text area right of the gutter.
func (s *Session) textCols() int {
	return max(s.width-s.gutterWidth(), 1)
}

// gutterWidth is the width of the line number column plus one blank.
func (s *Session) gutterWidth() int {
	return len(fmt.Sprint(max(s.Buf.NumRows(), 1))) + 1
}

// scroll moves the viewport so that the cursor is visible.
func (s *Session) scroll() {
	b := s.Buf
	b.RenderCol = b.ToRenderCol(b.Cursor.Row, b.Cursor.Col)
	rows, cols := s.textRows(), s.textCols()
	if b.Cursor.Row < b.RowOffset {
		b.RowOffset = b.Cursor.Row
	}
	if b.Cursor.Row >= b.RowOffset+rows {
		b.RowOffset = b.Cursor.Row - rows + 1
	}
	if b.RenderCol < b.ColOffset {
		b.ColOffset = b.RenderCol
	}
	if b.RenderCol >= b.ColOffset+cols {
		b.ColOffset = b.RenderCol - cols + 1
	}
}

// scrollBy moves the viewport n rows and drags the cursor along when it
// would leave the window. The row offset stays within the document.
func (s *Session) scrollBy(n int) {
	b := s.Buf
	b.RowOffset = min(max(b.RowOffset+n, 0), max(b.NumRows()-1, 0))
	rows := s.textRows()
	if b.Cursor.Row < b.RowOffset {
		b.Cursor.Row = b.RowOffset
	}
	if b.Cursor.Row >= b.RowOffset+rows {
		b.Cursor.Row = b.RowOffset + rows - 1
	}
	b.ClampCursor(s.Mode == ModeInsert)
}

// page moves the cursor and the viewport n rows.
func (s *Session) page(n int) {
	b := s.Buf
	b.Cursor.Row += n
	b.ClampCursor(s.Mode == ModeInsert)
	s.scrollBy(n)
}

func (s *Session) handleMouse(m input.MouseEvent) {
	s.pend = pending{}
	s.History.Break()
	b := s.Buf
	switch m.Button {
	case input.WheelUp:
		s.scrollBy(-wheelRows)
	case input.WheelDown:
		s.scrollBy(wheelRows)
	case input.ButtonLeft:
		if b.NumRows() == 0 || m.Y < 0 || m.Y >= s.textRows() {
			return
		}
		row := min(b.RowOffset+m.Y, b.NumRows()-1)
		render := max(m.X-s.gutterWidth(), 0) + b.ColOffset
		b.Cursor = buffer.Pos{Row: row, Col: b.ToRawCol(row, render)}
		b.ClampCursor(s.Mode == ModeInsert)
	}
}
