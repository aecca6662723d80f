package app

import (
	"fmt"

	"example.com/batata/pkg/buffer"
	"example.com/batata/pkg/input"
	"example.com/batata/pkg/search"
)

type promptKind int

const (
	promptSearch promptKind = iota
	promptSaveAs
	promptQuit
)

const (
	searchPrompt = "Search: %s (Esc to cancel)"
	saveAsPrompt = "Save as: %s (press ESC to cancel)"
	quitPrompt   = "Warning!! The file has unsaved changes, press 'y or Y' to confirm and quit:"
)

// prompt is a line of input read on the message line. While a prompt is
// open every key goes to it.
type prompt struct {
	kind  promptKind
	input []byte

	// Search restores these on cancel.
	origin               buffer.Pos
	rowOffset, colOffset int
}

func (p *prompt) String() string {
	switch p.kind {
	case promptSearch:
		return fmt.Sprintf(searchPrompt, p.input)
	case promptSaveAs:
		return fmt.Sprintf(saveAsPrompt, p.input)
	}
	return quitPrompt
}

func (s *Session) startPrompt(kind promptKind) {
	s.pend = pending{}
	s.History.Break()
	b := s.Buf
	s.prompt = &prompt{kind: kind, origin: b.Cursor, rowOffset: b.RowOffset, colOffset: b.ColOffset}
	if kind == promptSaveAs {
		s.prompt.input = []byte(s.FilePath)
	}
}

func (s *Session) startSearch() {
	s.startPrompt(promptSearch)
}

func (s *Session) closePrompt() {
	s.prompt = nil
	s.match = nil
}

func (s *Session) handlePrompt(k input.Key) bool {
	p := s.prompt
	if p.kind == promptQuit {
		s.closePrompt()
		if k.Is('y') || k.Is('Y') {
			s.Logger.Info().Str("file", s.FilePath).Bool("dirty", true).Msg("quit")
			return true
		}
		s.SetMessage("Quitting Cancelled")
		return false
	}

	s.match = nil
	switch {
	case k.Code == input.Escape:
		s.cancelPrompt()
	case k.Code == input.Enter:
		if len(p.input) == 0 {
			return false
		}
		s.acceptPrompt()
	case k.Code == input.Backspace || k.IsCtrl('h'):
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
			s.searchFrom(search.Forward, true)
		}
	case k.Code == input.ArrowRight || k.Code == input.ArrowDown:
		s.searchFrom(search.Forward, false)
	case k.Code == input.ArrowLeft || k.Code == input.ArrowUp:
		s.searchFrom(search.Backward, false)
	case k.Printable() && k.Byte != '\t':
		p.input = append(p.input, k.Byte)
		s.searchFrom(search.Forward, true)
	}
	return false
}

func (s *Session) cancelPrompt() {
	p := s.prompt
	s.closePrompt()
	switch p.kind {
	case promptSearch:
		b := s.Buf
		b.Cursor = p.origin
		b.RowOffset, b.ColOffset = p.rowOffset, p.colOffset
	case promptSaveAs:
		s.SetMessage("Save Aborted")
	}
}

func (s *Session) acceptPrompt() {
	p := s.prompt
	s.closePrompt()
	switch p.kind {
	case promptSearch:
		s.Logger.Debug().Str("query", string(p.input)).Int("row", s.Buf.Cursor.Row).Msg("search")
	case promptSaveAs:
		s.FilePath = string(p.input)
		s.Buf.SetLanguage(s.Languages.Select(s.FilePath))
		s.write()
	}
}

// searchFrom moves the cursor to the next match of the search query. A
// changed query searches again from where the prompt was opened; arrows
// step from the current match in their direction.
func (s *Session) searchFrom(dir search.Direction, restart bool) {
	p := s.prompt
	if p.kind != promptSearch {
		return
	}
	b := s.Buf
	from := b.Cursor
	if restart {
		from = p.origin
	}
	r, ok := search.Next(b, string(p.input), from.Row, from.Col, dir, restart)
	if !ok {
		if restart {
			b.Cursor = p.origin
		}
		return
	}
	b.Cursor = buffer.Pos{Row: r.Row, Col: r.Start}
	s.match = &r
}
