package app

import (
	"fmt"
	"time"

	"example.com/batata/pkg/config"
	"example.com/batata/pkg/input"
	"example.com/batata/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop around a Session.
type Runner struct {
	Screen  tcell.Screen
	Session *Session
	Theme   config.Theme
	Logger  *logs.Logger

	now func() time.Time
}

// NewRunner wraps s. The theme is chosen from the session configuration.
func NewRunner(s *Session) *Runner {
	theme := config.ThemeByName(s.Config.Theme).WithOverrides(s.Config.Colors)
	return &Runner{Session: s, Theme: theme, Logger: s.Logger, now: time.Now}
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.EnableMouse()
	s.SetStyle(tcell.StyleDefault.Background(r.Theme.Background).Foreground(r.Theme.Foreground))
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// Run starts the event loop. It initializes the screen if needed and
// returns when the session asks to quit or the screen goes away.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	log := r.Logger.With().Str("file", r.Session.FilePath).Logger()
	log.Info().Msg("run.start")
	defer log.Info().Msg("run.end")

	r.Session.SetSize(r.Screen.Size())
	r.draw()
	for {
		ev := r.Screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			r.Screen.Sync()
			r.Session.SetSize(r.Screen.Size())
		}
		for _, k := range input.FromTcell(ev) {
			if r.Session.HandleKey(k) {
				return nil
			}
		}
		r.draw()
	}
}

func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	paint(r.Screen, r.Session.Frame(r.now()), r.Theme)
}
