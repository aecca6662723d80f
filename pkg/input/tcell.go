package input

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[tcell.Key]Code{
	tcell.KeyEnter:      Enter,
	tcell.KeyEscape:     Escape,
	tcell.KeyBackspace:  Backspace,
	tcell.KeyBackspace2: Backspace,
	tcell.KeyDelete:     Delete,
	tcell.KeyLeft:       ArrowLeft,
	tcell.KeyRight:      ArrowRight,
	tcell.KeyUp:         ArrowUp,
	tcell.KeyDown:       ArrowDown,
	tcell.KeyHome:       Home,
	tcell.KeyEnd:        End,
	tcell.KeyPgUp:       PageUp,
	tcell.KeyPgDn:       PageDown,
}

// FromTcell converts a terminal event into logical keys. Runes outside
// ASCII become one key per UTF-8 byte. Keys with no logical meaning become
// Escape, which aborts any pending command. Events that are not keys or
// mouse actions yield nothing.
func FromTcell(ev tcell.Event) []Key {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return fromKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			return []Key{Click(WheelUp, x, y, true)}
		case btn&tcell.WheelDown != 0:
			return []Key{Click(WheelDown, x, y, true)}
		case btn&tcell.Button1 != 0:
			return []Key{Click(ButtonLeft, x, y, true)}
		}
		return nil
	}
	return nil
}

func fromKey(ev *tcell.EventKey) []Key {
	if code, ok := namedKeys[ev.Key()]; ok {
		return []Key{Named(code)}
	}
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return []Key{Ctrl(byte(r))}
		}
		if r < utf8.RuneSelf {
			return []Key{Char(byte(r))}
		}
		buf := utf8.AppendRune(nil, r)
		keys := make([]Key, len(buf))
		for i, c := range buf {
			keys[i] = Char(c)
		}
		return keys
	case k == tcell.KeyTab:
		return []Key{Char('\t')}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return []Key{{Code: Byte, Byte: byte(k)}}
	}
	return []Key{Named(Escape)}
}
