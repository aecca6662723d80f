package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colors used to paint the editor.
type Theme struct {
	Background tcell.Color
	Foreground tcell.Color

	// Status bar and message line
	StatusBackground tcell.Color
	StatusForeground tcell.Color
	MessageForeground tcell.Color

	// Line number gutter
	LineNumber        tcell.Color
	CurrentLineNumber tcell.Color

	// Visual selection and search match
	SelectionBackground tcell.Color
	SelectionForeground tcell.Color
	MatchBackground     tcell.Color
	MatchForeground     tcell.Color

	// Syntax groups (keyword, type, string, comment, number, separator)
	SyntaxColors map[string]tcell.Color
}

// DefaultTheme returns the built-in dark-background theme.
func DefaultTheme() Theme {
	return Theme{
		Background: tcell.ColorBlack,
		Foreground: tcell.ColorWhite,

		StatusBackground:  tcell.ColorWhite,
		StatusForeground:  tcell.ColorBlack,
		MessageForeground: tcell.ColorWhite,

		LineNumber:        tcell.ColorGray,
		CurrentLineNumber: tcell.ColorYellow,

		SelectionBackground: tcell.ColorSilver,
		SelectionForeground: tcell.ColorBlack,
		MatchBackground:     tcell.ColorBlue,
		MatchForeground:     tcell.ColorWhite,

		SyntaxColors: map[string]tcell.Color{
			"keyword":   tcell.ColorYellow,
			"type":      tcell.ColorGreen,
			"string":    tcell.ColorFuchsia,
			"comment":   tcell.ColorTeal,
			"number":    tcell.ColorRed,
			"separator": tcell.ColorAqua,
		},
	}
}

// TerminalTheme follows the terminal's own palette and default colors.
func TerminalTheme() Theme {
	return Theme{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,

		StatusBackground:  tcell.ColorGray,
		StatusForeground:  tcell.ColorDefault,
		MessageForeground: tcell.ColorDefault,

		LineNumber:        tcell.ColorGray,
		CurrentLineNumber: tcell.ColorDefault,

		SelectionBackground: tcell.ColorGray,
		SelectionForeground: tcell.ColorDefault,
		MatchBackground:     tcell.ColorBlue,
		MatchForeground:     tcell.ColorDefault,

		SyntaxColors: map[string]tcell.Color{
			"keyword":   tcell.ColorOlive,
			"type":      tcell.ColorGreen,
			"string":    tcell.ColorPurple,
			"comment":   tcell.ColorGray,
			"number":    tcell.ColorMaroon,
			"separator": tcell.ColorTeal,
		},
	}
}

// LightTheme suits terminals with a light background.
func LightTheme() Theme {
	t := DefaultTheme()
	t.Background = tcell.ColorWhite
	t.Foreground = tcell.ColorBlack
	t.StatusBackground = tcell.ColorBlack
	t.StatusForeground = tcell.ColorWhite
	t.MessageForeground = tcell.ColorBlack
	t.CurrentLineNumber = tcell.ColorNavy
	t.SyntaxColors = map[string]tcell.Color{
		"keyword":   tcell.ColorNavy,
		"type":      tcell.ColorDarkGreen,
		"string":    tcell.ColorPurple,
		"comment":   tcell.ColorGray,
		"number":    tcell.ColorMaroon,
		"separator": tcell.ColorTeal,
	}
	return t
}

// ThemeByName returns a built-in theme; unknown names give the default.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "terminal":
		return TerminalTheme()
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// SyntaxColor returns the color of a highlight group, or the foreground
// when the group has none.
func (t Theme) SyntaxColor(group string) tcell.Color {
	if c, ok := t.SyntaxColors[group]; ok {
		return c
	}
	return t.Foreground
}

// WithOverrides returns a copy of t with the syntax groups in colors
// replaced. Values that do not parse are ignored.
func (t Theme) WithOverrides(colors map[string]string) Theme {
	out := t
	out.SyntaxColors = make(map[string]tcell.Color, len(t.SyntaxColors)+len(colors))
	for k, v := range t.SyntaxColors {
		out.SyntaxColors[k] = v
	}
	for group, v := range colors {
		if c, ok := ParseColor(v); ok {
			out.SyntaxColors[strings.ToLower(group)] = c
		}
	}
	return out
}

// ParseColor accepts "#rrggbb", "#rgb" or a W3C color name.
func ParseColor(s string) (tcell.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.ColorDefault, false
	}
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, false
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, false
	}
	return c, true
}
