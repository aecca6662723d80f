package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyTabLength           = "TAB_LENGTH"
	KeyRelativeLineNumbers = "RELATIVE_LINE_NUMBERS"
	KeyUndoStackSize       = "UNDO_STACK_SIZE"
	KeyTheme               = "THEME"
	KeyLanguages           = "LANGUAGES"

	// EnvPrefix namespaces environment overrides, e.g. BATATA_TAB_LENGTH.
	EnvPrefix = "BATATA"

	keymapPrefix = "key_"
	colorPrefix  = "color_"
)

// Defaults for the recognized options.
const (
	DefaultTabLength     = 4
	DefaultUndoStackSize = 100
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	TabLength           int
	RelativeLineNumbers bool
	UndoStackSize       int
	Theme               string
	Languages           string
	Keymap              map[string]Keybinding
	Colors              map[string]string
}

// Default returns a Config with every option at its default.
func Default() *Config {
	return &Config{
		TabLength:     DefaultTabLength,
		UndoStackSize: DefaultUndoStackSize,
		Theme:         "default",
		Keymap:        DefaultKeymap(),
		Colors:        map[string]string{},
	}
}

// DefaultKeymap provides the builtin control-chord commands.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit": mustParse("Ctrl+Q"),
		"save": mustParse("Ctrl+S"),
		"undo": mustParse("Ctrl+Z"),
		"redo": mustParse("Ctrl+R"),
		"find": mustParse("Ctrl+F"),
	}
}

// flagKeys maps command-line flag names to option keys.
var flagKeys = map[string]string{
	"tab-length":            KeyTabLength,
	"relative-line-numbers": KeyRelativeLineNumbers,
	"undo-stack-size":       KeyUndoStackSize,
	"theme":                 KeyTheme,
	"languages":             KeyLanguages,
}

// RegisterFlags adds the option flags understood by Load to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("tab-length", DefaultTabLength, "columns per tab stop")
	fs.Bool("relative-line-numbers", false, "number rows relative to the cursor")
	fs.Int("undo-stack-size", DefaultUndoStackSize, "maximum undo entries")
	fs.String("theme", "default", "color theme: default, light or terminal")
	fs.String("languages", "", "YAML file with extra language definitions")
}

// Load reads the key=value rc file at path. A missing file yields the
// defaults. Environment variables prefixed with BATATA_ override the file
// and changed flags in fs override both. Unknown keys are ignored.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyTabLength, DefaultTabLength)
	v.SetDefault(KeyRelativeLineNumbers, false)
	v.SetDefault(KeyUndoStackSize, DefaultUndoStackSize)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLanguages, "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			v.SetConfigType("dotenv")
			if err := v.ReadConfig(bytes.NewReader(normalize(data))); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Default()
	cfg.TabLength = positive(v.GetInt(KeyTabLength), DefaultTabLength)
	cfg.RelativeLineNumbers = v.GetBool(KeyRelativeLineNumbers)
	cfg.UndoStackSize = positive(v.GetInt(KeyUndoStackSize), DefaultUndoStackSize)
	cfg.Theme = v.GetString(KeyTheme)
	cfg.Languages = v.GetString(KeyLanguages)
	for _, k := range v.AllKeys() {
		switch {
		case strings.HasPrefix(k, keymapPrefix):
			kb, err := ParseKeybinding(v.GetString(k))
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", strings.ToUpper(k), err)
			}
			cfg.Keymap[strings.TrimPrefix(k, keymapPrefix)] = kb
		case strings.HasPrefix(k, colorPrefix):
			cfg.Colors[strings.TrimPrefix(k, colorPrefix)] = v.GetString(k)
		}
	}
	return cfg, nil
}

// normalize drops comments and blank lines and trims the blanks around
// '=' so that "TAB_LENGTH = 8" reads like "TAB_LENGTH=8".
func normalize(data []byte) []byte {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		fmt.Fprintf(&out, "%s=%s\n", k, strings.TrimSpace(val))
	}
	return out.Bytes()
}

func positive(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, _ := ParseKeybinding(s)
	return kb
}

// Byte returns the control byte the binding produces, e.g. 0x11 for Ctrl+Q.
func (k Keybinding) Byte() byte {
	if k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		return byte(k.Rune) & 0x1f
	}
	return 0
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if b := k.Byte(); b != 0 && ev.Key() == tcell.Key(b) {
		return true
	}
	return false
}
