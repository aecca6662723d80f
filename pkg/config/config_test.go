package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeRC(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".batatarc")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !kb.Matches(ev) {
		t.Fatalf("expected match for Ctrl+X")
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		t.Fatalf("expected match for KeyCtrlX")
	}
	if kb.Byte() != 0x18 {
		t.Fatalf("expected control byte 0x18, got %#x", kb.Byte())
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	if _, err := ParseKeybinding("Ctrl+"); err == nil {
		t.Fatalf("expected error for invalid keybinding")
	}
	if _, err := ParseKeybinding("Alt+x"); err == nil {
		t.Fatalf("expected error for unsupported modifier")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none"), nil)
	require.NoError(t, err)
	require.Equal(t, DefaultTabLength, cfg.TabLength)
	require.False(t, cfg.RelativeLineNumbers)
	require.Equal(t, DefaultUndoStackSize, cfg.UndoStackSize)
	require.Equal(t, byte(0x11), cfg.Keymap["quit"].Byte())
}

func TestLoad_Options(t *testing.T) {
	path := writeRC(t, "# editor settings\nUNDO_STACK_SIZE = 7\nRELATIVE_LINE_NUMBERS=1\nWHATEVER=3\n\nTAB_LENGTH=8\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.TabLength)
	require.True(t, cfg.RelativeLineNumbers)
	require.Equal(t, 7, cfg.UndoStackSize)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	path := writeRC(t, "TAB_LENGTH=0\nUNDO_STACK_SIZE=-4\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultTabLength, cfg.TabLength)
	require.Equal(t, DefaultUndoStackSize, cfg.UndoStackSize)
}

func TestLoadConfigRemap(t *testing.T) {
	path := writeRC(t, "KEY_QUIT=Ctrl+X\nCOLOR_KEYWORD=#ff8800\n")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !cfg.Keymap["quit"].Matches(ev) {
		t.Fatalf("expected remapped quit to Ctrl+X")
	}
	if cfg.Colors["keyword"] != "#ff8800" {
		t.Fatalf("expected keyword color override, got %q", cfg.Colors["keyword"])
	}
}

func TestLoad_BadKeybinding(t *testing.T) {
	_, err := Load(writeRC(t, "KEY_SAVE=Meta+s\n"), nil)
	require.Error(t, err)
}

func TestLoad_EnvAndFlagsOverride(t *testing.T) {
	path := writeRC(t, "TAB_LENGTH=8\nUNDO_STACK_SIZE=7\n")
	t.Setenv("BATATA_UNDO_STACK_SIZE", "9")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--tab-length=2"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.TabLength)
	require.Equal(t, 9, cfg.UndoStackSize)
	require.False(t, cfg.RelativeLineNumbers)
}

func TestThemeOverrides(t *testing.T) {
	th := DefaultTheme().WithOverrides(map[string]string{
		"keyword": "#ff8800",
		"number":  "not-a-color",
		"string":  "navy",
	})
	require.Equal(t, tcell.NewRGBColor(0xff, 0x88, 0x00), th.SyntaxColor("keyword"))
	require.Equal(t, DefaultTheme().SyntaxColor("number"), th.SyntaxColor("number"))
	require.Equal(t, tcell.ColorNavy, th.SyntaxColor("string"))
	require.Equal(t, th.Foreground, th.SyntaxColor("normal"))
	require.Equal(t, tcell.ColorYellow, DefaultTheme().SyntaxColor("keyword"), "overrides must not leak")
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#0f0")
	require.True(t, ok)
	require.Equal(t, tcell.NewRGBColor(0, 0xff, 0), c)
	_, ok = ParseColor("#zzzzzz")
	require.False(t, ok)
	require.Equal(t, TerminalTheme().Background, ThemeByName("TERMINAL").Background)
}
