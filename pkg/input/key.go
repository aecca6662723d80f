// Package input defines the logical key events consumed by the editor and
// converts terminal events into them.
package input

import "fmt"

// Code identifies the kind of a Key.
type Code int

const (
	// Byte is a printable byte or a control chord (byte & 0x1f) held in
	// Key.Byte.
	Byte Code = iota
	Enter
	Escape
	Backspace
	Delete
	ArrowLeft
	ArrowRight
	ArrowUp
	ArrowDown
	Home
	End
	PageUp
	PageDown
	Mouse
)

var codeNames = map[Code]string{
	Enter:      "cr",
	Escape:     "esc",
	Backspace:  "bs",
	Delete:     "del",
	ArrowLeft:  "left",
	ArrowRight: "right",
	ArrowUp:    "up",
	ArrowDown:  "down",
	Home:       "home",
	End:        "end",
	PageUp:     "pgup",
	PageDown:   "pgdn",
}

// Button is the mouse button of a Mouse key.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	WheelUp
	WheelDown
)

// MouseEvent is a click or wheel step at a screen cell.
type MouseEvent struct {
	Button  Button
	X, Y    int
	Pressed bool
}

// Key is one logical key event.
type Key struct {
	Code  Code
	Byte  byte
	Mouse MouseEvent
}

// Char returns the key for a printable byte.
func Char(c byte) Key { return Key{Code: Byte, Byte: c} }

// Ctrl returns the control chord for letter c, e.g. Ctrl('a') is 0x01.
func Ctrl(c byte) Key { return Key{Code: Byte, Byte: c & 0x1f} }

// Named returns a key without a byte payload.
func Named(c Code) Key { return Key{Code: c} }

// Click returns a mouse key.
func Click(b Button, x, y int, pressed bool) Key {
	return Key{Code: Mouse, Mouse: MouseEvent{Button: b, X: x, Y: y, Pressed: pressed}}
}

// Is reports whether k carries byte c.
func (k Key) Is(c byte) bool { return k.Code == Byte && k.Byte == c }

// IsCtrl reports whether k is the control chord for letter c.
func (k Key) IsCtrl(c byte) bool { return k.Code == Byte && k.Byte == c&0x1f }

// Printable reports whether k is a byte that inserts itself.
func (k Key) Printable() bool {
	return k.Code == Byte && (k.Byte == '\t' || k.Byte >= ' ' && k.Byte != 0x7f)
}

func (k Key) String() string {
	switch k.Code {
	case Byte:
		if k.Byte < ' ' && k.Byte != '\t' {
			return fmt.Sprintf("<c-%c>", k.Byte|0x60)
		}
		return string(rune(k.Byte))
	case Mouse:
		return fmt.Sprintf("<mouse %d %d,%d>", k.Mouse.Button, k.Mouse.X, k.Mouse.Y)
	}
	return "<" + codeNames[k.Code] + ">"
}
