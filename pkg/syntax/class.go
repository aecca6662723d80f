package syntax

// Class is the highlight tag assigned to one byte of a rendered row.
type Class uint8

const (
	Normal Class = iota
	Number
	String
	Separator
	Comment
	MultiComment
	Keyword1
	Keyword2
	Match
)

var classNames = [...]string{
	Normal:       "normal",
	Number:       "number",
	String:       "string",
	Separator:    "separator",
	Comment:      "comment",
	MultiComment: "multicomment",
	Keyword1:     "keyword",
	Keyword2:     "type",
	Match:        "match",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Group returns the theme color group used to paint the class.
// Block and line comments share the "comment" group.
func (c Class) Group() string {
	if c == MultiComment {
		return "comment"
	}
	return c.String()
}

// IsSeparator reports whether c ends a token for keyword, number and
// word-motion purposes.
func IsSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	case ',', '.', '(', ')', '+', '=', '/', '*', '~', '%', '<', '>', '[', ']', ';', '#', '-', '_':
		return true
	}
	return false
}

// IsWhitespace reports whether c is a space or a tab.
func IsWhitespace(c byte) bool { return c == ' ' || c == '\t' }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }
