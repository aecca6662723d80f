package input

import (
	"fmt"
	"strings"
)

// Parse converts a key sequence specification like "d2w<esc>" into keys.
// Special keys are written in angle brackets: <cr>, <esc>, <bs>, <del>,
// <left>, <right>, <up>, <down>, <home>, <end>, <pgup>, <pgdn>, <space>,
// <lt> and control chords such as <c-a>.
func Parse(spec string) ([]Key, error) {
	var keys []Key
	for i := 0; i < len(spec); i++ {
		if spec[i] != '<' {
			keys = append(keys, Char(spec[i]))
			continue
		}
		end := strings.IndexByte(spec[i:], '>')
		if end < 0 {
			return nil, fmt.Errorf("unterminated special key at %d", i)
		}
		k, err := identifier(spec[i+1 : i+end])
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		i += end
	}
	return keys, nil
}

// MustParse is Parse for specifications known to be valid.
func MustParse(spec string) []Key {
	keys, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return keys
}

func identifier(id string) (Key, error) {
	id = strings.ToLower(id)
	switch id {
	case "space":
		return Char(' '), nil
	case "lt":
		return Char('<'), nil
	case "tab":
		return Char('\t'), nil
	}
	if strings.HasPrefix(id, "c-") && len(id) == 3 && id[2] >= 'a' && id[2] <= 'z' {
		return Ctrl(id[2]), nil
	}
	for c, name := range codeNames {
		if name == id {
			return Named(c), nil
		}
	}
	return Key{}, fmt.Errorf("no mapping present for identifier '%s'", id)
}
