package syntax

import "bytes"

// Classify scans render once from left to right and returns one Class per
// byte together with whether the row ends inside an unterminated block
// comment. inComment is the open-comment state inherited from the previous
// row. A nil lang classifies every byte as Normal.
func Classify(render []byte, lang *Language, inComment bool) ([]Class, bool) {
	hl := make([]Class, len(render))
	if lang == nil {
		return hl, false
	}
	lc := []byte(lang.LineComment)
	bs := []byte(lang.BlockStart)
	be := []byte(lang.BlockEnd)
	blocks := len(bs) > 0 && len(be) > 0

	prevSep := true
	var quote byte
	i := 0
	for i < len(render) {
		c := render[i]
		prev := Normal
		if i > 0 {
			prev = hl[i-1]
		}

		if len(lc) > 0 && quote == 0 && !inComment && bytes.HasPrefix(render[i:], lc) {
			fill(hl[i:], Comment)
			break
		}

		if blocks && quote == 0 {
			if inComment {
				if bytes.HasPrefix(render[i:], be) {
					fill(hl[i:i+len(be)], MultiComment)
					i += len(be)
					inComment = false
					prevSep = true
					continue
				}
				hl[i] = MultiComment
				i++
				continue
			}
			if bytes.HasPrefix(render[i:], bs) {
				fill(hl[i:i+len(bs)], MultiComment)
				i += len(bs)
				inComment = true
				continue
			}
		}

		if lang.Flags.Strings {
			if quote != 0 {
				hl[i] = String
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = String
					i += 2
					continue
				}
				if c == quote {
					quote = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				hl[i] = String
				i++
				continue
			}
		}

		if lang.Flags.Numbers {
			if (IsDigit(c) && (prevSep || prev == Number)) || (c == '.' && prev == Number) {
				hl[i] = Number
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class, ok := lang.matchKeyword(render[i:]); ok {
				fill(hl[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		if lang.Flags.Separators && IsSeparator(c) {
			hl[i] = Separator
			i++
			prevSep = true
			continue
		}

		prevSep = IsSeparator(c)
		i++
	}
	return hl, inComment
}

// matchKeyword returns the length and class of the first declared keyword
// that prefixes s and is followed by a separator or the end of the row.
func (l *Language) matchKeyword(s []byte) (int, Class, bool) {
	for _, kw := range l.Keywords {
		n := len(kw.Text)
		if n == 0 || n > len(s) || string(s[:n]) != kw.Text {
			continue
		}
		if n < len(s) && !IsSeparator(s[n]) {
			continue
		}
		if kw.Secondary {
			return n, Keyword2, true
		}
		return n, Keyword1, true
	}
	return 0, Normal, false
}

func fill(hl []Class, c Class) {
	for i := range hl {
		hl[i] = c
	}
}
