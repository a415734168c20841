package extract

// scanMode is the lexical mode of the balanced-delimiter scanner. The
// modes are mutually exclusive; delimiters only count in modeNone.
type scanMode int

const (
	modeNone scanMode = iota
	modeLineComment
	modeBlockComment
	modeString   // ordinary quoted string, backslash escapes
	modeVerbatim // @"..." string, "" is an escaped quote
)

// scanUnguarded walks source from start and calls visit for every byte
// that lies outside comments and string literals. Scanning stops early
// when visit returns false.
func scanUnguarded(source string, start int, visit func(pos int, c byte) bool) {
	mode := modeNone
	var quote byte

	for i := start; i < len(source); i++ {
		c := source[i]
		switch mode {
		case modeLineComment:
			if c == '\n' {
				mode = modeNone
			}
		case modeBlockComment:
			if c == '*' && i+1 < len(source) && source[i+1] == '/' {
				mode = modeNone
				i++
			}
		case modeString:
			if c == '\\' {
				i++
			} else if c == quote {
				mode = modeNone
			}
		case modeVerbatim:
			if c == '"' {
				if i+1 < len(source) && source[i+1] == '"' {
					i++ // doubled quote stays inside the string
				} else {
					mode = modeNone
				}
			}
		case modeNone:
			switch {
			case c == '/' && i+1 < len(source) && source[i+1] == '/':
				mode = modeLineComment
				i++
			case c == '/' && i+1 < len(source) && source[i+1] == '*':
				mode = modeBlockComment
				i++
			case verbatimLeadIn(source, i) > 0:
				mode = modeVerbatim
				i += verbatimLeadIn(source, i) - 1
			case c == '"' || c == '\'':
				mode = modeString
				quote = c
			default:
				if !visit(i, c) {
					return
				}
			}
		}
	}
}

// verbatimLeadIn reports the length of a verbatim-string lead-in at pos
// (`@"`, `$@"` or `@$"`), or 0 if there is none.
func verbatimLeadIn(source string, pos int) int {
	rest := source[pos:]
	switch {
	case len(rest) >= 2 && rest[:2] == `@"`:
		return 2
	case len(rest) >= 3 && (rest[:3] == `$@"` || rest[:3] == `@$"`):
		return 3
	}
	return 0
}

// MatchBrace returns the offset of the closing brace that matches the
// opening brace at start, ignoring braces inside comments and string
// literals. Returns -1 when the source ends before the match.
func MatchBrace(source string, start int) int {
	depth := 0
	match := -1
	scanUnguarded(source, start, func(pos int, c byte) bool {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				match = pos
				return false
			}
		}
		return true
	})
	return match
}

// nextTerminator returns the offset and value of the first unguarded '{'
// or ';' at or after start, or (-1, 0) if neither occurs.
func nextTerminator(source string, start int) (int, byte) {
	pos, ch := -1, byte(0)
	scanUnguarded(source, start, func(i int, c byte) bool {
		if c == '{' || c == ';' {
			pos, ch = i, c
			return false
		}
		return true
	})
	return pos, ch
}
