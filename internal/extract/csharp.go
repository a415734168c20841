package extract

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrSymbolNotFound reports that no declaration matched the symbol.
	ErrSymbolNotFound = errors.New("symbol not found in file")
	// ErrUnterminated reports a declaration whose body never closes.
	ErrUnterminated = errors.New("declaration is never terminated")
)

// Header-pattern building blocks. Symbol names are always quoted before
// insertion, so metacharacters in a name are matched literally.
const (
	docCommentLines = `(?:[ \t]*///[^\n]*\n)*`
	attributeLines  = `(?:[ \t]*\[[^\n]*\n)*`
	typeModifiers   = `(?:(?:public|private|protected|internal|static|abstract|sealed|partial|readonly|unsafe|ref|new)[ \t]+)*`
	memberModifiers = `(?:(?:public|private|protected|internal|static|virtual|override|abstract|sealed|async|extern|unsafe|partial|new)[ \t]+)*`
	typeKeywords    = `(?:class|interface|struct|enum|record|delegate)`
	returnTypeRun   = `(?:[\w.<>\[\],?]+[ \t]+)+`
)

// typeHeaderPattern matches a type-level declaration header for name:
// doc-comment lines, attribute lines, modifiers, a declaration keyword,
// the name, then everything up to (not including) '{' or ';'.
func typeHeaderPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + docCommentLines + attributeLines +
		`[ \t]*` + typeModifiers + typeKeywords + `[ \t]+` +
		regexp.QuoteMeta(name) + `\b[^{;]*`)
}

// memberHeaderPattern matches a method or member declaration header:
// doc-comment lines, modifiers, a return-type token run, the name, an
// optional generic segment, a parameter list, then trailing qualifier
// text up to '{' or ';'.
func memberHeaderPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + docCommentLines + attributeLines +
		`[ \t]*` + memberModifiers + returnTypeRun +
		regexp.QuoteMeta(name) + `[ \t]*(?:<[^>\n]*>)?[ \t]*\([^)]*\)[^{;]*`)
}

// ExtractCSharp locates a named declaration in raw C# source and returns
// its exact text, including any doc-comment lines the header match
// captured. The declaration ends at the first unguarded ';' after the
// header, or at the brace that balances its opening '{'.
func ExtractCSharp(source, symbol string) (string, error) {
	loc := typeHeaderPattern(symbol).FindStringIndex(source)
	if loc == nil {
		loc = memberHeaderPattern(symbol).FindStringIndex(source)
	}
	if loc == nil {
		return "", ErrSymbolNotFound
	}

	start := loc[0]
	for start < len(source) && (source[start] == ' ' || source[start] == '\t') {
		start++
	}

	termPos, term := nextTerminator(source, loc[1])
	if termPos < 0 {
		return "", ErrUnterminated
	}

	end := termPos + 1
	if term == '{' {
		closing := MatchBrace(source, termPos)
		if closing < 0 {
			return "", ErrUnterminated
		}
		end = closing + 1
	}

	return strings.TrimRight(source[start:end], " \t\r\n"), nil
}
