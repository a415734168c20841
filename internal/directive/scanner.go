package directive

import (
	"regexp"
	"strings"
)

// openPattern matches an opening marker: <!-- <kind>-embed: <path>#<symbol> -->
// The path is any text without '#'; the symbol is a single non-whitespace
// token. Markers are single-line; a marker with malformed syntax simply
// does not match and is invisible to the scanner.
var openPattern = regexp.MustCompile(`<!--[ \t]*([a-z]+)-embed:[ \t]*([^#\n]*?)[ \t]*#[ \t]*(\S+)[ \t]*-->`)

// knownKinds is the closed set of grammar tags the scanner recognizes.
var knownKinds = map[Kind]bool{
	KindTypeScript: true,
	KindCSharp:     true,
}

var closePatterns = map[Kind]*regexp.Regexp{
	KindTypeScript: closePattern(KindTypeScript),
	KindCSharp:     closePattern(KindCSharp),
}

func closePattern(k Kind) *regexp.Regexp {
	return regexp.MustCompile(`<!--\s*/` + regexp.QuoteMeta(string(k)) + `-embed\s*-->`)
}

// CloseMarker returns the canonical closing marker emitted for a kind.
func CloseMarker(k Kind) string {
	return "<!-- /" + string(k) + "-embed -->"
}

// Scan finds every directive in text, in order of appearance. A closing
// marker is only searched for between its opening marker and the next
// opening marker (or end of text), so a missing close never borrows the
// close that belongs to a later directive.
func Scan(text string) []Directive {
	matches := openPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var directives []Directive
	for _, m := range matches {
		kind := Kind(text[m[2]:m[3]])
		if !knownKinds[kind] {
			continue
		}
		directives = append(directives, Directive{
			Kind:       kind,
			SourcePath: text[m[4]:m[5]],
			Symbol:     text[m[6]:m[7]],
			Line:       1 + strings.Count(text[:m[0]], "\n"),
			Start:      m[0],
			End:        NoClose,
		})
	}

	for i := range directives {
		d := &directives[i]
		windowStart := markerEnd(text, d.Start)
		windowEnd := len(text)
		if i+1 < len(directives) {
			windowEnd = directives[i+1].Start
		}
		loc := closePatterns[d.Kind].FindStringIndex(text[windowStart:windowEnd])
		if loc != nil {
			d.End = windowStart + loc[1]
		}
	}
	return directives
}

// OpenMarkerAt re-matches the opening marker anchored at offset in text
// and returns its literal text. Used by the rewrite engine against the
// current (possibly already mutated) document.
func OpenMarkerAt(text string, offset int) (string, bool) {
	if offset < 0 || offset >= len(text) {
		return "", false
	}
	loc := openPattern.FindStringIndex(text[offset:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return text[offset : offset+loc[1]], true
}

// markerEnd returns the offset just past the opening marker that starts
// at start.
func markerEnd(text string, start int) int {
	loc := openPattern.FindStringIndex(text[start:])
	if loc == nil || loc[0] != 0 {
		return start
	}
	return start + loc[1]
}
