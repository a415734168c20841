package directive

// Kind identifies the source grammar a directive targets.
type Kind string

const (
	// KindTypeScript extracts via a parsed syntax tree.
	KindTypeScript Kind = "ts"
	// KindCSharp extracts lexically from raw source text.
	KindCSharp Kind = "cs"
)

// NoClose is the End value of a directive whose closing marker was not
// found within its scan window.
const NoClose = -1

// Directive is one open/close marker pair found in a document. Offsets
// are byte offsets into the original, unmodified document text.
type Directive struct {
	Kind       Kind
	SourcePath string // verbatim from the marker, relative to the document
	Symbol     string // possibly dotted (Namespace.Symbol)
	Line       int    // 1-based line of the opening marker
	Start      int    // offset of the opening marker's first byte
	End        int    // offset just past the closing marker, or NoClose
}

// Ref returns the source reference as written in the marker.
func (d Directive) Ref() string {
	return d.SourcePath + "#" + d.Symbol
}
