// Package rewrite splices freshly extracted declaration text into a
// document's marker bodies. The pass is idempotent and a failed
// directive never disturbs its siblings.
package rewrite

import (
	"path/filepath"

	"github.com/mvp-joe/embedsync/internal/directive"
	"github.com/mvp-joe/embedsync/internal/extract"
	"github.com/mvp-joe/embedsync/internal/resolve"
)

// Attribution is the fixed first line inside every generated fence.
const Attribution = "// Code generated by embedsync. DO NOT EDIT."

// Report is one structured directive failure. Reports accumulate across
// documents and are never mutated after they are emitted.
type Report struct {
	Document string
	Line     int
	Reason   string
	Ref      string // sourcePath#symbol as written in the marker
}

// Result is the outcome of one document pass.
type Result struct {
	Text       string
	Changed    bool
	Directives int
	Reports    []Report
}

// Resolver supplies extracted text for one directive.
type Resolver interface {
	Resolve(docDir string, d directive.Directive) resolve.Resolution
}

// Rewrite scans docText for directives, resolves each one independently,
// and replaces marker bodies with generated blocks. Replacements are
// applied in descending start order: every earlier directive's recorded
// offsets stay valid because only text after them has mutated. A
// directive that failed to resolve is left byte-for-byte untouched.
func Rewrite(res Resolver, docPath, docText string) Result {
	directives := directive.Scan(docText)
	result := Result{Text: docText, Directives: len(directives)}
	if len(directives) == 0 {
		return result
	}

	docDir := filepath.Dir(docPath)

	// Resolve in document order so reports read top to bottom.
	resolutions := make([]resolve.Resolution, len(directives))
	for i, d := range directives {
		resolutions[i] = res.Resolve(docDir, d)
		if err := resolutions[i].Err; err != nil {
			result.Reports = append(result.Reports, Report{
				Document: docPath,
				Line:     d.Line,
				Reason:   err.Error(),
				Ref:      d.Ref(),
			})
		}
	}

	out := docText
	for i := len(directives) - 1; i >= 0; i-- {
		if resolutions[i].Err != nil {
			continue
		}
		out = applyDirective(out, directives[i], resolutions[i].Text)
	}

	result.Text = out
	result.Changed = out != docText
	return result
}

// applyDirective replaces one marker body in text. The opening marker is
// re-matched at its recorded offset against the current text rather than
// assumed byte-identical to the original match. When no closing marker
// was found the block is inserted without deleting anything, which also
// repairs the missing close.
func applyDirective(text string, d directive.Directive, extracted string) string {
	marker, ok := directive.OpenMarkerAt(text, d.Start)
	if !ok {
		return text
	}
	insert := d.Start + len(marker)

	spanEnd := insert
	if d.End != directive.NoClose {
		spanEnd = d.End
	}

	block := "\n```" + extract.Language(d.Kind) + "\n" +
		Attribution + "\n" +
		extracted + "\n" +
		"```\n" +
		directive.CloseMarker(d.Kind)

	return text[:insert] + block + text[spanEnd:]
}
