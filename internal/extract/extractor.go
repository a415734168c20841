// Package extract pulls the exact source text of a named declaration
// out of a source file. Two strategies exist behind one contract: a
// structured extractor that walks a parsed TypeScript tree, and a
// lexical extractor that pattern-matches raw C# text and closes the
// declaration with a comment/string-aware brace scan.
package extract

import "github.com/mvp-joe/embedsync/internal/directive"

// Language returns the fenced-code language tag for a directive kind.
func Language(k directive.Kind) string {
	switch k {
	case directive.KindTypeScript:
		return "typescript"
	case directive.KindCSharp:
		return "csharp"
	}
	return ""
}
