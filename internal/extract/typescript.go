package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// tsLanguage is shared by every parse; tree-sitter languages are
// immutable and safe to reuse.
var tsLanguage = sitter.NewLanguage(typescript.LanguageTypescript())

// Unit is an immutable symbol index built from one parsed TypeScript
// file. The syntax tree is released as soon as the index is built, so a
// Unit can be cached for the lifetime of a run.
type Unit struct {
	decls  map[string]string            // top-level name -> declaration text
	nested map[string]map[string]string // namespace name -> inner name -> text
}

// ParseTypeScript parses source and indexes its top-level declarations.
// Returns nil when the source cannot be parsed.
func ParseTypeScript(source []byte) *Unit {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(tsLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	unit := &Unit{
		decls:  make(map[string]string),
		nested: make(map[string]map[string]string),
	}
	unit.indexStatements(tree.RootNode(), source, 0, "")
	return unit
}

// Lookup returns the extracted text for a plain or single-dotted symbol
// name. Dotted names deeper than one level are never resolved.
func (u *Unit) Lookup(symbol string) (string, bool) {
	parts := strings.Split(symbol, ".")
	switch len(parts) {
	case 1:
		text, ok := u.decls[parts[0]]
		return text, ok
	case 2:
		inner, ok := u.nested[parts[0]]
		if !ok {
			return "", false
		}
		text, ok := inner[parts[1]]
		return text, ok
	}
	return "", false
}

// indexStatements walks the direct children of container (a program node
// or a namespace body), recording one declaration per named statement.
// prevEnd tracks the end of the previous non-comment statement so the
// raw gap before each declaration can be scanned for doc comments.
// When namespace is non-empty, declarations are recorded one level deep
// under that name instead of at the top level.
func (u *Unit) indexStatements(container *sitter.Node, source []byte, prevEnd uint, namespace string) {
	for i := 0; i < int(container.ChildCount()); i++ {
		child := container.Child(uint(i))
		kind := child.Kind()
		if kind == "comment" || !child.IsNamed() {
			continue
		}

		decl := unwrapStatement(child)
		name := declaredName(decl, source)
		if name != "" {
			text := declarationText(child, source, prevEnd)
			u.record(namespace, name, text)

			if namespace == "" {
				if body := namespaceBody(decl); body != nil {
					u.indexNamespace(name, body, source)
				}
			}
		}
		prevEnd = child.EndByte()
	}
}

// indexNamespace records the one supported level of nested declarations.
func (u *Unit) indexNamespace(name string, body *sitter.Node, source []byte) {
	if _, ok := u.nested[name]; !ok {
		u.nested[name] = make(map[string]string)
	}
	u.indexStatements(body, source, body.StartByte()+1, name)
}

// record stores a declaration; the first declaration with a given name
// wins when names collide.
func (u *Unit) record(namespace, name, text string) {
	if namespace == "" {
		if _, ok := u.decls[name]; !ok {
			u.decls[name] = text
		}
		return
	}
	if _, ok := u.nested[namespace][name]; !ok {
		u.nested[namespace][name] = text
	}
}

// unwrapStatement looks through export and ambient wrappers to the
// declaration they carry.
func unwrapStatement(node *sitter.Node) *sitter.Node {
	switch node.Kind() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return unwrapStatement(decl)
		}
	case "ambient_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(uint(i))
			if child.IsNamed() && child.Kind() != "comment" {
				return unwrapStatement(child)
			}
		}
	}
	return node
}

// declaredName returns the name a statement declares, or "" when the
// statement is not an addressable declaration. For variable-style
// declarations only the first declarator contributes a name.
func declaredName(node *sitter.Node, source []byte) string {
	switch node.Kind() {
	case "function_declaration", "class_declaration", "abstract_class_declaration",
		"interface_declaration", "type_alias_declaration", "enum_declaration",
		"internal_module", "module":
		return fieldText(node, "name", source)
	case "lexical_declaration", "variable_declaration":
		if decl := findChildByKind(node, "variable_declarator"); decl != nil {
			return fieldText(decl, "name", source)
		}
	}
	return ""
}

// namespaceBody returns the statement block of a namespace-like node.
func namespaceBody(node *sitter.Node) *sitter.Node {
	switch node.Kind() {
	case "internal_module", "module":
		return node.ChildByFieldName("body")
	}
	return nil
}

// declarationText assembles the extraction result: any doc-comment lines
// found in the raw gap between prevEnd and the statement's start, then
// the statement's exact source, with trailing whitespace trimmed.
func declarationText(node *sitter.Node, source []byte, prevEnd uint) string {
	body := string(source[node.StartByte():node.EndByte()])
	comments := commentLinesInGap(string(source[prevEnd:node.StartByte()]))
	if comments != "" {
		body = comments + "\n" + body
	}
	return strings.TrimRight(body, " \t\r\n")
}

// commentLinesInGap keeps only the lines of gap whose trimmed content
// begins with a comment marker. Blank and non-comment lines are dropped;
// leading whitespace of kept lines is preserved as encountered.
func commentLinesInGap(gap string) string {
	var kept []string
	for _, line := range strings.Split(gap, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "*") {
			kept = append(kept, strings.TrimRight(line, " \t\r"))
		}
	}
	return strings.Join(kept, "\n")
}

// fieldText returns the source text of a named field of node.
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}

// findChildByKind finds the first child node of the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
