package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/odingen/pkg/schema"
)

// handleType is the scalar type a single-field handle wrapper collapses to.
const handleType = "distinct u64"

// moduleBannerWidth is the number of "//" pairs in a module header banner.
const moduleBannerWidth = 40

func indentString(indent int) string {
	return strings.Repeat("  ", indent)
}

// writeDoc renders a doc comment at the given indent. Single strings become
// line comments, lists become one block comment.
func writeDoc(out *bytes.Buffer, doc *schema.DocText, indent int) {
	if doc == nil {
		return
	}

	prefix := indentString(indent)

	if doc.IsBlock() {
		fmt.Fprintf(out, "%s/*\n", prefix)

		for _, line := range doc.Lines() {
			fmt.Fprintf(out, "%s%s\n", prefix, line)
		}

		fmt.Fprintf(out, "%s*/\n", prefix)

		return
	}

	for _, line := range doc.Lines() {
		fmt.Fprintf(out, "%s// %s\n", prefix, line)
	}
}

// emitModuleHeader writes the banner block for a module brief.
func (g *Generator) emitModuleHeader(out *bytes.Buffer, brief string) {
	banner := strings.Repeat("//", moduleBannerWidth)

	out.WriteString(banner + "\n")
	fmt.Fprintf(out, "// %s\n", brief)
	out.WriteString(banner + "\n\n")
}

// emitTypename renders one named type declaration: a builtin alias line, a
// struct, a union placeholder, or an enum.
func (g *Generator) emitTypename(out *bytes.Buffer, n *schema.Node) {
	name := g.tables.TrimName(n.Name)
	writeDoc(out, n.Doc, 0)

	// A builtin override replaces the whole declaration with an alias
	// line, whatever structure the descriptor carries.
	if expr, ok := g.res.BuiltinOverride(name); ok {
		fmt.Fprintf(out, "%s :: %s\n\n", name, expr)
		g.summary.BuiltinAliases++

		return
	}

	if n.Type == nil {
		g.diags.Report(CodeMissingFields, n.Name, "typename without a type descriptor")

		return
	}

	switch n.Type.Kind {
	case schema.KindStruct:
		if g.emitStruct(out, n.Type, name, 0) {
			out.WriteString("\n\n")
		}
	case schema.KindUnion:
		// Top-level unions are an acknowledged gap: placeholder only.
		g.diags.Report(CodeUnsupportedUnion, n.Name, "top-level union is not supported")
		fmt.Fprintf(out, "%s :: union {}\n\n", name)
		g.summary.Unions++
	case schema.KindEnum:
		g.emitEnum(out, n.Type, name, 0)
		g.summary.Enums++
	case schema.KindMacro:
		g.diags.Report(CodeUnsupportedMacro, n.Name, "macro typename is not supported")
		g.summary.Macros++
	default:
		g.diags.Report(CodeUnknownKind, n.Name, "typename of kind %q", n.Type.Kind)
	}
}

// emitStruct renders a struct declaration or a collapsed handle type.
// It reports whether anything was written.
func (g *Generator) emitStruct(out *bytes.Buffer, t *schema.Node, name string, indent int) bool {
	if !t.HasFields() {
		g.diags.Report(CodeMissingFields, name, "struct without a field list")

		return false
	}

	prefix := indentString(indent)

	// A single field matching the handle convention collapses the whole
	// wrapper into a scalar handle type.
	if len(t.Fields) == 1 && t.Fields[0].Name == g.tables.HandleField {
		fmt.Fprintf(out, "%s%s :: %s", prefix, name, handleType)
		if indent == 0 {
			g.summary.Structs++
		}
		g.summary.HandleCollapses++

		return true
	}

	separator := " ::"
	if indent > 0 {
		separator = ":"
	}

	fmt.Fprintf(out, "%s%s%s struct {\n", prefix, name, separator)
	g.emitStructFields(out, t, indent+1)
	fmt.Fprintf(out, "%s}", prefix)

	if indent == 0 {
		g.summary.Structs++
	}

	return true
}

func (g *Generator) emitStructFields(out *bytes.Buffer, t *schema.Node, indent int) {
	prefix := indentString(indent)

	for _, field := range t.Fields {
		name := g.tables.Identifier(field.Name)
		writeDoc(out, field.Doc, indent)

		resolved := g.res.Resolve(field.Type)

		// An inline union member becomes a nested raw union block
		// rather than a separate declaration.
		if resolved == schema.KindUnion {
			fmt.Fprintf(out, "%s%s: struct #raw_union {\n", prefix, name)
			g.emitUnionFields(out, field.Type, indent+1)
			fmt.Fprintf(out, "%s},\n", prefix)

			continue
		}

		fmt.Fprintf(out, "%s%s: %s,\n", prefix, name, resolved)
	}
}

func (g *Generator) emitUnionFields(out *bytes.Buffer, t *schema.Node, indent int) {
	if !t.HasFields() {
		g.diags.Report(CodeMissingFields, t.Name, "union without a field list")

		return
	}

	prefix := indentString(indent)

	for _, field := range t.Fields {
		name := g.tables.Identifier(field.Name)
		resolved := g.res.Resolve(field.Type)

		if resolved == schema.KindStruct {
			if g.emitStruct(out, field.Type, name, indent) {
				out.WriteString(",\n")
			}

			continue
		}

		fmt.Fprintf(out, "%s%s: %s,\n", prefix, name, resolved)
	}
}

// emitEnum renders an enum block, or a standalone constant when the enum
// has a single member (singleton collapse).
func (g *Generator) emitEnum(out *bytes.Buffer, t *schema.Node, name string, indent int) {
	if t.Constants == nil {
		g.diags.Report(CodeMissingFields, name, "enum without a constant list")

		return
	}

	prefix := indentString(indent)
	singleton := len(t.Constants) <= 1
	fieldsIndent := indent

	if !singleton {
		fmt.Fprintf(out, "%s%s :: enum %s {\n", prefix, name, g.enumBacking(t, name))
		fieldsIndent = indent + 1
	}

	fieldsPrefix := indentString(fieldsIndent)

	for _, constant := range t.Constants {
		constName := GuardDecimal(g.tables.SimplifyEnumConstant(constant.Name))
		writeDoc(out, constant.Doc, fieldsIndent)

		assignment := "="
		terminator := ",\n"

		if singleton {
			assignment = "::"
			terminator = "\n"
			g.summary.SingletonCollapses++
		}

		fmt.Fprintf(out, "%s%s %s %s%s", fieldsPrefix, constName, assignment, constant.Value, terminator)
	}

	if singleton {
		out.WriteString("\n")
	} else {
		fmt.Fprintf(out, "%s}\n\n", prefix)
	}
}

// enumBacking returns the backing integer width of an enum descriptor.
func (g *Generator) enumBacking(t *schema.Node, name string) string {
	if t.Type == nil || t.Type.Kind == "" {
		g.diags.Report(CodeMissingFields, name, "enum without a backing width, defaulting to u32")

		return "u32"
	}

	return t.Type.Kind
}

// emitProc renders one foreign procedure declaration at the given indent.
func (g *Generator) emitProc(out *bytes.Buffer, n *schema.Node, indent int) {
	prefix := indentString(indent)
	name := g.tables.TrimName(n.Name)

	writeDoc(out, n.Doc, indent)
	fmt.Fprintf(out, "%s%s :: proc(", prefix, name)

	for i, param := range n.Params {
		if i > 0 {
			out.WriteString(", ")
		}

		g.emitParam(out, param)
	}

	out.WriteString(")")

	if ret := n.Return; ret != nil && ret.Kind != schema.KindVoid {
		fmt.Fprintf(out, " -> %s", g.res.Resolve(ret))
	}

	out.WriteString(" ---\n")
}

func (g *Generator) emitParam(out *bytes.Buffer, param *schema.Node) {
	// A trailing variadic marker replaces both name and type.
	if param.Name == "..." || (param.Type != nil && param.Type.Kind == schema.KindVariadicParam) {
		out.WriteString(VariadicSpelling)

		return
	}

	name := g.tables.Identifier(param.Name)
	fmt.Fprintf(out, "%s: %s", name, g.res.Resolve(param.Type))
}
