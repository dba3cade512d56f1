package gen

import (
	"github.com/Sumatoshi-tech/odingen/pkg/schema"
)

// VariadicSpelling is the target-language form of a trailing C variadic
// parameter. The schema-side parameter name is discarded.
const VariadicSpelling = "#c_vararg args: ..any"

// rawPointer is the opaque-pointer spelling used for pointer-to-void.
const rawPointer = "rawptr"

// Resolver turns a type descriptor node into a target-language type
// expression. Resolution is best effort: an unclassifiable descriptor
// resolves to its raw kind tag and records a diagnostic.
type Resolver struct {
	tables *Tables
	diags  *Diagnostics
}

// NewResolver builds a resolver over the given tables.
func NewResolver(tables *Tables, diags *Diagnostics) *Resolver {
	return &Resolver{tables: tables, diags: diags}
}

// Resolve returns the type expression for the descriptor n.
func (r *Resolver) Resolve(n *schema.Node) string {
	if n == nil {
		r.diags.Report(CodeUnresolvedType, "", "nil type descriptor")

		return ""
	}

	if n.Kind == schema.KindPointer {
		return r.resolvePointer(n)
	}

	name := r.tables.TrimName(n.Name)

	// A builtin-override name short-circuits all further recursion,
	// whatever structure hangs off the descriptor.
	if expr, ok := r.tables.BuiltinOverrides[name]; ok {
		return expr
	}

	// Aliasing is by name, not by expansion: any named descriptor
	// resolves to its own trimmed name.
	if name != "" {
		return name
	}

	switch {
	case schema.IsPrimitive(n.Kind):
		return n.Kind
	case n.Kind == schema.KindVariadicParam:
		return VariadicSpelling
	case n.Kind == schema.KindNamedType:
		// A named alias without a name cannot resolve; fall back to
		// the raw kind tag.
		r.diags.Report(CodeUnresolvedType, "", "namedType descriptor without a name")

		return n.Kind
	case n.Kind == schema.KindStruct, n.Kind == schema.KindUnion, n.Kind == schema.KindEnum:
		// Anonymous composites resolve to the bare kind tag; the
		// emitter treats it as the nested-composite sentinel.
		return n.Kind
	case n.Kind == "":
		r.diags.Report(CodeUnresolvedType, "", "descriptor without a kind tag")

		return ""
	default:
		r.diags.Report(CodeUnresolvedType, n.Name, "unknown type kind %q", n.Kind)

		return n.Kind
	}
}

func (r *Resolver) resolvePointer(n *schema.Node) string {
	if n.Type == nil {
		r.diags.Report(CodeUnresolvedType, n.Name, "pointer descriptor without a target type")

		return rawPointer
	}

	inner := r.Resolve(n.Type)
	if inner == schema.KindVoid {
		return rawPointer
	}

	return "^" + inner
}

// BuiltinOverride reports whether name (already prefix-trimmed) has a fixed
// override expression.
func (r *Resolver) BuiltinOverride(name string) (string, bool) {
	expr, ok := r.tables.BuiltinOverrides[name]

	return expr, ok
}
