// Package gen transforms an API description tree into Odin binding
// declarations: type resolution, declaration emission, identifier
// normalization, and the per-module batching of foreign procedures.
package gen

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/Sumatoshi-tech/odingen/pkg/report"
	"github.com/Sumatoshi-tech/odingen/pkg/schema"
)

// Generator drives one single-threaded generation pass over a description
// tree. It is not safe for concurrent use; build one per pass.
type Generator struct {
	tables  *Tables
	diags   *Diagnostics
	res     *Resolver
	log     *slog.Logger
	summary *report.Summary
}

// New builds a generator over frozen tables, logging diagnostics through log.
func New(tables *Tables, log *slog.Logger) *Generator {
	diags := NewDiagnostics(log)

	return &Generator{
		tables:  tables,
		diags:   diags,
		res:     NewResolver(tables, diags),
		log:     log,
		summary: &report.Summary{},
	}
}

// Diagnostics returns the diagnostics collected so far.
func (g *Generator) Diagnostics() *Diagnostics { return g.diags }

// Generate walks the module list in document order and returns the complete
// output artifact. Generation never fails: local problems degrade to
// placeholders and diagnostics, and the artifact is always complete.
func (g *Generator) Generate(modules []*schema.Node) ([]byte, *report.Summary) {
	var out bytes.Buffer

	for _, module := range modules {
		g.walk(module, &out, nil)
	}

	g.summary.Diagnostics = g.diags.Count()
	g.summary.OutputBytes = out.Len()
	g.log.Debug("generation complete",
		"modules", g.summary.Modules,
		"procedures", g.summary.Procedures,
		"diagnostics", g.summary.Diagnostics)

	return out.Bytes(), g.summary
}

// walk visits one node pre-order. Declarations emit in place to out;
// procedures render into the enclosing module's batch. Each module frame
// owns its batch exclusively and discards it once flushed, so batches never
// merge across nested modules.
func (g *Generator) walk(n *schema.Node, out, batch *bytes.Buffer) {
	if n == nil {
		return
	}

	switch n.Kind {
	case schema.KindModule:
		g.walkModule(n, out)
	case schema.KindTypename:
		g.emitTypename(out, n)
	case schema.KindProc:
		if batch == nil {
			g.diags.Report(CodeUnknownKind, n.Name, "procedure outside a module")

			return
		}

		g.emitProc(batch, n, 1)
		g.summary.Procedures++
	case schema.KindMacro:
		g.diags.Report(CodeUnsupportedMacro, n.Name, "macro is not supported")
		g.summary.Macros++
	default:
		g.diags.Report(CodeUnknownKind, n.Name, "unexpected node kind %q", n.Kind)
	}
}

func (g *Generator) walkModule(n *schema.Node, out *bytes.Buffer) {
	g.summary.Modules++
	g.log.Debug("entering module", "module", n.Name)

	if n.Brief != "" {
		g.emitModuleHeader(out, n.Brief)
	}

	batch := &bytes.Buffer{}

	for _, child := range n.Contents {
		g.walk(child, out, batch)
	}

	g.flush(out, batch)
}

// flush wraps a non-empty procedure batch in one foreign linkage block.
// Empty modules contribute nothing.
func (g *Generator) flush(out, batch *bytes.Buffer) {
	if batch.Len() == 0 {
		return
	}

	fmt.Fprintf(out, "@(default_calling_convention=%q, link_prefix=%q)\nforeign {\n",
		g.tables.CallingConvention, g.tables.LinkPrefix)
	out.Write(batch.Bytes())
	out.WriteString("}\n\n")
}
