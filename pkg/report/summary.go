// Package report renders a post-run summary of a generation pass.
package report

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary counts what one generation pass produced.
type Summary struct {
	Modules            int
	Structs            int
	Unions             int
	Enums              int
	Procedures         int
	BuiltinAliases     int
	HandleCollapses    int
	SingletonCollapses int
	Macros             int
	Diagnostics        int
	OutputBytes        int
}

// Render writes the summary as a table to w.
func (s *Summary) Render(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"Generated", "Count"})
	tbl.AppendRows([]table.Row{
		{"Modules", s.Modules},
		{"Structs", s.Structs},
		{"Unions (placeholders)", s.Unions},
		{"Enums", s.Enums},
		{"Procedures", s.Procedures},
		{"Builtin aliases", s.BuiltinAliases},
		{"Handle collapses", s.HandleCollapses},
		{"Singleton collapses", s.SingletonCollapses},
		{"Macros (skipped)", s.Macros},
		{"Diagnostics", s.Diagnostics},
	})
	tbl.AppendFooter(table.Row{"Artifact size", humanize.Bytes(uint64(s.OutputBytes))}) //nolint:gosec // byte count is never negative.

	tbl.Render()
}
