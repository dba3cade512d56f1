package gen

import (
	"fmt"
	"log/slog"
)

// Code classifies a diagnostic.
type Code string

// Diagnostic codes. None of them abort generation; the artifact always
// completes, possibly with placeholders.
const (
	CodeMissingFields    Code = "missing-fields"
	CodeUnsupportedUnion Code = "unsupported-union"
	CodeUnsupportedMacro Code = "unsupported-macro"
	CodeUnresolvedType   Code = "unresolved-type"
	CodeUnknownKind      Code = "unknown-kind"
)

// Diagnostic records one best-effort recovery taken during generation.
type Diagnostic struct {
	Code    Code
	Node    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Node == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}

	return fmt.Sprintf("%s: %s: %s", d.Code, d.Node, d.Message)
}

// Diagnostics collects generation diagnostics on the side channel. Entries
// are logged as they occur and retained for the post-run summary.
type Diagnostics struct {
	log     *slog.Logger
	entries []Diagnostic
}

// NewDiagnostics builds a collector logging through log.
func NewDiagnostics(log *slog.Logger) *Diagnostics {
	return &Diagnostics{log: log}
}

// Report records a diagnostic against the named node.
func (d *Diagnostics) Report(code Code, node, format string, args ...any) {
	entry := Diagnostic{
		Code:    code,
		Node:    node,
		Message: fmt.Sprintf(format, args...),
	}

	d.entries = append(d.entries, entry)
	d.log.Warn(entry.Message, "code", string(code), "node", node)
}

// Entries returns the recorded diagnostics in order.
func (d *Diagnostics) Entries() []Diagnostic { return d.entries }

// Count returns the number of recorded diagnostics.
func (d *Diagnostics) Count() int { return len(d.entries) }
