// Package schema models the API description tree consumed by the generator:
// a tree of tagged nodes decoded from the api.json produced by the native
// toolchain's header scan.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Node kind tags recognized in the description tree.
const (
	KindModule        = "module"
	KindTypename      = "typename"
	KindStruct        = "struct"
	KindUnion         = "union"
	KindEnum          = "enum"
	KindProc          = "proc"
	KindPointer       = "pointer"
	KindNamedType     = "namedType"
	KindVariadicParam = "variadic-param"
	KindEnumConstant  = "enum-constant"
	KindMacro         = "macro"

	KindF32  = "f32"
	KindI32  = "i32"
	KindU32  = "u32"
	KindBool = "bool"
	KindVoid = "void"
	KindChar = "char"
)

// primitiveKinds is the closed set of primitive type tags.
var primitiveKinds = map[string]struct{}{
	KindF32:  {},
	KindI32:  {},
	KindU32:  {},
	KindBool: {},
	KindVoid: {},
	KindChar: {},
}

// IsPrimitive reports whether kind names a primitive type tag.
func IsPrimitive(kind string) bool {
	_, ok := primitiveKinds[kind]

	return ok
}

// Node is one tagged node of the description tree. Which fields are
// populated depends on Kind; the generator probes them and degrades
// gracefully when an expected one is absent.
type Node struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Brief     string   `json:"brief,omitempty"`
	Doc       *DocText `json:"doc,omitempty"`
	Type      *Node    `json:"type,omitempty"`
	Fields    []*Node  `json:"fields,omitempty"`
	Params    []*Node  `json:"params,omitempty"`
	Return    *Node    `json:"return,omitempty"`
	Constants []*Node  `json:"constants,omitempty"`
	Contents  []*Node  `json:"contents,omitempty"`
	Value     Literal  `json:"value,omitempty"`
}

// HasFields reports whether the node carried a field list at all.
// An empty list is still a list; only a missing one triggers the
// missing-structure path.
func (n *Node) HasFields() bool { return n.Fields != nil }

// DocText is a doc comment that arrives either as a single string or as an
// ordered list of strings (rendered as a multi-line block).
type DocText struct {
	lines []string
	block bool
}

// Doc builds a single-line DocText. Test helper and programmatic constructor.
func Doc(line string) *DocText { return &DocText{lines: []string{line}} }

// DocBlock builds a multi-line DocText.
func DocBlock(lines ...string) *DocText { return &DocText{lines: lines, block: true} }

// Lines returns the doc lines in order.
func (d *DocText) Lines() []string { return d.lines }

// IsBlock reports whether the doc renders as a multi-line block.
func (d *DocText) IsBlock() bool { return d.block }

// UnmarshalJSON accepts both the string and list-of-strings forms.
func (d *DocText) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		d.lines = []string{single}
		d.block = false

		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("doc: expected string or string list: %w", err)
	}

	d.lines = many
	d.block = true

	return nil
}

// MarshalJSON emits the compact string form for single lines.
func (d *DocText) MarshalJSON() ([]byte, error) {
	if !d.block && len(d.lines) == 1 {
		return json.Marshal(d.lines[0])
	}

	return json.Marshal(d.lines)
}

// Literal is a constant value expression carried through verbatim. Numbers
// keep their source spelling; strings hold expression text such as "1<<4".
type Literal string

// UnmarshalJSON keeps numeric tokens as written and unquotes strings.
func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*l = Literal(s)

		return nil
	}

	*l = Literal(data)

	return nil
}

// Load decodes a top-level module list from r.
func Load(r io.Reader) ([]*Node, error) {
	var modules []*Node

	dec := json.NewDecoder(r)
	if err := dec.Decode(&modules); err != nil {
		return nil, fmt.Errorf("decode api description: %w", err)
	}

	return modules, nil
}

// LoadFile decodes a top-level module list from the file at path.
func LoadFile(path string) ([]*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open api description: %w", err)
	}
	defer f.Close()

	return Load(f)
}
