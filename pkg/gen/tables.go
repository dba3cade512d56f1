package gen

// Tables holds the fixed lookup tables driving name normalization and type
// resolution. A Tables value is frozen after construction: the generator
// only ever reads it, so one instance is safe to share.
type Tables struct {
	// StripPrefix is the namespace prefix removed from every identifier
	// that carries it.
	StripPrefix string

	// LinkPrefix and CallingConvention annotate emitted foreign blocks.
	LinkPrefix        string
	CallingConvention string

	// HandleField is the field name that marks a single-field wrapper
	// struct as an opaque handle.
	HandleField string

	// BuiltinOverrides maps well-known composite names (after prefix
	// stripping) directly to target expressions, bypassing normal
	// struct/union resolution.
	BuiltinOverrides map[string]string

	// EnumPrefixesSpecific is checked before EnumPrefixesBroad when
	// simplifying enum constant names; within a set the longest
	// applicable prefix wins.
	EnumPrefixesSpecific map[string]struct{}
	EnumPrefixesBroad    map[string]struct{}

	// ReservedWords remaps identifiers that collide with target-language
	// keywords to safe alternates. Exact match only.
	ReservedWords map[string]string
}

// TableOverrides extends the default tables from configuration. Entries add
// to (or, for maps, replace individual entries of) the defaults.
type TableOverrides struct {
	BuiltinOverrides     map[string]string
	EnumPrefixesSpecific []string
	EnumPrefixesBroad    []string
	ReservedWords        map[string]string
}

// DefaultTables returns the stock tables for the Orca API surface.
func DefaultTables() *Tables {
	return &Tables{
		StripPrefix:       "oc_",
		LinkPrefix:        "oc_",
		CallingConvention: "c",
		HandleField:       "h",
		BuiltinOverrides: map[string]string{
			"vec2":   "[2]f32",
			"vec3":   "[3]f32",
			"vec2i":  "[2]i32",
			"vec4":   "[4]f32",
			"mat2x3": "[2][3]f32",
			"rect":   "[4]f32",
			"color":  "[4]f32",
			"str8":   "string",
			"utf32":  "rune",

			"ui_layout_align": "[2]ui_align",
			"ui_box_size":     "[2]ui_size",
			"ui_box_floating": "[2]bool",
		},
		EnumPrefixesSpecific: stringSet(
			"OC_LOG_LEVEL_",
			"OC_EVENT_",
			"OC_KEY_",
			"OC_SCANCODE_",
			"OC_KEYMOD_",
			"OC_MOUSE_",
			"OC_FILE_DIALOG_",
			"OC_FILE_OPEN_",
			"OC_FILE_ACCESS_",
			"OC_FILE_SEEK_",
			"OC_IO_ERR_",
			"OC_GRADIENT_BLEND_",
			"OC_COLOR_SPACE_",
			"OC_JOINT_",
			"OC_CAP_",
			"OC_INPUT_TEXT_",
			"OC_UI_AXIS_",
			"OC_UI_ALIGN_",
			"OC_UI_SIZE_",
			"OC_UI_STYLE_",
			"OC_UI_SEL_",
			"OC_UI_FLAG_",
			"OC_UI_EDIT_MOVE_",
		),
		EnumPrefixesBroad: stringSet(
			"OC_FILE_",
			"OC_UI_",
			"OC_IO_",
		),
		ReservedWords: map[string]string{
			"context": "_context",
			"string":  "_string",
		},
	}
}

// Merge returns a new Tables with the overrides layered on top of t.
// The receiver is not modified.
func (t *Tables) Merge(o TableOverrides) *Tables {
	merged := &Tables{
		StripPrefix:          t.StripPrefix,
		LinkPrefix:           t.LinkPrefix,
		CallingConvention:    t.CallingConvention,
		HandleField:          t.HandleField,
		BuiltinOverrides:     copyMap(t.BuiltinOverrides),
		EnumPrefixesSpecific: copySet(t.EnumPrefixesSpecific),
		EnumPrefixesBroad:    copySet(t.EnumPrefixesBroad),
		ReservedWords:        copyMap(t.ReservedWords),
	}

	for name, expr := range o.BuiltinOverrides {
		merged.BuiltinOverrides[name] = expr
	}

	for _, prefix := range o.EnumPrefixesSpecific {
		merged.EnumPrefixesSpecific[prefix] = struct{}{}
	}

	for _, prefix := range o.EnumPrefixesBroad {
		merged.EnumPrefixesBroad[prefix] = struct{}{}
	}

	for word, alt := range o.ReservedWords {
		merged.ReservedWords[word] = alt
	}

	return merged
}

func stringSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}

	return set
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}

	return dst
}
