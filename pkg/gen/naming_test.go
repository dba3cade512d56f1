package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/odingen/pkg/gen"
)

func TestTrimNameStripsNamespacePrefix(t *testing.T) {
	t.Parallel()

	tables := gen.DefaultTables()

	assert.Equal(t, "window", tables.TrimName("oc_window"))
	assert.Equal(t, "window", tables.TrimName("window"))
	assert.Equal(t, "oc", tables.TrimName("oc"))
}

func TestIdentifierNormalization(t *testing.T) {
	t.Parallel()

	tables := gen.DefaultTables()

	assert.Equal(t, "_", tables.Identifier(""))
	assert.Equal(t, "_context", tables.Identifier("context"))
	assert.Equal(t, "_string", tables.Identifier("string"))
	assert.Equal(t, "width", tables.Identifier("width"))
	assert.Equal(t, "_0", tables.Identifier("0"))
}

func TestGuardDecimal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "_360", gen.GuardDecimal("360"))
	assert.Equal(t, "a360", gen.GuardDecimal("a360"))
	assert.Equal(t, "", gen.GuardDecimal(""))
}

func TestSimplifyEnumConstantSpecificBeatsBroad(t *testing.T) {
	t.Parallel()

	tables := gen.DefaultTables()

	// OC_UI_ALIGN_ (specific) and OC_UI_ (broad) both apply; the specific
	// set wins.
	assert.Equal(t, "CENTER", tables.SimplifyEnumConstant("OC_UI_ALIGN_CENTER"))
	// OC_IO_ERR_ (specific) over OC_IO_ (broad).
	assert.Equal(t, "FULL", tables.SimplifyEnumConstant("OC_IO_ERR_FULL"))
}

func TestSimplifyEnumConstantBroadFallback(t *testing.T) {
	t.Parallel()

	tables := gen.DefaultTables()

	assert.Equal(t, "BOX", tables.SimplifyEnumConstant("OC_UI_BOX"))
	assert.Equal(t, "OC_OTHER_THING", tables.SimplifyEnumConstant("OC_OTHER_THING"))
}

func TestSimplifyEnumConstantLongestWins(t *testing.T) {
	t.Parallel()

	tables := gen.DefaultTables().Merge(gen.TableOverrides{
		EnumPrefixesSpecific: []string{"OC_UI_FLAG_EXTRA_"},
	})

	// Both OC_UI_FLAG_ and OC_UI_FLAG_EXTRA_ match; the longer prefix is
	// stripped.
	assert.Equal(t, "BOLD", tables.SimplifyEnumConstant("OC_UI_FLAG_EXTRA_BOLD"))
}

func TestMergeDoesNotMutateDefaults(t *testing.T) {
	t.Parallel()

	defaults := gen.DefaultTables()
	merged := defaults.Merge(gen.TableOverrides{
		BuiltinOverrides: map[string]string{"quat": "[4]f32"},
		ReservedWords:    map[string]string{"proc": "_proc"},
	})

	assert.Equal(t, "[4]f32", merged.BuiltinOverrides["quat"])
	assert.Equal(t, "_proc", merged.ReservedWords["proc"])

	_, inDefaults := defaults.BuiltinOverrides["quat"]
	assert.False(t, inDefaults)
	_, inDefaults = defaults.ReservedWords["proc"]
	assert.False(t, inDefaults)

	// Stock entries survive the merge.
	assert.Equal(t, "[2]f32", merged.BuiltinOverrides["vec2"])
	assert.Equal(t, "_context", merged.ReservedWords["context"])
}
