package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/odingen/pkg/schema"
)

func TestDocTextSingleLine(t *testing.T) {
	t.Parallel()

	var doc schema.DocText

	require.NoError(t, json.Unmarshal([]byte(`"returns the current time"`), &doc))
	assert.False(t, doc.IsBlock())
	assert.Equal(t, []string{"returns the current time"}, doc.Lines())
}

func TestDocTextBlock(t *testing.T) {
	t.Parallel()

	var doc schema.DocText

	require.NoError(t, json.Unmarshal([]byte(`["line one", "line two"]`), &doc))
	assert.True(t, doc.IsBlock())
	assert.Equal(t, []string{"line one", "line two"}, doc.Lines())
}

func TestDocTextRejectsOtherShapes(t *testing.T) {
	t.Parallel()

	var doc schema.DocText

	require.Error(t, json.Unmarshal([]byte(`{"text": "nope"}`), &doc))
}

func TestLiteralKeepsNumericSpelling(t *testing.T) {
	t.Parallel()

	var lit schema.Literal

	require.NoError(t, json.Unmarshal([]byte(`42`), &lit))
	assert.Equal(t, schema.Literal("42"), lit)
}

func TestLiteralUnquotesExpressions(t *testing.T) {
	t.Parallel()

	var lit schema.Literal

	require.NoError(t, json.Unmarshal([]byte(`"1<<4"`), &lit))
	assert.Equal(t, schema.Literal("1<<4"), lit)
}

func TestHasFieldsDistinguishesAbsentFromEmpty(t *testing.T) {
	t.Parallel()

	var absent schema.Node

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"struct"}`), &absent))
	assert.False(t, absent.HasFields())

	var empty schema.Node

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"struct","fields":[]}`), &empty))
	assert.True(t, empty.HasFields())
}

func TestLoadModuleList(t *testing.T) {
	t.Parallel()

	input := `[
		{"kind": "module", "name": "app", "brief": "Application layer", "contents": [
			{"kind": "proc", "name": "oc_request_quit", "params": [], "return": {"kind": "void"}}
		]}
	]`

	modules, err := schema.Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, modules, 1)

	mod := modules[0]
	assert.Equal(t, schema.KindModule, mod.Kind)
	assert.Equal(t, "Application layer", mod.Brief)
	require.Len(t, mod.Contents, 1)
	assert.Equal(t, schema.KindProc, mod.Contents[0].Kind)
	require.NotNil(t, mod.Contents[0].Return)
	assert.Equal(t, schema.KindVoid, mod.Contents[0].Return.Kind)
}

func TestLoadRejectsNonList(t *testing.T) {
	t.Parallel()

	_, err := schema.Load(strings.NewReader(`{"kind": "module"}`))
	require.Error(t, err)
}

func TestIsPrimitive(t *testing.T) {
	t.Parallel()

	assert.True(t, schema.IsPrimitive(schema.KindF32))
	assert.True(t, schema.IsPrimitive(schema.KindVoid))
	assert.False(t, schema.IsPrimitive(schema.KindStruct))
	assert.False(t, schema.IsPrimitive("f64"))
}
