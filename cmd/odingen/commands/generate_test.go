package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/odingen/cmd/odingen/commands"
)

const testDescription = `[
  {"kind": "module", "name": "app", "brief": "Application layer", "contents": [
    {"kind": "typename", "name": "oc_file", "type": {"kind": "struct", "fields": [
      {"name": "h", "type": {"kind": "u32"}}
    ]}},
    {"kind": "proc", "name": "oc_request_quit", "params": [], "return": {"kind": "void"}}
  ]}
]`

func writeDescription(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runGenerate(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := commands.NewGenerateCommand()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestGenerateWritesBindings(t *testing.T) {
	dir := t.TempDir()
	apiPath := writeDescription(t, dir, testDescription)
	outPath := filepath.Join(dir, "output.odin")

	_, _, err := runGenerate(t, apiPath, "-o", outPath, "--no-color")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "// Application layer")
	assert.Contains(t, out, "file :: distinct u64")
	assert.Contains(t, out, "@(default_calling_convention=\"c\", link_prefix=\"oc_\")")
	assert.Contains(t, out, "  request_quit :: proc() ---")
}

func TestGenerateSummaryTable(t *testing.T) {
	dir := t.TempDir()
	apiPath := writeDescription(t, dir, testDescription)
	outPath := filepath.Join(dir, "output.odin")

	stdout, _, err := runGenerate(t, apiPath, "-o", outPath, "--summary", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Modules")
	assert.Contains(t, stdout, "Procedures")
}

func TestGenerateCheckUpToDate(t *testing.T) {
	dir := t.TempDir()
	apiPath := writeDescription(t, dir, testDescription)
	outPath := filepath.Join(dir, "output.odin")

	_, _, err := runGenerate(t, apiPath, "-o", outPath, "--no-color")
	require.NoError(t, err)

	stdout, _, err := runGenerate(t, apiPath, "-o", outPath, "--check", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "up to date")
}

func TestGenerateCheckDetectsDrift(t *testing.T) {
	dir := t.TempDir()
	apiPath := writeDescription(t, dir, testDescription)
	outPath := filepath.Join(dir, "output.odin")

	_, _, err := runGenerate(t, apiPath, "-o", outPath, "--no-color")
	require.NoError(t, err)

	drifted := `[
  {"kind": "module", "name": "app", "contents": [
    {"kind": "proc", "name": "oc_request_quit", "params": [], "return": {"kind": "void"}},
    {"kind": "proc", "name": "oc_new_entry", "params": [], "return": {"kind": "void"}}
  ]}
]`
	require.NoError(t, os.WriteFile(apiPath, []byte(drifted), 0o600))

	_, _, err = runGenerate(t, apiPath, "-o", outPath, "--check", "--no-color")
	require.ErrorIs(t, err, commands.ErrDrift)
}

func TestGenerateWithConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	apiPath := writeDescription(t, dir, `[
  {"kind": "module", "name": "math", "contents": [
    {"kind": "typename", "name": "oc_quat", "type": {"kind": "struct", "fields": [
      {"name": "x", "type": {"kind": "f32"}},
      {"name": "y", "type": {"kind": "f32"}},
      {"name": "z", "type": {"kind": "f32"}},
      {"name": "w", "type": {"kind": "f32"}}
    ]}}
  ]}
]`)

	configPath := filepath.Join(dir, "odingen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
tables:
  builtin_overrides:
    quat: "[4]f32"
`), 0o600))

	outPath := filepath.Join(dir, "output.odin")

	_, _, err := runGenerate(t, apiPath, "-o", outPath, "--config", configPath, "--no-color")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Contains(t, string(data), "quat :: [4]f32")
	assert.NotContains(t, string(data), "quat :: struct")
}

func TestGenerateMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runGenerate(t, filepath.Join(dir, "absent.json"), "--no-color")
	require.Error(t, err)
}
