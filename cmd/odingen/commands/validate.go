package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/odingen/pkg/schema/spec"
)

// ErrInvalidDescription is returned when the input fails schema validation.
var ErrInvalidDescription = errors.New("api description failed schema validation")

// ValidateCommand holds the flags for the validate command.
type ValidateCommand struct {
	schemaPath string
	noColor    bool
}

// NewValidateCommand creates and configures the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &ValidateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Validate an API description against the schema",
		Long: `Validate an API description JSON file against the description schema.

Examples:
  odingen validate api.json
  odingen validate - < api.json
  odingen validate --schema custom-schema.json api.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd, args[0])
		},
	}

	cobraCmd.Flags().StringVar(&cmd.schemaPath, "schema", "", "path to a custom JSON schema")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "disable colored output")

	return cobraCmd
}

// Run executes the validate command.
func (c *ValidateCommand) Run(cmd *cobra.Command, inputPath string) error {
	if c.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	out := cmd.OutOrStdout()

	inputReader, inputLabel, err := loadInput(cmd, inputPath)
	if err != nil {
		return err
	}

	var inputData any

	dec := json.NewDecoder(inputReader)
	dec.UseNumber()

	if decodeErr := dec.Decode(&inputData); decodeErr != nil {
		return fmt.Errorf("invalid JSON in %s: %w", inputLabel, decodeErr)
	}

	schemaLoader, err := c.loadSchema()
	if err != nil {
		return err
	}

	inputLoader := gojsonschema.NewGoLoader(inputData)

	result, err := gojsonschema.Validate(schemaLoader, inputLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		color.New(color.FgGreen).Fprintf(out, "API description is valid (%s)\n", inputLabel)

		return nil
	}

	color.New(color.FgRed).Fprintf(out, "API description validation failed (%s)\n", inputLabel)
	fmt.Fprintf(out, "\nErrors:\n")

	for _, verr := range result.Errors() {
		color.New(color.FgRed).Fprintf(out, "  - %s: %s\n", verr.Field(), verr.Description())
	}

	return ErrInvalidDescription
}

func loadInput(cmd *cobra.Command, inputPath string) (io.Reader, string, error) {
	if inputPath == "-" {
		return cmd.InOrStdin(), "stdin", nil
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}

	return inputFile, inputPath, nil
}

func (c *ValidateCommand) loadSchema() (gojsonschema.JSONLoader, error) {
	if c.schemaPath == "" {
		schemaBytes, err := spec.APISchemaFS.ReadFile(spec.APISchemaFile)
		if err != nil {
			return nil, fmt.Errorf("read embedded schema: %w", err)
		}

		return gojsonschema.NewBytesLoader(schemaBytes), nil
	}

	schemaBytes, err := os.ReadFile(c.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", c.schemaPath, err)
	}

	return gojsonschema.NewBytesLoader(schemaBytes), nil
}
