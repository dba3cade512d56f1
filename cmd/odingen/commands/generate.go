package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/odingen/internal/observability"
	"github.com/Sumatoshi-tech/odingen/pkg/config"
	"github.com/Sumatoshi-tech/odingen/pkg/gen"
	"github.com/Sumatoshi-tech/odingen/pkg/schema"
)

// ErrDrift is returned by --check when the existing output no longer
// matches what the description tree generates.
var ErrDrift = errors.New("generated bindings differ from existing output")

// defaultInput is the description file read when no argument is given.
const defaultInput = "api.json"

// outputFileMode is the permission set for the generated artifact.
const outputFileMode = 0o644

// GenerateCommand holds the flags for the generate command.
type GenerateCommand struct {
	output      string
	configPath  string
	check       bool
	showSummary bool
	noColor     bool
}

// NewGenerateCommand creates and configures the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &GenerateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "generate [api.json]",
		Short: "Generate Odin bindings from an API description",
		Long: `Generate Odin foreign bindings from an API description tree.

Generation is best effort: malformed nodes degrade to placeholders and
diagnostics on stderr, and a complete artifact is always produced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "output.odin", "Output file")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file (YAML)")
	cobraCmd.Flags().BoolVar(&cmd.check, "check", false, "Diff against existing output instead of writing")
	cobraCmd.Flags().BoolVar(&cmd.showSummary, "summary", false, "Print a generation summary table")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the generate command.
func (c *GenerateCommand) Run(cmd *cobra.Command, args []string) error {
	if c.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	input := defaultInput
	if len(args) == 1 {
		input = args[0]
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	logger := c.newLogger(cmd, cfg)

	modules, err := schema.LoadFile(input)
	if err != nil {
		return err
	}

	generator := gen.New(buildTables(cfg), logger)
	data, summary := generator.Generate(modules)

	if c.check {
		if err := c.checkDrift(cmd.OutOrStdout(), data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(c.output, data, outputFileMode); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		logger.Info("wrote bindings", "path", c.output, "bytes", len(data),
			"diagnostics", summary.Diagnostics)
	}

	if c.showSummary {
		summary.Render(cmd.OutOrStdout())
	}

	return nil
}

// newLogger wires the persistent verbose/quiet flags and the logging config
// into a stderr logger.
func (c *GenerateCommand) newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet {
		return observability.Discard()
	}

	level := observability.ParseLevel(cfg.Logging.Level)
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	return observability.NewLogger(cmd.ErrOrStderr(), level, cfg.Logging.Format)
}

// buildTables layers the config table extensions over the stock tables.
func buildTables(cfg *config.Config) *gen.Tables {
	tables := gen.DefaultTables()
	tables.StripPrefix = cfg.Generator.StripPrefix
	tables.LinkPrefix = cfg.Generator.LinkPrefix
	tables.CallingConvention = cfg.Generator.CallingConvention

	return tables.Merge(gen.TableOverrides{
		BuiltinOverrides:     cfg.Tables.BuiltinOverrides,
		EnumPrefixesSpecific: cfg.Tables.EnumPrefixesSpecific,
		EnumPrefixesBroad:    cfg.Tables.EnumPrefixesBroad,
		ReservedWords:        cfg.Tables.ReservedWords,
	})
}

// checkDrift compares the freshly generated bindings against the current
// output file and renders a diff when they disagree.
func (c *GenerateCommand) checkDrift(w io.Writer, generated []byte) error {
	existing, err := os.ReadFile(c.output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read existing output: %w", err)
	}

	if bytes.Equal(existing, generated) {
		color.New(color.FgGreen).Fprintf(w, "%s is up to date\n", c.output)

		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(existing), string(generated), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if color.NoColor {
		inserted, deleted := diffStats(diffs)
		fmt.Fprintf(w, "%s is out of date: +%d/-%d characters\n", c.output, inserted, deleted)
	} else {
		fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
	}

	return ErrDrift
}

func diffStats(diffs []diffmatchpatch.Diff) (int, int) {
	var inserted, deleted int

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(diff.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(diff.Text)
		case diffmatchpatch.DiffEqual:
		}
	}

	return inserted, deleted
}
