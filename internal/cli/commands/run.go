package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/introspect/internal/cli/output"
	"github.com/leapstack-labs/introspect/internal/engine"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Introspect the database and write one schema file per table",
		Long: `Connect to the database named by database_url, list its tables and write
<out_dir>/<table>.json for every table whose name does not start with "_".

The output directory must already exist. Existing files are overwritten.
The run stops at the first failing table.`,
		Example: `  # Introspect using DATABASE_URL from the environment or .env
  introspect run

  # Introspect a Postgres schema into ./schemas
  introspect run --database-url postgres://localhost/app --schema billing --out-dir schemas

  # Machine-readable summary
  introspect run -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunIntrospect(cmd)
		},
	}
}

// RunIntrospect runs the full introspection pipeline and reports the result.
// It backs both "introspect" and "introspect run".
func RunIntrospect(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	summary, err := cmdCtx.Engine.Run(cmd.Context())
	if err != nil {
		if summary != nil && len(summary.Written) > 0 {
			r.Warning(fmt.Sprintf("%d schema file(s) were written to %s before the failure", len(summary.Written), summary.OutputDir))
		}
		return err
	}

	return renderSummary(r, summary, cmdCtx.Cfg.Verbose)
}

// CompletionMessage is printed after a successful run.
func CompletionMessage(outDir string) string {
	return fmt.Sprintf("Introspect complete. Please review in the %s directory", outDir)
}

func renderSummary(r *output.Renderer, summary *engine.Summary, verbose bool) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(summary)
	case output.ModeMarkdown:
		r.Println(CompletionMessage(summary.OutputDir))
		r.Println("")
		r.Println(output.FormatKeyValue("Written", fmt.Sprintf("%d", len(summary.Written))))
		if len(summary.Skipped) > 0 {
			r.Println(output.FormatKeyValue("Skipped", strings.Join(summary.Skipped, ", ")))
		}
		r.Println(output.FormatKeyValue("Duration", summary.Duration.Round(time.Millisecond).String()))
		return nil
	default:
		if verbose {
			for _, path := range summary.Written {
				r.Muted("  wrote " + filepath.ToSlash(path))
			}
			for _, table := range summary.Skipped {
				r.Muted("  skipped " + table)
			}
		}
		r.Success(CompletionMessage(summary.OutputDir))
		return nil
	}
}
