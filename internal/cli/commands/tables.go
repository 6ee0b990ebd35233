package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/introspect/internal/cli/output"
	"github.com/leapstack-labs/introspect/internal/engine"
	"github.com/leapstack-labs/introspect/pkg/schema"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables a run would introspect",
		Long: `List every table in the database with the title its schema document would
get and whether it is skipped. Nothing is written.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown table

Use --output to override: auto, text, markdown, json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			statuses, err := cmdCtx.Engine.Tables(cmd.Context())
			if err != nil {
				return err
			}
			return renderTables(cmdCtx.Renderer, statuses)
		},
	}
}

func renderTables(r *output.Renderer, statuses []engine.TableStatus) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(statuses)
	}

	if len(statuses) == 0 {
		r.Muted("(0 tables)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Title", "Status"})

	included := 0
	for _, s := range statuses {
		status := "skipped"
		if s.Included {
			status = "included"
			included++
		}
		t.AppendRow(table.Row{s.Name, schema.Title(s.Name), status})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	r.Printf("(%d tables, %d included)\n", len(statuses), included)
	return nil
}
