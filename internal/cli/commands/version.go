package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/introspect/internal/cli/output"
	"github.com/leapstack-labs/introspect/pkg/adapter"
)

// BuildInfo describes the running binary. Fields are set at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

type versionOutput struct {
	BuildInfo
	Schemes []string `json:"schemes"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display introspect version, build metadata and the database schemes it supports.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			return renderVersion(cmdCtx.Renderer, info)
		},
	}
}

func renderVersion(r *output.Renderer, info BuildInfo) error {
	schemes := adapter.ListAdapters()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(versionOutput{BuildInfo: info, Schemes: schemes})
	case output.ModeMarkdown:
		r.Header(1, "introspect v"+info.Version)
		r.Println("")
		r.Println(output.FormatKeyValue("Commit", info.GitCommit))
		r.Println(output.FormatKeyValue("Built", info.BuildDate))
		r.Println(output.FormatKeyValue("Supported schemes", strings.Join(schemes, ", ")))
		return nil
	default:
		r.Header(1, "introspect v"+info.Version)
		r.Muted("commit " + info.GitCommit + ", built " + info.BuildDate)
		r.Println("Supported schemes: " + strings.Join(schemes, ", "))
		return nil
	}
}
