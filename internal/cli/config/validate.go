package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/introspect/internal/cli/output"
	"github.com/leapstack-labs/introspect/pkg/core"
)

// LogFormats lists the accepted --log-format values.
var LogFormats = []string{"text", "json"}

// Validate checks enumerated settings. The database URL is validated when
// the connection is opened.
func (c *Config) Validate() error {
	if !slices.Contains(LogFormats, c.LogFormat) {
		return &core.ConfigurationError{
			Key:    "log_format",
			Reason: fmt.Sprintf("must be one of %v, got %q", LogFormats, c.LogFormat),
		}
	}
	if !slices.Contains(output.Modes(), c.OutputFormat) {
		return &core.ConfigurationError{
			Key:    "output",
			Reason: fmt.Sprintf("must be one of %v, got %q", output.Modes(), c.OutputFormat),
		}
	}
	if c.OutDir == "" {
		return &core.ConfigurationError{Key: "out_dir", Reason: "must not be empty"}
	}
	return nil
}
