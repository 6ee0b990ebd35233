package engine

import "time"

// Summary describes the outcome of a Run.
type Summary struct {
	RunID     string `json:"run_id"`
	OutputDir string `json:"out_dir"`
	// Tables is the number of tables the catalog reported.
	Tables int `json:"tables"`
	// Written holds the path of every document written, in catalog order.
	Written []string `json:"written"`
	// Skipped holds excluded table names.
	Skipped  []string      `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}

