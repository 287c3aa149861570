package main

import (
	"encoding/json"
	"fmt"
	"io"

	"racc/internal/observ"
)

// printTimings writes the phase table, or the timing report as JSON when
// diagnostics are printed as JSON too.
func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) {
	if out == nil || timer == nil {
		return
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(timer.Report()); err != nil {
			fmt.Fprintf(out, "timings: %v\n", err)
		}
		return
	}
	fmt.Fprint(out, timer.Summary())
}
