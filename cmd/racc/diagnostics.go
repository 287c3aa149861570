package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"racc/internal/diag"
	"racc/internal/diagfmt"
)

type globalOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions

	colorStr, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(colorStr)) {
	case "", "auto":
		opts.color = isTerminal(os.Stderr)
	case "on":
		opts.color = true
	case "off":
		opts.color = false
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorStr)
	}

	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return opts, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch opts.diagFormat {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unknown diag-format: %s", opts.diagFormat)
	}
	return opts, nil
}

// printDiagnostics writes the bag to stderr in the selected format, followed
// by a one-line summary unless --quiet is set.
func printDiagnostics(cmd *cobra.Command, opts globalOptions, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	out := cmd.ErrOrStderr()

	if opts.diagFormat == "json" {
		return diagfmt.JSON(out, bag, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeRelative,
			Max:          opts.maxDiagnostics,
			IncludeNotes: true,
		})
	}
	if !opts.quiet || bag.HasErrors() {
		err := diagfmt.Pretty(out, bag, diagfmt.PrettyOpts{
			Color:     opts.color,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: !opts.quiet,
		})
		if err != nil {
			return err
		}
	}
	if !opts.quiet {
		if summary := diagfmt.Summary(bag); summary != "" {
			fmt.Fprintln(out, summary)
		}
	}
	return nil
}

// silentError ends a command whose failure was already reported through
// diagnostics.
func silentError(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
