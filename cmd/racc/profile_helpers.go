package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"racc/internal/prof"
)

var profSession *prof.Session

// setupProfiling starts the profilers requested by the persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	profSession, err = prof.Start(opts)
	return err
}

func stopProfiling(cmd *cobra.Command) {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	profSession = nil
}
