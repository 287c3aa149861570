package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"racc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "racc",
	Short: "LALR parser table generator backend",
	Long:  `racc turns a finished LALR automaton model into runtime parser tables`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupProfiling(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeTracing()
		stopProfiling(cmd)
	},
}

// main registers subcommands and persistent flags and executes the root
// command. A failing command exits with status 1.
func main() {
	// версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostics output format (pretty|json)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	closeTracing()
	stopProfiling(rootCmd)
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
