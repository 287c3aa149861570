package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"racc/internal/driver"
	"racc/internal/observ"
)

var reportCmd = &cobra.Command{
	Use:   "report [flags] <model.toml>",
	Short: "Print the human-readable state report of a model",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "report output file (default stdout)")
	reportCmd.Flags().Bool("debug", false, "include closure items of every state")
}

func runReport(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	modelPath := args[0]
	gopts, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfigFor(modelPath)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if !cmd.Flags().Changed("output") && cfg.IsDefined("report", "output") {
		output = cfg.resolve(cfg.Config.Report.Output)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	if !cmd.Flags().Changed("debug") && cfg.IsDefined("report", "debug") {
		debug = cfg.Config.Report.Debug
	}

	var out io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	req := &driver.ReportRequest{
		ModelPath:      modelPath,
		Out:            out,
		Debug:          debug,
		MaxDiagnostics: gopts.maxDiagnostics,
	}
	if gopts.timings {
		req.Timer = observ.NewTimer()
	}
	bag, err := driver.Report(cmd.Context(), req)
	if perr := printDiagnostics(cmd, gopts, bag); perr != nil {
		return perr
	}
	if err != nil {
		if bag != nil && bag.HasErrors() {
			return silentError(cmd)
		}
		return err
	}
	if gopts.timings {
		printTimings(cmd.ErrOrStderr(), req.Timer, gopts.diagFormat == "json")
	}
	return nil
}
