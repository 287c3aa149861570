package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"racc/internal/driver"
	"racc/internal/observ"
	"racc/internal/tablefile"
	"racc/internal/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [flags] <model.toml>",
	Short: "Generate parser tables from an automaton model",
	Long: `Encode the automaton model into runtime parser tables and write them as table code.
Conflicts recorded in the model are reported as warnings and never stop generation.`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().String("encoding", "packed", "table encoding (packed|flat)")
	tablesCmd.Flags().StringP("output", "o", "", "table code output file (default stdout)")
	tablesCmd.Flags().String("binary", "", "also write the tables in binary form to this file")
	tablesCmd.Flags().Int("jobs", 0, "max parallel workers for packed rows (0=auto)")
	tablesCmd.Flags().Bool("debug-table", false, "emit the token-to-string table and enable parser debugging")
	tablesCmd.Flags().StringP("verbose", "v", "", "write the state report to this file")
	tablesCmd.Flags().Bool("debug", false, "include closure items in the state report")
	tablesCmd.Flags().Bool("cache", false, "reuse tables cached for an unchanged model")
	tablesCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

// runTables executes the "tables" command. Flags that were set explicitly
// win over racc.toml, which wins over flag defaults.
func runTables(cmd *cobra.Command, args []string) error {
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
	tc := cfg.tablesSection()

	flags := cmd.Flags()
	encStr, err := flags.GetString("encoding")
	if err != nil {
		return fmt.Errorf("failed to get encoding flag: %w", err)
	}
	if !flags.Changed("encoding") && cfg.IsDefined("tables", "encoding") {
		encStr = tc.Encoding
	}
	enc, err := tables.ParseEncoding(encStr)
	if err != nil {
		return err
	}

	req := &driver.TablesRequest{
		ModelPath:      modelPath,
		Encoding:       enc,
		Out:            cmd.OutOrStdout(),
		MaxDiagnostics: gopts.maxDiagnostics,
	}
	if req.Output, err = stringSetting(cmd, cfg, "output", "output"); err != nil {
		return err
	}
	if req.BinaryPath, err = stringSetting(cmd, cfg, "binary", "binary"); err != nil {
		return err
	}
	if req.VerbosePath, err = stringSetting(cmd, cfg, "verbose", "verbose"); err != nil {
		return err
	}
	if req.Jobs, err = flags.GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && cfg.IsDefined("tables", "jobs") {
		req.Jobs = tc.Jobs
	}
	if req.DebugTable, err = boolSetting(cmd, cfg, "debug-table", "debug_table"); err != nil {
		return err
	}
	if req.Debug, err = flags.GetBool("debug"); err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	useCache, err := boolSetting(cmd, cfg, "cache", "cache")
	if err != nil {
		return err
	}
	if useCache {
		if req.Cache, err = tablefile.OpenCache("racc"); err != nil {
			return fmt.Errorf("failed to open table cache: %w", err)
		}
	}
	if gopts.timings {
		req.Timer = observ.NewTimer()
	}

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	var res *driver.TablesResult
	if shouldUseTUI(mode, req.Output == "", gopts.quiet) {
		res, err = runTablesWithUI(cmd.Context(), "racc tables "+filepath.Base(modelPath), req)
	} else {
		res, err = driver.EmitTables(cmd.Context(), req)
	}

	if res != nil {
		if perr := printDiagnostics(cmd, gopts, res.Bag); perr != nil {
			return perr
		}
	}
	if err != nil {
		if errors.Is(err, tables.ErrInternal) {
			dumpTrace(cmd.ErrOrStderr())
		}
		if res != nil && res.Bag.HasErrors() {
			return silentError(cmd)
		}
		return err
	}
	if gopts.timings {
		printTimings(cmd.ErrOrStderr(), req.Timer, gopts.diagFormat == "json")
	}
	if res.CacheHit && !gopts.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "tables reused from cache")
	}
	return nil
}

// tablesSection returns the [tables] section, zero when there is no config.
func (c *loadedConfig) tablesSection() tablesConfig {
	if c == nil {
		return tablesConfig{}
	}
	return c.Config.Tables
}

// stringSetting reads a string flag of the tables command, falling back to
// the [tables] path key when the flag was not given.
func stringSetting(cmd *cobra.Command, cfg *loadedConfig, flag, key string) (string, error) {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) || !cfg.IsDefined("tables", key) {
		return v, nil
	}
	tc := cfg.Config.Tables
	switch key {
	case "output":
		v = tc.Output
	case "binary":
		v = tc.Binary
	case "verbose":
		v = tc.Verbose
	}
	return cfg.resolve(v), nil
}

func boolSetting(cmd *cobra.Command, cfg *loadedConfig, flag, key string) (bool, error) {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) || !cfg.IsDefined("tables", key) {
		return v, nil
	}
	switch key {
	case "debug_table":
		return cfg.Config.Tables.DebugTable, nil
	case "cache":
		return cfg.Config.Tables.Cache, nil
	}
	return v, nil
}
