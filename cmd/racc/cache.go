package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"racc/internal/tablefile"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the table cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the table cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := tablefile.OpenCache("racc")
		if err != nil {
			return fmt.Errorf("failed to open table cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := tablefile.OpenCache("racc")
		if err != nil {
			return fmt.Errorf("failed to open table cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear table cache: %w", err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
