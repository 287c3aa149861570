package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"racc/internal/driver"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [flags] <model.toml> <state> <token>",
	Short: "Resolve one table cell through both encodings",
	Long: `Build the flat and the packed tables of a model and resolve the action
(terminal token) or goto (nonterminal token) of one state through each of them.
The token may be given by name or by id.`,
	Args: cobra.ExactArgs(3),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().Int("jobs", 0, "max parallel workers for packed rows (0=auto)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	state, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid state %q: %w", args[1], err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	res, err := driver.Lookup(cmd.Context(), &driver.LookupRequest{
		ModelPath: args[0],
		State:     state,
		Token:     args[2],
		Jobs:      jobs,
	})
	if err != nil {
		return err
	}
	printLookup(cmd.OutOrStdout(), res)
	return nil
}

func printLookup(out io.Writer, res *driver.LookupResult) {
	fmt.Fprintf(out, "state %d, token %s (%d)\n", res.State, res.Token.Name, res.Token.ID)
	if !res.Token.Terminal {
		if !res.HasGoto {
			fmt.Fprintln(out, "  goto: none")
			return
		}
		fmt.Fprintf(out, "  goto: state %d\n", res.Goto)
		return
	}
	source := "explicit"
	if res.Default {
		source = "default"
	}
	fmt.Fprintf(out, "  model:  %s (%s)\n", res.Model, source)
	fmt.Fprintf(out, "  tables: %d -> %s (flat and packed agree)\n", res.Code, res.Action)
}
