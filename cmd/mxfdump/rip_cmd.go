package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mxfkit/internal/util"
	"github.com/s0up4200/mxfkit/pkg/mxfpartition"
)

// createRipCommand prints only the Random Index Pack entries, skipping the
// per-partition detail dump builds.
func createRipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rip <file>",
		Short: "Print the Random Index Pack entries",
		Args:  cobra.ExactArgs(1),
		RunE:  runRip,
	}
}

func runRip(cmd *cobra.Command, args []string) error {
	path := args[0]

	result, err := mxfpartition.Read(context.Background(), mxfpartition.Options{Path: path})
	if err != nil {
		return fmt.Errorf("mxfdump: %w", err)
	}

	out := cmd.OutOrStdout()
	if !result.HasRIP {
		fmt.Fprintln(out, "no Random Index Pack present")
		return nil
	}

	for i, e := range result.RIPEntries {
		fmt.Fprintf(out, "%-4d bodySID=%-6d thisPartition=%s\n", i, e.BodySID, util.FormatNumber(int64(e.ThisPartition)))
	}
	return nil
}
