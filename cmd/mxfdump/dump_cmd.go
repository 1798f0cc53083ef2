package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mxfkit/internal/report"
	"github.com/s0up4200/mxfkit/internal/settings"
	"github.com/s0up4200/mxfkit/pkg/mxfpartition"
)

var (
	dumpOut         string
	dumpSummaryOnly bool
	dumpVerify      bool
)

// createDumpCommand decodes every reachable partition pack plus the RIP (if
// present) and prints a structural summary.
func createDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode every partition pack and print a structural summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}

	cmd.Flags().StringVarP(&dumpOut, "out", "o", "-", "report file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&dumpSummaryOnly, "summary-only", false, "print only the file, run-in length, partition count and RIP presence")
	cmd.Flags().BoolVar(&dumpVerify, "verify", false, "cross-check essence-container labels and RIP entries while decoding")

	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	result, err := mxfpartition.Read(context.Background(), mxfpartition.Options{
		Path:   path,
		Verify: dumpVerify,
		OnProgress: func(e mxfpartition.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Stage, e.Path)
		},
	})
	if err != nil {
		return fmt.Errorf("mxfdump: %w", err)
	}

	cfg := settings.Default("")
	cfg.ReportFileName = dumpOut
	cfg.SummaryOnly = dumpSummaryOnly

	name, err := report.WriteReport(dumpOut, result, cfg)
	if err != nil {
		return fmt.Errorf("mxfdump: write report: %w", err)
	}
	if name != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
	}
	return nil
}
