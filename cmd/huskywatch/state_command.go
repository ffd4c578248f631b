package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"huskywatch/internal/logging"
	"huskywatch/internal/mergestore"
	"huskywatch/internal/retention"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show persisted watch state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := retention.NewStore(cfg.RetentionStorePath(), logging.NewNop()).Entries()
			if err != nil {
				return err
			}
			merge, err := mergestore.Open(cfg.MergeStorePath(), logging.NewNop())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pretty := !plain && stdoutIsTerminal()

			transactions := newStateTable("Key", "First Seen").alignRight(0)
			for _, entry := range entries {
				transactions.addRow(entry.Key, entry.ObservedAt.Format(time.RFC3339))
			}
			fmt.Fprintf(out, "Remembered transactions (%d):\n", len(entries))
			transactions.writeTo(out, pretty)

			transfers := newStateTable("Date", "Name", "Pos", "Origin", "Destination")
			for _, record := range merge.Records() {
				transfers.addRow(record.Date, record.Name, record.Position, record.Origin, record.Destination)
			}
			fmt.Fprintf(out, "\nTracked transfers (%d):\n", merge.Len())
			transfers.writeTo(out, pretty)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Force tab-separated output")
	return cmd
}
