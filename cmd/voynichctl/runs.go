package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		records, err := client.Runs(context.Background())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN ID\tCREATED\tSEED\tPOP\tGENS\tCONVERGED\tWINNER")
		for _, record := range records {
			winner := "-"
			if record.Winner != nil {
				winner = record.Winner.SourceTextID + " | " + strings.Join(record.Winner.Transforms, " -> ")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%v\t%s\n",
				record.RunID, record.CreatedAtUTC, record.Seed,
				record.Population, record.Generations, record.Converged, winner)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("limit", 0, "show at most N runs (0 = all)")
}
