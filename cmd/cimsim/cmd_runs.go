package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coherent-lab/cimsim/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Long: `List runs recorded in the output directory's run history.

Examples:
  cimsim runs --out out
  cimsim runs --out out --limit 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			runStore, err := store.Open(outDir)
			if err != nil {
				return err
			}
			defer runStore.Close()

			records, err := runStore.ListRuns(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(records)
			}

			if len(records) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  %s  %-10s  n=%-5d steps=%-8d seed=%-6d wall=%s\n",
					rec.ID, rec.CreatedAt.Format(time.RFC3339), rec.Backend,
					rec.N, rec.NumSteps, rec.Seed, rec.Wall.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().String("out", "out", "Output directory holding the run history")
	cmd.Flags().Int("limit", 0, "Maximum runs to list (0 = all)")

	return cmd
}
