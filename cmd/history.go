package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/robinmackenzie/uk-election-map/internal/audit"
	"github.com/robinmackenzie/uk-election-map/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the result store import history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("year", "", "only show imports of this election year")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Duration("prune", 0, "delete entries older than this before listing (e.g. 2160h)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("no result store at %s\nRun `electionmap import` first", cfg.DatabasePath)
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	store := audit.NewStore(database)
	ctx := context.Background()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := store.DeleteBefore(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Pruned %d entries\n", n)
	}

	year, _ := cmd.Flags().GetString("year")
	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Query(ctx, audit.QueryFilter{Year: year, Limit: limit})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No imports recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tYEAR\tACTION\tRECORDS\tSOURCE\tBY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Year, e.Action, e.Records, e.Source, e.Actor)
		if e.Detail != "" {
			fmt.Fprintf(w, "\t\t\t\t%s\t\n", e.Detail)
		}
	}
	return w.Flush()
}
