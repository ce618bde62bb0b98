package handlers

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"blogpilot/internal/config"
	"blogpilot/internal/history"
)

// NewHistoryCmd creates the history command group for inspecting and
// maintaining the used-topic store.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and maintain the used-topic history",
	}

	historyCmd.AddCommand(newHistoryListCmd())
	historyCmd.AddCommand(newHistoryStatsCmd())
	historyCmd.AddCommand(newHistoryPruneCmd())

	return historyCmd
}

func openStore() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.App.DataDir)
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recorded topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Load()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No topics recorded yet.")
				return nil
			}
			for _, r := range records {
				fmt.Printf("%s  %s\n", r.UsedAt.Format("2006-01-02 15:04"), r.Topic)
			}
			return nil
		},
	}
}

func newHistoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show history totals and the most recent topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.GetStats()
			if err != nil {
				return err
			}

			fmt.Printf("Total topics: %d\n", stats.TotalTopics)
			if !stats.LastUsedAt.IsZero() {
				fmt.Printf("Last used:    %s\n", stats.LastUsedAt.Format(time.RFC3339))
			}
			if len(stats.Recent) > 0 {
				fmt.Println("Recent:")
				for _, r := range stats.Recent {
					fmt.Printf("  %s  %s\n", r.UsedAt.Format("2006-01-02"), r.Topic)
				}
			}
			return nil
		},
	}
}

func newHistoryPruneCmd() *cobra.Command {
	var olderThan time.Duration

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete history entries older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Prune(olderThan)
			if err != nil {
				return err
			}
			fmt.Printf("Pruned %d entries older than %s.\n", n, olderThan)
			return nil
		},
	}

	pruneCmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Delete entries older than this")
	return pruneCmd
}
