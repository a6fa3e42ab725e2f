package main

import (
	"encoding/json"
	"fmt"
	"time"

	"gobench/internal/store"
	"gobench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historySlug  string
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived benchmark groups",
	Long: `Lists the groups saved by 'gobench generate --archive', newest first.
With --slug only the latest snapshot of that group is shown.

The store is configured with store.type (sqlite or postgres) and store.dsn.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of snapshots to show")
	historyCmd.Flags().StringVar(&historySlug, "slug", "", "Only show the latest snapshot of this group")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	history, err := newHistoryFunc(settings.Store)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer history.Close()

	var snapshots []store.Snapshot
	if historySlug != "" {
		snap, err := history.Latest(cmd.Context(), historySlug)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", historySlug, err)
		}
		snapshots = []store.Snapshot{snap}
	} else {
		snapshots, err = history.List(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snapshots)
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived benchmark groups.")
		return nil
	}
	return ui.RenderSnapshots(cmd.OutOrStdout(), snapshots, time.Now())
}
