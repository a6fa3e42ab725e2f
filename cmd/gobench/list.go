package main

import (
	"encoding/json"
	"fmt"

	"gobench/internal/store"
	"gobench/internal/ui"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the generated benchmark groups",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := store.Summaries(settings.BenchmarksDir)
		if err != nil {
			return fmt.Errorf("failed to list benchmark groups: %w", err)
		}

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summaries)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No benchmark groups found. Run 'gobench generate' first.")
			return nil
		}
		return ui.RenderSummaries(cmd.OutOrStdout(), summaries)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}
