package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts of tracked people, descriptors and sightings",
	RunE: func(_ *cobra.Command, _ []string) error {
		stats, err := apiClient.GetStats(context.Background())
		if err != nil {
			return fmt.Errorf("error getting stats: %w", err)
		}

		return printJSON(stats)
	},
}

// GetStatsCmd returns the stats command
func GetStatsCmd() *cobra.Command {
	return statsCmd
}
