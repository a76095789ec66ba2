package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/assetdb"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	DBPath string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Show asset database statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "assets.db", "asset database path")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := assetdb.Open(opts.DBPath)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("opening asset database: %v", err))
	}
	defer db.Close()

	stats, err := db.Stats()
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(stats)
	}

	fmt.Fprintf(formatter.Writer, "Assets:      %d\n", stats.TotalAssets)
	fmt.Fprintf(formatter.Writer, "Collections: %d\n", stats.TotalCollections)
	fmt.Fprintf(formatter.Writer, "Total size:  %.1f MB\n", float64(stats.TotalSizeBytes)/(1024*1024))

	types := make([]string, 0, len(stats.AssetsByType))
	for assetType := range stats.AssetsByType {
		types = append(types, assetType)
	}
	sort.Strings(types)
	for _, assetType := range types {
		fmt.Fprintf(formatter.Writer, "  %s: %d\n", assetType, stats.AssetsByType[assetType])
	}
	return nil
}
