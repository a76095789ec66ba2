package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/assetdb"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	DBPath     string
	AssetType  string
	Collection string
	Limit      int
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the asset database",
		Long: `Search indexed assets by name substring, optionally filtered by
asset type and collection. An empty query lists everything up to the
result limit.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSearch(opts, query, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "assets.db", "asset database path")
	cmd.Flags().StringVarP(&opts.AssetType, "type", "t", "", "filter by asset type (Model|Texture|Audio|Material)")
	cmd.Flags().StringVarP(&opts.Collection, "collection", "c", "", "filter by collection")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 50, "maximum results")

	return cmd
}

func runSearch(opts *SearchOptions, query string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := assetdb.Open(opts.DBPath)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("opening asset database: %v", err))
	}
	defer db.Close()

	results, err := db.SearchAssets(assetdb.SearchParams{
		Query:      query,
		AssetType:  opts.AssetType,
		Collection: opts.Collection,
		Limit:      opts.Limit,
	})
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(formatter.Writer, "No assets found")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(formatter.Writer, "%-40s %-8s %-16s %s\n",
			r.Asset.Name, r.Asset.AssetType, r.Asset.Collection, r.Asset.FilePath)
	}
	fmt.Fprintf(formatter.Writer, "%d result(s)\n", len(results))
	return nil
}
