package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/assetdb"
)

// CollectionsOptions holds flags for the collections command.
type CollectionsOptions struct {
	*RootOptions
	DBPath string
}

// NewCollectionsCommand creates the collections command.
func NewCollectionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CollectionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "collections",
		Short:         "List asset collections",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollections(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "assets.db", "asset database path")

	return cmd
}

func runCollections(opts *CollectionsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := assetdb.Open(opts.DBPath)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("opening asset database: %v", err))
	}
	defer db.Close()

	collections, err := db.Collections()
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(collections)
	}

	if len(collections) == 0 {
		fmt.Fprintln(formatter.Writer, "No collections")
		return nil
	}
	for _, c := range collections {
		fmt.Fprintf(formatter.Writer, "%-24s %6d asset(s)", c.Name, c.AssetCount)
		if c.LicenseInfo != "" {
			fmt.Fprintf(formatter.Writer, "  [%s]", c.LicenseInfo)
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}
