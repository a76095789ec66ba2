package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/assetdb"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	DBPath string
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <assets-dir>",
		Short: "Index an asset directory into the asset database",
		Long: `Walk an asset directory and index every model, texture, audio and
material file into the asset database. The top-level directory of each
file names its collection. Files already indexed are skipped, so
re-scanning is cheap.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "assets.db", "asset database path")

	return cmd
}

func runScan(opts *ScanOptions, assetsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := assetdb.Open(opts.DBPath)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("opening asset database: %v", err))
	}
	defer db.Close()

	scanner := assetdb.NewScanner(db)
	if opts.Verbose {
		unsubscribe := scanner.OnScanProgress(func(p assetdb.ScanProgress) {
			formatter.VerboseLog("[%d/%d] %s (%s)", p.Processed+1, p.Total, p.CurrentFile, p.CurrentCollection)
		})
		defer unsubscribe()
	}

	result, err := scanner.ScanDirectory(assetsDir)
	if err != nil {
		return commandError(formatter, ErrCodeScan, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Indexed %d asset(s) in %dms\n", result.TotalAssets, result.ScanDurationMs)
	if len(result.CollectionsFound) > 0 {
		fmt.Fprintf(formatter.Writer, "Collections: %s\n", strings.Join(result.CollectionsFound, ", "))
	}
	types := make([]string, 0, len(result.AssetsByType))
	for assetType := range result.AssetsByType {
		types = append(types, assetType)
	}
	sort.Strings(types)
	for _, assetType := range types {
		fmt.Fprintf(formatter.Writer, "  %s: %d\n", assetType, result.AssetsByType[assetType])
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(formatter.Writer, "✗ %s\n", errMsg)
	}
	return nil
}
