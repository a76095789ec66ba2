package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/export"
	"github.com/morganbevy/editor/internal/level"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Formats []string
	OutDir  string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <level.json>",
		Short: "Export a saved level to engine formats",
		Long: `Export a saved level file to one or more engine-consumable formats.

Supported formats: json (level descriptor with export metadata),
ron (Bevy-compatible scene), rust (generated spawn code). Formats are
exported independently; a failure in one does not abort the others.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Formats, "formats", "f", []string{"json"}, "formats to export (json|ron|rust)")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "exports", "output directory")

	return cmd
}

func runExport(opts *ExportOptions, levelPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	lvl, err := level.Load(levelPath)
	if err != nil {
		return commandError(formatter, ErrCodeBadInput, fmt.Sprintf("loading level: %v", err))
	}

	formats, err := parseFormats(opts.Formats)
	if err != nil {
		return commandError(formatter, ErrCodeBadInput, err.Error())
	}

	formatter.VerboseLog("Exporting %q (%d objects) as %s", lvl.Name, len(lvl.Objects), strings.Join(opts.Formats, ", "))

	result, err := export.New().ExportMultiFormat(lvl, formats, opts.OutDir)
	if err != nil {
		return commandError(formatter, ErrCodeExport, err.Error())
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printExportResult(formatter.Writer, result)
	}

	if len(result.Errors) > 0 {
		return NewExitError(ExitFailure, strings.Join(result.Errors, "; "))
	}
	return nil
}

// printExportResult renders an export result as human-readable text.
func printExportResult(w io.Writer, result export.Result) {
	for _, f := range result.ExportedFiles {
		if f.Success {
			fmt.Fprintf(w, "✓ %s → %s (%d bytes)\n", f.Format, f.FilePath, f.FileSize)
		} else {
			fmt.Fprintf(w, "✗ %s → %s\n", f.Format, f.FilePath)
		}
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "! %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "✗ %s\n", errMsg)
	}
	fmt.Fprintf(w, "%d object(s) in %dms\n", result.TotalObjects, result.ExportTimeMs)
}
