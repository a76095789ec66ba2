package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morganbevy/editor/internal/export"
	"github.com/morganbevy/editor/internal/generate"
	"github.com/morganbevy/editor/internal/level"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Width         int
	Height        int
	MinRoomSize   int
	MaxRoomSize   int
	CorridorWidth int
	Theme         string
	Seed          uint64
	SeedSet       bool
	Output        string
	ExportFormats []string
	ExportDir     string
}

// GenerateSummary is the success payload for the generate command.
type GenerateSummary struct {
	LevelID     string          `json:"level_id"`
	Name        string          `json:"name"`
	ObjectCount int             `json:"object_count"`
	Seed        uint64          `json:"seed"`
	Theme       string          `json:"theme"`
	OutputPath  string          `json:"output_path,omitempty"`
	Export      *export.Result  `json:"export,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a level with the BSP dungeon generator",
		Long: `Generate a level by binary-space-partition subdivision.

Rooms are carved into a grid, connected by L-shaped corridors, and
tiled with meshes and materials from the chosen theme. The same seed
always produces the same layout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SeedSet = cmd.Flags().Changed("seed")
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 48, "grid width in tiles")
	cmd.Flags().IntVar(&opts.Height, "height", 48, "grid depth in tiles")
	cmd.Flags().IntVar(&opts.MinRoomSize, "min-room", 5, "minimum room side length")
	cmd.Flags().IntVar(&opts.MaxRoomSize, "max-room", 12, "maximum room side length")
	cmd.Flags().IntVar(&opts.CorridorWidth, "corridor-width", 1, "corridor width in tiles")
	cmd.Flags().StringVar(&opts.Theme, "theme", "dungeon", fmt.Sprintf("tile theme (%s)", strings.Join(generate.ThemeIDs(), "|")))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generation seed (random when omitted)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the level JSON to this path")
	cmd.Flags().StringSliceVar(&opts.ExportFormats, "export", nil, "also export the level (json|ron|rust)")
	cmd.Flags().StringVar(&opts.ExportDir, "export-dir", "exports", "directory for exported files")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	params := generate.Params{
		Width:         opts.Width,
		Height:        opts.Height,
		Depth:         3,
		MinRoomSize:   opts.MinRoomSize,
		MaxRoomSize:   opts.MaxRoomSize,
		CorridorWidth: opts.CorridorWidth,
		Theme:         opts.Theme,
	}
	if opts.SeedSet {
		seed := opts.Seed
		params.Seed = &seed
	}

	formatter.VerboseLog("Generating %dx%d level with theme %q", params.Width, params.Height, params.Theme)

	lvl, err := generate.NewGenerator().Generate(params)
	if err != nil {
		return commandError(formatter, ErrCodeGenerate, err.Error())
	}

	summary := GenerateSummary{
		LevelID:     lvl.ID,
		Name:        lvl.Name,
		ObjectCount: len(lvl.Objects),
		Theme:       opts.Theme,
	}
	if lvl.GenerationSeed != nil {
		summary.Seed = *lvl.GenerationSeed
	}

	if opts.Output != "" {
		if err := level.Save(lvl, opts.Output); err != nil {
			return commandError(formatter, ErrCodeGenerate, fmt.Sprintf("writing level file: %v", err))
		}
		summary.OutputPath = opts.Output
	}

	if len(opts.ExportFormats) > 0 {
		formats, err := parseFormats(opts.ExportFormats)
		if err != nil {
			return commandError(formatter, ErrCodeBadInput, err.Error())
		}
		result, err := export.New().ExportMultiFormat(lvl, formats, opts.ExportDir)
		if err != nil {
			return commandError(formatter, ErrCodeExport, err.Error())
		}
		summary.Export = &result
		if len(result.Errors) > 0 {
			_ = outputGenerateSuccess(formatter, summary)
			return NewExitError(ExitFailure, strings.Join(result.Errors, "; "))
		}
	}

	return outputGenerateSuccess(formatter, summary)
}

func outputGenerateSuccess(formatter *OutputFormatter, summary GenerateSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Generated %q: %d object(s), seed %d\n",
		summary.Name, summary.ObjectCount, summary.Seed)
	if summary.OutputPath != "" {
		fmt.Fprintf(formatter.Writer, "Wrote level to %s\n", summary.OutputPath)
	}
	if summary.Export != nil {
		printExportResult(formatter.Writer, *summary.Export)
	}
	return nil
}

// parseFormats converts flag values into export formats, rejecting unknowns.
func parseFormats(names []string) ([]export.Format, error) {
	formats := make([]export.Format, 0, len(names))
	for _, name := range names {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
