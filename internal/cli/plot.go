package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/observability"
	"github.com/protviz/protviz/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output      string  // output file path (or base path for multiple formats)
	viewStart   int     // first residue of the view window (0 = full sequence)
	viewEnd     int     // last residue of the view window (0 = full sequence)
	mode        string  // layout mode: "full" or "collapse"
	width       float64 // canvas width in pixels
	scale       float64 // PNG resolution multiplier
	refresh     bool    // bypass caches and refetch everything
	customFile  string  // TOML file with user annotations
	customLabel string  // caption override for the custom track
	store       storeFlags
}

// newPlotCmd creates the plot command for rendering annotation figures.
// It fetches the annotations behind each requested track, composes the
// figure, and writes one file per output format.
func newPlotCmd() *cobra.Command {
	var tracksStr, formatsStr, interproStr string
	opts := plotOpts{
		width: pipeline.DefaultWidth,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "plot [accession]",
		Short: "Render annotation tracks for a protein",
		Long: `Render annotation tracks for a protein.

The plot command resolves a UniProt accession, fetches the annotations behind
each requested track (experimental structure coverage, consensus domains,
predicted-model scores, signature matches), and renders them as a stacked
track figure in SVG, PNG, or PDF format.

Results are cached locally for faster subsequent runs. When no accession is
given, an interactive prompt asks for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accession := ""
			if len(args) > 0 {
				accession = args[0]
			} else {
				var err error
				if accession, err = promptAccession(); err != nil {
					return err
				}
			}

			runOpts := pipeline.Options{
				Accession:   accession,
				ViewStart:   opts.viewStart,
				ViewEnd:     opts.viewEnd,
				Tracks:      splitList(tracksStr),
				Mode:        opts.mode,
				InterProDBs: splitList(interproStr),
				Width:       opts.width,
				Formats:     splitList(formatsStr),
				Scale:       opts.scale,
				Refresh:     opts.refresh,
			}
			if opts.customFile != "" {
				custom, label, err := loadCustomFile(opts.customFile)
				if err != nil {
					return err
				}
				runOpts.Custom = custom
				if opts.customLabel == "" {
					opts.customLabel = label
				}
				runOpts.CustomLabel = opts.customLabel
				if !containsTrack(runOpts.Tracks, pipeline.TrackCustom) {
					runOpts.Tracks = appendCustomTrack(runOpts.Tracks)
				}
			}
			return runPlot(cmd.Context(), runOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&opts.viewStart, "start", 0, "first residue of the view window")
	cmd.Flags().IntVar(&opts.viewEnd, "end", 0, "last residue of the view window")
	cmd.Flags().StringVarP(&tracksStr, "tracks", "t", "", "track(s), top to bottom: pdb, ted, ligands, alphafold, interpro, custom, axis (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "interval layout: full (default), collapse")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and refetch upstream data")
	cmd.Flags().StringVar(&interproStr, "interpro-db", "", "InterPro member database(s) for the interpro track (comma-separated)")
	cmd.Flags().StringVar(&opts.customFile, "custom", "", "TOML file with user annotations for the custom track")
	cmd.Flags().StringVar(&opts.customLabel, "custom-label", "", "caption for the custom track")
	opts.store.addFlags(cmd)

	return cmd
}

// runPlot executes the pipeline and writes the rendered artifacts.
func runPlot(ctx context.Context, runOpts pipeline.Options, opts *plotOpts) error {
	logger := loggerFromContext(ctx)

	store, err := opts.store.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(pipeline.NewSources(store, pipeline.DefaultCacheTTL), store, nil, logger)
	runOpts.Logger = logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting %s...", runOpts.Accession))
	observability.SetPipelineHooks(stageHooks{spinner: spinner})
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(ctx, runOpts)
	if err != nil {
		spinner.StopWithError("Plot failed")
		return fmt.Errorf("plot %s: %w", runOpts.Accession, err)
	}
	spinner.Stop()

	printSuccess("Plotted %s (%s, %d aa)", result.Protein.Accession, result.Protein.Name, result.Protein.Length)
	printStats(result.Stats.Annotations, result.Stats.Rejected, len(runOpts.Tracks), result.Stats.CacheHits > 0)
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	for _, format := range runOpts.Formats {
		path := artifactPath(opts.output, result.Protein.Accession, format, len(runOpts.Formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if runOpts.ViewStart == 0 && runOpts.ViewEnd == 0 {
		printNewline()
		printNextStep("Zoom into a region", fmt.Sprintf("protviz plot %s --start 1 --end 100", result.Protein.Accession))
	}
	return nil
}

// artifactPath decides where one rendered format lands. An explicit output
// path wins for a single format; with multiple formats it acts as a base path
// and the extension follows the format.
func artifactPath(output, accession, format string, formats int) string {
	if output == "" {
		return accession + "_plot." + format
	}
	if formats == 1 {
		return output
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + "." + format
}

// customFile is the TOML schema for user annotations:
//
//	label = "My annotations"
//
//	[[annotation]]
//	start = 10
//	end = 30
//	row_label = "Domains"
//	label = "binding"
type customFile struct {
	Label       string                    `toml:"label"`
	Annotations []annotation.CustomRecord `toml:"annotation"`
}

// loadCustomFile reads user annotations from a TOML file.
func loadCustomFile(path string) ([]annotation.CustomRecord, string, error) {
	var file customFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, "", fmt.Errorf("load annotations %s: %w", path, err)
	}
	if len(file.Annotations) == 0 {
		return nil, "", fmt.Errorf("load annotations %s: no [[annotation]] entries", path)
	}
	return file.Annotations, file.Label, nil
}

// splitList parses a comma-separated flag value. Empty means "use defaults".
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func containsTrack(tracks []string, name string) bool {
	for _, t := range tracks {
		if t == name {
			return true
		}
	}
	return false
}

// appendCustomTrack adds the custom track to an explicit selection, or to the
// default selection just above the axis.
func appendCustomTrack(tracks []string) []string {
	if tracks == nil {
		tracks = append(tracks, pipeline.DefaultTracks...)
	}
	if n := len(tracks); n > 0 && tracks[n-1] == pipeline.TrackAxis {
		return append(tracks[:n-1:n-1], pipeline.TrackCustom, pipeline.TrackAxis)
	}
	return append(tracks, pipeline.TrackCustom)
}
