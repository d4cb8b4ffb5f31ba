package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients/uniprot"
	"github.com/protviz/protviz/pkg/coord"
	"github.com/protviz/protviz/pkg/figure"
	"github.com/protviz/protviz/pkg/figure/sink"
	"github.com/protviz/protviz/pkg/observability"
	"github.com/protviz/protviz/pkg/track"
)

// Runner executes the pipeline with caching. It is stateless apart from its
// collaborators, so one Runner can serve concurrent runs with different
// options.
type Runner struct {
	Sources Sources
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables artifact caching, a nil
// keyer selects the default key scheme and a nil logger the default logger.
func NewRunner(src Sources, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Sources: src, Cache: c, Keyer: keyer, Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Protein is the resolved UniProt metadata.
	Protein *uniprot.ProteinInfo

	// Figure is the composed draw list.
	Figure *figure.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists per-record problems that did not stop the run:
	// rejected source records and unavailable sources.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FetchTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
	Annotations int
	Rejected    int
	CacheHits   int
}

// Execute runs the complete fetch → normalize → compose → render pipeline.
// An unresolvable protein or an invalid view window fails the run; a missing
// data source or a malformed source record only produces a warning.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	fetchStart := time.Now()
	observability.Pipeline().OnFetchStart(ctx, "uniprot", opts.Accession)
	protein, err := r.Sources.UniProt.FetchProtein(ctx, opts.Accession, opts.Refresh)
	observability.Pipeline().OnFetchComplete(ctx, "uniprot", opts.Accession, 1,
		time.Since(fetchStart), err)
	if err != nil {
		return nil, fmt.Errorf("resolve protein %s: %w", opts.Accession, err)
	}
	result.Protein = protein

	tracks := r.buildTracks(ctx, opts, protein.Length, result)
	result.Stats.FetchTime = time.Since(fetchStart)
	logger.Info("fetched annotations",
		"accession", protein.Accession,
		"length", protein.Length,
		"annotations", result.Stats.Annotations,
		"rejected", result.Stats.Rejected,
		"duration", result.Stats.FetchTime)

	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, opts.Accession, len(tracks))
	fig, err := figure.Compose(tracks, protein.Length,
		figure.WithWindow(coord.Window{Start: opts.ViewStart, End: opts.ViewEnd}),
		figure.WithWidth(opts.Width),
		figure.WithProtein(protein.Accession),
	)
	observability.Pipeline().OnComposeComplete(ctx, opts.Accession, time.Since(composeStart), err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Figure = fig
	result.Stats.ComposeTime = time.Since(composeStart)
	logger.Info("composed figure",
		"tracks", len(tracks),
		"primitives", len(fig.Prims),
		"duration", result.Stats.ComposeTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	err = r.render(ctx, fig, opts, result)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// buildTracks fetches and normalizes the data behind each requested track.
// Source failures degrade to empty tracks with a warning so one unavailable
// upstream does not take the whole figure down.
func (r *Runner) buildTracks(ctx context.Context, opts Options, seqLen int, result *Result) []track.Track {
	mode := track.Mode(opts.Mode)
	var tracks []track.Track

	for _, name := range opts.Tracks {
		switch name {
		case TrackAxis:
			tracks = append(tracks, track.NewAxisTrack(seqLen))

		case TrackPDB:
			recs, err := fetchRecords(ctx, "pdbe", opts,
				r.Sources.PDBe.FetchCoverage)
			r.warnFetch(result, "pdb coverage", err)
			pdbAnns, pdbErrs := annotation.NormalizePDBCoverage(recs, seqLen)
			anns := r.normalize(ctx, "pdbe", result, pdbAnns, pdbErrs)
			tracks = append(tracks, track.NewPDBTrack(anns, mode))

		case TrackTED:
			recs, err := fetchRecords(ctx, "ted", opts,
				r.Sources.TED.FetchSummary)
			r.warnFetch(result, "ted domains", err)
			tedAnns, tedErrs := annotation.NormalizeTED(recs, seqLen)
			anns := r.normalize(ctx, "ted", result, tedAnns, tedErrs)
			tracks = append(tracks, track.NewTEDTrack(anns, mode))

		case TrackLigands:
			recs, err := fetchRecords(ctx, "pdbe", opts,
				r.Sources.PDBe.FetchLigands)
			r.warnFetch(result, "ligand sites", err)
			ligAnns, ligErrs := annotation.NormalizeLigands(recs, seqLen)
			anns := r.normalize(ctx, "pdbe", result, ligAnns, ligErrs)
			tracks = append(tracks, track.NewLigandTrack(anns, mode))

		case TrackAlphaFold:
			plddtRecs, err := fetchRecords(ctx, "afdb", opts,
				r.Sources.AFDB.FetchPLDDT)
			r.warnFetch(result, "plddt", err)
			amRecs, err := fetchRecords(ctx, "afdb", opts,
				r.Sources.AFDB.FetchAlphaMissense)
			r.warnFetch(result, "alphamissense", err)
			plddtAnns, plddtErrs := annotation.NormalizePLDDT(plddtRecs, seqLen)
			plddt := r.normalize(ctx, "afdb", result, plddtAnns, plddtErrs)
			amAnns, amErrs := annotation.NormalizeAlphaMissense(amRecs, seqLen)
			missense := r.normalize(ctx, "afdb", result, amAnns, amErrs)
			tracks = append(tracks, track.NewAlphaFoldTrack(plddt, missense))

		case TrackInterPro:
			for _, db := range opts.InterProDBs {
				recs, err := fetchRecords(ctx, "interpro", opts,
					func(ctx context.Context, acc string, refresh bool) ([]annotation.InterProRecord, error) {
						return r.Sources.InterPro.FetchMatches(ctx, db, acc, refresh)
					})
				r.warnFetch(result, db+" signatures", err)
				ipAnns, ipErrs := annotation.NormalizeInterPro(recs, db, seqLen)
				anns := r.normalize(ctx, "interpro", result, ipAnns, ipErrs)
				tracks = append(tracks, track.NewInterProTrack(strings.ToUpper(db), anns, mode))
			}

		case TrackCustom:
			custAnns, custErrs := annotation.NormalizeCustom(opts.Custom, seqLen)
			anns := r.normalize(ctx, "custom", result, custAnns, custErrs)
			label := opts.CustomLabel
			if label == "" {
				label = "Custom"
			}
			tracks = append(tracks, track.NewCustomTrack(label, anns))
		}
	}
	return tracks
}

// fetchRecords runs one source fetch with observability events. On failure
// the caller records a warning and proceeds with no records.
func fetchRecords[T any](ctx context.Context, source string, opts Options,
	fetch func(context.Context, string, bool) ([]T, error)) ([]T, error) {
	start := time.Now()
	observability.Pipeline().OnFetchStart(ctx, source, opts.Accession)
	recs, err := fetch(ctx, opts.Accession, opts.Refresh)
	observability.Pipeline().OnFetchComplete(ctx, source, opts.Accession,
		len(recs), time.Since(start), err)
	return recs, err
}

// normalize records the batch outcome and folds rejected records into the
// run's warnings.
func (r *Runner) normalize(ctx context.Context, source string, result *Result,
	anns []annotation.Annotation, recErrs []annotation.RecordError) []annotation.Annotation {
	observability.Pipeline().OnNormalizeComplete(ctx, source, len(anns), len(recErrs))
	result.Stats.Annotations += len(anns)
	result.Stats.Rejected += len(recErrs)
	for _, re := range recErrs {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", source, re))
	}
	return anns
}

func (r *Runner) warnFetch(result *Result, what string, err error) {
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s unavailable: %v", what, err))
	}
}

// render produces the requested formats. The SVG is rendered once; PNG and
// PDF derive from it, with converted artifacts cached by figure content.
func (r *Runner) render(ctx context.Context, fig *figure.Figure, opts Options, result *Result) error {
	svg := sink.RenderSVG(fig)
	figHash := cache.Hash(svg)

	for _, format := range opts.Formats {
		if format == FormatSVG {
			result.Artifacts[FormatSVG] = svg
			continue
		}

		key := r.Keyer.ArtifactKey(figHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, _ := r.Cache.Get(ctx, key); hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Stats.CacheHits++
				result.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		var data []byte
		var err error
		switch format {
		case FormatPNG:
			data, err = sink.ToPNG(ctx, svg, opts.Scale)
		case FormatPDF:
			data, err = sink.ToPDF(ctx, svg)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		result.Artifacts[format] = data
		if r.Cache.Set(ctx, key, data, 0) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return nil
}
