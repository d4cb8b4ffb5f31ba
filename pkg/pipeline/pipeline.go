// Package pipeline provides the core visualization pipeline.
//
// It implements the complete fetch → normalize → compose → render flow used
// by both the CLI and the HTTP server. Centralizing this logic keeps behavior
// consistent across entry points.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(pipeline.NewSources(store, 24*time.Hour), store, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Accession: "P69905",
//	    Tracks:    []string{"pdb", "ted", "alphafold", "axis"},
//	    Formats:   []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/errors"
	"github.com/protviz/protviz/pkg/track"
)

// Default values shared by CLI and server.
const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 900.0

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultCacheTTL is how long upstream responses stay cached.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultInterProDB is queried when the interpro track is requested
	// without an explicit database list.
	DefaultInterProDB = "pfam"
)

// Output format constants.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Track name constants.
const (
	TrackAxis      = "axis"
	TrackPDB       = "pdb"
	TrackTED       = "ted"
	TrackLigands   = "ligands"
	TrackAlphaFold = "alphafold"
	TrackInterPro  = "interpro"
	TrackCustom    = "custom"
)

// ValidTracks is the set of supported track names.
var ValidTracks = map[string]bool{
	TrackAxis:      true,
	TrackPDB:       true,
	TrackTED:       true,
	TrackLigands:   true,
	TrackAlphaFold: true,
	TrackInterPro:  true,
	TrackCustom:    true,
}

// DefaultTracks is the track selection used when none is given. The axis
// always comes last so it renders at the bottom of the stack.
var DefaultTracks = []string{TrackPDB, TrackTED, TrackAlphaFold, TrackAxis}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Accession selects the protein.
	Accession string `json:"accession"`

	// ViewStart and ViewEnd restrict rendering to a sub-range; both zero
	// means the full sequence.
	ViewStart int `json:"view_start,omitempty"`
	ViewEnd   int `json:"view_end,omitempty"`

	// Tracks selects and orders the tracks, top to bottom.
	Tracks []string `json:"tracks,omitempty"`

	// Mode selects full or collapse layout for interval tracks.
	Mode string `json:"mode,omitempty"`

	// InterProDBs lists member databases for the interpro track.
	InterProDBs []string `json:"interpro_dbs,omitempty"`

	// Custom holds user-authored annotations for the custom track.
	Custom      []annotation.CustomRecord `json:"custom,omitempty"`
	CustomLabel string                    `json:"custom_label,omitempty"`

	// Render options.
	Width   float64  `json:"width,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses all caches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateTrack checks that a track name is valid.
func ValidateTrack(name string) error {
	if !ValidTracks[name] {
		return errors.New(errors.ErrCodeInvalidTrack,
			"invalid track %q (must be one of: axis, pdb, ted, ligands, alphafold, interpro, custom)", name)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateAccession(o.Accession); err != nil {
		return err
	}
	if o.Tracks == nil {
		o.Tracks = DefaultTracks
	}
	for _, name := range o.Tracks {
		if err := ValidateTrack(name); err != nil {
			return err
		}
	}
	switch track.Mode(o.Mode) {
	case "":
		o.Mode = string(track.ModeFull)
	case track.ModeFull, track.ModeCollapse:
	default:
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode %q (must be full or collapse)", o.Mode)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.InterProDBs) == 0 {
		o.InterProDBs = []string{DefaultInterProDB}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FigureKeyOpts returns cache key options identifying the composed figure.
func (o *Options) FigureKeyOpts() cache.FigureKeyOpts {
	return cache.FigureKeyOpts{
		ViewStart: o.ViewStart,
		ViewEnd:   o.ViewEnd,
		Width:     o.Width,
		Tracks:    fmt.Sprint(o.Tracks, o.InterProDBs),
		Mode:      o.Mode,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Scale: o.Scale}
}
