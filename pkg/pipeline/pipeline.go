// Package pipeline runs the load → prepare → layout → render pipeline that
// the CLI commands share.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read a record file (JSON or TOML)
//  2. Prepare: apply display overrides, crop to a window, and split
//     features overflowing the sequence ends
//  3. Layout: assign levels and place blocks and labels
//  4. Render: write SVG, PNG, PDF, JSON or overlap-graph outputs
//
// Layouts and artifacts are cached by content hash through a [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "plasmid.toml",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages can also be run one at a time; see [Load], [Prepare],
// [Runner.LayoutWithCacheInfo] and [Runner.RenderWithCacheInfo].
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqview/pkg/cache"
	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/record"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultLevelPixels is the default height of one level in SVG output.
	DefaultLevelPixels = 24.0

	// DefaultPNGScale renders PNGs at 2x for high-DPI displays.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"      // overlap graph, DOT text
	FormatOverlaps = "overlaps" // overlap graph rendered to SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatOverlaps: true,
}

// FileExtension returns the file extension for a format.
func FileExtension(format string) string {
	if format == FormatOverlaps {
		return "overlaps.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. The toml tags let a
// config file supply the same settings.
type Options struct {
	// Load options
	Input string `json:"input,omitempty" toml:"-"`

	// Prepare options
	Window        *feature.Window `json:"window,omitempty" toml:"-"`
	Circular      bool            `json:"circular,omitempty" toml:"circular"`
	SplitOverflow bool            `json:"split_overflow,omitempty" toml:"split_overflow"`
	LevelHeight   float64         `json:"level_height,omitempty" toml:"level_height"`
	LabelsSpacing float64         `json:"labels_spacing,omitempty" toml:"labels_spacing"`
	Indexing      string          `json:"indexing,omitempty" toml:"indexing"`

	// Layout options
	Width     float64 `json:"width,omitempty" toml:"width"`
	CharWidth float64 `json:"char_width,omitempty" toml:"char_width"`
	NoLabels  bool    `json:"no_labels,omitempty" toml:"no_labels"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Title       string   `json:"title,omitempty" toml:"title"`
	Ruler       bool     `json:"ruler,omitempty" toml:"ruler"`
	LevelPixels float64  `json:"level_pixels,omitempty" toml:"level_pixels"`
	PNGScale    float64  `json:"png_scale,omitempty" toml:"png_scale"`

	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Record *record.Record `json:"-" toml:"-"` // used instead of Input when set
	Logger *log.Logger    `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the prepared record the layout was computed on.
	Record *record.Record

	// RecordHash is the content hash of the prepared record.
	RecordHash string

	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FeatureCount int
	LevelCount   int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // layout came from cache
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot, overlaps)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset options with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.CharWidth == 0 {
		o.CharWidth = layout.DefaultCharWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.LevelPixels == 0 {
		o.LevelPixels = DefaultLevelPixels
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call it after SetDefaults.
func (o *Options) Validate() error {
	if o.Input == "" && o.Record == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Width < 0 || o.LevelHeight < 0 || o.LabelsSpacing < 0 || o.CharWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sizes must not be negative")
	}
	switch o.Indexing {
	case "", record.IndexingBiopython, record.IndexingGenbank:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown indexing %q", o.Indexing)
	}
	if o.Window != nil && o.Window.Start >= o.Window.End {
		return errors.New(errors.ErrCodeOutOfBounds, "empty window: start %d is not before end %d", o.Window.Start, o.Window.End)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Circular:      o.Circular,
		SplitOverflow: o.SplitOverflow,
		LevelHeight:   o.LevelHeight,
		LabelsSpacing: o.LabelsSpacing,
		CharWidth:     o.CharWidth,
		Width:         o.Width,
		NoLabels:      o.NoLabels,
	}
	if o.Window != nil {
		k.Cropped = true
		k.CropStart, k.CropEnd = o.Window.Start, o.Window.End
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering. The JSON
// layout names its input file, so its key includes the input path.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		Ruler:       o.Ruler,
		LevelPixels: o.LevelPixels,
		PNGScale:    o.PNGScale,
	}
	if format == FormatJSON {
		k.Source = o.Input
	}
	return k
}
