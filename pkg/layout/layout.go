package layout

import (
	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/record"
)

// DefaultFrameWidth is the frame width, in pixels, used to scale label boxes
// when Build is given a non-positive width.
const DefaultFrameWidth = 800.0

// Label is a placed feature label.
type Label struct {
	FeatureIndex int
	Text         string
	Level        int     // label level; -1 for inline labels
	Inline       bool    // drawn inside the feature block
	X, Y         float64 // anchor in plot coordinates
	Left, Right  float64 // box extent; equal to X for inline labels
}

// Layout is the result of laying out a record.
type Layout struct {
	Record *record.Record
	Levels Levels
	Blocks []Block
	Labels []Label

	// MaxLevel is the highest feature level; MaxLabelLevel the highest level
	// used by feature or label rows.
	MaxLevel      int
	MaxLabelLevel int

	FrameWidth  float64 // pixels
	Width       float64 // sequence units
	Height      float64 // level-height units
	LevelHeight float64
}

// Option configures [Build].
type Option func(*config)

type config struct {
	charWidth float64
	noLabels  bool
}

// WithCharWidth sets the character width as a fraction of the font size
// (default [DefaultCharWidth]).
func WithCharWidth(w float64) Option { return func(c *config) { c.charWidth = w } }

// WithoutLabels skips the label pass.
func WithoutLabels() Option { return func(c *config) { c.noLabels = true } }

// Build assigns levels to the features of rec and computes their blocks and
// label placements. frameWidth is the target drawing width in pixels.
//
// Build does not modify rec. On a circular record an origin-spanning feature
// is drawn as two blocks, [Start, L) and [0, End), open at the origin.
func Build(rec *record.Record, frameWidth float64, opts ...Option) (Layout, error) {
	if rec == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	cfg := config{charWidth: DefaultCharWidth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if frameWidth <= 0 {
		frameWidth = DefaultFrameWidth
	}

	levels, err := AssignLevels(rec)
	if err != nil {
		return Layout{}, err
	}

	h := rec.FeatureLevelHeight
	l := Layout{
		Record:        rec,
		Levels:        levels,
		MaxLevel:      levels.Max,
		MaxLabelLevel: levels.Max,
		FrameWidth:    frameWidth,
		Width:         float64(rec.SequenceLength),
		LevelHeight:   h,
	}
	l.Blocks = buildBlocks(rec, levels)

	if !cfg.noLabels {
		scale := float64(rec.SequenceLength) / frameWidth
		boxes, inline := LabelBoxes(rec, scale, cfg.charWidth)
		labelLevels := AssignLabelLevels(boxes, levels.Max+1)
		l.Labels = buildLabels(rec, levels, boxes, inline, labelLevels)
		l.MaxLabelLevel = max(l.MaxLabelLevel, labelLevels.Max)
	}

	l.Height = float64(l.MaxLabelLevel+1) * h
	return l, nil
}

func buildBlocks(rec *record.Record, levels Levels) []Block {
	lo, hi := rec.Span()
	h := rec.FeatureLevelHeight
	blocks := make([]Block, 0, len(rec.Features))
	for i, f := range rec.Features {
		level := levels.ByFeature[i]
		base := Block{
			FeatureIndex: i,
			Level:        level,
			Bottom:       float64(level) * h,
			Top:          float64(level+1) * h,
			OpenLeft:     f.OpenLeft,
			OpenRight:    f.OpenRight,
		}
		if rec.Circular && f.SpansOrigin() {
			tail, head := base, base
			tail.Left, tail.Right = float64(f.Start), float64(hi)
			tail.OpenRight = true
			head.Left, head.Right = float64(lo), float64(f.End)
			head.OpenLeft = true
			blocks = append(blocks, tail, head)
			continue
		}
		base.Left, base.Right = float64(f.Start), float64(f.End)
		blocks = append(blocks, base)
	}
	return blocks
}

func buildLabels(rec *record.Record, levels Levels, boxes []Box, inline []int, ll LabelLevels) []Label {
	labels := make([]Label, 0, len(boxes)+len(inline))
	for _, i := range inline {
		f := rec.Features[i]
		x := f.XCenter()
		if rec.Circular {
			x = f.XCenterCircular(rec.SequenceLength)
		}
		_, y := rec.CoordinatesInPlot(x, levels.ByFeature[i])
		labels = append(labels, Label{
			FeatureIndex: i,
			Text:         f.Label,
			Level:        -1,
			Inline:       true,
			X:            x,
			Y:            y + rec.FeatureLevelHeight/2,
			Left:         x,
			Right:        x,
		})
	}
	for _, b := range boxes {
		level := ll.ByFeature[b.FeatureIndex]
		x, y := rec.CoordinatesInPlot(b.X, level)
		labels = append(labels, Label{
			FeatureIndex: b.FeatureIndex,
			Text:         rec.Features[b.FeatureIndex].Label,
			Level:        level,
			X:            x,
			Y:            y + rec.AnnotationHeight()/2,
			Left:         b.Left,
			Right:        b.Right,
		})
	}
	return labels
}

// FeatureLevel returns the level of feature i and whether i is valid.
func (l Layout) FeatureLevel(i int) (int, bool) {
	if i < 0 || i >= len(l.Levels.ByFeature) {
		return 0, false
	}
	return l.Levels.ByFeature[i], true
}
