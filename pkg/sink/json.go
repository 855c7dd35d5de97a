package sink

import (
	"encoding/json"

	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	source   string
	sequence bool
}

// WithJSONSource records the input file name in the output.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

// WithJSONSequence includes the record's sequence, when it has one.
func WithJSONSequence() JSONOption { return func(r *jsonRenderer) { r.sequence = true } }

type jsonOutput struct {
	Source         string        `json:"source,omitempty"`
	Span           [2]int        `json:"span"`
	SequenceLength int           `json:"sequence_length"`
	Sequence       string        `json:"sequence,omitempty"`
	Circular       bool          `json:"circular,omitempty"`
	Indexing       string        `json:"indexing"`
	MaxLevel       int           `json:"max_level"`
	MaxLabelLevel  int           `json:"max_label_level"`
	LevelHeight    float64       `json:"level_height"`
	Width          float64       `json:"width"`
	Height         float64       `json:"height"`
	Features       []jsonFeature `json:"features"`
	Labels         []jsonLabel   `json:"labels,omitempty"`
}

type jsonFeature struct {
	Index     int            `json:"index"`
	Label     string         `json:"label,omitempty"`
	Type      string         `json:"type,omitempty"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Strand    feature.Strand `json:"strand"`
	Level     int            `json:"level"`
	OpenLeft  bool           `json:"open_left,omitempty"`
	OpenRight bool           `json:"open_right,omitempty"`
	Color     string         `json:"color,omitempty"`
	Blocks    []jsonBlock    `json:"blocks"`
}

type jsonBlock struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	OpenLeft  bool    `json:"open_left,omitempty"`
	OpenRight bool    `json:"open_right,omitempty"`
}

type jsonLabel struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Level  int     `json:"level"`
	Inline bool    `json:"inline,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// RenderJSON exports the layout as a pretty-printed JSON document: the
// record span, one entry per feature with its level and blocks, and the
// label placements.
//
// It does not modify l and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	rec := l.Record
	start, end := rec.Span()
	out := jsonOutput{
		Source:         r.source,
		Span:           [2]int{start, end},
		SequenceLength: rec.SequenceLength,
		Circular:       rec.Circular,
		Indexing:       rec.Indexing,
		MaxLevel:       l.MaxLevel,
		MaxLabelLevel:  l.MaxLabelLevel,
		LevelHeight:    l.LevelHeight,
		Width:          l.Width,
		Height:         l.Height,
		Features:       buildJSONFeatures(l),
	}
	if r.sequence {
		out.Sequence = rec.Sequence
	}
	for _, lb := range l.Labels {
		out.Labels = append(out.Labels, jsonLabel{
			Index:  lb.FeatureIndex,
			Text:   lb.Text,
			Level:  lb.Level,
			Inline: lb.Inline,
			X:      lb.X,
			Y:      lb.Y,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONFeatures(l layout.Layout) []jsonFeature {
	features := make([]jsonFeature, len(l.Record.Features))
	for i, f := range l.Record.Features {
		features[i] = jsonFeature{
			Index:     i,
			Label:     f.Label,
			Type:      f.Type,
			Start:     f.Start,
			End:       f.End,
			Strand:    f.Strand,
			Level:     l.Levels.ByFeature[i],
			OpenLeft:  f.OpenLeft,
			OpenRight: f.OpenRight,
			Color:     f.Style.Color,
			Blocks:    []jsonBlock{},
		}
	}
	for _, b := range l.Blocks {
		jf := &features[b.FeatureIndex]
		jf.Blocks = append(jf.Blocks, jsonBlock{
			X:         b.Left,
			Y:         b.Bottom,
			Width:     b.Width(),
			Height:    b.Height(),
			OpenLeft:  b.OpenLeft,
			OpenRight: b.OpenRight,
		})
	}
	return features
}
