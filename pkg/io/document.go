package io

import (
	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/record"
)

type document struct {
	SequenceLength     int             `json:"sequence_length" toml:"sequence_length"`
	Sequence           string          `json:"sequence,omitempty" toml:"sequence,omitempty"`
	FirstIndex         int             `json:"first_index,omitempty" toml:"first_index,omitempty"`
	Circular           bool            `json:"circular,omitempty" toml:"circular,omitempty"`
	FeatureLevelHeight float64         `json:"feature_level_height,omitempty" toml:"feature_level_height,omitempty"`
	Indexing           string          `json:"indexing,omitempty" toml:"indexing,omitempty"`
	LabelsSpacing      float64         `json:"labels_spacing,omitempty" toml:"labels_spacing,omitempty"`
	Features           []featureRecord `json:"features" toml:"features"`
}

type featureRecord struct {
	Start     int            `json:"start" toml:"start"`
	End       int            `json:"end" toml:"end"`
	Strand    feature.Strand `json:"strand" toml:"strand,omitempty"`
	Label     string         `json:"label,omitempty" toml:"label,omitempty"`
	Type      string         `json:"type,omitempty" toml:"type,omitempty"`
	OpenLeft  bool           `json:"open_left,omitempty" toml:"open_left,omitempty"`
	OpenRight bool           `json:"open_right,omitempty" toml:"open_right,omitempty"`
	Data      map[string]any `json:"data,omitempty" toml:"data,omitempty"`
	feature.Style
}

func (d document) toRecord() (*record.Record, error) {
	fs := make([]feature.Feature, len(d.Features))
	for i, fr := range d.Features {
		f := feature.New(fr.Start, fr.End, fr.Strand, fr.Label)
		if fr.Type != "" {
			f.Type = fr.Type
		}
		f.Style = withStyleDefaults(fr.Style)
		f.OpenLeft, f.OpenRight = fr.OpenLeft, fr.OpenRight
		f.Data = fr.Data
		fs[i] = f
	}

	opts := []record.Option{
		record.WithFirstIndex(d.FirstIndex),
		record.WithLevelHeight(d.FeatureLevelHeight),
		record.WithIndexing(d.Indexing),
		record.WithLabelsSpacing(d.LabelsSpacing),
	}
	if d.Sequence != "" {
		opts = append(opts, record.WithSequence(d.Sequence))
	}
	if d.Circular {
		opts = append(opts, record.WithCircular())
	}
	return record.New(d.SequenceLength, fs, opts...)
}

func fromRecord(rec *record.Record) document {
	d := document{
		SequenceLength:     rec.SequenceLength,
		Sequence:           rec.Sequence,
		FirstIndex:         rec.FirstIndex,
		Circular:           rec.Circular,
		FeatureLevelHeight: rec.FeatureLevelHeight,
		Indexing:           rec.Indexing,
		LabelsSpacing:      rec.LabelsSpacing,
		Features:           make([]featureRecord, len(rec.Features)),
	}
	for i, f := range rec.Features {
		d.Features[i] = featureRecord{
			Start:     f.Start,
			End:       f.End,
			Strand:    f.Strand,
			Label:     f.Label,
			Type:      f.Type,
			OpenLeft:  f.OpenLeft,
			OpenRight: f.OpenRight,
			Data:      f.Data,
			Style:     f.Style,
		}
	}
	return d
}

// withStyleDefaults fills the zero fields of s from feature.DefaultStyle.
func withStyleDefaults(s feature.Style) feature.Style {
	def := feature.DefaultStyle()
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.LineColor == "" {
		s.LineColor = def.LineColor
	}
	if s.Thickness == 0 {
		s.Thickness = def.Thickness
	}
	if s.LineWidth == 0 {
		s.LineWidth = def.LineWidth
	}
	if s.BoxColor == "" {
		s.BoxColor = def.BoxColor
	}
	if s.BoxLineWidth == 0 {
		s.BoxLineWidth = def.BoxLineWidth
	}
	if s.FontSize == 0 {
		s.FontSize = def.FontSize
	}
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	return s
}
