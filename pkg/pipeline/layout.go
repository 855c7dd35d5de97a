package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/record"
)

// BuildLayout lays out rec with the layout options of opts.
func BuildLayout(rec *record.Record, opts Options) (layout.Layout, error) {
	var layoutOpts []layout.Option
	if opts.CharWidth > 0 {
		layoutOpts = append(layoutOpts, layout.WithCharWidth(opts.CharWidth))
	}
	if opts.NoLabels {
		layoutOpts = append(layoutOpts, layout.WithoutLabels())
	}
	return layout.Build(rec, opts.Width, layoutOpts...)
}

// marshalLayout encodes l without its record; the cache key already
// identifies the record.
func marshalLayout(l layout.Layout) ([]byte, error) {
	l.Record = nil
	return json.Marshal(l)
}

// unmarshalLayout decodes a cached layout and reattaches rec. It fails when
// the entry does not match rec.
func unmarshalLayout(data []byte, rec *record.Record) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, err
	}
	if len(l.Levels.ByFeature) != len(rec.Features) {
		return layout.Layout{}, errStaleLayout
	}
	l.Record = rec
	return l, nil
}
