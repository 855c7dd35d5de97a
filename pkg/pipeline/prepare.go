package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/seqview/pkg/cache"
	seqio "github.com/matzehuels/seqview/pkg/io"
	"github.com/matzehuels/seqview/pkg/observability"
	"github.com/matzehuels/seqview/pkg/record"
)

// Load reads the record named by opts.Input, or returns opts.Record when it
// is set.
func Load(ctx context.Context, opts Options) (*record.Record, error) {
	if opts.Record != nil {
		return opts.Record, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	rec, err := seqio.ImportFile(opts.Input)

	n := 0
	if rec != nil {
		n = len(rec.Features)
	}
	hooks.OnLoadComplete(ctx, opts.Input, n, time.Since(start), err)
	return rec, err
}

// Prepare returns a copy of rec with the display overrides of opts applied,
// cropped to opts.Window and, with opts.SplitOverflow, with overflowing
// features split circularly. rec is not modified.
func Prepare(rec *record.Record, opts Options) (*record.Record, error) {
	out := rec.Clone()
	if opts.Circular {
		out.Circular = true
	}
	if opts.LevelHeight > 0 {
		out.FeatureLevelHeight = opts.LevelHeight
	}
	if opts.LabelsSpacing > 0 {
		out.LabelsSpacing = opts.LabelsSpacing
	}
	if opts.Indexing != "" {
		out.Indexing = opts.Indexing
	}

	if opts.Window != nil {
		cropped, err := out.Crop(*opts.Window)
		if err != nil {
			return nil, err
		}
		out = cropped
	}
	if opts.SplitOverflow {
		out.SplitOverflowingFeaturesCircularly()
	}
	return out, out.Validate()
}

// RecordHash returns the content hash of rec's JSON document.
func RecordHash(rec *record.Record) (string, error) {
	var buf bytes.Buffer
	if err := seqio.WriteJSON(&buf, rec); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
