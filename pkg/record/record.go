// Package record holds an ordered set of features over a sequence of known
// length.
//
// A [Record] owns its features exclusively: [Record.Crop] and [Record.Clone]
// return new records with new feature copies. The only mutating operation is
// [Record.SplitOverflowingFeaturesCircularly], which rewrites the feature
// slice in place and must not run concurrently on the same record.
package record

import (
	"slices"

	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/feature"
)

// Indexing conventions for displayed positions.
const (
	IndexingBiopython = "biopython" // zero-based
	IndexingGenbank   = "genbank"   // one-based
)

// Defaults applied by [New].
const (
	DefaultLevelHeight   = 1.0
	DefaultLabelsSpacing = 8.0
)

// Record is a set of features on one sequence.
type Record struct {
	SequenceLength int
	Sequence       string // optional
	FirstIndex     int    // coordinate of the first sequence position
	Circular       bool
	Features       []feature.Feature

	FeatureLevelHeight float64
	Indexing           string
	LabelsSpacing      float64 // label padding, in pixels
}

// Option configures a Record built by [New].
type Option func(*Record)

// WithSequence attaches the sequence. When New is given a zero length, the
// length is taken from the sequence.
func WithSequence(seq string) Option { return func(r *Record) { r.Sequence = seq } }

// WithFirstIndex sets the display offset, e.g. 400 for the segment (400, 420)
// of a larger sequence.
func WithFirstIndex(i int) Option { return func(r *Record) { r.FirstIndex = i } }

// WithCircular marks the sequence as circular.
func WithCircular() Option { return func(r *Record) { r.Circular = true } }

// WithLevelHeight sets the height of one feature level.
func WithLevelHeight(h float64) Option { return func(r *Record) { r.FeatureLevelHeight = h } }

// WithIndexing selects IndexingBiopython or IndexingGenbank.
func WithIndexing(s string) Option { return func(r *Record) { r.Indexing = s } }

// WithLabelsSpacing sets the label padding.
func WithLabelsSpacing(px float64) Option { return func(r *Record) { r.LabelsSpacing = px } }

// New builds a record. The features are copied.
func New(length int, features []feature.Feature, opts ...Option) (*Record, error) {
	r := &Record{SequenceLength: length}
	for _, opt := range opts {
		opt(r)
	}
	if r.SequenceLength == 0 && r.Sequence != "" {
		r.SequenceLength = len(r.Sequence)
	}
	r.Features = cloneFeatures(features)
	r.setDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) setDefaults() {
	if r.FeatureLevelHeight == 0 {
		r.FeatureLevelHeight = DefaultLevelHeight
	}
	if r.Indexing == "" {
		r.Indexing = IndexingBiopython
	}
	if r.LabelsSpacing == 0 {
		r.LabelsSpacing = DefaultLabelsSpacing
	}
}

// Validate checks the record-level invariants.
func (r *Record) Validate() error {
	if err := errors.ValidateSequenceLength(r.SequenceLength); err != nil {
		return err
	}
	if r.Sequence != "" && len(r.Sequence) != r.SequenceLength {
		return errors.New(errors.ErrCodeInvalidInput,
			"sequence has %d characters but sequence length is %d", len(r.Sequence), r.SequenceLength)
	}
	switch r.Indexing {
	case IndexingBiopython, IndexingGenbank:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown indexing %q (want %s or %s)",
			r.Indexing, IndexingBiopython, IndexingGenbank)
	}
	return nil
}

// Span returns the displayed interval (FirstIndex, FirstIndex+SequenceLength).
func (r *Record) Span() (int, int) {
	return r.FirstIndex, r.FirstIndex + r.SequenceLength
}

// CircularLength returns the length used to resolve origin-spanning features:
// SequenceLength for circular records, 0 otherwise.
func (r *Record) CircularLength() int {
	if r.Circular {
		return r.SequenceLength
	}
	return 0
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	c.Features = cloneFeatures(r.Features)
	return &c
}

// Crop returns a new record restricted to the window w, given as positions
// in the record's own sequence. It fails with OUT_OF_BOUNDS when w.Start < 0,
// w.End >= SequenceLength or the window is empty. Features outside the window are dropped; the
// others are cropped and marked open where cut. Feature coordinates are kept,
// and the new record's FirstIndex is moved to the window start.
func (r *Record) Crop(w feature.Window) (*Record, error) {
	if err := errors.ValidateWindow(w.Start, w.End, r.SequenceLength); err != nil {
		return nil, err
	}

	abs := feature.Window{Start: r.FirstIndex + w.Start, End: r.FirstIndex + w.End}
	var kept []feature.Feature
	for _, f := range r.Features {
		if c, ok := f.Crop(abs); ok {
			kept = append(kept, c)
		}
	}

	c := &Record{
		SequenceLength:     w.End - w.Start,
		FirstIndex:         r.FirstIndex + w.Start,
		Features:           kept,
		FeatureLevelHeight: r.FeatureLevelHeight,
		Indexing:           r.Indexing,
		LabelsSpacing:      r.LabelsSpacing,
	}
	if r.Sequence != "" {
		c.Sequence = r.Sequence[w.Start:w.End]
	}
	return c, nil
}

// SplitOverflowingFeaturesCircularly splits, in place, every feature that
// runs past either end of the span into two fragments that both lie in it.
// Both fragments keep the original label and style. With FirstIndex 0 the
// span is [0, L):
//
//   - Start < 0 < End: cut at -1; the left fragment moves to the tail (+L).
//   - Start < L < End: cut at L-1; the right fragment moves to the head (-L).
func (r *Record) SplitOverflowingFeaturesCircularly() {
	n := r.SequenceLength
	lo, hi := r.Span()
	out := make([]feature.Feature, 0, len(r.Features))
	for _, f := range r.Features {
		switch {
		case f.Start < lo && lo < f.End:
			left, right := f.SplitInTwo(lo - 1)
			left.Start, left.End = left.Start+n, left.End+n
			out = append(out, left, right)
		case f.Start < hi && hi < f.End:
			left, right := f.SplitInTwo(hi - 1)
			right.Start, right.End = right.Start-n, right.End-n
			out = append(out, left, right)
		default:
			out = append(out, f)
		}
	}
	r.Features = out
}

// CoordinatesInPlot converts a sequence position and a level into plot
// coordinates.
func (r *Record) CoordinatesInPlot(x float64, level int) (float64, float64) {
	return x, float64(level) * r.FeatureLevelHeight
}

// AnnotationHeight returns the height of one annotation (label) level. It
// matches the feature level height.
func (r *Record) AnnotationHeight() float64 {
	return r.FeatureLevelHeight
}

// DisplayIndex converts a record position into the position shown on rulers,
// honoring FirstIndex and the indexing convention.
func (r *Record) DisplayIndex(i int) int {
	i += r.FirstIndex
	if r.Indexing == IndexingGenbank {
		i++
	}
	return i
}

// Labels returns the distinct non-empty labels in feature order.
func (r *Record) Labels() []string {
	var out []string
	for _, f := range r.Features {
		if f.Label != "" && !slices.Contains(out, f.Label) {
			out = append(out, f.Label)
		}
	}
	return out
}

func cloneFeatures(fs []feature.Feature) []feature.Feature {
	if fs == nil {
		return nil
	}
	out := make([]feature.Feature, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}
