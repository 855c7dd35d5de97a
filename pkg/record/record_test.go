package record

import (
	"cmp"
	"slices"
	"testing"

	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/feature"
)

func byHandFeatures() []feature.Feature {
	return []feature.Feature{
		feature.New(5, 20, feature.StrandForward, "Small feature"),
		feature.New(20, 500, feature.StrandForward, "Gene 1 with a very long name"),
		feature.New(400, 700, feature.StrandReverse, "Gene 2"),
		feature.New(600, 900, feature.StrandForward, "Gene 3"),
	}
}

func mustNew(t *testing.T, length int, fs []feature.Feature, opts ...Option) *Record {
	t.Helper()
	r, err := New(length, fs, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestNew(t *testing.T) {
	r := mustNew(t, 0, nil, WithSequence("ATGCATGC"))
	if r.SequenceLength != 8 {
		t.Errorf("SequenceLength = %d, want 8", r.SequenceLength)
	}
	if r.FeatureLevelHeight != DefaultLevelHeight {
		t.Errorf("FeatureLevelHeight = %v, want %v", r.FeatureLevelHeight, DefaultLevelHeight)
	}
	if r.Indexing != IndexingBiopython {
		t.Errorf("Indexing = %q, want %q", r.Indexing, IndexingBiopython)
	}
	if r.LabelsSpacing != DefaultLabelsSpacing {
		t.Errorf("LabelsSpacing = %v, want %v", r.LabelsSpacing, DefaultLabelsSpacing)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		length int
		opts   []Option
	}{
		{"no length", 0, nil},
		{"negative length", -5, nil},
		{"sequence mismatch", 10, []Option{WithSequence("ATG")}},
		{"bad indexing", 10, []Option{WithIndexing("ensembl")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.length, nil, tt.opts...); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestNewCopiesFeatures(t *testing.T) {
	fs := byHandFeatures()
	r := mustNew(t, 1000, fs)
	fs[0].Start = 999
	if r.Features[0].Start != 5 {
		t.Error("record shares feature storage with the caller")
	}
}

func TestSpan(t *testing.T) {
	r := mustNew(t, 20, nil, WithFirstIndex(400))
	s, e := r.Span()
	if s != 400 || e != 420 {
		t.Errorf("Span() = (%d, %d), want (400, 420)", s, e)
	}
}

func TestCrop(t *testing.T) {
	r := mustNew(t, 1000, byHandFeatures(), WithLevelHeight(2))

	cropped, err := r.Crop(feature.Window{Start: 425, End: 650})
	if err != nil {
		t.Fatalf("Crop() error: %v", err)
	}
	if len(cropped.Features) != 3 {
		t.Fatalf("len(Features) = %d, want 3", len(cropped.Features))
	}
	if cropped.SequenceLength != 225 {
		t.Errorf("SequenceLength = %d, want 225", cropped.SequenceLength)
	}
	if cropped.FirstIndex != 425 {
		t.Errorf("FirstIndex = %d, want 425", cropped.FirstIndex)
	}
	if cropped.FeatureLevelHeight != 2 {
		t.Errorf("FeatureLevelHeight = %v, want 2", cropped.FeatureLevelHeight)
	}
	if len(r.Features) != 4 || r.Features[1].Start != 20 {
		t.Error("Crop mutated the source record")
	}

	gene1 := cropped.Features[0]
	if gene1.Start != 425 || gene1.End != 500 || !gene1.OpenLeft || gene1.OpenRight {
		t.Errorf("Gene 1 cropped to %+v", gene1)
	}
}

func TestCropTwice(t *testing.T) {
	r := mustNew(t, 1000, byHandFeatures())

	first, err := r.Crop(feature.Window{Start: 425, End: 650})
	if err != nil {
		t.Fatal(err)
	}
	// Windows index the cropped record's own sequence: 50..100 is 475..525.
	second, err := first.Crop(feature.Window{Start: 50, End: 100})
	if err != nil {
		t.Fatalf("Crop() error: %v", err)
	}
	if second.FirstIndex != 475 || second.SequenceLength != 50 {
		t.Errorf("span = %d+%d, want 475+50", second.FirstIndex, second.SequenceLength)
	}
	if len(second.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(second.Features))
	}
	if f := second.Features[0]; f.Start != 475 || f.End != 500 || !f.OpenLeft {
		t.Errorf("Gene 1 cropped to %+v", f)
	}
}

func TestSplitOverflowWithFirstIndex(t *testing.T) {
	r := mustNew(t, 100, []feature.Feature{feature.New(190, 210, feature.StrandForward, "wrap")}, WithFirstIndex(100))
	r.SplitOverflowingFeaturesCircularly()
	if len(r.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(r.Features))
	}
	if a, b := r.Features[0], r.Features[1]; a.Start != 190 || a.End != 199 || b.Start != 100 || b.End != 110 {
		t.Errorf("fragments = %v, %v", a, b)
	}
}

func TestCropSequence(t *testing.T) {
	r := mustNew(t, 0, nil, WithSequence("AAAACCCCGGGGTTTT"), WithFirstIndex(100))
	cropped, err := r.Crop(feature.Window{Start: 4, End: 8})
	if err != nil {
		t.Fatalf("Crop() error: %v", err)
	}
	if cropped.Sequence != "CCCC" {
		t.Errorf("Sequence = %q, want CCCC", cropped.Sequence)
	}
	if s, e := cropped.Span(); s != 104 || e != 108 {
		t.Errorf("Span() = (%d, %d), want (104, 108)", s, e)
	}
}

func TestCropOutOfBounds(t *testing.T) {
	r := mustNew(t, 1000, byHandFeatures())
	for _, w := range []feature.Window{{Start: -1, End: 10}, {Start: 0, End: 1000}, {Start: 10, End: 2000}, {Start: 10, End: 10}, {Start: 20, End: 5}} {
		got, err := r.Crop(w)
		if !errors.Is(err, errors.ErrCodeOutOfBounds) {
			t.Errorf("Crop(%v) error = %v, want OUT_OF_BOUNDS", w, err)
		}
		if got != nil {
			t.Errorf("Crop(%v) returned a partial record", w)
		}
	}
}

type triple struct {
	start, end int
	label      string
}

func sortedTriples(fs []feature.Feature) []triple {
	out := make([]triple, len(fs))
	for i, f := range fs {
		out[i] = triple{f.Start, f.End, f.Label}
	}
	slices.SortFunc(out, func(a, b triple) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.end, b.end); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})
	return out
}

func TestSplitOverflowingFeaturesCircularly(t *testing.T) {
	r := mustNew(t, 50, []feature.Feature{
		feature.New(10, 20, feature.StrandForward, "a"),
		feature.New(40, 55, feature.StrandForward, "b"),
		feature.New(-20, 2, feature.StrandForward, "c"),
	})

	r.SplitOverflowingFeaturesCircularly()

	want := []triple{
		{0, 2, "c"},
		{0, 5, "b"},
		{10, 20, "a"},
		{30, 49, "c"},
		{40, 49, "b"},
	}
	got := sortedTriples(r.Features)
	if !slices.Equal(got, want) {
		t.Errorf("features = %v, want %v", got, want)
	}
	for _, f := range r.Features {
		if f.Start < 0 || f.End >= 50 {
			t.Errorf("%s lies outside [0, 50)", f)
		}
	}
}

func TestSplitOverflowingKeepsInRangeFeatures(t *testing.T) {
	r := mustNew(t, 50, []feature.Feature{
		feature.New(0, 49, feature.StrandNone, "whole"),
		feature.New(45, 5, feature.StrandNone, "ori"),
	})
	r.SplitOverflowingFeaturesCircularly()
	if len(r.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(r.Features))
	}
}

func TestCoordinatesInPlot(t *testing.T) {
	r := mustNew(t, 100, nil, WithLevelHeight(1.5))
	x, y := r.CoordinatesInPlot(12, 3)
	if x != 12 || y != 4.5 {
		t.Errorf("CoordinatesInPlot() = (%v, %v), want (12, 4.5)", x, y)
	}
	if r.AnnotationHeight() != 1.5 {
		t.Errorf("AnnotationHeight() = %v, want 1.5", r.AnnotationHeight())
	}
}

func TestDisplayIndex(t *testing.T) {
	tests := []struct {
		indexing   string
		firstIndex int
		in, want   int
	}{
		{IndexingBiopython, 0, 0, 0},
		{IndexingGenbank, 0, 0, 1},
		{IndexingGenbank, 400, 5, 406},
	}
	for _, tt := range tests {
		r := mustNew(t, 10, nil, WithIndexing(tt.indexing), WithFirstIndex(tt.firstIndex))
		if got := r.DisplayIndex(tt.in); got != tt.want {
			t.Errorf("DisplayIndex(%d) [%s, %d] = %d, want %d", tt.in, tt.indexing, tt.firstIndex, got, tt.want)
		}
	}
}

func TestCircularLength(t *testing.T) {
	if got := mustNew(t, 50, nil).CircularLength(); got != 0 {
		t.Errorf("linear CircularLength() = %d, want 0", got)
	}
	if got := mustNew(t, 50, nil, WithCircular()).CircularLength(); got != 50 {
		t.Errorf("circular CircularLength() = %d, want 50", got)
	}
}

func TestClone(t *testing.T) {
	r := mustNew(t, 1000, byHandFeatures())
	c := r.Clone()
	c.Features[0].Label = "changed"
	c.SplitOverflowingFeaturesCircularly()
	if r.Features[0].Label != "Small feature" {
		t.Error("Clone shares features with the source")
	}
}

func TestLabels(t *testing.T) {
	r := mustNew(t, 100, []feature.Feature{
		feature.New(0, 10, feature.StrandNone, "a"),
		feature.New(10, 20, feature.StrandNone, ""),
		feature.New(20, 30, feature.StrandNone, "b"),
		feature.New(30, 40, feature.StrandNone, "a"),
	})
	if got := r.Labels(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Labels() = %v", got)
	}
}
