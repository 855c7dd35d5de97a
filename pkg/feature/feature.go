package feature

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/seqview/pkg/errors"
)

// DefaultType is the feature type assigned by [New].
const DefaultType = "feature"

// Window is an inclusive [Start, End] interval used for cropping.
type Window struct {
	Start, End int
}

// Style holds the cosmetic fields renderers read. None of them affect layout
// except FontSize, which sizes label boxes.
type Style struct {
	Color        string  `json:"color,omitempty" toml:"color,omitempty"`
	LineColor    string  `json:"line_color,omitempty" toml:"line_color,omitempty"`
	Thickness    float64 `json:"thickness,omitempty" toml:"thickness,omitempty"`
	LineWidth    float64 `json:"line_width,omitempty" toml:"line_width,omitempty"`
	BoxColor     string  `json:"box_color,omitempty" toml:"box_color,omitempty"` // "" = no box, "auto" = derived from Color
	BoxLineWidth float64 `json:"box_line_width,omitempty" toml:"box_line_width,omitempty"`
	FontSize     float64 `json:"font_size,omitempty" toml:"font_size,omitempty"`
	FontFamily   string  `json:"font_family,omitempty" toml:"font_family,omitempty"`
	HTML         string  `json:"html,omitempty" toml:"html,omitempty"`
}

// DefaultStyle returns the style used when a feature declares none.
func DefaultStyle() Style {
	return Style{
		Color:        "#000080",
		LineColor:    "#000000",
		Thickness:    14,
		LineWidth:    1.0,
		BoxColor:     "auto",
		BoxLineWidth: 1,
		FontSize:     11,
	}
}

// Feature is an annotated interval on a sequence.
type Feature struct {
	Start  int
	End    int
	Strand Strand
	Label  string // empty means unlabelled
	Type   string
	Style  Style

	// OpenLeft and OpenRight mark sides where the visible boundary is not
	// the feature's true edge.
	OpenLeft  bool
	OpenRight bool

	Data map[string]any
}

// New returns a feature with the default type and style.
func New(start, end int, strand Strand, label string) Feature {
	return Feature{
		Start:  start,
		End:    end,
		Strand: strand,
		Label:  label,
		Type:   DefaultType,
		Style:  DefaultStyle(),
	}
}

// Clone returns a deep copy of f.
func (f Feature) Clone() Feature {
	c := f
	if f.Data != nil {
		c.Data = maps.Clone(f.Data)
	}
	return c
}

// SpansOrigin reports whether f wraps past the end of a circular sequence.
func (f Feature) SpansOrigin() bool {
	return f.Start > f.End
}

// Crop returns the part of f inside w. The boolean is false when f and w are
// disjoint. Sides cut by the window are marked open.
func (f Feature) Crop(w Window) (Feature, bool) {
	if w.Start > f.End || w.End < f.Start {
		return Feature{}, false
	}
	c := f.Clone()
	if w.Start > f.Start {
		c.Start = w.Start
		c.OpenLeft = true
	}
	if w.End < f.End {
		c.End = w.End
		c.OpenRight = true
	}
	return c, true
}

// SplitInTwo cuts f at x. The first fragment ends at x, the second starts at
// x+1.
func (f Feature) SplitInTwo(x int) (Feature, Feature) {
	left, right := f.Clone(), f.Clone()
	left.End = x
	right.Start = x + 1
	return left, right
}

type span struct{ lo, hi int }

func compareSpans(a, b span) int {
	if c := cmp.Compare(a.lo, b.lo); c != 0 {
		return c
	}
	return cmp.Compare(a.hi, b.hi)
}

// spans decomposes f into linear ranges. An origin-spanning feature becomes
// [Start, circularLength) and [0, End).
func (f Feature) spans(circularLength int) []span {
	if !f.SpansOrigin() {
		return []span{{f.Start, f.End}}
	}
	return []span{{f.Start, circularLength}, {0, f.End}}
}

// OverlapsWith reports whether f and other share any position. Ranges that
// merely touch do not overlap.
//
// circularLength is the sequence length used to resolve origin-spanning
// features; pass 0 when the sequence is linear. It is required when either
// feature spans the origin.
func (f Feature) OverlapsWith(other Feature, circularLength int) (bool, error) {
	if (f.SpansOrigin() || other.SpansOrigin()) && circularLength <= 0 {
		return false, errors.New(errors.ErrCodeCircularLengthRequired,
			"need circular sequence length: %s or %s spans the origin", f, other)
	}
	for _, a := range f.spans(circularLength) {
		for _, b := range other.spans(circularLength) {
			first, second := a, b
			if compareSpans(b, a) < 0 {
				first, second = b, a
			}
			if first.hi > second.lo {
				return true, nil
			}
		}
	}
	return false, nil
}

// Length returns |End - Start|.
func (f Feature) Length() int {
	if f.End < f.Start {
		return f.Start - f.End
	}
	return f.End - f.Start
}

// LengthCircular returns the length of f on a circular sequence of the given
// length, counting across the origin when f spans it.
func (f Feature) LengthCircular(sequenceLength int) int {
	if f.SpansOrigin() {
		return sequenceLength - f.Start + f.End
	}
	return f.End - f.Start
}

// XCenter returns (Start + End - 1) / 2.
func (f Feature) XCenter() float64 {
	return 0.5 * float64(f.Start+f.End-1)
}

// XCenterCircular returns the midpoint of f on a circular sequence. For
// features that do not span the origin it equals XCenter; otherwise the
// midpoint is wrapped back into [0, sequenceLength).
func (f Feature) XCenterCircular(sequenceLength int) float64 {
	if !f.SpansOrigin() {
		return f.XCenter()
	}
	mid := float64(f.Start) + 0.5*float64(f.LengthCircular(sequenceLength)) - 0.5
	if mid >= float64(sequenceLength) {
		mid -= float64(sequenceLength)
	}
	return mid
}

// String implements fmt.Stringer, e.g. "GF(lacZ, 10-200 (-1))".
func (f Feature) String() string {
	s := fmt.Sprintf("GF(%s, %d-%d ", f.Label, f.Start, f.End)
	if f.Strand == StrandNone {
		return s + ")"
	}
	return s + fmt.Sprintf("(%d))", f.Strand.Sign())
}

// SortByStart returns the indices of features ordered by Start, keeping the
// original order for ties.
func SortByStart(features []Feature) []int {
	idx := make([]int, len(features))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(features[a].Start, features[b].Start)
	})
	return idx
}
