package layout

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/matzehuels/seqview/pkg/record"
)

// DefaultCharWidth is the width of one label character as a fraction of the
// font size.
const DefaultCharWidth = 0.6

// Box is the horizontal extent of a label, in sequence units.
type Box struct {
	FeatureIndex int
	Left, Right  float64
	X            float64 // anchor: the feature's center
}

func (b Box) collides(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right
}

// LabelLevels maps each boxed feature (by index) to its label level.
type LabelLevels struct {
	ByFeature map[int]int
	Max       int // highest level used, base-1 when there are no boxes
}

// AssignLabelLevels stacks boxes on levels starting at base so that boxes on
// a level never collide. Boxes are visited left to right.
func AssignLabelLevels(boxes []Box, base int) LabelLevels {
	ll := LabelLevels{ByFeature: make(map[int]int, len(boxes)), Max: base - 1}

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(boxes[a].Left, boxes[b].Left)
	})

	var rows [][]Box
	for _, i := range order {
		b := boxes[i]
		row := -1
		for r, placed := range rows {
			if !slices.ContainsFunc(placed, b.collides) {
				row = r
				break
			}
		}
		if row < 0 {
			rows = append(rows, nil)
			row = len(rows) - 1
		}
		rows[row] = append(rows[row], b)
		ll.ByFeature[b.FeatureIndex] = base + row
		ll.Max = max(ll.Max, base+row)
	}
	return ll
}

// LabelBoxes estimates the box of every labelled feature of rec.
//
// scale converts pixels to sequence units (sequence length / frame width) and
// charWidth is the width of a character as a fraction of the font size. A
// label narrower than its feature, padding included, is drawn inline and is
// returned in inline instead of getting a box.
func LabelBoxes(rec *record.Record, scale, charWidth float64) (boxes []Box, inline []int) {
	pad := rec.LabelsSpacing * scale
	for i, f := range rec.Features {
		if f.Label == "" {
			continue
		}
		size := f.Style.FontSize
		if size == 0 {
			size = 11
		}
		w := float64(utf8.RuneCountInString(f.Label)) * size * charWidth * scale

		length, center := float64(f.Length()), f.XCenter()
		if rec.Circular {
			length = float64(f.LengthCircular(rec.SequenceLength))
			center = f.XCenterCircular(rec.SequenceLength)
		}
		if w+2*pad <= length {
			inline = append(inline, i)
			continue
		}
		boxes = append(boxes, Box{
			FeatureIndex: i,
			Left:         center - w/2 - pad,
			Right:        center + w/2 + pad,
			X:            center,
		})
	}
	return boxes, inline
}
