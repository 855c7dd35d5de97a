package layout

import (
	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/record"
)

// Levels maps each feature (by index in the record) to its level.
type Levels struct {
	ByFeature []int
	Max       int // highest level used, -1 when there are no features
}

// Count returns the number of levels in use.
func (l Levels) Count() int { return l.Max + 1 }

// At returns the indices of the features on level, in index order.
func (l Levels) At(level int) []int {
	var out []int
	for i, lv := range l.ByFeature {
		if lv == level {
			out = append(out, i)
		}
	}
	return out
}

// Height returns the total height of the feature levels.
func (l Levels) Height(levelHeight float64) float64 {
	return float64(l.Count()) * levelHeight
}

// AssignLevels computes the feature levels of rec. Overlaps are resolved
// circularly when rec is circular.
func AssignLevels(rec *record.Record) (Levels, error) {
	return AssignFeatureLevels(rec.Features, rec.CircularLength())
}

// AssignFeatureLevels places features on levels so that no two features on a
// level overlap, using as few levels as the greedy sweep allows.
// circularLength has the meaning of [feature.Feature.OverlapsWith].
func AssignFeatureLevels(features []feature.Feature, circularLength int) (Levels, error) {
	lv := Levels{ByFeature: make([]int, len(features)), Max: -1}

	// occupants[l] lists the features already placed on level l.
	var occupants [][]int
	for _, i := range feature.SortByStart(features) {
		level := -1
		for l, placed := range occupants {
			free, err := fits(features, i, placed, circularLength)
			if err != nil {
				return Levels{}, err
			}
			if free {
				level = l
				break
			}
		}
		if level < 0 {
			occupants = append(occupants, nil)
			level = len(occupants) - 1
		}
		occupants[level] = append(occupants[level], i)
		lv.ByFeature[i] = level
		lv.Max = max(lv.Max, level)
	}
	return lv, nil
}

// fits reports whether feature i overlaps none of placed. Checking every
// occupant, not just the last one, keeps origin-spanning features correct.
func fits(features []feature.Feature, i int, placed []int, circularLength int) (bool, error) {
	for j := len(placed) - 1; j >= 0; j-- {
		overlaps, err := features[i].OverlapsWith(features[placed[j]], circularLength)
		if err != nil {
			return false, err
		}
		if overlaps {
			return false, nil
		}
	}
	return true, nil
}
