// Package layout assigns vertical levels to features and computes the block
// geometry renderers draw.
//
// # Overview
//
// Overlapping annotations must not collide on screen. [AssignLevels] gives
// every feature of a record a non-negative level such that two features on
// the same level never overlap (per [feature.Feature.OverlapsWith], resolved
// circularly when the record is circular). Features are visited by start
// position, ties in record order, and each takes the lowest level none of
// whose occupants it overlaps. On interval graphs this greedy coloring uses
// the minimum number of levels.
//
// Labels get a separate pass: [LabelBoxes] estimates a box per label that
// does not fit inside its feature, and [AssignLabelLevels] stacks those boxes
// above the feature levels the same way.
//
// # Building a Layout
//
//	l, err := layout.Build(rec, 800,
//	    layout.WithCharWidth(0.6),
//	)
//
// The returned [Layout] holds a [Block] per drawn feature part (origin-spanning
// features on a circular record produce two parts), the label placements,
// and the frame size. Its contract toward renderers is the feature → level
// mapping plus the maximum level used, for canvas sizing.
//
// # Integration
//
//	io.ImportFile → pipeline.Prepare (crop, circular split) → layout.Build → sink.RenderJSON / sink.RenderSVG
package layout
