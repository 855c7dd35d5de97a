// Package feature models a single annotated interval on a genomic sequence.
//
// A [Feature] is a value: Start and End coordinates, a [Strand], an optional
// label, and display metadata ([Style], open-side flags, free-form data).
// Derivations such as [Feature.Crop] and [Feature.SplitInTwo] return fresh
// copies and never touch the receiver.
//
// # Coordinates
//
// Under the linear interpretation Start <= End. A feature with Start > End
// spans the origin of a circular sequence: it covers [Start, L) followed by
// [0, End) where L is the sequence length. Operations that need L to resolve
// such a feature take it as an argument:
//
//	ok, err := a.OverlapsWith(b, 5386)
//	n := a.LengthCircular(5386)
//	x := a.XCenterCircular(5386)
//
// Comparing an origin-spanning feature without a length fails with
// CIRCULAR_LENGTH_REQUIRED (see [errors.ErrCodeCircularLengthRequired]).
//
// # Open sides
//
// Cropping marks truncated boundaries with OpenLeft / OpenRight so renderers
// know the visible edge is not the feature's true end and skip the closing
// cap. The flags survive every further derivation.
package feature
