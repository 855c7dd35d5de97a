// Package pkg provides the libraries behind seqview, a layout engine for
// annotated sequence features.
//
// # Overview
//
// A record is a linear or circular sequence of known length carrying
// features: intervals with a strand, a label and cosmetic style. Seqview
// stacks overlapping features on levels so that no two features on a level
// collide, places labels that do not fit inside their feature on label
// levels above, and renders the result.
//
// # Architecture
//
//	record file (JSON / TOML)
//	         ↓
//	    [io] package (decode into a record)
//	         ↓
//	    [record] package (crop, split features overflowing the origin)
//	         ↓
//	    [layout] package (feature levels, blocks, label levels)
//	         ↓
//	    [sink] package (SVG, PNG, PDF, JSON, overlap graph)
//
// [pipeline] chains these stages and caches layouts and renders through
// [cache]; [observability] exposes hooks around each stage.
//
// # Quick Start
//
//	rec, _ := record.New(1000, []feature.Feature{
//	    feature.New(20, 500, feature.StrandForward, "Gene 1"),
//	    feature.New(400, 700, feature.StrandReverse, "Gene 2"),
//	})
//	l, _ := layout.Build(rec, 800)
//	svg := sink.RenderSVG(l, sink.WithRuler())
//
// # Main Packages
//
// [feature] - Features, strands, cropping, splitting and the linear or
// circular overlap test.
//
// [record] - Records: validation, cropping to a window, circular splitting
// of features that run past either end, display indexing.
//
// [layout] - Greedy level assignment for features and labels, plus the block
// and label geometry renderers draw.
//
// [io] - JSON and TOML record documents.
//
// [sink] - Renderers. SVG is written directly; PNG and PDF go through
// rsvg-convert; the overlap graph is laid out with Graphviz.
//
// [errors] - Coded errors (INVALID_INPUT, OUT_OF_BOUNDS,
// CIRCULAR_LENGTH_REQUIRED, ...).
package pkg
