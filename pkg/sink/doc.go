// Package sink turns a computed [layout.Layout] into output formats.
//
// # Overview
//
// A "sink" is the renderer side of the layout contract: it receives the
// feature → level mapping, the blocks and the label placements, and writes
// them out. This package provides:
//
//   - JSON: the layout as data, for external plotting tools
//   - SVG: a minimal linear track (arrows, open ends, labels, ruler)
//   - PDF and PNG: SVG converted with rsvg-convert
//   - DOT: the overlap graph of a record, rendered with Graphviz, for
//     checking level assignment by eye
//
// # JSON Output
//
// [RenderJSON] is the main interchange format:
//
//	data, err := sink.RenderJSON(l, sink.WithJSONSource("plasmid.toml"))
//
// Each feature appears once with its level; origin-spanning features list
// both of their blocks.
//
// # SVG Output
//
//	svg := sink.RenderSVG(l, sink.WithRuler(), sink.WithTitle("pUC19"))
//
// Levels grow upward from the axis. Sides where a block is open (cropped
// or cut at the origin) are drawn without an end stroke.
//
// # Overlap Graphs
//
// [OverlapDOT] emits an undirected graph with one node per feature, grouped
// by level, and an edge for every overlapping pair. No edge should join two
// nodes of the same level. [RenderOverlapSVG] renders it with the bundled
// Graphviz (github.com/goccy/go-graphviz), so no system install is needed.
//
// [layout.Layout]: github.com/matzehuels/seqview/pkg/layout.Layout
package sink
