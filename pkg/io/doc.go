// Package io reads and writes records as JSON or TOML documents.
//
// # Overview
//
// A record document carries the sequence length, optional sequence and
// display settings, and the feature list. Translating richer annotation
// formats (GenBank, GFF) into this shape is left to external tools; this
// package is the boundary they write to.
//
// # Document Format
//
//	{
//	  "sequence_length": 1000,
//	  "circular": false,
//	  "first_index": 0,
//	  "features": [
//	    {"start": 5, "end": 20, "strand": 1, "label": "Small feature"},
//	    {"start": 400, "end": 700, "strand": -1, "label": "Gene 2", "color": "#ffcccc"}
//	  ]
//	}
//
// The same fields work in TOML, with features as an array of tables:
//
//	sequence_length = 1000
//
//	[[features]]
//	start = 5
//	end = 20
//	strand = "+1"
//	label = "Small feature"
//
// # Feature Fields
//
// Required:
//   - start, end: zero-based positions; start > end means the feature
//     wraps the origin of a circular sequence
//
// Optional:
//   - strand: 1, -1, 0 or null (JSON); "+1", "-1", "0" (TOML)
//   - label, type
//   - open_left, open_right
//   - color, line_color, thickness, line_width, box_color, box_line_width,
//     font_size, font_family, html: style fields; missing ones take the
//     defaults of [feature.DefaultStyle]
//   - data: freeform object passed through untouched
//
// # Errors
//
// Malformed documents fail with INVALID_FORMAT, bad strands with
// INVALID_STRAND, and semantic problems (missing or non-positive length)
// with INVALID_INPUT. A missing file is FILE_NOT_FOUND.
//
// # Import and Export
//
//	rec, err := io.ImportFile("plasmid.toml")
//	...
//	err = io.ExportFile(rec, "plasmid.json")
//
// The format is chosen from the file extension; see [FormatFromPath].
package io
