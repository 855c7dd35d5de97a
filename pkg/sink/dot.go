package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/record"
)

// OverlapDOT returns the overlap graph of rec in Graphviz DOT format: one
// node per feature, clustered by level, and an edge between every pair of
// overlapping features. Overlaps are resolved circularly on circular
// records.
func OverlapDOT(rec *record.Record, levels layout.Levels) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("graph overlaps {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for lv := 0; lv <= levels.Max; lv++ {
		fmt.Fprintf(&buf, "  subgraph cluster_level_%d {\n", lv)
		fmt.Fprintf(&buf, "    label=%q;\n    style=dashed;\n", fmt.Sprintf("level %d", lv))
		for _, i := range levels.At(lv) {
			fmt.Fprintf(&buf, "    f%d [label=%q, fillcolor=%q];\n", i, nodeLabel(rec, i), fillFor(rec, i))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	n := rec.CircularLength()
	for i := range rec.Features {
		for j := i + 1; j < len(rec.Features); j++ {
			overlaps, err := rec.Features[i].OverlapsWith(rec.Features[j], n)
			if err != nil {
				return "", err
			}
			if overlaps {
				fmt.Fprintf(&buf, "  f%d -- f%d;\n", i, j)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeLabel(rec *record.Record, i int) string {
	f := rec.Features[i]
	name := f.Label
	if name == "" {
		name = fmt.Sprintf("#%d", i)
	}
	return fmt.Sprintf("%s\n%d-%d", name, f.Start, f.End)
}

func fillFor(rec *record.Record, i int) string {
	c := rec.Features[i].Style.Color
	if c == "" || c[0] != '#' {
		return "white"
	}
	return c + "40" // translucent
}

// RenderOverlapSVG renders a DOT graph to SVG using Graphviz.
func RenderOverlapSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-only one so the SVG scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
