package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/layout"
)

const (
	defaultLevelPixels = 24.0
	svgMargin          = 20.0
	rulerHeight        = 28.0
	titleHeight        = 24.0
	fallbackFontFamily = "Helvetica, Arial, sans-serif"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	levelPx    float64
	ruler      bool
	title      string
	fontFamily string
}

// WithLevelPixels sets the height of one level in pixels (default 24).
func WithLevelPixels(px float64) SVGOption { return func(r *svgRenderer) { r.levelPx = px } }

// WithRuler draws a position axis under the features.
func WithRuler() SVGOption { return func(r *svgRenderer) { r.ruler = true } }

// WithTitle draws a title above the track.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithFontFamily sets the font family for features that declare none.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// frame maps layout coordinates to pixels.
type frame struct {
	left, axisY float64
	scale       float64 // pixels per sequence unit
	levelPx     float64
	firstIndex  float64
}

func (f frame) x(pos float64) float64 { return f.left + (pos-f.firstIndex)*f.scale }

// y returns the pixel row of the vertical center of a level.
func (f frame) y(level int) float64 {
	return f.axisY - (float64(level)+0.5)*f.levelPx
}

// RenderSVG draws the layout as a linear track. Feature levels grow upward
// from the axis; boxed labels sit on their label levels, linked to their
// feature by a thin line.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{levelPx: defaultLevelPixels, fontFamily: fallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	rec := l.Record
	top := svgMargin
	if r.title != "" {
		top += titleHeight
	}
	levels := float64(l.MaxLabelLevel + 1)
	fr := frame{
		left:       svgMargin,
		axisY:      top + levels*r.levelPx,
		scale:      l.FrameWidth / float64(rec.SequenceLength),
		levelPx:    r.levelPx,
		firstIndex: float64(rec.FirstIndex),
	}

	width := l.FrameWidth + 2*svgMargin
	height := fr.axisY + svgMargin
	if r.ruler {
		height += rulerHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="16" font-weight="bold">%s</text>`+"\n",
			svgMargin, svgMargin+14, escapeXML(r.fontFamily), escapeXML(r.title))
	}

	fmt.Fprintf(&buf, `  <line class="axis" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="1"/>`+"\n",
		fr.x(fr.firstIndex), fr.axisY, fr.x(fr.firstIndex+float64(rec.SequenceLength)), fr.axisY)
	if r.ruler {
		renderRuler(&buf, l, fr, escapeXML(r.fontFamily))
	}

	for _, b := range l.Blocks {
		renderFeatureBlock(&buf, fr, b, rec.Features[b.FeatureIndex])
	}
	for _, lb := range l.Labels {
		renderLabel(&buf, l, fr, lb, r.fontFamily)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFeatureBlock(buf *bytes.Buffer, fr frame, b layout.Block, f feature.Feature) {
	x1, x2 := fr.x(b.Left), fr.x(b.Right)
	yc := fr.y(b.Level)
	t := min(f.Style.Thickness, fr.levelPx*0.8)
	if t <= 0 {
		t = fr.levelPx * 0.6
	}
	yt, yb := yc-t/2, yc+t/2

	head := min(t/2, (x2-x1)/2)
	xl, xr := x1, x2
	arrowRight := f.Strand == feature.StrandForward && !b.OpenRight
	arrowLeft := f.Strand == feature.StrandReverse && !b.OpenLeft
	if arrowRight {
		xr = x2 - head
	}
	if arrowLeft {
		xl = x1 + head
	}

	pts := [][2]float64{{xl, yt}, {xr, yt}}
	if arrowRight {
		pts = append(pts, [2]float64{x2, yc})
	}
	pts = append(pts, [2]float64{xr, yb}, [2]float64{xl, yb})
	if arrowLeft {
		pts = append(pts, [2]float64{x1, yc})
	}

	fmt.Fprintf(buf, `  <polygon class="feature" data-index="%d" points="%s" fill="%s" stroke="none"/>`+"\n",
		b.FeatureIndex, formatPoints(pts), escapeXML(orDefault(f.Style.Color, "#000080")))

	// Outline, leaving out the vertical edge of open sides.
	stroke := escapeXML(orDefault(f.Style.LineColor, "#000000"))
	var d strings.Builder
	fmt.Fprintf(&d, "M %.2f %.2f L %.2f %.2f", xl, yt, xr, yt)
	if arrowRight {
		fmt.Fprintf(&d, " L %.2f %.2f L %.2f %.2f", x2, yc, xr, yb)
	} else if !b.OpenRight {
		fmt.Fprintf(&d, " L %.2f %.2f", xr, yb)
	} else {
		fmt.Fprintf(&d, " M %.2f %.2f", xr, yb)
	}
	fmt.Fprintf(&d, " L %.2f %.2f", xl, yb)
	if arrowLeft {
		fmt.Fprintf(&d, " L %.2f %.2f Z", x1, yc)
	} else if !b.OpenLeft {
		d.WriteString(" Z")
	}
	fmt.Fprintf(buf, `  <path class="outline" d="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		d.String(), stroke, f.Style.LineWidth)
}

func renderLabel(buf *bytes.Buffer, l layout.Layout, fr frame, lb layout.Label, fallbackFont string) {
	f := l.Record.Features[lb.FeatureIndex]
	size := f.Style.FontSize
	if size == 0 {
		size = feature.DefaultStyle().FontSize
	}
	font := escapeXML(orDefault(f.Style.FontFamily, fallbackFont))
	x := fr.x(lb.X)

	var y float64
	if lb.Inline {
		y = fr.y(l.Levels.ByFeature[lb.FeatureIndex])
	} else {
		y = fr.y(lb.Level)
		featureTop := fr.y(l.Levels.ByFeature[lb.FeatureIndex]) - fr.levelPx/2
		fmt.Fprintf(buf, `  <line class="label-link" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#aaa" stroke-width="0.5"/>`+"\n",
			x, y+size/2, x, featureTop+fr.levelPx*0.1)
	}
	fmt.Fprintf(buf, `  <text class="label" data-index="%d" x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		lb.FeatureIndex, x, y, font, size, escapeXML(lb.Text))
}

func renderRuler(buf *bytes.Buffer, l layout.Layout, fr frame, font string) {
	rec := l.Record
	step := tickStep(rec.SequenceLength)
	for pos := 0; pos < rec.SequenceLength; pos += step {
		x := fr.x(fr.firstIndex + float64(pos))
		fmt.Fprintf(buf, `  <line class="tick" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888"/>`+"\n",
			x, fr.axisY, x, fr.axisY+5)
		fmt.Fprintf(buf, `  <text class="tick-label" x="%.1f" y="%.1f" font-family="%s" font-size="9" text-anchor="middle">%d</text>`+"\n",
			x, fr.axisY+16, font, rec.DisplayIndex(pos))
	}
}

// tickStep returns a 1, 2 or 5 times power-of-ten step giving at most
// about ten ticks.
func tickStep(length int) int {
	if length <= 10 {
		return 1
	}
	raw := float64(length) / 10
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*pow >= raw {
			return int(m * pow)
		}
	}
	return int(10 * pow)
}

func formatPoints(pts [][2]float64) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p[0], p[1])
	}
	return strings.Join(parts, " ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// escapeXML escapes s for use in element text and in double-quoted
// attribute values.
func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
