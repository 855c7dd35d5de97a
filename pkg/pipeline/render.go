package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, opts.PNGScale, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, buildJSONOptions(opts)...)
		case FormatDOT:
			var dot string
			dot, err = sink.OverlapDOT(l.Record, l.Levels)
			data = []byte(dot)
		case FormatOverlaps:
			var dot string
			if dot, err = sink.OverlapDOT(l.Record, l.Levels); err == nil {
				data, err = sink.RenderOverlapSVG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.LevelPixels > 0 {
		svgOpts = append(svgOpts, sink.WithLevelPixels(opts.LevelPixels))
	}
	if opts.Ruler {
		svgOpts = append(svgOpts, sink.WithRuler())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Input != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONSource(opts.Input))
	}
	return jsonOpts
}
