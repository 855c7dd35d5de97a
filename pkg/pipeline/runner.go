package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqview/pkg/cache"
	"github.com/matzehuels/seqview/pkg/layout"
	"github.com/matzehuels/seqview/pkg/observability"
	"github.com/matzehuels/seqview/pkg/record"
)

var errStaleLayout = errors.New("cached layout does not match record")

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so several goroutines may share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer and a nil cache
// disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → prepare → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	rec, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Info("loaded record",
		"features", len(rec.Features),
		"length", rec.SequenceLength,
		"circular", rec.Circular,
		"duration", result.Stats.LoadTime)

	// Stage 2: Prepare
	prepared, err := Prepare(rec, opts)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	if len(prepared.Features) != len(rec.Features) {
		r.Logger.Debug("prepared record",
			"features_in", len(rec.Features),
			"features_out", len(prepared.Features))
	}
	result.Record = prepared
	result.Stats.FeatureCount = len(prepared.Features)

	// Stage 3: Layout
	layoutStart := time.Now()
	l, recordHash, layoutHit, err := r.layout(ctx, prepared, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.RecordHash = recordHash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LevelCount = l.Levels.Count()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"levels", l.Levels.Count(),
		"blocks", len(l.Blocks),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out a prepared record, reading and filling the
// cache, and reports whether the layout came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, rec *record.Record, opts Options) (layout.Layout, bool, error) {
	l, _, hit, err := r.layout(ctx, rec, opts)
	return l, hit, err
}

// layout is LayoutWithCacheInfo that also returns the record hash the cache
// key was built from.
func (r *Runner) layout(ctx context.Context, rec *record.Record, opts Options) (layout.Layout, string, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	recordHash, err := RecordHash(rec)
	if err != nil {
		return layout.Layout{}, "", false, fmt.Errorf("hash record: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(recordHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, err := unmarshalLayout(data, rec); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return l, recordHash, true, nil
			}
			// Undecodable entries fall through to recompute.
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	hooks.OnLayoutStart(ctx, len(rec.Features))
	start := time.Now()
	l, err := BuildLayout(rec, opts)
	hooks.OnLayoutComplete(ctx, len(rec.Features), l.Levels.Count(), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, "", false, err
	}

	if data, err := marshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, recordHash, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, rec *record.Record, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, rec, opts)
	return l, err
}

// RenderWithCacheInfo renders the requested formats, reading and filling the
// cache, and reports whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	layoutData, err := marshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	recordHash, err := RecordHash(l.Record)
	if err != nil {
		return nil, false, fmt.Errorf("hash record: %w", err)
	}
	layoutHash := cache.Hash(append(layoutData, recordHash...))

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
