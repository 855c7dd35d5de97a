package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqview/pkg/pipeline"
)

// Config is the --config file. Defaults fill any option whose flag was not
// given on the command line.
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//
//	[defaults]
//	circular = true
//	formats = ["svg", "json"]
//	ruler = true
type Config struct {
	Cache    CacheConfig      `toml:"cache"`
	Defaults pipeline.Options `toml:"defaults"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Redis    string `toml:"redis"`
	Disabled bool   `toml:"disabled"`
}

// ReadConfigFile decodes a TOML config file. Unknown keys are an error so
// that typos do not pass silently.
func ReadConfigFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if len(cfg.Defaults.Formats) > 0 {
		if err := pipeline.ValidateFormats(cfg.Defaults.Formats); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// applyConfig copies config defaults into opts for every flag of cmd that
// was left unset.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	d := c.config.Defaults
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}

	if unset("circular") && d.Circular {
		opts.Circular = true
	}
	if unset("split") && d.SplitOverflow {
		opts.SplitOverflow = true
	}
	if unset("level-height") && d.LevelHeight > 0 {
		opts.LevelHeight = d.LevelHeight
	}
	if unset("labels-spacing") && d.LabelsSpacing > 0 {
		opts.LabelsSpacing = d.LabelsSpacing
	}
	if unset("indexing") && d.Indexing != "" {
		opts.Indexing = d.Indexing
	}
	if unset("width") && d.Width > 0 {
		opts.Width = d.Width
	}
	if unset("char-width") && d.CharWidth > 0 {
		opts.CharWidth = d.CharWidth
	}
	if unset("no-labels") && d.NoLabels {
		opts.NoLabels = true
	}
	if unset("format") && len(d.Formats) > 0 {
		opts.Formats = append([]string(nil), d.Formats...)
	}
	if unset("title") && d.Title != "" {
		opts.Title = d.Title
	}
	if unset("ruler") && d.Ruler {
		opts.Ruler = true
	}
	if unset("level-pixels") && d.LevelPixels > 0 {
		opts.LevelPixels = d.LevelPixels
	}
	if unset("png-scale") && d.PNGScale > 0 {
		opts.PNGScale = d.PNGScale
	}
}
