package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of the record with the given content hash.
	LayoutKey(recordHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of the layout with the given
	// content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a layout.
type LayoutKeyOpts struct {
	CropStart, CropEnd int
	Cropped            bool
	Circular           bool
	SplitOverflow      bool
	LevelHeight        float64
	LabelsSpacing      float64
	CharWidth          float64
	Width              float64
	NoLabels           bool
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Source string // input path, for formats that embed it

	Title       string
	Ruler       bool
	LevelPixels float64
	PNGScale    float64
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}
