package layout

// Block is one drawn part of a feature. X coordinates are feature
// coordinates, inside the record's span; Y coordinates are level multiples of the record's
// level height, growing upward.
type Block struct {
	FeatureIndex int
	Level        int
	Left, Right  float64
	Bottom, Top  float64

	// OpenLeft and OpenRight are true where the drawn edge is not the
	// feature's real boundary.
	OpenLeft, OpenRight bool
}

// Width returns the horizontal span of the block.
func (b Block) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the block.
func (b Block) Height() float64 { return b.Top - b.Bottom }

// CenterX returns the horizontal center point of the block.
func (b Block) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the block.
func (b Block) CenterY() float64 { return (b.Bottom + b.Top) / 2 }
