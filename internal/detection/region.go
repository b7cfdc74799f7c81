package detection

import (
	"image"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//
// Bounds produced by this package always satisfy X1 <= X2 and Y1 <= Y2 and lie
// within the image they were detected in.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// BoundsOf converts a rectangle to Bounds.
func BoundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Rect converts b back to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Width is X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height is Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// DetectedRegion is a candidate plate location.
type DetectedRegion struct {
	// Bounds is the box clipped to the image.
	Bounds Bounds `json:"bounds"`

	// Confidence is the detector score (0.0 to 1.0). For contour regions it
	// is the rectangularity of the outline.
	Confidence float64 `json:"confidence"`

	// Label is the detector class name, or "contour".
	Label string `json:"label"`

	// AspectRatio is width / height, 0 for a zero-height box.
	AspectRatio float64 `json:"aspect_ratio"`
}

// NewRegion builds a region from r clipped to bounds.
//
// Each edge is clamped separately, so a degenerate box keeps its position
// instead of collapsing to the zero rectangle.
func NewRegion(r image.Rectangle, bounds image.Rectangle, confidence float64, label string) DetectedRegion {
	r = r.Canon()
	b := Bounds{
		X1: clampInt(r.Min.X, bounds.Min.X, bounds.Max.X),
		Y1: clampInt(r.Min.Y, bounds.Min.Y, bounds.Max.Y),
		X2: clampInt(r.Max.X, bounds.Min.X, bounds.Max.X),
		Y2: clampInt(r.Max.Y, bounds.Min.Y, bounds.Max.Y),
	}
	return DetectedRegion{
		Bounds:      b,
		Confidence:  confidence,
		Label:       label,
		AspectRatio: aspectRatio(b.Width(), b.Height()),
	}
}

// PlateLike reports whether a width/height ratio is in the plate range,
// exclusive at both ends.
func PlateLike(ratio float64) bool {
	return ratio > MinPlateRatio && ratio < MaxPlateRatio
}

func aspectRatio(w, h int) float64 {
	if h <= 0 {
		return 0
	}
	return float64(w) / float64(h)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
