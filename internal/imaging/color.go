package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Plate background colours. Domestic plates use white (private), yellow
// (commercial), green (older series) and blue (electric vehicles).
const (
	PlateWhite   = "white"
	PlateYellow  = "yellow"
	PlateGreen   = "green"
	PlateBlue    = "blue"
	PlateUnknown = "unknown"
)

// PlateColorResult describes the dominant background colour of a plate crop.
type PlateColorResult struct {
	Name       string  `json:"name"`       // One of the Plate* constants
	Hex        string  `json:"hex"`        // Dominant colour "#rrggbb" (quantized)
	Percentage float64 `json:"percentage"` // Share of pixels in the dominant bucket (0-100)
}

// PlateColor classifies the background colour of a plate crop.
//
// Pixels are quantized to 16 levels per channel and the most frequent bucket
// is taken as the background, since glyphs cover a minority of a plate's
// area. The bucket is then classified by hue, saturation and value.
//
// Returns nil for an empty image.
func PlateColor(img image.Image) *PlateColorResult {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}

	counts := make(map[[3]uint8]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Quantize to reduce color space (group similar colors)
			key := [3]uint8{uint8((r >> 8) / 16 * 16), uint8((g >> 8) / 16 * 16), uint8((b >> 8) / 16 * 16)}
			counts[key]++
		}
	}

	var best [3]uint8
	bestCount := -1
	for key, n := range counts {
		if n > bestCount || (n == bestCount && lessRGB(key, best)) {
			best, bestCount = key, n
		}
	}

	// Use the bucket centre so the classification is not biased dark.
	c := colorful.Color{
		R: (float64(best[0]) + 8) / 255,
		G: (float64(best[1]) + 8) / 255,
		B: (float64(best[2]) + 8) / 255,
	}.Clamped()

	return &PlateColorResult{
		Name:       classifyPlateColor(c),
		Hex:        colorful.Color{R: float64(best[0]) / 255, G: float64(best[1]) / 255, B: float64(best[2]) / 255}.Hex(),
		Percentage: float64(bestCount) / float64(total) * 100,
	}
}

// classifyPlateColor maps a colour to a plate background name.
func classifyPlateColor(c colorful.Color) string {
	h, s, v := c.Hsv()
	switch {
	case s < 0.25 && v > 0.6:
		return PlateWhite
	case s < 0.3 || v < 0.25:
		return PlateUnknown
	case h >= 35 && h < 70:
		return PlateYellow
	case h >= 70 && h < 170:
		return PlateGreen
	case h >= 180 && h < 260:
		return PlateBlue
	default:
		return PlateUnknown
	}
}

// lessRGB orders buckets so ties in PlateColor are deterministic.
func lessRGB(a, b [3]uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
