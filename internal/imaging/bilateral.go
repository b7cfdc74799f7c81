package imaging

import (
	"image"
	"math"
)

// Bilateral applies an edge-preserving bilateral filter to a grayscale image.
//
// Each output pixel is a weighted mean over a circular window of the given
// diameter. A neighbour's weight is the product of a spatial Gaussian
// (sigmaSpace, over pixel distance) and a range Gaussian (sigmaColor, over
// intensity difference), so pixels across a strong edge contribute little and
// glyph strokes stay sharp. Borders are handled by clamping.
//
// A diameter below 1 is derived from sigmaSpace. The input is not modified.
func Bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return dst
	}
	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	radius := diameter / 2
	if diameter <= 0 {
		radius = int(math.Round(sigmaSpace * 1.5))
	}

	type tap struct {
		dx, dy int
		w      float64
	}
	var taps []tap
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r2 := float64(dx*dx + dy*dy)
			if math.Sqrt(r2) > float64(radius) {
				continue
			}
			taps = append(taps, tap{dx, dy, math.Exp(r2 * spaceCoeff)})
		}
	}

	var rangeWeight [256]float64
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	for d := range rangeWeight {
		rangeWeight[d] = math.Exp(float64(d*d) * colorCoeff)
	}

	pixel := func(x, y int) uint8 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return src.Pix[src.PixOffset(x+b.Min.X, y+b.Min.Y)]
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := int(pixel(x, y))
			var sum, norm float64
			for _, t := range taps {
				v := int(pixel(x+t.dx, y+t.dy))
				d := v - center
				if d < 0 {
					d = -d
				}
				w := t.w * rangeWeight[d]
				sum += w * float64(v)
				norm += w
			}
			dst.Pix[y*dst.Stride+x] = uint8(math.Round(sum / norm))
		}
	}

	return dst
}
