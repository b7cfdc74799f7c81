package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Enhancement parameters tuned for thin plate glyphs.
const (
	claheClipLimit   = 2.0
	claheTileGrid    = 8
	bilateralDiam    = 11
	bilateralSigmaC  = 17.0
	bilateralSigmaSp = 17.0
)

// Grayscale converts img to single-channel luminance using ITU-R BT.601
// weights. The result has origin (0,0).
func Grayscale(img image.Image) *image.Gray {
	// bild writes the luminance to R, G and B alike.
	rgba := effect.GrayscaleWithWeights(img, 0.299, 0.587, 0.114)
	b := rgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := rgba.Pix[y*rgba.Stride:]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// Enhance prepares an image for text recognition.
//
// The pipeline is luminance conversion, CLAHE (clip limit 2.0 on an 8x8 tile
// grid) and a bilateral filter (diameter 11, sigma 17 for both range and
// space). The output is grayscale with the same dimensions as img. Builds
// tagged gocv run CLAHE and the bilateral filter through OpenCV.
//
// Enhance never fails. If a step panics or errors the grayscale conversion
// of img is returned instead.
func Enhance(img image.Image) (out *image.Gray) {
	gray := Grayscale(img)
	defer func() {
		if recover() != nil {
			out = gray
		}
	}()

	enhanced, err := equalizeAndSmooth(gray)
	if err != nil {
		return gray
	}
	return enhanced
}
