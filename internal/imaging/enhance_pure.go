//go:build !gocv

package imaging

import "image"

// equalizeAndSmooth runs CLAHE and the bilateral filter in Go.
func equalizeAndSmooth(gray *image.Gray) (*image.Gray, error) {
	equalized := CLAHE(gray, claheClipLimit, claheTileGrid)
	return Bilateral(equalized, bilateralDiam, bilateralSigmaC, bilateralSigmaSp), nil
}
