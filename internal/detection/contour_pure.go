//go:build !gocv

package detection

import "image"

func plateOutlines(img image.Image) [][]Point {
	return hullOutlines(img)
}
