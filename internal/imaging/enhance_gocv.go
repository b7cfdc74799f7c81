//go:build gocv

package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// equalizeAndSmooth runs CLAHE and the bilateral filter through OpenCV.
func equalizeAndSmooth(gray *image.Gray) (*image.Gray, error) {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Point{X: claheTileGrid, Y: claheTileGrid})
	defer clahe.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(src, &equalized)

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.BilateralFilter(equalized, &smoothed, bilateralDiam, bilateralSigmaC, bilateralSigmaSp)

	out, err := smoothed.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert result: %w", err)
	}
	g, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", out)
	}
	return g, nil
}
