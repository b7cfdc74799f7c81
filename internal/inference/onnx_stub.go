//go:build !gocv

package inference

import (
	"context"
	"image"

	"github.com/ironsheep/plate-ocr/internal/detection"
)

// ONNXDetector is unavailable without the gocv build tag.
type ONNXDetector struct{}

// NewONNXDetector always fails: the binary was built without OpenCV.
func NewONNXDetector(modelPath string, confThreshold, nmsThreshold float32) (*ONNXDetector, error) {
	return nil, ErrUnavailable
}

// Detect always returns ErrUnavailable.
func (d *ONNXDetector) Detect(ctx context.Context, img image.Image) ([]detection.Detection, error) {
	return nil, ErrUnavailable
}

// Close is a no-op.
func (d *ONNXDetector) Close() error { return nil }
