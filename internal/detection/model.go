package detection

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/plate-ocr/internal/imaging"
)

// Plate geometry shared by both strategies.
const (
	MinPlateRatio = 1.5
	MaxPlateRatio = 6.0

	// ModelMargin is the padding added around a detector box before cropping.
	ModelMargin = 10
)

// Detection is one raw object reported by an ObjectDetector.
type Detection struct {
	Box        image.Rectangle
	Confidence float64
	Class      string
}

// ObjectDetector is a learned object-detection capability.
//
// Detect returns every salient object it finds, not only plates. It must not
// modify img and must return detections in a stable order for identical
// input.
type ObjectDetector interface {
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}

// ModelResult is the outcome of the object-detection strategy.
type ModelResult struct {
	// Crop is the margin-expanded crop of the selected region, nil when no
	// detection has a plate-like aspect ratio.
	Crop *image.NRGBA

	// Selected indexes Regions, -1 when Crop is nil.
	Selected int

	// Rect is the crop rectangle in source image coordinates.
	Rect image.Rectangle

	// Regions holds every detection, unfiltered, in detector order.
	Regions []DetectedRegion
}

// SelectedRegion returns the chosen region, or nil.
func (m *ModelResult) SelectedRegion() *DetectedRegion {
	if m == nil || m.Selected < 0 || m.Selected >= len(m.Regions) {
		return nil
	}
	return &m.Regions[m.Selected]
}

// DetectByModel runs det once over img and crops the best plate candidate.
//
// Candidates must have an aspect ratio strictly between MinPlateRatio and
// MaxPlateRatio. The one with the highest confidence wins; ties go to the
// earliest detection. The winner is expanded by ModelMargin pixels and
// clipped to the image before cropping.
//
// The returned result is never nil. When det fails the error is returned
// together with an empty result (no crop, no regions).
func DetectByModel(ctx context.Context, det ObjectDetector, img image.Image) (*ModelResult, error) {
	empty := &ModelResult{Selected: -1, Regions: []DetectedRegion{}}

	raw, err := det.Detect(ctx, img)
	if err != nil {
		return empty, fmt.Errorf("object detection failed: %w", err)
	}

	bounds := img.Bounds()
	regions := make([]DetectedRegion, 0, len(raw))
	for _, d := range raw {
		regions = append(regions, NewRegion(d.Box, bounds, d.Confidence, d.Class))
	}

	result := &ModelResult{Selected: SelectPlate(regions), Regions: regions}
	sel := result.SelectedRegion()
	if sel == nil {
		return result, nil
	}

	crop, rect, err := imaging.CropRegion(img, sel.Bounds.Rect(), ModelMargin)
	if err != nil {
		return empty, fmt.Errorf("failed to crop detected region: %w", err)
	}
	result.Crop = crop
	result.Rect = rect
	return result, nil
}

// SelectPlate returns the index of the most confident plate-shaped region,
// or -1 if none has a plate-like aspect ratio.
func SelectPlate(regions []DetectedRegion) int {
	best := -1
	for i, r := range regions {
		if !PlateLike(r.AspectRatio) {
			continue
		}
		if best < 0 || r.Confidence > regions[best].Confidence {
			best = i
		}
	}
	return best
}
