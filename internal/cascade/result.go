package cascade

import (
	"time"

	"github.com/ironsheep/plate-ocr/internal/detection"
)

// Stage names one step of the cascade.
type Stage string

const (
	StageObjectDetection Stage = "object_detection"
	StageContour         Stage = "contour"
	StageEnhancedFull    Stage = "full_image_enhanced"
	StageRawFull         Stage = "full_image_raw"
)

// Stages lists the cascade steps in execution order.
var Stages = []Stage{StageObjectDetection, StageContour, StageEnhancedFull, StageRawFull}

// SuccessConfidence is reported when a stage's fragments carry no usable
// per-word confidence.
const SuccessConfidence = 0.95

// PlateEntry is one recognized plate.
type PlateEntry struct {
	PlateNumber string `json:"plateNumber"`
}

// StageReport describes what one stage did during a request.
type StageReport struct {
	Stage     Stage     `json:"stage"`
	Ran       bool      `json:"ran"` // recognition was attempted
	Matched   bool      `json:"matched"`
	Fragments int       `json:"fragments"`
	Code      ErrorCode `json:"code,omitempty"`
	Error     string    `json:"error,omitempty"`
	Duration  string    `json:"duration"`
}

// Result is the outcome of one cascade run. It is built once and not
// modified afterwards.
type Result struct {
	Success bool `json:"success"`

	// PlateNumber is the canonical plate on success. On failure it is the
	// space-joined raw text of the last stage that ran, or nil when that
	// stage recognized nothing.
	PlateNumber *string `json:"plateNumber"`

	Plates []PlateEntry `json:"plates"`

	// RawTexts are the fragments of the last stage that ran.
	RawTexts []string `json:"rawTexts"`

	// YoloDetections counts every object-detector region, plate-shaped or
	// not. It is zero when the detector is unavailable or failed.
	YoloDetections int `json:"yoloDetections"`

	Confidence float64 `json:"confidence"`

	// Stage is the step that produced the plate. On failure it is the last
	// stage that ran recognition, empty if none did.
	Stage   Stage  `json:"stage,omitempty"`
	Grammar string `json:"grammar,omitempty"`

	// Region is the localized plate for the object_detection and contour
	// stages.
	Region     *detection.DetectedRegion `json:"region,omitempty"`
	PlateColor string                    `json:"plateColor,omitempty"`

	Stages    []StageReport `json:"stages"`
	RequestID string        `json:"requestId"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}
