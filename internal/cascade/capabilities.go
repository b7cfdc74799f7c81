package cascade

import (
	"context"
	"encoding/json"
	"image"
	"strings"

	"github.com/ironsheep/plate-ocr/internal/detection"
	"github.com/ironsheep/plate-ocr/internal/ocr"
)

// CapabilitySet records which optional capabilities are present.
type CapabilitySet uint8

const (
	ObjectDetection CapabilitySet = 1 << iota
	TextRecognition
)

var capabilityNames = []struct {
	flag CapabilitySet
	name string
}{
	{ObjectDetection, "object_detection"},
	{TextRecognition, "text_recognition"},
}

// Has reports whether every flag in c is set.
func (s CapabilitySet) Has(c CapabilitySet) bool {
	return s&c == c
}

// Names lists the set flags in a fixed order.
func (s CapabilitySet) Names() []string {
	names := []string{}
	for _, c := range capabilityNames {
		if s.Has(c.flag) {
			names = append(names, c.name)
		}
	}
	return names
}

func (s CapabilitySet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), "+")
}

// MarshalJSON encodes the set as a list of names.
func (s CapabilitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// TextRecognizer is an OCR capability. Fragments must come back in reading
// order.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) ([]ocr.Fragment, error)
}

// DetectionContext owns the capability handles shared by all requests.
type DetectionContext struct {
	Detector     detection.ObjectDetector
	Recognizer   TextRecognizer
	Capabilities CapabilitySet
}

// NewDetectionContext records the given capabilities. Either may be nil.
func NewDetectionContext(detector detection.ObjectDetector, recognizer TextRecognizer) *DetectionContext {
	dc := &DetectionContext{Detector: detector, Recognizer: recognizer}
	if detector != nil {
		dc.Capabilities |= ObjectDetection
	}
	if recognizer != nil {
		dc.Capabilities |= TextRecognition
	}
	return dc
}
