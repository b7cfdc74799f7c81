package cascade

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCapabilitySet(t *testing.T) {
	tests := []struct {
		name   string
		set    CapabilitySet
		str    string
		json   string
		hasOD  bool
		hasOCR bool
	}{
		{"none", 0, "none", `[]`, false, false},
		{"detector only", ObjectDetection, "object_detection", `["object_detection"]`, true, false},
		{"ocr only", TextRecognition, "text_recognition", `["text_recognition"]`, false, true},
		{"both", ObjectDetection | TextRecognition, "object_detection+text_recognition",
			`["object_detection","text_recognition"]`, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			data, err := json.Marshal(tt.set)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.json {
				t.Errorf("JSON = %s, want %s", data, tt.json)
			}
			if tt.set.Has(ObjectDetection) != tt.hasOD || tt.set.Has(TextRecognition) != tt.hasOCR {
				t.Errorf("Has mismatch for %v", tt.set)
			}
		})
	}
}

func TestNewDetectionContext(t *testing.T) {
	dc := NewDetectionContext(nil, nil)
	if dc.Capabilities != 0 {
		t.Errorf("Capabilities = %v, want none", dc.Capabilities)
	}

	dc = NewDetectionContext(&fakeDetector{}, &fakeRecognizer{})
	if !dc.Capabilities.Has(ObjectDetection | TextRecognition) {
		t.Errorf("Capabilities = %v, want both", dc.Capabilities)
	}
}

func TestStageError(t *testing.T) {
	cause := errors.New("boom")
	err := error(newStageError(StageContour, ErrorStageInternal, cause))

	if !errors.Is(err, cause) {
		t.Error("StageError should unwrap to its cause")
	}
	if !IsCode(err, ErrorStageInternal) || IsCode(err, ErrorNoRegion) {
		t.Error("IsCode mismatch")
	}
	if msg := err.Error(); !strings.Contains(msg, "contour") || !strings.Contains(msg, "boom") {
		t.Errorf("Error() = %q", msg)
	}

	bare := newStageError(StageRawFull, ErrorNoRegion, nil)
	if bare.Error() != "full_image_raw: NO_REGION" {
		t.Errorf("Error() = %q", bare.Error())
	}
	if IsCode(errors.New("plain"), ErrorNoRegion) {
		t.Error("plain errors carry no code")
	}
}
