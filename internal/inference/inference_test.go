package inference

import (
	"testing"

	"github.com/ironsheep/plate-ocr/internal/config"
)

func TestNew(t *testing.T) {
	det, err := New(&config.Config{Detector: config.DetectorNone})
	if err != nil || det != nil {
		t.Errorf("none: got (%v, %v), want (nil, nil)", det, err)
	}

	det, err = New(&config.Config{Detector: config.DetectorHTTP, DetectorURL: "http://localhost:9/predict"})
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	if _, ok := det.(*HTTPDetector); !ok {
		t.Errorf("http: got %T, want *HTTPDetector", det)
	}

	if _, err := New(&config.Config{Detector: "tflite"}); err == nil {
		t.Error("expected error for unknown detector")
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		id, classes int
		want        string
	}{
		{0, 80, "person"},
		{2, 80, "car"},
		{7, 80, "truck"},
		{79, 80, "toothbrush"},
		{0, 1, "plate"},
		{3, 5, "class_3"},
		{90, 80, "class_90"},
	}

	for _, tt := range tests {
		if got := className(tt.id, tt.classes); got != tt.want {
			t.Errorf("className(%d, %d): got %s, want %s", tt.id, tt.classes, got, tt.want)
		}
	}

	if len(cocoClasses) != 80 {
		t.Errorf("cocoClasses: got %d names, want 80", len(cocoClasses))
	}
}
