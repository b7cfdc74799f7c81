package inference

import (
	"errors"
	"fmt"

	"github.com/ironsheep/plate-ocr/internal/config"
	"github.com/ironsheep/plate-ocr/internal/detection"
)

// ErrUnavailable is returned when a detection backend cannot be used.
var ErrUnavailable = errors.New("object detector unavailable")

// New builds the detector selected by cfg.Detector.
//
// Returns a nil detector and nil error for config.DetectorNone.
func New(cfg *config.Config) (detection.ObjectDetector, error) {
	switch cfg.Detector {
	case config.DetectorNone, "":
		return nil, nil
	case config.DetectorHTTP:
		return NewHTTPDetector(cfg.DetectorURL), nil
	case config.DetectorONNX:
		d, err := NewONNXDetector(cfg.ModelPath, cfg.ConfThreshold, cfg.NMSThreshold)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", cfg.Detector)
	}
}
