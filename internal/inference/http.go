package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/ironsheep/plate-ocr/internal/detection"
)

// HTTPDetector calls an external inference service.
//
// The image is sent as a multipart form field "file" (PNG). The service
// answers with
//
//	{"detections": [{"x1": 10, "y1": 20, "x2": 110, "y2": 60, "confidence": 0.9, "class": "car"}]}
//
// in pixel coordinates of the posted image.
type HTTPDetector struct {
	mu           sync.Mutex
	inferenceURL string
	client       *http.Client
}

// NewHTTPDetector creates a detector for the service at inferenceURL.
// No timeout is set; cancel through the context passed to Detect.
func NewHTTPDetector(inferenceURL string) *HTTPDetector {
	return &HTTPDetector{
		inferenceURL: inferenceURL,
		client:       &http.Client{},
	}
}

type httpDetection struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Confidence float64 `json:"confidence"`
	Class      string  `json:"class"`
}

// Detect posts img to the service and returns its detections in response
// order.
func (d *HTTPDetector) Detect(ctx context.Context, img image.Image) ([]detection.Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.inferenceURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	d.mu.Lock()
	defer d.mu.Unlock()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Detections []httpDetection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	origin := img.Bounds().Min
	detections := make([]detection.Detection, 0, len(result.Detections))
	for _, r := range result.Detections {
		box := image.Rect(
			int(math.Round(r.X1)), int(math.Round(r.Y1)),
			int(math.Round(r.X2)), int(math.Round(r.Y2)),
		).Add(origin)
		detections = append(detections, detection.Detection{
			Box:        box,
			Confidence: r.Confidence,
			Class:      r.Class,
		})
	}
	return detections, nil
}

// CheckHealth probes the service's /health endpoint.
func (d *HTTPDetector) CheckHealth(ctx context.Context) error {
	url := strings.TrimSuffix(d.inferenceURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service unhealthy: %d", resp.StatusCode)
	}
	return nil
}
