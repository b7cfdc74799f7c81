package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// ErrUnavailable is returned when the recognizer has been closed.
var ErrUnavailable = errors.New("text recognizer unavailable")

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Fragment is one recognized word with its location and OCR confidence.
type Fragment struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	// Higher values indicate more certain recognition.
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the recognized image.
	Bounds Bounds `json:"bounds"`
}

// Tesseract recognizes text with a single long-lived Tesseract engine.
//
// The engine keeps state between calls, so Recognize serializes access with
// a mutex. A Tesseract is safe for concurrent use.
type Tesseract struct {
	mu        sync.Mutex
	client    *gosseract.Client
	languages []string
	prefix    string
}

// NewTesseract creates a recognizer.
//
// Parameters:
//   - languages: Tesseract language codes joined with "+" (e.g., "kor+eng").
//     The corresponding traineddata files must be installed.
//   - tessdataPrefix: Directory holding traineddata files. Empty uses the
//     Tesseract default.
func NewTesseract(languages, tessdataPrefix string) (*Tesseract, error) {
	langs := splitLanguages(languages)
	if len(langs) == 0 {
		return nil, fmt.Errorf("no OCR language configured")
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	return &Tesseract{client: client, languages: langs, prefix: tessdataPrefix}, nil
}

// Recognize performs OCR on img and returns its words in reading order.
//
// Word-level boxes come from Tesseract's RIL_WORD iterator, which walks the
// page top to bottom and left to right within a line. Empty words are
// dropped. Bounds are relative to img's origin.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) ([]Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == nil {
		return nil, ErrUnavailable
	}

	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	fragments := make([]Fragment, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:       word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return fragments, nil
}

// Close releases the engine. Recognize returns ErrUnavailable afterwards.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

// Info contains information about the OCR subsystem.
type Info struct {
	Available    bool     `json:"available"`
	Version      string   `json:"version,omitempty"`
	Languages    []string `json:"languages"`
	Backend      string   `json:"backend"`
	TessdataPath string   `json:"tessdata_path,omitempty"`
}

// Info reports the engine version and configuration.
func (t *Tesseract) Info() Info {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := Info{
		Languages:    t.languages,
		Backend:      "gosseract",
		TessdataPath: t.prefix,
	}
	if t.client == nil {
		return info
	}
	info.Version = t.client.Version()
	info.Available = info.Version != ""
	return info
}

// Texts returns the text of each fragment in order.
func Texts(fragments []Fragment) []string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return texts
}

func splitLanguages(s string) []string {
	var langs []string
	for _, l := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' }) {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}
