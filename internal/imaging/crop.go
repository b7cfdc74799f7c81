package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ErrEmptyRegion is returned when a crop rectangle has no area after clipping.
var ErrEmptyRegion = errors.New("empty crop region")

// ExpandClip grows r by margin pixels on every side and clips the result to
// bounds. The returned rectangle always satisfies
// bounds.Min <= Min <= Max <= bounds.Max; it may be empty when r lies wholly
// outside bounds.
func ExpandClip(r image.Rectangle, margin int, bounds image.Rectangle) image.Rectangle {
	r = r.Canon()
	grown := image.Rect(r.Min.X-margin, r.Min.Y-margin, r.Max.X+margin, r.Max.Y+margin)
	clipped := grown.Intersect(bounds)
	if clipped.Empty() {
		return image.Rectangle{Min: bounds.Min, Max: bounds.Min}
	}
	return clipped
}

// CropRegion extracts r from img after expanding it by margin and clipping to
// the image bounds.
//
// Returns:
//   - *image.NRGBA: The cropped copy, origin at (0,0). The input is not modified.
//   - image.Rectangle: The final rectangle in source coordinates.
//   - error: ErrEmptyRegion if nothing is left after clipping.
func CropRegion(img image.Image, r image.Rectangle, margin int) (*image.NRGBA, image.Rectangle, error) {
	rect := ExpandClip(r, margin, img.Bounds())
	if rect.Empty() {
		return nil, rect, fmt.Errorf("%w: %v within %v", ErrEmptyRegion, r, img.Bounds())
	}
	return imaging.Crop(img, rect), rect, nil
}

// EncodedImage contains an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG payload.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
