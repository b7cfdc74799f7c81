package imaging

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestExpandClip(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)

	tests := []struct {
		name   string
		r      image.Rectangle
		margin int
		want   image.Rectangle
	}{
		{"interior", image.Rect(20, 10, 60, 30), 10, image.Rect(10, 0, 70, 40)},
		{"clipped at origin", image.Rect(2, 3, 40, 20), 10, image.Rect(0, 0, 50, 30)},
		{"clipped at far edge", image.Rect(80, 30, 98, 48), 5, image.Rect(75, 25, 100, 50)},
		{"zero margin", image.Rect(20, 10, 60, 30), 0, image.Rect(20, 10, 60, 30)},
		{"swapped corners", image.Rect(60, 30, 20, 10), 0, image.Rect(20, 10, 60, 30)},
		{"larger than image", image.Rect(-50, -50, 500, 500), 10, bounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandClip(tt.r, tt.margin, bounds)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandClip_StaysInBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 48)

	for x1 := -20; x1 <= 80; x1 += 7 {
		for y1 := -20; y1 <= 60; y1 += 9 {
			for _, size := range []int{0, 5, 40, 120} {
				r := image.Rect(x1, y1, x1+size, y1+size/2)
				got := ExpandClip(r, 10, bounds)
				if got.Min.X < 0 || got.Min.Y < 0 || got.Max.X > 64 || got.Max.Y > 48 ||
					got.Min.X > got.Max.X || got.Min.Y > got.Max.Y {
					t.Fatalf("ExpandClip(%v) = %v escapes %v", r, got, bounds)
				}
			}
		}
	}
}

func TestExpandClip_OutsideIsEmpty(t *testing.T) {
	got := ExpandClip(image.Rect(200, 200, 250, 220), 10, image.Rect(0, 0, 100, 100))
	if !got.Empty() {
		t.Errorf("expected empty rectangle, got %v", got)
	}
}

func TestCropRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	crop, rect, err := CropRegion(img, image.Rect(20, 20, 50, 40), 10)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	if rect != image.Rect(10, 10, 60, 50) {
		t.Errorf("rect: got %v, want (10,10)-(60,50)", rect)
	}
	if crop.Bounds() != image.Rect(0, 0, 50, 40) {
		t.Errorf("crop bounds: got %v, want 50x40 at origin", crop.Bounds())
	}
}

func TestCropRegion_VerifyContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x >= 20 {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			}
		}
	}

	crop, _, err := CropRegion(img, image.Rect(20, 0, 40, 40), 0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	r, g, b, _ := crop.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("crop pixel: got (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}

	// Source must be untouched.
	r, _, _, _ = img.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Error("source image was modified")
	}
}

func TestCropRegion_Empty(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	_, _, err := CropRegion(img, image.Rect(100, 100, 120, 120), 0)
	if !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("expected ErrEmptyRegion, got %v", err)
	}
}

func TestEncodePNG(t *testing.T) {
	img := createInMemoryImage(30, 20, color.RGBA{0, 255, 0, 255})

	result, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	if _, err := png.Decode(strings.NewReader(string(decoded))); err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
}
