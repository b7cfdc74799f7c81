package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAnnotate(t *testing.T) {
	img := createInMemoryImage(200, 100, color.White)

	out := Annotate(img, []Annotation{
		{Rect: image.Rect(40, 40, 160, 80), Label: "plate 0.91", ColorHex: "#00ff00"},
	})

	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}

	// Box outline on the bottom edge.
	if c := out.RGBAAt(100, 79); c != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("box edge: got %+v, want green", c)
	}
	// Interior untouched.
	if c := out.RGBAAt(100, 60); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("box interior: got %+v, want white", c)
	}
	// Label background above the box darkens the pixels there.
	if c := out.RGBAAt(111, 30); c.R == 255 && c.G == 255 && c.B == 255 {
		t.Error("expected label background above the box")
	}

	// Source untouched.
	r, g, b, _ := img.At(100, 79).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Error("source image was modified")
	}
}

func TestAnnotate_ClipsAndSkips(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	out := Annotate(img, []Annotation{
		{Rect: image.Rect(-20, -20, 10, 10)},
		{Rect: image.Rect(100, 100, 120, 120), Label: "outside"},
	})

	if c := out.RGBAAt(9, 5); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("clipped box edge: got %+v, want default red", c)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex  string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#00ff00", color.RGBA{0, 255, 0, 255}},
		{"#0000ff", color.RGBA{0, 0, 255, 255}},
		{"", color.RGBA{255, 0, 0, 255}},
		{"not-a-color", color.RGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := parseHexColor(tt.hex); got != tt.want {
				t.Errorf("parseHexColor(%q): got %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}
