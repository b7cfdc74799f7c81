package detection

import (
	"image"
	"testing"
)

func TestNewRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)

	tests := []struct {
		name      string
		r         image.Rectangle
		want      Bounds
		wantRatio float64
	}{
		{"inside", image.Rect(10, 10, 40, 20), Bounds{10, 10, 40, 20}, 3},
		{"swapped corners", image.Rect(40, 20, 10, 10), Bounds{10, 10, 40, 20}, 3},
		{"clipped", image.Rect(-10, 40, 30, 60), Bounds{0, 40, 30, 50}, 3},
		{"zero height", image.Rect(10, 10, 40, 10), Bounds{10, 10, 40, 10}, 0},
		{"zero width", image.Rect(25, 5, 25, 30), Bounds{25, 5, 25, 30}, 0},
		{"zero height clipped", image.Rect(-20, 45, 150, 45), Bounds{0, 45, 100, 45}, 0},
		{"below the image", image.Rect(10, 60, 40, 80), Bounds{10, 50, 40, 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRegion(tt.r, bounds, 0.5, "car")
			if got.Bounds != tt.want {
				t.Errorf("Bounds: got %+v, want %+v", got.Bounds, tt.want)
			}
			if got.AspectRatio != tt.wantRatio {
				t.Errorf("AspectRatio: got %v, want %v", got.AspectRatio, tt.wantRatio)
			}
			if got.Label != "car" || got.Confidence != 0.5 {
				t.Errorf("metadata not preserved: %+v", got)
			}
		})
	}
}

func TestNewRegion_Outside(t *testing.T) {
	got := NewRegion(image.Rect(200, 200, 300, 250), image.Rect(0, 0, 100, 100), 0.9, "x")
	if got.Bounds.Width() != 0 || got.Bounds.Height() != 0 {
		t.Errorf("expected empty bounds, got %+v", got.Bounds)
	}
	if got.AspectRatio != 0 {
		t.Errorf("AspectRatio: got %v, want 0", got.AspectRatio)
	}
}

func TestPlateLike(t *testing.T) {
	tests := []struct {
		ratio float64
		want  bool
	}{
		{1.0, false},
		{1.5, false},
		{1.51, true},
		{3.0, true},
		{5.99, true},
		{6.0, false},
		{8.0, false},
	}

	for _, tt := range tests {
		if got := PlateLike(tt.ratio); got != tt.want {
			t.Errorf("PlateLike(%v): got %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestBoundsRoundTrip(t *testing.T) {
	r := image.Rect(3, 4, 50, 60)
	b := BoundsOf(r)
	if b.Rect() != r {
		t.Errorf("got %v, want %v", b.Rect(), r)
	}
	if b.Width() != 47 || b.Height() != 56 {
		t.Errorf("size: got %dx%d, want 47x56", b.Width(), b.Height())
	}
}
