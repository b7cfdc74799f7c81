package imaging

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default annotation colours.
const (
	DefaultBoxColor      = "#ff0000"
	DefaultSelectedColor = "#00ff00"
)

// Annotation is a labelled rectangle to draw over an image.
type Annotation struct {
	Rect     image.Rectangle
	Label    string
	ColorHex string // "#rrggbb"; DefaultBoxColor when empty or invalid
}

// Annotate draws 2-pixel rectangles with text labels over a copy of img.
//
// Labels are drawn above each box with a dark background using the basicfont
// 7x13 face; when there is no room above, the label goes inside the box.
// Boxes are clipped to the image.
func Annotate(img image.Image, annotations []Annotation) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for _, a := range annotations {
		c := parseHexColor(a.ColorHex)
		r := a.Rect.Canon().Intersect(bounds)
		if r.Empty() {
			continue
		}
		drawRect(result, r, c, 2)
		if a.Label != "" {
			drawLabel(result, r.Min.X, r.Min.Y, a.Label, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
		}
	}

	return result
}

// parseHexColor parses "#rrggbb", falling back to DefaultBoxColor.
func parseHexColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultBoxColor)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawRect outlines r with the given stroke width.
func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA, stroke int) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+stroke),
		image.Rect(r.Min.X, r.Max.Y-stroke, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+stroke, r.Max.Y),
		image.Rect(r.Max.X-stroke, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(r), u, image.Point{}, draw.Src)
	}
}

// drawLabel draws text with a background box whose bottom-left sits at
// (x, y), or just below y when that would leave the image.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	face := basicfont.Face7x13
	bounds := img.Bounds()
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	top := y - height - 1
	if top < bounds.Min.Y {
		top = y + 2
	}
	box := image.Rect(x, top, x+width+2, top+height+1).Intersect(bounds)
	if box.Empty() {
		return
	}
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x+1, top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
