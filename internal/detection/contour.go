package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/plate-ocr/internal/imaging"
)

// Contour strategy parameters.
const (
	ContourCannyLow  = 100
	ContourCannyHigh = 200

	// ContourCandidates is how many of the largest contours are examined.
	ContourCandidates = 10

	// ContourEpsilon scales the contour perimeter into the polygon
	// approximation tolerance.
	ContourEpsilon = 0.02

	ContourMinWidth  = 60
	ContourMinHeight = 20

	// ContourMargin is the padding added around an accepted contour.
	ContourMargin = 5

	// minContourPixels discards edge fragments too small to be an outline.
	minContourPixels = 10
)

// ContourResult is an accepted plate outline.
type ContourResult struct {
	// Crop is the margin-expanded crop, origin (0,0).
	Crop *image.NRGBA

	// Rect is the crop rectangle in source image coordinates.
	Rect image.Rectangle

	// Region is the unexpanded bounding rectangle of the outline.
	Region DetectedRegion

	// Polygon is the four-vertex approximation of the outline.
	Polygon []Point
}

// DetectByGeometry searches img for a plate-shaped quadrilateral outline.
//
// Returns nil when none of the largest contours qualifies.
//
// # Algorithm
//
//  1. Edge Detection: Canny with hysteresis thresholds 100/200
//  2. Contour Finding: flood-fill groups 8-connected edge pixels
//  3. Ranking: each contour is reduced to its convex hull and the
//     ContourCandidates largest by hull area are kept, largest first
//  4. Approximation: Douglas-Peucker on the closed hull with tolerance
//     ContourEpsilon x perimeter
//  5. Acceptance: the first polygon with exactly four vertices whose
//     bounding rectangle has 1.5 < w/h < 6.0, w > 60 and h > 20
//  6. Crop: the bounding rectangle grown by ContourMargin and clipped
//
// Builds tagged gocv run steps 1 to 4 through OpenCV (Canny, FindContours
// with RETR_TREE and CHAIN_APPROX_SIMPLE ranked by contour area, ApproxPolyDP).
//
// # Confidence
//
// The region confidence is the rectangularity of the outline: polygon area
// divided by bounding rectangle area, so an axis-aligned plate scores close
// to 1.0 and a skewed one less.
func DetectByGeometry(img image.Image) *ContourResult {
	bounds := img.Bounds()

	for _, poly := range plateOutlines(img) {
		if len(poly) != 4 {
			continue
		}

		rect := boundingRect(poly)
		w, h := rect.Dx(), rect.Dy()
		if !acceptPlateRect(w, h) {
			continue
		}

		// Outline coordinates are relative to the image origin.
		rect = rect.Add(bounds.Min)
		crop, cropRect, err := imaging.CropRegion(img, rect, ContourMargin)
		if err != nil {
			continue
		}

		region := NewRegion(rect, bounds, polygonArea(poly)/float64(w*h), "contour")
		return &ContourResult{
			Crop:    crop,
			Rect:    cropRect,
			Region:  region,
			Polygon: poly,
		}
	}

	return nil
}

// hullOutlines finds edge components in Go and returns the polygon
// approximations of the ContourCandidates largest, largest first. Points are
// relative to the image origin.
func hullOutlines(img image.Image) [][]Point {
	edges := imaging.Canny(img, ContourCannyLow, ContourCannyHigh)
	width, height := edges.Bounds().Dx(), edges.Bounds().Dy()

	contours := findContours(edges, width, height)

	type candidate struct {
		hull []Point
		area float64
	}
	candidates := make([]candidate, 0, len(contours))
	for _, c := range contours {
		hull := convexHull(c)
		candidates = append(candidates, candidate{hull: hull, area: polygonArea(hull)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})
	if len(candidates) > ContourCandidates {
		candidates = candidates[:ContourCandidates]
	}

	outlines := make([][]Point, 0, len(candidates))
	for _, c := range candidates {
		outlines = append(outlines, approxPolygon(c.hull, ContourEpsilon*perimeter(c.hull)))
	}
	return outlines
}

// acceptPlateRect applies the size and proportion filter.
func acceptPlateRect(w, h int) bool {
	return w > ContourMinWidth && h > ContourMinHeight && PlateLike(aspectRatio(w, h))
}

// findContours finds connected components (contours) in a binary edge image.
//
// Uses flood-fill to group connected edge pixels into contours.
// Connectivity is 8-connected (includes diagonals). Contours are returned in
// raster order of their first pixel.
//
// Contours smaller than minContourPixels are discarded as noise.
func findContours(edges *image.Gray, width, height int) [][]Point {
	visited := make([]bool, width*height)
	contours := make([][]Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if edges.Pix[y*edges.Stride+x] != 0 && !visited[i] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= minContourPixels {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large contours. Marks visited pixels and returns them.
func floodFill(edges *image.Gray, visited []bool, startX, startY, width, height int) []Point {
	var contour []Point
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if visited[i] || edges.Pix[p.Y*edges.Stride+p.X] == 0 {
			continue
		}

		visited[i] = true
		contour = append(contour, p)

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return contour
}

// convexHull returns the hull of pts in counter-clockwise order (Andrew's
// monotone chain). Collinear points are dropped.
func convexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func cross(o, a, b Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// polygonArea is the absolute shoelace area of a closed polygon.
func polygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(float64(sum)) / 2
}

// perimeter is the length of the closed polygon.
func perimeter(poly []Point) float64 {
	if len(poly) < 2 {
		return 0
	}
	total := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		total += math.Hypot(float64(poly[j].X-poly[i].X), float64(poly[j].Y-poly[i].Y))
	}
	return total
}

// approxPolygon simplifies a closed polygon with Douglas-Peucker.
//
// The ring is split at its first vertex and the vertex farthest from it, each
// half is simplified, and vertices that still lie within epsilon of the line
// through their neighbours are removed.
func approxPolygon(poly []Point, epsilon float64) []Point {
	n := len(poly)
	if n < 3 {
		return append([]Point(nil), poly...)
	}

	far, farDist := 0, -1.0
	for i := 1; i < n; i++ {
		d := math.Hypot(float64(poly[i].X-poly[0].X), float64(poly[i].Y-poly[0].Y))
		if d > farDist {
			far, farDist = i, d
		}
	}

	first := douglasPeucker(poly[:far+1], epsilon)
	second := douglasPeucker(append(append([]Point(nil), poly[far:]...), poly[0]), epsilon)

	ring := append(first[:len(first)-1:len(first)-1], second[:len(second)-1]...)

	for changed := true; changed && len(ring) > 3; {
		changed = false
		for i := 0; i < len(ring) && len(ring) > 3; i++ {
			prev := ring[(i+len(ring)-1)%len(ring)]
			next := ring[(i+1)%len(ring)]
			if segmentDistance(ring[i], prev, next) < epsilon {
				ring = append(ring[:i], ring[i+1:]...)
				changed = true
				break
			}
		}
	}
	return ring
}

// douglasPeucker simplifies an open chain, keeping both end points.
func douglasPeucker(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	idx, maxDist := 0, -1.0
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDistance(pts[i], pts[0], pts[len(pts)-1]); d > maxDist {
			idx, maxDist = i, d
		}
	}

	if maxDist <= epsilon {
		return []Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:idx+1], epsilon)
	right := douglasPeucker(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// segmentDistance is the distance from p to the segment a-b.
func segmentDistance(p, a, b Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	px, py := float64(p.X-a.X), float64(p.Y-a.Y)
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px, py)
	}
	t := math.Max(0, math.Min(1, (px*dx+py*dy)/lenSq))
	return math.Hypot(px-t*dx, py-t*dy)
}

// boundingRect returns the smallest rectangle holding every vertex. Max is
// exclusive, so a vertex on the far edge is included.
func boundingRect(poly []Point) image.Rectangle {
	r := image.Rect(poly[0].X, poly[0].Y, poly[0].X+1, poly[0].Y+1)
	for _, p := range poly[1:] {
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	return r
}
