//go:build gocv

package detection

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// plateOutlines runs the contour search through OpenCV. It falls back to
// hullOutlines when the image cannot be converted.
func plateOutlines(img image.Image) [][]Point {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return hullOutlines(img)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, ContourCannyLow, ContourCannyHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	type candidate struct {
		idx  int
		area float64
	}
	candidates := make([]candidate, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		candidates = append(candidates, candidate{idx: i, area: gocv.ContourArea(contours.At(i))})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})
	if len(candidates) > ContourCandidates {
		candidates = candidates[:ContourCandidates]
	}

	outlines := make([][]Point, 0, len(candidates))
	for _, c := range candidates {
		contour := contours.At(c.idx)
		approx := gocv.ApproxPolyDP(contour, ContourEpsilon*gocv.ArcLength(contour, true), true)
		pts := approx.ToPoints()
		approx.Close()

		poly := make([]Point, len(pts))
		for k, p := range pts {
			poly[k] = Point{X: p.X, Y: p.Y}
		}
		outlines = append(outlines, poly)
	}
	return outlines
}
