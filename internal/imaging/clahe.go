package imaging

import (
	"image"
	"math"
)

// CLAHE applies contrast limited adaptive histogram equalization to a
// grayscale image.
//
// The image is divided into a tiles x tiles grid. Each tile gets its own
// equalization lookup table built from a histogram whose bins are clipped at
// clipLimit*tileArea/256 counts; the clipped excess is spread evenly over all
// bins. Output pixels are bilinearly interpolated between the lookup tables of
// the four nearest tile centres, which removes block artifacts at tile seams.
//
// Images smaller than the grid in either dimension use one tile per pixel
// along that axis. The input is not modified.
func CLAHE(src *image.Gray, clipLimit float64, tiles int) *image.Gray {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return dst
	}
	if tiles < 1 {
		tiles = 1
	}
	tilesX, tilesY := min(tiles, width), min(tiles, height)

	pixel := func(x, y int) uint8 {
		return src.Pix[src.PixOffset(x+b.Min.X, y+b.Min.Y)]
	}

	// Tile edges; tile i spans [edgesX[i], edgesX[i+1]).
	edgesX := tileEdges(width, tilesX)
	edgesY := tileEdges(height, tilesY)

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			var hist [256]int
			for y := edgesY[ty]; y < edgesY[ty+1]; y++ {
				for x := edgesX[tx]; x < edgesX[tx+1]; x++ {
					hist[pixel(x, y)]++
				}
			}
			area := (edgesX[tx+1] - edgesX[tx]) * (edgesY[ty+1] - edgesY[ty])
			luts[ty*tilesX+tx] = equalizeClipped(hist, area, clipLimit)
		}
	}

	tileW := float64(width) / float64(tilesX)
	tileH := float64(height) / float64(tilesY)

	for y := 0; y < height; y++ {
		fy := (float64(y)+0.5)/tileH - 0.5
		ty1 := int(math.Floor(fy))
		wy := fy - float64(ty1)
		ty2 := ty1 + 1
		ty1, ty2 = clamp(ty1, 0, tilesY-1), clamp(ty2, 0, tilesY-1)

		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)/tileW - 0.5
			tx1 := int(math.Floor(fx))
			wx := fx - float64(tx1)
			tx2 := tx1 + 1
			tx1, tx2 = clamp(tx1, 0, tilesX-1), clamp(tx2, 0, tilesX-1)

			v := pixel(x, y)
			top := (1-wx)*float64(luts[ty1*tilesX+tx1][v]) + wx*float64(luts[ty1*tilesX+tx2][v])
			bottom := (1-wx)*float64(luts[ty2*tilesX+tx1][v]) + wx*float64(luts[ty2*tilesX+tx2][v])
			dst.Pix[y*dst.Stride+x] = uint8(math.Round((1-wy)*top + wy*bottom))
		}
	}

	return dst
}

// tileEdges splits n pixels into count nearly equal spans.
func tileEdges(n, count int) []int {
	edges := make([]int, count+1)
	for i := range edges {
		edges[i] = i * n / count
	}
	return edges
}

// equalizeClipped builds a histogram-equalization table for one tile.
func equalizeClipped(hist [256]int, area int, clipLimit float64) [256]uint8 {
	var lut [256]uint8
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	if clipLimit > 0 {
		limit := int(clipLimit * float64(area) / 256)
		if limit < 1 {
			limit = 1
		}
		excess := 0
		for i, c := range hist {
			if c > limit {
				excess += c - limit
				hist[i] = limit
			}
		}

		batch := excess / 256
		residual := excess - batch*256
		for i := range hist {
			hist[i] += batch
		}
		if residual > 0 {
			step := max(256/residual, 1)
			for i := 0; i < 256 && residual > 0; i += step {
				hist[i]++
				residual--
			}
		}
	}

	scale := 255.0 / float64(area)
	sum := 0
	for i, c := range hist {
		sum += c
		lut[i] = uint8(min(math.Round(float64(sum)*scale), 255))
	}
	return lut
}
