// Package detection locates license plate regions in photographs.
//
// Two strategies are provided, and the recognition cascade tries them in
// order:
//
//   - Object detection (DetectByModel): a learned detector reports every
//     salient object; the most confident box with a plate-like aspect ratio is
//     expanded by ModelMargin pixels and cropped.
//   - Contour geometry (DetectByGeometry): Canny edges are grouped into
//     contours, the largest are approximated by polygons, and the first
//     quadrilateral with plate proportions and minimum size is cropped.
//
// # Plate Geometry
//
// A plate candidate must have width/height strictly between MinPlateRatio
// (1.5) and MaxPlateRatio (6.0). The contour strategy additionally requires a
// bounding rectangle wider than 60 and taller than 20 pixels, which rejects
// noise-sized outlines.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// Every rectangle returned by this package is clipped to the image, so
// 0 <= X1 <= X2 <= width and 0 <= Y1 <= Y2 <= height for images whose origin
// is (0,0).
//
// # Limitations
//
// The contour strategy finds axis-aligned bounding rectangles of outlines; a
// strongly rotated plate is cropped with its surrounding background. Busy
// scenes with many large edges can crowd the plate out of the top contours.
package detection
