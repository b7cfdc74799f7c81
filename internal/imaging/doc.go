// Package imaging provides the pixel-level operations used by the plate
// recognition cascade.
//
// This package implements image decoding at the upload boundary, margin-expanded
// cropping, Canny edge detection, OCR-oriented enhancement (luminance, contrast
// limited adaptive histogram equalization and bilateral smoothing), plate
// background colour classification and annotation of detected regions.
// All operations work with standard Go image.Image types and use a coordinate system
// where (0,0) is at the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Decoded images are normalised to *image.NRGBA with their origin at (0,0), so
// detector boxes and crop rectangles can be expressed directly in pixel space.
//
// # Immutability
//
// No function in this package mutates its input. Enhancement and cropping
// always return new images, which lets a single decoded request image be shared
// by every stage of the cascade.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Disallowed file extensions (ErrUnsupportedFormat)
//   - Oversized or undecodable image data
//   - Crop rectangles that end up empty after clipping (ErrEmptyRegion)
//
// Enhance never returns an error: on internal failure it falls back to the
// grayscale conversion of its input.
package imaging
