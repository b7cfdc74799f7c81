// Package cascade sequences plate localization and text recognition into an
// ordered, early-exiting pipeline.
//
// Four stages run in a fixed order, and the first one that yields a plate
// number ends the request:
//
//  1. object_detection: the learned detector's best plate-shaped box is
//     cropped, enhanced, recognized and matched.
//  2. contour: a plate-shaped quadrilateral found by edge geometry on the
//     original image is cropped, enhanced, recognized and matched.
//  3. full_image_enhanced: the whole image is enhanced, recognized and
//     matched.
//  4. full_image_raw: the unmodified image is recognized and matched.
//
// A stage whose detector finds no region is skipped without running
// enhancement or recognition. Stage failures (a missing capability, an error
// or panic inside a stage) are recorded as StageError values in the result's
// stage reports and never abort the request.
//
// Capabilities are held by a DetectionContext built once at startup and
// shared by every request. The orchestrator itself keeps no per-request
// state, so one Orchestrator can serve concurrent requests as long as the
// capabilities tolerate it (the adapters in this module serialize access).
package cascade
