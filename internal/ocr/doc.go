// Package ocr provides Optical Character Recognition (OCR) functionality using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) and returns
// recognized words as ordered fragments with confidences and bounding boxes.
// Fragment order follows Tesseract's reading order, which the plate
// extractor relies on when it joins fragments.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language. Plates need Korean
// and the Latin digits from English:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-kor tesseract-ocr-eng
//
// # Concurrency
//
// A Tesseract value holds one engine for the life of the process. Calls to
// Recognize are serialized; create several values to recognize in parallel.
//
// # Confidence Scores
//
// Tesseract reports confidence as 0-100; fragments carry it scaled to 0.0-1.0.
package ocr
