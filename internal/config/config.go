// Package config loads plate-ocr settings from the environment.
//
// A .env file in the working directory is read first when present; variables
// already set in the process environment win over values from the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Detector kinds accepted by PLATE_OCR_DETECTOR.
const (
	DetectorNone = "none"
	DetectorHTTP = "http"
	DetectorONNX = "onnx"
)

// Config holds service configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Languages is the Tesseract language list, e.g. "kor+eng".
	Languages string

	// TessdataPrefix overrides Tesseract's tessdata directory when non-empty.
	TessdataPrefix string

	// Detector selects the object-detection capability: none, http or onnx.
	Detector string

	// DetectorURL is the inference endpoint used when Detector is "http".
	DetectorURL string

	// ModelPath is the YOLO ONNX model used when Detector is "onnx".
	ModelPath string

	// ConfThreshold and NMSThreshold tune the ONNX detector.
	ConfThreshold float32
	NMSThreshold  float32

	// MaxImageBytes bounds the size of an image accepted for recognition.
	MaxImageBytes int64
}

// Load reads .env (if any) and the environment, applies defaults and validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		LogLevel:       getEnvOrDefault("PLATE_OCR_LOG_LEVEL", "info"),
		Languages:      getEnvOrDefault("PLATE_OCR_LANGUAGES", "kor+eng"),
		TessdataPrefix: getEnvOrDefault("PLATE_OCR_TESSDATA_PREFIX", ""),
		Detector:       strings.ToLower(getEnvOrDefault("PLATE_OCR_DETECTOR", DetectorNone)),
		DetectorURL:    getEnvOrDefault("PLATE_OCR_DETECTOR_URL", ""),
		ModelPath:      getEnvOrDefault("PLATE_OCR_MODEL_PATH", "models/yolov8n.onnx"),
		ConfThreshold:  getEnvAsFloat32OrDefault("PLATE_OCR_CONF_THRESHOLD", 0.25),
		NMSThreshold:   getEnvAsFloat32OrDefault("PLATE_OCR_NMS_THRESHOLD", 0.45),
		MaxImageBytes:  getEnvAsInt64OrDefault("PLATE_OCR_MAX_IMAGE_BYTES", 20<<20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	switch c.Detector {
	case DetectorNone, DetectorONNX:
	case DetectorHTTP:
		if c.DetectorURL == "" {
			return fmt.Errorf("PLATE_OCR_DETECTOR_URL is required when PLATE_OCR_DETECTOR=http")
		}
	default:
		return fmt.Errorf("unknown PLATE_OCR_DETECTOR %q (want none, http or onnx)", c.Detector)
	}

	if c.Languages == "" {
		return fmt.Errorf("PLATE_OCR_LANGUAGES must not be empty")
	}
	if c.ConfThreshold < 0 || c.ConfThreshold > 1 {
		return fmt.Errorf("PLATE_OCR_CONF_THRESHOLD must be between 0 and 1, got %v", c.ConfThreshold)
	}
	if c.NMSThreshold < 0 || c.NMSThreshold > 1 {
		return fmt.Errorf("PLATE_OCR_NMS_THRESHOLD must be between 0 and 1, got %v", c.NMSThreshold)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("PLATE_OCR_MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64OrDefault gets environment variable as int64 or returns default
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat32OrDefault(key string, defaultValue float32) float32 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		return defaultValue
	}
	return float32(value)
}
