package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{
		"PLATE_OCR_LOG_LEVEL", "PLATE_OCR_LANGUAGES", "PLATE_OCR_DETECTOR",
		"PLATE_OCR_DETECTOR_URL", "PLATE_OCR_CONF_THRESHOLD", "PLATE_OCR_MAX_IMAGE_BYTES",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.Languages != "kor+eng" {
		t.Errorf("Languages: got %q, want kor+eng", cfg.Languages)
	}
	if cfg.Detector != DetectorNone {
		t.Errorf("Detector: got %q, want none", cfg.Detector)
	}
	if cfg.ConfThreshold != 0.25 {
		t.Errorf("ConfThreshold: got %v, want 0.25", cfg.ConfThreshold)
	}
	if cfg.MaxImageBytes != 20<<20 {
		t.Errorf("MaxImageBytes: got %d", cfg.MaxImageBytes)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PLATE_OCR_DETECTOR", "HTTP")
	t.Setenv("PLATE_OCR_DETECTOR_URL", "http://localhost:5000/predict")
	t.Setenv("PLATE_OCR_CONF_THRESHOLD", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detector != DetectorHTTP {
		t.Errorf("Detector: got %q, want http", cfg.Detector)
	}
	if cfg.ConfThreshold != 0.5 {
		t.Errorf("ConfThreshold: got %v, want 0.5", cfg.ConfThreshold)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("PLATE_OCR_LANGUAGES", "")
	content := "PLATE_OCR_LANGUAGES=kor\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv does not override variables that are already set, even when empty,
	// so clear it from the process environment for this test.
	os.Unsetenv("PLATE_OCR_LANGUAGES")
	t.Cleanup(func() { os.Unsetenv("PLATE_OCR_LANGUAGES") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Languages != "kor" {
		t.Errorf("Languages: got %q, want kor", cfg.Languages)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Languages:     "kor+eng",
			Detector:      DetectorNone,
			ConfThreshold: 0.25,
			NMSThreshold:  0.45,
			MaxImageBytes: 1024,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"onnx", func(c *Config) { c.Detector = DetectorONNX }, false},
		{"http without url", func(c *Config) { c.Detector = DetectorHTTP }, true},
		{"http with url", func(c *Config) { c.Detector = DetectorHTTP; c.DetectorURL = "http://x" }, false},
		{"unknown detector", func(c *Config) { c.Detector = "magic" }, true},
		{"empty languages", func(c *Config) { c.Languages = "" }, true},
		{"conf too high", func(c *Config) { c.ConfThreshold = 1.5 }, true},
		{"nms negative", func(c *Config) { c.NMSThreshold = -0.1 }, true},
		{"zero max bytes", func(c *Config) { c.MaxImageBytes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
