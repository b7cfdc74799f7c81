package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/plate-ocr/internal/cascade"
	"github.com/ironsheep/plate-ocr/internal/config"
	"github.com/ironsheep/plate-ocr/internal/imaging"
	"github.com/ironsheep/plate-ocr/internal/inference"
	"github.com/ironsheep/plate-ocr/internal/logging"
	"github.com/ironsheep/plate-ocr/internal/ocr"
	"github.com/ironsheep/plate-ocr/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("plate-ocr - license plate recognition")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  plate-ocr                    Run the MCP server on stdin/stdout")
	fmt.Println("  plate-ocr recognize <image>  Recognize one image and print the result as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  PLATE_OCR_LOG_LEVEL=info          debug, info, warn or error")
	fmt.Println("  PLATE_OCR_LANGUAGES=kor+eng       Tesseract languages")
	fmt.Println("  PLATE_OCR_TESSDATA_PREFIX=        Tesseract data directory")
	fmt.Println("  PLATE_OCR_DETECTOR=none           none, http or onnx")
	fmt.Println("  PLATE_OCR_DETECTOR_URL=           Inference endpoint for the http detector")
	fmt.Println("  PLATE_OCR_MODEL_PATH=             YOLO ONNX model for the onnx detector")
	fmt.Println("  PLATE_OCR_MAX_IMAGE_BYTES=20971520")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("plate-ocr %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			usage()
			return 0
		case "recognize":
			if len(args) != 2 {
				usage()
				return 2
			}
		default:
			fmt.Fprintf(os.Stderr, "plate-ocr: unknown command %q\n", args[0])
			return 2
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "plate-ocr: %v\n", err)
		return 2
	}

	// Logs go to stderr; stdout carries the MCP protocol or the JSON result.
	logger := logging.NewLogger("plate-ocr", logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dc, cleanup := buildDetectionContext(ctx, cfg, logger)
	defer cleanup()

	if len(args) > 0 {
		return recognize(ctx, cfg, dc, logger, args[1])
	}

	logger.Info("starting MCP server", "version", Version, "commit", GitCommit,
		"capabilities", dc.Capabilities.String())
	srv := server.New(dc, server.Options{
		MaxImageBytes: cfg.MaxImageBytes,
		Version:       Version,
		Logger:        logger.With("component", "server"),
	})
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		return 1
	}
	return 0
}

// buildDetectionContext loads the optional capabilities once. A capability
// that fails to load is logged and left out.
func buildDetectionContext(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*cascade.DetectionContext, func()) {
	var (
		recognizer cascade.TextRecognizer
		closers    []io.Closer
	)

	tess, err := ocr.NewTesseract(cfg.Languages, cfg.TessdataPrefix)
	if err != nil {
		logger.Warn("text recognition unavailable", "error", err)
	} else {
		recognizer = tess
		closers = append(closers, tess)
		info := tess.Info()
		logger.Info("text recognition loaded", "version", info.Version, "languages", cfg.Languages)
	}

	detector, err := inference.New(cfg)
	switch {
	case err != nil:
		logger.Warn("object detection unavailable", "detector", cfg.Detector, "error", err)
	case detector != nil:
		logger.Info("object detection loaded", "detector", cfg.Detector)
		if c, ok := detector.(io.Closer); ok {
			closers = append(closers, c)
		}
		if h, ok := detector.(interface{ CheckHealth(context.Context) error }); ok {
			hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := h.CheckHealth(hctx); err != nil {
				logger.Warn("object detection service not healthy yet", "error", err)
			}
			cancel()
		}
	}

	cleanup := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Warn("failed to release capability", "error", err)
			}
		}
	}
	return cascade.NewDetectionContext(detector, recognizer), cleanup
}

// recognize runs the cascade on one file. It returns the process exit code.
func recognize(ctx context.Context, cfg *config.Config, dc *cascade.DetectionContext, logger *logging.Logger, path string) int {
	img, err := imaging.Load(path, cfg.MaxImageBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plate-ocr: %v\n", err)
		return 1
	}

	result := cascade.New(dc, logger.With("component", "cascade")).Recognize(ctx, img)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "plate-ocr: %v\n", err)
		return 1
	}
	return 0
}
