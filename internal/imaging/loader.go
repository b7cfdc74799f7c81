package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnsupportedFormat is returned for file names whose extension is not an
// accepted image type.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// allowedExtensions lists the upload extensions accepted at the boundary.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// AllowedExtension reports whether name carries an accepted image extension.
// The comparison is case-insensitive.
func AllowedExtension(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Decode reads and decodes an image, returning an opaque RGB copy with its
// origin at (0,0).
//
// Parameters:
//   - r: Source of the encoded image bytes.
//   - name: Original file name, used only for the extension check. An empty
//     name skips the check (the caller has already validated the source).
//   - maxBytes: Upper bound on the encoded size. Zero or negative disables it.
//
// Returns:
//   - *image.NRGBA: The decoded image. Alpha is flattened to fully opaque so
//     downstream stages see plain RGB.
//   - string: The format name reported by the decoder ("png", "jpeg", ...).
//   - error: ErrUnsupportedFormat for a disallowed extension, or a wrapped
//     read/decode error.
func Decode(r io.Reader, name string, maxBytes int64) (*image.NRGBA, string, error) {
	if name != "" && !AllowedExtension(name) {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}

	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxBytes)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("failed to decode image: empty input")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	return toRGB(img), format, nil
}

// Load opens and decodes the image at path.
func Load(path string, maxBytes int64) (*image.NRGBA, error) {
	if !AllowedExtension(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := Decode(f, "", maxBytes)
	return img, err
}

// toRGB copies img into an opaque NRGBA with origin (0,0).
func toRGB(img image.Image) *image.NRGBA {
	// imaging.Clone rebases the bounds to (0,0) and converts any color model.
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
