// Package debug provides developer utilities for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/tiff"
)

// ImageFormat selects the screenshot encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatTIFF ImageFormat = "tiff"
)

// ParseImageFormat accepts "png", "tiff" or "tif", case-insensitively.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("unknown screenshot format %q", s)
}

func (f ImageFormat) encode(w io.Writer, img image.Image) error {
	if f == FormatTIFF {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return png.Encode(w, img)
}

// ScreenshotCapture writes framebuffer contents to timestamped image files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    ImageFormat
	now       func() time.Time
}

// NewScreenshotCapture creates a capture writing into outputDir.
func NewScreenshotCapture(outputDir, prefix string, format ImageFormat) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// FlipRows converts bottom-up RGBA rows, as glReadPixels returns them, into a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	row := width * 4
	if len(pixels) != row*height {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", row*height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		src := pixels[(height-1-y)*row:][:row]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img, nil
}

// CaptureFromPixels flips and saves one framebuffer readback, returning the written path.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.write(img)
}

// GenerateFilename returns the path the next screenshot would be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	name := fmt.Sprintf("%s_%s.%s", sc.prefix, sc.now().Format("2006-01-02_15-04-05.000"), sc.format)
	return filepath.Join(sc.outputDir, name)
}

func (sc *ScreenshotCapture) write(img image.Image) (path string, err error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path = sc.GenerateFilename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := sc.format.encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", sc.format, err)
	}
	return path, nil
}
