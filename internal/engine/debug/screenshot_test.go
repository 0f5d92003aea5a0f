package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func fixedClock(sc *ScreenshotCapture) {
	sc.now = func() time.Time {
		return time.Date(2024, 5, 17, 9, 30, 0, 250e6, time.UTC)
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "hammer", FormatPNG)
	fixedClock(sc)
	assert.Equal(t, filepath.Join("shots", "hammer_2024-05-17_09-30-00.250.png"), sc.GenerateFilename())

	sc = NewScreenshotCapture("", "hammer", FormatTIFF)
	fixedClock(sc)
	assert.Equal(t, "hammer_2024-05-17_09-30-00.250.tiff", sc.GenerateFilename())
}

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "shot", FormatPNG)

	// 2x2, bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(1, 1)))
}

func TestCaptureFromPixelsRejectsBadInput(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot", FormatPNG)

	_, err := sc.CaptureFromPixels(make([]byte, 15), 2, 2)
	assert.Error(t, err)

	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.Error(t, err)
}

func TestCaptureTIFF(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot", FormatTIFF)
	pixels := []byte{10, 20, 30, 255}

	path, err := sc.CaptureFromPixels(pixels, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, ".tiff", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := tiff.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, color.RGBAModel.Convert(img.At(0, 0)))
}

func TestParseImageFormat(t *testing.T) {
	for in, want := range map[string]ImageFormat{"png": FormatPNG, "PNG": FormatPNG, "tiff": FormatTIFF, "tif": FormatTIFF} {
		got, err := ParseImageFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseImageFormat("jpeg")
	assert.Error(t, err)
}
