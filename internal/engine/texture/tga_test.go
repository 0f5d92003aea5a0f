package texture

import (
	"image/color"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tgaHeaderBytes(imageType byte, w, h, bpp int, descriptor byte) []byte {
	return []byte{
		0, 0, imageType,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
		byte(w), byte(w >> 8), byte(h), byte(h >> 8),
		byte(bpp), descriptor,
	}
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	data := tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, 0)
	// BGR, bottom row first: red red / blue green
	data = append(data,
		0, 0, 255, 0, 0, 255,
		255, 0, 0, 0, 255, 0,
	)

	img, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "tga", format)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGARLETopDownAlpha(t *testing.T) {
	data := tgaHeaderBytes(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 10, 20, 30, 128, // run of 2
		0x00, 40, 50, 60, 255, // one raw pixel
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{30, 20, 10, 128}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{30, 20, 10, 128}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{60, 50, 40, 255}, img.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", append([]byte{0, 1}, tgaHeaderBytes(TGATypeUncompressed, 1, 1, 24, 0)[2:]...)},
		{"bad depth", tgaHeaderBytes(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeaderBytes(TGATypeRLE, 2, 1, 24, 0), 0x81, 1)},
		{"oversized", tgaHeaderBytes(TGATypeUncompressed, 65535, 65535, 32, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeTGAHugeHeaderFailsBeforeAllocating(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		// 16384x16384x4 would be a 1 GiB image backed by 4 bytes.
		{"uncompressed", append(tgaHeaderBytes(TGATypeUncompressed, 16384, 16384, 32, 0), 1, 2, 3, 4)},
		// One 5-byte RLE packet covers at most 128 pixels.
		{"rle", append(tgaHeaderBytes(TGATypeRLE, 16384, 16384, 32, 0), 0xFF, 1, 2, 3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := DecodeTGA(tt.data)
			runtime.ReadMemStats(&after)

			assert.ErrorIs(t, err, errTGATruncated)
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
		})
	}
}
