package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// maxTGADimension caps either side; larger images exceed common GL texture limits.
const maxTGADimension = 16384

var errTGATruncated = errors.New("TGA data truncated")

func init() {
	// Byte 0 is the ID length, byte 1 the colour map type, byte 2 the image type.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	return h, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var hdr [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, err
	}
	h, err := parseTGAHeader(hdr[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return DecodeTGA(buf.Bytes())
}

// DecodeTGA decodes an uncompressed or RLE true-colour TGA file.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]

	if h.width > maxTGADimension || h.height > maxTGADimension {
		return nil, fmt.Errorf("TGA size %dx%d exceeds the %d pixel limit", h.width, h.height, maxTGADimension)
	}
	bpp := h.bpp / 8
	count := h.width * h.height

	// Reject short input before allocating. An RLE packet is at least 1+bpp
	// bytes and covers at most 128 pixels.
	switch {
	case h.imageType == TGATypeUncompressed && len(src) < count*bpp:
		return nil, errTGATruncated
	case h.imageType != TGATypeUncompressed && count > (len(src)/(1+bpp)+1)*128:
		return nil, errTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))

	// put writes pixel n in file order, which is bottom row first unless flagged.
	put := func(n int, px []byte) {
		x, y := n%h.width, n/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bpp == 4 {
			a = px[3]
		}
		img.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	if h.imageType == TGATypeUncompressed {
		for n := 0; n < count; n++ {
			put(n, src[n*bpp:])
		}
		return img, nil
	}

	n, i := 0, 0
	for n < count {
		if i >= len(src) {
			return nil, errTGATruncated
		}
		packet := src[i]
		i++
		run := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated
			if i+bpp > len(src) {
				return nil, errTGATruncated
			}
			for k := 0; k < run && n < count; k++ {
				put(n, src[i:])
				n++
			}
			i += bpp
			continue
		}

		// Raw packet
		for k := 0; k < run && n < count; k++ {
			if i+bpp > len(src) {
				return nil, errTGATruncated
			}
			put(n, src[i:])
			i += bpp
			n++
		}
	}
	return img, nil
}
