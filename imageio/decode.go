// Package imageio loads and saves images as pixel buffers.
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Any of them may be
// wrapped in a zstd frame; compressed input is detected from its magic
// number. Encoding writes PNG, JPEG, BMP or TIFF, chosen by file extension,
// and compresses the result when the path ends in ".zst".
package imageio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/palremap/pixel"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file type cannot be written.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Load decodes the image file at path.
func Load(path string) (*pixel.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, _, err := Decode(f)
	return buf, err
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*pixel.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	buf, _, err := Decode(bytes.NewReader(data))
	return buf, err
}

// Decode reads one image from r and returns it with the name of its
// container format ("png", "jpeg", ...). A zstd-compressed stream is
// decompressed first.
func Decode(r io.Reader) (*pixel.Buffer, string, error) {
	br := bufio.NewReader(r)
	if isZstd(br) {
		zr, err := newZstdReader(br)
		if err != nil {
			return nil, "", err
		}
		defer zr.Close()
		br = bufio.NewReader(zr)
	}

	img, kind, err := image.Decode(br)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return FromImage(img), kind, nil
}

// FromImage converts a standard library image to a pixel buffer.
//
// *image.NRGBA becomes an RGBA32 buffer and *image.Gray a Gray8 buffer,
// both sharing the image's pixel slice. Every other image is converted to
// straight-alpha RGBA32.
func FromImage(img image.Image) *pixel.Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch m := img.(type) {
	case *image.NRGBA:
		if buf, err := pixel.FromRaw(m.Pix, w, h, pixel.RGBA32, m.Stride); err == nil {
			return buf
		}
	case *image.Gray:
		if buf, err := pixel.FromRaw(m.Pix, w, h, pixel.Gray8, m.Stride); err == nil {
			return buf
		}
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	buf, _ := pixel.FromRaw(nrgba.Pix, w, h, pixel.RGBA32, nrgba.Stride)
	return buf
}
