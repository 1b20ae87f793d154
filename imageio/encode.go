package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/palremap/pixel"
)

// Kind names an output file type.
type Kind string

// Output kinds.
const (
	KindPNG  Kind = "png"
	KindJPEG Kind = "jpeg"
	KindBMP  Kind = "bmp"
	KindTIFF Kind = "tiff"
)

// JPEGQuality is the quality used when writing JPEG files.
const JPEGQuality = 95

// KindFromPath picks the output kind from the file extension, ignoring a
// trailing ".zst".
func KindFromPath(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == zstdExt {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".png":
		return KindPNG, nil
	case ".jpg", ".jpeg":
		return KindJPEG, nil
	case ".bmp":
		return KindBMP, nil
	case ".tif", ".tiff":
		return KindTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Save writes buf to path. The file type follows the extension; a ".zst"
// suffix compresses the encoded image with zstd.
func Save(path string, buf *pixel.Buffer) error {
	kind, err := KindFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), zstdExt) {
		err = encodeCompressed(f, buf, kind)
	} else {
		err = Encode(f, buf, kind)
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeCompressed(w io.Writer, buf *pixel.Buffer, kind Kind) error {
	zw, err := newZstdWriter(w)
	if err != nil {
		return err
	}
	if err := Encode(zw, buf, kind); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("imageio: zstd close: %w", err)
	}
	return nil
}

// Encode writes buf to w as the given kind.
func Encode(w io.Writer, buf *pixel.Buffer, kind Kind) error {
	img := ToImage(buf)

	var err error
	switch kind {
	case KindPNG:
		err = png.Encode(w, img)
	case KindJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case KindBMP:
		err = bmp.Encode(w, img)
	case KindTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", kind, err)
	}
	return nil
}

// ToImage converts buf to a standard library image.
//
// RGBA32 buffers become *image.NRGBA and Gray8 buffers *image.Gray, both
// sharing buf's data. Every other format is converted to a new
// *image.NRGBA.
func ToImage(buf *pixel.Buffer) image.Image {
	w, h := buf.Width(), buf.Height()
	rect := image.Rect(0, 0, w, h)

	switch buf.Format() {
	case pixel.RGBA32:
		return &image.NRGBA{Pix: buf.Data(), Stride: buf.Stride(), Rect: rect}
	case pixel.Gray8:
		return &image.Gray{Pix: buf.Data(), Stride: buf.Stride(), Rect: rect}
	}

	nrgba := image.NewNRGBA(rect)
	for y := range h {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := range w {
			c := buf.At(x, y)
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return nrgba
}
