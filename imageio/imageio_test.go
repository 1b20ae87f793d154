package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/palremap/pixel"
)

func testBuffer(t *testing.T) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewBuffer(3, 2, pixel.RGBA32)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	colors := []pixel.Color{
		{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255},
		{R: 10, G: 20, B: 30, A: 128}, {R: 200, G: 100, B: 50, A: 0}, {R: 1, G: 2, B: 3, A: 255},
	}
	for i, c := range colors {
		buf.Set(i%3, i/3, c)
	}
	return buf
}

func assertSamePixels(t *testing.T, got, want *pixel.Buffer) {
	t.Helper()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	for y := range want.Height() {
		for x := range want.Width() {
			if g, w := got.At(x, y), want.At(x, y); g != w {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{"out.png", KindPNG, false},
		{"OUT.PNG", KindPNG, false},
		{"a/b/out.jpg", KindJPEG, false},
		{"out.jpeg", KindJPEG, false},
		{"out.bmp", KindBMP, false},
		{"out.tif", KindTIFF, false},
		{"out.tiff", KindTIFF, false},
		{"out.png.zst", KindPNG, false},
		{"out.bmp.ZST", KindBMP, false},
		{"out.gif", "", true},
		{"out", "", true},
		{"out.zst", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("KindFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("KindFromPath(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("KindFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSaveLoadLossless(t *testing.T) {
	dir := t.TempDir()
	src := testBuffer(t)

	for _, name := range []string{"img.png", "img.tiff", "img.png.zst", "img.tiff.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			assertSamePixels(t, got, src)
		})
	}
}

func TestSaveLoadBMP(t *testing.T) {
	// Opaque images take the 24-bit path.
	src, _ := pixel.NewBuffer(2, 2, pixel.RGBA32)
	src.Set(0, 0, pixel.Color{R: 255, A: 255})
	src.Set(1, 0, pixel.Color{G: 255, A: 255})
	src.Set(0, 1, pixel.Color{B: 255, A: 255})
	src.Set(1, 1, pixel.Color{R: 7, G: 8, B: 9, A: 255})

	path := filepath.Join(t.TempDir(), "img.bmp")
	if err := Save(path, src); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertSamePixels(t, got, src)
}

func TestSaveJPEG(t *testing.T) {
	src := testBuffer(t)
	path := filepath.Join(t.TempDir(), "img.jpg")
	if err := Save(path, src); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Width() != 3 || got.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", got.Width(), got.Height())
	}
}

func TestSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.gif")
	if err := Save(path, testBuffer(t)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.gif) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save(.gif) should not create a file")
	}
}

func TestEncodeUnknownKind(t *testing.T) {
	var out bytes.Buffer
	if err := Encode(&out, testBuffer(t), Kind("xcf")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(xcf) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeBytes(t *testing.T) {
	src := testBuffer(t)
	var enc bytes.Buffer
	if err := Encode(&enc, src, KindPNG); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := DecodeBytes(enc.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	assertSamePixels(t, got, src)

	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("DecodeBytes(garbage) should fail")
	}
}

func TestDecodeCompressed(t *testing.T) {
	src := testBuffer(t)
	var enc bytes.Buffer
	if err := encodeCompressed(&enc, src, KindPNG); err != nil {
		t.Fatalf("encodeCompressed() error = %v", err)
	}
	if !bytes.HasPrefix(enc.Bytes(), zstdMagic) {
		t.Fatal("compressed output does not start with zstd magic")
	}

	got, kind, err := Decode(&enc)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if kind != "png" {
		t.Errorf("kind = %q, want png", kind)
	}
	assertSamePixels(t, got, src)
}

func TestFromImage(t *testing.T) {
	t.Run("nrgba shares pixels", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		img.SetNRGBA(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
		buf := FromImage(img)
		if buf.Format() != pixel.RGBA32 {
			t.Fatalf("format = %v, want RGBA32", buf.Format())
		}
		if got := buf.At(1, 1); got != (pixel.Color{R: 9, G: 8, B: 7, A: 6}) {
			t.Errorf("At(1,1) = %v", got)
		}
		img.Pix[0] = 42
		if buf.At(0, 0).R != 42 {
			t.Error("buffer does not share the image pixels")
		}
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.SetGray(1, 0, color.Gray{Y: 77})
		buf := FromImage(img)
		if buf.Format() != pixel.Gray8 {
			t.Fatalf("format = %v, want Gray8", buf.Format())
		}
		if got := buf.At(1, 0); got != (pixel.Color{R: 77, G: 77, B: 77, A: 255}) {
			t.Errorf("At(1,0) = %v", got)
		}
	})

	t.Run("paletted converts", func(t *testing.T) {
		pal := color.Palette{color.NRGBA{R: 255, A: 255}, color.NRGBA{B: 255, A: 255}}
		img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
		img.SetColorIndex(1, 0, 1)
		buf := FromImage(img)
		if buf.Format() != pixel.RGBA32 {
			t.Fatalf("format = %v, want RGBA32", buf.Format())
		}
		if got := buf.At(0, 0); got != (pixel.Color{R: 255, A: 255}) {
			t.Errorf("At(0,0) = %v", got)
		}
		if got := buf.At(1, 0); got != (pixel.Color{B: 255, A: 255}) {
			t.Errorf("At(1,0) = %v", got)
		}
	})

	t.Run("offset bounds", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(5, 5, 7, 6))
		img.Set(6, 5, color.RGBA{G: 255, A: 255})
		buf := FromImage(img)
		if buf.Width() != 2 || buf.Height() != 1 {
			t.Fatalf("size = %dx%d, want 2x1", buf.Width(), buf.Height())
		}
		if got := buf.At(1, 0); got != (pixel.Color{G: 255, A: 255}) {
			t.Errorf("At(1,0) = %v", got)
		}
	})
}

func TestToImage(t *testing.T) {
	t.Run("rgba32 shares pixels", func(t *testing.T) {
		buf := testBuffer(t)
		img, ok := ToImage(buf).(*image.NRGBA)
		if !ok {
			t.Fatalf("ToImage(RGBA32) type = %T, want *image.NRGBA", ToImage(buf))
		}
		if got := img.NRGBAAt(0, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 128}) {
			t.Errorf("NRGBAAt(0,1) = %v", got)
		}
	})

	t.Run("gray8", func(t *testing.T) {
		buf, _ := pixel.NewBuffer(1, 1, pixel.Gray8)
		buf.Set(0, 0, pixel.Color{R: 50, G: 50, B: 50, A: 255})
		if _, ok := ToImage(buf).(*image.Gray); !ok {
			t.Errorf("ToImage(Gray8) type = %T, want *image.Gray", ToImage(buf))
		}
	})

	t.Run("packed converts", func(t *testing.T) {
		buf, _ := pixel.NewBuffer(2, 1, pixel.RGB565)
		buf.Set(1, 0, pixel.Color{R: 255, G: 255, B: 255, A: 255})
		img := ToImage(buf)
		var out bytes.Buffer
		if err := png.Encode(&out, img); err != nil {
			t.Fatalf("png.Encode() error = %v", err)
		}
		r, g, b, a := img.At(1, 0).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
			t.Errorf("At(1,0) = %d,%d,%d,%d, want white", r, g, b, a)
		}
	})
}
