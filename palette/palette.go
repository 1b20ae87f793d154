// Package palette extracts color palettes from pixel buffers and searches
// them for nearest-color matches.
//
// A Palette built from an image holds one entry per pixel of that image, in
// row-major order, duplicates included. Matching cost is linear in the
// palette size, so large palette images make remapping proportionally
// slower. Nothing here caps or deduplicates the palette.
package palette

import (
	"errors"

	"github.com/gogpu/palremap/pixel"
)

// ErrInvalidPalette is returned when the palette image is absent or has no
// pixels.
var ErrInvalidPalette = errors.New("palette: invalid palette image")

// Palette is an ordered list of candidate colors.
// It is read-only after Build and safe for concurrent use.
type Palette []pixel.Color

// Build scans every pixel of buf in row-major order and returns them as a
// palette. The result has exactly buf.Width()*buf.Height() entries.
//
// Build fails with ErrInvalidPalette for a nil or empty buffer, and with a
// *pixel.BufferUnavailableError when another owner holds buf.
func Build(buf *pixel.Buffer) (Palette, error) {
	if buf == nil || buf.IsEmpty() {
		return nil, ErrInvalidPalette
	}
	if err := buf.Acquire("build palette"); err != nil {
		return nil, err
	}
	defer buf.Unlock()

	f := buf.Format()
	codec := f.Codec()
	bpp := f.BytesPerPixel()

	p := make(Palette, 0, buf.Len())
	for y := range buf.Height() {
		row := buf.Row(y)
		for x := range buf.Width() {
			p = append(p, f.Unpack(codec.Read(row[x*bpp:(x+1)*bpp])))
		}
	}
	return p, nil
}

// FindClosest returns the index of the entry of p nearest to c by squared
// RGB distance. Alpha is ignored. When several entries are equally near,
// the lowest index wins. Returns -1 for an empty palette.
func FindClosest(p Palette, c pixel.Color) int {
	if len(p) == 0 {
		return -1
	}
	best := 0
	bestDist := pixel.MaxDistanceSq
	for i, e := range p {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			bestDist = d
			best = i
			if d == 0 {
				break
			}
		}
	}
	return best
}

// FindClosest is shorthand for FindClosest(p, c).
func (p Palette) FindClosest(c pixel.Color) int {
	return FindClosest(p, c)
}

// Nearest returns the palette color nearest to c.
// It panics if p is empty.
func (p Palette) Nearest(c pixel.Color) pixel.Color {
	return p[FindClosest(p, c)]
}

// Colors returns the number of entries.
func (p Palette) Colors() int {
	return len(p)
}
