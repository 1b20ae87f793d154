// Package pixel provides raw pixel buffers and packed pixel formats.
//
// A Format describes how one pixel is stored: its size in bytes (1 to 4),
// the byte order of the packed sample and the bit masks of the red, green,
// blue and alpha channels inside that sample. A Buffer is a strided byte
// region interpreted through a Format.
//
// Reading a pixel is a two step process. The pixel's bytes are first
// assembled into a 32-bit sample by the format's Codec, then the sample is
// split into channels by Unpack. Writing runs the same steps in reverse with
// Pack and Codec.Write.
package pixel

import (
	"fmt"
	"math/bits"
	"strings"
)

// channel locates one color component inside a packed sample.
type channel struct {
	mask  uint32
	shift uint8
	bits  uint8
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	return channel{
		mask:  mask,
		shift: uint8(bits.TrailingZeros32(mask)),
		bits:  uint8(bits.OnesCount32(mask)),
	}
}

// get extracts the channel and widens it to 8 bits by bit replication,
// so that put(get(s)) restores the original field.
func (c channel) get(s uint32) uint8 {
	if c.bits == 0 {
		return 0
	}
	v := (s & c.mask) >> c.shift
	e := v << (8 - c.bits)
	for n := c.bits; n < 8; n *= 2 {
		e |= e >> n
	}
	return uint8(e)
}

// put narrows an 8-bit value to the channel width and positions it.
func (c channel) put(v uint8) uint32 {
	if c.mask == 0 {
		return 0
	}
	return (uint32(v) >> (8 - c.bits) << c.shift) & c.mask
}

// Format describes a packed pixel layout.
// Format values are comparable and safe to copy.
type Format struct {
	name  string
	bpp   int
	order ByteOrder
	gray  bool

	r, g, b, a channel

	codec Codec
}

// NewFormat creates a packed format from its channel masks.
//
// Each mask must be a contiguous run of at most 8 bits that fits into
// bpp*8 bits. Masks must not overlap, with one exception: when rMask, gMask
// and bMask are equal the format is grayscale. Grayscale samples unpack to
// r = g = b and pack the luma of the color. A zero aMask means the format
// has no alpha channel and unpacks to fully opaque colors.
//
// The byte order only matters for bpp >= 2.
func NewFormat(name string, bpp int, order ByteOrder, rMask, gMask, bMask, aMask uint32) (Format, error) {
	if bpp < 1 || bpp > 4 {
		return Format{}, fmt.Errorf("%w: %d bytes per pixel", ErrInvalidFormat, bpp)
	}
	if order != LittleEndian && order != BigEndian {
		return Format{}, fmt.Errorf("%w: byte order %d", ErrInvalidFormat, order)
	}

	var limit uint64 = 1 << (uint(bpp) * 8)
	for _, m := range [...]uint32{rMask, gMask, bMask, aMask} {
		if m == 0 {
			continue
		}
		width := bits.OnesCount32(m)
		if width > 8 {
			return Format{}, fmt.Errorf("%w: mask %#x wider than 8 bits", ErrInvalidFormat, m)
		}
		if m>>bits.TrailingZeros32(m) != 1<<width-1 {
			return Format{}, fmt.Errorf("%w: mask %#x not contiguous", ErrInvalidFormat, m)
		}
		if uint64(m) >= limit {
			return Format{}, fmt.Errorf("%w: mask %#x exceeds %d-byte sample", ErrInvalidFormat, m, bpp)
		}
	}

	gray := rMask == gMask && gMask == bMask
	if rMask == 0 || gMask == 0 || bMask == 0 {
		return Format{}, fmt.Errorf("%w: missing color mask", ErrInvalidFormat)
	}
	if gray {
		if rMask&aMask != 0 {
			return Format{}, fmt.Errorf("%w: overlapping masks", ErrInvalidFormat)
		}
	} else if rMask&gMask != 0 || rMask&bMask != 0 || gMask&bMask != 0 || (rMask|gMask|bMask)&aMask != 0 {
		return Format{}, fmt.Errorf("%w: overlapping masks", ErrInvalidFormat)
	}

	return Format{
		name:  name,
		bpp:   bpp,
		order: order,
		gray:  gray,
		r:     newChannel(rMask),
		g:     newChannel(gMask),
		b:     newChannel(bMask),
		a:     newChannel(aMask),
		codec: codecFor(bpp, order),
	}, nil
}

func mustFormat(name string, bpp int, order ByteOrder, rMask, gMask, bMask, aMask uint32) Format {
	f, err := NewFormat(name, bpp, order, rMask, gMask, bMask, aMask)
	if err != nil {
		panic(err)
	}
	return f
}

// Predefined formats. Names follow the packed-sample convention: channels
// are listed from the most significant bits to the least significant bits
// of the sample, which is stored in NativeOrder.
//
// RGBA32, BGRA32 and RGB24 are byte-array layouts instead: the channels are
// listed in memory order and do not depend on the host.
var (
	Gray8       = mustFormat("Gray8", 1, NativeOrder, 0xFF, 0xFF, 0xFF, 0)
	GrayAlpha88 = mustFormat("GrayAlpha88", 2, NativeOrder, 0x00FF, 0x00FF, 0x00FF, 0xFF00)

	RGB565   = mustFormat("RGB565", 2, NativeOrder, 0xF800, 0x07E0, 0x001F, 0)
	BGR565   = mustFormat("BGR565", 2, NativeOrder, 0x001F, 0x07E0, 0xF800, 0)
	ARGB1555 = mustFormat("ARGB1555", 2, NativeOrder, 0x7C00, 0x03E0, 0x001F, 0x8000)
	RGBA5551 = mustFormat("RGBA5551", 2, NativeOrder, 0xF800, 0x07C0, 0x003E, 0x0001)
	ARGB4444 = mustFormat("ARGB4444", 2, NativeOrder, 0x0F00, 0x00F0, 0x000F, 0xF000)
	RGBA4444 = mustFormat("RGBA4444", 2, NativeOrder, 0xF000, 0x0F00, 0x00F0, 0x000F)

	RGB888 = mustFormat("RGB888", 3, NativeOrder, 0xFF0000, 0x00FF00, 0x0000FF, 0)
	BGR888 = mustFormat("BGR888", 3, NativeOrder, 0x0000FF, 0x00FF00, 0xFF0000, 0)

	RGBA8888 = mustFormat("RGBA8888", 4, NativeOrder, 0xFF000000, 0x00FF0000, 0x0000FF00, 0x000000FF)
	ARGB8888 = mustFormat("ARGB8888", 4, NativeOrder, 0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000)
	ABGR8888 = mustFormat("ABGR8888", 4, NativeOrder, 0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000)
	BGRA8888 = mustFormat("BGRA8888", 4, NativeOrder, 0x0000FF00, 0x00FF0000, 0xFF000000, 0x000000FF)
	XRGB8888 = mustFormat("XRGB8888", 4, NativeOrder, 0x00FF0000, 0x0000FF00, 0x000000FF, 0)

	RGB24  = mustFormat("RGB24", 3, BigEndian, 0xFF0000, 0x00FF00, 0x0000FF, 0)
	RGBA32 = mustFormat("RGBA32", 4, LittleEndian, 0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000)
	BGRA32 = mustFormat("BGRA32", 4, LittleEndian, 0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000)
)

// Formats returns all predefined formats.
func Formats() []Format {
	return []Format{
		Gray8, GrayAlpha88,
		RGB565, BGR565, ARGB1555, RGBA5551, ARGB4444, RGBA4444,
		RGB888, BGR888,
		RGBA8888, ARGB8888, ABGR8888, BGRA8888, XRGB8888,
		RGB24, RGBA32, BGRA32,
	}
}

// FormatByName looks up a predefined format, ignoring case.
func FormatByName(name string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(f.name, name) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// WithOrder returns a copy of f whose samples are stored in the given order.
func (f Format) WithOrder(order ByteOrder) Format {
	f.order = order
	f.codec = codecFor(f.bpp, order)
	return f
}

// IsValid reports whether f was produced by NewFormat.
func (f Format) IsValid() bool {
	return f.codec != nil
}

// Name returns the format name given at construction.
func (f Format) Name() string {
	return f.name
}

// String returns the format name and, for multi-byte formats, its byte order.
func (f Format) String() string {
	if !f.IsValid() {
		return "Invalid"
	}
	if f.bpp == 1 {
		return f.name
	}
	return f.name + "/" + f.order.String()
}

// BytesPerPixel returns the sample size in bytes.
func (f Format) BytesPerPixel() int {
	return f.bpp
}

// Order returns the sample byte order.
func (f Format) Order() ByteOrder {
	return f.order
}

// HasAlpha reports whether the format stores an alpha channel.
func (f Format) HasAlpha() bool {
	return f.a.mask != 0
}

// IsGray reports whether the format stores a single gray value.
func (f Format) IsGray() bool {
	return f.gray
}

// Masks returns the channel masks.
func (f Format) Masks() (r, g, b, a uint32) {
	return f.r.mask, f.g.mask, f.b.mask, f.a.mask
}

// Codec returns the sample codec for this format.
func (f Format) Codec() Codec {
	return f.codec
}

// RowBytes returns the minimum number of bytes for a row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.bpp
}

// Unpack splits a sample into an 8-bit per channel color.
// Formats without alpha unpack to A = 255.
func (f Format) Unpack(s uint32) Color {
	var a uint8 = 255
	if f.a.mask != 0 {
		a = f.a.get(s)
	}
	if f.gray {
		v := f.r.get(s)
		return Color{R: v, G: v, B: v, A: a}
	}
	return Color{R: f.r.get(s), G: f.g.get(s), B: f.b.get(s), A: a}
}

// Pack builds a sample from c, truncating each channel to its mask width.
// Grayscale formats store the luma 0.299R + 0.587G + 0.114B.
func (f Format) Pack(c Color) uint32 {
	if f.gray {
		y := (int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000
		return f.r.put(uint8(y)) | f.a.put(c.A)
	}
	return f.r.put(c.R) | f.g.put(c.G) | f.b.put(c.B) | f.a.put(c.A)
}
