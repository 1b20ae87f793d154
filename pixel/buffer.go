package pixel

import (
	"fmt"
	"sync/atomic"
)

// Buffer is a strided pixel buffer.
//
// Pixel (x, y) occupies the BytesPerPixel bytes starting at
// y*Stride + x*BytesPerPixel. Bytes between the end of a row and the next
// stride boundary are padding and are never read or written by Buffer
// methods.
//
// A Buffer carries an exclusive lock flag. Operations that mutate the
// whole buffer (remapping, conversion) acquire it first and report a
// BufferUnavailableError when another owner already holds it.
//
// Thread safety: concurrent reads are safe. Concurrent writes must target
// disjoint pixels. A Buffer must not be copied after creation.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
	format Format

	locked atomic.Bool
}

// NewBuffer allocates a zeroed buffer with a tightly packed stride.
// Zero width or height yields an empty buffer.
func NewBuffer(width, height int, format Format) (*Buffer, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return NewBufferWithStride(width, height, format, format.RowBytes(width))
}

// NewBufferWithStride allocates a zeroed buffer with a custom stride.
// Stride must be at least format.RowBytes(width).
func NewBufferWithStride(width, height int, format Format, stride int) (*Buffer, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	return &Buffer{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw wraps existing pixel data without copying.
// The caller must keep data valid for the lifetime of the Buffer.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Buffer, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	required := stride * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	if data == nil {
		data = []byte{}
	}
	return &Buffer{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

func validate(width, height int, format Format, stride int) error {
	if width < 0 || height < 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return ErrInvalidStride
	}
	return nil
}

// Clone returns a deep copy of b. The copy is unlocked.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Width returns the width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row, including padding.
func (b *Buffer) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Data returns the raw bytes, padding included.
func (b *Buffer) Data() []byte {
	return b.data
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return b.width * b.height
}

// IsEmpty reports whether the buffer has no pixels.
func (b *Buffer) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// Row returns the bytes of row y without padding.
// Returns nil if y is out of range.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y), or -1 if the
// coordinates are outside the buffer.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.bpp
}

// pixelBytes returns the bytes of pixel (x, y) and panics when the
// coordinates are out of range.
func (b *Buffer) pixelBytes(x, y int) []byte {
	off := b.PixelOffset(x, y)
	if off < 0 {
		panic(fmt.Sprintf("pixel: coordinates (%d, %d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return b.data[off : off+b.format.bpp]
}

// Sample returns the packed sample of pixel (x, y).
// It panics if the coordinates are out of range.
func (b *Buffer) Sample(x, y int) uint32 {
	return b.format.codec.Read(b.pixelBytes(x, y))
}

// SetSample stores a packed sample at pixel (x, y), writing only that
// pixel's bytes. It panics if the coordinates are out of range.
func (b *Buffer) SetSample(x, y int, s uint32) {
	b.format.codec.Write(b.pixelBytes(x, y), s)
}

// At returns the color of pixel (x, y).
// It panics if the coordinates are out of range.
func (b *Buffer) At(x, y int) Color {
	return b.format.Unpack(b.Sample(x, y))
}

// Set stores c at pixel (x, y) in the buffer's format.
// It panics if the coordinates are out of range.
func (b *Buffer) Set(x, y int, c Color) {
	b.SetSample(x, y, b.format.Pack(c))
}

// ReadPixel returns the color of pixel (x, y) in buf.
// Out-of-range coordinates are a programming error and panic.
func ReadPixel(buf *Buffer, x, y int) Color {
	return buf.At(x, y)
}

// WritePixel stores c at pixel (x, y) in buf.
// Out-of-range coordinates are a programming error and panic.
func WritePixel(buf *Buffer, x, y int, c Color) {
	buf.Set(x, y, c)
}

// TryLock acquires the exclusive lock without blocking.
// It reports whether the lock was acquired.
func (b *Buffer) TryLock() bool {
	return b.locked.CompareAndSwap(false, true)
}

// Unlock releases the exclusive lock.
func (b *Buffer) Unlock() {
	b.locked.Store(false)
}

// IsLocked reports whether some owner holds the exclusive lock.
func (b *Buffer) IsLocked() bool {
	return b.locked.Load()
}

// Acquire checks that b is usable and takes its exclusive lock.
// On failure it returns a *BufferUnavailableError naming op.
// A nil receiver is reported as unavailable.
func (b *Buffer) Acquire(op string) error {
	if b == nil || b.data == nil {
		return &BufferUnavailableError{Op: op, Err: ErrNilBuffer}
	}
	if !b.TryLock() {
		return &BufferUnavailableError{Op: op, Err: ErrBufferLocked}
	}
	return nil
}

// Convert returns a new buffer holding the pixels of src in format f.
// Channels wider in src than in f are truncated.
func Convert(src *Buffer, f Format) (*Buffer, error) {
	if err := src.Acquire("convert"); err != nil {
		return nil, err
	}
	defer src.Unlock()

	dst, err := NewBuffer(src.width, src.height, f)
	if err != nil {
		return nil, err
	}

	srcBpp, dstBpp := src.format.bpp, f.bpp
	srcCodec, dstCodec := src.format.codec, f.codec
	for y := range src.height {
		srow := src.Row(y)
		drow := dst.Row(y)
		for x := range src.width {
			c := src.format.Unpack(srcCodec.Read(srow[x*srcBpp : (x+1)*srcBpp]))
			dstCodec.Write(drow[x*dstBpp:(x+1)*dstBpp], f.Pack(c))
		}
	}
	return dst, nil
}
