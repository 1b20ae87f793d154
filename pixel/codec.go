package pixel

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// ByteOrder describes how a multi-byte sample is laid out in memory.
type ByteOrder uint8

const (
	// LittleEndian stores the least significant byte of a sample first.
	LittleEndian ByteOrder = iota

	// BigEndian stores the most significant byte of a sample first.
	BigEndian
)

// NativeOrder is the byte order of the host CPU.
var NativeOrder = func() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}()

// String returns "LE" or "BE".
func (o ByteOrder) String() string {
	if o == BigEndian {
		return "BE"
	}
	return "LE"
}

// Codec reads and writes one packed sample from the bytes of a single pixel.
// The slice passed to Read and Write is exactly BytesPerPixel long.
type Codec interface {
	Read(p []byte) uint32
	Write(p []byte, s uint32)
}

// codecFor returns the sample codec for a (bytesPerPixel, order) pair.
// Returns nil for unsupported depths.
func codecFor(bpp int, order ByteOrder) Codec {
	switch bpp {
	case 1:
		return sample8{}
	case 2:
		if order == BigEndian {
			return sample16BE{}
		}
		return sample16LE{}
	case 3:
		if order == BigEndian {
			return sample24BE{}
		}
		return sample24LE{}
	case 4:
		if order == BigEndian {
			return sample32BE{}
		}
		return sample32LE{}
	default:
		return nil
	}
}

type sample8 struct{}

func (sample8) Read(p []byte) uint32     { return uint32(p[0]) }
func (sample8) Write(p []byte, s uint32) { p[0] = byte(s) }

type sample16LE struct{}

func (sample16LE) Read(p []byte) uint32     { return uint32(binary.LittleEndian.Uint16(p)) }
func (sample16LE) Write(p []byte, s uint32) { binary.LittleEndian.PutUint16(p, uint16(s)) }

type sample16BE struct{}

func (sample16BE) Read(p []byte) uint32     { return uint32(binary.BigEndian.Uint16(p)) }
func (sample16BE) Write(p []byte, s uint32) { binary.BigEndian.PutUint16(p, uint16(s)) }

// sample24BE packs byte 0 into bits 16-23.
type sample24BE struct{}

func (sample24BE) Read(p []byte) uint32 {
	_ = p[2]
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
}

func (sample24BE) Write(p []byte, s uint32) {
	_ = p[2]
	p[0] = byte(s >> 16)
	p[1] = byte(s >> 8)
	p[2] = byte(s)
}

// sample24LE packs byte 0 into bits 0-7.
type sample24LE struct{}

func (sample24LE) Read(p []byte) uint32 {
	_ = p[2]
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
}

func (sample24LE) Write(p []byte, s uint32) {
	_ = p[2]
	p[0] = byte(s)
	p[1] = byte(s >> 8)
	p[2] = byte(s >> 16)
}

type sample32LE struct{}

func (sample32LE) Read(p []byte) uint32     { return binary.LittleEndian.Uint32(p) }
func (sample32LE) Write(p []byte, s uint32) { binary.LittleEndian.PutUint32(p, s) }

type sample32BE struct{}

func (sample32BE) Read(p []byte) uint32     { return binary.BigEndian.Uint32(p) }
func (sample32BE) Write(p []byte, s uint32) { binary.BigEndian.PutUint32(p, s) }
