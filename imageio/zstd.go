package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// zstdExt marks paths whose contents are zstd-compressed.
const zstdExt = ".zst"

func isZstd(br *bufio.Reader) bool {
	head, err := br.Peek(len(zstdMagic))
	return err == nil && bytes.Equal(head, zstdMagic)
}

func newZstdReader(r io.Reader) (*zstd.Decoder, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("imageio: zstd reader: %w", err)
	}
	return dec, nil
}

func newZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, fmt.Errorf("imageio: zstd writer: %w", err)
	}
	return enc, nil
}
