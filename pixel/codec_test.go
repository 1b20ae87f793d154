package pixel

import (
	"bytes"
	"testing"
)

func TestCodecRead(t *testing.T) {
	tests := []struct {
		name  string
		bpp   int
		order ByteOrder
		bytes []byte
		want  uint32
	}{
		{"8-bit", 1, LittleEndian, []byte{0xAB}, 0xAB},
		{"8-bit ignores order", 1, BigEndian, []byte{0xAB}, 0xAB},
		{"16-bit LE", 2, LittleEndian, []byte{0x34, 0x12}, 0x1234},
		{"16-bit BE", 2, BigEndian, []byte{0x12, 0x34}, 0x1234},
		{"24-bit LE", 3, LittleEndian, []byte{0x11, 0x22, 0x33}, 0x332211},
		{"24-bit BE", 3, BigEndian, []byte{0x11, 0x22, 0x33}, 0x112233},
		{"32-bit LE", 4, LittleEndian, []byte{0x44, 0x33, 0x22, 0x11}, 0x11223344},
		{"32-bit BE", 4, BigEndian, []byte{0x11, 0x22, 0x33, 0x44}, 0x11223344},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codecFor(tt.bpp, tt.order)
			if got := c.Read(tt.bytes); got != tt.want {
				t.Errorf("Read(% x) = %#x, want %#x", tt.bytes, got, tt.want)
			}

			out := make([]byte, tt.bpp)
			c.Write(out, tt.want)
			if !bytes.Equal(out, tt.bytes) {
				t.Errorf("Write(%#x) = % x, want % x", tt.want, out, tt.bytes)
			}
		})
	}
}

func TestCodecWriteTouchesOnlyPixelBytes(t *testing.T) {
	for bpp := 1; bpp <= 4; bpp++ {
		for _, order := range []ByteOrder{LittleEndian, BigEndian} {
			buf := bytes.Repeat([]byte{0xEE}, bpp+2)
			codecFor(bpp, order).Write(buf[1:1+bpp], 0)
			if buf[0] != 0xEE || buf[bpp+1] != 0xEE {
				t.Errorf("bpp=%d %v: neighbours modified: % x", bpp, order, buf)
			}
		}
	}
}

func TestCodecForUnsupportedDepth(t *testing.T) {
	for _, bpp := range []int{0, 5, 8} {
		if c := codecFor(bpp, LittleEndian); c != nil {
			t.Errorf("codecFor(%d) = %T, want nil", bpp, c)
		}
	}
}

func TestByteOrderString(t *testing.T) {
	if LittleEndian.String() != "LE" || BigEndian.String() != "BE" {
		t.Errorf("String() = %q, %q", LittleEndian.String(), BigEndian.String())
	}
}
