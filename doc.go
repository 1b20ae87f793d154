// Package palremap recolors an image with the colors of another image.
//
// # Overview
//
// Every pixel of a target buffer is replaced by the nearest color found in a
// palette, where the palette is simply every pixel of a second image.
// Nearness is squared Euclidean distance over red, green and blue; alpha is
// never compared and never changed.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/palremap"
//	    "github.com/gogpu/palremap/imageio"
//	)
//
//	target, _ := imageio.Load("photo.png")
//	swatch, _ := imageio.Load("palette.png")
//
//	if _, err := palremap.RemapImage(target, swatch); err != nil {
//	    log.Fatal(err)
//	}
//	_ = imageio.Save("out.png", target)
//
// # Architecture
//
//   - pixel: packed pixel formats (1 to 4 bytes, both byte orders) and
//     strided buffers
//   - palette: palette extraction and nearest-color search
//   - palremap: the in-place remapper, parallel over row bands
//   - imageio: file decoding and encoding into pixel buffers
//
// # Performance
//
// Each target pixel scans the whole palette, so the cost grows with
// target pixels times palette pixels. Keep palette images small. Remap
// memoizes matches per RGB value (see WithMatchCache) and splits rows over
// GOMAXPROCS workers (see WithWorkers); neither changes the output.
package palremap
