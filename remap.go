package palremap

import (
	"log/slog"
	"time"

	"github.com/gogpu/palremap/internal/cache"
	"github.com/gogpu/palremap/internal/parallel"
	"github.com/gogpu/palremap/palette"
	"github.com/gogpu/palremap/pixel"
)

// Stats describes a finished remap.
type Stats struct {
	Pixels      int
	PaletteSize int
	Workers     int
	Bands       int
	CacheHits   uint64
	CacheMisses uint64
	Elapsed     time.Duration
}

// Remap replaces the RGB channels of every pixel of target with those of
// the nearest palette entry, keeping each pixel's own alpha. The buffer is
// rewritten in place in its own pixel format.
//
// Remap returns palette.ErrInvalidPalette for an empty palette and a
// *pixel.BufferUnavailableError when target is nil or held by another
// owner. In both cases target is left untouched.
//
// The result does not depend on the number of workers or on the match
// cache.
func Remap(target *pixel.Buffer, pal palette.Palette, opts ...Option) (Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	if len(pal) == 0 {
		return Stats{}, palette.ErrInvalidPalette
	}
	if err := target.Acquire("remap"); err != nil {
		return Stats{}, err
	}
	defer target.Unlock()

	start := time.Now()

	m := &matcher{pal: pal}
	if o.cacheSize > 0 {
		m.index = cache.NewIndex(o.cacheSize)
	}

	height := target.Height()
	workers := max(o.workers, 1)
	bandHeight := o.bandHeight
	if bandHeight <= 0 {
		bandHeight = parallel.AutoBandHeight(height, workers)
	}
	bands := parallel.Bands(height, bandHeight)
	if len(bands) < 2 {
		workers = 1
	}

	log.Debug("palremap: remap start",
		slog.Int("width", target.Width()),
		slog.Int("height", height),
		slog.String("format", target.Format().String()),
		slog.Int("palette", len(pal)),
		slog.Int("workers", workers),
		slog.Int("bands", len(bands)))

	if workers == 1 {
		for _, b := range bands {
			remapBand(target, b, m)
		}
	} else {
		pool := parallel.NewWorkerPool(workers)
		pool.ForEachBand(bands, func(b parallel.Band) {
			remapBand(target, b, m)
		})
		pool.Close()
	}

	stats := Stats{
		Pixels:      target.Len(),
		PaletteSize: len(pal),
		Workers:     workers,
		Bands:       len(bands),
		Elapsed:     time.Since(start),
	}
	if m.index != nil {
		cs := m.index.Stats()
		stats.CacheHits, stats.CacheMisses = cs.Hits, cs.Misses
		log.Debug("palremap: match cache",
			slog.Int("entries", cs.Len),
			slog.Uint64("hits", cs.Hits),
			slog.Uint64("misses", cs.Misses),
			slog.Uint64("evictions", cs.Evictions))
	}
	log.Info("palremap: remap done",
		slog.Int("pixels", stats.Pixels),
		slog.Int("palette", stats.PaletteSize),
		slog.Duration("elapsed", stats.Elapsed))

	return stats, nil
}

// RemapImage builds a palette from every pixel of paletteBuf and remaps
// target against it.
func RemapImage(target, paletteBuf *pixel.Buffer, opts ...Option) (Stats, error) {
	pal, err := palette.Build(paletteBuf)
	if err != nil {
		return Stats{}, err
	}
	return Remap(target, pal, opts...)
}

// matcher resolves colors to palette entries, optionally through a cache.
// It is shared read-only between bands; the cache is thread-safe.
type matcher struct {
	pal   palette.Palette
	index *cache.Index
}

func (m *matcher) match(c pixel.Color) pixel.Color {
	if m.index == nil {
		return m.pal[palette.FindClosest(m.pal, c)]
	}
	key := c.Key()
	i, ok := m.index.Get(key)
	if !ok {
		i = palette.FindClosest(m.pal, c)
		m.index.Set(key, i)
	}
	return m.pal[i]
}

// remapBand rewrites rows [b.Y0, b.Y1). It touches only pixel bytes, never
// row padding, so bands can run concurrently.
func remapBand(buf *pixel.Buffer, b parallel.Band, m *matcher) {
	f := buf.Format()
	codec := f.Codec()
	bpp := f.BytesPerPixel()

	for y := b.Y0; y < b.Y1; y++ {
		row := buf.Row(y)
		for off := 0; off < len(row); off += bpp {
			p := row[off : off+bpp]
			src := f.Unpack(codec.Read(p))
			dst := m.match(src).WithAlpha(src.A)
			codec.Write(p, f.Pack(dst))
		}
	}
}
