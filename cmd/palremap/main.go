// Command palremap replaces every pixel of an image with the nearest color
// found in a palette image.
//
// Usage:
//
//	palremap [-config file] [-workers n] [-band n] [-cache n] [-format name] [-v] <input> <palette> <output>
//
// The output type follows the output extension (.png, .jpg, .bmp, .tif);
// a trailing .zst compresses it. Inputs may be zstd-compressed as well.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/palremap"
	"github.com/gogpu/palremap/imageio"
	"github.com/gogpu/palremap/internal/config"
	"github.com/gogpu/palremap/pixel"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("palremap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: palremap [flags] <input> <palette> <output>")
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "YAML settings file")
		workers    = fs.Int("workers", 0, "remap goroutines (0 = GOMAXPROCS)")
		bandHeight = fs.Int("band", 0, "rows per work band (0 = auto)")
		cacheSize  = fs.Int("cache", -1, "match cache capacity (0 disables, -1 = default)")
		format     = fs.String("format", "", "convert the target to this pixel format first")
		verbose    = fs.Bool("v", false, "debug logging")
		list       = fs.Bool("formats", false, "list pixel formats and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *list {
		for _, f := range pixel.Formats() {
			fmt.Fprintln(stdout, f)
		}
		return exitOK
	}

	if fs.NArg() != 3 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "palremap:", err)
		return exitFail
	}
	applyFlags(fs, &cfg, *workers, *bandHeight, *cacheSize, *format, *verbose)

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	palremap.SetLogger(logger)
	defer palremap.SetLogger(nil)

	in, pal, out := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	stats, err := remapFile(in, pal, out, cfg)
	if err != nil {
		logger.Error("palremap failed", slog.String("input", in), slog.Any("error", err))
		return exitFail
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "%s: %d pixels remapped against %d palette colors in %v\n",
		out, stats.Pixels, stats.PaletteSize, stats.Elapsed.Round(time.Microsecond))
	return exitOK
}

// applyFlags overrides file settings with flags given on the command line.
func applyFlags(fs *flag.FlagSet, cfg *config.Config, workers, bandHeight, cacheSize int, format string, verbose bool) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = workers
		case "band":
			cfg.BandHeight = bandHeight
		case "cache":
			cfg.CacheSize = cacheSize
		case "format":
			cfg.Format = format
		case "v":
			cfg.Verbose = verbose
		}
	})
}

func remapFile(in, palPath, out string, cfg config.Config) (palremap.Stats, error) {
	target, err := imageio.Load(in)
	if err != nil {
		return palremap.Stats{}, fmt.Errorf("load input: %w", err)
	}
	palBuf, err := imageio.Load(palPath)
	if err != nil {
		return palremap.Stats{}, fmt.Errorf("load palette: %w", err)
	}

	if name := strings.TrimSpace(cfg.Format); name != "" {
		f, err := pixel.FormatByName(name)
		if err != nil {
			return palremap.Stats{}, err
		}
		if target, err = pixel.Convert(target, f); err != nil {
			return palremap.Stats{}, fmt.Errorf("convert to %s: %w", f, err)
		}
	}

	stats, err := palremap.RemapImage(target, palBuf, options(cfg)...)
	if err != nil {
		return stats, err
	}
	if err := imageio.Save(out, target); err != nil {
		return stats, fmt.Errorf("save output: %w", err)
	}
	return stats, nil
}

func options(cfg config.Config) []palremap.Option {
	opts := []palremap.Option{
		palremap.WithBandHeight(cfg.BandHeight),
		palremap.WithMatchCache(cfg.CacheSize),
	}
	if cfg.Workers > 0 {
		opts = append(opts, palremap.WithWorkers(cfg.Workers))
	}
	return opts
}
