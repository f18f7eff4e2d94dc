package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/fogleman/isoline"
	"github.com/llgcode/draw2d/draw2dsvg"
)

var (
	pad     = flag.Int("pad", 1, "transparent border added around the image")
	dump    = flag.String("dump", "", "write the mask visualization to this png")
	output  = flag.String("o", "mask.svg", "outline svg")
	verbose = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] image...\n", os.Args[0])
		os.Exit(2)
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	isoline.SetLogger(logger)

	many := flag.NArg() > 1
	for _, path := range flag.Args() {
		if err := run(logger, path, many); err != nil {
			logger.Error("mask failed", "path", path, "err", err)
			os.Exit(1)
		}
	}
}

// outputPath names the file written for input. With several inputs each one
// gets its own file, so a.png with -o out/mask.svg writes out/a.mask.svg.
func outputPath(out, input string, many bool) string {
	if !many || out == "" {
		return out
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(out), stem+"."+filepath.Base(out))
}

func run(logger *slog.Logger, path string, many bool) error {
	im, err := gg.LoadImage(path)
	if err != nil {
		return err
	}
	mask := isoline.NewMask(im, *pad)
	logger.Info("mask", "path", path, "transparent", mask.Transparent, "total", mask.Total)

	if dumpPath := outputPath(*dump, path, many); dumpPath != "" {
		if err := imaging.Save(mask.Image(), dumpPath); err != nil {
			return fmt.Errorf("save %s: %w", dumpPath, err)
		}
	}

	// extent W-1 keeps outline coordinates in mask pixels
	outline := mask.Outline(float64(mask.W - 1))
	logger.Info("outline", "rings", len(outline))

	svg := draw2dsvg.NewSvg()
	svg.Width = strconv.Itoa(mask.W)
	svg.Height = strconv.Itoa(mask.H)
	gc := draw2dsvg.NewGraphicContext(svg)
	gc.SetStrokeColor(color.Black)
	gc.SetFillColor(color.NRGBA{0, 0, 0, 64})
	for _, ring := range outline {
		gc.MoveTo(ring[0].X, ring[0].Y)
		for _, p := range ring[1:] {
			gc.LineTo(p.X, p.Y)
		}
		gc.Close()
	}
	gc.FillStroke()
	return draw2dsvg.SaveToSvgFile(outputPath(*output, path, many), svg)
}
