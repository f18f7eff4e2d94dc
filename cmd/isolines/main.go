package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
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
	interval  = flag.Float64("interval", 100, "vertical distance between contours")
	extent    = flag.Float64("extent", 0, "output coordinate extent (default: image width - 1)")
	buffer    = flag.Int("buffer", 0, "cells sampled beyond the image edge")
	terrarium = flag.Bool("terrarium", false, "decode pixels as terrarium elevation instead of 16-bit gray")
	downscale = flag.Float64("downscale", 1, "resize factor applied before tracing, <= 1")
	size      = flag.Int("size", 1600, "output size in px")
	padding   = flag.Int("padding", 0, "output padding in px")
	lineWidth = flag.Float64("lw", 1, "line width")
	output    = flag.String("o", "out.png", "output file, .png or .svg")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	isoline.SetLogger(logger)

	if err := run(logger, flag.Arg(0)); err != nil {
		logger.Error("isolines failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, path string) error {
	if *downscale <= 0 || *downscale > 1 {
		return fmt.Errorf("downscale must be in (0, 1], got %g", *downscale)
	}
	src, err := gg.LoadImage(path)
	if err != nil {
		return err
	}
	if *downscale < 1 {
		w := int(float64(src.Bounds().Dx()) * *downscale)
		h := int(float64(src.Bounds().Dy()) * *downscale)
		src = imaging.Resize(src, w, h, imaging.NearestNeighbor)
	}

	var grid isoline.Grid
	if *terrarium {
		grid = isoline.NewTile(0, 0, 0, src)
	} else {
		grid = isoline.NewGray16Grid(src)
	}
	if grid.Width() < 2 || grid.Height() < 2 {
		return fmt.Errorf("image %s is too small: %dx%d", path, grid.Width(), grid.Height())
	}
	e := *extent
	if e == 0 {
		e = float64(grid.Width() - 1)
	}

	lo, hi, ok := isoline.MinMax(grid)
	if !ok {
		return fmt.Errorf("image %s has no samples", path)
	}
	logger.Info("tracing", "width", grid.Width(), "height", grid.Height(), "min", lo, "max", hi, "interval", *interval)
	iso := isoline.Generate(*interval, grid, e, *buffer)
	for _, level := range iso.Levels() {
		var length float64
		for _, p := range iso[level] {
			length += p.Length()
		}
		logger.Info("level", "z", level, "paths", len(iso[level]), "length", length)
	}
	if iso.Count() == 0 {
		return fmt.Errorf("no contours at interval %g", *interval)
	}

	logger.Info("rendering", "output", *output)
	switch strings.ToLower(filepath.Ext(*output)) {
	case ".svg":
		return draw2dsvg.SaveToSvgFile(*output, renderSVG(iso, *size, *padding, *lineWidth))
	default:
		return gg.SavePNG(*output, renderPNG(iso, *size, *padding, *lineWidth))
	}
}

// fit returns the origin and scale that fit the isolines into size px.
func fit(iso isoline.Isolines, size, pad int) (isoline.Point, float64, int, int) {
	b, _ := iso.Bounds()
	pw := math.Max(b.Max.X-b.Min.X, 1)
	ph := math.Max(b.Max.Y-b.Min.Y, 1)
	sx := float64(size-pad*2) / pw
	sy := float64(size-pad*2) / ph
	scale := math.Min(sx, sy)
	return b.Min, scale, int(pw*scale) + pad*2, int(ph*scale) + pad*2
}

func renderPNG(iso isoline.Isolines, size, pad int, lw float64) image.Image {
	origin, scale, w, h := fit(iso, size, pad)
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Translate(float64(pad), float64(pad))
	dc.Scale(scale, scale)
	dc.Translate(-origin.X, -origin.Y)
	for _, level := range iso.Levels() {
		for _, path := range iso[level] {
			dc.NewSubPath()
			for _, p := range path {
				dc.LineTo(p.X, p.Y)
			}
		}
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(lw)
	dc.Stroke()
	return dc.Image()
}

func renderSVG(iso isoline.Isolines, size, pad int, lw float64) *draw2dsvg.Svg {
	origin, scale, w, h := fit(iso, size, pad)
	svg := draw2dsvg.NewSvg()
	svg.Width = strconv.Itoa(w)
	svg.Height = strconv.Itoa(h)
	gc := draw2dsvg.NewGraphicContext(svg)
	gc.SetStrokeColor(color.Black)
	gc.SetLineWidth(lw)
	gc.Translate(float64(pad), float64(pad))
	gc.Scale(scale, scale)
	gc.Translate(-origin.X, -origin.Y)
	for _, level := range iso.Levels() {
		for _, path := range iso[level] {
			gc.MoveTo(path[0].X, path[0].Y)
			for _, p := range path[1:] {
				gc.LineTo(p.X, p.Y)
			}
		}
	}
	gc.Stroke()
	return svg
}
