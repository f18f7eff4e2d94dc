package isoline

import (
	"image"
	"image/draw"
)

func ensureRGBA(im image.Image) (*image.RGBA, bool) {
	switch im := im.(type) {
	case *image.RGBA:
		return im, true
	default:
		dst := image.NewRGBA(im.Bounds())
		draw.Draw(dst, im.Bounds(), im, im.Bounds().Min, draw.Src)
		return dst, false
	}
}

func ensureNRGBA(im image.Image) (*image.NRGBA, bool) {
	switch im := im.(type) {
	case *image.NRGBA:
		return im, true
	default:
		dst := image.NewNRGBA(im.Bounds())
		draw.Draw(dst, im.Bounds(), im, im.Bounds().Min, draw.Src)
		return dst, false
	}
}

func ensureGray16(im image.Image) (*image.Gray16, bool) {
	switch im := im.(type) {
	case *image.Gray16:
		return im, true
	default:
		dst := image.NewGray16(im.Bounds())
		draw.Draw(dst, im.Bounds(), im, im.Bounds().Min, draw.Src)
		return dst, false
	}
}
