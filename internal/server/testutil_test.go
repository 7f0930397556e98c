package server

import (
	"image"
	"image/color"
)

func image1x1() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	return img
}
