package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"runtime"
)

var (
	padBody   = color.NRGBA{R: 0x2E, G: 0x34, B: 0x40, A: 0xFF}
	padAccent = color.NRGBA{R: 0x88, G: 0xC0, B: 0xD0, A: 0xFF}
	keyCap    = color.NRGBA{R: 0xEC, G: 0xEF, B: 0xF4, A: 0xFF}
)

// GetIcon returns the tray icon in the format systray expects on this
// platform: ICO on Windows, PNG elsewhere.
func GetIcon() []byte {
	data, err := encodePNG(Draw(32))
	if err != nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return wrapICO(data, 32)
	}
	return data
}

// Draw renders a controller next to a key cap.
func Draw(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	// key cap, upper left
	fillRoundedRect(img, s*0.04, s*0.04, s*0.40, s*0.40, s*0.08, keyCap)

	// controller body and grips
	fillRoundedRect(img, s*0.18, s*0.42, s*0.78, s*0.34, s*0.14, padBody)
	fillCircle(img, s*0.30, s*0.78, s*0.13, padBody)
	fillCircle(img, s*0.84, s*0.78, s*0.13, padBody)

	// dpad and face buttons
	fillRoundedRect(img, s*0.27, s*0.56, s*0.14, s*0.05, 0, padAccent)
	fillRoundedRect(img, s*0.315, s*0.51, s*0.05, s*0.15, 0, padAccent)
	fillCircle(img, s*0.78, s*0.53, s*0.035, padAccent)
	fillCircle(img, s*0.86, s*0.60, s*0.035, padAccent)
	return img
}

func fillRoundedRect(img *image.NRGBA, x, y, w, h, r float64, c color.NRGBA) {
	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			fx, fy := float64(px)+0.5, float64(py)+0.5
			if fx < x || fx > x+w || fy < y || fy > y+h {
				continue
			}
			cx := math.Max(x+r, math.Min(fx, x+w-r))
			cy := math.Max(y+r, math.Min(fy, y+h-r))
			if math.Hypot(fx-cx, fy-cy) <= r {
				img.SetNRGBA(px, py, c)
			}
		}
	}
}

func fillCircle(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	fillRoundedRect(img, cx-r, cy-r, 2*r, 2*r, r, c)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO embeds a PNG in a single-image ICO container.
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{dim, dim, 0, 0})
	binary.Write(&buf, binary.LittleEndian, struct {
		Planes, BitCount uint16
		Size, Offset     uint32
	}{1, 32, uint32(len(pngData)), 6 + 16})
	buf.Write(pngData)
	return buf.Bytes()
}
