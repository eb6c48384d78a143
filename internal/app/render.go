package app

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
)

const (
	screenW = 128
	screenH = 64
)

func blankImage() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, screenW, screenH))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	return img
}

func newDrawer(img *image1bit.VerticalLSB) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
}

// renderDigital stacks date, time and zone on the panel.
// renderFrame picks the face for the configured clock mode.
func renderFrame(mode string, t clock.LocalizedTime) *image1bit.VerticalLSB {
	if mode == "analog" {
		return renderAnalog(t)
	}
	return renderDigital(t)
}

func renderDigital(t clock.LocalizedTime) *image1bit.VerticalLSB {
	img := blankImage()
	drawer := newDrawer(img)

	drawer.Dot = fixed.P(29, 20)
	drawer.DrawBytes([]byte(t.DateString()))

	drawer.Dot = fixed.P(36, 38)
	drawer.DrawBytes([]byte(t.TimeString()))

	zoneName := t.Zone
	if len(zoneName) > 18 {
		zoneName = zoneName[:18]
	}
	drawer.Dot = fixed.P(4, 56)
	drawer.DrawBytes([]byte(zoneName))

	return img
}

// handAngles returns the hand angles in radians, clockwise from 12
// o'clock. Minute and hour hands sweep continuously the way a real
// movement does, not in whole-unit jumps.
func handAngles(hour, minute, second int) (h, m, s float64) {
	const degToRad = math.Pi / 180
	s = float64(second) * 6 * degToRad
	m = (float64(minute)*6 + float64(second)*0.1) * degToRad
	h = (float64(hour%12)*30 + float64(minute)*0.5) * degToRad
	return h, m, s
}

// renderAnalog draws a round face with hour marks, three hands and the
// date in the corner.
func renderAnalog(t clock.LocalizedTime) *image1bit.VerticalLSB {
	img := blankImage()

	const (
		cx = screenW / 2
		cy = screenH / 2
		r  = 30
	)

	for i := 0; i < 12; i++ {
		a := float64(i) * 30 * math.Pi / 180
		drawLine(img, pointOnDial(cx, cy, a, r-3), pointOnDial(cx, cy, a, r))
	}

	h, m, s := handAngles(t.Hour, t.Minute, t.Second)
	center := image.Pt(cx, cy)
	drawLine(img, center, pointOnDial(cx, cy, h, r-14))
	drawLine(img, center, pointOnDial(cx, cy, m, r-6))
	drawLine(img, center, pointOnDial(cx, cy, s, r-2))

	drawer := newDrawer(img)
	drawer.Dot = fixed.P(screenW-38, 12)
	drawer.DrawBytes([]byte(fmt.Sprintf("%02d/%02d", t.Month, t.Day)))

	return img
}

// pointOnDial converts a hand angle and radius to pixel coordinates.
func pointOnDial(cx, cy int, angle float64, radius int) image.Point {
	x := float64(cx) + float64(radius)*math.Sin(angle)
	y := float64(cy) - float64(radius)*math.Cos(angle)
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// drawLine rasterizes a straight segment onto the 1-bit image.
func drawLine(img *image1bit.VerticalLSB, a, b image.Point) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.SetBit(a.X, a.Y, image1bit.On)
		return
	}
	for i := 0; i <= steps; i++ {
		img.SetBit(a.X+dx*i/steps, a.Y+dy*i/steps, image1bit.On)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
