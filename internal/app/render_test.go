package app

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
)

func TestHandAngles(t *testing.T) {
	h, m, s := handAngles(3, 0, 0)
	assert.InDelta(t, math.Pi/2, h, 1e-9)
	assert.InDelta(t, 0.0, m, 1e-9)
	assert.InDelta(t, 0.0, s, 1e-9)

	h, m, s = handAngles(0, 30, 15)
	assert.InDelta(t, 15*math.Pi/180, h, 1e-9, "hour hand sweeps with the minutes")
	assert.InDelta(t, (30*6+15*0.1)*math.Pi/180, m, 1e-9)
	assert.InDelta(t, math.Pi/2, s, 1e-9)

	// 15:00 and 03:00 look the same on a 12-hour dial.
	h15, _, _ := handAngles(15, 0, 0)
	h3, _, _ := handAngles(3, 0, 0)
	assert.InDelta(t, h3, h15, 1e-9)
}

func TestPointOnDial(t *testing.T) {
	assert.Equal(t, image.Pt(64, 2), pointOnDial(64, 32, 0, 30))
	assert.Equal(t, image.Pt(94, 32), pointOnDial(64, 32, math.Pi/2, 30))
	assert.Equal(t, image.Pt(64, 62), pointOnDial(64, 32, math.Pi, 30))
}

func countLit(pix []byte) int {
	n := 0
	for _, b := range pix {
		if b != 0 {
			n++
		}
	}
	return n
}

func TestRenderModesProducePixels(t *testing.T) {
	lt := clock.LocalizedTime{
		Year: 2024, Month: 6, Day: 15,
		Hour: 10, Minute: 9, Second: 30,
		Zone: "America/New_York",
	}

	digital := renderDigital(lt)
	assert.Greater(t, countLit(digital.Pix), 0)

	analog := renderAnalog(lt)
	assert.Greater(t, countLit(analog.Pix), 0)
}

func TestRenderFrameSelectsMode(t *testing.T) {
	lt := clock.LocalizedTime{
		Year: 2024, Month: 6, Day: 15,
		Hour: 10, Minute: 9, Second: 30,
		Zone: "America/New_York",
	}

	assert.Equal(t, renderAnalog(lt).Pix, renderFrame("analog", lt).Pix)
	assert.Equal(t, renderDigital(lt).Pix, renderFrame("digital", lt).Pix)

	// Anything unrecognized falls back to the digital face.
	assert.Equal(t, renderDigital(lt).Pix, renderFrame("", lt).Pix)
	assert.NotEqual(t, renderAnalog(lt).Pix, renderDigital(lt).Pix)
}
