// Package icon draws the Voxa app icon: a grey circle on white carrying a
// white microphone, in the style of the mic.circle.fill symbol.
package icon

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Sizes are the nominal (1x) edge lengths macOS wants in an app icon set.
var Sizes = []int{16, 32, 128, 256, 512}

// Geometry is tuned against a 512-unit canvas and scaled from there.
const (
	referenceSize = 512.0
	circlePadding = 0.08

	micWidth    = 140
	micHeight   = 200
	micRadius   = 70
	micLift     = 20
	standWidth  = 40
	standHeight = 60
	baseWidth   = 160
	baseHeight  = 30
	baseRadius  = 15
)

var (
	Background  = color.RGBA{255, 255, 255, 255}
	CircleColor = color.RGBA{120, 120, 120, 255}
	MicColor    = color.RGBA{255, 255, 255, 255}
)

// Draw renders the icon as a size×size opaque image.
func Draw(size int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetColor(Background)
	dc.Clear()

	f := float64(size)
	cx, cy := f/2, f/2

	pad := f * circlePadding
	r := (f - 2*pad) / 2
	dc.SetColor(CircleColor)
	dc.DrawEllipse(cx, cy, r, r)
	dc.Fill()

	// Lengths are truncated to whole units after scaling, so small
	// sizes keep the same proportions a hand-tuned bitmap would.
	s := f / referenceSize
	unit := func(v float64) float64 { return float64(int(v * s)) }

	mw, mh := unit(micWidth), unit(micHeight)
	mx := cx - mw/2
	my := cy - mh/2 - unit(micLift)

	dc.SetColor(MicColor)
	dc.DrawRoundedRectangle(mx, my, mw, mh, unit(micRadius))
	dc.Fill()

	sw, sh := unit(standWidth), unit(standHeight)
	sy := my + mh
	dc.DrawRectangle(cx-sw/2, sy, sw, sh)
	dc.Fill()

	bw, bh := unit(baseWidth), unit(baseHeight)
	by := sy + sh
	dc.DrawRoundedRectangle(cx-bw/2, by, bw, bh, unit(baseRadius))
	dc.Fill()

	return dc.Image()
}
