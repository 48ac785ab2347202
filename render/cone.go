package render

import (
	"image"
	"math"

	"github.com/plus3/nihilchroma/geom"
)

// DesaturateOutsideCone greys every pixel of img whose direction from origin
// lies more than halfAngle radians away from facing. A grey pixel takes the
// mean of its red, green and blue channels; alpha is kept. The pixel under
// origin always keeps its colour.
func DesaturateOutsideCone(img *image.RGBA, origin geom.Vec2, facing, halfAngle float64) {
	if halfAngle >= math.Pi {
		return
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) + 0.5 - float64(origin.Y)
		row := img.Pix[(y-b.Min.Y)*img.Stride:]

		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - float64(origin.X)
			if dx*dx+dy*dy < 0.25 {
				continue
			}
			if InCone(math.Atan2(dy, dx), facing, halfAngle) {
				continue
			}

			px := row[(x-b.Min.X)*4 : (x-b.Min.X)*4+4 : (x-b.Min.X)*4+4]
			grey := uint8((uint16(px[0]) + uint16(px[1]) + uint16(px[2])) / 3)
			px[0], px[1], px[2] = grey, grey, grey
		}
	}
}

// InCone reports whether angle is within halfAngle of facing, both in radians.
func InCone(angle, facing, halfAngle float64) bool {
	return math.Abs(wrapAngle(angle-facing)) <= halfAngle
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
