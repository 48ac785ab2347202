package assets

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/nihilchroma/game"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// Format renders format with digit grouping for numbers ("12,345").
func (l *Library) Format(format string, args ...any) string {
	return l.printer.Sprintf(format, args...)
}

// Text renders a HUD string into handle. NoVisual allocates a new handle;
// any other handle is redrawn in place, reallocating the image when the
// text no longer fits.
func (l *Library) Text(handle game.VisualHandle, format string, args ...any) game.VisualHandle {
	s := l.Format(format, args...)

	w, h := text.Measure(s, hudFace, hudFace.Metrics().HAscent+hudFace.Metrics().HDescent)
	width, height := max(int(math.Ceil(w)), 1), max(int(math.Ceil(h)), 1)

	img := l.Image(handle)
	if img == nil || img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		if img != nil {
			img.Deallocate()
		}
		img = ebiten.NewImage(width, height)
		if handle <= game.NoVisual || int(handle) >= len(l.images) {
			handle = l.Add(img)
		} else {
			l.images[handle] = img
		}
	}

	img.Clear()
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(img, s, hudFace, op)

	return handle
}
