package render

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/nihilchroma/config"
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/game"
)

// ImageSource resolves visual handles. A nil image means the handle is unknown.
type ImageSource interface {
	Image(handle game.VisualHandle) *ebiten.Image
}

var (
	background    = color.RGBA{14, 12, 22, 255}
	playerColour  = color.RGBA{240, 240, 240, 255}
	drifterColour = color.RGBA{90, 110, 160, 255}
	classColours  = map[game.BallClass]color.RGBA{
		game.Beneficial: {80, 220, 120, 255},
		game.Neutral:    {230, 210, 80, 255},
		game.Harmful:    {235, 70, 70, 255},
	}
)

type drawable struct {
	Transform *game.Transform
	Sprite    *game.Sprite
	Bounds    *game.BoundingCircle `ecs:"optional"`
	Class     *game.BallClass      `ecs:"optional"`
	Label     *game.ScoreLabel     `ecs:"optional"`
	Drifter   *game.PopulationTag  `ecs:"optional"`
}

// Renderer draws the world into an arena-sized image, greys everything outside
// the player's vision cone, then scales the result up to the window with the
// current screen shake. The HUD is drawn last, unshaken and in colour.
type Renderer struct {
	World     *game.World
	Images    ImageSource
	Upscale   int
	HalfAngle float64
	Shake     *Shake

	drawables *ecs.Query[drawable]
	arena     *ebiten.Image
	frame     *image.RGBA
}

// NewRenderer binds a renderer to w. images may be nil, in which case every
// entity with a BoundingCircle is drawn as a filled circle.
func NewRenderer(w *game.World, images ImageSource, cfg *config.Config, rng *rand.Rand) *Renderer {
	width, height := cfg.Arena.Width, cfg.Arena.Height
	return &Renderer{
		World:     w,
		Images:    images,
		Upscale:   cfg.Arena.Upscale,
		HalfAngle: cfg.Render.ConeHalfAngle(),
		Shake:     NewShake(cfg.Render.ShakeDecay, rng),
		drawables: ecs.NewQuery[drawable](w.Storage),
		arena:     ebiten.NewImage(width, height),
		frame:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// ScreenSize is the window size in pixels.
func (r *Renderer) ScreenSize() (int, int) {
	b := r.frame.Bounds()
	return b.Dx() * r.Upscale, b.Dy() * r.Upscale
}

// Update consumes shake requests raised during the frame and advances the shake.
func (r *Renderer) Update(dt float64) {
	r.Shake.Consume(r.World.Shake())
	r.Shake.Update(dt)
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	r.arena.Fill(background)

	for e, d := range r.drawables.Iter() {
		if d.Label != nil || e == r.World.Player {
			continue
		}
		r.drawEntity(r.arena, d)
	}
	if player := r.drawables.Get(r.World.Player); player != nil {
		r.drawEntity(r.arena, *player)
		r.applyCone(player.Transform)
	}

	scale := float64(r.Upscale)
	offset := r.Shake.Offset()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(offset.X)*scale, float64(offset.Y)*scale)
	screen.Fill(color.Black)
	screen.DrawImage(r.arena, op)

	for d := range r.drawables.Values() {
		if d.Label == nil {
			continue
		}
		r.drawLabel(screen, d, scale)
	}
}

func (r *Renderer) applyCone(t *game.Transform) {
	r.arena.ReadPixels(r.frame.Pix)
	DesaturateOutsideCone(r.frame, t.Position, t.Angle, r.HalfAngle)
	r.arena.WritePixels(r.frame.Pix)
}

func (r *Renderer) image(handle game.VisualHandle) *ebiten.Image {
	if r.Images == nil || handle == game.NoVisual {
		return nil
	}
	return r.Images.Image(handle)
}

func (r *Renderer) drawEntity(dst *ebiten.Image, d drawable) {
	t := d.Transform

	img := r.image(d.Sprite.Handle)
	if img == nil {
		radius, colour, ok := FallbackCircle(d.Bounds, d.Class, d.Drifter != nil)
		if ok {
			vector.DrawFilledCircle(dst, t.Position.X, t.Position.Y, radius, colour, true)
		}
		return
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	sx, sy := float64(t.Scale.X), float64(t.Scale.Y)
	if d.Bounds != nil && w > 0 && h > 0 {
		fit := 2 * float64(d.Bounds.Radius) / float64(max(w, h))
		sx, sy = sx*fit, sy*fit
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Angle)
	op.GeoM.Translate(float64(t.Position.X), float64(t.Position.Y))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func (r *Renderer) drawLabel(screen *ebiten.Image, d drawable, scale float64) {
	img := r.image(d.Sprite.Handle)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(d.Transform.Scale.X)*scale, float64(d.Transform.Scale.Y)*scale)
	op.GeoM.Translate(float64(d.Transform.Position.X)*scale, float64(d.Transform.Position.Y)*scale)
	screen.DrawImage(img, op)
}

// DrifterRadius is the size of a drifter drawn without a sprite.
const DrifterRadius = 6

// FallbackCircle gives the filled circle drawn for an entity whose sprite has
// no image: its bounding circle coloured by class, or a DrifterRadius circle
// for drifters, which carry no bounds. ok is false when there is nothing to draw.
func FallbackCircle(bounds *game.BoundingCircle, class *game.BallClass, drifter bool) (radius float32, colour color.RGBA, ok bool) {
	switch {
	case bounds != nil:
		radius = bounds.Radius
	case drifter:
		radius = DrifterRadius
	default:
		return 0, color.RGBA{}, false
	}

	switch {
	case class != nil:
		colour = classColours[*class]
	case drifter:
		colour = drifterColour
	default:
		colour = playerColour
	}
	return radius, colour, true
}
