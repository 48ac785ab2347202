package geom

// Rect is an axis-aligned rectangle from Min (inclusive) to Max (inclusive).
type Rect struct {
	Min, Max Vec2
}

// RectWH returns the rectangle spanning (0, 0) to (w, h).
func RectWH(w, h float32) Rect {
	return Rect{Max: Vec2{w, h}}
}

func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Grow returns r expanded by margin on every side.
func (r Rect) Grow(margin float32) Rect {
	return Rect{
		Min: Vec2{r.Min.X - margin, r.Min.Y - margin},
		Max: Vec2{r.Max.X + margin, r.Max.Y + margin},
	}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Perimeter returns the total edge length.
func (r Rect) Perimeter() float32 {
	return 2 * (r.Width() + r.Height())
}

// PointOnPerimeter walks distance d clockwise along the edges starting at
// Min: top edge, right edge, bottom edge, left edge. d is wrapped into
// [0, Perimeter). Picking d uniformly picks an edge with probability
// proportional to its length.
func (r Rect) PointOnPerimeter(d float32) Vec2 {
	w, h := r.Width(), r.Height()
	p := r.Perimeter()
	if p <= 0 {
		return r.Min
	}
	for d < 0 {
		d += p
	}
	for d >= p {
		d -= p
	}

	switch {
	case d < w:
		return Vec2{r.Min.X + d, r.Min.Y}
	case d < w+h:
		return Vec2{r.Max.X, r.Min.Y + (d - w)}
	case d < 2*w+h:
		return Vec2{r.Max.X - (d - w - h), r.Max.Y}
	default:
		return Vec2{r.Min.X, r.Max.Y - (d - 2*w - h)}
	}
}

// OnPerimeter reports whether p lies on an edge of r within eps.
func (r Rect) OnPerimeter(p Vec2, eps float32) bool {
	if !r.Grow(eps).Contains(p) {
		return false
	}
	return absf(p.X-r.Min.X) <= eps || absf(p.X-r.Max.X) <= eps ||
		absf(p.Y-r.Min.Y) <= eps || absf(p.Y-r.Max.Y) <= eps
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
