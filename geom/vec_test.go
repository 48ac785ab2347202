package geom_test

import (
	"math"
	"testing"

	"github.com/plus3/nihilchroma/geom"
	"github.com/stretchr/testify/assert"
)

func TestVecArithmetic(t *testing.T) {
	a := geom.V(1, 2)
	b := geom.V(3, -4)

	assert.Equal(t, geom.V(4, -2), a.Add(b))
	assert.Equal(t, geom.V(-2, 6), a.Sub(b))
	assert.Equal(t, geom.V(2, 4), a.Scale(2))
	assert.Equal(t, float32(-5), a.Dot(b))
	assert.Equal(t, float32(25), b.LenSq())
	assert.Equal(t, float32(5), b.Len())
	assert.Equal(t, float32(25), a.DistSq(geom.V(4, 6)))
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, geom.Vec2{}, geom.Vec2{}.Normalize())
	assert.InDelta(t, 1, geom.V(0, 7).Normalize().Len(), 1e-6)
}

func TestAngleAndRotate(t *testing.T) {
	v := geom.FromAngle(math.Pi/2, 2)
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 2, v.Y, 1e-6)
	assert.InDelta(t, math.Pi/2, v.Angle(), 1e-6)

	r := geom.V(1, 0).Rotate(math.Pi)
	assert.InDelta(t, -1, r.X, 1e-6)
	assert.InDelta(t, 0, r.Y, 1e-6)
}
