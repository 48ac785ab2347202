package game

import (
	"github.com/plus3/nihilchroma/ecs"
)

// PopulationSystem culls drifters that wandered well outside the arena and
// reports whether too few are left.
type PopulationSystem struct {
	Threshold int
	Margin    float32

	Members ecs.Query[struct {
		Entity ecs.Entity
		*Transform
		*PopulationTag
	}]
	Arena ecs.Singleton[Arena]
	Low   ecs.Singleton[PopulationLow]
}

func (s *PopulationSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Arena.MustGet().Bounds.Grow(s.Margin)

	// Culled members still count: the census is of this pass, not the next frame.
	count := 0
	for m := range s.Members.Values() {
		count++
		if !bounds.Contains(m.Transform.Position) {
			frame.Storage.Delete(m.Entity)
		}
	}

	*s.Low.MustGet() = count < s.Threshold
}
