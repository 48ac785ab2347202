package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/nihilchroma/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.executed {
		frame.Commands.Spawn(Position{X: 1}, Velocity{DX: 1})
		s.executed = true
	}
}

type deleteAllSystem struct {
	Entities ecs.Query[struct {
		Id ecs.Entity
		*Position
	}]
	SeenAfterDelete int
}

func (s *deleteAllSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		frame.Storage.Delete(item.Id)
	}
	s.SeenAfterDelete = s.Entities.Count()
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}

		scheduler.Register(movement)
		scheduler.Register(health)

		storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}

		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}

		scheduler.Once(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
	})

	t.Run("registration order is execution order", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		var log []string
		for _, name := range []string{"population", "motion", "population", "collision"} {
			scheduler.Register(&recordingSystem{name: name, log: &log})
		}

		scheduler.Once(0.016)

		want := []string{"population", "motion", "population", "collision"}
		if len(log) != len(want) {
			t.Fatalf("expected %v, got %v", want, log)
		}
		for i := range want {
			if log[i] != want[i] {
				t.Errorf("step %d: expected %s, got %s", i, want[i], log[i])
			}
		}
	})

	t.Run("custom state persistence", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Health{Current: 50, Max: 100})
		storage.Spawn(Health{Current: 75, Max: 100})

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)

		if health.TotalHealth != 125.0 {
			t.Errorf("expected TotalHealth=125.0, got %f", health.TotalHealth)
		}

		storage.Spawn(Health{Current: 25, Max: 100})

		scheduler.Once(1.0)

		if health.TotalHealth != 150.0 {
			t.Errorf("expected TotalHealth=150.0, got %f", health.TotalHealth)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})

		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		if pos.X != 5.0 || pos.Y != 10.0 {
			t.Errorf("expected position (5, 10), got (%v, %v)", pos.X, pos.Y)
		}

		scheduler.Once(0.25)
		if scheduler.Elapsed() != 0.75 {
			t.Errorf("expected elapsed 0.75, got %v", scheduler.Elapsed())
		}
	})

	t.Run("commands integration", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		spawnSystem := &testSpawnSystem{}
		scheduler.Register(spawnSystem)

		scheduler.Once(1.0)

		if !spawnSystem.executed {
			t.Error("expected spawn system to execute")
		}

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Once(1.0)

		if movement.Entities.Count() == 0 {
			t.Error("expected spawned entity to be visible after command flush")
		}
	})

	t.Run("maintain runs after every system", func(t *testing.T) {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Position{X: 1})
		storage.Spawn(Position{X: 2})

		deleter := &deleteAllSystem{}
		health := &HealthSystem{}
		scheduler.Register(deleter)
		scheduler.Register(health)

		scheduler.Once(1.0)

		if deleter.SeenAfterDelete != 2 {
			t.Errorf("expected deleted entities to stay visible within the frame, got %d", deleter.SeenAfterDelete)
		}
		if scheduler.LastPurged() != 2 {
			t.Errorf("expected 2 purged entities, got %d", scheduler.LastPurged())
		}
		if storage.EntityCount() != 0 {
			t.Errorf("expected no live entities, got %d", storage.EntityCount())
		}
	})
}

type sleepySystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepySystem) Execute(frame *ecs.UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage()
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}

	sys1 := &sleepySystem{sleepDur: 1 * time.Millisecond}
	sys2 := &sleepySystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.GetStats()

	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}

	if len(stats.Systems) != 2 {
		t.Fatalf("expected 2 system stats, got %d", len(stats.Systems))
	}

	for _, sysStats := range stats.Systems {
		if sysStats.Name != "sleepySystem" {
			t.Errorf("expected system name 'sleepySystem', got '%s'", sysStats.Name)
		}

		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}

		if sysStats.MinDuration == 0 || sysStats.MaxDuration == 0 || sysStats.LastDuration == 0 {
			t.Errorf("expected non-zero durations, got %+v", sysStats)
		}

		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}

		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}

	if sys1.executeCount != 3 || sys2.executeCount != 3 {
		t.Errorf("expected both systems to execute 3 times, got %d and %d", sys1.executeCount, sys2.executeCount)
	}
}
