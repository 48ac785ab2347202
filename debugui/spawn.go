package debugui

import (
	"go.uber.org/zap"

	"github.com/plus3/nihilchroma/ecs"
)

// Register adds the debug UI stores and the ImguiInputState resource to storage.
func Register(storage *ecs.Storage) {
	ecs.AddStore[ImguiItem](storage)
	ecs.AddStore[EntityBrowserComponent](storage)
	ecs.AddStore[ComponentInspectorComponent](storage)
	ecs.AddStore[StoreViewerComponent](storage)
	ecs.AddStore[PerformanceStatsComponent](storage)
	ecs.AddStore[ResourcesComponent](storage)
	storage.AddSingleton(ImguiInputState{})
}

// Install registers the debug stores on the scheduler's storage, spawns the
// debug windows and appends an ImguiSystem, so the windows draw after every
// game system ran. The caller brackets each frame with the backend's
// BeginFrame and EndFrame.
func Install(scheduler *ecs.Scheduler, log *zap.Logger) {
	storage := scheduler.Storage()
	Register(storage)

	browser := storage.Spawn(NewEntityBrowserComponent(100))
	inspector := storage.Spawn(NewComponentInspectorComponent())
	stores := storage.Spawn(NewStoreViewerComponent())
	resources := storage.Spawn(NewResourcesComponent())
	perf := storage.Spawn(NewPerformanceStatsComponent(120))
	timer := NewFrameTimer()

	storage.Spawn(ImguiItem{Render: func() {
		b := ecs.ReadComponent[EntityBrowserComponent](storage, browser)
		if b == nil {
			return
		}
		if sv := ecs.ReadComponent[StoreViewerComponent](storage, stores); sv != nil {
			if name := sv.Render(storage); name != "" {
				b.FilterByStore(name)
			}
		}
		b.Render(storage)
		if ci := ecs.ReadComponent[ComponentInspectorComponent](storage, inspector); ci != nil {
			ci.Render(storage, b.Selected())
		}
		if rc := ecs.ReadComponent[ResourcesComponent](storage, resources); rc != nil {
			rc.Render(storage)
		}
		if ps := ecs.ReadComponent[PerformanceStatsComponent](storage, perf); ps != nil {
			ps.Record(timer.GetDeltaTime(), scheduler.LastPurged())
			ps.Render(scheduler)
		}
	}})

	scheduler.Register(&ImguiSystem{})
	log.Info("debug ui installed", zap.Int("entities", storage.EntityCount()))
}
