package ebiten_test

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/nihilchroma/debugui"
	debugui_ebiten "github.com/plus3/nihilchroma/debugui/ebiten"
	"github.com/plus3/nihilchroma/ecs"
)

type Counter struct {
	Ticks int
}

type CountSystem struct {
	Counters ecs.Query[struct{ *Counter }]
}

func (s *CountSystem) Execute(frame *ecs.UpdateFrame) {
	for row := range s.Counters.Values() {
		row.Ticks++
	}
}

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler *ecs.Scheduler
	backend   *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems and the deferred ImGui windows run between BeginFrame and EndFrame.
	g.backend.BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen first, then the ImGui overlay on top.
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	storage := ecs.NewStorage()
	counters := ecs.AddStore[Counter](storage)
	counter := storage.Spawn(Counter{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CountSystem{})

	// Install adds the inspector windows and an ImguiSystem after CountSystem.
	debugui.Install(scheduler, zap.NewNop())

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Counter")
			imgui.Text(fmt.Sprintf("ticks: %d", counters.Get(counter).Ticks))
			imgui.End()
		},
	})

	if err := ebiten.RunGame(&Game{scheduler: scheduler, backend: backend}); err != nil {
		panic(err)
	}
}
