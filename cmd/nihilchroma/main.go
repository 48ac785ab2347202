package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/nihilchroma/assets"
	"github.com/plus3/nihilchroma/audio"
	"github.com/plus3/nihilchroma/config"
	"github.com/plus3/nihilchroma/debugui"
	debugui_ebiten "github.com/plus3/nihilchroma/debugui/ebiten"
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/input"
	"github.com/plus3/nihilchroma/render"
)

const title = "Nihil Chroma"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if p := startProfile(cfg.Debug.Profile); p != nil {
		defer p.Stop()
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	library := assets.NewLibrary(log.Named("assets"))
	set, err := library.LoadSet(context.Background(), cfg.Assets.Dir)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	sounds := audio.New(cfg.Audio, log.Named("audio"))
	defer sounds.Close()

	var source game.InputSource = input.NewPoller()
	session := game.NewSession(cfg, game.Deps{
		Visuals:      library,
		Sounds:       sounds,
		Palette:      set.Palette,
		PlayerSprite: set.Player,
		BossSprite:   set.Boss,
		Rand:         rng,
		Log:          log.Named("session"),
	})
	renderer := render.NewRenderer(session.World, library, cfg, rng)

	g := &Game{session: session, renderer: renderer}
	width, height := renderer.ScreenSize()

	if cfg.Debug.Imgui {
		g.imgui = debugui_ebiten.NewImguiBackend(title, width, height)
		debugui.Install(session.Scheduler, log.Named("debugui"))
		source = &imguiAwareInput{
			src:   source,
			state: ecs.NewSingleton[debugui.ImguiInputState](session.World.Storage),
		}
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(title)
	}
	session.SetInput(source)
	ebiten.SetWindowClosingHandled(true)

	log.Info("starting",
		zap.Int("width", cfg.Arena.Width),
		zap.Int("height", cfg.Arena.Height),
		zap.Bool("imgui", cfg.Debug.Imgui),
		zap.Bool("audio", cfg.Audio.Enabled),
	)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	log.Info("stopped", zap.Stringer("reason", session.Reason()), zap.Int("score", session.Score()))
	if session.Reason() == game.GameOver {
		fmt.Printf("Game over. Final score: %d\n", session.Score())
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	return nil
}
