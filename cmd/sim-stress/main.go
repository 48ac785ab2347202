package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/nihilchroma/config"
	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.Path(), "Game config file; missing means defaults.")
	frames := flag.Int("frames", 36000, "Frames each worker simulates.")
	workers := flag.Int("workers", 1, "Independent sessions run in parallel.")
	seed := flag.Uint64("seed", 1, "Base random seed; worker i uses seed+i.")
	tps := flag.Int("tps", 60, "Simulated ticks per second.")
	format := flag.String("format", "markdown", "Report format: markdown or yaml.")
	prof := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	verbose := flag.Bool("v", false, "Log session events.")
	flag.Parse()

	if *format != "markdown" && *format != "yaml" {
		return fmt.Errorf("unknown report format %q", *format)
	}
	if *frames <= 0 || *workers <= 0 || *tps <= 0 {
		return fmt.Errorf("frames, workers and tps must be positive")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	report := &Report{
		Frames:  *frames,
		Workers: *workers,
		Seed:    *seed,
		TPS:     *tps,
		Results: make([]WorkerResult, *workers),
	}

	log.Info("starting stress run", zap.Int("frames", *frames), zap.Int("workers", *workers))
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	for i := range *workers {
		g.Go(func() error {
			res, err := simulate(ctx, cfg, *seed+uint64(i), *frames, 1/float64(*tps), log.With(zap.Int("worker", i)))
			report.Results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize()
	log.Info("stress run finished", zap.Duration("took", report.TotalTime))

	if *format == "yaml" {
		return report.WriteYAML(os.Stdout)
	}
	return report.Generate(os.Stdout)
}

// simulate runs sessions back to back until frames frames have been stepped.
func simulate(ctx context.Context, cfg *config.Config, seed uint64, frames int, dt float64, log *zap.Logger) (WorkerResult, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	clock := &simClock{now: time.Unix(0, 0)}
	arena := geom.RectWH(float32(cfg.Arena.Width), float32(cfg.Arena.Height))

	res := WorkerResult{Seed: seed}
	var session *game.Session

	for frame := 0; frame < frames; frame++ {
		if frame%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		if session == nil {
			session = game.NewSession(cfg, game.Deps{
				Input: newPilot(rng, arena, float32(cfg.Arena.Upscale)),
				Rand:  rng,
				Now:   clock.Now,
				Log:   log,
			})
			res.Sessions++
		}

		clock.Advance(dt)
		stepStart := time.Now()
		done := session.Step(dt)
		res.UpdateTime.Samples = append(res.UpdateTime.Samples, time.Since(stepStart))

		res.Frames++
		res.Purged += session.Scheduler.LastPurged()
		res.PeakEntities = max(res.PeakEntities, session.World.Storage.EntityCount())

		if done {
			res.absorb(session)
			session = nil
		}
	}
	if session != nil {
		res.absorb(session)
	}

	res.UpdateTime.Finalize()
	return res, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
