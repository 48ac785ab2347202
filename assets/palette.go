package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/plus3/nihilchroma/game"
)

// Layout of an asset directory. The class images and the player are required
// once the directory exists; everything else is optional.
const (
	PlayerFile     = "player.png"
	BossFile       = "boss.png"
	PopulationDir  = "population"
	VariantsDir    = "balls"
	BeneficialFile = "good.png"
	NeutralFile    = "neutral.png"
	HarmfulFile    = "bad.png"
)

var classFiles = map[game.BallClass]string{
	game.Beneficial: BeneficialFile,
	game.Neutral:    NeutralFile,
	game.Harmful:    HarmfulFile,
}

// Set is what a session needs from the asset directory.
type Set struct {
	Player  game.VisualHandle
	Boss    game.VisualHandle
	Palette *game.Palette
}

// LoadSet loads the asset directory dir. A missing directory yields an empty
// set; the renderer then draws plain shapes.
func (l *Library) LoadSet(ctx context.Context, dir string) (*Set, error) {
	set := &Set{Palette: &game.Palette{ClassDefaults: map[game.BallClass]game.VisualHandle{}}}

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		l.log.Warn("asset directory missing, drawing shapes", zap.String("dir", dir))
		return set, nil
	}

	var err error
	if set.Player, err = l.Load(filepath.Join(dir, PlayerFile)); err != nil {
		return nil, err
	}

	for _, class := range []game.BallClass{game.Beneficial, game.Neutral, game.Harmful} {
		handle, err := l.Load(filepath.Join(dir, classFiles[class]))
		if err != nil {
			return nil, err
		}
		set.Palette.ClassDefaults[class] = handle
		set.Palette.Balls = append(set.Palette.Balls, game.BallVariant{Class: class, Handle: handle})

		variants, err := l.LoadDir(ctx, filepath.Join(dir, VariantsDir, class.String()))
		if err != nil {
			return nil, fmt.Errorf("%s variants: %w", class, err)
		}
		for _, v := range variants {
			set.Palette.Balls = append(set.Palette.Balls, game.BallVariant{Class: class, Handle: v})
		}
	}
	set.Palette.Fallback = set.Palette.ClassDefaults[game.Neutral]

	if set.Palette.Population, err = l.LoadDir(ctx, filepath.Join(dir, PopulationDir)); err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}

	bossPath := filepath.Join(dir, BossFile)
	if _, err := os.Stat(bossPath); err == nil {
		if set.Boss, err = l.Load(bossPath); err != nil {
			l.log.Warn("boss image unusable", zap.Error(err))
		}
	}

	l.log.Info("assets loaded",
		zap.String("dir", dir),
		zap.Int("images", l.Len()),
		zap.Int("ball_variants", len(set.Palette.Balls)),
		zap.Int("population_variants", len(set.Palette.Population)),
	)
	return set, nil
}
