package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/nihilchroma/config"
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// EndReason tells why a session stopped.
type EndReason uint8

const (
	Running EndReason = iota
	Quit
	GameOver
)

func (r EndReason) String() string {
	switch r {
	case Running:
		return "running"
	case Quit:
		return "quit"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// Deps are the collaborators a session drives. Nil fields get silent defaults.
type Deps struct {
	Input   InputSource
	Visuals Visuals
	Sounds  SoundSink
	Palette *Palette

	PlayerSprite VisualHandle
	BossSprite   VisualHandle

	Rand *rand.Rand
	Now  func() time.Time
	Log  *zap.Logger
}

// Session is the game loop driver: it feeds input in, runs the pipeline once
// per frame, applies the frame's hits to score and lives, and decides when
// the game ends.
type Session struct {
	ID         string
	World      *World
	Scheduler  *ecs.Scheduler
	Balls      *BallSpawner
	Population *PopulationSpawner

	cfg     *config.Config
	input   InputSource
	visuals Visuals
	sounds  SoundSink
	now     func() time.Time
	log     *zap.Logger
	boss    VisualHandle

	score             int
	lives             int
	invulnerableUntil float64
	bossSpawned       bool

	hud      ecs.Entity
	hudScore int
	hudLives int

	reason EndReason
}

// NewSession builds the world, the player, the HUD entity and the pipeline.
func NewSession(cfg *config.Config, deps Deps) *Session {
	if deps.Input == nil {
		deps.Input = nopInput{}
	}
	if deps.Visuals == nil {
		deps.Visuals = nopVisuals{}
	}
	if deps.Sounds == nil {
		deps.Sounds = nopSounds{}
	}
	if deps.Palette == nil {
		deps.Palette = &Palette{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	w := NewWorld(geom.RectWH(float32(cfg.Arena.Width), float32(cfg.Arena.Height)))
	w.SpawnPlayer(PlayerSpec{
		Radius:   cfg.Player.Radius,
		MaxSpeed: cfg.Player.MaxSpeed,
		Sprite:   deps.PlayerSprite,
	})

	id := uuid.NewString()
	s := &Session{
		ID:    id,
		World: w,
		Scheduler: NewPipeline(w, PipelineSettings{
			PopulationThreshold: cfg.Population.Threshold,
			PopulationMargin:    cfg.Population.Margin,
			Acceleration:        cfg.Player.Acceleration,
			Upscale:             float32(cfg.Arena.Upscale),
		}, deps.Rand),
		Balls: NewBallSpawner(w, deps.Rand, deps.Palette, cfg.Balls.SpawnInterval, cfg.Balls.Radius, RespawnParams{
			MaxRadius: cfg.Balls.RespawnRadius,
			MinSpeed:  cfg.Balls.MinSpeed,
			MaxSpeed:  cfg.Balls.MaxSpeed,
		}, deps.Now()),
		Population: &PopulationSpawner{
			World:   w,
			Rand:    deps.Rand,
			Palette: deps.Palette,
			Speed:   cfg.Population.Speed,
			Spread:  DefaultSpread,
		},
		cfg:      cfg,
		input:    deps.Input,
		visuals:  deps.Visuals,
		sounds:   deps.Sounds,
		now:      deps.Now,
		log:      deps.Log.With(zap.String("session", id)),
		boss:     deps.BossSprite,
		lives:    cfg.Player.Lives,
		hudScore: -1,
		hudLives: -1,
	}

	s.hud = w.SpawnScoreLabel(NoVisual)
	s.refreshHUD()

	return s
}

// Step runs one frame of dt seconds and reports whether the session ended.
func (s *Session) Step(dt float64) bool {
	if s.reason != Running {
		return true
	}

	*s.World.Input() = s.input.Poll()

	if *s.World.PopulationLow() {
		s.Population.Spawn()
	}
	if _, spawned := s.Balls.Tick(s.now()); spawned {
		s.log.Debug("ball spawned", zap.Int("entities", s.World.Storage.EntityCount()))
	}

	s.Scheduler.Once(dt)

	s.applyHits()
	s.maybeSpawnBoss()
	s.refreshHUD()

	switch {
	case s.World.Input().ExitRequested:
		s.reason = Quit
		s.log.Info("exit requested", zap.Int("score", s.score))
	case s.lives < 0:
		s.reason = GameOver
		s.sounds.Play(CueGameOver)
		s.log.Info("game over", zap.Int("score", s.score))
	}

	return s.reason != Running
}

func (s *Session) applyHits() {
	delta := s.World.ScoreDelta()
	s.score += int(*delta)
	*delta = 0

	hits := *s.World.Hits()
	*s.World.Hits() = HitFlags{}
	if hits.Beneficial {
		s.sounds.Play(CueBeneficial)
	}
	if hits.Neutral {
		s.sounds.Play(CueNeutral)
	}
	if !hits.Harmful {
		return
	}

	elapsed := s.Scheduler.Elapsed()
	if elapsed < s.invulnerableUntil {
		return
	}

	s.lives--
	s.invulnerableUntil = elapsed + s.cfg.Player.Invulnerability.Seconds()
	*s.World.Shake() = ScreenShake{Magnitude: s.cfg.Render.ShakeMagnitude, Requested: true}
	s.sounds.Play(CueHarmful)
	s.log.Debug("life lost", zap.Int("lives", s.lives))
}

func (s *Session) maybeSpawnBoss() {
	if s.bossSpawned || !s.cfg.Boss.Enabled || s.score < s.cfg.Boss.Score {
		return
	}
	s.bossSpawned = true

	SpawnBoss(s.World, BossSpec{
		Radius:          s.cfg.Boss.Radius,
		StartRadius:     s.cfg.Boss.StartRadius,
		TargetRadius:    s.cfg.Boss.TargetRadius,
		AngularVelocity: s.cfg.Boss.AngularVelocity,
		Sprite:          s.bossSprite(),
	})
	s.sounds.Play(CueBoss)
	s.log.Info("boss spawned", zap.Int("score", s.score))
}

func (s *Session) bossSprite() VisualHandle {
	if s.boss != NoVisual {
		return s.boss
	}
	for _, v := range s.Balls.Palette.Balls {
		if v.Class == Harmful {
			return v.Handle
		}
	}
	return s.Balls.Palette.Fallback
}

func (s *Session) refreshHUD() {
	if s.score == s.hudScore && s.lives == s.hudLives {
		return
	}
	s.hudScore, s.hudLives = s.score, s.lives

	sprite := s.World.Sprites.Get(s.hud)
	if sprite == nil {
		return
	}
	sprite.Handle = s.visuals.Text(sprite.Handle, "SCORE %d   LIVES %d", s.score, max(s.lives, 0))
}

// SetInput replaces the source polled at the start of every Step.
func (s *Session) SetInput(src InputSource) {
	s.input = src
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Lives() int {
	return s.lives
}

// Reason is Running until Step reports the end.
func (s *Session) Reason() EndReason {
	return s.reason
}

func (s *Session) BossSpawned() bool {
	return s.bossSpawned
}

// Invulnerable reports whether a harmful hit would currently be ignored.
func (s *Session) Invulnerable() bool {
	return s.Scheduler.Elapsed() < s.invulnerableUntil
}
