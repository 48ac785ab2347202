package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides DefaultPath.
const (
	EnvPath     = "NIHILCHROMA_CONFIG"
	DefaultPath = "config/game.toml"
)

type Config struct {
	Arena      ArenaConfig      `toml:"arena"`
	Player     PlayerConfig     `toml:"player"`
	Balls      BallsConfig      `toml:"balls"`
	Population PopulationConfig `toml:"population"`
	Boss       BossConfig       `toml:"boss"`
	Render     RenderConfig     `toml:"render"`
	Audio      AudioConfig      `toml:"audio"`
	Assets     AssetsConfig     `toml:"assets"`
	Logging    LoggingConfig    `toml:"logging"`
	Debug      DebugConfig      `toml:"debug"`
}

type ArenaConfig struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	Upscale int `toml:"upscale"` // window pixels per arena unit
}

type PlayerConfig struct {
	Radius          float32       `toml:"radius"`
	MaxSpeed        float32       `toml:"max_speed"`    // units/s
	Acceleration    float32       `toml:"acceleration"` // units/s² per held key
	Lives           int           `toml:"lives"`
	Invulnerability time.Duration `toml:"invulnerability"` // after a harmful hit
}

type BallsConfig struct {
	SpawnInterval time.Duration `toml:"spawn_interval"`
	Radius        float32       `toml:"radius"`
	RespawnRadius float32       `toml:"respawn_radius"`
	MinSpeed      float32       `toml:"min_speed"`
	MaxSpeed      float32       `toml:"max_speed"`
}

type PopulationConfig struct {
	Threshold int     `toml:"threshold"`
	Margin    float32 `toml:"margin"`
	Speed     float32 `toml:"speed"`
}

type BossConfig struct {
	Enabled         bool    `toml:"enabled"`
	Score           int     `toml:"score"` // spawn once the score reaches this
	Radius          float32 `toml:"radius"`
	StartRadius     float64 `toml:"start_radius"`
	TargetRadius    float64 `toml:"target_radius"`
	AngularVelocity float64 `toml:"angular_velocity"` // radians per frame
}

type RenderConfig struct {
	Cone           float64 `toml:"cone"` // fraction of a full turn
	ShakeMagnitude float32 `toml:"shake_magnitude"`
	ShakeDecay     float32 `toml:"shake_decay"` // per second
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // beep volume exponent, 0 is unchanged
}

type AssetsConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

type DebugConfig struct {
	Imgui   bool   `toml:"imgui"`
	Profile string `toml:"profile"` // "", "cpu" or "mem"
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults; an unreadable or malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("arena size %dx%d must be positive", c.Arena.Width, c.Arena.Height)
	case c.Arena.Upscale <= 0:
		return fmt.Errorf("arena upscale %d must be positive", c.Arena.Upscale)
	case c.Player.Radius <= 0:
		return fmt.Errorf("player radius %v must be positive", c.Player.Radius)
	case c.Balls.MinSpeed < 0 || c.Balls.MaxSpeed < c.Balls.MinSpeed:
		return fmt.Errorf("ball speed range [%v, %v] is invalid", c.Balls.MinSpeed, c.Balls.MaxSpeed)
	case c.Balls.SpawnInterval <= 0:
		return fmt.Errorf("ball spawn interval %v must be positive", c.Balls.SpawnInterval)
	case c.Render.Cone < 0 || c.Render.Cone > 0.5:
		return fmt.Errorf("render cone %v must be within [0, 0.5]", c.Render.Cone)
	case c.Logging.Format != "console" && c.Logging.Format != "json":
		return fmt.Errorf("logging format %q must be console or json", c.Logging.Format)
	}
	return nil
}

// ConeHalfAngle returns the vision cone half-angle in radians.
func (r RenderConfig) ConeHalfAngle() float64 {
	return r.Cone * 2 * math.Pi
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Arena: ArenaConfig{
			Width:   480,
			Height:  360,
			Upscale: 2,
		},
		Player: PlayerConfig{
			Radius:          14,
			MaxSpeed:        240,
			Acceleration:    900,
			Lives:           3,
			Invulnerability: 0,
		},
		Balls: BallsConfig{
			SpawnInterval: 1500 * time.Millisecond,
			Radius:        10,
			RespawnRadius: 360,
			MinSpeed:      60,
			MaxSpeed:      140,
		},
		Population: PopulationConfig{
			Threshold: 4,
			Margin:    100,
			Speed:     120,
		},
		Boss: BossConfig{
			Enabled:         true,
			Score:           20,
			Radius:          120,
			StartRadius:     1000,
			TargetRadius:    150,
			AngularVelocity: 0.02,
		},
		Render: RenderConfig{
			Cone:           0.07,
			ShakeMagnitude: 6,
			ShakeDecay:     4,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
		Assets: AssetsConfig{
			Dir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
