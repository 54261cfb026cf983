package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"gridmind/internal/brain"
	"gridmind/internal/world"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all gridmind configuration.
type Config struct {
	Seed int64 `yaml:"seed"`

	Maze        MazeConfig        `yaml:"maze"`
	Vacuum      VacuumConfig      `yaml:"vacuum"`
	Ghosts      map[string]string `yaml:"ghosts"` // spawn ID -> archetype
	Analyst     AnalystConfig     `yaml:"analyst"`
	Coordinator CoordinatorConfig `yaml:"coordinator"`

	Logging LoggingConfig `yaml:"logging"`
}

// MazeConfig configures the pursuit game.
type MazeConfig struct {
	Layout        string  `yaml:"layout"`
	PelletDensity float64 `yaml:"pellet_density"`
	SightRadius   int     `yaml:"sight_radius"`
	Lives         int     `yaml:"lives"`
	MaxTicks      int     `yaml:"max_ticks"`
	TickDelay     string  `yaml:"tick_delay"` // play UI animation speed
}

// VacuumConfig configures the cleaning world.
type VacuumConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	ObstacleDensity float64 `yaml:"obstacle_density"`
	DirtDensity     float64 `yaml:"dirt_density"`
	Terrain         string  `yaml:"terrain"` // scatter, noise
	DockX           int     `yaml:"dock_x"`
	DockY           int     `yaml:"dock_y"`
	Battery         int     `yaml:"battery"`
	Steps           int     `yaml:"steps"`
}

// AnalystConfig tunes the ambush archetype.
type AnalystConfig struct {
	ClueTTL        int `yaml:"clue_ttl"`
	MaxClues       int `yaml:"max_clues"`
	ClueAgeWeight  int `yaml:"clue_age_weight"`
	AmbushRadius   int `yaml:"ambush_radius"`
	JunctionMemory int `yaml:"junction_memory"`
	FarJunction    int `yaml:"far_junction"`
	LoiterTicks    int `yaml:"loiter_ticks"`
}

// CoordinatorConfig tunes the rule cascade archetype.
type CoordinatorConfig struct {
	ClueTTL           int `yaml:"clue_ttl"`
	MaxClues          int `yaml:"max_clues"`
	EscapeTicks       int `yaml:"escape_ticks"`
	UnreachableTicks  int `yaml:"unreachable_ticks"`
	FleeRadius        int `yaml:"flee_radius"`
	ChaseDistance     int `yaml:"chase_distance"`
	InterceptDistance int `yaml:"intercept_distance"`
	Lookahead         int `yaml:"lookahead"`
	SpreadDistance    int `yaml:"spread_distance"`
	MaxRetries        int `yaml:"max_retries"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	maze := world.DefaultMazeOptions()
	gen := world.DefaultVacuumGen()
	a := brain.DefaultAnalystParams()
	c := brain.DefaultCoordinatorParams()

	return &Config{
		Seed: 1,

		Maze: MazeConfig{
			Layout:        "classic",
			PelletDensity: maze.PelletDensity,
			SightRadius:   maze.SightRadius,
			Lives:         maze.Lives,
			MaxTicks:      500,
			TickDelay:     "150ms",
		},

		Vacuum: VacuumConfig{
			Width:           gen.W,
			Height:          gen.H,
			ObstacleDensity: gen.ObstacleDensity,
			DirtDensity:     gen.DirtDensity,
			Terrain:         gen.Terrain,
			Battery:         100,
			Steps:           40,
		},

		Ghosts: map[string]string{
			"A": brain.ArchetypePursuer.String(),
			"B": brain.ArchetypeAnalyst.String(),
			"C": brain.ArchetypeCoordinator.String(),
		},

		Analyst: AnalystConfig{
			ClueTTL:        a.ClueTTL,
			MaxClues:       a.MaxClues,
			ClueAgeWeight:  a.ClueAgeWeight,
			AmbushRadius:   a.AmbushRadius,
			JunctionMemory: a.JunctionMemory,
			FarJunction:    a.FarJunction,
			LoiterTicks:    a.LoiterTicks,
		},

		Coordinator: CoordinatorConfig{
			ClueTTL:           c.ClueTTL,
			MaxClues:          c.MaxClues,
			EscapeTicks:       c.EscapeTicks,
			UnreachableTicks:  c.UnreachableTicks,
			FleeRadius:        c.FleeRadius,
			ChaseDistance:     c.ChaseDistance,
			InterceptDistance: c.InterceptDistance,
			Lookahead:         c.Lookahead,
			SpreadDistance:    c.SpreadDistance,
			MaxRetries:        c.MaxRetries,
		},

		Logging: LoggingConfig{
			Level: "info",
			Dir:   ".gridmind/logs",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GRIDMIND_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GRIDMIND_SEED: %w", err)
		}
		c.Seed = seed
	}
	if dir := os.Getenv("GRIDMIND_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
	if v := os.Getenv("GRIDMIND_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GRIDMIND_DEBUG: %w", err)
		}
		c.Logging.DebugMode = debug
	}
	return nil
}

// GetTickDelay returns the play UI tick delay as a duration.
func (c *Config) GetTickDelay() time.Duration {
	d, err := time.ParseDuration(c.Maze.TickDelay)
	if err != nil {
		return 150 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := world.NamedLayout(c.Maze.Layout); err != nil {
		return fmt.Errorf("%w: maze.layout: %v", ErrInvalid, err)
	}
	if c.Maze.PelletDensity < 0 || c.Maze.PelletDensity > 1 {
		return fmt.Errorf("%w: maze.pellet_density %v outside [0, 1]", ErrInvalid, c.Maze.PelletDensity)
	}
	if c.Maze.SightRadius < 0 {
		return fmt.Errorf("%w: maze.sight_radius must not be negative", ErrInvalid)
	}
	if c.Maze.MaxTicks <= 0 {
		return fmt.Errorf("%w: maze.max_ticks must be positive", ErrInvalid)
	}

	if c.Vacuum.Width <= 0 || c.Vacuum.Height <= 0 {
		return fmt.Errorf("%w: vacuum size %dx%d", ErrInvalid, c.Vacuum.Width, c.Vacuum.Height)
	}
	if c.Vacuum.DockX < 0 || c.Vacuum.DockX >= c.Vacuum.Width || c.Vacuum.DockY < 0 || c.Vacuum.DockY >= c.Vacuum.Height {
		return fmt.Errorf("%w: vacuum dock (%d,%d) outside the grid", ErrInvalid, c.Vacuum.DockX, c.Vacuum.DockY)
	}
	for name, d := range map[string]float64{"obstacle_density": c.Vacuum.ObstacleDensity, "dirt_density": c.Vacuum.DirtDensity} {
		if d < 0 || d > 1 {
			return fmt.Errorf("%w: vacuum.%s %v outside [0, 1]", ErrInvalid, name, d)
		}
	}
	switch c.Vacuum.Terrain {
	case world.TerrainScatter, world.TerrainNoise, "":
	default:
		return fmt.Errorf("%w: vacuum.terrain %q", ErrInvalid, c.Vacuum.Terrain)
	}
	if c.Vacuum.Battery <= 0 || c.Vacuum.Steps <= 0 {
		return fmt.Errorf("%w: vacuum battery and steps must be positive", ErrInvalid)
	}

	ids := make([]string, 0, len(c.Ghosts))
	for id := range c.Ghosts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		arch, err := brain.ParseArchetype(c.Ghosts[id])
		if err != nil {
			return fmt.Errorf("%w: ghosts.%s: %v", ErrInvalid, id, err)
		}
		if arch == brain.ArchetypeVacuum {
			return fmt.Errorf("%w: ghosts.%s: the vacuum cannot drive a ghost", ErrInvalid, id)
		}
	}

	if c.Analyst.JunctionMemory <= 0 || c.Analyst.ClueTTL <= 0 || c.Coordinator.ClueTTL <= 0 {
		return fmt.Errorf("%w: clue ttl and junction memory must be positive", ErrInvalid)
	}
	if c.Coordinator.ChaseDistance > c.Coordinator.InterceptDistance {
		return fmt.Errorf("%w: coordinator.chase_distance exceeds intercept_distance", ErrInvalid)
	}
	if c.Coordinator.MaxRetries < 0 {
		return fmt.Errorf("%w: coordinator.max_retries must not be negative", ErrInvalid)
	}
	return nil
}
