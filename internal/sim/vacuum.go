package sim

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"gridmind/internal/brain"
	"gridmind/internal/logging"
	"gridmind/internal/world"
)

// VacuumConfig describes one cleaning episode.
type VacuumConfig struct {
	Seed    int64
	Gen     world.VacuumGen
	Battery int
	Steps   int
}

// DefaultVacuumConfig returns the shipped cleaning settings.
func DefaultVacuumConfig() VacuumConfig {
	return VacuumConfig{Seed: 1, Gen: world.DefaultVacuumGen(), Battery: 100, Steps: 40}
}

// VacuumResult is the performance summary of a cleaning episode.
type VacuumResult struct {
	ID          string `json:"id"`
	Seed        int64  `json:"seed"`
	W           int    `json:"width"`
	H           int    `json:"height"`
	Obstacles   int    `json:"obstacles"`
	InitialDirt int    `json:"initial_dirt"`
	world.VacuumStats
}

// RunVacuum generates a world and runs the reactive cleaner for at most
// cfg.Steps steps, stopping early once a percept reports the floor clean or
// the battery flat. observe, when set, sees the world after every step.
func RunVacuum(ctx context.Context, cfg VacuumConfig, observe func(*world.VacuumWorld)) (VacuumResult, error) {
	root := rand.New(rand.NewSource(cfg.Seed))
	obstacles, dirt, err := world.GenerateVacuum(rand.New(rand.NewSource(root.Int63())), cfg.Gen)
	if err != nil {
		return VacuumResult{}, err
	}
	env := world.NewVacuumWorld(cfg.Gen.W, cfg.Gen.H, obstacles, dirt, cfg.Gen.Dock, cfg.Battery)
	agent := brain.NewShell("vacuum", brain.NewVacuum(rand.New(rand.NewSource(root.Int63()))))

	res := VacuumResult{
		ID:          uuid.NewString(),
		Seed:        cfg.Seed,
		W:           cfg.Gen.W,
		H:           cfg.Gen.H,
		Obstacles:   len(obstacles),
		InitialDirt: len(dirt),
	}
	log := logging.WithEpisode(logging.CategorySim, res.ID)
	log.Info("vacuum %dx%d obstacles=%d dirt=%d battery=%d", res.W, res.H, res.Obstacles, res.InitialDirt, cfg.Battery)

	for i := 0; i < cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			res.VacuumStats = env.Stats()
			return res, err
		}
		snap := env.Sense()
		if snap.Terminal {
			break
		}
		act := agent.Step(snap)
		env.Step(act)
		if env.Bumped() {
			log.Debug("t=%d bumped moving %s", env.Time(), act)
		}
		if observe != nil {
			observe(env)
		}
	}
	res.VacuumStats = env.Stats()
	log.Info("vacuum finished: cleaned %d, remaining %d, bumps %d", res.Cleaned, res.Remaining, res.Bumps)
	return res, nil
}
