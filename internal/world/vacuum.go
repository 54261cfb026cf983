package world

import (
	"gridmind/internal/grid"
	"gridmind/internal/logging"
	"gridmind/internal/perception"
)

// RechargeRate is the battery gained by waiting on the dock.
const RechargeRate = 5

// VacuumWorld is the ground truth of a cleaning episode. Every step costs one
// unit of battery; a flat battery ends the episode.
type VacuumWorld struct {
	w, h       int
	obstacles  grid.Set
	initDirt   grid.Set
	dirt       grid.Set
	dock       grid.Coord
	maxBattery int

	pos     grid.Coord
	battery int
	time    int
	cleaned int
	bumps   int
	bumped  bool
}

// VacuumStats is the performance summary of an episode.
type VacuumStats struct {
	Steps      int `json:"steps"`
	Cleaned    int `json:"cleaned"`
	Remaining  int `json:"remaining"`
	Battery    int `json:"battery"`
	MaxBattery int `json:"max_battery"`
	Bumps      int `json:"bumps"`
}

// NewVacuumWorld builds a w x h world with the robot on a full battery at
// the dock.
func NewVacuumWorld(w, h int, obstacles, dirt grid.Set, dock grid.Coord, maxBattery int) *VacuumWorld {
	if maxBattery < 1 {
		maxBattery = 1
	}
	v := &VacuumWorld{
		w:          w,
		h:          h,
		obstacles:  copySet(obstacles),
		initDirt:   copySet(dirt),
		dock:       dock,
		maxBattery: maxBattery,
	}
	v.Reset(dock, maxBattery)
	return v
}

func copySet(s grid.Set) grid.Set {
	out := make(grid.Set, len(s))
	for c := range s {
		out.Add(c)
	}
	return out
}

// Reset restores the initial dirt and places the robot at start with the
// given battery.
func (v *VacuumWorld) Reset(start grid.Coord, battery int) {
	v.pos = start
	v.dirt = copySet(v.initDirt)
	v.battery = battery
	v.time, v.cleaned, v.bumps = 0, 0, 0
	v.bumped = false
}

func (v *VacuumWorld) Size() (int, int)   { return v.w, v.h }
func (v *VacuumWorld) Pos() grid.Coord    { return v.pos }
func (v *VacuumWorld) Dock() grid.Coord   { return v.dock }
func (v *VacuumWorld) Battery() int       { return v.battery }
func (v *VacuumWorld) Time() int          { return v.time }
func (v *VacuumWorld) Bumped() bool       { return v.bumped }
func (v *VacuumWorld) DirtCount() int     { return len(v.dirt) }
func (v *VacuumWorld) ObstacleCount() int { return len(v.obstacles) }

// InBounds reports whether c lies on the board.
func (v *VacuumWorld) InBounds(c grid.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < v.w && c.Y < v.h
}

// Blocked reports whether c is out of bounds or an obstacle.
func (v *VacuumWorld) Blocked(c grid.Coord) bool {
	return !v.InBounds(c) || v.obstacles.Has(c)
}

// HasDirt reports whether dirt lies at c.
func (v *VacuumWorld) HasDirt(c grid.Coord) bool {
	return v.dirt.Has(c)
}

// Done reports whether the floor is clean or the battery is flat.
func (v *VacuumWorld) Done() bool {
	return len(v.dirt) == 0 || v.battery <= 0
}

// Sense returns the robot's percepts: its position, dirt underfoot and the
// neighbours it cannot enter.
func (v *VacuumWorld) Sense() perception.Snapshot {
	s := perception.Snapshot{
		Tick:     v.time,
		Self:     v.pos,
		ItemHere: v.dirt.Has(v.pos),
		Terminal: v.Done(),
	}
	for _, n := range v.pos.Neighbors() {
		if v.Blocked(n) {
			s.Blocked = append(s.Blocked, n)
		}
	}
	return s
}

// Step applies one action. Moves into blocked tiles count as bumps and leave
// the robot in place. Waiting on the dock recharges.
func (v *VacuumWorld) Step(a grid.Action) {
	if v.battery <= 0 {
		return
	}
	v.time++
	v.battery--
	v.bumped = false

	switch {
	case a == grid.Wait && v.pos == v.dock:
		v.battery = min(v.battery+RechargeRate, v.maxBattery)
	case a == grid.Vacuum:
		if v.dirt.Has(v.pos) {
			v.dirt.Delete(v.pos)
			v.cleaned++
			logging.WorldDebug("t=%d cleaned %s", v.time, v.pos)
		}
	case a.IsMove():
		next := v.pos.Add(a.Delta())
		if v.Blocked(next) {
			v.bumped = true
			v.bumps++
			return
		}
		v.pos = next
	}
}

// Stats summarises the episode so far.
func (v *VacuumWorld) Stats() VacuumStats {
	return VacuumStats{
		Steps:      v.time,
		Cleaned:    v.cleaned,
		Remaining:  len(v.dirt),
		Battery:    v.battery,
		MaxBattery: v.maxBattery,
		Bumps:      v.bumps,
	}
}
