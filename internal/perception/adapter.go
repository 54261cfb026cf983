package perception

import (
	"sort"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
	"gridmind/internal/topology"
)

// Options tune the adapter per agent.
type Options struct {
	// MaxClues bounds how many clues are retained. Zero disables clue
	// tracking.
	MaxClues int
	// Regions enables per-region pellet counts when set.
	Regions *Quadrants
}

// Tell ingests one maze snapshot into k. The order is fixed: clock and
// collection, own position, map learning, target beliefs, other agents,
// position history.
func Tell(k *kb.KB, s Snapshot, opts Options) {
	k.SetClock(s.Tick)
	k.Collect()
	seedRegions(k, opts.Regions)

	prev, hadPrev := k.Locate(logic.KindTargetSeen)

	k.AssertAt(logic.KindPosition, s.Self)
	topology.MarkSafe(k, s.Self, s.View)

	k.Retract(logic.AgentPos(logic.Var("G"), logic.Var("X"), logic.Var("Y")))
	k.Retract(logic.TargetSeen(logic.Var("X"), logic.Var("Y")))

	var clues []grid.Coord
	for _, c := range s.View.Coords() {
		label, _ := s.View.At(c)
		if label == grid.LabelWall {
			if k.RetractAt(logic.KindPelletSeen, c) {
				bumpRegion(k, opts.Regions, c, -1)
			}
			topology.MarkWall(k, c, s.View)
			continue
		}

		topology.MarkSafe(k, c, s.View)
		switch label {
		case grid.LabelPellet:
			if k.AssertAt(logic.KindPelletSeen, c) {
				bumpRegion(k, opts.Regions, c, 1)
			}
		case grid.LabelEmpty:
			if k.RetractAt(logic.KindPelletSeen, c) {
				bumpRegion(k, opts.Regions, c, -1)
				clues = append(clues, c)
			}
		case grid.LabelTarget:
			// The target eats what it stands on.
			if k.RetractAt(logic.KindPelletSeen, c) {
				bumpRegion(k, opts.Regions, c, -1)
			}
		}
	}

	if target, ok := s.TargetPos(); ok {
		k.AssertAt(logic.KindTargetSeen, target)
		k.AssertAt(logic.KindTargetLast, target)
		if hadPrev {
			if v := target.Sub(prev); !v.IsZero() {
				k.Assert(logic.TargetVector(logic.Int(v.X), logic.Int(v.Y)))
			}
		}
		if n := k.Retract(logic.Clue(logic.Var("X"), logic.Var("Y"), logic.Var("T"))); n > 0 {
			logging.PerceptionDebug("[%s] sight of target cleared %d clues", k.Owner(), n)
		}
	} else if opts.MaxClues > 0 {
		k.Retract(logic.Clue(logic.Int(s.Self.X), logic.Int(s.Self.Y), logic.Var("T")))
		for _, c := range clues {
			k.Assert(logic.Clue(logic.Int(c.X), logic.Int(c.Y), logic.Int(s.Tick)))
			logging.PerceptionDebug("[%s] clue at %s tick %d", k.Owner(), c, s.Tick)
		}
		trimClues(k, opts.MaxClues)
	}

	for _, o := range s.Others {
		k.Assert(logic.AgentPos(logic.Sym(o.ID), logic.Int(o.Pos.X), logic.Int(o.Pos.Y)))
	}

	k.Assert(logic.VisitedAt(logic.Int(s.Self.X), logic.Int(s.Self.Y), logic.Int(s.Tick)))
}

// trimClues keeps the newest limit clues.
func trimClues(k *kb.KB, limit int) {
	clues := k.Facts(logic.KindClue)
	if len(clues) <= limit {
		return
	}
	sort.SliceStable(clues, func(i, j int) bool {
		si, _ := clues[i].Stamp()
		sj, _ := clues[j].Stamp()
		return si > sj
	})
	for _, old := range clues[limit:] {
		k.Retract(old)
	}
}

// TellVacuum ingests a vacuum-world snapshot: the position, dirt underfoot
// and blocked neighbours.
func TellVacuum(k *kb.KB, s Snapshot) {
	k.SetClock(s.Tick)
	k.Collect()

	k.AssertAt(logic.KindPosition, s.Self)
	if s.ItemHere {
		k.AssertAt(logic.KindDirtAt, s.Self)
	}
	for _, b := range s.Blocked {
		k.AssertAt(logic.KindBlocked, b)
	}
}
