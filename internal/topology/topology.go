// Package topology classifies learned tiles as junctions or tunnels and
// derives the exploration frontier from a knowledge base.
package topology

import (
	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
)

// Class is the shape of a safe tile.
type Class uint8

const (
	ClassNone Class = iota
	ClassTunnel
	ClassJunction
)

func (c Class) String() string {
	switch c {
	case ClassTunnel:
		return "tunnel"
	case ClassJunction:
		return "junction"
	}
	return "none"
}

// OpenNeighbours counts the cardinal neighbours of c that are known safe or
// perceived as non-wall in view.
func OpenNeighbours(k *kb.KB, c grid.Coord, view grid.View) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if k.IsAt(logic.KindSafe, nb) || view.OpenAt(nb) {
			n++
		}
	}
	return n
}

// Classify returns the class for a count of open neighbours.
func Classify(open int) Class {
	switch {
	case open >= 3:
		return ClassJunction
	case open == 2:
		return ClassTunnel
	}
	return ClassNone
}

// Infer re-derives junction/tunnel facts at c. Tiles that are not safe carry
// no classification.
func Infer(k *kb.KB, c grid.Coord, view grid.View) Class {
	class := ClassNone
	if k.IsAt(logic.KindSafe, c) {
		class = Classify(OpenNeighbours(k, c, view))
	}

	switch class {
	case ClassJunction:
		k.RetractAt(logic.KindTunnel, c)
		if k.AssertAt(logic.KindJunction, c) {
			logging.TopologyDebug("[%s] junction at %s", k.Owner(), c)
		}
	case ClassTunnel:
		k.RetractAt(logic.KindJunction, c)
		k.AssertAt(logic.KindTunnel, c)
	default:
		k.RetractAt(logic.KindJunction, c)
		k.RetractAt(logic.KindTunnel, c)
	}
	return class
}

// Reinfer re-derives c and its four neighbours.
func Reinfer(k *kb.KB, c grid.Coord, view grid.View) {
	Infer(k, c, view)
	for _, nb := range c.Neighbors() {
		if k.IsAt(logic.KindSafe, nb) {
			Infer(k, nb, view)
		}
	}
}

// MarkSafe asserts safe(c). When the tile is newly safe the tile and its
// neighbours are reclassified. It reports whether c was new.
func MarkSafe(k *kb.KB, c grid.Coord, view grid.View) bool {
	if !k.AssertAt(logic.KindSafe, c) {
		return false
	}
	Reinfer(k, c, view)
	return true
}

// MarkWall asserts wall(c), which drops any safe fact and classification
// there, and reclassifies the safe neighbours that lost an opening.
func MarkWall(k *kb.KB, c grid.Coord, view grid.View) bool {
	if !k.AssertAt(logic.KindWall, c) {
		return false
	}
	for _, nb := range c.Neighbors() {
		if k.IsAt(logic.KindSafe, nb) {
			Infer(k, nb, view)
		}
	}
	return true
}

// Frontier returns the tiles adjacent to known-safe tiles that are neither
// known safe nor known walls.
func Frontier(k *kb.KB) grid.Set {
	out := grid.NewSet()
	for c := range k.Tiles(logic.KindSafe) {
		for _, nb := range c.Neighbors() {
			if !k.Known(nb) {
				out.Add(nb)
			}
		}
	}
	return out
}

// IsFrontier reports whether c is unknown and touches a safe tile.
func IsFrontier(k *kb.KB, c grid.Coord) bool {
	if k.Known(c) {
		return false
	}
	for _, nb := range c.Neighbors() {
		if k.IsAt(logic.KindSafe, nb) {
			return true
		}
	}
	return false
}
