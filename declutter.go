package thematika

import (
	"math"

	"github.com/fogleman/delaunay"
)

// anchor is a projected label position competing for screen space.
type anchor struct {
	X, Y     float64
	Priority float64
}

// declutterKeep decides which anchors survive a minimum-distance rule.
// Proximity is read off the Delaunay triangulation of the anchors: any
// triangulation edge shorter than minDist drops its lower-priority
// endpoint. Small or degenerate inputs fall back to a pairwise scan.
func declutterKeep(anchors []anchor, minDist float64) []bool {
	keep := make([]bool, len(anchors))
	for i := range keep {
		keep[i] = true
	}
	if len(anchors) < 2 || minDist <= 0 {
		return keep
	}

	edges := triangulationEdges(anchors)
	if edges == nil {
		edges = allPairs(len(anchors))
	}
	for _, e := range edges {
		a, b := e[0], e[1]
		if !keep[a] || !keep[b] {
			continue
		}
		if math.Hypot(anchors[a].X-anchors[b].X, anchors[a].Y-anchors[b].Y) >= minDist {
			continue
		}
		if anchors[a].Priority < anchors[b].Priority {
			keep[a] = false
		} else {
			keep[b] = false
		}
	}
	return keep
}

func triangulationEdges(anchors []anchor) [][2]int {
	if len(anchors) < 3 {
		return nil
	}
	pts := make([]delaunay.Point, len(anchors))
	for i, a := range anchors {
		pts[i] = delaunay.Point{X: a.X, Y: a.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil || len(tri.Triangles) == 0 {
		return nil
	}
	var edges [][2]int
	for t := 0; t < len(tri.Triangles); t += 3 {
		a, b, c := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		if a < b {
			edges = append(edges, [2]int{a, b})
		}
		if b < c {
			edges = append(edges, [2]int{b, c})
		}
		if c < a {
			edges = append(edges, [2]int{c, a})
		}
	}
	return edges
}

func allPairs(n int) [][2]int {
	var edges [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return edges
}
