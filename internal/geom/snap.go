/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Alignment snapping helpers for interactive dragging. UI-agnostic and
// deterministic so they can be unit tested and reused across frontends.

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance at which snapping occurs.
	// Typical UI values are 6-8 pixels.
	Threshold int
	// Snap to edges (left, right, top, bottom)
	SnapToEdges bool
	// Snap to centers (cx, cy)
	SnapToCenters bool
}

// GuideLine describes a visual guide generated during a snap alignment.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
// From and To denote the guide extents for rendering.
type GuideLine struct {
	Orientation string
	Kind        string
	Position    int
	From        Pt
	To          Pt
}

// Snap computes snapping adjustments for a moving rectangle against a set of
// anchor rectangles (typically the selection's siblings). It returns the
// snapped rectangle and any guide lines to render. Snapping happens
// independently in X and Y.
func Snap(moving Rect, anchors []Rect, opts SnapOptions) (Rect, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var guides []GuideLine

	bestDX, bestDXDist, bestDXGuide := 0, opts.Threshold+1, GuideLine{}
	bestDY, bestDYDist, bestDYGuide := 0, opts.Threshold+1, GuideLine{}

	mL, mR, mT, mB := moving.X, moving.X+moving.W, moving.Y, moving.Y+moving.H
	mCX, mCY := moving.X+moving.W/2, moving.Y+moving.H/2

	considerX := func(delta, at int, kind string, a Rect) {
		if d := abs(delta); d < bestDXDist {
			bestDX, bestDXDist = delta, d
			bestDXGuide = verticalGuide(at, moving, a, kind)
		}
	}
	considerY := func(delta, at int, kind string, a Rect) {
		if d := abs(delta); d < bestDYDist {
			bestDY, bestDYDist = delta, d
			bestDYGuide = horizontalGuide(at, moving, a, kind)
		}
	}

	for _, a := range anchors {
		aL, aR, aT, aB := a.X, a.X+a.W, a.Y, a.Y+a.H
		aCX, aCY := a.X+a.W/2, a.Y+a.H/2

		if opts.SnapToEdges {
			considerX(mL-aL, aL, "edge", a)
			considerX(mR-aR, aR, "edge", a)
			considerX(mL-aR, aR, "edge", a) // abut
			considerX(mR-aL, aL, "edge", a)
			considerY(mT-aT, aT, "edge", a)
			considerY(mB-aB, aB, "edge", a)
			considerY(mT-aB, aB, "edge", a)
			considerY(mB-aT, aT, "edge", a)
		}
		if opts.SnapToCenters {
			considerX(mCX-aCX, aCX, "center", a)
			considerY(mCY-aCY, aCY, "center", a)
		}
	}

	snapped := moving
	if bestDXDist <= opts.Threshold {
		snapped.X = moving.X - bestDX
		guides = append(guides, bestDXGuide)
	}
	if bestDYDist <= opts.Threshold {
		snapped.Y = moving.Y - bestDY
		guides = append(guides, bestDYGuide)
	}
	return snapped, guides
}

func verticalGuide(x int, a, b Rect, kind string) GuideLine {
	minY := min(a.Y, b.Y)
	maxY := max(a.Y+a.H, b.Y+b.H)
	return GuideLine{
		Orientation: "vertical",
		Kind:        kind,
		Position:    x,
		From:        Pt{x, minY},
		To:          Pt{x, maxY},
	}
}

func horizontalGuide(y int, a, b Rect, kind string) GuideLine {
	minX := min(a.X, b.X)
	maxX := max(a.X+a.W, b.X+b.W)
	return GuideLine{
		Orientation: "horizontal",
		Kind:        kind,
		Position:    y,
		From:        Pt{minX, y},
		To:          Pt{maxX, y},
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
