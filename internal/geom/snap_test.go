/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestSnapLeftEdgeWithinThreshold(t *testing.T) {
	moving := R(103, 50, 40, 40)
	anchors := []Rect{R(100, 0, 30, 30)}
	got, guides := Snap(moving, anchors, SnapOptions{Threshold: 6, SnapToEdges: true})
	if got.X != 100 {
		t.Fatalf("expected left edges to align at 100, got %d", got.X)
	}
	if len(guides) != 1 || guides[0].Orientation != "vertical" || guides[0].Position != 100 {
		t.Fatalf("unexpected guides: %+v", guides)
	}
}

func TestSnapOutsideThresholdUnchanged(t *testing.T) {
	moving := R(110, 50, 40, 40)
	anchors := []Rect{R(100, 0, 30, 30)}
	got, guides := Snap(moving, anchors, SnapOptions{Threshold: 6, SnapToEdges: true})
	if got != moving {
		t.Fatalf("expected no snap, got %+v", got)
	}
	if len(guides) != 0 {
		t.Fatalf("expected no guides, got %+v", guides)
	}
}

func TestSnapCenters(t *testing.T) {
	// moving center x = 52, anchor center x = 50
	moving := R(32, 100, 40, 40)
	anchors := []Rect{R(30, 0, 40, 40)}
	got, guides := Snap(moving, anchors, SnapOptions{Threshold: 4, SnapToCenters: true})
	if got.X != 30 {
		t.Fatalf("expected centers to align (X=30), got %d", got.X)
	}
	if len(guides) == 0 || guides[0].Kind != "center" {
		t.Fatalf("expected center guide, got %+v", guides)
	}
}

func TestSnapIndependentAxes(t *testing.T) {
	moving := R(101, 200, 10, 10)
	anchors := []Rect{R(100, 100, 50, 50)}
	got, _ := Snap(moving, anchors, SnapOptions{Threshold: 3, SnapToEdges: true})
	if got.X != 100 {
		t.Fatalf("expected X snap, got %d", got.X)
	}
	if got.Y != 200 {
		t.Fatalf("Y should be untouched, got %d", got.Y)
	}
}

func TestSnapAbutEdges(t *testing.T) {
	// moving left edge near anchor right edge
	moving := R(152, 10, 20, 20)
	anchors := []Rect{R(100, 10, 50, 20)}
	got, _ := Snap(moving, anchors, SnapOptions{Threshold: 4, SnapToEdges: true})
	if got.X != 150 {
		t.Fatalf("expected abutting snap to X=150, got %d", got.X)
	}
}
