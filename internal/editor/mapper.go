/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the interactive editing engine: hit-testing and selection
// over a nested widget tree, the corner-marker resize state machine,
// drag-to-move, and the schema-driven property reflection panel.
//
// Everything here is single-threaded. State is mutated only inside handlers
// driven by the host input loop, and every geometry change synchronously
// repositions the marker overlay before the next event is processed.
package editor

import (
	"goguieditor/internal/geom"
	"goguieditor/internal/widget"
)

// Vertical bands of window chrome above the edit surface. Pointer events
// arrive in window coordinates, which include these.
const (
	MenuHeight    = 30
	ToolbarHeight = 60
)

// CoordinateMapper converts widget positions from window space into the
// edit-surface space shared by the marker overlay.
type CoordinateMapper struct {
	ChromeOffset int
}

func NewCoordinateMapper() *CoordinateMapper {
	return &CoordinateMapper{ChromeOffset: MenuHeight + ToolbarHeight}
}

// ToEditSurface returns the node's top-left corner in edit-surface
// coordinates: the accumulated parent-chain offset minus the chrome band.
// Recomputed on every call; ancestor positions change between calls, so the
// result must never be cached.
func (m *CoordinateMapper) ToEditSurface(n *widget.Node) geom.Pt {
	p := n.AbsolutePos()
	p.Y -= m.ChromeOffset
	return p
}

// BoundsInEditSurface returns the node's bounding rectangle in edit-surface
// coordinates.
func (m *CoordinateMapper) BoundsInEditSurface(n *widget.Node) geom.Rect {
	p := m.ToEditSurface(n)
	return geom.Rect{X: p.X, Y: p.Y, W: n.Size.W, H: n.Size.H}
}
