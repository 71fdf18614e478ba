/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"goguieditor/internal/geom"
	"goguieditor/internal/widget"
)

// Marker identifies one of the four corner handles.
type Marker int

const (
	MarkerTL Marker = iota
	MarkerTR
	MarkerBR
	MarkerBL
)

var markerNames = [4]string{"MarkerTL", "MarkerTR", "MarkerBR", "MarkerBL"}

func (m Marker) String() string { return markerNames[m] }

// opposite returns the diagonally opposite marker.
func (m Marker) opposite() Marker { return (m + 2) % 4 }

const (
	markerSize  = 10
	markerInset = 5 // how far each handle reaches outside its corner
)

// MarkerOverlay owns the four corner handles of the current selection and
// runs the resize state machine while one of them is dragged.
//
// Handles are parented directly under the edit root, never under the selected
// node, so their positions are always edit-surface-relative. They are
// destroyed and recreated on every selection change: the handle count is
// always 0 or 4, never stale.
type MarkerOverlay struct {
	editRoot *widget.Node
	mapper   *CoordinateMapper

	target  *widget.Node
	markers [4]*widget.Node

	active   Marker
	dragging bool

	// markerActive is set on a handle press and observed by the edit
	// surface's press handler for the same physical event, which must then
	// skip reassigning the selection. Cleared on release.
	markerActive bool
}

func NewMarkerOverlay(editRoot *widget.Node, mapper *CoordinateMapper) *MarkerOverlay {
	return &MarkerOverlay{editRoot: editRoot, mapper: mapper}
}

// Rebuild tears down the current handle set and, for a non-nil target,
// creates four fresh handles bracketing its bounds.
func (o *MarkerOverlay) Rebuild(target *widget.Node) {
	for i, m := range o.markers {
		if m != nil {
			o.editRoot.RemoveChild(m)
			o.markers[i] = nil
		}
	}
	o.target = target
	o.dragging = false
	if target == nil {
		return
	}
	for i := range o.markers {
		idx := Marker(i)
		m := &widget.Node{
			Kind: "Icon",
			Name: markerNames[i],
			Size: geom.Size{W: markerSize, H: markerSize},
		}
		m.Capture("mousePressed", func(widget.Event, *widget.Node) {
			o.active = idx
			o.dragging = true
			o.markerActive = true
		})
		if err := o.editRoot.AddChild(m); err != nil {
			return
		}
		o.markers[i] = m
	}
	// Handles must precede the layout in paint order so they win hit-test
	// ties over the widgets they straddle.
	rest := make([]*widget.Node, 0, len(o.editRoot.Children))
	for _, c := range o.editRoot.Children {
		if !o.IsMarker(c) {
			rest = append(rest, c)
		}
	}
	o.editRoot.Children = append(append([]*widget.Node{}, o.markers[:]...), rest...)
	o.RepositionAll()
}

// RepositionAll places each handle so that it straddles its corner of the
// selection's bounds: top-left corner minus the inset on both axes, and so
// on. Must run after every geometry change, whatever caused it. Idempotent.
func (o *MarkerOverlay) RepositionAll() {
	if o.target == nil || o.markers[0] == nil {
		return
	}
	b := o.mapper.BoundsInEditSurface(o.target)
	o.markers[MarkerTL].Pos = geom.Pt{X: b.X - markerInset, Y: b.Y - markerInset}
	o.markers[MarkerTR].Pos = geom.Pt{X: b.X + b.W - markerInset, Y: b.Y - markerInset}
	o.markers[MarkerBR].Pos = geom.Pt{X: b.X + b.W - markerInset, Y: b.Y + b.H - markerInset}
	o.markers[MarkerBL].Pos = geom.Pt{X: b.X - markerInset, Y: b.Y + b.H - markerInset}
}

// IsMarker reports whether n is one of the live handles.
func (o *MarkerOverlay) IsMarker(n *widget.Node) bool {
	for _, m := range o.markers {
		if m != nil && m == n {
			return true
		}
	}
	return false
}

// Markers returns the live handle nodes in TL, TR, BR, BL order. Entries are
// nil when nothing is selected.
func (o *MarkerOverlay) Markers() [4]*widget.Node { return o.markers }

// Resizing reports whether a handle drag is in progress.
func (o *MarkerOverlay) Resizing() bool { return o.dragging }

// MarkerActive reports the press-suppression flag.
func (o *MarkerOverlay) MarkerActive() bool { return o.markerActive }

// Drag applies one incremental pointer delta to the active handle. The whole
// delta is rejected when the handle's prospective position would cross the
// diagonally opposite handle on either axis; this keeps the target's width
// and height strictly positive through any sequence of resizes. On an
// accepted delta the target's geometry and the dragged handle move together,
// then the remaining handles are recomputed.
func (o *MarkerOverlay) Drag(dx, dy int) {
	if !o.dragging || o.target == nil {
		return
	}
	h := o.markers[o.active]
	next := h.Pos.Add(geom.Pt{X: dx, Y: dy})
	opp := o.markers[o.active.opposite()].Pos
	switch o.active {
	case MarkerTL:
		if next.X >= opp.X || next.Y >= opp.Y {
			return
		}
		o.target.Pos = o.target.Pos.Add(geom.Pt{X: dx, Y: dy})
		o.target.Size.W -= dx
		o.target.Size.H -= dy
	case MarkerTR:
		if next.X <= opp.X || next.Y >= opp.Y {
			return
		}
		o.target.Pos.Y += dy
		o.target.Size.W += dx
		o.target.Size.H -= dy
	case MarkerBR:
		if next.X <= opp.X || next.Y <= opp.Y {
			return
		}
		o.target.Size.W += dx
		o.target.Size.H += dy
	case MarkerBL:
		if next.X >= opp.X || next.Y <= opp.Y {
			return
		}
		o.target.Pos.X += dx
		o.target.Size.W -= dx
		o.target.Size.H += dy
	}
	h.Pos = next
	o.RepositionAll()
}

// Release ends a handle drag and clears the press-suppression flag. Returns
// whether a drag was in progress.
func (o *MarkerOverlay) Release() bool {
	was := o.dragging
	o.dragging = false
	o.markerActive = false
	return was
}
