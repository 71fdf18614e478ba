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

// DragController turns pointer drags over the edit surface into position
// changes on the selection. Deltas are incremental against the last recorded
// point, not the original press anchor. Handle drags short-circuit the move
// path entirely and are forwarded to the overlay's resize state machine.
type DragController struct {
	sel     *SelectionModel
	overlay *MarkerOverlay

	snapEnabled bool
	snapOpts    geom.SnapOptions

	anchor  geom.Pt
	pressed bool
	dragged bool
	guides  []geom.GuideLine
}

func NewDragController(sel *SelectionModel, overlay *MarkerOverlay) *DragController {
	return &DragController{sel: sel, overlay: overlay}
}

// SetSnapping toggles alignment snapping for move drags. Snapping never
// applies during a resize.
func (d *DragController) SetSnapping(enabled bool, opts geom.SnapOptions) {
	d.snapEnabled = enabled
	d.snapOpts = opts
}

// Press records the drag anchor and resets the dragged flag.
func (d *DragController) Press(p geom.Pt) {
	d.anchor = p
	d.pressed = true
	d.dragged = false
	d.guides = nil
}

// Move applies one pointer move. During a resize the delta goes to the
// overlay; otherwise it moves the selection, snaps against sibling edges when
// enabled, and repositions the handles. A move without a selection is a
// no-op beyond advancing the anchor.
func (d *DragController) Move(p geom.Pt) {
	if !d.pressed {
		return
	}
	delta := p.Sub(d.anchor)
	d.anchor = p
	if d.overlay.Resizing() {
		d.overlay.Drag(delta.X, delta.Y)
		return
	}
	n := d.sel.Current()
	if n == nil || (delta.X == 0 && delta.Y == 0) {
		return
	}
	n.Pos = n.Pos.Add(delta)
	if d.snapEnabled {
		d.applySnap(n)
	} else {
		d.guides = nil
	}
	d.overlay.RepositionAll()
	d.dragged = true
}

func (d *DragController) applySnap(n *widget.Node) {
	if n.Parent == nil {
		return
	}
	var anchors []geom.Rect
	for _, s := range n.Parent.Children {
		if s != n {
			anchors = append(anchors, s.AbsoluteBounds())
		}
	}
	if len(anchors) == 0 {
		d.guides = nil
		return
	}
	bounds := n.AbsoluteBounds()
	snapped, guides := geom.Snap(bounds, anchors, d.snapOpts)
	n.Pos = n.Pos.Add(geom.Pt{X: snapped.X - bounds.X, Y: snapped.Y - bounds.Y})
	d.guides = guides
}

// Release ends the drag and reports whether the pointer actually moved the
// selection since the press.
func (d *DragController) Release() bool {
	d.pressed = false
	d.guides = nil
	return d.dragged
}

// Dragged reports whether the current press has moved the selection.
func (d *DragController) Dragged() bool { return d.dragged }

// Guides returns the alignment guide lines of the drag in progress.
func (d *DragController) Guides() []geom.GuideLine { return d.guides }
