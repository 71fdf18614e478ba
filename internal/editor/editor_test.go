/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"path/filepath"
	"testing"

	"goguieditor/internal/geom"
	"goguieditor/internal/storage"
	"goguieditor/internal/widget"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return New(geom.Size{W: 600, H: 400})
}

func addNode(t *testing.T, parent *widget.Node, kind, name string, x, y, w, h int) *widget.Node {
	t.Helper()
	n, err := widget.New(kind, name)
	if err != nil {
		t.Fatalf("New(%s): %v", kind, err)
	}
	n.Pos = geom.Pt{X: x, Y: y}
	n.Size = geom.Size{W: w, H: h}
	if err := parent.AddChild(n); err != nil {
		t.Fatalf("AddChild(%s): %v", name, err)
	}
	return n
}

// win converts an edit-surface point to the window coordinates pointer events
// arrive in.
func win(p geom.Pt) geom.Pt {
	return geom.Pt{X: p.X, Y: p.Y + MenuHeight + ToolbarHeight}
}

func TestClickSelectsAndBackgroundDeselects(t *testing.T) {
	e := newTestEditor(t)
	box := addNode(t, e.Root, "Container", "box", 100, 100, 50, 50)

	e.PointerPress(win(geom.Pt{X: 120, Y: 120}), 1)
	e.PointerRelease(win(geom.Pt{X: 120, Y: 120}))
	if e.Selection.Current() != box {
		t.Fatalf("click inside box should select it")
	}
	if m := e.Overlay.Markers(); m[0] == nil {
		t.Fatalf("selection must create handles")
	}

	e.PointerPress(win(geom.Pt{X: 400, Y: 300}), 1)
	e.PointerRelease(win(geom.Pt{X: 400, Y: 300}))
	if e.Selection.Current() != nil {
		t.Fatalf("click on surface background should deselect")
	}
	if m := e.Overlay.Markers(); m[0] != nil {
		t.Fatalf("deselection must destroy handles")
	}
}

func TestMarkerPressKeepsSelection(t *testing.T) {
	e := newTestEditor(t)
	box := addNode(t, e.Root, "Container", "box", 100, 100, 50, 50)
	e.Selection.Select(box)

	// Press inside the TL handle, which straddles the box corner.
	e.PointerPress(win(geom.Pt{X: 97, Y: 97}), 1)
	if e.Selection.Current() != box {
		t.Fatalf("handle press must not reassign selection")
	}
	if !e.Overlay.Resizing() {
		t.Fatalf("handle press must arm the resize machine")
	}
	e.PointerRelease(win(geom.Pt{X: 97, Y: 97}))
	if e.Overlay.Resizing() || e.Overlay.MarkerActive() {
		t.Fatalf("release must disarm the resize machine")
	}
}

func TestInsertWidgetClampsToParent(t *testing.T) {
	e := newTestEditor(t)
	small := addNode(t, e.Root, "Container", "small", 10, 10, 30, 30)
	e.Selection.Select(small)

	n, err := e.InsertWidget("Label")
	if err != nil {
		t.Fatalf("InsertWidget: %v", err)
	}
	if n.Size != (geom.Size{W: 29, H: 29}) {
		t.Fatalf("insert into 30x30 parent must clamp to 29x29, got %+v", n.Size)
	}
	if e.Selection.Current() != n {
		t.Fatalf("inserted widget must become the selection")
	}
	if e.Index.IndexOf(n) < 0 {
		t.Fatalf("inserted widget must appear in the selector list")
	}
}

func TestInsertIntoLeafReportsInvalidParent(t *testing.T) {
	e := newTestEditor(t)
	var msg string
	e.Message = func(s string) { msg = s }
	lbl := addNode(t, e.Root, "Label", "lbl", 10, 10, 80, 20)
	e.Selection.Select(lbl)

	if _, err := e.InsertWidget("Button"); err == nil {
		t.Fatalf("insert into leaf must fail")
	}
	if msg == "" {
		t.Fatalf("failure must surface a user message")
	}
	if len(lbl.Children) != 0 {
		t.Fatalf("failed insert must not attach a child")
	}
}

func TestOpenFailureLeavesTreeIntact(t *testing.T) {
	e := newTestEditor(t)
	addNode(t, e.Root, "Container", "keep", 0, 0, 50, 50)
	before := e.Root
	var msg string
	e.Message = func(s string) { msg = s }

	if err := e.OpenLayout(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected open failure")
	}
	if e.Root != before || len(e.Root.Children) != 1 {
		t.Fatalf("failed open must not disturb the current tree")
	}
	if msg == "" {
		t.Fatalf("failed open must surface a user message")
	}
}

func TestOpenAndSaveRoundTrip(t *testing.T) {
	e := newTestEditor(t)
	addNode(t, e.Root, "Container", "panel", 10, 20, 200, 100)
	path := filepath.Join(t.TempDir(), "main.json")
	if err := e.SaveLayout(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	e2 := newTestEditor(t)
	if err := e2.OpenLayout(path); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(e2.Root.Children) != 1 || e2.Root.Children[0].Name != "panel" {
		t.Fatalf("opened tree mismatch")
	}
	if e2.Root.Children[0].Pos != (geom.Pt{X: 10, Y: 20}) {
		t.Fatalf("opened geometry mismatch: %+v", e2.Root.Children[0].Pos)
	}
}

func TestUndoRedoInsert(t *testing.T) {
	e := newTestEditor(t)
	if _, err := e.InsertWidget("Button"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(e.Root.Children) != 1 {
		t.Fatalf("expected one child after insert")
	}
	if !e.Undo() {
		t.Fatalf("undo should succeed")
	}
	if len(e.Root.Children) != 0 {
		t.Fatalf("undo must remove the inserted widget")
	}
	if !e.Redo() {
		t.Fatalf("redo should succeed")
	}
	if len(e.Root.Children) != 1 || e.Root.Children[0].Kind != "Button" {
		t.Fatalf("redo must restore the inserted widget")
	}
}

func TestListDrivenSelectionDoesNotRecurse(t *testing.T) {
	e := newTestEditor(t)
	addNode(t, e.Root, "Container", "a", 0, 0, 50, 50)
	e.Index.Rebuild(e.Root)

	// A UI list that echoes every highlight back into SelectIndex, the
	// worst-case feedback loop.
	e.OnListIndex = func(i int) {
		if i >= 0 {
			e.SelectIndex(i)
		}
	}
	e.SelectIndex(1)
	if e.Selection.Current() == nil || e.Selection.Current().Name != "a" {
		t.Fatalf("list selection failed")
	}
}

func TestSelectParentWalksUp(t *testing.T) {
	e := newTestEditor(t)
	outer := addNode(t, e.Root, "Container", "outer", 0, 0, 200, 200)
	inner := addNode(t, outer, "Label", "inner", 10, 10, 50, 20)

	e.Selection.Select(inner)
	e.SelectParent()
	if e.Selection.Current() != outer {
		t.Fatalf("expected parent selection, got %v", e.Selection.Current())
	}
	e.SelectParent()
	if e.Selection.Current() != e.Root {
		t.Fatalf("expected root selection")
	}
	e.SelectParent()
	if e.Selection.Current() != e.Root {
		t.Fatalf("root selection must not escape to the edit root")
	}
}

func TestSaveProducesValidLayoutFile(t *testing.T) {
	e := newTestEditor(t)
	addNode(t, e.Root, "CheckBox", "cb", 5, 5, 100, 20).Marked = true
	path := filepath.Join(t.TempDir(), "out.json")
	if err := e.SaveLayout(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	tree, err := storage.LoadLayout(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !tree.Children[0].Marked {
		t.Fatalf("marked state lost in round trip")
	}
}
