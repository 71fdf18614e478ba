/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"goguieditor/internal/geom"
	applog "goguieditor/internal/log"
	"goguieditor/internal/storage"
	"goguieditor/internal/undo"
	"goguieditor/internal/widget"
)

// defaultInsertSize is the edge length of a freshly inserted palette widget
// before parent-fit clamping.
const defaultInsertSize = 50

// Editor wires the editing engine together: the edit root with its marker
// overlay, the loaded layout tree, selection, drag, the property panel, and
// undo history.
//
// Pointer events enter through PointerPress/Drag/Release in window
// coordinates and are routed to the captured handlers of the hit node and the
// layout root, mirroring how the host toolkit delivers input.
type Editor struct {
	log *slog.Logger

	// EditRoot is the edit surface. Its origin sits below the window chrome;
	// markers parent under it so their positions are edit-surface-relative.
	EditRoot *widget.Node
	// Root is the loaded layout tree, the only child of EditRoot besides the
	// markers.
	Root *widget.Node

	Mapper    *CoordinateMapper
	Index     *WidgetTreeIndex
	Selection *SelectionModel
	Overlay   *MarkerOverlay
	Drag      *DragController
	Props     *PropertyReflector
	History   *undo.Manager

	layoutPath string
	lastStable []byte
	nameSeq    map[string]int

	// Message receives user-facing error text. Optional.
	Message func(string)
	// OnListIndex receives the selector-list row to highlight, -1 for none.
	// Optional; used by the UI shell to keep its dropdown in sync.
	OnListIndex func(int)
}

// New builds an editor with an empty layout of the given surface size.
func New(surface geom.Size) *Editor {
	e := &Editor{
		log:     applog.WithComponent("editor"),
		nameSeq: map[string]int{},
	}
	e.Mapper = NewCoordinateMapper()
	e.EditRoot = &widget.Node{
		Kind: "Container",
		Name: "editRoot",
		Pos:  geom.Pt{X: 0, Y: e.Mapper.ChromeOffset},
		Size: surface,
	}
	e.Overlay = NewMarkerOverlay(e.EditRoot, e.Mapper)
	e.Index = NewWidgetTreeIndex()
	e.Selection = NewSelectionModel(e.Overlay.IsMarker)
	e.Drag = NewDragController(e.Selection, e.Overlay)
	e.Props = NewPropertyReflector(e.Overlay)
	e.History = undo.NewManager(undo.Config{MaxPerLayout: 128})

	// Observer order matters: handles first, then the property panel, then
	// the selector list.
	e.Selection.Observe(func(n *widget.Node) { e.Overlay.Rebuild(n) })
	e.Selection.Observe(func(n *widget.Node) { e.Props.Rebuild(n) })
	e.Selection.Observe(func(n *widget.Node) {
		if e.OnListIndex != nil {
			e.OnListIndex(e.Index.IndexOf(n))
		}
	})
	e.Props.OnCommit(e.recordChange)

	root, _ := widget.New("Container", "root")
	root.Size = surface
	e.installRoot(root)
	return e
}

// SetSnapping toggles drag alignment snapping.
func (e *Editor) SetSnapping(enabled bool, threshold int) {
	e.Drag.SetSnapping(enabled, geom.SnapOptions{
		Threshold:     threshold,
		SnapToEdges:   true,
		SnapToCenters: true,
	})
}

// LayoutPath returns the path of the open layout file, if any.
func (e *Editor) LayoutPath() string { return e.layoutPath }

// OpenLayout loads a layout file and installs its tree. On any failure the
// previously loaded tree stays untouched and the error is reported to the
// user.
func (e *Editor) OpenLayout(path string) error {
	tree, err := storage.LoadLayout(path)
	if err != nil {
		e.report(err)
		return err
	}
	e.layoutPath = path
	e.installRoot(tree)
	e.log.Info("layout opened", slog.String("path", path))
	return nil
}

// SaveLayout writes the current tree back to its declarative file. An empty
// path saves to the file the layout was opened from.
func (e *Editor) SaveLayout(path string) error {
	if path == "" {
		path = e.layoutPath
	}
	if path == "" {
		err := fmt.Errorf("no layout path to save to")
		e.report(err)
		return err
	}
	if err := storage.SaveLayout(path, e.Root); err != nil {
		e.report(err)
		return err
	}
	e.layoutPath = path
	e.log.Info("layout saved", slog.String("path", path))
	return nil
}

// InsertWidget creates a widget of the given kind under the selection (or the
// layout root when nothing is selected), sized 50×50 clamped to the parent's
// remaining space, inserts it, and selects it.
func (e *Editor) InsertWidget(kind string) (*widget.Node, error) {
	parent := e.Selection.Current()
	if parent == nil {
		parent = e.Root
	}
	n, err := widget.New(kind, e.nextName(kind))
	if err != nil {
		e.report(err)
		return nil, err
	}
	n.Size = geom.Size{
		W: max(1, min(defaultInsertSize, parent.Size.W-1)),
		H: max(1, min(defaultInsertSize, parent.Size.H-1)),
	}
	if err := parent.AddChild(n); err != nil {
		e.report(err)
		return nil, err
	}
	e.Index.Rebuild(e.Root)
	e.Selection.Select(n)
	e.recordChange()
	e.log.Info("widget inserted",
		slog.String("kind", kind),
		slog.String("name", n.Name),
		slog.String("parent", parent.Name))
	return n, nil
}

// SelectIndex selects the selector-list entry at ordinal i.
func (e *Editor) SelectIndex(i int) { e.Selection.Select(e.Index.At(i)) }

// SelectParent moves the selection to the parent of the current selection.
func (e *Editor) SelectParent() {
	cur := e.Selection.Current()
	if cur == nil || cur == e.Root {
		return
	}
	if p := cur.Parent; p != nil && p != e.EditRoot {
		e.Selection.Select(p)
	}
}

// PointerPress routes a press in window coordinates: the hit node's handlers
// run first (a marker press arms the resize machine and sets the suppression
// flag), then the layout root's press handler runs for the same physical
// event.
func (e *Editor) PointerPress(p geom.Pt, button int) {
	hit := Resolve(e.EditRoot, p)
	if hit == nil {
		return
	}
	ev := widget.Event{X: p.X, Y: p.Y, Button: button}
	if hit != e.Root {
		hit.Dispatch("mousePressed", ev)
	}
	e.Root.Dispatch("mousePressed", ev)
}

// PointerDrag routes a pointer move with the button held.
func (e *Editor) PointerDrag(p geom.Pt) {
	e.Root.Dispatch("mouseDragged", widget.Event{X: p.X, Y: p.Y})
}

// PointerRelease ends the current press.
func (e *Editor) PointerRelease(p geom.Pt) {
	e.Root.Dispatch("mouseReleased", widget.Event{X: p.X, Y: p.Y})
}

// Guides returns the alignment guides of a move drag in progress.
func (e *Editor) Guides() []geom.GuideLine { return e.Drag.Guides() }

// Undo restores the tree state before the most recent committed mutation.
func (e *Editor) Undo() bool {
	s, ok := e.History.Undo(e.historyKey(), e.lastStable)
	if !ok {
		return false
	}
	e.restore(s.Blob)
	return true
}

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() bool {
	s, ok := e.History.Redo(e.historyKey(), e.lastStable)
	if !ok {
		return false
	}
	e.restore(s.Blob)
	return true
}

func (e *Editor) restore(b []byte) {
	tree, err := storage.DecodeLayout(b)
	if err != nil {
		e.report(err)
		return
	}
	e.installRoot(tree)
}

func (e *Editor) onSurfacePressed(ev widget.Event, receiver *widget.Node) {
	p := geom.Pt{X: ev.X, Y: ev.Y}
	if !e.Overlay.MarkerActive() {
		hit := Resolve(receiver, p)
		if hit == nil || hit == receiver {
			// Click on empty surface background deselects.
			e.Selection.Clear()
		} else {
			e.Selection.Select(hit)
		}
	}
	e.Drag.Press(p)
}

func (e *Editor) onSurfaceDragged(ev widget.Event, _ *widget.Node) {
	e.Drag.Move(geom.Pt{X: ev.X, Y: ev.Y})
}

func (e *Editor) onSurfaceReleased(widget.Event, *widget.Node) {
	resized := e.Overlay.Release()
	moved := e.Drag.Release()
	if resized || moved {
		e.recordChange()
	}
}

// installRoot swaps in a new layout tree, clears the selection, re-attaches
// the surface handlers, and refreshes the index and the stable snapshot.
func (e *Editor) installRoot(root *widget.Node) {
	e.Selection.Clear()
	if e.Root != nil {
		e.EditRoot.RemoveChild(e.Root)
	}
	e.Root = root
	root.Pos = geom.Pt{}
	_ = e.EditRoot.AddChild(root)
	root.Capture("mousePressed", e.onSurfacePressed)
	root.Capture("mouseDragged", e.onSurfaceDragged)
	root.Capture("mouseReleased", e.onSurfaceReleased)
	e.Index.Rebuild(root)
	e.lastStable = e.encode()
}

// recordChange records the pre-mutation state for undo and refreshes the
// stable snapshot and the selector list.
func (e *Editor) recordChange() {
	if e.lastStable != nil {
		e.History.Record(undo.Snapshot{Layout: e.historyKey(), Blob: e.lastStable, TS: time.Now()})
	}
	e.lastStable = e.encode()
	e.Index.Rebuild(e.Root)
}

func (e *Editor) encode() []byte {
	b, err := storage.EncodeLayout(e.Root)
	if err != nil {
		e.log.Warn("encode layout failed", slog.Any("err", err))
		return nil
	}
	return b
}

func (e *Editor) historyKey() string {
	if e.layoutPath != "" {
		return e.layoutPath
	}
	return "untitled"
}

func (e *Editor) nextName(kind string) string {
	e.nameSeq[kind]++
	return fmt.Sprintf("%s%d", strings.ToLower(kind), e.nameSeq[kind])
}

func (e *Editor) report(err error) {
	e.log.Warn("editor operation failed", slog.Any("err", err))
	if e.Message != nil {
		e.Message(UserMessage(err))
	}
}
