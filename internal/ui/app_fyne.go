//go:build fyne && cgo

/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"goguieditor/internal/config"
	"goguieditor/internal/crash"
	"goguieditor/internal/editor"
	"goguieditor/internal/export"
	"goguieditor/internal/geom"
	"goguieditor/internal/i18n"
	applog "goguieditor/internal/log"
	"goguieditor/internal/storage"
	"goguieditor/internal/telemetry"
	gw "goguieditor/internal/widget"
)

// Run starts the Fyne-based desktop editor shell. Pass an optional project
// directory to open immediately.
func Run(projectDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
	}
	if err := i18n.Init("", cfg.General.Language); err != nil {
		l.Warn("i18n init failed", slog.Any("err", err))
	}
	telemetry.InitDefault()
	telemetry.Event("ui_started", nil)

	var ph *storage.ProjectHandle
	ed := editor.New(geom.Size{W: 800, H: 600})
	ed.SetSnapping(cfg.General.Snapping, cfg.General.SnapThreshold)
	defer func() {
		crash.Recover(ph, func() (string, *gw.Node) {
			return filepath.Base(ed.LayoutPath()), ed.Root
		})
	}()

	fyneApp := app.NewWithID("goguieditor")
	w := fyneApp.NewWindow(i18n.T("app.title"))
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel(i18n.T("status.ready"))
	ed.Message = func(msg string) { status.SetText(msg) }

	ecanvas := NewEditCanvas(ed)

	// Selector list over the flattened widget tree. Re-selecting the row
	// already selected is absorbed by the selection model, which is what
	// breaks the list/model echo loop.
	treeList := widget.NewList(
		func() int { return ed.Index.Len() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			entries := ed.Index.Entries()
			if int(i) < len(entries) {
				o.(*widget.Label).SetText(entries[i].Label)
			}
		},
	)
	treeList.OnSelected = func(id widget.ListItemID) {
		ed.SelectIndex(int(id))
		ecanvas.Refresh()
	}

	// Property panel, rebuilt from the reflected schema on selection change.
	propsBox := container.NewVBox()
	rebuildProps := func() {
		objs := []fyne.CanvasObject{}
		for i, row := range ed.Props.Rows() {
			i := i
			if row.Kind == gw.AttrBool {
				check := widget.NewCheck(row.Name, nil)
				check.SetChecked(row.Bool)
				check.OnChanged = func(v bool) {
					if err := ed.Props.Toggle(i, v); err != nil {
						status.SetText(editor.UserMessage(err))
					}
					ecanvas.Refresh()
				}
				objs = append(objs, check)
				continue
			}
			entry := widget.NewEntry()
			entry.SetText(row.Text)
			entry.OnChanged = func(text string) {
				ed.Props.LiveEdit(i, text)
				ecanvas.Refresh()
			}
			entry.OnSubmitted = func(text string) {
				reverted, err := ed.Props.Commit(i, text)
				if err != nil {
					status.SetText(editor.UserMessage(err))
					entry.SetText(reverted)
				} else {
					entry.SetText(reverted)
					status.SetText(i18n.T("status.ready"))
				}
				treeList.Refresh()
				ecanvas.Refresh()
			}
			objs = append(objs, widget.NewLabel(row.Name), entry)
		}
		propsBox.Objects = objs
		propsBox.Refresh()
	}

	ed.OnListIndex = func(i int) {
		if i < 0 {
			treeList.UnselectAll()
		} else {
			treeList.Select(widget.ListItemID(i))
		}
		rebuildProps()
	}

	refreshAll := func() {
		treeList.Refresh()
		rebuildProps()
		ecanvas.Refresh()
	}

	// Palette: one insert button per registered widget kind.
	palette := container.NewHBox(widget.NewLabel(i18n.T("palette.insert")))
	for _, kind := range gw.Kinds() {
		kind := kind
		palette.Add(widget.NewButton(kind, func() {
			if _, err := ed.InsertWidget(kind); err == nil {
				status.SetText(i18n.T("status.ready"))
			}
			refreshAll()
		}))
	}

	indexOpenLayout := func(path string) {
		if ph == nil {
			return
		}
		idx, err := storage.OpenIndex(ph.Root)
		if err != nil {
			l.Warn("index open failed", slog.Any("err", err))
			return
		}
		defer func() {
			if err := idx.Close(); err != nil {
				l.Warn("index close failed", slog.Any("err", err))
			}
		}()
		if err := idx.IndexLayout(context.Background(), path, ed.Root); err != nil {
			l.Warn("index layout failed", slog.Any("err", err))
		}
	}

	openLayout := func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			if err := ed.OpenLayout(path); err != nil {
				return // already reported via ed.Message
			}
			if ph != nil {
				_ = storage.AddLayout(ph, filepath.Base(path))
			}
			indexOpenLayout(path)
			telemetry.Event("layout_opened", map[string]any{"widgets": ed.Index.Len()})
			status.SetText(i18n.T("status.ready"))
			refreshAll()
		}, w)
		fd.SetFilter(fstorage.NewExtensionFileFilter([]string{".json"}))
		fd.Show()
	}

	saveLayout := func() {
		if ed.LayoutPath() == "" {
			dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
				if err != nil || wc == nil {
					return
				}
				path := wc.URI().Path()
				_ = wc.Close()
				if err := ed.SaveLayout(path); err != nil {
					return
				}
				if ph != nil {
					_ = storage.AddLayout(ph, filepath.Base(path))
				}
				indexOpenLayout(path)
				status.SetText(i18n.T("status.ready"))
			}, w).Show()
			return
		}
		if err := ed.SaveLayout(""); err != nil {
			return
		}
		indexOpenLayout(ed.LayoutPath())
		status.SetText(i18n.T("status.ready"))
	}

	exportWireframe := func(ext string) {
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			var werr error
			if ext == ".pdf" {
				werr = export.WritePDF(ed.Root, path, export.PDFOptions{Labels: true, Fill: true})
			} else {
				werr = export.WritePNG(ed.Root, path, export.PNGOptions{Scale: 1, Labels: true})
			}
			if werr != nil {
				dialog.ShowError(werr, w)
				return
			}
			status.SetText(i18n.T("status.ready"))
		}, w)
		fd.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
		fd.Show()
	}

	fileMenu := fyne.NewMenu(i18n.T("menu.file"),
		fyne.NewMenuItem(i18n.T("menu.file.open"), openLayout),
		fyne.NewMenuItem(i18n.T("menu.file.save"), saveLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF", func() { exportWireframe(".pdf") }),
		fyne.NewMenuItem("Export PNG", func() { exportWireframe(".png") }),
	)
	editMenu := fyne.NewMenu(i18n.T("menu.edit"),
		fyne.NewMenuItem(i18n.T("menu.edit.undo"), func() {
			if ed.Undo() {
				refreshAll()
			}
		}),
		fyne.NewMenuItem(i18n.T("menu.edit.redo"), func() {
			if ed.Redo() {
				refreshAll()
			}
		}),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			w.Close()
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyUp, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		ed.SelectParent()
		refreshAll()
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if ed.Undo() {
			refreshAll()
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if ed.Redo() {
			refreshAll()
		}
	})

	left := container.NewBorder(
		container.NewVBox(widget.NewLabel(i18n.T("panel.widgets")), widget.NewSeparator()), nil, nil, nil,
		treeList,
	)
	right := container.NewVScroll(container.NewVBox(
		widget.NewLabel(i18n.T("panel.properties")), widget.NewSeparator(), propsBox,
	))
	content := container.NewBorder(palette, status, left, right, ecanvas)
	w.SetContent(content)

	if projectDir != "" {
		opened, err := storage.Open(projectDir)
		if err != nil {
			dialog.ShowError(fmt.Errorf("open project: %w", err), w)
		} else {
			ph = opened
			status.SetText(fmt.Sprintf("%s: %s", i18n.T("status.ready"), ph.Project.Name))
			if len(ph.Project.Layouts) > 0 {
				path := ph.LayoutPath(ph.Project.Layouts[0])
				if err := ed.OpenLayout(path); err == nil {
					refreshAll()
				}
			}
		}
	}

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	w.ShowAndRun()
	return nil
}

// EditCanvas renders the editor's widget tree, resize handles, and snap
// guides, and forwards pointer input in window coordinates.
type EditCanvas struct {
	widget.BaseWidget
	ed       *editor.Editor
	lastDrag geom.Pt
}

func NewEditCanvas(ed *editor.Editor) *EditCanvas {
	c := &EditCanvas{ed: ed}
	c.ExtendBaseWidget(c)
	return c
}

// toWindow translates a canvas-local position into the coordinate space the
// editor expects, where the edit surface sits below the window chrome.
func (c *EditCanvas) toWindow(pos fyne.Position) geom.Pt {
	return geom.Pt{X: int(pos.X), Y: int(pos.Y) + c.ed.Mapper.ChromeOffset}
}

func (c *EditCanvas) MouseDown(e *desktop.MouseEvent) {
	c.ed.PointerPress(c.toWindow(e.Position), int(e.Button))
	c.Refresh()
}

func (c *EditCanvas) MouseUp(e *desktop.MouseEvent) {
	c.ed.PointerRelease(c.toWindow(e.Position))
	c.Refresh()
}

func (c *EditCanvas) Dragged(e *fyne.DragEvent) {
	c.lastDrag = c.toWindow(e.Position)
	c.ed.PointerDrag(c.lastDrag)
	c.Refresh()
}

func (c *EditCanvas) DragEnd() {
	c.ed.PointerRelease(c.lastDrag)
	c.Refresh()
}

func (c *EditCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editCanvasRenderer{ec: c}
}

func (c *EditCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

type editCanvasRenderer struct {
	ec      *EditCanvas
	objects []fyne.CanvasObject
}

// rebuild regenerates the object list from the widget tree. Handles and
// guides draw last so they stay on top.
func (r *editCanvasRenderer) rebuild() {
	ed := r.ec.ed
	sel := ed.Selection.Current()

	bg := canvas.NewRectangle(color.RGBA{R: 48, G: 48, B: 52, A: 255})
	bg.Resize(r.ec.Size())
	objs := []fyne.CanvasObject{bg}

	if ed.Root != nil {
		ed.Root.Walk(func(n *gw.Node) {
			b := ed.Mapper.BoundsInEditSurface(n)
			rect := canvas.NewRectangle(color.RGBA{R: n.BaseColor.R, G: n.BaseColor.G, B: n.BaseColor.B, A: 255})
			rect.StrokeColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
			rect.StrokeWidth = 1
			if n == sel {
				rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
				rect.StrokeWidth = 2
			}
			rect.Move(fyne.NewPos(float32(b.X), float32(b.Y)))
			rect.Resize(fyne.NewSize(float32(b.W), float32(b.H)))
			objs = append(objs, rect)
		})
	}

	if sel != nil {
		for _, m := range ed.Overlay.Markers() {
			if m == nil {
				continue
			}
			h := canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 255})
			h.Move(fyne.NewPos(float32(m.Pos.X), float32(m.Pos.Y)))
			h.Resize(fyne.NewSize(float32(m.Size.W), float32(m.Size.H)))
			objs = append(objs, h)
		}
	}

	chrome := ed.Mapper.ChromeOffset
	for _, g := range ed.Guides() {
		line := canvas.NewLine(color.RGBA{R: 255, G: 120, B: 0, A: 255})
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(float32(g.From.X), float32(g.From.Y-chrome))
		line.Position2 = fyne.NewPos(float32(g.To.X), float32(g.To.Y-chrome))
		objs = append(objs, line)
	}

	r.objects = objs
}

func (r *editCanvasRenderer) Destroy() {}

func (r *editCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		r.rebuild()
	}
	return r.objects
}

func (r *editCanvasRenderer) MinSize() fyne.Size { return r.ec.PreferredSize() }

func (r *editCanvasRenderer) Layout(fyne.Size) { r.rebuild() }

func (r *editCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.ec)
}
