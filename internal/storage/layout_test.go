/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"goguieditor/internal/geom"
	"goguieditor/internal/widget"
)

func sampleTree(t *testing.T) *widget.Node {
	t.Helper()
	root, err := widget.New("Container", "root")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root.Size = geom.Size{W: 600, H: 400}
	btn, _ := widget.New("Button", "ok")
	btn.Pos = geom.Pt{X: 10, Y: 20}
	btn.Text = "OK"
	if err := root.AddChild(btn); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	scroll, _ := widget.New("ScrollArea", "scroll")
	scroll.Pos = geom.Pt{X: 100, Y: 0}
	inner, _ := widget.New("Container", "inner")
	if err := scroll.SetContent(inner); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if err := root.AddChild(scroll); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	return root
}

func TestLayoutRoundTrip(t *testing.T) {
	root := sampleTree(t)
	path := filepath.Join(t.TempDir(), "main.json")
	if err := SaveLayout(path, root); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}
	got, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if len(got.Children) != 2 {
		t.Fatalf("children = %d", len(got.Children))
	}
	btn := got.Children[0]
	if btn.Kind != "Button" || btn.Text != "OK" || btn.Pos != (geom.Pt{X: 10, Y: 20}) {
		t.Fatalf("button mismatch: %+v", btn)
	}
	if got.Children[1].Content == nil || got.Children[1].Content.Name != "inner" {
		t.Fatalf("content slot lost")
	}
	if btn.Parent != got {
		t.Fatalf("parent links not rebuilt")
	}
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadLayoutMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadLayout(path)
	if !errors.Is(err, ErrMalformedMarkup) {
		t.Fatalf("expected ErrMalformedMarkup, got %v", err)
	}
}

func TestLoadLayoutUnknownKindIsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unknown.json")
	body := `{"version":1,"root":{"kind":"Blinker","name":"r","position":{"x":0,"y":0},"size":{"w":10,"h":10}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadLayout(path)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Path != path {
		t.Fatalf("schema error path = %q", se.Path)
	}
}

func TestLoadLayoutUnknownAttributeIsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attr.json")
	body := `{"version":1,"root":{"kind":"Container","name":"r","position":{"x":0,"y":0},"size":{"w":10,"h":10},"sparkle":true}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var se *SchemaError
	if _, err := LoadLayout(path); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestLoadLayoutZeroSizeIsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.json")
	body := `{"version":1,"root":{"kind":"Container","name":"r","position":{"x":0,"y":0},"size":{"w":0,"h":10}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var se *SchemaError
	if _, err := LoadLayout(path); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestLoadLayoutLeafWithChildrenIsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.json")
	body := `{"version":1,"root":{"kind":"Label","name":"l","position":{"x":0,"y":0},"size":{"w":10,"h":10},
		"children":[{"kind":"Button","name":"b","position":{"x":0,"y":0},"size":{"w":5,"h":5}}]}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var se *SchemaError
	if _, err := LoadLayout(path); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestSaveLayoutKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	root := sampleTree(t)
	if err := SaveLayout(path, root); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveLayout(path, root); err != nil {
		t.Fatalf("second save: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, BackupsDirName))
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected layout backup, err=%v", err)
	}
}
