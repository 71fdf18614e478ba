/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitProjectScaffoldsAndSaves(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	ph, err := InitProject(root, Project{Name: "demo"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	for _, d := range standardSubDirs {
		if st, err := os.Stat(filepath.Join(root, d)); err != nil || !st.IsDir() {
			t.Fatalf("missing subdir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(ph.ManifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if ph.Project.Version != 1 || ph.Project.Settings.LayoutDir != LayoutsDirName {
		t.Fatalf("defaults not applied: %+v", ph.Project)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	if _, err := InitProject(root, Project{Name: "demo", Layouts: []string{"main.json"}}); err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	ph, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ph.Project.Name != "demo" || len(ph.Project.Layouts) != 1 {
		t.Fatalf("manifest mismatch: %+v", ph.Project)
	}
}

func TestSaveKeepsBackup(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	ph, err := InitProject(root, Project{Name: "demo"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	ph.Project.Name = "renamed"
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected a timestamped manifest backup")
	}
}

func TestOpenFallsBackToBackup(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	ph, err := InitProject(root, Project{Name: "demo"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	// Force a backup, then corrupt the live manifest.
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(ph.ManifestPath, []byte("{not yaml:::"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open with backup: %v", err)
	}
	if got.Project.Name != "demo" {
		t.Fatalf("backup manifest mismatch: %+v", got.Project)
	}
}

func TestAddLayoutIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	ph, err := InitProject(root, Project{Name: "demo"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if err := AddLayout(ph, "main.json"); err != nil {
		t.Fatalf("AddLayout: %v", err)
	}
	if err := AddLayout(ph, "main.json"); err != nil {
		t.Fatalf("AddLayout twice: %v", err)
	}
	if len(ph.Project.Layouts) != 1 {
		t.Fatalf("duplicate layout entry: %v", ph.Project.Layouts)
	}
	if ph.LayoutPath("main.json") != filepath.Join(root, LayoutsDirName, "main.json") {
		t.Fatalf("LayoutPath = %s", ph.LayoutPath("main.json"))
	}
}
