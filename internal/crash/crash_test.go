/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goguieditor/internal/geom"
	"goguieditor/internal/storage"
	"goguieditor/internal/widget"
)

func TestRecoverWritesReportAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	ph, err := storage.InitProject(dir, storage.Project{Name: "crashtest"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}

	root, _ := widget.New("Container", "root")
	root.Size = geom.Size{W: 200, H: 100}
	src := func() (string, *widget.Node) { return "main.json", root }

	exitCode := -1
	exitFn = func(code int) { exitCode = code }
	defer func() { exitFn = os.Exit }()

	func() {
		defer Recover(ph, src)
		panic("boom")
	}()

	if exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode)
	}
	bdir := filepath.Join(dir, storage.BackupsDirName)
	entries, err := os.ReadDir(bdir)
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var gotReport, gotSnapshot bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "crash-autosave-") && strings.HasSuffix(e.Name(), "main.json") {
			gotSnapshot = true
			continue
		}
		if strings.HasPrefix(e.Name(), "crash-") && strings.HasSuffix(e.Name(), ".log") {
			gotReport = true
			b, err := os.ReadFile(filepath.Join(bdir, e.Name()))
			if err != nil {
				t.Fatalf("read report: %v", err)
			}
			if !strings.Contains(string(b), "Panic: boom") {
				t.Fatalf("report missing panic value:\n%s", b)
			}
		}
	}
	if !gotReport {
		t.Fatalf("no crash report in %s", bdir)
	}
	if !gotSnapshot {
		t.Fatalf("no autosave snapshot in %s", bdir)
	}
}

func TestRecoverWithoutProject(t *testing.T) {
	exitCode := -1
	exitFn = func(code int) { exitCode = code }
	defer func() { exitFn = os.Exit }()

	func() {
		defer Recover(nil, nil)
		panic("no project open")
	}()

	if exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode)
	}
}

func TestRecoverNoPanicIsNoOp(t *testing.T) {
	called := false
	exitFn = func(int) { called = true }
	defer func() { exitFn = os.Exit }()

	func() {
		defer Recover(nil, nil)
	}()

	if called {
		t.Fatalf("Recover exited without a panic")
	}
}
