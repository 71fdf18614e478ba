/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"strings"
	"testing"
)

func TestAutosaveCrashSnapshotWritesLoadableLayout(t *testing.T) {
	root := t.TempDir()
	tree := sampleTree(t)

	path, err := AutosaveCrashSnapshot(root, "main.json", tree)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot: %v", err)
	}
	if !strings.Contains(path, "crash-autosave-") || !strings.HasSuffix(path, "main.json") {
		t.Fatalf("snapshot path = %s", path)
	}
	got, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("snapshot not loadable: %v", err)
	}
	if len(got.Children) != 2 {
		t.Fatalf("snapshot tree mismatch")
	}
}

func TestAutosaveCrashSnapshotNilTree(t *testing.T) {
	if _, err := AutosaveCrashSnapshot(t.TempDir(), "x.json", nil); err == nil {
		t.Fatalf("nil tree must fail")
	}
}
