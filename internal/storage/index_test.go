/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"os"
	"testing"
)

func TestOpenIndexCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	ix, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer ix.Close()
	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}
}

func TestIndexLayoutAndSearch(t *testing.T) {
	root := t.TempDir()
	ix, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer ix.Close()
	ctx := context.Background()

	tree := sampleTree(t)
	if err := ix.IndexLayout(ctx, "layouts/main.json", tree); err != nil {
		t.Fatalf("IndexLayout: %v", err)
	}

	hits, err := ix.SearchWidgets(ctx, "ok")
	if err != nil {
		t.Fatalf("SearchWidgets: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "ok" || hits[0].Kind != "Button" {
		t.Fatalf("hits = %+v", hits)
	}

	// Re-indexing replaces widget rows instead of accumulating them.
	if err := ix.IndexLayout(ctx, "layouts/main.json", tree); err != nil {
		t.Fatalf("re-index: %v", err)
	}
	hits, err = ix.SearchWidgets(ctx, "ok")
	if err != nil {
		t.Fatalf("SearchWidgets: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("duplicate widget rows after re-index: %d", len(hits))
	}
}

func TestRecentLayoutsOrderAndRemove(t *testing.T) {
	root := t.TempDir()
	ix, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer ix.Close()
	ctx := context.Background()

	tree := sampleTree(t)
	if err := ix.IndexLayout(ctx, "layouts/a.json", tree); err != nil {
		t.Fatalf("index a: %v", err)
	}
	if err := ix.IndexLayout(ctx, "layouts/b.json", tree); err != nil {
		t.Fatalf("index b: %v", err)
	}
	recent, err := ix.RecentLayouts(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLayouts: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[0].WidgetCount != 4 {
		t.Fatalf("widget count = %d", recent[0].WidgetCount)
	}

	if err := ix.RemoveLayout(ctx, "layouts/a.json"); err != nil {
		t.Fatalf("RemoveLayout: %v", err)
	}
	recent, err = ix.RecentLayouts(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLayouts: %v", err)
	}
	if len(recent) != 1 || recent[0].Path != "layouts/b.json" {
		t.Fatalf("after remove: %+v", recent)
	}
}
