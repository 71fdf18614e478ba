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

	"goguieditor/internal/widget"
)

// WidgetListEntry pairs a node with its display label for the flattened
// selector list.
type WidgetListEntry struct {
	Node  *widget.Node
	Label string
}

// WidgetTreeIndex is the flattened registry of all widgets on the edit
// surface, in pre-order (node before children, children in paint order).
// Rebuilt whenever the tree changes shape.
type WidgetTreeIndex struct {
	entries []WidgetListEntry
}

func NewWidgetTreeIndex() *WidgetTreeIndex { return &WidgetTreeIndex{} }

// Rebuild re-derives the entry list from the tree rooted at root.
func (ix *WidgetTreeIndex) Rebuild(root *widget.Node) {
	ix.entries = ix.entries[:0]
	if root == nil {
		return
	}
	root.Walk(func(n *widget.Node) {
		ix.entries = append(ix.entries, WidgetListEntry{
			Node:  n,
			Label: fmt.Sprintf("%s (%s)", n.Name, n.Kind),
		})
	})
}

// Entries returns the current entry list. The slice is owned by the index.
func (ix *WidgetTreeIndex) Entries() []WidgetListEntry { return ix.entries }

func (ix *WidgetTreeIndex) Len() int { return len(ix.entries) }

// At returns the node at ordinal position i, or nil when out of range.
func (ix *WidgetTreeIndex) At(i int) *widget.Node {
	if i < 0 || i >= len(ix.entries) {
		return nil
	}
	return ix.entries[i].Node
}

// IndexOf returns the ordinal position of n, or -1 when n is not indexed.
func (ix *WidgetTreeIndex) IndexOf(n *widget.Node) int {
	for i, e := range ix.entries {
		if e.Node == n {
			return i
		}
	}
	return -1
}
