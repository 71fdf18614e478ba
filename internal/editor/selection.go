/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "goguieditor/internal/widget"

// SelectionModel holds the currently selected widget, or none. The reference
// is weak: it must be invalidated when the node leaves the tree.
//
// Observers run in registration order on every change. The expected order is
// marker overlay, then property panel, then selector-list index, so the
// handles are never stale when the panel reads geometry.
type SelectionModel struct {
	current   *widget.Node
	isMarker  func(*widget.Node) bool
	observers []func(*widget.Node)
	notifying bool
}

// NewSelectionModel builds a selection model. isMarker, when non-nil, vetoes
// selection of overlay marker nodes.
func NewSelectionModel(isMarker func(*widget.Node) bool) *SelectionModel {
	return &SelectionModel{isMarker: isMarker}
}

// Observe registers a change observer. Observers receive the new selection
// (nil for cleared).
func (s *SelectionModel) Observe(fn func(*widget.Node)) {
	s.observers = append(s.observers, fn)
}

// Current returns the selected node, or nil.
func (s *SelectionModel) Current() *widget.Node { return s.current }

// Select makes n the selection and notifies observers. Selecting a marker is
// ignored, as is re-selecting the current node; the latter also keeps a
// list-driven selection from recursing when an observer updates the list's
// highlighted row.
func (s *SelectionModel) Select(n *widget.Node) {
	if n != nil && s.isMarker != nil && s.isMarker(n) {
		return
	}
	if n == s.current || s.notifying {
		return
	}
	s.current = n
	s.notifying = true
	defer func() { s.notifying = false }()
	for _, fn := range s.observers {
		fn(n)
	}
}

// Clear drops the selection.
func (s *SelectionModel) Clear() { s.Select(nil) }

// Invalidate clears the selection if it is n or a descendant of n. Called
// when a subtree is removed from the edit surface.
func (s *SelectionModel) Invalidate(n *widget.Node) {
	for c := s.current; c != nil; c = c.Parent {
		if c == n {
			s.Clear()
			return
		}
	}
}
