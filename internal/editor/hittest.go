/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"goguieditor/internal/geom"
	"goguieditor/internal/widget"
)

// Resolve returns the deepest widget under root whose absolute bounds contain
// p, or nil when p is outside root. Children are tried in paint order and the
// first child that resolves wins; overlapping later siblings never steal the
// hit. A content-slot node recurses into its single content widget the same
// way. When no descendant claims the point, the container itself is the hit.
func Resolve(root *widget.Node, p geom.Pt) *widget.Node {
	if root == nil || !root.AbsoluteBounds().Contains(p) {
		return nil
	}
	for _, c := range root.Children {
		if hit := Resolve(c, p); hit != nil {
			return hit
		}
	}
	if root.Content != nil {
		if hit := Resolve(root.Content, p); hit != nil {
			return hit
		}
	}
	return root
}
