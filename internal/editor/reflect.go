/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "goguieditor/internal/widget"

// EditorRow is one property-panel row: the attribute name, the value kind the
// panel picks an editor by, and the seeded editor state.
type EditorRow struct {
	Name string
	Kind widget.AttrKind
	Text string // seeded text for the text-field editors
	Bool bool   // seeded state for the toggle editor

	attr widget.Attr
}

// PropertyReflector enumerates the selection's attribute schema and mediates
// all writes back into the node. Per-kind knowledge lives entirely in the
// schema; the reflector only branches on the value-kind tag.
type PropertyReflector struct {
	overlay *MarkerOverlay

	target   *widget.Node
	rows     []EditorRow
	onCommit func()
}

func NewPropertyReflector(overlay *MarkerOverlay) *PropertyReflector {
	return &PropertyReflector{overlay: overlay}
}

// OnCommit registers a hook run after every committed mutation. The editor
// uses it to refresh the selector list and record an undo snapshot.
func (r *PropertyReflector) OnCommit(fn func()) { r.onCommit = fn }

// Rebuild clears the panel and, for a non-nil node, derives one row per
// attribute in the schema's declared order.
func (r *PropertyReflector) Rebuild(n *widget.Node) {
	r.target = n
	r.rows = r.rows[:0]
	if n == nil {
		return
	}
	for _, a := range widget.SchemaFor(n) {
		row := EditorRow{Name: a.Name, Kind: a.Kind, attr: a}
		if a.Kind == widget.AttrBool {
			row.Bool, _ = a.Get(n).(bool)
		} else {
			row.Text = widget.FormatValue(a.Kind, a.Get(n))
		}
		r.rows = append(r.rows, row)
	}
}

// Rows returns the current panel rows.
func (r *PropertyReflector) Rows() []EditorRow { return r.rows }

// LiveEdit attempts a non-committing parse and apply for a keystroke-level
// edit. Failures are swallowed; the last good value stays in place and the
// user keeps typing.
func (r *PropertyReflector) LiveEdit(row int, text string) {
	if r.target == nil || row < 0 || row >= len(r.rows) {
		return
	}
	_ = r.apply(r.rows[row], text)
}

// Commit applies a final edit. On success the returned text is the
// authoritative re-formatted value. On failure the edited text is discarded:
// the returned text is re-derived from the node's current value and the
// ParseError is surfaced to the caller.
func (r *PropertyReflector) Commit(row int, text string) (string, error) {
	if r.target == nil || row < 0 || row >= len(r.rows) {
		return "", nil
	}
	ro := r.rows[row]
	if err := r.apply(ro, text); err != nil {
		return widget.FormatValue(ro.Kind, ro.attr.Get(r.target)), err
	}
	authoritative := widget.FormatValue(ro.Kind, ro.attr.Get(r.target))
	r.rows[row].Text = authoritative
	if r.onCommit != nil {
		r.onCommit()
	}
	return authoritative, nil
}

// Toggle applies a boolean row immediately; toggles have no separate commit
// step.
func (r *PropertyReflector) Toggle(row int, v bool) error {
	if r.target == nil || row < 0 || row >= len(r.rows) {
		return nil
	}
	ro := r.rows[row]
	if err := ro.attr.Set(r.target, v); err != nil {
		return &ParseError{Attr: ro.Name, Text: widget.FormatValue(widget.AttrBool, v), Err: err}
	}
	r.rows[row].Bool = v
	if r.onCommit != nil {
		r.onCommit()
	}
	return nil
}

func (r *PropertyReflector) apply(ro EditorRow, text string) error {
	v, err := widget.ParseValue(ro.Kind, text)
	if err != nil {
		return &ParseError{Attr: ro.Name, Text: text, Err: err}
	}
	if err := ro.attr.Set(r.target, v); err != nil {
		return &ParseError{Attr: ro.Name, Text: text, Err: err}
	}
	if ro.Name == "position" || ro.Name == "size" {
		r.overlay.RepositionAll()
	}
	return nil
}
