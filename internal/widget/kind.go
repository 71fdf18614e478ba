/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"fmt"

	"goguieditor/internal/geom"
)

// KindSpec declares a widget kind: its capability, the default size a freshly
// inserted widget gets, and the attribute schema its nodes expose.
type KindSpec struct {
	Name        string
	Cap         Capability
	DefaultSize geom.Size
	schema      func() []Attr
}

// The registry is populated once at init; kind order is the palette order.
var (
	kindRegistry = map[string]KindSpec{}
	kindOrder    []string
)

func registerKind(ks KindSpec) {
	kindRegistry[ks.Name] = ks
	kindOrder = append(kindOrder, ks.Name)
}

// Kinds returns the registered kind names in palette order.
func Kinds() []string { return append([]string(nil), kindOrder...) }

// KnownKind reports whether kind is registered.
func KnownKind(kind string) bool {
	_, ok := kindRegistry[kind]
	return ok
}

// New constructs a widget of the given kind with its default size.
func New(kind, name string) (*Node, error) {
	ks, ok := kindRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown widget kind %q", kind)
	}
	return &Node{
		Kind:      kind,
		Name:      name,
		Size:      ks.DefaultSize,
		BaseColor: Color{R: 220, G: 220, B: 220, A: 255},
		Opacity:   1,
	}, nil
}

func init() {
	registerKind(KindSpec{Name: "Container", Cap: CapChildren, DefaultSize: geom.Size{W: 100, H: 100}, schema: containerSchema})
	registerKind(KindSpec{Name: "VBox", Cap: CapChildren, DefaultSize: geom.Size{W: 100, H: 100}, schema: containerSchema})
	registerKind(KindSpec{Name: "HBox", Cap: CapChildren, DefaultSize: geom.Size{W: 100, H: 100}, schema: containerSchema})
	registerKind(KindSpec{Name: "ScrollArea", Cap: CapContentSlot, DefaultSize: geom.Size{W: 120, H: 120}, schema: baseSchema})
	registerKind(KindSpec{Name: "Label", Cap: CapLeaf, DefaultSize: geom.Size{W: 80, H: 20}, schema: textSchema})
	registerKind(KindSpec{Name: "Button", Cap: CapLeaf, DefaultSize: geom.Size{W: 80, H: 24}, schema: textSchema})
	registerKind(KindSpec{Name: "TextField", Cap: CapLeaf, DefaultSize: geom.Size{W: 100, H: 24}, schema: textSchema})
	registerKind(KindSpec{Name: "CheckBox", Cap: CapLeaf, DefaultSize: geom.Size{W: 100, H: 20}, schema: checkBoxSchema})
	registerKind(KindSpec{Name: "Icon", Cap: CapLeaf, DefaultSize: geom.Size{W: 32, H: 32}, schema: iconSchema})
}
