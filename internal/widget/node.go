/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package widget models the host toolkit's widget tree: nodes with geometry,
// parent/child links, a per-kind capability, an event subscription mechanism,
// and a typed attribute schema per widget kind.
package widget

import (
	"errors"
	"fmt"

	"goguieditor/internal/geom"
)

// Capability describes how a widget kind holds other widgets.
// Dispatch on it explicitly; there are no runtime type checks.
type Capability int

const (
	// CapLeaf widgets hold nothing.
	CapLeaf Capability = iota
	// CapChildren widgets hold an ordered child list (paint order).
	CapChildren
	// CapContentSlot widgets hold exactly one nested content widget
	// (scroll/viewport wrappers).
	CapContentSlot
)

// ErrInvalidParent is returned when a widget cannot accept the requested
// child. Callers surface it as a non-fatal user message.
var ErrInvalidParent = errors.New("widget cannot contain children")

// Color is an 8-bit RGBA color attribute value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Event is a pointer event delivered to a widget handler. Coordinates are
// relative to the subscribing widget's event space.
type Event struct {
	X, Y   int
	Button int
}

// Handler receives an event and the widget it was captured on.
type Handler func(Event, *Node)

// Node is a widget in the edited tree.
//
// Children is the paint and selection order: earlier children win hit-test
// ties. Every node except the root has exactly one parent, and a node never
// appears as its own descendant.
type Node struct {
	Kind string
	Name string
	Pos  geom.Pt // relative to parent
	Size geom.Size

	Parent   *Node
	Children []*Node // owned, ordered; only for CapChildren kinds
	Content  *Node   // owned single slot; only for CapContentSlot kinds

	// Value-bearing fields the attribute schemas expose. Which of these a
	// kind actually uses is decided by its schema.
	Text      string
	Marked    bool
	BaseColor Color
	Border    int
	Image     string
	Opacity   float64

	handlers map[string][]Handler
}

// Cap returns the node's capability as declared by its kind. Unregistered
// kinds are leaves.
func (n *Node) Cap() Capability {
	if ks, ok := kindRegistry[n.Kind]; ok {
		return ks.Cap
	}
	return CapLeaf
}

// AddChild appends c to n's child list, reparenting it. It fails when n's
// kind cannot hold children or when the insertion would create a cycle.
func (n *Node) AddChild(c *Node) error {
	switch n.Cap() {
	case CapChildren:
		if c.isAncestorOf(n) || c == n {
			return fmt.Errorf("add child %q: would create a cycle", c.Name)
		}
		c.detach()
		c.Parent = n
		n.Children = append(n.Children, c)
		return nil
	case CapContentSlot:
		return n.SetContent(c)
	default:
		return fmt.Errorf("add child to %s %q: %w", n.Kind, n.Name, ErrInvalidParent)
	}
}

// SetContent installs c as the single content widget of a content-slot node.
func (n *Node) SetContent(c *Node) error {
	if n.Cap() != CapContentSlot {
		return fmt.Errorf("set content on %s %q: %w", n.Kind, n.Name, ErrInvalidParent)
	}
	if c.isAncestorOf(n) || c == n {
		return fmt.Errorf("set content %q: would create a cycle", c.Name)
	}
	if n.Content != nil {
		n.Content.Parent = nil
	}
	c.detach()
	c.Parent = n
	n.Content = c
	return nil
}

// RemoveChild detaches c from n. Removing a widget that is not a child is a
// no-op.
func (n *Node) RemoveChild(c *Node) {
	if n.Content == c {
		n.Content = nil
		c.Parent = nil
		return
	}
	for i, ch := range n.Children {
		if ch == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.Parent = nil
			return
		}
	}
}

// RemoveAllChildren detaches every child and the content slot.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if n.Content != nil {
		n.Content.Parent = nil
		n.Content = nil
	}
}

func (n *Node) detach() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (n *Node) isAncestorOf(d *Node) bool {
	for p := d.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// AbsolutePos returns the node's top-left corner in root coordinates,
// accumulated over the live parent chain. It is recomputed on every call;
// ancestor positions can change between calls.
func (n *Node) AbsolutePos() geom.Pt {
	p := n.Pos
	for a := n.Parent; a != nil; a = a.Parent {
		p = p.Add(a.Pos)
	}
	return p
}

// AbsoluteBounds returns the node's bounding rectangle in root coordinates.
func (n *Node) AbsoluteBounds() geom.Rect {
	p := n.AbsolutePos()
	return geom.Rect{X: p.X, Y: p.Y, W: n.Size.W, H: n.Size.H}
}

// Capture subscribes a handler to the named event ("mousePressed",
// "mouseDragged", "mouseReleased"). Handlers run in subscription order.
func (n *Node) Capture(event string, h Handler) {
	if n.handlers == nil {
		n.handlers = make(map[string][]Handler)
	}
	n.handlers[event] = append(n.handlers[event], h)
}

// Dispatch delivers an event to the node's handlers for the named event.
// All handlers run to completion before Dispatch returns.
func (n *Node) Dispatch(event string, e Event) {
	for _, h := range n.handlers[event] {
		h(e, n)
	}
}

// Walk visits n and its descendants pre-order: the node before its children,
// children in paint order, then the content slot.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
	if n.Content != nil {
		n.Content.Walk(visit)
	}
}
