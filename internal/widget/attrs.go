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
	"strconv"
	"strings"

	"goguieditor/internal/geom"
)

// AttrKind tags the value type of an attribute. The property panel picks an
// editor per tag; nothing else in the editor branches on widget kinds.
type AttrKind int

const (
	AttrPoint AttrKind = iota
	AttrColor
	AttrInt
	AttrFloat
	AttrBool
	AttrString
)

// Attr describes one editable attribute of a widget kind: a name, a value
// kind tag, and type-erased get/set closures bound to the kind's concrete
// fields when the schema is built. Descriptors are immutable once produced.
type Attr struct {
	Name string
	Kind AttrKind
	Get  func(*Node) any
	Set  func(*Node, any) error
}

// SchemaFor derives the ordered attribute schema for the node's kind.
// A fresh descriptor set is produced per call.
func SchemaFor(n *Node) []Attr {
	ks, ok := kindRegistry[n.Kind]
	if !ok || ks.schema == nil {
		return baseSchema()
	}
	return ks.schema()
}

// ParseValue parses user text into the attribute kind's value type.
// Formats: Point "x, y"; Color "r, g, b, a"; Bool "true"/"false".
func ParseValue(kind AttrKind, s string) (any, error) {
	switch kind {
	case AttrPoint:
		nums, err := splitInts(s, 2)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
		return geom.Pt{X: nums[0], Y: nums[1]}, nil
	case AttrColor:
		nums, err := splitInts(s, 4)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		for _, v := range nums {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("color %q: channel %d out of range", s, v)
			}
		}
		return Color{R: uint8(nums[0]), G: uint8(nums[1]), B: uint8(nums[2]), A: uint8(nums[3])}, nil
	case AttrInt:
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("integer %q: %w", s, err)
		}
		return v, nil
	case AttrFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("float %q: %w", s, err)
		}
		return v, nil
	case AttrBool:
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("bool %q: %w", s, err)
		}
		return v, nil
	default:
		return s, nil
	}
}

// FormatValue renders an attribute value the way ParseValue accepts it.
func FormatValue(kind AttrKind, v any) string {
	switch kind {
	case AttrPoint:
		p, _ := v.(geom.Pt)
		return fmt.Sprintf("%d, %d", p.X, p.Y)
	case AttrColor:
		c, _ := v.(Color)
		return fmt.Sprintf("%d, %d, %d, %d", c.R, c.G, c.B, c.A)
	case AttrFloat:
		f, _ := v.(float64)
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func splitInts(s string, want int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", want, len(parts))
	}
	out := make([]int, 0, want)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Schema builders. Geometry attributes (position, size) are shared by every
// kind; the rest bind the kind's value fields.

func baseSchema() []Attr {
	return []Attr{
		{Name: "name", Kind: AttrString,
			Get: func(n *Node) any { return n.Name },
			Set: func(n *Node, v any) error { return setString(&n.Name, v) }},
		{Name: "position", Kind: AttrPoint,
			Get: func(n *Node) any { return n.Pos },
			Set: func(n *Node, v any) error {
				p, ok := v.(geom.Pt)
				if !ok {
					return fmt.Errorf("position: not a point")
				}
				n.Pos = p
				return nil
			}},
		{Name: "size", Kind: AttrPoint,
			Get: func(n *Node) any { return geom.Pt{X: n.Size.W, Y: n.Size.H} },
			Set: func(n *Node, v any) error {
				p, ok := v.(geom.Pt)
				if !ok {
					return fmt.Errorf("size: not a point")
				}
				if p.X <= 0 || p.Y <= 0 {
					return fmt.Errorf("size: must be positive")
				}
				n.Size = geom.Size{W: p.X, H: p.Y}
				return nil
			}},
	}
}

func containerSchema() []Attr {
	return append(baseSchema(),
		Attr{Name: "base_color", Kind: AttrColor,
			Get: func(n *Node) any { return n.BaseColor },
			Set: func(n *Node, v any) error { return setColor(&n.BaseColor, v) }},
		Attr{Name: "border", Kind: AttrInt,
			Get: func(n *Node) any { return n.Border },
			Set: func(n *Node, v any) error { return setInt(&n.Border, v) }},
		Attr{Name: "opacity", Kind: AttrFloat,
			Get: func(n *Node) any { return n.Opacity },
			Set: func(n *Node, v any) error { return setFloat(&n.Opacity, v) }},
	)
}

func textSchema() []Attr {
	return append(baseSchema(),
		Attr{Name: "text", Kind: AttrString,
			Get: func(n *Node) any { return n.Text },
			Set: func(n *Node, v any) error { return setString(&n.Text, v) }},
	)
}

func checkBoxSchema() []Attr {
	return append(textSchema(),
		Attr{Name: "marked", Kind: AttrBool,
			Get: func(n *Node) any { return n.Marked },
			Set: func(n *Node, v any) error {
				b, ok := v.(bool)
				if !ok {
					return fmt.Errorf("marked: not a bool")
				}
				n.Marked = b
				return nil
			}},
	)
}

func iconSchema() []Attr {
	return append(baseSchema(),
		Attr{Name: "image", Kind: AttrString,
			Get: func(n *Node) any { return n.Image },
			Set: func(n *Node, v any) error { return setString(&n.Image, v) }},
		Attr{Name: "opacity", Kind: AttrFloat,
			Get: func(n *Node) any { return n.Opacity },
			Set: func(n *Node, v any) error { return setFloat(&n.Opacity, v) }},
	)
}

func setString(dst *string, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("not a string")
	}
	*dst = s
	return nil
}

func setInt(dst *int, v any) error {
	i, ok := v.(int)
	if !ok {
		return fmt.Errorf("not an integer")
	}
	*dst = i
	return nil
}

func setFloat(dst *float64, v any) error {
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("not a float")
	}
	*dst = f
	return nil
}

func setColor(dst *Color, v any) error {
	c, ok := v.(Color)
	if !ok {
		return fmt.Errorf("not a color")
	}
	*dst = c
	return nil
}
