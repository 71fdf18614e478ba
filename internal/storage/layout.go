/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"goguieditor/internal/geom"
	"goguieditor/internal/widget"
)

// LayoutFileVersion is the current declarative layout format version.
const LayoutFileVersion = 1

var (
	// ErrFileNotFound reports a missing layout file.
	ErrFileNotFound = errors.New("layout file not found")
	// ErrMalformedMarkup reports a layout file that is not valid JSON.
	ErrMalformedMarkup = errors.New("malformed layout markup")
)

// SchemaError reports a layout that parses but violates the layout schema,
// including unknown widget kinds and attributes.
type SchemaError struct {
	Path       string
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("layout %s: %d schema violation(s): %s", e.Path, len(e.Violations), e.First())
}

// First returns the first violation, the one shown to the user.
func (e *SchemaError) First() string {
	if len(e.Violations) == 0 {
		return "unspecified"
	}
	return e.Violations[0]
}

//go:embed layout_schema.json
var layoutSchemaJSON string

var layoutSchema = gojsonschema.NewStringLoader(layoutSchemaJSON)

type layoutFile struct {
	Version int         `json:"version"`
	Root    *layoutNode `json:"root"`
}

type layoutNode struct {
	Kind      string        `json:"kind"`
	Name      string        `json:"name"`
	Position  pointField    `json:"position"`
	Size      sizeField     `json:"size"`
	Text      string        `json:"text,omitempty"`
	Marked    bool          `json:"marked,omitempty"`
	BaseColor *widget.Color `json:"base_color,omitempty"`
	Border    int           `json:"border,omitempty"`
	Image     string        `json:"image,omitempty"`
	Opacity   *float64      `json:"opacity,omitempty"`
	Children  []*layoutNode `json:"children,omitempty"`
	Content   *layoutNode   `json:"content,omitempty"`
}

type pointField struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type sizeField struct {
	W int `json:"w"`
	H int `json:"h"`
}

// LoadLayout reads, validates, and decodes a layout file into a widget tree.
// Any failure leaves the caller's current tree untouched; nothing is mutated
// until the whole file decodes.
func LoadLayout(path string) (*widget.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	n, err := DecodeLayout(b)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = path
		}
		return nil, err
	}
	return n, nil
}

// DecodeLayout validates raw layout JSON against the embedded schema and
// builds the widget tree.
func DecodeLayout(b []byte) (*widget.Node, error) {
	if !json.Valid(b) {
		return nil, ErrMalformedMarkup
	}
	res, err := gojsonschema.Validate(layoutSchema, gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	if !res.Valid() {
		se := &SchemaError{}
		for _, d := range res.Errors() {
			se.Violations = append(se.Violations, fmt.Sprintf("%s: %s", d.Field(), d.Description()))
		}
		return nil, se
	}
	var lf layoutFile
	if err := json.Unmarshal(b, &lf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	if lf.Root == nil {
		return nil, &SchemaError{Violations: []string{"root: missing"}}
	}
	return buildNode(lf.Root)
}

func buildNode(ln *layoutNode) (*widget.Node, error) {
	if !widget.KnownKind(ln.Kind) {
		return nil, &SchemaError{Violations: []string{fmt.Sprintf("kind: unknown widget kind %q", ln.Kind)}}
	}
	n, err := widget.New(ln.Kind, ln.Name)
	if err != nil {
		return nil, &SchemaError{Violations: []string{err.Error()}}
	}
	n.Pos = geom.Pt{X: ln.Position.X, Y: ln.Position.Y}
	n.Size = geom.Size{W: ln.Size.W, H: ln.Size.H}
	n.Text = ln.Text
	n.Marked = ln.Marked
	if ln.BaseColor != nil {
		n.BaseColor = *ln.BaseColor
	}
	n.Border = ln.Border
	n.Image = ln.Image
	if ln.Opacity != nil {
		n.Opacity = *ln.Opacity
	}
	for _, lc := range ln.Children {
		c, err := buildNode(lc)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(c); err != nil {
			return nil, &SchemaError{Violations: []string{
				fmt.Sprintf("children: %s %q cannot contain %q", ln.Kind, ln.Name, lc.Name),
			}}
		}
	}
	if ln.Content != nil {
		c, err := buildNode(ln.Content)
		if err != nil {
			return nil, err
		}
		if err := n.SetContent(c); err != nil {
			return nil, &SchemaError{Violations: []string{
				fmt.Sprintf("content: %s %q cannot hold content", ln.Kind, ln.Name),
			}}
		}
	}
	return n, nil
}

// EncodeLayout serializes a widget tree to its declarative JSON form.
func EncodeLayout(root *widget.Node) ([]byte, error) {
	if root == nil {
		return nil, errors.New("nil layout root")
	}
	lf := layoutFile{Version: LayoutFileVersion, Root: toLayoutNode(root)}
	b, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return append(b, '\n'), nil
}

func toLayoutNode(n *widget.Node) *layoutNode {
	ln := &layoutNode{
		Kind:     n.Kind,
		Name:     n.Name,
		Position: pointField{X: n.Pos.X, Y: n.Pos.Y},
		Size:     sizeField{W: n.Size.W, H: n.Size.H},
		Text:     n.Text,
		Marked:   n.Marked,
		Border:   n.Border,
		Image:    n.Image,
	}
	if n.BaseColor != (widget.Color{}) {
		c := n.BaseColor
		ln.BaseColor = &c
	}
	if n.Opacity != 0 {
		o := n.Opacity
		ln.Opacity = &o
	}
	for _, c := range n.Children {
		ln.Children = append(ln.Children, toLayoutNode(c))
	}
	if n.Content != nil {
		ln.Content = toLayoutNode(n.Content)
	}
	return ln
}

// SaveLayout writes the tree to path transactionally, keeping a timestamped
// backup of the previous file under a sibling backups directory.
func SaveLayout(path string, root *widget.Node) error {
	data, err := EncodeLayout(root)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
		if err := os.MkdirAll(bdir, 0o755); err != nil {
			return fmt.Errorf("ensure backups dir: %w", err)
		}
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp)
		if err := copyFile(path, filepath.Join(bdir, bname)); err != nil {
			return fmt.Errorf("backup layout: %w", err)
		}
	}
	if err := replaceFile(path, data); err != nil {
		return fmt.Errorf("replace layout: %w", err)
	}
	return nil
}
