/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"testing"

	"goguieditor/internal/geom"
)

func TestParsePointRoundTrip(t *testing.T) {
	v, err := ParseValue(AttrPoint, "12, 34")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v != (geom.Pt{X: 12, Y: 34}) {
		t.Fatalf("parsed %+v", v)
	}
	if s := FormatValue(AttrPoint, v); s != "12, 34" {
		t.Fatalf("format %q", s)
	}
}

func TestParsePointErrors(t *testing.T) {
	for _, in := range []string{"abc", "1", "1, 2, 3", "1; 2", ""} {
		if _, err := ParseValue(AttrPoint, in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseColor(t *testing.T) {
	v, err := ParseValue(AttrColor, "10, 20, 30, 255")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := v.(Color)
	if c != (Color{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("parsed %+v", c)
	}
	if _, err := ParseValue(AttrColor, "0, 0, 0, 300"); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if s := FormatValue(AttrColor, c); s != "10, 20, 30, 255" {
		t.Fatalf("format %q", s)
	}
}

func TestParseScalarKinds(t *testing.T) {
	if v, err := ParseValue(AttrInt, " 42 "); err != nil || v != 42 {
		t.Fatalf("int: %v %v", v, err)
	}
	if v, err := ParseValue(AttrFloat, "1.5"); err != nil || v != 1.5 {
		t.Fatalf("float: %v %v", v, err)
	}
	if v, err := ParseValue(AttrBool, "true"); err != nil || v != true {
		t.Fatalf("bool: %v %v", v, err)
	}
	if v, err := ParseValue(AttrString, "hello"); err != nil || v != "hello" {
		t.Fatalf("string: %v %v", v, err)
	}
	if _, err := ParseValue(AttrInt, "x"); err == nil {
		t.Fatalf("expected int parse error")
	}
}

func TestSchemaGeometryAttrsShared(t *testing.T) {
	for _, kind := range Kinds() {
		n := mustNew(t, kind, "n")
		schema := SchemaFor(n)
		if len(schema) < 3 {
			t.Fatalf("%s: schema too small", kind)
		}
		if schema[0].Name != "name" || schema[1].Name != "position" || schema[2].Name != "size" {
			t.Fatalf("%s: unexpected schema head: %v %v %v", kind, schema[0].Name, schema[1].Name, schema[2].Name)
		}
	}
}

func TestSchemaSetAndGet(t *testing.T) {
	n := mustNew(t, "Container", "c")
	schema := SchemaFor(n)
	byName := map[string]Attr{}
	for _, a := range schema {
		byName[a.Name] = a
	}

	if err := byName["position"].Set(n, geom.Pt{X: 7, Y: 8}); err != nil {
		t.Fatalf("set position: %v", err)
	}
	if n.Pos != (geom.Pt{X: 7, Y: 8}) {
		t.Fatalf("position not written: %+v", n.Pos)
	}
	if err := byName["size"].Set(n, geom.Pt{X: 0, Y: 5}); err == nil {
		t.Fatalf("zero size must be rejected")
	}
	if err := byName["border"].Set(n, 2); err != nil {
		t.Fatalf("set border: %v", err)
	}
	if got := byName["border"].Get(n); got != 2 {
		t.Fatalf("border read back %v", got)
	}
	if err := byName["border"].Set(n, "nope"); err == nil {
		t.Fatalf("type mismatch must be rejected")
	}
}

func TestCheckBoxSchemaHasMarked(t *testing.T) {
	n := mustNew(t, "CheckBox", "cb")
	var found bool
	for _, a := range SchemaFor(n) {
		if a.Name == "marked" && a.Kind == AttrBool {
			found = true
			if err := a.Set(n, true); err != nil {
				t.Fatalf("set marked: %v", err)
			}
		}
	}
	if !found || !n.Marked {
		t.Fatalf("marked attr missing or not applied")
	}
}
