/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a loaded layout as a wireframe document, for design
// reviews outside the editor. One unit in the layout maps to one point (PDF)
// or one pixel (PNG).
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"goguieditor/internal/widget"
)

// PDFOptions controls wireframe PDF export. Units are points; the page origin
// is top-left, matching the edit surface.
type PDFOptions struct {
	// Title is the PDF document title; defaults to the root widget name.
	Title string
	// Labels draws each widget's name inside its rectangle.
	Labels bool
	// Fill paints container backgrounds with their base color.
	Fill bool
}

// WritePDF exports the widget tree as a one-page wireframe PDF at outPath.
// The page is sized to the layout root.
func WritePDF(root *widget.Node, outPath string, opt PDFOptions) error {
	if root == nil {
		return fmt.Errorf("no layout to export")
	}
	title := opt.Title
	if title == "" {
		title = root.Name
	}
	w := float64(root.Size.W)
	h := float64(root.Size.H)

	// Points give a 1:1 mapping from layout units to the PDF.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
		OrientationStr: "",
	})
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Go GUI Editor", false)
	// Built-in Helvetica keeps labels vector without font embedding.
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
	pdf.SetLineWidth(0.5)

	origin := root.AbsolutePos()
	root.Walk(func(n *widget.Node) {
		b := n.AbsoluteBounds()
		x := float64(b.X - origin.X)
		y := float64(b.Y - origin.Y)
		bw := float64(b.W)
		bh := float64(b.H)
		style := "D"
		if opt.Fill && n.Cap() != widget.CapLeaf {
			pdf.SetFillColor(int(n.BaseColor.R), int(n.BaseColor.G), int(n.BaseColor.B))
			style = "FD"
		}
		pdf.SetDrawColor(0, 0, 0)
		pdf.Rect(x, y, bw, bh, style)
		if opt.Labels {
			pdf.SetTextColor(60, 60, 60)
			pdf.Text(x+2, y+9, fmt.Sprintf("%s (%s)", n.Name, n.Kind))
		}
	})

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
