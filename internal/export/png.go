/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"goguieditor/internal/widget"
)

// PNGOptions controls wireframe PNG export.
type PNGOptions struct {
	// Scale multiplies layout units to pixels; 0 means 1.
	Scale int
	// Labels draws each widget's name caption.
	Labels bool
}

// WritePNG exports the widget tree as a raster wireframe at outPath.
func WritePNG(root *widget.Node, outPath string, opt PNGOptions) error {
	if root == nil {
		return fmt.Errorf("no layout to export")
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, root.Size.W*scale, root.Size.H*scale))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	origin := root.AbsolutePos()
	root.Walk(func(n *widget.Node) {
		b := n.AbsoluteBounds()
		r := image.Rect(
			(b.X-origin.X)*scale,
			(b.Y-origin.Y)*scale,
			(b.X-origin.X+b.W)*scale,
			(b.Y-origin.Y+b.H)*scale,
		)
		if n.Cap() != widget.CapLeaf {
			fill := color.RGBA{R: n.BaseColor.R, G: n.BaseColor.G, B: n.BaseColor.B, A: 255}
			draw.Draw(img, r.Inset(1), image.NewUniform(fill), image.Point{}, draw.Src)
		}
		strokeRect(img, r, color.RGBA{A: 255})
		if opt.Labels {
			drawCaption(img, r.Min.X+2, r.Min.Y+10, n.Name)
		}
	})

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func drawCaption(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
