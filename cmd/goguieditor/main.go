/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"goguieditor/internal/crash"
	"goguieditor/internal/export"
	applog "goguieditor/internal/log"
	"goguieditor/internal/storage"
	"goguieditor/internal/ui"
	"goguieditor/internal/version"
)

func usage() {
	fmt.Println("Go GUI Editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  goguieditor version|-v|--version              Show version")
	fmt.Println("  goguieditor init <dir> <name>                 Create a new project at <dir> with name <name>")
	fmt.Println("  goguieditor open <dir>                        Open project at <dir> and print summary")
	fmt.Println("  goguieditor index <dir>                       Rebuild the project's layout index")
	fmt.Println("  goguieditor export-pdf <layout.json> <out>    Export a layout as a wireframe PDF")
	fmt.Println("  goguieditor export-png <layout.json> <out>    Export a layout as a wireframe PNG")
	fmt.Println("  goguieditor ui [<dir>]                        Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph, nil) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go GUI Editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			name := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init project", slog.String("root", abs), slog.String("name", name))
			h, err := storage.InitProject(abs, storage.Project{Name: name})
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Println("Created project at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open project", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Printf("Opened project: %s\n", h.Project.Name)
			fmt.Printf("Layouts: %d\n", len(h.Project.Layouts))
			fmt.Println("Root:", h.Root)
			return
		case "index":
			if len(args) < 3 {
				fmt.Println("index requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			if err := rebuildIndex(h); err != nil {
				l.Error("index failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Indexed %d layout(s) into %s\n", len(h.Project.Layouts), storage.IndexPath(h.Root))
			return
		case "export-pdf", "export-png":
			if len(args) < 4 {
				fmt.Printf("%s requires <layout.json> and <out>\n", args[1])
				usage()
				os.Exit(2)
			}
			root, err := storage.LoadLayout(args[2])
			if err != nil {
				l.Error("load layout failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if args[1] == "export-pdf" {
				err = export.WritePDF(root, args[3], export.PDFOptions{Labels: true, Fill: true})
			} else {
				err = export.WritePNG(root, args[3], export.PNGOptions{Scale: 1, Labels: true})
			}
			if err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", args[3])
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

func rebuildIndex(ph *storage.ProjectHandle) error {
	idx, err := storage.OpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := idx.Close(); cerr != nil {
			applog.WithComponent("cli").Warn("index close failed", slog.Any("err", cerr))
		}
	}()
	ctx := context.Background()
	for _, name := range ph.Project.Layouts {
		path := ph.LayoutPath(name)
		root, err := storage.LoadLayout(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if err := idx.IndexLayout(ctx, path, root); err != nil {
			return fmt.Errorf("index %s: %w", name, err)
		}
	}
	return nil
}
