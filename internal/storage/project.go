/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ManifestFileName = "project.yaml"
	BackupsDirName   = "backups"
	LayoutsDirName   = "layouts"
)

var standardSubDirs = []string{
	LayoutsDirName,
	"assets",
	"exports",
	BackupsDirName,
}

// Project is the manifest of an editor project: a named collection of layout
// files under one directory.
type Project struct {
	Version  int      `yaml:"version"`
	Name     string   `yaml:"name"`
	Settings Settings `yaml:"settings"`
	Layouts  []string `yaml:"layouts"`
}

// Settings holds per-project editor settings.
type Settings struct {
	LayoutDir string `yaml:"layout_dir"`
	Language  string `yaml:"language,omitempty"`
}

// ProjectHandle tracks the project state loaded/saved from disk. Root is the
// project directory containing project.yaml and subfolders.
type ProjectHandle struct {
	Root         string
	ManifestPath string
	Project      Project
}

// LayoutPath returns the path of a named layout file inside the project.
func (ph *ProjectHandle) LayoutPath(name string) string {
	dir := ph.Project.Settings.LayoutDir
	if dir == "" {
		dir = LayoutsDirName
	}
	return filepath.Join(ph.Root, dir, name)
}

// InitProject creates a new project directory at root (creating it if it
// doesn't exist), scaffolds the standard subfolders, and writes the manifest
// transactionally.
func InitProject(root string, proj Project) (*ProjectHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create project root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	if proj.Version == 0 {
		proj.Version = 1
	}
	if proj.Settings.LayoutDir == "" {
		proj.Settings.LayoutDir = LayoutsDirName
	}
	ph := &ProjectHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Project:      proj,
	}
	if err := Save(ph); err != nil {
		return nil, err
	}
	return ph, nil
}

// Open loads an existing project from the given root directory. If the
// current manifest cannot be read or parsed, the latest backup is tried.
func Open(root string) (*ProjectHandle, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		proj, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &ProjectHandle{Root: root, ManifestPath: mpath, Project: *proj}, nil
	}
	var p Project
	if uerr := yaml.Unmarshal(b, &p); uerr != nil {
		proj, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse manifest: %w; backup attempt: %v", uerr, berr)
		}
		return &ProjectHandle{Root: root, ManifestPath: mpath, Project: *proj}, nil
	}
	return &ProjectHandle{Root: root, ManifestPath: mpath, Project: p}, nil
}

// Save writes the manifest to disk with transactional semantics and a
// timestamped backup of the previous manifest (if present).
func Save(ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if ph.Root == "" || ph.ManifestPath == "" {
		return errors.New("invalid ProjectHandle: missing paths")
	}
	data, err := yaml.Marshal(ph.Project)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	bdir := filepath.Join(ph.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	if _, statErr := os.Stat(ph.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp)
		if cerr := copyFile(ph.ManifestPath, filepath.Join(bdir, bname)); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	if err := replaceFile(ph.ManifestPath, data); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// AddLayout records a layout file name in the manifest if not already listed.
func AddLayout(ph *ProjectHandle, name string) error {
	for _, l := range ph.Project.Layouts {
		if l == name {
			return nil
		}
	}
	ph.Project.Layouts = append(ph.Project.Layouts, name)
	return Save(ph)
}

func openFromLatestBackup(root string) (*Project, error) {
	bdir := filepath.Join(root, BackupsDirName)
	entries, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, ManifestFileName+".") && strings.HasSuffix(n, ".bak") {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no manifest backups found")
	}
	sort.Strings(names)
	latest := filepath.Join(bdir, names[len(names)-1])
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", latest, err)
	}
	var p Project
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse backup %s: %w", latest, err)
	}
	return &p, nil
}

// replaceFile writes data to a temp file in the target's directory, syncs it,
// and renames it over the target.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return err
	}
	// On Windows, rename does not replace an existing destination.
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return err
	}
	return nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
