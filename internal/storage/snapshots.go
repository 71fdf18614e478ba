/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"goguieditor/internal/widget"
)

// AutosaveCrashSnapshot writes the open layout to the project backups
// directory. Called from crash recovery, so it must not assume a consistent
// manifest; it only needs the project root and the in-memory tree.
func AutosaveCrashSnapshot(projectRoot, layoutName string, root *widget.Node) (string, error) {
	if root == nil {
		return "", fmt.Errorf("no layout open")
	}
	data, err := EncodeLayout(root)
	if err != nil {
		return "", err
	}
	bdir := filepath.Join(projectRoot, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	if layoutName == "" {
		layoutName = "untitled.json"
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("crash-autosave-%s-%s", stamp, filepath.Base(layoutName)))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}
