/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements project persistence and indexing.
// It handles create/open/save for the YAML project manifest (project.yaml)
// with transactional writes and timestamped backups, and the declarative JSON
// layout files validated against an embedded JSON Schema.
// It also manages the per-project embedded SQLite index at
// <project>/.gge/index.sqlite used for layout search and the recent list.
// The index is derived from the layout files and is rebuildable by design.
package storage
