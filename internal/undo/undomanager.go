/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot is an opaque serialized layout state. Size is estimated as
// len(Blob); TS is when it was captured.
type Snapshot struct {
	Layout string
	Blob   []byte
	TS     time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; oldest entries are pruned when exceeded.
	MaxBytes int
	// MaxPerLayout limits snapshots kept per layout (0 means unlimited).
	MaxPerLayout int
	// MinInterval coalesces snapshots captured within the interval for the
	// same layout, replacing the previous one instead of pushing a new entry.
	MinInterval time.Duration
}

// Manager keeps in-memory undo/redo stacks per layout path. The undo stack
// holds states as they were before each recorded mutation; Undo and Redo swap
// the caller's current state onto the opposite stack, so walking back and
// forth is lossless. Safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo map[string][]Snapshot
	redo map[string][]Snapshot

	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// Record pushes the pre-mutation state for a layout. A record within
// MinInterval of the previous one on the same layout replaces it, so rapid
// edit bursts coalesce into one undo step. Any record invalidates the
// layout's redo stack.
func (m *Manager) Record(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.Layout]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			m.totalBytes += len(s.Blob) - len(last.Blob)
			stack[n-1] = s
			m.undo[s.Layout] = stack
			m.redo[s.Layout] = nil
			m.enforceCapsLocked(s.Layout)
			return
		}
	}
	m.undo[s.Layout] = append(stack, s)
	m.totalBytes += len(s.Blob)
	m.redo[s.Layout] = nil
	m.enforceCapsLocked(s.Layout)
}

// Undo pops the most recent recorded state for the layout and stores current
// on the redo stack. Returns false when there is nothing to undo.
func (m *Manager) Undo(layout string, current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[layout]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[layout] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[layout] = append(m.redo[layout], Snapshot{Layout: layout, Blob: current, TS: time.Now()})
	return s, true
}

// Redo pops the most recently undone state and stores current back on the
// undo stack.
func (m *Manager) Redo(layout string, current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[layout]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[layout] = r[:len(r)-1]
	m.undo[layout] = append(m.undo[layout], Snapshot{Layout: layout, Blob: current, TS: time.Now()})
	m.totalBytes += len(current)
	m.enforceCapsLocked(layout)
	return s, true
}

// CanUndo reports whether the layout has recorded states.
func (m *Manager) CanUndo(layout string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo[layout]) > 0
}

// CanRedo reports whether the layout has undone states.
func (m *Manager) CanRedo(layout string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo[layout]) > 0
}

// ClearLayout drops both stacks for a layout to free memory.
func (m *Manager) ClearLayout(layout string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[layout] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, layout)
	delete(m.redo, layout)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, layouts int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	layouts = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, layouts, totalSnapshots
}

func (m *Manager) enforceCapsLocked(layout string) {
	if m.cfg.MaxPerLayout > 0 {
		stack := m.undo[layout]
		if len(stack) > m.cfg.MaxPerLayout {
			toDrop := len(stack) - m.cfg.MaxPerLayout
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[layout] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune oldest across all layouts.
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		oldest := ""
		found := false
		var oldestTS time.Time
		for key, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if !found || stack[0].TS.Before(oldestTS) {
				oldest = key
				found = true
				oldestTS = stack[0].TS
			}
		}
		if !found {
			break
		}
		stack := m.undo[oldest]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldest] = stack[1:]
		if len(m.undo[oldest]) == 0 {
			delete(m.undo, oldest)
		}
	}
}
