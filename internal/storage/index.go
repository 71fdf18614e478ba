/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	applog "goguieditor/internal/log"
	"goguieditor/internal/version"
	"goguieditor/internal/widget"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores per-project ephemeral/index data under the root.
	IndexDirName  = ".gge"
	IndexFileName = "index.sqlite"

	// indexSchemaVersion tracks the local SQLite schema. Bump on breaking
	// schema changes.
	indexSchemaVersion = 1
)

// IndexPath returns the full path to the project's index database file.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, IndexDirName, IndexFileName)
}

// Index is the per-project layout/widget search index. Derived entirely from
// the layout files; deleting it is safe.
type Index struct {
	db *sql.DB
}

// OpenIndex ensures the SQLite index exists at .gge/index.sqlite, opens it,
// enables WAL mode, and creates the schema when missing.
func OpenIndex(projectRoot string) (*Index, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_open").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, IndexDirName), 0o755); err != nil {
		l.Error("create .gge dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .gge dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(IndexPath(projectRoot)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Info("index ready", slog.String("path", IndexPath(projectRoot)))
	return &Index{db: db}, nil
}

func (ix *Index) Close() error { return ix.db.Close() }

func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS layouts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			path         TEXT NOT NULL UNIQUE,
			name         TEXT NOT NULL,
			widget_count INTEGER NOT NULL,
			updated_at   TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS widgets (
			layout_id INTEGER NOT NULL REFERENCES layouts(id) ON DELETE CASCADE,
			name      TEXT NOT NULL,
			kind      TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_widgets_name ON widgets(name);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	meta := [][2]string{
		{"schema", fmt.Sprintf("%d", indexSchemaVersion)},
		{"app", "goguieditor " + version.Version},
	}
	for _, kv := range meta {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO meta(key, value) VALUES(?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("seed meta: %w", err)
		}
	}
	return nil
}

// LayoutInfo is one indexed layout file.
type LayoutInfo struct {
	Path        string
	Name        string
	WidgetCount int
	UpdatedAt   time.Time
}

// WidgetHit is one widget-name search result.
type WidgetHit struct {
	LayoutPath string
	Name       string
	Kind       string
}

// IndexLayout records (or refreshes) a layout and its widget names. Runs in
// one transaction; the previous widget rows for the layout are replaced.
func (ix *Index) IndexLayout(ctx context.Context, path string, root *widget.Node) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	root.Walk(func(*widget.Node) { count++ })

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO layouts(path, name, widget_count, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET name=excluded.name,
		   widget_count=excluded.widget_count, updated_at=excluded.updated_at;`,
		path, filepath.Base(path), count, now); err != nil {
		return fmt.Errorf("upsert layout: %w", err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM layouts WHERE path = ?;`, path).Scan(&id); err != nil {
		return fmt.Errorf("layout id: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM widgets WHERE layout_id = ?;`, id); err != nil {
		return fmt.Errorf("clear widgets: %w", err)
	}
	var werr error
	root.Walk(func(n *widget.Node) {
		if werr != nil {
			return
		}
		_, werr = tx.ExecContext(ctx,
			`INSERT INTO widgets(layout_id, name, kind) VALUES(?, ?, ?);`, id, n.Name, n.Kind)
	})
	if werr != nil {
		return fmt.Errorf("insert widgets: %w", werr)
	}
	return tx.Commit()
}

// RemoveLayout drops a layout and its widgets from the index.
func (ix *Index) RemoveLayout(ctx context.Context, path string) error {
	_, err := ix.db.ExecContext(ctx, `DELETE FROM layouts WHERE path = ?;`, path)
	return err
}

// RecentLayouts returns indexed layouts, most recently updated first.
func (ix *Index) RecentLayouts(ctx context.Context, limit int) ([]LayoutInfo, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := ix.db.QueryContext(ctx,
		`SELECT path, name, widget_count, updated_at FROM layouts
		 ORDER BY updated_at DESC, path ASC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()
	var out []LayoutInfo
	for rows.Next() {
		var li LayoutInfo
		var ts string
		if err := rows.Scan(&li.Path, &li.Name, &li.WidgetCount, &ts); err != nil {
			return nil, err
		}
		li.UpdatedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, li)
	}
	return out, rows.Err()
}

// SearchWidgets finds widgets whose name contains the query, case-insensitive.
func (ix *Index) SearchWidgets(ctx context.Context, query string) ([]WidgetHit, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	rows, err := ix.db.QueryContext(ctx,
		`SELECT l.path, w.name, w.kind FROM widgets w
		 JOIN layouts l ON l.id = w.layout_id
		 WHERE w.name LIKE '%' || ? || '%' COLLATE NOCASE
		 ORDER BY l.path, w.name;`, q)
	if err != nil {
		return nil, fmt.Errorf("query widgets: %w", err)
	}
	defer rows.Close()
	var out []WidgetHit
	for rows.Next() {
		var h WidgetHit
		if err := rows.Scan(&h.LayoutPath, &h.Name, &h.Kind); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
