/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndSwitch(t *testing.T) {
	if err := Init("", "en"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := T("menu.file"); got != "File" {
		t.Fatalf("en menu.file = %q", got)
	}
	if err := Switch("de"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if got := T("menu.file"); got != "Datei" {
		t.Fatalf("de menu.file = %q", got)
	}
	if Current() != "de" {
		t.Fatalf("Current = %q", Current())
	}
}

func TestFallbackToDefaultLanguageAndID(t *testing.T) {
	if err := Init("", "de"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("missing message = %q", got)
	}
	if err := Switch("fr"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	// No French catalog: falls back to the default language.
	if got := T("menu.file"); got != "File" {
		t.Fatalf("fallback menu.file = %q", got)
	}
}

func TestExtraLocalesDir(t *testing.T) {
	dir := t.TempDir()
	body := `{"menu.file": "Archivo"}`
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Init(dir, "es"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := T("menu.file"); got != "Archivo" {
		t.Fatalf("es menu.file = %q", got)
	}
	found := false
	for _, l := range Languages() {
		if l == "es" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Languages() missing es: %v", Languages())
	}
}
