/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package i18n holds the process-wide translator table. The table is built
// once by an explicit Init call and swapped by an explicit Switch call; there
// is no ambient mutation beyond that.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// DefaultLanguage is the fallback for missing translations.
const DefaultLanguage = "en"

var (
	mu        sync.RWMutex
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	current   string
	loaded    []string
)

// Init builds the translator table from the embedded locales plus any
// message files in localesDir (optional, may be empty) and selects lang.
// Must be called once at startup before T.
func Init(localesDir, lang string) error {
	mu.Lock()
	defer mu.Unlock()

	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	var langs []string
	err := fs.WalkDir(embeddedLocales, "locales", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if _, lerr := b.LoadMessageFileFS(embeddedLocales, path); lerr != nil {
			return fmt.Errorf("load embedded %s: %w", path, lerr)
		}
		langs = append(langs, langFromFileName(d.Name()))
		return nil
	})
	if err != nil {
		return err
	}
	if localesDir != "" {
		entries, err := os.ReadDir(localesDir)
		if err != nil {
			return fmt.Errorf("read locales dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			if _, lerr := b.LoadMessageFile(filepath.Join(localesDir, e.Name())); lerr != nil {
				return fmt.Errorf("load %s: %w", e.Name(), lerr)
			}
			langs = append(langs, langFromFileName(e.Name()))
		}
	}

	bundle = b
	loaded = langs
	current = lang
	localizer = goi18n.NewLocalizer(b, lang, DefaultLanguage)
	return nil
}

// Switch selects another language. The fallback chain still ends at the
// default language.
func Switch(lang string) error {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return fmt.Errorf("i18n not initialized")
	}
	current = lang
	localizer = goi18n.NewLocalizer(bundle, lang, DefaultLanguage)
	return nil
}

// Current returns the selected language tag.
func Current() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Languages returns the language tags with loaded message files.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), loaded...)
}

// T resolves a message ID in the selected language, falling back to the
// default language and finally to the ID itself.
func T(messageID string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		return messageID
	}
	s, err := l.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil || s == "" {
		return messageID
	}
	return s
}

// Tf resolves a message ID with template data.
func Tf(messageID string, data map[string]any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		return messageID
	}
	s, err := l.Localize(&goi18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil || s == "" {
		return messageID
	}
	return s
}

func langFromFileName(name string) string {
	base := strings.TrimSuffix(name, ".json")
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	return base
}
