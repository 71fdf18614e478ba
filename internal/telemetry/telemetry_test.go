/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDisabledByDefault(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("telemetry must be opt-in")
	}
	// Must be a silent no-op.
	c.Event("editor_started", nil)
}

func TestOptInWithoutURLStaysDisabled(t *testing.T) {
	c := New(Config{OptIn: true})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("opt-in without endpoint must stay disabled")
	}
}

func TestEventDelivery(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		got.Store(payload)
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()
	c.Event("layout_opened", map[string]any{"widgets": 4})
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for got.Load() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	payload, _ := got.Load().(map[string]any)
	if payload == nil {
		t.Fatalf("event not delivered")
	}
	if payload["name"] != "layout_opened" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload["widgets"] != float64(4) {
		t.Fatalf("props lost: %+v", payload)
	}
}

func TestUploadCrashRespectsOptIn(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	off := New(Config{OptIn: false, CrashURL: srv.URL, Timeout: time.Second})
	defer off.Close()
	off.UploadCrash([]byte("report"))
	if hits.Load() != 0 {
		t.Fatalf("crash upload without opt-in")
	}

	on := New(Config{OptIn: true, CrashURL: srv.URL, Timeout: time.Second})
	defer on.Close()
	on.UploadCrash([]byte("report"))
	if hits.Load() != 1 {
		t.Fatalf("crash upload missing, hits=%d", hits.Load())
	}
}
