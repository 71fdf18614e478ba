/*
 * Copyright (c) 2026 the Go GUI Editor authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"errors"
	"fmt"

	"goguieditor/internal/storage"
	"goguieditor/internal/widget"
)

// ParseError reports property text that does not parse to its attribute's
// value kind. Swallowed during live edits, surfaced on commit.
type ParseError struct {
	Attr string
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("attribute %s: cannot apply %q: %v", e.Attr, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage maps any error surfaced by editor operations onto a short
// user-facing message. Every error here is recoverable; none ends the
// session.
func UserMessage(err error) string {
	var pe *ParseError
	var se *storage.SchemaError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &pe):
		return fmt.Sprintf("Value %q is not valid for %s.", pe.Text, pe.Attr)
	case errors.As(err, &se):
		return fmt.Sprintf("Layout %s does not match the layout schema: %s.", se.Path, se.First())
	case errors.Is(err, storage.ErrFileNotFound):
		return "The layout file could not be found."
	case errors.Is(err, storage.ErrMalformedMarkup):
		return "The layout file is not well-formed and could not be read."
	case errors.Is(err, widget.ErrInvalidParent):
		return "The selected widget cannot contain other widgets."
	default:
		return err.Error()
	}
}
