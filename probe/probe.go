/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package probe exposes the out-of-band construction path used to exercise
// a cell's construction guard. It is a test facility: in production code
// this path should not exist at all, and it stays unreachable unless
// Config.AllowBypass is set.
package probe

import (
	"errors"

	"dirpx.dev/onex/apis"
	"dirpx.dev/onex/cell"
)

// ErrBypassDenied is returned when out-of-band construction is attempted
// without Config.AllowBypass.
var ErrBypassDenied = errors.New("onex(probe): bypass construction disallowed")

// Construct attempts to invoke c's constructor directly, outside the
// accessor path. Outcomes, all surfaced to the caller:
//
//   - cfg.AllowBypass is false: ErrBypassDenied, nothing runs.
//   - the cell already holds its instance: cell.ErrAlreadyConstructed from
//     the construction guard.
//   - the cell is still empty: a rogue instance distinct from the canonical
//     one. The cell does not adopt it; a later Get still constructs the
//     canonical instance.
func Construct[T any](c *cell.Lazy[T], cfg apis.Config) (*T, error) {
	if !cfg.AllowBypass {
		return nil, ErrBypassDenied
	}
	return c.Construct()
}
