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

package outcome

import (
	"fmt"
	"strings"
)

// Outcome classifies the result of a construction-bypass probe.
//
// # Overview
//
// Outcome is a small enumerated type that describes what happened when a
// harness attempted to invoke a singleton's constructor outside the
// accessor path. Harnesses and reporting tools use it to label probe
// results in logs and summaries.
//
// Outcome is intentionally minimal: it classifies the result, it does not
// carry the rogue instance or the underlying error. Those travel alongside
// it in whatever report structure the harness uses.
//
// # Values
//
// The following outcomes are defined:
//
//   - Denied  — the bypass path itself was disallowed; no constructor ran.
//   - Guarded — the construction guard rejected the attempt because the
//     canonical instance already exists.
//   - Rogue   — the attempt succeeded and produced a second, non-canonical
//     instance, distinct by identity from the accessor's result.
//
// # Contract
//
//   - Probe implementations MUST map every bypass attempt to exactly one
//     Outcome; an attempt MUST NOT be swallowed unreported.
//   - Outcome values MUST be safe to use concurrently across goroutines
//     (they are plain integers).
type Outcome int

const (
	// Denied indicates the bypass facility was disabled: the attempt was
	// rejected before any constructor code ran.
	Denied Outcome = iota

	// Guarded indicates the construction guard fired: the canonical
	// instance already existed and the attempt failed without a write.
	Guarded

	// Rogue indicates the attempt ran the constructor and produced a
	// second instance. The canonical storage never adopts a rogue
	// instance; reports MUST surface its distinct identity.
	Rogue
)

// String returns a human-readable representation of the Outcome value.
//
// For all defined enum values, the returned strings are stable:
//
//   - Denied  -> "Denied"
//   - Guarded -> "Guarded"
//   - Rogue   -> "Rogue"
//
// For unknown or out-of-range values, String returns a diagnostic form
// "Unknown(<n>)". This behavior is intentional and MUST NOT panic, so that
// corrupted values can still be surfaced safely in logs.
func (o Outcome) String() string {
	switch o {
	case Denied:
		return "Denied"
	case Guarded:
		return "Guarded"
	case Rogue:
		return "Rogue"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// Parse parses a textual representation of an Outcome.
//
// Parse accepts the same canonical tokens that are produced by
// Outcome.String() for known values, with case-insensitive matching and
// optional surrounding whitespace. Any other input results in a non-nil
// error; callers MUST NOT rely on the returned Outcome in the error case.
// Parse MUST NOT panic for any input.
func Parse(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "denied":
		return Denied, nil
	case "guarded":
		return Guarded, nil
	case "rogue":
		return Rogue, nil
	default:
		return Denied, fmt.Errorf("outcome: unknown probe outcome %q", s)
	}
}
