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

package common

// Canonicalizer preserves singleton identity across deserialization.
//
// # Overview
//
// Canonicalizer is the explicit opt-in hook for lazily-constructed
// singletons inside the onex lifecycle subsystem. When a freshly decoded
// value implements Canonicalizer, resolution logic MUST prefer this
// interface and MUST NOT attempt any additional strategies (such as
// registry lookups) for that value: the decoded copy is discarded and the
// hook's result takes its place.
//
// Semantically, Canonicalizer is a type-level contract: Canonical returns
// the one process-wide instance for the receiver's type, regardless of the
// receiver's own (decoded) state. The result is expected to be the same
// object, by identity, that the type's accessor would return at the time
// of the call.
//
// # Performance
//
// Implementations are intended to be cheap:
//
//   - SHOULD be a single accessor call (typically a cell read).
//   - MUST NOT perform blocking operations or I/O beyond whatever the
//     type's own first-time construction requires.
//   - MUST be safe to call from multiple goroutines concurrently.
//
// # Usage
//
// Typical usage forwards to the type's storage cell:
//
//	var appState = cell.NewLazy(newAppState)
//
//	func (*AppState) Canonical() (any, error) {
//	    return appState.Get()
//	}
//
// # Contract
//
//   - Canonical MUST return the canonical instance or a non-nil error;
//     it MUST NOT fabricate a second instance.
//   - Repeated calls MUST return the same instance by identity once
//     construction has succeeded.
//   - If the canonical instance cannot be produced (construction failure),
//     implementations MUST surface the error rather than fall back to the
//     decoded copy.
type Canonicalizer interface {
	// Canonical returns the canonical instance for the receiver's type.
	Canonical() (any, error)
}
