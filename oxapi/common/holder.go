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

// Holder is the type-erased view of a single-slot instance holder, as seen
// by extension authors integrating with the onex lifecycle subsystem.
//
// # Overview
//
// A Holder owns the canonical instance of exactly one logical type for the
// lifetime of the process. It is either empty (never yet observed by any
// caller) or holds exactly one instance; once non-empty it never becomes
// empty and never holds a second instance.
//
// Holder deliberately mirrors the core's cell contract without importing
// it, so out-of-tree binaries can implement custom holders (for example,
// holders that hydrate from a sidecar or a test fixture) and bind them into
// a registry.
//
// # Contract
//
//   - Instance MUST construct at most once across all goroutines;
//     concurrent first callers MUST observe a single winner.
//   - After a successful construction, Instance MUST always return the same
//     value by identity and MUST NOT fail.
//   - Initialized MUST NOT trigger construction.
//   - All methods MUST be safe for concurrent use.
type Holder interface {
	// Instance returns the canonical instance held by the holder,
	// constructing it first if the holder defers construction.
	Instance() (any, error)
	// Initialized reports whether the holder already holds its instance.
	Initialized() bool
}
