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

package apis

// Cell is the type-erased view of a single-slot instance holder. A cell
// owns the canonical instance of exactly one logical type for the lifetime
// of the process: once populated, it never becomes empty and never holds a
// second instance.
// Implementations must be safe for concurrent use.
type Cell interface {
	// Instance returns the canonical instance held by the cell, constructing
	// it first if the cell defers construction. Construction happens at most
	// once; concurrent first callers observe a single winner.
	Instance() (any, error)
	// Initialized reports whether the cell already holds its instance.
	// It never triggers construction.
	Initialized() bool
}

// Canonicalizer is the identity-preservation hook consulted when a decoded
// value must be folded back onto its canonical instance. Lazily-constructed
// singletons opt into serialization by implementing it; the returned value
// replaces the freshly decoded copy.
type Canonicalizer interface {
	// Canonical returns the canonical instance for the receiver's type.
	Canonical() (any, error)
}
