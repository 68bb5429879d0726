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

import "reflect"

// Registry maps singleton types to their canonical cells and stable names.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Bind associates a (nearest named) reflect.Type with a stable name and
	// the cell holding its canonical instance.
	// Implementations should be idempotent; conflicting re-bindings fail.
	Bind(t reflect.Type, name string, c Cell) error
	// Lookup returns the binding for a type if present.
	Lookup(t reflect.Type) (Binding, bool)
	// LookupName returns the binding for a wire name if present.
	LookupName(name string) (Binding, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Binding
	// Count returns the number of bound entries.
	Count() int
	// Reset clears all bindings.
	Reset()
}

// Binding is a single (type, name, cell) association in a Registry snapshot.
type Binding struct {
	// Type is the bound reflect.Type (normalized).
	Type reflect.Type
	// Name is the stable wire name used by codecs.
	Name string
	// Cell holds the canonical instance for Type.
	Cell Cell
}
