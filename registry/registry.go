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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/onex/apis"
	"dirpx.dev/onex/config"
	uref "dirpx.dev/onex/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("onex(registry): nil reflect.Type provided")
	// ErrNilCell is returned when a nil cell is provided.
	ErrNilCell = errors.New("onex(registry): nil cell provided")
	// ErrEmptyName is returned when an empty wire name is provided.
	ErrEmptyName = errors.New("onex(registry): empty name provided")
	// ErrConflictingBinding indicates an attempt to re-bind a type or wire
	// name to a different cell or name.
	ErrConflictingBinding = errors.New("onex(registry): conflicting singleton binding")
)

// New constructs a Registry that normalizes type keys according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// byType maps reflect.Type to apis.Binding.
	byType sync.Map // map[reflect.Type]apis.Binding
	// byName maps wire name to apis.Binding.
	byName sync.Map // map[string]apis.Binding
	// count tracks the number of bound entries.
	count int
}

// Bind associates the nearest named type of t with name and the cell holding
// its canonical instance. It is idempotent for the same (type,name,cell)
// triple.
func (r *registry) Bind(t reflect.Type, name string, c apis.Cell) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	if c == nil {
		return ErrNilCell
	}

	// Normalize to the nearest named type according to r.cfg.
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.byType.Load(b); ok {
		return checkRebind(old.(apis.Binding), name, c)
	}

	// Write path: guard with a mutex to keep counter and the two maps
	// consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.byType.Load(b); ok {
		return checkRebind(old.(apis.Binding), name, c)
	}
	// A second type must not claim an existing wire name.
	if _, ok := r.byName.Load(name); ok {
		return ErrConflictingBinding
	}

	nb := apis.Binding{Type: b, Name: name, Cell: c}
	r.byType.Store(b, nb)
	r.byName.Store(name, nb)
	r.count++
	return nil
}

// checkRebind resolves a Bind against an existing binding: identical
// re-binds are idempotent, anything else conflicts.
func checkRebind(old apis.Binding, name string, c apis.Cell) error {
	if old.Name == name && old.Cell == c {
		return nil // idempotent re-bind
	}
	return ErrConflictingBinding
}

// Lookup returns the binding for a type if present.
func (r *registry) Lookup(t reflect.Type) (apis.Binding, bool) {
	if t == nil {
		return apis.Binding{}, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return apis.Binding{}, false
	}
	if v, ok := r.byType.Load(nt); ok {
		return v.(apis.Binding), true
	}
	return apis.Binding{}, false
}

// LookupName returns the binding for a wire name if present.
func (r *registry) LookupName(name string) (apis.Binding, bool) {
	if name == "" {
		return apis.Binding{}, false
	}
	if v, ok := r.byName.Load(name); ok {
		return v.(apis.Binding), true
	}
	return apis.Binding{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Binding {
	entries := make([]apis.Binding, 0, r.Count())
	r.byType.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Binding))
		return true
	})
	return entries
}

// Count returns the number of bound entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all bindings.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType = sync.Map{}
	r.byName = sync.Map{}
	r.count = 0
}
