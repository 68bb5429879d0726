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

package cell

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/onex/apis"
)

var (
	// ErrNilConstructor is returned when a cell has no constructor to run.
	ErrNilConstructor = errors.New("onex(cell): nil constructor provided")
	// ErrNilInstance is returned when a constructor produces a nil instance.
	ErrNilInstance = errors.New("onex(cell): constructor returned nil instance")
	// ErrAlreadyConstructed indicates a second construction attempt on an
	// already-populated cell. The attempt is rejected before any write, so
	// the canonical instance is never overwritten.
	ErrAlreadyConstructed = errors.New("onex(cell): instance already constructed")
)

// Lazy is a single-slot storage cell with deferred, exactly-once
// construction. The slot starts empty and transitions to holding one
// instance on the first Get across all goroutines; it never empties and
// never holds a second instance afterwards.
//
// Reads after construction cost a single atomic pointer load. First-time
// construction is serialized by a mutex with a re-check, so concurrent
// first callers observe a single winner and share its result.
//
// The construction guard does not inspect the slot it is populating.
// It reads a separate done flag that is set strictly after the slot is
// written, which keeps the guard's ordering explicit rather than dependent
// on evaluation order.
type Lazy[T any] struct {
	// ctor produces the instance. Run at most once per successful
	// canonical construction.
	ctor func() (*T, error)
	// val is the storage slot; non-nil only after successful construction.
	val atomic.Pointer[T]
	// done is flipped strictly after val is populated.
	done atomic.Bool
	// mu serializes construction.
	mu sync.Mutex
	// built counts successful constructor runs, canonical or rogue.
	built atomic.Uint64
}

// Ensure Lazy implements apis.Cell.
var _ apis.Cell = (*Lazy[struct{}])(nil)

// NewLazy returns an empty cell that will construct its instance with ctor
// on first Get. The constructor does not run here.
func NewLazy[T any](ctor func() (*T, error)) *Lazy[T] {
	return &Lazy[T]{ctor: ctor}
}

// Get returns the canonical instance, constructing it exactly once on the
// first call. A failed construction leaves the cell empty and is retried by
// a later Get; once construction succeeds, Get never fails.
func (c *Lazy[T]) Get() (*T, error) {
	// Fast path: acquire-load of the populated slot.
	if v := c.val.Load(); v != nil {
		return v, nil
	}
	return c.getSlow()
}

// getSlow is the contended first-access path.
func (c *Lazy[T]) getSlow() (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under lock: another goroutine may have won.
	if v := c.val.Load(); v != nil {
		return v, nil
	}

	v, err := c.constructLocked()
	if err != nil {
		return nil, err
	}

	// Two-phase publication: populate the slot, then flip the guard flag.
	c.val.Store(v)
	c.done.Store(true)
	return v, nil
}

// MustGet is like Get but panics on construction failure.
func (c *Lazy[T]) MustGet() *T {
	v, err := c.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Construct runs the guarded constructor without publishing the result.
// This is the out-of-band path that probes exercise: before first access it
// yields a rogue instance the cell does not own; after the canonical
// instance exists it fails with ErrAlreadyConstructed.
func (c *Lazy[T]) Construct() (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.constructLocked()
}

// constructLocked is the sole constructor path. The guard is its first
// statement: an already-populated cell fails instead of constructing again.
// Callers must hold c.mu.
func (c *Lazy[T]) constructLocked() (*T, error) {
	if c.done.Load() {
		return nil, ErrAlreadyConstructed
	}
	if c.ctor == nil {
		return nil, ErrNilConstructor
	}
	v, err := c.ctor()
	if err != nil {
		return nil, fmt.Errorf("onex(cell): construct: %w", err)
	}
	if v == nil {
		return nil, ErrNilInstance
	}
	c.built.Add(1)
	return v, nil
}

// Instance returns the canonical instance as the type-erased apis.Cell view.
func (c *Lazy[T]) Instance() (any, error) {
	v, err := c.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Initialized reports whether the cell holds its instance.
// It never triggers construction.
func (c *Lazy[T]) Initialized() bool {
	return c.done.Load()
}

// Constructions returns the number of successful constructor runs observed
// by the cell, including rogue runs via Construct. It starts at zero and is
// 1 for the lifetime of a well-behaved singleton.
func (c *Lazy[T]) Constructions() uint64 {
	return c.built.Load()
}
