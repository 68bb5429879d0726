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

import "dirpx.dev/onex/apis"

// Eager is a storage cell that is never empty: it is populated at
// construction, before any caller can observe it. Intended for package-level
// variables, where Go's init ordering guarantees the instance exists (and is
// visible to every goroutine) before main starts. There is no deferred path,
// no construction race, and no guard.
//
// Eager provides no synchronization for the held value's own mutable state;
// callers that mutate it concurrently must coordinate themselves.
type Eager[T any] struct {
	val *T
}

// Ensure Eager implements apis.Cell.
var _ apis.Cell = (*Eager[struct{}])(nil)

// NewEager returns a cell holding v. A nil v is a load-time programming
// error and panics with ErrNilInstance.
func NewEager[T any](v *T) *Eager[T] {
	if v == nil {
		panic(ErrNilInstance)
	}
	return &Eager[T]{val: v}
}

// Get returns the instance. It never fails and never returns nil.
func (c *Eager[T]) Get() *T {
	return c.val
}

// Instance returns the instance as the type-erased apis.Cell view.
func (c *Eager[T]) Instance() (any, error) {
	return c.val, nil
}

// Initialized always reports true: an Eager cell cannot be empty.
func (c *Eager[T]) Initialized() bool {
	return true
}
