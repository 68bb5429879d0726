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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/onex/cell"
	"dirpx.dev/onex/config"
	"dirpx.dev/onex/registry"
)

type T1 struct{}
type T2 struct{}

func newCell[T any]() *cell.Lazy[T] {
	return cell.NewLazy(func() (*T, error) { return new(T), nil })
}

func TestBind_IdempotentAndLookup(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	c := newCell[T1]()

	// pointer -> nearest named = T1
	err := reg.Bind(reflect.TypeOf(&T1{}), "domain.t1", c)
	if err != nil {
		t.Fatalf("Bind(&T1{}): unexpected error: %v", err)
	}
	// idempotent re-bind with the same name and cell
	if err := reg.Bind(reflect.TypeOf(&T1{}), "domain.t1", c); err != nil {
		t.Fatalf("Bind(&T1{}) idempotent: unexpected error: %v", err)
	}

	// lookup by exact type
	if b, ok := reg.Lookup(reflect.TypeOf(&T1{})); !ok || b.Name != "domain.t1" || b.Cell != c {
		t.Fatalf("Lookup(&T1{}): got (%+v,%v), want (domain.t1,true)", b, ok)
	}
	// lookup by elem/slice/etc should hit the same base
	if b, ok := reg.Lookup(reflect.TypeOf([]T1{})); !ok || b.Name != "domain.t1" {
		t.Fatalf("Lookup([]T1{}): got (%+v,%v), want (domain.t1,true)", b, ok)
	}
	// lookup by wire name
	if b, ok := reg.LookupName("domain.t1"); !ok || b.Cell != c {
		t.Fatalf("LookupName: got (%+v,%v), want cell binding", b, ok)
	}

	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestBind_Conflicts(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	c1 := newCell[T1]()

	if err := reg.Bind(reflect.TypeOf(&T1{}), "domain.t1", c1); err != nil {
		t.Fatalf("Bind: unexpected error: %v", err)
	}

	// Same normalized type, different name -> conflict.
	err := reg.Bind(reflect.TypeOf([]*T1{}), "other.name", c1)
	if !errors.Is(err, registry.ErrConflictingBinding) {
		t.Fatalf("rename: expected ErrConflictingBinding, got: %v", err)
	}

	// Same type and name, different cell -> conflict.
	err = reg.Bind(reflect.TypeOf(&T1{}), "domain.t1", newCell[T1]())
	if !errors.Is(err, registry.ErrConflictingBinding) {
		t.Fatalf("recell: expected ErrConflictingBinding, got: %v", err)
	}

	// A second type must not claim an existing wire name.
	err = reg.Bind(reflect.TypeOf(&T2{}), "domain.t1", newCell[T2]())
	if !errors.Is(err, registry.ErrConflictingBinding) {
		t.Fatalf("name steal: expected ErrConflictingBinding, got: %v", err)
	}
}

func TestBind_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	c := newCell[T1]()

	if err := reg.Bind(nil, "x", c); !errors.Is(err, registry.ErrNilType) {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Bind(reflect.TypeOf(&T1{}), "", c); !errors.Is(err, registry.ErrEmptyName) {
		t.Fatalf("empty name: want ErrEmptyName, got %v", err)
	}
	if err := reg.Bind(reflect.TypeOf(&T1{}), "x", nil); !errors.Is(err, registry.ErrNilCell) {
		t.Fatalf("nil cell: want ErrNilCell, got %v", err)
	}
}

func TestBind_MaxUnwrapLimit(t *testing.T) {
	// Set MaxUnwrap = 1 so **T1 fails to reach the named type.
	cfg := config.DefaultConfig()
	cfg.MaxUnwrap = 1
	reg := registry.New(cfg)

	type PtrPtrT1 = **T1
	var x PtrPtrT1
	if err := reg.Bind(reflect.TypeOf(x), "domain.t1", newCell[T1]()); err == nil {
		t.Fatal("MaxUnwrap=1: expected normalization error, got nil")
	}

	// With enough unwraps it should succeed.
	cfg2 := config.DefaultConfig()
	cfg2.MaxUnwrap = 8
	reg2 := registry.New(cfg2)
	if err := reg2.Bind(reflect.TypeOf(x), "domain.t1", newCell[T1]()); err != nil {
		t.Fatalf("MaxUnwrap=8: unexpected error: %v", err)
	}
}

func TestEntriesAndReset(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	if err := reg.Bind(reflect.TypeOf(T1{}), "domain.t1", newCell[T1]()); err != nil {
		t.Fatalf("Bind T1: %v", err)
	}
	if err := reg.Bind(reflect.TypeOf(T2{}), "domain.t2", newCell[T2]()); err != nil {
		t.Fatalf("Bind T2: %v", err)
	}

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d bindings, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Cell == nil || e.Name == "" || e.Type == nil {
			t.Fatalf("incomplete binding in snapshot: %+v", e)
		}
	}

	reg.Reset()
	if reg.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", reg.Count())
	}
	if _, ok := reg.Lookup(reflect.TypeOf(T1{})); ok {
		t.Fatal("Lookup succeeded after Reset")
	}
	if _, ok := reg.LookupName("domain.t1"); ok {
		t.Fatal("LookupName succeeded after Reset")
	}
}
