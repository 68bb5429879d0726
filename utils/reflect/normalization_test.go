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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/onex/apis"
	uref "dirpx.dev/onex/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		MaxUnwrap:    8,
		StrictDecode: true, // unused by Normalize itself, harmless to pass
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_BasicContainers(t *testing.T) {
	conf := cfg()

	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"slice", reflect.TypeOf([]A{}), reflect.TypeOf(A{})},
		{"array", reflect.TypeOf([2]A{}), reflect.TypeOf(A{})},
		{"chan", reflect.TypeOf((chan A)(nil)), reflect.TypeOf(A{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_MapPrefersElem(t *testing.T) {
	// map[string]A: elem is A (named), so the element wins over the key.
	got, err := uref.Normalize(reflect.TypeOf(map[string]A{}), cfg())
	if err != nil {
		t.Fatalf("Normalize(map[string]A): %v", err)
	}
	if got != reflect.TypeOf(A{}) {
		t.Fatalf("Normalize(map[string]A) = %v, want A", got)
	}
}

func TestNormalize_MapUnnamedElemFallsBackToKey(t *testing.T) {
	// map[string]struct{X int}: elem is anonymous, so the named key wins.
	type Anon = struct{ X int }
	got, err := uref.Normalize(reflect.TypeOf(map[string]Anon{}), cfg())
	if err != nil {
		t.Fatalf("Normalize(map[string]Anon): %v", err)
	}
	if got != reflect.TypeOf("") {
		t.Fatalf("Normalize(map[string]Anon) = %v, want string", got)
	}
}

func TestNormalize_GenericInstantiation(t *testing.T) {
	conf := cfg()

	gt, err := uref.Normalize(reflect.TypeOf(G[int]{}), conf)
	if err != nil {
		t.Fatalf("Normalize(G[int]{}): %v", err)
	}
	// Implementation detail of Type.Name() may keep params; ensure the type is named.
	if gt == nil || gt.Name() == "" {
		t.Fatalf("Normalize(G[int]{}) returned unnamed or nil type: %v", gt)
	}

	wt, err := uref.Normalize(reflect.TypeOf(W[G[int]]{}), conf)
	if err != nil {
		t.Fatalf("Normalize(W[G[int]]{}): %v", err)
	}
	if wt == nil || wt.Name() == "" {
		t.Fatalf("Normalize(W[G[int]]{}) returned unnamed or nil type: %v", wt)
	}
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	// **A with low MaxUnwrap should fail, with larger MaxUnwrap should succeed.
	type PP = **A
	tPP := reflect.TypeOf((*PP)(nil)).Elem() // the **A type itself

	// Tight limit -> expect an error.
	if _, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); err == nil {
		t.Fatalf("MaxUnwrap=1: expected error, got nil")
	}

	// Wide limit -> expect success.
	if got, err := uref.Normalize(tPP, cfg(func(c *apis.Config) { c.MaxUnwrap = 8 })); err != nil || got != reflect.TypeOf(A{}) {
		t.Fatalf("MaxUnwrap=8: got (%v,%v), want (A,nil)", got, err)
	}
}

func TestNormalize_Errors(t *testing.T) {
	// Nil type -> error.
	if _, err := uref.Normalize(nil, cfg()); err == nil {
		t.Fatalf("nil type: expected error, got nil")
	}

	// Anonymous struct -> error (no nearest named type).
	var anon = struct{ X int }{}
	if _, err := uref.Normalize(reflect.TypeOf(anon), cfg()); err == nil {
		t.Fatalf("anonymous struct: expected error, got nil")
	}
}

// This test stresses Normalize concurrently to smoke-test thread safety of the logic
// (Normalize should be pure; no shared state is mutated here).
func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(W[G[int]]{}),
		reflect.TypeOf(0),
	}
	conf := cfg()

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)

	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				tt := types[i%len(types)]
				rt, err := uref.Normalize(tt, conf)
				if err != nil {
					errCh <- err
					return
				}
				if rt == nil || rt.Name() == "" {
					errCh <- errors.New("got unnamed or nil type")
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatal(e)
	}
}

func BenchmarkNormalize_ByType(b *testing.B) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(W[G[int]]{}),
		reflect.TypeOf(0),
	}
	conf := cfg()

	// Warm-up to exercise paths.
	for _, t0 := range types {
		_, _ = uref.Normalize(t0, conf)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = uref.Normalize(types[i%len(types)], conf)
	}
}
