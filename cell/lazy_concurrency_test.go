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

package cell_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/onex/cell"
)

// TestConcurrentFirstAccess_SingleWinner races many goroutines into the
// first Get and verifies they all observe one identity and exactly one
// construction.
func TestConcurrentFirstAccess_SingleWinner(t *testing.T) {
	var runs atomic.Int32
	c := cell.NewLazy(func() (*widget, error) {
		runs.Add(1)
		return &widget{serial: 1}, nil
	})

	const workers = 10
	var (
		start sync.WaitGroup
		done  sync.WaitGroup
		gate  = make(chan struct{})
		seen  [workers]*widget
	)

	start.Add(workers)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			start.Done()
			<-gate // line everyone up on the same first access
			v, err := c.Get()
			if err != nil {
				t.Errorf("worker %d: Get failed: %v", i, err)
				return
			}
			seen[i] = v
		}(i)
	}
	start.Wait()
	close(gate)
	done.Wait()

	first := seen[0]
	if first == nil {
		t.Fatal("worker 0 recorded no instance")
	}
	for i, v := range seen {
		if v != first {
			t.Fatalf("worker %d observed a different identity", i)
		}
	}
	if n := runs.Load(); n != 1 {
		t.Fatalf("constructor ran %d times under contention, want 1", n)
	}
	if n := c.Constructions(); n != 1 {
		t.Fatalf("Constructions() = %d, want 1", n)
	}
}

// TestConcurrentReadsAfterConstruction hammers the post-construction read
// path together with Initialized/Constructions probes. Must be race-free.
func TestConcurrentReadsAfterConstruction(t *testing.T) {
	c := cell.NewLazy(func() (*widget, error) { return &widget{serial: 9}, nil })
	canonical, err := c.Get()
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				v, err := c.Get()
				if err != nil || v != canonical {
					t.Errorf("read path diverged: v=%p err=%v", v, err)
					return
				}
				_ = c.Initialized()
				_ = c.Constructions()
			}
		}()
	}
	wg.Wait()
}

// TestConcurrentConstructAndGet races the out-of-band path against normal
// accessors. Every attempt must resolve to a reported outcome: the guard
// error, a rogue instance, or the canonical one. The cell must end up with
// exactly one canonical identity regardless.
func TestConcurrentConstructAndGet(t *testing.T) {
	c := cell.NewLazy(func() (*widget, error) { return &widget{}, nil })

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			if _, err := c.Get(); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			// Either a rogue instance or the guard error; both are fine,
			// neither may corrupt the cell.
			_, _ = c.Construct()
		}()
	}
	wg.Wait()

	v1, err := c.Get()
	if err != nil {
		t.Fatalf("final Get: %v", err)
	}
	v2, err := c.Get()
	if err != nil {
		t.Fatalf("final Get: %v", err)
	}
	if v1 != v2 {
		t.Fatal("canonical identity not stable after mixed contention")
	}
}
