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

// Package demo declares the toy singletons the onexdemo harness pokes at.
// It only consumes the public onex surface; nothing here reaches into
// lifecycle internals.
package demo

import (
	"dirpx.dev/onex"
	"dirpx.dev/onex/cell"
)

// Profile is the eagerly-held singleton: process-wide mutable demo state,
// populated at package init before any caller can observe it.
//
// The Name field is shared and unsynchronized; concurrent mutation is a
// documented weakness of this demo type, not something the cell papers over.
type Profile struct {
	Name string
}

// GetName returns the shared name.
func (p *Profile) GetName() string { return p.Name }

// SetName overwrites the shared name, visible to every holder of the
// instance.
func (p *Profile) SetName(name string) { p.Name = name }

// Heavy returns the profile's auxiliary report. The report is itself
// constructed lazily and exactly once, independent of the profile's own
// eager construction.
func (p *Profile) Heavy() (*HeavyReport, error) { return heavy.Get() }

// HeavyReport stands in for a resource too expensive to build at load time.
type HeavyReport struct {
	Rows int64
}

// Tracker is the lazily-constructed singleton: nothing runs until the first
// TrackerInstance call.
type Tracker struct {
	Label string
}

// Canonical opts Tracker into identity-preserving deserialization: a
// decoded Tracker is discarded in favor of the canonical instance.
func (*Tracker) Canonical() (any, error) { return tracker.Get() }

// Scratch deliberately opts into nothing: it has no binding and no hook,
// so encoding it must fail. The harness uses it to show the failure mode.
type Scratch struct {
	Note string
}

var (
	profile = cell.NewEager(&Profile{Name: "profile.default"})
	heavy   = cell.NewLazy(newHeavyReport)
	tracker = cell.NewLazy(newTracker)
)

func newHeavyReport() (*HeavyReport, error) {
	// Pretend this aggregates something expensive.
	return &HeavyReport{Rows: 1 << 20}, nil
}

func newTracker() (*Tracker, error) {
	return &Tracker{Label: "tracker.canonical"}, nil
}

// ProfileInstance returns the eager singleton. It never fails: the instance
// exists before main starts.
func ProfileInstance() *Profile { return profile.Get() }

// TrackerInstance returns the lazy singleton, constructing it on first use.
func TrackerInstance() (*Tracker, error) { return tracker.Get() }

// TrackerCell exposes the tracker's storage cell so probes can aim at its
// construction guard and watch its construction counter.
func TrackerCell() *cell.Lazy[Tracker] { return tracker }

// Register binds the demo singletons into the global registry, opting them
// into serialization. Idempotent.
func Register() error {
	if err := onex.BindFor[Profile]("demo.profile", profile); err != nil {
		return err
	}
	return onex.BindFor[Tracker]("demo.tracker", tracker)
}
