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

// Package onex provides a global, process-wide singleton lifecycle service.
//
// onex is responsible for guaranteeing that, for a given logical type,
// exactly one canonical instance exists for the lifetime of the process:
// it is reachable through a single accessor, constructed exactly once even
// under concurrent first access, keeps its identity across a byte
// serialization round trip, and defends its constructor against
// out-of-band invocation.
//
// # Design
//
// The building block is the storage cell (package cell):
//
//   - cell.Lazy[T] is a single-slot cell with deferred, exactly-once
//     construction. The first Get across all goroutines runs the
//     constructor; every later Get is a single atomic pointer load.
//     Construction goes through a guard that rejects a second run, and
//     publication is two-phase: the slot is written first, then a separate
//     done flag is flipped, so the guard never depends on the ordering of
//     the very slot it is populating.
//
//   - cell.Eager[T] is a cell that is never empty. It is populated at
//     package init, before any caller (or goroutine) can observe it, so
//     there is no deferred path and no construction race at all.
//
// Above the cells sits a read-mostly global snapshot (state). The snapshot
// holds five things:
//
//   - Config: lifecycle knobs (type-key normalization depth, whether the
//     out-of-band construction path is permitted, whether decoding may
//     ever return a detached copy).
//
//   - Registry: a process-wide mapping from Go types and stable wire names
//     to the cells holding their canonical instances. Binding a type is how
//     it opts into serialization. The registry can be written to at runtime
//     (Bind).
//
//   - Resolver: a read-only object that answers "what is the canonical
//     instance for this value?". It tries strategies in priority order:
//     1. If the value implements apis.Canonicalizer, use v.Canonical().
//     This is the explicit opt-in hook for lazily-constructed
//     singletons.
//     2. If the value's type is bound in the Registry, use the bound
//     cell's instance. Eagerly-held singletons get identity
//     preservation this way, automatically.
//     Unresolvable values fail under strict decoding rather than leaking
//     a detached copy.
//
//   - Codec: the byte serialization surface. Encode is restricted to
//     registry-bound types (anything else is not encodable); Decode runs
//     the Resolver on the freshly decoded value and discards it in favor
//     of the canonical instance, so Decode(Encode(x)) == x by identity.
//
//   - Builder: a pluggable factory that knows how to construct Registry,
//     Resolver, and Codec instances for a given Config (and optional
//     extension data). The Builder is also allowed to migrate bindings
//     from previous Registry instances.
//
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in. This means lifecycle lookups are
// lock-free on the hot path:
//
//	v, err := onex.Canonical(decoded)
//	data, err := onex.Encode(instance)
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Canonical(v any) (any, error)
//     Encode(v any) ([]byte, error)
//     Decode(data []byte) (any, error)
//     Lookup(t reflect.Type) (apis.Binding, bool)
//     LookupName(name string) (apis.Binding, bool)
//     Registry() apis.Registry
//     Resolver() apis.Resolver
//     Codec() apis.Codec
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     Bind(t reflect.Type, name string, c apis.Cell) error
//     BindFor[T](name string, c apis.Cell) error
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetRegistry(reg apis.Registry)
//     SetResolver(res apis.Resolver)
//     SetCodec(cod apis.Codec)
//     UnpinRegistry() / UnpinResolver() / UnpinCodec()
//     SetAll(...)
//
//     Bind writes through to the registry held by the current snapshot.
//     The Set* family acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing Registry / Resolver / Codec as
//     needed), and then atomically publishes that snapshot.
//
//     Semantics in short:
//
//     - Config affects type-key normalization, probe gating, and decode
//     strictness. Calling SetConfig() may trigger a rebuild of the
//     Registry, Resolver, and/or Codec, unless they are "pinned".
//
//     - Builder controls how the layers are constructed. Swapping the
//     Builder lets you replace resolution or wire-format logic at
//     runtime.
//
//     - Ext is an opaque extension payload. It is not interpreted by
//     onex itself. It is simply passed down to the Builder so custom
//     builders (in other binaries) can carry extra policy/state.
//
//     - SetRegistry()/SetResolver()/SetCodec() directly overwrite the
//     corresponding layer in the snapshot and "pin" it. A pinned layer
//     is no longer rebuilt automatically until the matching Unpin call.
//
//     - SetAll(...) is the "hard reset" API. It lets a process replace
//     everything in one shot. This is mainly used by tests to get a
//     clean deterministic state between test cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     IsRegistryPinned() / IsResolverPinned() / IsCodecPinned()
//     // plus Registry().Entries(), cell Constructions(), etc.
//
// # Concurrency model
//
// Reads are wait-free: they load the current *state atomically and never
// take locks. The layers returned by that state must themselves be
// concurrency-safe for reads. A cell's first-time construction is the only
// contended critical section anywhere in the core; it either completes or
// fails fast, and no path in the core blocks indefinitely, polls, or
// retries.
//
// Construction of a cell's instance happens-before any read of it by any
// goroutine: lazily via the cell's atomic publication, eagerly via Go's
// init ordering.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, ...) take a short
// build mutex, assemble a brand-new state struct, and then publish it via
// an atomic pointer swap. This gives the calling binary a predictable
// "last write wins" behavior without forcing per-lookup locking.
//
// # Guarded construction
//
// A cell's constructor runs behind a guard: if the cell already holds its
// instance, a second construction attempt fails with
// cell.ErrAlreadyConstructed instead of overwriting the slot. The only way
// to reach the constructor outside the accessor is package probe, which is
// gated behind Config.AllowBypass and exists for test harnesses only. A
// successful probe before first access yields a rogue instance the cell
// never adopts — observable, never silently merged with the canonical one.
//
// # Usage pattern in a binary
//
// A typical component does:
//
//  1. Let onex init with default builder/config.
//
//  2. Declare its cells:
//
//     var appState = cell.NewLazy(newAppState)
//     var buildInfo = cell.NewEager(&BuildInfo{...})
//
//  3. Bind the ones that should survive serialization:
//
//     onex.BindFor[AppState]("app.state", appState)
//     onex.BindFor[BuildInfo]("app.buildinfo", buildInfo)
//
//  4. Use appState.Get() everywhere; use onex.Encode / onex.Decode at the
//     serialization boundary and rely on identity being preserved.
//
//  5. In tests, call onex.SetAll(...) to get deterministic snapshots
//     and to inject a mock Builder.
//
// # Scope
//
// onex is intentionally small. It does not try to be a general DI
// container or service locator. It only solves one job:
//
//	"Given a logical type, guarantee there is exactly one canonical
//	 instance of it in this process, and keep that guarantee through
//	 concurrent first access, serialization, and hostile construction."
//
// Everything else (injection wiring, multi-process coordination,
// persistence beyond a single round trip) belongs to higher layers or is
// deliberately out of scope.
package onex
