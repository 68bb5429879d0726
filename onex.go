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

package onex

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/onex/apis"
	"dirpx.dev/onex/builder"
	"dirpx.dev/onex/config"
)

// init initializes the global lifecycle state.
func init() {
	// Initialize state with default cfg, reg, res, and cod.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.cod = b.BuildCodec(s.cfg, s.reg, s.res, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("onex: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("onex: builder returned nil resolver")
	// ErrNilCodec is returned when a builder returns a nil codec.
	ErrNilCodec = errors.New("onex: builder returned nil codec")
)

// Bind associates a type with a stable wire name and the cell holding its
// canonical instance, in the global registry.
// This is a convenience wrapper around the global reg.
func Bind(t reflect.Type, name string, c apis.Cell) error {
	return st.Load().reg.Bind(t, name, c)
}

// BindFor is like Bind for the type parameter T.
// This is a convenience wrapper around the global reg.
func BindFor[T any](name string, c apis.Cell) error {
	return st.Load().reg.Bind(reflect.TypeOf((*T)(nil)), name, c)
}

// Lookup returns the global binding for a type if present.
// This is a convenience wrapper around the global reg.
func Lookup(t reflect.Type) (apis.Binding, bool) {
	return st.Load().reg.Lookup(t)
}

// LookupName returns the global binding for a wire name if present.
// This is a convenience wrapper around the global reg.
func LookupName(name string) (apis.Binding, bool) {
	return st.Load().reg.LookupName(name)
}

// Canonical folds v onto the canonical instance of its type using the
// global res. It uses the global lifecycle configuration.
// This is a convenience wrapper around the global res.
func Canonical(v any) (any, error) {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// Encode serializes v using the global cod. Only registry-bound types are
// encodable.
// This is a convenience wrapper around the global cod.
func Encode(v any) ([]byte, error) {
	return st.Load().cod.Encode(v)
}

// Decode deserializes data using the global cod and resolves the result to
// the canonical instance of its type.
// This is a convenience wrapper around the global cod.
func Decode(data []byte) (any, error) {
	return st.Load().cod.Decode(data)
}

// SetAll explicitly sets all global lifecycle state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, cod apis.Codec, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res, next)
	} else {
		npres = true
	}

	// Codec
	ncod := cod
	npcod := false
	if ncod == nil {
		ncod = nbld.BuildCodec(ncfg, nreg, nres, next)
	} else {
		npcod = true
	}

	// Ensure non-nil reg, res, and cod.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			res:  nres,
			cod:  ncod,
			bld:  nbld,
			preg: npreg,
			pres: npres,
			pcod: npcod,
		},
	)
}

// Config returns the global lifecycle configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global lifecycle configuration to cfg.
// It rebuilds the non-pinned global reg, res, and cod using the new
// configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg, res, and cod based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg, old.res, old.ext)
	}
	ncod := old.cod
	if !old.pcod {
		ncod = b.BuildCodec(cfg, nreg, nres, old.ext)
	}

	// Ensure non-nil reg, res, and cod.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			cod:  ncod,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// Registry returns the global lifecycle reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global lifecycle reg to reg.
// It rebuilds the non-pinned global res and cod on top of the new reg.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res and cod based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg, old.res, old.ext)
	}
	ncod := old.cod
	if !old.pcod {
		ncod = b.BuildCodec(old.cfg, reg, nres, old.ext)
	}

	// Ensure non-nil res and cod.
	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			res:  nres,
			cod:  ncod,
			bld:  b,
			preg: true,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// Resolver returns the global lifecycle res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global lifecycle res to res.
// It rebuilds the non-pinned global cod on top of the new res.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cod based on the old cfg/reg and new res.
	ncod := old.cod
	if !old.pcod {
		ncod = b.BuildCodec(old.cfg, old.reg, res, old.ext)
	}

	// Ensure non-nil cod.
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  res,
			cod:  ncod,
			bld:  b,
			preg: old.preg,
			pres: true,
			pcod: old.pcod,
		},
	)
}

// Codec returns the global lifecycle cod.
func Codec() apis.Codec {
	return st.Load().cod
}

// SetCodec sets the global lifecycle cod to cod.
// This is a convenience wrapper around the global state.
func SetCodec(cod apis.Codec) {
	if cod == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  cod,
			bld:  old.bld,
			preg: old.preg,
			pres: old.pres,
			pcod: true,
		},
	)
}

// Builder returns the global lifecycle bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global lifecycle bld to b.
// It rebuilds the non-pinned global reg, res, and cod using the new builder.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg, res, and cod based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res, old.ext)
	}
	ncod := old.cod
	if !old.pcod {
		ncod = b.BuildCodec(old.cfg, nreg, nres, old.ext)
	}

	// Ensure non-nil reg, res, and cod.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			cod:  ncod,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg, res, and cod based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res, ext)
	}
	ncod := old.cod
	if !old.pcod {
		ncod = b.BuildCodec(old.cfg, nreg, nres, ext)
	}

	// Ensure non-nil reg, res, and cod.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncod == nil {
		panic(ErrNilCodec)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			res:  nres,
			cod:  ncod,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// ExtAs returns the global lifecycle extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global lifecycle reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global lifecycle reg immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: true,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// UnpinRegistry makes the global lifecycle reg mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: false,
			pres: old.pres,
			pcod: old.pcod,
		},
	)
}

// IsResolverPinned returns whether the global lifecycle res is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global lifecycle res immutable.
func PinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: old.preg,
			pres: true,
			pcod: old.pcod,
		},
	)
}

// UnpinResolver makes the global lifecycle res mutable again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: old.preg,
			pres: false,
			pcod: old.pcod,
		},
	)
}

// IsCodecPinned returns whether the global lifecycle cod is pinned (immutable).
func IsCodecPinned() bool {
	return st.Load().pcod
}

// PinCodec makes the global lifecycle cod immutable.
func PinCodec() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: old.preg,
			pres: old.pres,
			pcod: true,
		},
	)
}

// UnpinCodec makes the global lifecycle cod mutable again.
func UnpinCodec() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			cod:  old.cod,
			bld:  old.bld,
			preg: old.preg,
			pres: old.pres,
			pcod: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global lifecycle state.
var st atomic.Pointer[state]

// state is the global lifecycle state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global lifecycle configuration.
	cfg apis.Config
	// ext is the global lifecycle extension configuration.
	ext any
	// reg is the global lifecycle reg.
	reg apis.Registry
	// res is the global lifecycle res.
	res apis.Resolver
	// cod is the global lifecycle cod.
	cod apis.Codec
	// bld is the global lifecycle bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
	// pcod indicates whether the cod is pinned (immutable).
	pcod bool
}
