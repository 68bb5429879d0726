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

package strategy

import (
	"fmt"
	"reflect"

	"dirpx.dev/onex/apis"
)

// NewRegistryStrategy creates an apis.Strategy that uses an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided registry: if v's type is bound, the
// bound cell's canonical instance replaces v. This is how eagerly-held
// singletons receive identity-preserving deserialization automatically,
// with no per-type hook.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's type in the registry and substitutes the bound
// cell's canonical instance for it.
func (s *registryStrategy) TryResolve(v any, _ apis.Config) (any, bool, error) {
	if v == nil || s.reg == nil {
		return nil, false, nil
	}
	b, ok := s.reg.Lookup(reflect.TypeOf(v))
	if !ok {
		return nil, false, nil
	}
	canonical, err := b.Cell.Instance()
	if err != nil {
		return nil, false, fmt.Errorf("onex(strategy): registry cell %q: %w", b.Name, err)
	}
	return canonical, true, nil
}
