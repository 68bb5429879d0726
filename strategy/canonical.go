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

	"dirpx.dev/onex/apis"
)

// NewCanonicalStrategy creates an apis.Strategy that uses apis.Canonicalizer.
func NewCanonicalStrategy() apis.Strategy {
	return &canonicalStrategy{}
}

// canonicalStrategy is a zero-cost fast path: if v implements
// apis.Canonicalizer, the hook's result replaces v and stops the chain.
// This is how lazily-constructed singletons opt into identity-preserving
// deserialization explicitly.
type canonicalStrategy struct{}

// Ensure canonicalStrategy implements apis.Strategy.
var _ apis.Strategy = (*canonicalStrategy)(nil)

// TryResolve checks if v implements apis.Canonicalizer and substitutes the
// hook's canonical instance for it.
func (*canonicalStrategy) TryResolve(v any, _ apis.Config) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	c, ok := v.(apis.Canonicalizer)
	if !ok {
		return nil, false, nil
	}
	canonical, err := c.Canonical()
	if err != nil {
		return nil, false, fmt.Errorf("onex(strategy): canonical hook: %w", err)
	}
	return canonical, true, nil
}
