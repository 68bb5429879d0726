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

package apis

// Config carries read-only lifecycle knobs that influence registries,
// identity resolution, and probes.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when deriving the registry key for a type.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// AllowBypass enables the out-of-band construction path used by probes.
	// Production deployments should leave this disabled; with it off, any
	// probe attempt fails instead of invoking a constructor directly.
	AllowBypass bool

	// StrictDecode controls what happens when a decoded value cannot be
	// resolved to a canonical instance. If true, decoding fails; otherwise
	// the detached copy is returned as-is (diagnostics only — the copy does
	// not share identity with any canonical instance).
	StrictDecode bool
}
