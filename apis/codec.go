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

// Codec is the identity-preserving byte serialization surface. Encoding is
// available only to types that opted in by being bound in a Registry;
// decoding resolves the result back to the canonical instance, so
// Decode(Encode(x)) shares identity with x rather than copying it.
type Codec interface {
	// Encode serializes v to an opaque byte form.
	// Fails for types that have not opted into serialization.
	Encode(v any) ([]byte, error)
	// Decode deserializes a byte form produced by Encode and folds the
	// result onto the canonical instance of its type.
	Decode(data []byte) (any, error)
}
