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

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	xdr "github.com/rasky/go-xdr/xdr2"

	"dirpx.dev/onex/apis"
)

var (
	// ErrNilValue is returned when a nil value is provided to Encode.
	ErrNilValue = errors.New("onex(codec): nil value provided")
	// ErrNotEncodable indicates the value's type has not opted into
	// serialization (no registry binding for it).
	ErrNotEncodable = errors.New("onex(codec): type not encodable")
	// ErrUnknownSingleton indicates a decoded wire name with no binding in
	// the registry at decode time.
	ErrUnknownSingleton = errors.New("onex(codec): unknown singleton name")
)

// envelope is the wire form: a stable name tag plus the XDR body of the
// instance state. The envelope itself is XDR-encoded.
type envelope struct {
	Name    string
	Payload []byte
}

// New constructs a Codec over the given registry and resolver. Encoding is
// restricted to registry-bound types; decoding runs the resolver so the
// result shares identity with the canonical instance.
func New(reg apis.Registry, res apis.Resolver, cfg apis.Config) apis.Codec {
	return &codec{reg: reg, res: res, cfg: cfg}
}

// codec is the default XDR-backed Codec implementation.
type codec struct {
	reg apis.Registry
	res apis.Resolver
	cfg apis.Config
}

// Ensure codec implements apis.Codec.
var _ apis.Codec = (*codec)(nil)

// Encode serializes v under its bound wire name. Types without a registry
// binding have not opted into serialization and fail with ErrNotEncodable.
func (c *codec) Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}

	b, ok := c.reg.Lookup(reflect.TypeOf(v))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, reflect.TypeOf(v))
	}

	var payload bytes.Buffer
	if _, err := xdr.Marshal(&payload, v); err != nil {
		return nil, fmt.Errorf("onex(codec): marshal %q: %w", b.Name, err)
	}

	var out bytes.Buffer
	env := envelope{Name: b.Name, Payload: payload.Bytes()}
	if _, err := xdr.Marshal(&out, &env); err != nil {
		return nil, fmt.Errorf("onex(codec): marshal envelope: %w", err)
	}
	return out.Bytes(), nil
}

// Decode deserializes data and folds the fresh value onto the canonical
// instance of its type. The decoded copy itself is discarded; under strict
// resolution decoding fails rather than ever returning a detached copy.
func (c *codec) Decode(data []byte) (any, error) {
	var env envelope
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &env); err != nil {
		return nil, fmt.Errorf("onex(codec): unmarshal envelope: %w", err)
	}

	b, ok := c.reg.LookupName(env.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSingleton, env.Name)
	}

	// Materialize a fresh value of the bound type, then let the resolver
	// substitute the canonical instance for it.
	fresh := reflect.New(b.Type).Interface()
	if _, err := xdr.Unmarshal(bytes.NewReader(env.Payload), fresh); err != nil {
		return nil, fmt.Errorf("onex(codec): unmarshal %q: %w", env.Name, err)
	}

	return c.res.Resolve(fresh, c.cfg)
}
