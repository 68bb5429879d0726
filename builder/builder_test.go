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

package builder_test

import (
	"reflect"
	"testing"

	"dirpx.dev/onex/builder"
	"dirpx.dev/onex/cell"
	"dirpx.dev/onex/config"
)

type widget struct{ Name string }

func TestBuildRegistry(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}
	if reg.Count() != 0 {
		t.Fatalf("fresh registry count = %d, want 0", reg.Count())
	}
}

func TestBuildRegistryMigratesBindings(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	old := b.BuildRegistry(cfg, nil, nil)
	c := cell.NewEager(&widget{Name: "w"})
	if err := old.Bind(reflect.TypeOf(&widget{}), "builder.widget", c); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	reg := b.BuildRegistry(cfg, old, nil)
	if reg == old {
		t.Fatal("BuildRegistry returned the pre-existing registry")
	}
	if reg.Count() != 1 {
		t.Fatalf("migrated registry count = %d, want 1", reg.Count())
	}
	bnd, ok := reg.LookupName("builder.widget")
	if !ok {
		t.Fatal("migrated registry is missing the carried-over binding")
	}
	if bnd.Cell != any(c) {
		t.Fatal("carried-over binding holds a different cell")
	}
}

func TestBuildResolver(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	canonical := cell.NewEager(&widget{Name: "canonical"})
	if err := reg.Bind(reflect.TypeOf(&widget{}), "builder.widget", canonical); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	res := b.BuildResolver(cfg, reg, nil, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}
	got, err := res.Resolve(&widget{Name: "detached"}, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != any(canonical.Get()) {
		t.Fatal("resolver is not wired to the registry")
	}
}

func TestBuildCodec(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	canonical := cell.NewEager(&widget{Name: "canonical"})
	if err := reg.Bind(reflect.TypeOf(&widget{}), "builder.widget", canonical); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	res := b.BuildResolver(cfg, reg, nil, nil)

	cod := b.BuildCodec(cfg, reg, res, nil)
	if cod == nil {
		t.Fatal("BuildCodec returned nil")
	}
	data, err := cod.Encode(canonical.Get())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := cod.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != any(canonical.Get()) {
		t.Fatal("codec round trip lost instance identity")
	}
}
