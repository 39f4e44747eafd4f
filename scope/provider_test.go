// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scope

import (
	"reflect"
	"testing"

	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

type fakeScope struct {
	sourceDir sourcepath.Dir
	toolchain settings.Label
	view      *settings.ToolchainView
	values    map[string]Value
}

func (f *fakeScope) SourceDir() sourcepath.Dir             { return f.sourceDir }
func (f *fakeScope) ToolchainLabel() settings.Label        { return f.toolchain }
func (f *fakeScope) Settings() *settings.ToolchainView      { return f.view }
func (f *fakeScope) ProgrammaticNames() []string            { return ProgrammaticNames }
func (f *fakeScope) GetValue(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

func newFakeScope() *fakeScope {
	b := settings.New()
	b.SetBuildDir(sourcepath.Dir("//out/Debug/"))
	b.SetPythonPath("/usr/bin/python3")

	defaultLabel := settings.Label{Dir: "//build/toolchain/", Name: "clang"}
	tc := &settings.Toolchain{Label: defaultLabel}
	view := settings.NewToolchainView(b, tc, defaultLabel, settings.OSLinux, "")

	return &fakeScope{
		sourceDir: "//foo/bar/",
		toolchain: defaultLabel,
		view:      view,
		values:    make(map[string]Value),
	}
}

func TestProviderComputesAndCaches(t *testing.T) {
	s := newFakeScope()
	p := NewProvider(s)

	v, ok := p.Get("root_build_dir")
	if !ok || v.Str != "//out/Debug" {
		t.Fatalf("root_build_dir = %q, %v", v.Str, ok)
	}

	v, ok = p.Get("target_gen_dir")
	if !ok || v.Str != "//out/Debug/gen/foo/bar" {
		t.Fatalf("target_gen_dir = %q, %v", v.Str, ok)
	}

	v, ok = p.Get("target_out_dir")
	if !ok || v.Str != "//out/Debug/obj/foo/bar" {
		t.Fatalf("target_out_dir = %q, %v", v.Str, ok)
	}

	v, ok = p.Get("python_path")
	if !ok || v.Str != "/usr/bin/python3" {
		t.Fatalf("python_path = %q, %v", v.Str, ok)
	}

	v, ok = p.Get("current_toolchain")
	if !ok || v.Str != "//build/toolchain:clang" {
		t.Fatalf("current_toolchain = %q, %v", v.Str, ok)
	}

	if _, ok := p.Get("not_a_real_identifier"); ok {
		t.Errorf("expected unknown identifier to be rejected")
	}

	// Cached: repeated lookups of the same identifier are stable.
	rb1, _ := p.Get("root_build_dir")
	rb2, _ := p.Get("root_build_dir")
	if !reflect.DeepEqual(rb1, rb2) {
		t.Errorf("cached value changed between calls: %v != %v", rb1, rb2)
	}
}

func TestValueAsStringList(t *testing.T) {
	v := List(String("a"), String("b"))
	got, ok := v.AsStringList()
	if !ok {
		t.Fatal("expected ok")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}

	if _, ok := String("not a list").AsStringList(); ok {
		t.Errorf("expected non-list to fail")
	}

	mixed := List(String("a"), Int(1))
	if _, ok := mixed.AsStringList(); ok {
		t.Errorf("expected mixed list to fail")
	}
}
