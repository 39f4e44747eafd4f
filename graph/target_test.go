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

package graph

import (
	"reflect"
	"testing"

	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

func label(name string) settings.Label {
	return settings.Label{Dir: "//foo/", Name: name}
}

func TestResolveInheritedLibrariesStopsAtSharedLibrary(t *testing.T) {
	base := &Target{Label: label("base"), OutputType: KindSourceSet}
	base.Resolve()

	util := &Target{Label: label("util"), OutputType: KindStaticLibrary, Deps: []*Target{base}}
	util.Resolve()
	if !reflect.DeepEqual(util.InheritedLibraries, []*Target{base}) {
		t.Errorf("util.InheritedLibraries = %v, want [base]", util.InheritedLibraries)
	}

	shlib := &Target{Label: label("shlib"), OutputType: KindSharedLibrary, Deps: []*Target{util}}
	shlib.Resolve()
	if !reflect.DeepEqual(shlib.InheritedLibraries, []*Target{util, base}) {
		t.Errorf("shlib.InheritedLibraries = %v, want [util base]", shlib.InheritedLibraries)
	}

	app := &Target{Label: label("app"), OutputType: KindExecutable, Deps: []*Target{shlib}}
	app.Resolve()
	// shared_library blocks further propagation: app sees only shlib,
	// not util or base beneath it.
	if !reflect.DeepEqual(app.InheritedLibraries, []*Target{shlib}) {
		t.Errorf("app.InheritedLibraries = %v, want [shlib]", app.InheritedLibraries)
	}
}

func TestResolveInheritedLibrariesIgnoresExecutableDeps(t *testing.T) {
	tool := &Target{Label: label("tool"), OutputType: KindExecutable}
	tool.Resolve()

	app := &Target{Label: label("app"), OutputType: KindExecutable, Deps: []*Target{tool}}
	app.Resolve()
	if len(app.InheritedLibraries) != 0 {
		t.Errorf("app.InheritedLibraries = %v, want empty", app.InheritedLibraries)
	}
}

func TestResolveIdempotent(t *testing.T) {
	base := &Target{Label: label("base"), OutputType: KindStaticLibrary}
	base.Resolve()

	app := &Target{Label: label("app"), OutputType: KindExecutable, Deps: []*Target{base}}
	app.Resolve()
	first := append([]*Target{}, app.InheritedLibraries...)
	app.Resolve()
	if !reflect.DeepEqual(first, app.InheritedLibraries) {
		t.Errorf("resolving twice changed InheritedLibraries: %v != %v", first, app.InheritedLibraries)
	}
}

func TestResolveLibDirsAndLibsDeduplicatesInOrder(t *testing.T) {
	cfgA := &Config{Label: "//foo:a", Values: ConfigValues{
		LibDirs: []sourcepath.Dir{"//third_party/x/"},
		Libs:    []string{"x", "y"},
	}}
	cfgB := &Config{Label: "//foo:b", Values: ConfigValues{
		LibDirs: []sourcepath.Dir{"//third_party/x/", "//third_party/z/"},
		Libs:    []string{"y", "z"},
	}}

	base := &Target{Label: label("base"), OutputType: KindStaticLibrary, Configs: []*Config{cfgA}}
	base.Resolve()

	app := &Target{
		Label:      label("app"),
		OutputType: KindExecutable,
		Deps:       []*Target{base},
		Configs:    []*Config{cfgB},
	}
	app.Resolve()

	wantDirs := []sourcepath.Dir{"//third_party/x/", "//third_party/z/"}
	if !reflect.DeepEqual(app.AllLibDirs, wantDirs) {
		t.Errorf("app.AllLibDirs = %v, want %v", app.AllLibDirs, wantDirs)
	}
	wantLibs := []string{"y", "z", "x"}
	if !reflect.DeepEqual(app.AllLibs, wantLibs) {
		t.Errorf("app.AllLibs = %v, want %v", app.AllLibs, wantLibs)
	}
}

func TestResolveForwardedConfigs(t *testing.T) {
	exported := &Config{Label: "//foo:exported"}
	dep := &Target{Label: label("dep"), OutputType: KindStaticLibrary, DirectDependentConfigs: []*Config{exported}}
	dep.Resolve()

	app := &Target{
		Label:                   label("app"),
		OutputType:              KindExecutable,
		Deps:                    []*Target{dep},
		ForwardDependentConfigs: []*Target{dep},
	}
	app.Resolve()

	if !reflect.DeepEqual(app.DirectDependentConfigs, []*Config{exported}) {
		t.Errorf("app.DirectDependentConfigs = %v, want [exported]", app.DirectDependentConfigs)
	}
}

func TestOutputKindCanLink(t *testing.T) {
	cases := []struct {
		kind OutputKind
		want bool
	}{
		{KindExecutable, true},
		{KindSharedLibrary, true},
		{KindStaticLibrary, false},
		{KindSourceSet, false},
		{KindGroup, false},
	}
	for _, c := range cases {
		if got := c.kind.CanLink(); got != c.want {
			t.Errorf("%v.CanLink() = %v, want %v", c.kind, got, c.want)
		}
	}
}
