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

package targetgen

import (
	"reflect"
	"testing"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/scope"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

type fakeScope struct {
	sourceDir sourcepath.Dir
	toolchain settings.Label
	view      *settings.ToolchainView
	values    map[string]scope.Value
}

func (f *fakeScope) SourceDir() sourcepath.Dir        { return f.sourceDir }
func (f *fakeScope) ToolchainLabel() settings.Label   { return f.toolchain }
func (f *fakeScope) Settings() *settings.ToolchainView { return f.view }
func (f *fakeScope) ProgrammaticNames() []string       { return scope.ProgrammaticNames }
func (f *fakeScope) GetValue(name string) (scope.Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

func strList(items ...string) scope.Value {
	vs := make([]scope.Value, 0, len(items))
	for _, i := range items {
		vs = append(vs, scope.String(i))
	}
	return scope.List(vs...)
}

func newFakeScope(dir sourcepath.Dir) *fakeScope {
	b := settings.New()
	b.SetBuildDir(sourcepath.Dir("//out/Debug/"))
	label := settings.Label{Dir: "//build/toolchain/", Name: "clang"}
	tc := &settings.Toolchain{Label: label}
	view := settings.NewToolchainView(b, tc, label, settings.OSLinux, "")
	return &fakeScope{sourceDir: dir, toolchain: label, view: view, values: make(map[string]scope.Value)}
}

func TestGenerateSourceSet(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["sources"] = strList("input1.cc", "input2.cc")
	sc.values["deps"] = strList(":base")

	target, gerr := Generate(graph.KindSourceSet, sc, "bar", bferr.Position{})
	if gerr != nil {
		t.Fatalf("Generate failed: %v", gerr)
	}

	wantSources := []sourcepath.File{"//foo/input1.cc", "//foo/input2.cc"}
	if !reflect.DeepEqual(target.Sources, wantSources) {
		t.Errorf("Sources = %v, want %v", target.Sources, wantSources)
	}

	wantDeps := []settings.Label{{Dir: "//foo/", Name: "base"}}
	if !reflect.DeepEqual(target.DepLabels, wantDeps) {
		t.Errorf("DepLabels = %v, want %v", target.DepLabels, wantDeps)
	}

	if target.Label != (settings.Label{Dir: "//foo/", Name: "bar"}) {
		t.Errorf("Label = %v", target.Label)
	}
}

func TestGenerateRejectsBadList(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["sources"] = scope.String("not a list")

	_, gerr := Generate(graph.KindSourceSet, sc, "bar", bferr.Position{})
	if gerr == nil {
		t.Fatal("expected an error for a malformed sources value")
	}
}

func TestGenerateCopyRejectsOutputOutsideOutputDir(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["outputs"] = strList("//not_out/copied.txt")

	_, gerr := Generate(graph.KindCopyFiles, sc, "cp", bferr.Position{})
	if gerr == nil {
		t.Fatal("expected an error for an output outside the output directory")
	}
}

func TestGenerateCopyAcceptsOutputInsideOutputDir(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["sources"] = strList("a.txt")
	sc.values["outputs"] = strList("//out/Debug/a.txt")

	target, gerr := Generate(graph.KindCopyFiles, sc, "cp", bferr.Position{})
	if gerr != nil {
		t.Fatalf("Generate failed: %v", gerr)
	}
	want := []sourcepath.File{"//out/Debug/a.txt"}
	if !reflect.DeepEqual(target.ScriptValues.Outputs, want) {
		t.Errorf("Outputs = %v, want %v", target.ScriptValues.Outputs, want)
	}
}

func TestGenerateGroupHasNoBinaryFields(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["deps"] = strList(":a", ":b")

	target, gerr := Generate(graph.KindGroup, sc, "everything", bferr.Position{})
	if gerr != nil {
		t.Fatalf("Generate failed: %v", gerr)
	}
	if len(target.Sources) != 0 {
		t.Errorf("expected a group to have no sources, got %v", target.Sources)
	}
	if len(target.DepLabels) != 2 {
		t.Errorf("expected 2 deps, got %v", target.DepLabels)
	}
}

func TestGenerateCustomTarget(t *testing.T) {
	sc := newFakeScope("//foo/")
	sc.values["script"] = scope.String("gen.py")
	sc.values["args"] = strList("--mode=release")
	sc.values["outputs"] = strList("//out/Debug/gen/foo/generated.h")

	target, gerr := Generate(graph.KindCustom, sc, "gen", bferr.Position{})
	if gerr != nil {
		t.Fatalf("Generate failed: %v", gerr)
	}
	if target.ScriptValues.Script != "//foo/gen.py" {
		t.Errorf("Script = %v", target.ScriptValues.Script)
	}
	if !reflect.DeepEqual(target.ScriptValues.Args, []string{"--mode=release"}) {
		t.Errorf("Args = %v", target.ScriptValues.Args)
	}
}

func TestResolveLabelVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want settings.Label
	}{
		{":bar", settings.Label{Dir: "//foo/", Name: "bar"}},
		{"//baz:qux", settings.Label{Dir: "//baz/", Name: "qux"}},
		{"sub:target", settings.Label{Dir: "//foo/sub/", Name: "target"}},
	}
	for _, c := range cases {
		got, err := resolveLabel("//foo/", c.raw)
		if err != nil {
			t.Errorf("resolveLabel(%q) error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("resolveLabel(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestResolveLabelRejectsMissingName(t *testing.T) {
	if _, err := resolveLabel("//foo/", "//baz"); err == nil {
		t.Errorf("expected error for label missing a target name")
	}
}
