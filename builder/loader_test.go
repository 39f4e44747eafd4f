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

package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/loaderfs"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

func newTestView(t *testing.T) *settings.ToolchainView {
	t.Helper()
	bs := settings.New()
	bs.SetRootPath("/src")
	bs.SetBuildDir(sourcepath.Dir("//out/Debug/"))
	label := settings.Label{Dir: "//build/toolchain/", Name: "clang"}
	tc := &settings.Toolchain{Label: label}
	return settings.NewToolchainView(bs, tc, label, settings.OSLinux, "")
}

func targetNamed(targets []*graph.Target, name string) *graph.Target {
	for _, t := range targets {
		if t.Label.Name == name {
			return t
		}
	}
	return nil
}

func indexOfTarget(targets []*graph.Target, name string) int {
	for i, t := range targets {
		if t.Label.Name == name {
			return i
		}
	}
	return -1
}

func TestLoaderResolvesSingleFileGraph(t *testing.T) {
	fs := loaderfs.Mock(map[string][]byte{
		"//BUILD.gn": []byte(`
source_set(
    "base",
    sources = ["base.cc"],
)

static_library(
    "util",
    sources = ["util.cc"],
    deps = [":base"],
)

executable(
    "app",
    sources = ["main.cc"],
    deps = [":util"],
)
`),
	})

	l := NewLoader(fs, newTestView(t), 4)
	targets, errs := l.Load(context.Background(), "//")
	require.Empty(t, errs)
	require.Len(t, targets, 3)

	app := targetNamed(targets, "app")
	util := targetNamed(targets, "util")
	base := targetNamed(targets, "base")
	require.NotNil(t, app)
	require.NotNil(t, util)
	require.NotNil(t, base)

	assert.Less(t, indexOfTarget(targets, "base"), indexOfTarget(targets, "util"), "base must resolve before util")
	assert.Less(t, indexOfTarget(targets, "util"), indexOfTarget(targets, "app"), "util must resolve before app")

	if assert.Len(t, app.Deps, 1) {
		assert.Same(t, util, app.Deps[0])
	}
	if assert.Len(t, util.InheritedLibraries, 1) {
		assert.Same(t, base, util.InheritedLibraries[0])
	}
}

func TestLoaderDiscoversSiblingDirectories(t *testing.T) {
	fs := loaderfs.Mock(map[string][]byte{
		"//BUILD.gn": []byte(`
executable(
    "app",
    sources = ["main.cc"],
    deps = ["//lib:util"],
)
`),
		"//lib/BUILD.gn": []byte(`
static_library(
    "util",
    sources = ["util.cc"],
    deps = [":base"],
)

source_set(
    "base",
    sources = ["base.cc"],
)
`),
	})

	l := NewLoader(fs, newTestView(t), 4)
	targets, errs := l.Load(context.Background(), "//")
	require.Empty(t, errs)
	require.Len(t, targets, 3)

	util := targetNamed(targets, "util")
	require.NotNil(t, util)
	assert.EqualValues(t, "//lib/", util.Label.Dir)
}

func TestLoaderReportsMissingBuildfile(t *testing.T) {
	fs := loaderfs.Mock(map[string][]byte{
		"//BUILD.gn": []byte(`
executable(
    "app",
    sources = ["main.cc"],
    deps = ["//missing:thing"],
)
`),
	})

	l := NewLoader(fs, newTestView(t), 4)
	_, errs := l.Load(context.Background(), "//")
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrors(errs), "no such buildfile")
}

func TestLoaderReportsDependencyCycle(t *testing.T) {
	fs := loaderfs.Mock(map[string][]byte{
		"//BUILD.gn": []byte(`
source_set(
    "a",
    sources = ["a.cc"],
    deps = [":b"],
)

source_set(
    "b",
    sources = ["b.cc"],
    deps = [":a"],
)
`),
	})

	l := NewLoader(fs, newTestView(t), 4)
	_, errs := l.Load(context.Background(), "//")
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrors(errs), "dependency cycle")
}

func joinErrors(errs []error) string {
	s := ""
	for _, e := range errs {
		s += e.Error() + "\n"
	}
	return s
}
