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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wesedens/gn/loaderfs"
	"github.com/wesedens/gn/rulewriter"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// newTestViewWithTools is newTestView plus the link/alink/compile
// rule names WriteBinaryTarget needs; newTestView alone leaves Tools
// nil, which is fine for the Loader tests above but not for anything
// that calls into rulewriter.
func newTestViewWithTools(t *testing.T) *settings.ToolchainView {
	t.Helper()
	bs := settings.New()
	bs.SetRootPath("/src")
	bs.SetBuildDir(sourcepath.Dir("//out/Debug/"))
	label := settings.Label{Dir: "//build/toolchain/", Name: "clang"}
	tc := &settings.Toolchain{
		Label: label,
		Tools: map[settings.ToolType]settings.Tool{
			settings.ToolCXX:   {RuleName: "cxx"},
			settings.ToolCC:    {RuleName: "cc"},
			settings.ToolStamp: {RuleName: "stamp"},
			settings.ToolAlink: {RuleName: "alink"},
			settings.ToolLink:  {RuleName: "link"},
		},
	}
	return settings.NewToolchainView(bs, tc, label, settings.OSLinux, "")
}

// TestFullPipelineLinksAcrossDirectories loads a two-file buildfile
// tree through the Starlark host and the loader, resolves it, and
// writes the linked //:app executable's rule text, asserting the link
// line actually names //lib:util's static-library output.
func TestFullPipelineLinksAcrossDirectories(t *testing.T) {
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

	view := newTestViewWithTools(t)
	l := NewLoader(fs, view, 4)
	targets, errs := l.Load(context.Background(), "//")
	require.Empty(t, errs)
	require.Len(t, targets, 3)

	app := targetNamed(targets, "app")
	require.NotNil(t, app)

	rule := string(rulewriter.WriteBinaryTarget(app, view))
	require.Contains(t, rule, "lib/libutil.a", "link line must name //lib:util's static-library output:\n%s", rule)

	linkLine := ""
	for _, line := range strings.Split(rule, "\n") {
		if strings.HasPrefix(line, "build ") {
			linkLine = line
		}
	}
	require.Contains(t, linkLine, ": link ", "expected an executable link line, got %q", linkLine)
}
