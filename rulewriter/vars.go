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

package rulewriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/sourcepath"
)

// recursiveConfigWalk collects one field out of a target's own local
// config_values followed by each attached config's config_values, in
// that order — the walk spec.md §4.6.1 calls for.
func recursiveConfigWalk(t *graph.Target, field func(graph.ConfigValues) []string) []string {
	var out []string
	out = append(out, field(t.ConfigValues)...)
	for _, cfg := range t.Configs {
		out = append(out, field(cfg.Values)...)
	}
	return out
}

// emitVar writes "name =" when value is empty, or "name = value"
// otherwise; ninja/rule-file variable assignment syntax never emits a
// trailing space on an empty value.
func emitVar(w io.Writer, name, value string) {
	if value == "" {
		fmt.Fprintf(w, "%s =\n", name)
		return
	}
	fmt.Fprintf(w, "%s = %s\n", name, value)
}

func writeCompilerVars(w io.Writer, t *graph.Target) {
	defines := recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.Defines })
	definesOut := make([]string, len(defines))
	for i, d := range defines {
		definesOut[i] = "-D" + RuleAndShellEscape(d)
	}
	emitVar(w, "defines", strings.Join(definesOut, " "))

	includes := recursiveConfigWalk(t, func(cv graph.ConfigValues) []string {
		strs := make([]string, len(cv.Includes))
		copy(strs, cv.Includes)
		return strs
	})
	includesOut := make([]string, len(includes))
	for i, inc := range includes {
		includesOut[i] = `"-I` + sourcepath.DirectoryWithNoLastSlash(sourcepath.Dir(inc)) + `"`
	}
	emitVar(w, "includes", strings.Join(includesOut, " "))

	emitVar(w, "cflags", strings.Join(RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.CFlags })), " "))
	emitVar(w, "cflags_c", strings.Join(RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.CFlagsC })), " "))
	emitVar(w, "cflags_cc", strings.Join(RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.CFlagsCC })), " "))
	emitVar(w, "cflags_objc", strings.Join(RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.CFlagsObjC })), " "))
	emitVar(w, "cflags_objcc", strings.Join(RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.CFlagsObjCC })), " "))
}
