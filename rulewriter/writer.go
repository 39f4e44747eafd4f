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

// Package rulewriter turns a resolved binary target into the rule
// text ninja consumes: per-source compile lines, a link or stamp
// step, and the variable assignments those steps read. It never
// touches the filesystem; callers collect the written text and
// assemble a full build.rules file themselves.
package rulewriter

import (
	"bytes"

	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/settings"
)

// WriteBinaryTarget writes one binary target's rule text (source_set,
// executable, shared_library, or static_library) following the six
// steps of spec.md §4.6: compiler variables, per-source compile
// lines, dependency classification, link stuff (or, for source sets,
// a stamp), with the implicit-deps tail folded into both. For any
// other kind (group, copy, custom) it returns nil; no rule text is
// written for those kinds.
func WriteBinaryTarget(t *graph.Target, tv *settings.ToolchainView) []byte {
	switch t.OutputType {
	case graph.KindGroup:
		return nil
	case graph.KindSourceSet, graph.KindExecutable, graph.KindSharedLibrary, graph.KindStaticLibrary:
	default:
		return nil
	}

	tools := tv.Toolchain().Tools
	os := tv.TargetOS()

	var buf bytes.Buffer
	writeCompilerVars(&buf, t)
	buf.WriteByte('\n')
	objects := writeCompileLines(&buf, t, tv, tools, os)
	buf.WriteByte('\n')
	cls := classifyDeps(t, tv, os)

	if t.OutputType == graph.KindSourceSet {
		writeSourceSetStamp(&buf, t, tv, tools, os, objects, cls)
	} else {
		writeLinkStuff(&buf, t, tv, tools, os, objects, cls)
	}

	return buf.Bytes()
}
