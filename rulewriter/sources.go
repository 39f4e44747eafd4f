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
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// rel rebases an absolute source-absolute path to be relative to the
// toolchain's output directory, which is where the rule file's
// relative paths are always anchored.
func rel(tv *settings.ToolchainView, f sourcepath.File) string {
	return sourcepath.Rebase(f, tv.ToolchainOutputDir())
}

// objectFilePath computes the object-file output for one source of a
// target named name living in dirLabel, per spec.md §4.6.2:
// target_output_dir(t) + name + "." + basename_without_ext(source) +
// "." + object_ext(os).
func objectFilePath(tv *settings.ToolchainView, dirLabel sourcepath.Dir, name string, source sourcepath.File, os settings.TargetOS) sourcepath.File {
	base := sourcepath.FindFilenameNoExtension(string(source))
	dir := tv.OutputDirFor(dirLabel)
	return sourcepath.File(fmt.Sprintf("%s%s.%s.%s", dir, name, base, objectExtension(os)))
}

// compileStep pairs a compilable source with the tool that compiles
// it and the object file it produces.
type compileStep struct {
	Source sourcepath.File
	Tool   settings.ToolType
	Object sourcepath.File
}

// compileSteps classifies t's sources by extension, dropping anything
// unrecognized or non-compilable (headers, in particular), and
// computes each one's object-file output.
func compileSteps(t *graph.Target, tv *settings.ToolchainView, os settings.TargetOS) []compileStep {
	var steps []compileStep
	for _, src := range t.Sources {
		ext := sourcepath.FindExtension(string(src))
		tool, ok := sourceFileClass(ext, os)
		if !ok {
			continue
		}
		steps = append(steps, compileStep{
			Source: src,
			Tool:   tool,
			Object: objectFilePath(tv, t.Label.Dir, t.Label.Name, src, os),
		})
	}
	return steps
}

// writeCompileLines writes one "build <obj>: <rule> <source>" line
// per compilable source, in source order, with an implicit-deps tail
// for the target's source prereqs on every line. It returns the list
// of object files produced, in the same order.
func writeCompileLines(w io.Writer, t *graph.Target, tv *settings.ToolchainView, tools map[settings.ToolType]settings.Tool, os settings.TargetOS) []sourcepath.File {
	steps := compileSteps(t, tv, os)

	var prereqTail string
	if len(t.SourcePrereqs) > 0 {
		parts := make([]string, len(t.SourcePrereqs))
		for i, p := range t.SourcePrereqs {
			parts[i] = rel(tv, p)
		}
		prereqTail = " || " + strings.Join(parts, " ")
	}

	objects := make([]sourcepath.File, 0, len(steps))
	for _, step := range steps {
		tool, ok := tools[step.Tool]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "build %s: %s %s%s\n", rel(tv, step.Object), tool.RuleName, rel(tv, step.Source), prereqTail)
		objects = append(objects, step.Object)
	}
	return objects
}
