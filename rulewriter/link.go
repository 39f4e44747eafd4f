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

func outputBaseName(t *graph.Target) string {
	if t.OutputName != "" {
		return t.OutputName
	}
	return t.Label.Name
}

func outputExtensionFor(t *graph.Target, os settings.TargetOS) string {
	if t.OutputExtension != "" {
		return t.OutputExtension
	}
	return defaultOutputExtension(t.OutputType, os)
}

// targetOutputFile is the location of a target's linked output: it
// sits directly under the toolchain output directory (optionally
// nested under "lib/" for Unix shared/static libraries), never
// mirroring the source tree the way object files do.
func targetOutputFile(t *graph.Target, tv *settings.ToolchainView, os settings.TargetOS) sourcepath.File {
	prefix, subdir := outputPrefixAndSubdir(t.OutputType, os)
	filename := prefix + outputBaseName(t)
	if ext := outputExtensionFor(t, os); ext != "" {
		filename += "." + ext
	}
	return sourcepath.File(string(tv.ToolchainOutputDir()) + subdir + filename)
}

// outputFilePair returns (internal, external): identical except for
// a shared library on Windows, where the external file is the import
// library (per the platform extension table) and the internal file
// is the actual DLL.
func outputFilePair(t *graph.Target, tv *settings.ToolchainView, os settings.TargetOS) (internal, external sourcepath.File) {
	external = targetOutputFile(t, tv, os)
	internal = external
	if t.OutputType == graph.KindSharedLibrary && os == settings.OSWindows {
		internal = sourcepath.File(string(tv.ToolchainOutputDir()) + outputBaseName(t) + ".dll")
	}
	return internal, external
}

func toolForKind(kind graph.OutputKind) (settings.ToolType, bool) {
	switch kind {
	case graph.KindExecutable:
		return settings.ToolLink, true
	case graph.KindSharedLibrary:
		return settings.ToolSolink, true
	case graph.KindStaticLibrary:
		return settings.ToolAlink, true
	default:
		return 0, false
	}
}

// stampFilePath is the ordering-only stamp a source-set target
// produces in place of a real link output.
func stampFilePath(t *graph.Target, tv *settings.ToolchainView) sourcepath.File {
	return sourcepath.File(fmt.Sprintf("%s%s.stamp", tv.OutputDirFor(t.Label.Dir), t.Label.Name))
}

// outputFileForImplicitDep picks the single file a non-linkable
// dependency contributes to an implicit-deps tail: a source set's
// stamp, a binary's external output file, or a copy/custom target's
// first declared output. A group (or any kind with no discernible
// single output) contributes nothing.
func outputFileForImplicitDep(dep *graph.Target, tv *settings.ToolchainView, os settings.TargetOS) (sourcepath.File, bool) {
	switch dep.OutputType {
	case graph.KindSourceSet:
		return stampFilePath(dep, tv), true
	case graph.KindExecutable, graph.KindSharedLibrary, graph.KindStaticLibrary:
		_, external := outputFilePair(dep, tv, os)
		return external, true
	case graph.KindCopyFiles, graph.KindCustom:
		if dep.ScriptValues != nil && len(dep.ScriptValues.Outputs) > 0 {
			return dep.ScriptValues.Outputs[0], true
		}
		return "", false
	default:
		return "", false
	}
}

func implicitDepsTail(tv *settings.ToolchainView, os settings.TargetOS, nonLinkable []*graph.Target, data []sourcepath.File) string {
	var files []string
	for _, dep := range nonLinkable {
		if f, ok := outputFileForImplicitDep(dep, tv, os); ok {
			files = append(files, rel(tv, f))
		}
	}
	for _, d := range data {
		files = append(files, rel(tv, d))
	}
	if len(files) == 0 {
		return ""
	}
	return " || " + strings.Join(files, " ")
}

// writeLinkStuff emits the manifest/ldflags/libs lines, the link
// build statement, and any library-specific indented variables, per
// spec.md §4.6.3. It is skipped for source-set targets (handled
// separately by writeSourceSetStamp).
func writeLinkStuff(w io.Writer, t *graph.Target, tv *settings.ToolchainView, tools map[settings.ToolType]settings.Tool, os settings.TargetOS, objects []sourcepath.File, cls depClassification) {
	tool, ok := toolForKind(t.OutputType)
	if !ok {
		return
	}
	ruleTool, ok := tools[tool]
	if !ok {
		return
	}

	var manifest sourcepath.File
	if os == settings.OSWindows {
		manifest = sourcepath.File(fmt.Sprintf("%s%s.intermediate.manifest", tv.OutputDirFor(t.Label.Dir), outputBaseName(t)))
		fmt.Fprintf(w, "manifests = %s\n", rel(tv, manifest))
	}

	ldflagTokens := RuleEscapeList(recursiveConfigWalk(t, func(cv graph.ConfigValues) []string { return cv.LDFlags }))
	for _, dir := range t.AllLibDirs {
		ldflagTokens = append(ldflagTokens, ruleTool.LibDirPrefix+ShellEscape(strings.TrimSuffix(rel(tv, sourcepath.File(dir)), "/")))
	}
	if os == settings.OSWindows {
		ldflagTokens = append(ldflagTokens, "/MANIFEST", "/ManifestFile:"+rel(tv, manifest))
	}
	emitVar(w, "ldflags", strings.Join(ldflagTokens, " "))

	var libTokens []string
	for _, lib := range t.AllLibs {
		if os == settings.OSMac && strings.HasSuffix(lib, ".framework") {
			stem := strings.TrimSuffix(lib, ".framework")
			libTokens = append(libTokens, "-framework", ShellEscape(stem))
			continue
		}
		libTokens = append(libTokens, ruleTool.LibPrefix+ShellEscape(lib))
	}
	emitVar(w, "libs", strings.Join(libTokens, " "))

	internal, external := outputFilePair(t, tv, os)

	var inputs []string
	for _, o := range objects {
		inputs = append(inputs, rel(tv, o))
	}
	for _, o := range cls.ExtraObjects {
		inputs = append(inputs, rel(tv, o))
	}
	for _, dep := range cls.Linkable {
		_, depExternal := outputFilePair(dep, tv, os)
		inputs = append(inputs, rel(tv, depExternal))
	}

	outputs := rel(tv, internal)
	if internal != external {
		outputs += " " + rel(tv, external)
	}

	fmt.Fprintf(w, "build %s: %s%s %s%s\n", outputs, tv.RulePrefix(), ruleTool.RuleName, strings.Join(inputs, " "), implicitDepsTail(tv, os, cls.NonLinkable, t.Data))

	if t.OutputType == graph.KindSharedLibrary {
		fmt.Fprintf(w, "  soname = %s\n", sourcepath.FindFilename(string(internal)))
		fmt.Fprintf(w, "  lib = %s\n", rel(tv, internal))
		if os == settings.OSWindows {
			fmt.Fprintf(w, "  dll = %s\n", rel(tv, internal))
			fmt.Fprintf(w, "  implibflag = /IMPLIB:%s\n", rel(tv, external))
		}
	}
}
