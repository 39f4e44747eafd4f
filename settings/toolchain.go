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

package settings

import (
	"strings"

	"github.com/wesedens/gn/sourcepath"
)

// TargetOS identifies the platform a toolchain produces binaries for.
// This is always about the generated rule text (extensions, link
// flags), never about the host machine running this generator.
type TargetOS int

const (
	OSUnknown TargetOS = iota
	OSLinux
	OSMac
	OSWindows
)

func (o TargetOS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSMac:
		return "mac"
	case OSWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// ToolType names one of a toolchain's fixed set of build steps.
type ToolType int

const (
	ToolCC ToolType = iota
	ToolCXX
	ToolObjC
	ToolObjCXX
	ToolASM
	ToolRC
	ToolAlink
	ToolSolink
	ToolLink
	ToolStamp
)

var toolTypeNames = map[ToolType]string{
	ToolCC:     "cc",
	ToolCXX:    "cxx",
	ToolObjC:   "objc",
	ToolObjCXX: "objcxx",
	ToolASM:    "asm",
	ToolRC:     "rc",
	ToolAlink:  "alink",
	ToolSolink: "solink",
	ToolLink:   "link",
	ToolStamp:  "stamp",
}

func (t ToolType) String() string {
	if n, ok := toolTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// Tool is the per-step rule metadata the binary rule writer needs:
// which rule name to emit a build line against, and the prefixes it
// must glue onto library names and library search directories.
type Tool struct {
	RuleName     string
	LibPrefix    string
	LibDirPrefix string
}

// Toolchain is the label and per-target-OS tool table for one
// toolchain definition. Label is the label of the toolchain() target
// that declared it.
type Toolchain struct {
	Label Label
	Tools map[ToolType]Tool
}

// GetTool looks up the rule metadata for one build step. Returns the
// zero Tool and false if the toolchain doesn't define that step.
func (tc *Toolchain) GetTool(t ToolType) (Tool, bool) {
	if tc == nil || tc.Tools == nil {
		return Tool{}, false
	}
	tool, ok := tc.Tools[t]
	return tool, ok
}

// Label identifies a toolchain or target by its source-absolute
// directory and name, e.g. //build/toolchain:clang.
type Label struct {
	Dir  sourcepath.Dir
	Name string
}

func (l Label) String() string {
	dir := string(l.Dir)
	dir = strings.TrimSuffix(dir, "/")
	return dir + ":" + l.Name
}

// ToolchainView is the read-only per-toolchain lens over a shared
// BuildSettings: every output/gen directory derivation a target or
// scope needs goes through here, never through BuildSettings
// directly, so a buildfile loaded under one toolchain never
// accidentally computes another toolchain's paths.
type ToolchainView struct {
	settings *BuildSettings

	toolchain             *Toolchain
	defaultToolchainLabel Label
	targetOS              TargetOS

	// toolchainOutputSubdir is empty for the default toolchain;
	// otherwise a directory segment ending in "/", e.g. "host/".
	toolchainOutputSubdir string
}

// NewToolchainView builds a view of settings for one toolchain.
// subdir must be "" or end in "/".
func NewToolchainView(settings *BuildSettings, tc *Toolchain, defaultToolchainLabel Label, targetOS TargetOS, subdir string) *ToolchainView {
	if subdir != "" && !strings.HasSuffix(subdir, "/") {
		panic("settings: toolchain output subdir must end in \"/\"")
	}
	return &ToolchainView{
		settings:              settings,
		toolchain:             tc,
		defaultToolchainLabel: defaultToolchainLabel,
		targetOS:              targetOS,
		toolchainOutputSubdir: subdir,
	}
}

func (v *ToolchainView) Settings() *BuildSettings { return v.settings }

func (v *ToolchainView) Toolchain() *Toolchain { return v.toolchain }

func (v *ToolchainView) ToolchainLabel() Label { return v.toolchain.Label }

func (v *ToolchainView) DefaultToolchainLabel() Label { return v.defaultToolchainLabel }

func (v *ToolchainView) IsDefaultToolchain() bool {
	return v.toolchain.Label == v.defaultToolchainLabel
}

// RulePrefix is the string the link rule writer glues onto a tool
// name (e.g. "host_link" instead of "link") so that two toolchains
// sharing one rules file never collide on a rule name. It is empty
// for the default toolchain, which keeps the common case's rule names
// unprefixed.
func (v *ToolchainView) RulePrefix() string {
	if v.IsDefaultToolchain() {
		return ""
	}
	return v.toolchain.Label.Name + "_"
}

func (v *ToolchainView) TargetOS() TargetOS { return v.targetOS }

// ToolchainOutputDir returns build_dir + toolchain_output_subdir, a
// source-absolute directory.
func (v *ToolchainView) ToolchainOutputDir() sourcepath.Dir {
	return sourcepath.Dir(string(v.settings.BuildDir()) + v.toolchainOutputSubdir)
}

// ToolchainGenDir returns ToolchainOutputDir + "gen/".
func (v *ToolchainView) ToolchainGenDir() sourcepath.Dir {
	return sourcepath.Dir(string(v.ToolchainOutputDir()) + "gen/")
}

// tail strips the leading "//" a source-absolute directory always
// carries, leaving the part to be rebased under obj/ or gen/.
func tail(dir sourcepath.Dir) string {
	return strings.TrimPrefix(string(dir), "//")
}

// OutputDirFor returns the object-file output directory that mirrors
// sourceDir's position in the source tree.
func (v *ToolchainView) OutputDirFor(sourceDir sourcepath.Dir) sourcepath.Dir {
	return sourcepath.Dir(string(v.ToolchainOutputDir()) + "obj/" + tail(sourceDir))
}

// GenDirFor returns the generated-file output directory that mirrors
// sourceDir's position in the source tree.
func (v *ToolchainView) GenDirFor(sourceDir sourcepath.Dir) sourcepath.Dir {
	return sourcepath.Dir(string(v.ToolchainGenDir()) + tail(sourceDir))
}

// TargetOutputDir returns the object-file output directory for the
// directory a target's label lives in.
func (v *ToolchainView) TargetOutputDir(targetDirLabel sourcepath.Dir) sourcepath.Dir {
	return v.OutputDirFor(targetDirLabel)
}

// TargetGenDir returns the generated-file output directory for the
// directory a target's label lives in.
func (v *ToolchainView) TargetGenDir(targetDirLabel sourcepath.Dir) sourcepath.Dir {
	return v.GenDirFor(targetDirLabel)
}
