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

// Package graph holds the target model (a tagged variant of output
// kinds, not a class hierarchy) and the dependency resolution pass
// that computes each target's inherited libraries and transitive lib
// search paths.
package graph

import (
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// OutputKind is the tag distinguishing the target's generator and
// writer behavior. Polymorphism over kinds is expressed as dispatch
// on this tag, never as an inheritance hierarchy.
type OutputKind int

const (
	KindUnknown OutputKind = iota
	KindGroup
	KindExecutable
	KindSharedLibrary
	KindStaticLibrary
	KindSourceSet
	KindCopyFiles
	KindCustom
)

var outputKindNames = map[OutputKind]string{
	KindGroup:         "group",
	KindExecutable:    "executable",
	KindSharedLibrary: "shared_library",
	KindStaticLibrary: "static_library",
	KindSourceSet:     "source_set",
	KindCopyFiles:     "copy",
	KindCustom:        "custom",
}

func (k OutputKind) String() string {
	if n, ok := outputKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// CanLink reports whether a target of this kind ends in a link step
// that takes its linkable dependencies' outputs as inputs on the link
// line: executables and shared libraries. Static libraries and source
// sets do not.
func (k OutputKind) CanLink() bool {
	return k == KindExecutable || k == KindSharedLibrary
}

// ConfigValues is the bundle of compile/link settings a Config or a
// target's own local attachment carries.
type ConfigValues struct {
	Defines  []string
	Includes []string

	CFlags      []string
	CFlagsC     []string
	CFlagsCC    []string
	CFlagsObjC  []string
	CFlagsObjCC []string

	LDFlags []string

	LibDirs []sourcepath.Dir
	Libs    []string
}

// Config is a named, immutable bundle of compile/link settings that
// can be attached to a target via Configs, AllDependentConfigs, or
// DirectDependentConfigs.
type Config struct {
	Label  string
	Values ConfigValues
}

// ScriptValues holds the custom-target-only script invocation.
type ScriptValues struct {
	Script  sourcepath.File
	Outputs []sourcepath.File
	Args    []string
}

// Target is keyed by its label (source-dir + name + toolchain-dir +
// toolchain-name, carried via settings.Label plus the toolchain it
// was generated under).
type Target struct {
	Label      settings.Label
	Toolchain  settings.Label
	OutputType OutputKind

	OutputName      string
	OutputExtension string

	Sources       []sourcepath.File
	SourcePrereqs []sourcepath.File
	Data          []sourcepath.File

	HardDep bool

	// DepLabels/DataDepLabels are what the generator (C6) produces
	// directly from a scope. The builder fills in Deps/DataDeps with
	// the corresponding *Target once every target for a load has been
	// registered; Resolve (C5) only ever reads the pointer form.
	DepLabels     []settings.Label
	DataDepLabels []settings.Label
	Deps          []*Target
	DataDeps      []*Target

	ConfigLabels                     []string
	AllDependentConfigLabels         []string
	DirectDependentConfigLabels      []string
	ForwardDependentConfigsFromLabels []settings.Label // subset of DepLabels

	Configs                 []*Config
	AllDependentConfigs     []*Config
	DirectDependentConfigs  []*Config
	ForwardDependentConfigs []*Target // subset of Deps

	ConfigValues ConfigValues
	ScriptValues *ScriptValues

	External bool
	GypFile  sourcepath.File

	// Derived by Resolve.
	InheritedLibraries []*Target
	AllLibDirs         []sourcepath.Dir
	AllLibs            []string
}

// ItemLabel implements settings.Item so a Target can be handed to a
// BuildSettings sink directly.
func (t *Target) ItemLabel() string {
	return t.Label.String()
}

// LinkLabels resolves every label-form edge (DepLabels, DataDepLabels,
// ConfigLabels, and so on) into its pointer form, using the supplied
// lookups. The builder calls this once every target in a load has
// been registered and before Resolve is called on any of them. An
// unresolved label is silently skipped; neither this method nor the
// builder reports it (a label into a directory with no buildfile is
// reported by the loader as a missing buildfile).
func (t *Target) LinkLabels(targets func(settings.Label) (*Target, bool), configs func(string) (*Config, bool)) {
	for _, l := range t.DepLabels {
		if d, ok := targets(l); ok {
			t.Deps = append(t.Deps, d)
		}
	}
	for _, l := range t.DataDepLabels {
		if d, ok := targets(l); ok {
			t.DataDeps = append(t.DataDeps, d)
		}
	}
	for _, name := range t.ConfigLabels {
		if c, ok := configs(name); ok {
			t.Configs = append(t.Configs, c)
		}
	}
	for _, name := range t.AllDependentConfigLabels {
		if c, ok := configs(name); ok {
			t.AllDependentConfigs = append(t.AllDependentConfigs, c)
		}
	}
	for _, name := range t.DirectDependentConfigLabels {
		if c, ok := configs(name); ok {
			t.DirectDependentConfigs = append(t.DirectDependentConfigs, c)
		}
	}
	for _, l := range t.ForwardDependentConfigsFromLabels {
		if d, ok := targets(l); ok {
			t.ForwardDependentConfigs = append(t.ForwardDependentConfigs, d)
		}
	}
}

// Resolve computes InheritedLibraries, AllLibDirs, AllLibs, and
// forwarded direct-dependent configs. It must be called after the
// target's own scope has been evaluated and every direct dependency
// has itself already been resolved; calling it twice on an
// already-resolved target yields byte-identical results.
func (t *Target) Resolve() {
	t.resolveInheritedLibraries()
	t.resolveLibDirsAndLibs()
	t.resolveForwardedConfigs()
}

func (t *Target) resolveInheritedLibraries() {
	inherited := newOrderedSet[*Target]()
	for _, d := range t.Deps {
		switch d.OutputType {
		case KindStaticLibrary, KindSourceSet:
			inherited.Add(d)
			for _, lib := range d.InheritedLibraries {
				inherited.Add(lib)
			}
		case KindSharedLibrary:
			// A shared library blocks further propagation of the
			// static linkables beneath it, but is itself inherited.
			inherited.Add(d)
		}
	}
	t.InheritedLibraries = inherited.Items()
}

func (t *Target) resolveLibDirsAndLibs() {
	dirs := newOrderedSet[sourcepath.Dir]()
	libs := newOrderedSet[string]()

	for _, cfg := range t.Configs {
		for _, d := range cfg.Values.LibDirs {
			dirs.Add(d)
		}
		for _, l := range cfg.Values.Libs {
			libs.Add(l)
		}
	}
	for _, inh := range t.InheritedLibraries {
		for _, d := range inh.AllLibDirs {
			dirs.Add(d)
		}
		for _, l := range inh.AllLibs {
			libs.Add(l)
		}
	}

	t.AllLibDirs = dirs.Items()
	t.AllLibs = libs.Items()
}

func (t *Target) resolveForwardedConfigs() {
	configs := newOrderedSet[*Config]()
	for _, c := range t.DirectDependentConfigs {
		configs.Add(c)
	}
	for _, dep := range t.ForwardDependentConfigs {
		for _, c := range dep.DirectDependentConfigs {
			configs.Add(c)
		}
	}
	t.DirectDependentConfigs = configs.Items()
}
