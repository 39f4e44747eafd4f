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

// Package starlarkhost wraps go.starlark.net to evaluate one
// buildfile: it predeclares the target- and config-declaring
// builtins, converts each call's arguments into the Scope shape C6
// and C7 consume, and turns Starlark evaluation errors into the
// located BuildfileError type the rest of the core uses.
package starlarkhost

import (
	"errors"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/scope"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
	"go.starlark.net/starlark"
)

// Host evaluates a single buildfile. It doubles as the minimal Scope
// a scope.Provider needs for programmatic identifiers (§4.5), since
// those never depend on which target is currently being declared —
// only on the file's source directory and toolchain.
type Host struct {
	filename       string
	sourceDir      sourcepath.Dir
	toolchainLabel settings.Label
	view           *settings.ToolchainView
	provider       *scope.Provider

	Targets    []*graph.Target
	Configs    map[string]*graph.Config
	Toolchains map[string]*settings.Toolchain
	Errors     []*bferr.BuildfileError
}

// NewHost builds a host for one buildfile loaded under the given
// source directory and toolchain.
func NewHost(filename string, sourceDir sourcepath.Dir, toolchainLabel settings.Label, view *settings.ToolchainView) *Host {
	h := &Host{
		filename:       filename,
		sourceDir:      sourceDir,
		toolchainLabel: toolchainLabel,
		view:           view,
		Configs:        make(map[string]*graph.Config),
		Toolchains:     make(map[string]*settings.Toolchain),
	}
	h.provider = scope.NewProvider(h)
	return h
}

func (h *Host) SourceDir() sourcepath.Dir         { return h.sourceDir }
func (h *Host) ToolchainLabel() settings.Label    { return h.toolchainLabel }
func (h *Host) Settings() *settings.ToolchainView { return h.view }
func (h *Host) ProgrammaticNames() []string       { return scope.ProgrammaticNames }

// GetValue never resolves a declarative buildfile variable for the
// host itself and always reports false. The host is the Scope of its
// own scope.Provider, whose compute() reads only SourceDir,
// ToolchainLabel and Settings and never calls GetValue.
func (h *Host) GetValue(name string) (scope.Value, bool) { return scope.Value{}, false }

func (h *Host) label(name string) settings.Label {
	return settings.Label{Dir: h.sourceDir, Name: name}
}

// Predeclared builds the Starlark global namespace for this buildfile.
func (h *Host) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"executable":     starlark.NewBuiltin("executable", h.targetBuiltin(graph.KindExecutable)),
		"static_library": starlark.NewBuiltin("static_library", h.targetBuiltin(graph.KindStaticLibrary)),
		"shared_library": starlark.NewBuiltin("shared_library", h.targetBuiltin(graph.KindSharedLibrary)),
		"source_set":     starlark.NewBuiltin("source_set", h.targetBuiltin(graph.KindSourceSet)),
		"group":          starlark.NewBuiltin("group", h.targetBuiltin(graph.KindGroup)),
		"copy":           starlark.NewBuiltin("copy", h.targetBuiltin(graph.KindCopyFiles)),
		"custom":         starlark.NewBuiltin("custom", h.targetBuiltin(graph.KindCustom)),
		"config":         starlark.NewBuiltin("config", h.configBuiltin),
		"toolchain":      starlark.NewBuiltin("toolchain", h.toolchainBuiltin),
	}
}

// Load parses and evaluates src as this host's buildfile, returning
// every target it declared along with any located errors. A Starlark
// syntax or evaluation error is wrapped and appended to Errors rather
// than aborting: the caller decides whether a partial result is
// usable.
func (h *Host) Load(src []byte) ([]*graph.Target, []*bferr.BuildfileError) {
	thread := &starlark.Thread{Name: h.filename}
	if _, err := starlark.ExecFile(thread, h.filename, src, h.Predeclared()); err != nil {
		h.Errors = append(h.Errors, h.wrapError(err))
	}
	return h.Targets, h.Errors
}

// wrapError turns a Starlark syntax or evaluation error into a
// BuildfileError. go.starlark.net only exposes a call's position
// through *EvalError's formatted backtrace, not as structured
// line/col fields a builtin can read mid-call, so positions recorded
// here (and by targetBuiltin below) carry the buildfile path only.
func (h *Host) wrapError(err error) *bferr.BuildfileError {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return bferr.New(bferr.Position{File: h.filename}, errors.New(evalErr.Backtrace()))
	}
	return bferr.New(bferr.Position{File: h.filename}, err)
}

func (h *Host) callerPosition(thread *starlark.Thread) bferr.Position {
	return bferr.Position{File: h.filename}
}
