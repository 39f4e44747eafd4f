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

package starlarkhost

import (
	"fmt"
	"strings"

	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
	"github.com/wesedens/gn/targetgen"
	"go.starlark.net/starlark"
)

// requireName validates the one positional string argument every
// target- and config-declaring builtin takes, mirroring
// TargetGenerator::GenerateTarget's arity/type check.
func requireName(b *starlark.Builtin, args starlark.Tuple) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected exactly one positional argument (name), got %d", b.Name(), len(args))
	}
	name, ok := starlark.AsString(args[0])
	if !ok {
		return "", fmt.Errorf("%s: name must be a string, got %s", b.Name(), args[0].Type())
	}
	return name, nil
}

// targetBuiltin returns the starlark.Builtin implementation for one
// target kind: validate the name, snapshot the call's keyword
// arguments into a Scope, and hand both to C6's dispatch.
func (h *Host) targetBuiltin(kind graph.OutputKind) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		name, err := requireName(b, args)
		if err != nil {
			return nil, err
		}
		values, err := kwargsToValues(b.Name(), kwargs)
		if err != nil {
			return nil, err
		}

		sc := &kwScope{host: h, values: values}
		pos := h.callerPosition(thread)

		t, buildfileErr := targetgen.Generate(kind, sc, name, pos)
		if buildfileErr != nil {
			h.Errors = append(h.Errors, buildfileErr)
			return starlark.None, nil
		}
		h.Targets = append(h.Targets, t)
		return starlark.None, nil
	}
}

// resolveDir resolves a directory string the same way targetgen
// resolves file paths (source-absolute spellings pass through
// normalized; relative ones resolve against sourceDir first), for
// the config() builtin's lib_dirs/includes.
func resolveDir(sourceDir sourcepath.Dir, raw string) sourcepath.Dir {
	if strings.HasPrefix(raw, "//") {
		return sourcepath.Dir(sourcepath.Normalize(raw))
	}
	return sourcepath.Dir(sourcepath.Normalize(string(sourceDir) + raw))
}

func (h *Host) configBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	name, err := requireName(b, args)
	if err != nil {
		return nil, err
	}
	values, err := kwargsToValues(b.Name(), kwargs)
	if err != nil {
		return nil, err
	}

	stringList := func(key string) []string {
		v, ok := values[key]
		if !ok {
			return nil
		}
		ss, ok := v.AsStringList()
		if !ok {
			return nil
		}
		return ss
	}

	cv := graph.ConfigValues{
		Defines:     stringList("defines"),
		Includes:    stringList("includes"),
		CFlags:      stringList("cflags"),
		CFlagsC:     stringList("cflags_c"),
		CFlagsCC:    stringList("cflags_cc"),
		CFlagsObjC:  stringList("cflags_objc"),
		CFlagsObjCC: stringList("cflags_objcc"),
		LDFlags:     stringList("ldflags"),
		Libs:        stringList("libs"),
	}
	for _, raw := range stringList("lib_dirs") {
		cv.LibDirs = append(cv.LibDirs, resolveDir(h.sourceDir, raw))
	}

	lbl := h.label(name)
	h.Configs[lbl.String()] = &graph.Config{Label: lbl.String(), Values: cv}
	return starlark.None, nil
}

// toolchainRuleKeys maps the flat keyword-argument names the
// toolchain() builtin accepts onto the tool type they configure.
var toolchainRuleKeys = map[string]settings.ToolType{
	"cc":     settings.ToolCC,
	"cxx":    settings.ToolCXX,
	"objc":   settings.ToolObjC,
	"objcxx": settings.ToolObjCXX,
	"asm":    settings.ToolASM,
	"rc":     settings.ToolRC,
	"alink":  settings.ToolAlink,
	"solink": settings.ToolSolink,
	"link":   settings.ToolLink,
	"stamp":  settings.ToolStamp,
}

// toolchainBuiltin declares a toolchain: one rule-name keyword
// argument per tool type, plus lib_prefix/lib_dir_prefix applied to
// whichever of the three linking tools (alink, solink, link) are
// declared.
func (h *Host) toolchainBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	name, err := requireName(b, args)
	if err != nil {
		return nil, err
	}
	strs := kwargsToStrings(kwargs)

	tools := make(map[settings.ToolType]settings.Tool)
	for key, toolType := range toolchainRuleKeys {
		if ruleName, ok := strs[key]; ok {
			tools[toolType] = settings.Tool{RuleName: ruleName}
		}
	}

	libPrefix, libDirPrefix := strs["lib_prefix"], strs["lib_dir_prefix"]
	for _, toolType := range []settings.ToolType{settings.ToolAlink, settings.ToolSolink, settings.ToolLink} {
		t, ok := tools[toolType]
		if !ok {
			continue
		}
		t.LibPrefix = libPrefix
		t.LibDirPrefix = libDirPrefix
		tools[toolType] = t
	}

	lbl := h.label(name)
	h.Toolchains[lbl.String()] = &settings.Toolchain{Label: lbl, Tools: tools}
	return starlark.None, nil
}
