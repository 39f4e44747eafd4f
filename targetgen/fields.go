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

package targetgen

import (
	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/scope"
	"github.com/wesedens/gn/sourcepath"
)

func getStringList(sc scope.Scope, name string) ([]string, bool, error) {
	v, ok := sc.GetValue(name)
	if !ok {
		return nil, false, nil
	}
	list, ok := v.AsStringList()
	if !ok {
		return nil, true, errNotAStringList(name)
	}
	return list, true, nil
}

func getString(sc scope.Scope, name string) (string, bool, error) {
	v, ok := sc.GetValue(name)
	if !ok {
		return "", false, nil
	}
	if v.Kind != scope.KindString {
		return "", true, errWrongType(name, "string")
	}
	return v.Str, true, nil
}

func getBool(sc scope.Scope, name string) (bool, bool, error) {
	v, ok := sc.GetValue(name)
	if !ok {
		return false, false, nil
	}
	if v.Kind != scope.KindBool {
		return false, true, errWrongType(name, "bool")
	}
	return v.Bool, true, nil
}

func errNotAStringList(name string) error {
	return bferr.Newf(bferr.Position{}, "%q must be a list of strings", name).Err
}

func errWrongType(name, want string) error {
	return bferr.Newf(bferr.Position{}, "%q must be a %s", name, want).Err
}

// fillCommon pulls the variables every output kind recognizes:
// data, deps, datadeps, all_dependent_configs, direct_dependent_configs,
// forward_dependent_configs_from, hard_dep, gyp_file.
func fillCommon(sc scope.Scope, t *graph.Target, pos bferr.Position) *bferr.BuildfileError {
	dir := sc.SourceDir()

	if raw, _, err := getStringList(sc, "data"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.Data = resolveFiles(dir, raw)
	}

	if raw, _, err := getStringList(sc, "deps"); err != nil {
		return bferr.New(pos, err)
	} else if labels, err := resolveLabels(dir, raw); err != nil {
		return bferr.New(pos, err)
	} else {
		t.DepLabels = labels
	}

	if raw, _, err := getStringList(sc, "datadeps"); err != nil {
		return bferr.New(pos, err)
	} else if labels, err := resolveLabels(dir, raw); err != nil {
		return bferr.New(pos, err)
	} else {
		t.DataDepLabels = labels
	}

	if raw, _, err := getStringList(sc, "all_dependent_configs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.AllDependentConfigLabels = raw
	}

	if raw, _, err := getStringList(sc, "direct_dependent_configs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.DirectDependentConfigLabels = raw
	}

	if raw, _, err := getStringList(sc, "forward_dependent_configs_from"); err != nil {
		return bferr.New(pos, err)
	} else if labels, err := resolveLabels(dir, raw); err != nil {
		return bferr.New(pos, err)
	} else {
		t.ForwardDependentConfigsFromLabels = labels
	}

	if v, present, err := getBool(sc, "hard_dep"); err != nil {
		return bferr.New(pos, err)
	} else if present {
		t.HardDep = v
	}

	if v, _, err := getString(sc, "gyp_file"); err != nil {
		return bferr.New(pos, err)
	} else if v != "" {
		t.GypFile = resolveFile(dir, v)
	}

	return nil
}

// fillBinary additionally pulls sources, source_prereqs, configs,
// output_name, output_extension, and external — the variables
// executable/shared_library/static_library/source_set recognize.
func fillBinary(sc scope.Scope, t *graph.Target, pos bferr.Position) *bferr.BuildfileError {
	dir := sc.SourceDir()

	if raw, _, err := getStringList(sc, "sources"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.Sources = resolveFiles(dir, raw)
	}

	if raw, _, err := getStringList(sc, "source_prereqs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.SourcePrereqs = resolveFiles(dir, raw)
	}

	if raw, _, err := getStringList(sc, "configs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.ConfigLabels = raw
	}

	if v, _, err := getString(sc, "output_name"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.OutputName = v
	}

	if v, _, err := getString(sc, "output_extension"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.OutputExtension = v
	}

	if v, present, err := getBool(sc, "external"); err != nil {
		return bferr.New(pos, err)
	} else if present {
		t.External = v
	}

	return nil
}

// fillCopy pulls sources and outputs; copy targets have no configs.
func fillCopy(sc scope.Scope, t *graph.Target, pos bferr.Position) *bferr.BuildfileError {
	dir := sc.SourceDir()

	if raw, _, err := getStringList(sc, "sources"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.Sources = resolveFiles(dir, raw)
	}

	outputs, _, err := getStringList(sc, "outputs")
	if err != nil {
		return bferr.New(pos, err)
	}
	if err := validateOutputs(sc, outputs, pos); err != nil {
		return err
	}
	t.ScriptValues = &graph.ScriptValues{Outputs: resolveFiles(dir, outputs)}

	return nil
}

// fillCustom pulls sources, source_prereqs, script, outputs, args,
// configs, and external.
func fillCustom(sc scope.Scope, t *graph.Target, pos bferr.Position) *bferr.BuildfileError {
	dir := sc.SourceDir()

	if raw, _, err := getStringList(sc, "sources"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.Sources = resolveFiles(dir, raw)
	}

	if raw, _, err := getStringList(sc, "source_prereqs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.SourcePrereqs = resolveFiles(dir, raw)
	}

	if raw, _, err := getStringList(sc, "configs"); err != nil {
		return bferr.New(pos, err)
	} else {
		t.ConfigLabels = raw
	}

	if v, present, err := getBool(sc, "external"); err != nil {
		return bferr.New(pos, err)
	} else if present {
		t.External = v
	}

	script, _, err := getString(sc, "script")
	if err != nil {
		return bferr.New(pos, err)
	}
	args, _, err := getStringList(sc, "args")
	if err != nil {
		return bferr.New(pos, err)
	}
	outputs, _, err := getStringList(sc, "outputs")
	if err != nil {
		return bferr.New(pos, err)
	}
	if err := validateOutputs(sc, outputs, pos); err != nil {
		return err
	}

	t.ScriptValues = &graph.ScriptValues{
		Script:  resolveFile(dir, script),
		Outputs: resolveFiles(dir, outputs),
		Args:    args,
	}
	return nil
}

// validateOutputs enforces that every declared output lands inside
// the toolchain's output directory, catching the "value intended for
// output placed outside the output directory" user error named in
// spec.md §7.
func validateOutputs(sc scope.Scope, outputs []string, pos bferr.Position) *bferr.BuildfileError {
	outDir := sc.Settings().ToolchainOutputDir()
	for _, raw := range outputs {
		f := resolveFile(sc.SourceDir(), raw)
		if !sourcepath.EnsureStringIsInOutputDir(outDir, string(f)) {
			return bferr.Newf(pos, "output %q is not inside the output directory %q", f, outDir)
		}
	}
	return nil
}
