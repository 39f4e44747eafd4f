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

// Package targetgen implements target generator dispatch (C6):
// given an evaluated scope and a declared output kind plus name, it
// pulls the kind's recognized variables out of the scope and builds
// a graph.Target. This is a tagged dispatch over graph.OutputKind,
// not a class hierarchy.
package targetgen

import (
	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/scope"
	"github.com/wesedens/gn/settings"
)

// Generate builds a target of the given kind from sc, named name, at
// pos (used only to locate any error). On failure the partial target
// is discarded; the caller should continue generating other targets.
func Generate(kind graph.OutputKind, sc scope.Scope, name string, pos bferr.Position) (*graph.Target, *bferr.BuildfileError) {
	if name == "" {
		return nil, bferr.Newf(pos, "target name must not be empty")
	}

	t := &graph.Target{
		Label:      settings.Label{Dir: sc.SourceDir(), Name: name},
		Toolchain:  sc.ToolchainLabel(),
		OutputType: kind,
	}

	if err := fillCommon(sc, t, pos); err != nil {
		return nil, err
	}

	switch kind {
	case graph.KindExecutable, graph.KindSharedLibrary, graph.KindStaticLibrary, graph.KindSourceSet:
		if err := fillBinary(sc, t, pos); err != nil {
			return nil, err
		}
	case graph.KindCopyFiles:
		if err := fillCopy(sc, t, pos); err != nil {
			return nil, err
		}
	case graph.KindCustom:
		if err := fillCustom(sc, t, pos); err != nil {
			return nil, err
		}
	case graph.KindGroup:
		// A group is purely a dep aggregator; the common fields are
		// all it needs.
	default:
		return nil, bferr.Newf(pos, "unknown output kind for target %q", name)
	}

	return t, nil
}
