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
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// depClassification is the result of classifying every candidate
// dependency of a target per spec.md §4.6.4.
type depClassification struct {
	Linkable     []*graph.Target
	NonLinkable  []*graph.Target
	ExtraObjects []sourcepath.File
}

func isLinkableKind(k graph.OutputKind) bool {
	return k == graph.KindSharedLibrary || k == graph.KindStaticLibrary
}

// classifyDeps walks deps ∪ inherited_libraries (deduplicated, in
// that order), then appends data_deps as always-non-linkable at the
// end, exactly matching the ordering guarantee in spec.md §5.
func classifyDeps(t *graph.Target, tv *settings.ToolchainView, os settings.TargetOS) depClassification {
	var result depClassification

	seen := make(map[*graph.Target]bool)
	var candidates []*graph.Target
	add := func(d *graph.Target) {
		if seen[d] {
			return
		}
		seen[d] = true
		candidates = append(candidates, d)
	}
	for _, d := range t.Deps {
		add(d)
	}
	for _, d := range t.InheritedLibraries {
		add(d)
	}

	for _, dep := range candidates {
		switch {
		case dep.OutputType == graph.KindSourceSet:
			if t.OutputType == graph.KindSourceSet {
				result.NonLinkable = append(result.NonLinkable, dep)
				continue
			}
			for _, step := range compileSteps(dep, tv, os) {
				result.ExtraObjects = append(result.ExtraObjects, step.Object)
			}
		case t.OutputType.CanLink() && isLinkableKind(dep.OutputType):
			result.Linkable = append(result.Linkable, dep)
		default:
			result.NonLinkable = append(result.NonLinkable, dep)
		}
	}

	result.NonLinkable = append(result.NonLinkable, t.DataDeps...)
	return result
}
