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

// writeSourceSetStamp emits a source set's stamp build line per
// spec.md §4.6.5: source sets don't link, they just stamp once their
// own objects (and any data) are up to date, so dependents downstream
// have something to order against.
func writeSourceSetStamp(w io.Writer, t *graph.Target, tv *settings.ToolchainView, tools map[settings.ToolType]settings.Tool, os settings.TargetOS, objects []sourcepath.File, cls depClassification) {
	tool, ok := tools[settings.ToolStamp]
	if !ok {
		return
	}

	inputs := make([]string, len(objects))
	for i, o := range objects {
		inputs[i] = rel(tv, o)
	}

	tail := implicitDepsTail(tv, os, cls.NonLinkable, t.Data)
	fmt.Fprintf(w, "build %s: %s %s%s\n", rel(tv, stampFilePath(t, tv)), tool.RuleName, strings.Join(inputs, " "), tail)
}
