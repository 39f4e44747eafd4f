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
	"fmt"
	"strings"

	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// resolveFile extracts a file path relative to sc's source directory:
// a source-absolute spelling ("//foo/bar.cc") is normalized as-is; a
// relative spelling is resolved against the source directory first.
func resolveFile(sourceDir sourcepath.Dir, raw string) sourcepath.File {
	if strings.HasPrefix(raw, "//") {
		return sourcepath.File(sourcepath.Normalize(raw))
	}
	return sourcepath.File(sourcepath.Normalize(string(sourceDir) + raw))
}

func resolveFiles(sourceDir sourcepath.Dir, raw []string) []sourcepath.File {
	out := make([]sourcepath.File, 0, len(raw))
	for _, r := range raw {
		out = append(out, resolveFile(sourceDir, r))
	}
	return out
}

// resolveLabel extracts a dependency or config label relative to sc's
// source directory, matching spec.md §4.4: "Labels are extracted
// relative to the same directory and the scope's toolchain." The
// toolchain is always the scope's current one; this spec has no
// cross-toolchain dependency syntax.
func resolveLabel(sourceDir sourcepath.Dir, raw string) (settings.Label, error) {
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return settings.Label{}, fmt.Errorf("label %q is missing a target name (expected dir:name or :name)", raw)
	}
	dirPart, namePart := raw[:colon], raw[colon+1:]
	if namePart == "" {
		return settings.Label{}, fmt.Errorf("label %q has an empty target name", raw)
	}

	var dir string
	switch {
	case dirPart == "":
		dir = string(sourceDir)
	case strings.HasPrefix(dirPart, "//"):
		dir = sourcepath.Normalize(dirPart + "/")
	default:
		dir = sourcepath.Normalize(string(sourceDir) + dirPart + "/")
	}
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return settings.Label{Dir: sourcepath.Dir(dir), Name: namePart}, nil
}

func resolveLabels(sourceDir sourcepath.Dir, raw []string) ([]settings.Label, error) {
	out := make([]settings.Label, 0, len(raw))
	for _, r := range raw {
		l, err := resolveLabel(sourceDir, r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
