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
)

// sourceFileClass classifies one source file extension into the tool
// that compiles it, subject to target OS: .m/.mm only under OSMac,
// .rc only under OSWindows, capital .S only outside OSWindows, .h
// always a header (never compiled). An unrecognized extension yields
// ok == false and the source is skipped.
func sourceFileClass(ext string, os settings.TargetOS) (tool settings.ToolType, ok bool) {
	switch ext {
	case "c":
		return settings.ToolCC, true
	case "cc", "cpp", "cxx":
		return settings.ToolCXX, true
	case "m":
		return settings.ToolObjC, os == settings.OSMac
	case "mm":
		return settings.ToolObjCXX, os == settings.OSMac
	case "rc":
		return settings.ToolRC, os == settings.OSWindows
	case "S":
		return settings.ToolASM, os != settings.OSWindows
	case "s":
		return settings.ToolASM, true
	default:
		return 0, false
	}
}

// objectExtension is the object-file extension the platform's
// toolchain produces: "obj" on Windows, "o" elsewhere.
func objectExtension(os settings.TargetOS) string {
	if os == settings.OSWindows {
		return "obj"
	}
	return "o"
}

// defaultOutputExtension is the platform extension table from §6,
// used whenever a target's OutputExtension is empty.
func defaultOutputExtension(kind graph.OutputKind, os settings.TargetOS) string {
	switch kind {
	case graph.KindExecutable:
		if os == settings.OSWindows {
			return "exe"
		}
		return ""
	case graph.KindSharedLibrary:
		switch os {
		case settings.OSMac:
			return "dylib"
		case settings.OSWindows:
			return "dll.lib"
		default:
			return "so"
		}
	case graph.KindStaticLibrary:
		if os == settings.OSWindows {
			return "lib"
		}
		return "a"
	default:
		return ""
	}
}

// outputPrefixAndSubdir returns the "lib" basename prefix and "lib/"
// output subdirectory that shared and static libraries get on
// non-Windows platforms, matching the Unix linker convention; on
// Windows neither applies and binaries live directly in the output
// directory.
func outputPrefixAndSubdir(kind graph.OutputKind, os settings.TargetOS) (prefix, subdir string) {
	if os == settings.OSWindows {
		return "", ""
	}
	if kind == graph.KindSharedLibrary || kind == graph.KindStaticLibrary {
		return "lib", "lib/"
	}
	return "", ""
}
