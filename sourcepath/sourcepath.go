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

// Package sourcepath implements the dual-rooted path algebra used
// throughout the build graph: every path is either an absolute OS
// path, a source-absolute path beginning with "//", a system-absolute
// path within the namespace beginning with a single "/", or a plain
// relative path.
//
// Dir and File give the source/system-absolute forms their own types
// so a raw OS path can't be passed where a namespace path is
// expected; OSPath keeps the host-path side distinct again.
package sourcepath

import "strings"

// Dir is an absolute directory path within the dual namespace: either
// source-absolute ("//foo/bar/") or system-absolute ("/foo/bar/").
// The zero value is the empty directory. A non-empty Dir always ends
// in "/".
type Dir string

// File is an absolute file path within the dual namespace. It never
// ends in "/".
type File string

// OSPath is an absolute path on the host filesystem, held in
// canonical forward-slash form. This package has no conversion to the
// host's native separator.
type OSPath string

// IsSourceAbsolute reports whether d is rooted at the source root
// ("//...").
func (d Dir) IsSourceAbsolute() bool {
	return strings.HasPrefix(string(d), "//")
}

// IsSystemAbsolute reports whether d is an absolute OS path expressed
// inside the namespace ("/..." but not "//...").
func (d Dir) IsSystemAbsolute() bool {
	s := string(d)
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
}

func (d Dir) String() string { return string(d) }

// IsSourceAbsolute reports whether f is rooted at the source root.
func (f File) IsSourceAbsolute() bool {
	return strings.HasPrefix(string(f), "//")
}

// IsSystemAbsolute reports whether f is an absolute OS path expressed
// inside the namespace.
func (f File) IsSystemAbsolute() bool {
	s := string(f)
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
}

func (f File) String() string { return string(f) }

func isSlash(b byte) bool {
	return b == '/' || b == '\\'
}

// doesBeginWindowsDriveLetter implements the intended semantics of
// the original source's ambiguous precedence: a single ASCII letter,
// followed by a colon, followed by a slash.
func doesBeginWindowsDriveLetter(path string) bool {
	if len(path) < 3 {
		return false
	}
	letter := path[0]
	isLetter := (letter >= 'A' && letter <= 'Z') || (letter >= 'a' && letter <= 'z')
	return isLetter && path[1] == ':' && isSlash(path[2])
}

// IsAbsolute reports whether path is an absolute path: a single
// leading slash (but not a double slash, which denotes a
// source-relative path), or a Windows drive-letter path such as
// "C:\foo" or "c:/foo".
func IsAbsolute(path string) bool {
	if path == "" {
		return false
	}
	if !isSlash(path[0]) {
		return doesBeginWindowsDriveLetter(path)
	}
	// Double slash at the beginning means source-relative.
	return !(len(path) > 1 && path[1] == '/')
}
