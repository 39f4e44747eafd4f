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

package sourcepath

// dotKind classifies what follows a "." that immediately follows a
// slash (or the start of the path).
type dotKind int

const (
	notADirectory dotKind = iota
	directoryCur
	directoryUp
)

// classifyAfterDot inspects path starting at afterDot (the index just
// past the dot) and reports what kind of dot this is plus how many
// bytes of input it consumes.
func classifyAfterDot(path string, afterDot int) (kind dotKind, consumed int) {
	if afterDot == len(path) {
		return directoryCur, 1
	}
	if isSlash(path[afterDot]) {
		return directoryCur, 2
	}
	if path[afterDot] == '.' {
		if afterDot+1 == len(path) {
			return directoryUp, 2
		}
		if isSlash(path[afterDot+1]) {
			return directoryUp, 3
		}
	}
	return notADirectory, 1
}

// Normalize collapses "." and ".." segments and runs of separators in
// path, always emitting forward slashes, and returns the result. The
// leading anchor ("//", a single "/", a drive letter, or nothing for
// a relative path) is preserved.
//
// A relative path that has been fully collapsed keeps accumulating
// leading ".." segments rather than erroring; an absolute path simply
// drops a ".." that would go above the root.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	buf := []byte(path)

	topIndex := 0
	isRelative := true
	if isSlash(buf[0]) {
		isRelative = false
		if len(buf) > 1 && buf[1] == '/' {
			topIndex = 2
		} else {
			topIndex = 1
		}
	} else if doesBeginWindowsDriveLetter(path) {
		isRelative = false
		buf[2] = '/'
		topIndex = 3
	}

	destI := topIndex
	srcI := topIndex
	for srcI < len(buf) {
		switch {
		case buf[srcI] == '.' && (srcI == 0 || isSlash(buf[srcI-1])):
			kind, consumed := classifyAfterDot(string(buf), srcI+1)
			switch kind {
			case notADirectory:
				buf[destI] = buf[srcI]
				destI++
				srcI++
			case directoryCur:
				srcI += consumed
			case directoryUp:
				if destI > topIndex {
					destI--
				}
				if destI == topIndex {
					if isRelative {
						buf[destI] = '.'
						destI++
						buf[destI] = '.'
						destI++
						if consumed == 3 {
							buf[destI] = '/'
							destI++
						}
						// This forms a new "root" that further ".."
						// segments cannot delete.
						topIndex = destI
					}
					// Otherwise we're at the start of an absolute
					// path; silently drop the ".." that would escape
					// the root.
				} else {
					for destI > 0 && !isSlash(buf[destI-1]) {
						destI--
					}
				}
				srcI += consumed
			}
		case isSlash(buf[srcI]):
			if srcI > 0 && isSlash(buf[srcI-1]) {
				srcI++
			} else {
				buf[destI] = '/'
				destI++
				srcI++
			}
		default:
			buf[destI] = buf[srcI]
			destI++
			srcI++
		}
	}

	return string(buf[:destI])
}
