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

// Package settings holds the per-build configuration (BuildSettings)
// and the per-toolchain read-only view over it (ToolchainView) that
// every other component in the graph derives its output locations
// from.
package settings

import (
	"runtime"
	"strings"
	"sync"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/sourcepath"
)

// Item is the minimal shape a defined build graph entity must expose
// to be handed to a BuildSettings sink. Target (in package graph)
// implements this.
type Item interface {
	ItemLabel() string
}

// ItemDefinedFunc is invoked, possibly from an arbitrary worker
// goroutine, whenever a target finishes being generated. Receivers
// must not block and must be safe to call concurrently.
type ItemDefinedFunc func(Item)

// BuildSettings holds the state for one top-level output directory.
// There may be several Settings-like toolchain views referring to the
// same BuildSettings, one per toolchain.
//
// BuildSettings is logically immutable once setup completes; readers
// do not need to lock. The setters below are only meant to be used
// during the setup phase, before any targets are loaded.
type BuildSettings struct {
	mu sync.Mutex

	rootPath     string // absolute OS path, forward-slash canonical, no trailing separator
	rootPathUTF8 string

	secondarySourcePath string // absolute OS path, or "" if unset

	pythonPath string // absolute OS path

	buildConfigFile sourcepath.File // source-absolute

	buildDir               sourcepath.Dir // source-absolute
	buildToSourceDirString string         // inverse of buildDir

	buildArgs map[string]string

	hostWindows bool // host filesystem comparison semantics; not the target OS

	onItemDefined ItemDefinedFunc
}

// New returns a BuildSettings with host comparison semantics inferred
// from the running platform.
func New() *BuildSettings {
	return &BuildSettings{
		buildArgs:   make(map[string]string),
		hostWindows: runtime.GOOS == "windows",
	}
}

// SetRootPath sets the absolute OS path that anchors every
// source-absolute path. It must not end in a separator; that is an
// internal invariant violation, not a user error, since callers
// control how they canonicalize the path before calling this.
func (b *BuildSettings) SetRootPath(root string) {
	if strings.HasSuffix(root, "/") || strings.HasSuffix(root, "\\") {
		bferr.Invariant("root path %q must not have a trailing separator", root)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rootPath = filepathToSlash(root)
	b.rootPathUTF8 = b.rootPath
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// RootPath returns the absolute OS path of the source root.
func (b *BuildSettings) RootPath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rootPath
}

// RootPathUTF8 returns the UTF-8 form of RootPath (on this
// implementation they are always identical; the distinction matters
// on platforms with a non-UTF-8 native path encoding).
func (b *BuildSettings) RootPathUTF8() string {
	return b.RootPath()
}

// SetSecondarySourcePath sets a parallel directory hierarchy consulted
// as a fallback when a buildfile isn't found beneath the root. Pass
// "" to clear it.
func (b *BuildSettings) SetSecondarySourcePath(p string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secondarySourcePath = filepathToSlash(p)
}

func (b *BuildSettings) SecondarySourcePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.secondarySourcePath
}

func (b *BuildSettings) SetPythonPath(p string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pythonPath = filepathToSlash(p)
}

func (b *BuildSettings) PythonPath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pythonPath
}

func (b *BuildSettings) SetBuildConfigFile(f sourcepath.File) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buildConfigFile = f
}

func (b *BuildSettings) BuildConfigFile() sourcepath.File {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buildConfigFile
}

// SetBuildDir sets the source-absolute build directory and recomputes
// its inverse (build_to_source_dir_string).
func (b *BuildSettings) SetBuildDir(dir sourcepath.Dir) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buildDir = dir
	b.buildToSourceDirString = sourcepath.InvertDir(dir)
}

func (b *BuildSettings) BuildDir() sourcepath.Dir {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buildDir
}

func (b *BuildSettings) BuildToSourceDirString() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buildToSourceDirString
}

// SetBuildArg records one identifier->value entry from the resolved
// command line.
func (b *BuildSettings) SetBuildArg(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buildArgs[name] = value
}

// BuildArg looks up a build argument by identifier.
func (b *BuildSettings) BuildArg(name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.buildArgs[name]
	return v, ok
}

// HostWindows reports whether filesystem-string comparisons should
// use Windows (case- and separator-insensitive) semantics. This is
// about the machine sourcepath runs on, never the target OS a
// toolchain is cross-compiling for.
func (b *BuildSettings) HostWindows() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hostWindows
}

// SetHostWindows overrides host comparison semantics; tests use this
// to exercise both branches from any platform.
func (b *BuildSettings) SetHostWindows(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hostWindows = v
}

// FullPath resolves a source-absolute or system-absolute path against
// the primary source root.
func (b *BuildSettings) FullPath(p string) string {
	return b.resolveAgainst(b.RootPath(), p)
}

// FullPathSecondary resolves p against the secondary source path, or
// returns "" if none is configured. Callers must always try FullPath
// first; the secondary tree is only a fallback.
func (b *BuildSettings) FullPathSecondary(p string) string {
	sec := b.SecondarySourcePath()
	if sec == "" {
		return ""
	}
	return b.resolveAgainst(sec, p)
}

func (b *BuildSettings) resolveAgainst(root, p string) string {
	if strings.HasPrefix(p, "//") {
		return root + "/" + p[2:]
	}
	return p
}

// ItemDefined hands a completed target to the configured sink. It may
// be called from any worker goroutine; the sink itself is responsible
// for being reentrant-safe.
func (b *BuildSettings) ItemDefined(item Item) {
	b.mu.Lock()
	cb := b.onItemDefined
	b.mu.Unlock()
	if cb != nil {
		cb(item)
	}
}

// SetItemDefinedCallback installs the sink invoked by ItemDefined.
func (b *BuildSettings) SetItemDefinedCallback(cb ItemDefinedFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onItemDefined = cb
}
