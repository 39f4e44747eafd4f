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

package builder

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/loaderfs"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
	"github.com/wesedens/gn/starlarkhost"
)

const buildfileName = "BUILD.gn"

// buildfileFor returns the source-absolute buildfile path for a
// source directory.
func buildfileFor(dir sourcepath.Dir) sourcepath.File {
	return sourcepath.File(string(dir) + buildfileName)
}

// DirOf returns the directory a source-absolute buildfile path lives
// in.
func DirOf(f sourcepath.File) sourcepath.Dir {
	s := string(f)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return sourcepath.Dir(s[:i+1])
	}
	return sourcepath.Dir("//")
}

// Loader walks the buildfile graph starting at a root directory,
// following deps/datadeps labels to discover further directories to
// parse, evaluating sibling buildfiles concurrently through an
// errgroup bounded by limit (A2).
type Loader struct {
	fs       loaderfs.FileSystem
	view     *settings.ToolchainView
	registry *Registry
	limit    int

	mu             sync.Mutex
	readBuildfiles []sourcepath.File
}

// NewLoader returns a Loader that reads buildfiles through fs and
// evaluates them under view. limit bounds the number of buildfiles
// parsed concurrently per discovery round; 0 means unbounded.
func NewLoader(fs loaderfs.FileSystem, view *settings.ToolchainView, limit int) *Loader {
	return &Loader{fs: fs, view: view, registry: NewRegistry(), limit: limit}
}

// Registry returns the loader's target registry.
func (l *Loader) Registry() *Registry { return l.registry }

// ReadBuildfiles returns every buildfile path successfully opened
// during the most recent Load call, in the order they were read. A
// caller can feed this straight to deptools.WriteRegenDepfile to record
// the generated rule file's inputs for incremental regeneration.
func (l *Loader) ReadBuildfiles() []sourcepath.File {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]sourcepath.File, len(l.readBuildfiles))
	copy(out, l.readBuildfiles)
	return out
}

// Load walks the buildfile graph starting at rootDir and returns
// every reachable target, linked and resolved in dependency order, or
// the errors collected along the way. Discovery proceeds breadth
// first: one round of an errgroup per wave of newly discovered
// directories, so a deeply nested tree doesn't serialize into one
// buildfile at a time.
func (l *Loader) Load(ctx context.Context, rootDir sourcepath.Dir) ([]*graph.Target, []error) {
	var (
		mu      sync.Mutex
		allErrs []error
	)

	l.mu.Lock()
	l.readBuildfiles = nil
	l.mu.Unlock()

	seen := map[sourcepath.Dir]bool{rootDir: true}
	queue := []sourcepath.Dir{rootDir}

	for len(queue) > 0 {
		batch := queue
		queue = nil

		discovered := make([][]sourcepath.Dir, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		if l.limit > 0 {
			g.SetLimit(l.limit)
		}
		for i, dir := range batch {
			i, dir := i, dir
			g.Go(func() error {
				dirs, err := l.loadOne(gctx, dir)
				if err != nil {
					mu.Lock()
					allErrs = append(allErrs, err)
					mu.Unlock()
				}
				discovered[i] = dirs
				return nil
			})
		}
		// loadOne never returns a non-nil error to the group itself
		// (errors are collected, not fatal to sibling loads), so every
		// function passed to g.Go returns nil and Wait reports nothing.
		if err := g.Wait(); err != nil {
			allErrs = append(allErrs, err)
		}

		for _, dirs := range discovered {
			for _, d := range dirs {
				if !seen[d] {
					seen[d] = true
					queue = append(queue, d)
				}
			}
		}
	}

	targets, err := l.registry.LinkAndResolve()
	if err != nil {
		allErrs = append(allErrs, err)
	}
	return targets, allErrs
}

// loadOne reads and evaluates the buildfile in dir, registers every
// target, config, and toolchain it declares, and returns the
// directories newly referenced by its targets' deps/datadeps.
func (l *Loader) loadOne(ctx context.Context, dir sourcepath.Dir) ([]sourcepath.Dir, error) {
	path := buildfileFor(dir)

	exists, _, err := l.fs.Exists(string(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: no such buildfile", path)
	}

	f, err := l.fs.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("loading %s", path)

	l.mu.Lock()
	l.readBuildfiles = append(l.readBuildfiles, path)
	l.mu.Unlock()

	h := starlarkhost.NewHost(string(path), dir, l.view.ToolchainLabel(), l.view)
	targets, buildfileErrs := h.Load(src)

	for _, c := range h.Configs {
		l.registry.DefineConfig(c)
	}
	for _, tc := range h.Toolchains {
		l.registry.DefineToolchain(tc)
	}

	var next []sourcepath.Dir
	for _, t := range targets {
		log.Debugf("defining target %s", t.Label)
		l.registry.ItemDefined(t)
		for _, dl := range t.DepLabels {
			if dl.Dir != dir {
				next = append(next, dl.Dir)
			}
		}
		for _, dl := range t.DataDepLabels {
			if dl.Dir != dir {
				next = append(next, dl.Dir)
			}
		}
	}

	if len(buildfileErrs) > 0 {
		msgs := make([]string, len(buildfileErrs))
		for i, e := range buildfileErrs {
			msgs[i] = e.Error()
		}
		return next, fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return next, nil
}

// LoadToolchainDef parses the buildfile in dir purely for its
// toolchain() declarations. It is used as a bootstrap step before any
// ToolchainView with real tool metadata exists, since a
// toolchain-definition buildfile has no business reading
// target_out_dir and friends: placeholderView only needs to report
// the toolchain label and target OS the caller intends to load under.
func LoadToolchainDef(fs loaderfs.FileSystem, dir sourcepath.Dir, toolchainLabel settings.Label, placeholderView *settings.ToolchainView) (map[string]*settings.Toolchain, []*bferr.BuildfileError) {
	path := buildfileFor(dir)

	f, err := fs.Open(string(path))
	if err != nil {
		return nil, []*bferr.BuildfileError{bferr.New(bferr.Position{File: string(path)}, err)}
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, []*bferr.BuildfileError{bferr.New(bferr.Position{File: string(path)}, err)}
	}

	h := starlarkhost.NewHost(string(path), dir, toolchainLabel, placeholderView)
	if _, errs := h.Load(src); len(errs) > 0 {
		return nil, errs
	}
	return h.Toolchains, nil
}
