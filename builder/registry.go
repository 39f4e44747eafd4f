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

// Package builder implements the single-owner target registry (A3)
// and the errgroup-driven buildfile loader (A2) that feeds it.
package builder

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/graph"
	"github.com/wesedens/gn/settings"
)

// targetKey is a target's identity across the whole load: its label
// alone isn't unique, since the same source directory and name can be
// built under two different toolchains.
type targetKey struct {
	toolchain string
	label     string
}

func keyFor(toolchain, label settings.Label) targetKey {
	return targetKey{toolchain: toolchain.String(), label: label.String()}
}

// Registry is the single authoritative label->target table (A3). A
// worker goroutine only ever touches it through ItemDefined,
// DefineConfig, and DefineToolchain, each of which holds the mutex
// just long enough to append to pending or store into a map;
// LinkAndResolve is only safe to call once every worker that might
// still call those has finished.
type Registry struct {
	mu sync.Mutex

	pending []*graph.Target

	targets    map[targetKey]*graph.Target
	configs    map[string]*graph.Config
	toolchains map[string]*settings.Toolchain
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets:    make(map[targetKey]*graph.Target),
		configs:    make(map[string]*graph.Config),
		toolchains: make(map[string]*settings.Toolchain),
	}
}

// ItemDefined is the reentrant-safe sink a loader worker calls for
// every target it finishes generating. It never blocks on anything
// but the registry's own short critical section.
func (r *Registry) ItemDefined(t *graph.Target) {
	r.mu.Lock()
	r.pending = append(r.pending, t)
	r.mu.Unlock()
}

// DefineConfig registers a config() declaration.
func (r *Registry) DefineConfig(c *graph.Config) {
	r.mu.Lock()
	r.configs[c.Label] = c
	r.mu.Unlock()
}

// DefineToolchain registers a toolchain() declaration.
func (r *Registry) DefineToolchain(tc *settings.Toolchain) {
	r.mu.Lock()
	r.toolchains[tc.Label.String()] = tc
	r.mu.Unlock()
}

// Toolchain looks up a previously defined toolchain by label.
func (r *Registry) Toolchain(label settings.Label) (*settings.Toolchain, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tc, ok := r.toolchains[label.String()]
	return tc, ok
}

// drain moves every pending target into the authoritative table. It
// is only safe to call once loading has stopped producing new
// targets.
func (r *Registry) drain() error {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	var errs []error
	for _, t := range pending {
		k := keyFor(t.Toolchain, t.Label)
		if _, exists := r.targets[k]; exists {
			errs = append(errs, bferr.ForTarget(t.Label.String(),
				bferr.Newf(bferr.Position{}, "target %s redefined", t.Label)))
			continue
		}
		r.targets[k] = t
	}
	return errors.Join(errs...)
}

func (r *Registry) directDeps(t *graph.Target) []*graph.Target {
	out := make([]*graph.Target, 0, len(t.DepLabels)+len(t.DataDepLabels))
	for _, l := range t.DepLabels {
		if d, ok := r.targets[keyFor(t.Toolchain, l)]; ok {
			out = append(out, d)
		}
	}
	for _, l := range t.DataDepLabels {
		if d, ok := r.targets[keyFor(t.Toolchain, l)]; ok {
			out = append(out, d)
		}
	}
	return out
}

// resolveOrder returns every registered target sorted leaves first (a
// target always appears after every target it depends on), or an
// error describing a dependency cycle. Grounded on the teacher's
// Context.ResolveDependencies/walkDeps check() closure: a DFS
// post-order walk that marks a node "checking" while it's still on
// the current path, so seeing a checking node again means a cycle.
//
// Unlike the teacher, which keeps walking after reporting a cycle so
// it can report every cycle in one pass, this stops at the first one;
// a second run after the first is fixed finds the next.
func (r *Registry) resolveOrder() ([]*graph.Target, error) {
	visited := make(map[targetKey]bool, len(r.targets))
	checking := make(map[targetKey]bool, len(r.targets))
	sorted := make([]*graph.Target, 0, len(r.targets))
	var cycleErr error

	var check func(t *graph.Target) []*graph.Target
	check = func(t *graph.Target) []*graph.Target {
		k := keyFor(t.Toolchain, t.Label)
		visited[k] = true
		checking[k] = true
		defer delete(checking, k)

		for _, dep := range r.directDeps(t) {
			dk := keyFor(dep.Toolchain, dep.Label)
			if checking[dk] {
				return []*graph.Target{dep, t}
			}
			if !visited[dk] {
				if cycle := check(dep); cycle != nil {
					if cycle[0] == t {
						cycleErr = cycleError(cycle)
						return nil
					}
					return append(cycle, t)
				}
			}
		}

		sorted = append(sorted, t)
		return nil
	}

	for _, t := range r.targets {
		if cycleErr != nil {
			break
		}
		if !visited[keyFor(t.Toolchain, t.Label)] {
			check(t)
		}
	}
	if cycleErr != nil {
		return nil, cycleErr
	}
	return sorted, nil
}

func cycleError(cycle []*graph.Target) error {
	labels := make([]string, 0, len(cycle))
	for _, t := range cycle {
		labels = append(labels, t.Label.String())
	}
	return fmt.Errorf("dependency cycle: %s", strings.Join(labels, " -> "))
}

// LinkAndResolve drains every pending target, links every target's
// label-form edges into pointer form, then resolves them leaves
// first. Callers must only call this once loading has finished.
func (r *Registry) LinkAndResolve() ([]*graph.Target, error) {
	if err := r.drain(); err != nil {
		return nil, err
	}

	configLookup := func(name string) (*graph.Config, bool) {
		c, ok := r.configs[name]
		return c, ok
	}

	for _, t := range r.targets {
		toolchain := t.Toolchain
		targetLookup := func(l settings.Label) (*graph.Target, bool) {
			d, ok := r.targets[keyFor(toolchain, l)]
			return d, ok
		}
		t.LinkLabels(targetLookup, configLookup)
	}

	order, err := r.resolveOrder()
	if err != nil {
		return nil, err
	}
	for _, t := range order {
		t.Resolve()
	}
	return order, nil
}
