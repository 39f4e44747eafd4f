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

package scope

import (
	"sync"

	"github.com/wesedens/gn/sourcepath"
)

// ProgrammaticNames lists every identifier the per-file provider
// answers for. A Scope's ProgrammaticNames() should include these so
// a buildfile can enumerate them (e.g. for "is this name reserved"
// checks in the language host).
var ProgrammaticNames = []string{
	"current_toolchain",
	"default_toolchain",
	"python_path",
	"root_build_dir",
	"root_gen_dir",
	"root_out_dir",
	"target_gen_dir",
	"target_out_dir",
}

// Provider lazily computes and caches the programmatic identifiers
// for one scope. Each identifier is computed at most once per
// Provider, on first lookup, matching the "eight-slot record
// initialized on demand" shape of the source's per-file provider.
type Provider struct {
	scope Scope

	mu    sync.Mutex
	cache map[string]Value
}

// NewProvider wraps scope with a fresh, empty cache.
func NewProvider(scope Scope) *Provider {
	return &Provider{scope: scope, cache: make(map[string]Value)}
}

// Get returns the value of a programmatic identifier, computing and
// caching it on first access. ok is false for any name this provider
// doesn't recognize.
func (p *Provider) Get(name string) (value Value, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, cached := p.cache[name]; cached {
		return v, true
	}
	v, ok := p.compute(name)
	if ok {
		p.cache[name] = v
	}
	return v, ok
}

func (p *Provider) compute(name string) (Value, bool) {
	tv := p.scope.Settings()
	switch name {
	case "current_toolchain":
		return String(p.scope.ToolchainLabel().String()), true
	case "default_toolchain":
		return String(tv.DefaultToolchainLabel().String()), true
	case "python_path":
		return String(tv.Settings().PythonPath()), true
	case "root_build_dir":
		return String(sourcepath.DirectoryWithNoLastSlash(tv.Settings().BuildDir())), true
	case "root_gen_dir":
		return String(sourcepath.DirectoryWithNoLastSlash(tv.ToolchainGenDir())), true
	case "root_out_dir":
		return String(sourcepath.DirectoryWithNoLastSlash(tv.ToolchainOutputDir())), true
	case "target_gen_dir":
		return String(sourcepath.DirectoryWithNoLastSlash(tv.GenDirFor(p.scope.SourceDir()))), true
	case "target_out_dir":
		return String(sourcepath.DirectoryWithNoLastSlash(tv.OutputDirFor(p.scope.SourceDir()))), true
	default:
		return Value{}, false
	}
}
