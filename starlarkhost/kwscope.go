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

package starlarkhost

import (
	"github.com/wesedens/gn/scope"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// kwScope is the Scope snapshot one target-declaring builtin call
// produces. go.starlark.net gives a builtin no way to reach into the
// locals of the Starlark frame that called it, so the keyword
// arguments of the call itself stand in for the "enclosing frame's
// local bindings" a buildfile scope would otherwise expose — every
// recognized variable a target or config reads becomes a keyword
// argument to its declaring call instead of a preceding assignment.
type kwScope struct {
	host   *Host
	values map[string]scope.Value
}

func (s *kwScope) SourceDir() sourcepath.Dir         { return s.host.SourceDir() }
func (s *kwScope) ToolchainLabel() settings.Label    { return s.host.ToolchainLabel() }
func (s *kwScope) Settings() *settings.ToolchainView { return s.host.Settings() }
func (s *kwScope) ProgrammaticNames() []string       { return s.host.ProgrammaticNames() }

func (s *kwScope) GetValue(name string) (scope.Value, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	return s.host.provider.Get(name)
}
