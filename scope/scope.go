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
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

// Scope is what an evaluated buildfile expression exposes to the
// target generator dispatch (C6) and the per-file provider (C7). The
// buildfile language host (the Starlark-backed implementation) is the
// only thing that constructs these; the core only ever consumes the
// interface.
type Scope interface {
	SourceDir() sourcepath.Dir
	ToolchainLabel() settings.Label
	Settings() *settings.ToolchainView
	GetValue(name string) (Value, bool)
	ProgrammaticNames() []string
}
