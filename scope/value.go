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

// Package scope defines the buildfile scope interface the core
// consumes (Scope, Value) and the per-file programmatic identifier
// provider (current_toolchain, root_gen_dir, etc.) that lazily
// computes and caches the values of those identifiers.
package scope

import "fmt"

// Kind discriminates the closed sum of value types a buildfile
// expression can produce.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindBool
	KindList
)

// Value is a closed sum type: exactly one of the typed fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Bool bool
	List []Value
}

func None() Value                 { return Value{Kind: KindNone} }
func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Int(i int64) Value           { return Value{Kind: KindInt, Int: i} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func List(items ...Value) Value   { return Value{Kind: KindList, List: items} }

// AsStringList converts a list-of-strings Value into a []string,
// reporting false if any element isn't a string or the value itself
// isn't a list.
func (v Value) AsStringList() ([]string, bool) {
	if v.Kind != KindList {
		return nil, false
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind != KindString {
			return nil, false
		}
		out = append(out, item.Str)
	}
	return out, true
}

func (v Value) String() string {
	switch v.Kind {
	case KindNone:
		return "<none>"
	case KindString:
		return v.Str
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindList:
		return fmt.Sprintf("%v", v.List)
	default:
		return "<invalid>"
	}
}
