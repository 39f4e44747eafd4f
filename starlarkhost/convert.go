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
	"fmt"

	"github.com/wesedens/gn/scope"
	"go.starlark.net/starlark"
)

// fromStarlark converts a Starlark value into the closed sum type C6
// and C7 consume. Only the shapes a buildfile variable can actually
// hold (none, bool, int, string, list/tuple of the same) are
// supported; anything else is a buildfile-author error.
func fromStarlark(v starlark.Value) (scope.Value, error) {
	switch v := v.(type) {
	case starlark.NoneType:
		return scope.None(), nil
	case starlark.Bool:
		return scope.Bool(bool(v)), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return scope.Value{}, fmt.Errorf("integer %s does not fit in 64 bits", v.String())
		}
		return scope.Int(i), nil
	case starlark.String:
		return scope.String(string(v)), nil
	case *starlark.List:
		items := make([]scope.Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := fromStarlark(v.Index(i))
			if err != nil {
				return scope.Value{}, err
			}
			items = append(items, item)
		}
		return scope.List(items...), nil
	case starlark.Tuple:
		items := make([]scope.Value, 0, len(v))
		for _, e := range v {
			item, err := fromStarlark(e)
			if err != nil {
				return scope.Value{}, err
			}
			items = append(items, item)
		}
		return scope.List(items...), nil
	default:
		return scope.Value{}, fmt.Errorf("value of type %s cannot be used as a buildfile variable", v.Type())
	}
}

// toStarlark is the inverse of fromStarlark. The host does not call
// it: programmatic identifiers (target_gen_dir, current_toolchain,
// ...) are not predeclared as Starlark globals.
func toStarlark(v scope.Value) starlark.Value {
	switch v.Kind {
	case scope.KindString:
		return starlark.String(v.Str)
	case scope.KindInt:
		return starlark.MakeInt64(v.Int)
	case scope.KindBool:
		return starlark.Bool(v.Bool)
	case scope.KindList:
		items := make([]starlark.Value, len(v.List))
		for i, e := range v.List {
			items[i] = toStarlark(e)
		}
		return starlark.NewList(items)
	default:
		return starlark.None
	}
}

// kwargsToValues converts a builtin call's keyword arguments into the
// map a Scope snapshot is built from. Keys are always plain Starlark
// strings per the calling convention; fnname is used only to build a
// clear error message.
func kwargsToValues(fnname string, kwargs []starlark.Tuple) (map[string]scope.Value, error) {
	values := make(map[string]scope.Value, len(kwargs))
	for _, kv := range kwargs {
		key, ok := starlark.AsString(kv[0])
		if !ok {
			key = kv[0].String()
		}
		v, err := fromStarlark(kv[1])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %s: %w", fnname, key, err)
		}
		values[key] = v
	}
	return values, nil
}

// kwargsToStrings is the same idea for the toolchain builtin, whose
// keyword arguments are plain strings; a non-string value is dropped.
func kwargsToStrings(kwargs []starlark.Tuple) map[string]string {
	out := make(map[string]string, len(kwargs))
	for _, kv := range kwargs {
		key, ok := starlark.AsString(kv[0])
		if !ok {
			key = kv[0].String()
		}
		if s, ok := starlark.AsString(kv[1]); ok {
			out[key] = s
		}
	}
	return out
}
