// Copyright 2016 Google Inc. All rights reserved.
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

// Package loaderfs is the minimal filesystem seam the loader reads
// buildfiles through: real disk access in production, an in-memory
// tree in tests.
package loaderfs

import (
	"bytes"
	"io"
	"os"
)

// FileSystem is everything the loader needs to read a buildfile tree.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
	Exists(name string) (bool, bool, error)
}

// OS is the local-disk implementation.
var OS FileSystem = osFS{}

type osFS struct{}

func (osFS) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

func (osFS) Exists(name string) (bool, bool, error) {
	stat, err := os.Stat(name)
	if err == nil {
		return true, stat.IsDir(), nil
	} else if os.IsNotExist(err) {
		return false, false, nil
	}
	return false, false, err
}

// Mock returns an in-memory FileSystem over files, keyed by the exact
// path the loader will ask for.
func Mock(files map[string][]byte) FileSystem {
	m := make(mockFS, len(files))
	for name, contents := range files {
		m[name] = contents
	}
	return m
}

type mockFS map[string][]byte

func (m mockFS) Open(name string) (io.ReadCloser, error) {
	if contents, ok := m[name]; ok {
		return io.NopCloser(bytes.NewReader(contents)), nil
	}
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func (m mockFS) Exists(name string) (bool, bool, error) {
	_, ok := m[name]
	return ok, false, nil
}
