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

// Package bferr holds the three-way error taxonomy the core uses:
// located user errors, fatal internal invariant violations, and
// pass-through I/O/scheduling errors.
package bferr

import "fmt"

// Position is a source location derived from the originating
// buildfile expression.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// BuildfileError is a located user error: bad argument arity or type,
// an unknown output kind, a value that escapes the output directory,
// an unresolved path reference. The current target is discarded; the
// caller may continue generating other targets.
type BuildfileError struct {
	Pos Position
	Err error
}

func (e *BuildfileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Err)
}

func (e *BuildfileError) Unwrap() error { return e.Err }

// New wraps err with a position.
func New(pos Position, err error) *BuildfileError {
	return &BuildfileError{Pos: pos, Err: err}
}

// Newf is a convenience constructor for a formatted message.
func Newf(pos Position, format string, args ...interface{}) *BuildfileError {
	return New(pos, fmt.Errorf(format, args...))
}

// TargetError adds the offending target's label to a BuildfileError,
// so a collected-errors report can name which target was discarded.
type TargetError struct {
	*BuildfileError
	Label string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: target %s: %s", e.Pos, e.Label, e.Err)
}

// ForTarget attaches a label to an existing BuildfileError.
func ForTarget(label string, err *BuildfileError) *TargetError {
	return &TargetError{BuildfileError: err, Label: label}
}

// invariantError distinguishes a fatal internal invariant violation
// (e.g. a root path with a trailing separator, a rebase result that
// isn't source-absolute) from an ordinary user error. Code that
// detects one of these panics with it; a top-level recover converts
// it into a diagnostic and a nonzero exit, and tests can assert on it
// directly via recover.
type invariantError struct {
	msg string
}

func (e *invariantError) Error() string { return "internal invariant violated: " + e.msg }

// Invariant panics with an invariantError built from the formatted
// message.
func Invariant(format string, args ...interface{}) {
	panic(&invariantError{msg: fmt.Sprintf(format, args...)})
}

// AsInvariant reports whether err (typically recovered from a panic)
// is an internal invariant violation, returning it as an error.
func AsInvariant(recovered interface{}) (error, bool) {
	if ie, ok := recovered.(*invariantError); ok {
		return ie, true
	}
	return nil, false
}
