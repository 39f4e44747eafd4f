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

package rulewriter

import "strings"

// RuleEscape escapes a string so it survives being read back by the
// rule-file sink: only "$" is meaningful there. Paths and other
// values that the sink itself tokenizes (inputs/outputs/rule names)
// never need this; it is for flag values that flow through verbatim,
// such as a define's value in writeCompilerVars.
func RuleEscape(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return strings.ReplaceAll(s, "$", "$$")
}

func RuleEscapeList(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = RuleEscape(s)
	}
	return out
}

// ruleFileShellSafe lists every character a flag or library token can
// use literally, without needing a shell quote: defines (`-DFOO=1`),
// mac loader-path tokens (`@loader_path/../Frameworks`), and plain
// library/path segments. A character outside this set — a `$` (so an
// rpath token like `-Wl,--rpath,$ORIGIN/../lib` is quoted), an
// embedded space, a semicolon, a backtick, shell metacharacters like
// `|` or `&` — forces quoting.
const ruleFileShellSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"_+-=./,:@"

func shellUnsafeChar(r rune) bool {
	return !strings.ContainsRune(ruleFileShellSafe, r)
}

// ShellEscape wraps s in single quotes (replacing internal single
// quotes with '\'' ) if it contains characters a shell invoked by the
// downstream executor would treat specially. A value with no unsafe
// characters (other than spaces) is returned unchanged, since a bare
// space is common and harmless in a flag token that's already one
// element of a space-joined list.
func ShellEscape(s string) string {
	needsQuote := func(r rune) bool { return r != ' ' && shellUnsafeChar(r) }
	if strings.IndexFunc(s, needsQuote) == -1 {
		return s
	}
	return quoteForShell(s)
}

func ShellEscapeList(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = ShellEscape(s)
	}
	return out
}

// ShellEscapeIncludingSpaces is ShellEscape but treats a bare space as
// unsafe too, for values that are not already space-delimited tokens,
// such as a single data-file path that may contain spaces.
func ShellEscapeIncludingSpaces(s string) string {
	if strings.IndexFunc(s, shellUnsafeChar) == -1 {
		return s
	}
	return quoteForShell(s)
}

func quoteForShell(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `'\''`) + `'`
}

// RuleAndShellEscape applies both escapes, for a flag value that the
// rule-file sink will hand to a shell verbatim, e.g. a define whose
// value contains both "$" and shell-unsafe punctuation.
func RuleAndShellEscape(s string) string {
	return ShellEscape(RuleEscape(s))
}

func RuleAndShellEscapeList(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = RuleAndShellEscape(s)
	}
	return out
}
