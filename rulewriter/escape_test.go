// Copyright 2015 Google Inc. All rights reserved.
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

import (
	"os/exec"
	"testing"
)

type escapeTestCase struct {
	name string
	in   string
	out  string
}

var ruleEscapeTestCase = []escapeTestCase{
	{
		name: "no escaping",
		in:   `FOO=1`,
		out:  `FOO=1`,
	},
	{
		name: "leading $",
		in:   `$ORIGIN/../lib`,
		out:  `$$ORIGIN/../lib`,
	},
	{
		name: "define referencing a rule variable",
		in:   `VERSION=$version$`,
		out:  `VERSION=$$version$$`,
	},
}

var shellEscapeTestCase = []escapeTestCase{
	{
		name: "plain library name",
		in:   `pthread`,
		out:  `pthread`,
	},
	{
		name: "lib dir path, no unsafe chars",
		in:   `/usr/lib/x86_64-linux-gnu`,
		out:  `/usr/lib/x86_64-linux-gnu`,
	},
	{
		name: "rpath with $ORIGIN",
		in:   `-Wl,-rpath,$ORIGIN/../lib`,
		out:  `'-Wl,-rpath,$ORIGIN/../lib'`,
	},
	{
		name: "mac loader_path token",
		in:   `@loader_path/../Frameworks`,
		out:  `@loader_path/../Frameworks`,
	},
	{
		name: "version script flag with embedded single quote",
		in:   `--version-script='foo.map'`,
		out:  `'--version-script='\''foo.map'\'''`,
	},
	{
		name: "linker flag list separated by semicolons",
		in:   `-z;defs;-z;now`,
		out:  `'-z;defs;-z;now'`,
	},
}

var shellEscapeIncludingSpacesTestCase = []escapeTestCase{
	{
		name: "no escaping",
		in:   `data.txt`,
		out:  `data.txt`,
	},
	{
		name: "data file path with a space",
		in:   `test data/input.txt`,
		out:  `'test data/input.txt'`,
	},
	{
		name: "single quote",
		in:   `'arg'`,
		out:  `''\''arg'\'''`,
	},
}

func TestRuleEscaping(t *testing.T) {
	for _, testCase := range ruleEscapeTestCase {
		got := RuleEscape(testCase.in)
		if got != testCase.out {
			t.Errorf("%s: expected `%s` got `%s`", testCase.name, testCase.out, got)
		}
	}
}

func TestShellEscaping(t *testing.T) {
	for _, testCase := range shellEscapeTestCase {
		got := ShellEscape(testCase.in)
		if got != testCase.out {
			t.Errorf("%s: expected `%s` got `%s`", testCase.name, testCase.out, got)
		}
	}
}

func TestShellEscapeIncludingSpaces(t *testing.T) {
	for _, testCase := range shellEscapeIncludingSpacesTestCase {
		got := ShellEscapeIncludingSpaces(testCase.in)
		if got != testCase.out {
			t.Errorf("%s: expected `%s` got `%s`", testCase.name, testCase.out, got)
		}
	}
}

func TestRuleAndShellEscape(t *testing.T) {
	got := RuleAndShellEscape(`-Wl,--rpath,$ORIGIN/../lib`)
	want := `'-Wl,--rpath,$$ORIGIN/../lib'`
	if got != want {
		t.Errorf("expected `%s` got `%s`", want, got)
	}
}

func TestExternalShellEscaping(t *testing.T) {
	if testing.Short() {
		return
	}
	for _, testCase := range shellEscapeTestCase {
		cmd := "echo -n " + ShellEscape(testCase.in)
		got, err := exec.Command("/bin/sh", "-c", cmd).Output()
		if err != nil {
			t.Error(err)
		}
		if string(got) != testCase.in {
			t.Errorf("%s: expected `%s` got `%s`", testCase.name, testCase.in, got)
		}
	}
}

func TestExternalShellEscapeIncludingSpaces(t *testing.T) {
	if testing.Short() {
		return
	}
	for _, testCase := range shellEscapeIncludingSpacesTestCase {
		cmd := "echo -n " + ShellEscapeIncludingSpaces(testCase.in)
		got, err := exec.Command("/bin/sh", "-c", cmd).Output()
		if err != nil {
			t.Error(err)
		}
		if string(got) != testCase.in {
			t.Errorf("%s: expected `%s` got `%s`", testCase.name, testCase.in, got)
		}
	}
}
