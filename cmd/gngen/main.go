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

// Command gngen loads a buildfile tree and writes the binary rules
// for every target it finds to <build-dir>/build.rules.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wesedens/gn/bferr"
	"github.com/wesedens/gn/builder"
	"github.com/wesedens/gn/deptools"
	"github.com/wesedens/gn/loaderfs"
	"github.com/wesedens/gn/rulewriter"
	"github.com/wesedens/gn/settings"
	"github.com/wesedens/gn/sourcepath"
)

type buildArgList map[string]string

func (buildArgList) String() string { return "" }

func (b buildArgList) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("must be name=value, got %q", s)
	}
	b[name] = value
	return nil
}

var (
	rootPath       = flag.String("root", ".", "absolute OS path of the source root")
	outDir         = flag.String("out", "//out/Default/", "source-absolute build output directory")
	toolchainOSStr = flag.String("toolchain-os", "linux", "target OS for the default toolchain: linux, mac, or windows")
	toolchainDir   = flag.String("toolchain-dir", "//build/toolchain/", "source-absolute directory holding the default toolchain() declaration")
	toolchainName  = flag.String("toolchain-name", "default", "name of the toolchain() target to build with")
	limit          = flag.Int("j", 8, "maximum number of buildfiles to parse concurrently")
	verbose        = flag.Bool("v", false, "verbose logging")
	buildArgs      = make(buildArgList)
)

func init() {
	flag.Var(buildArgs, "args", "a build argument as name=value; may be repeated")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gngen [flags] <root-buildfile-path>")
	flag.PrintDefaults()
}

func parseTargetOS(s string) (settings.TargetOS, error) {
	switch s {
	case "linux":
		return settings.OSLinux, nil
	case "mac":
		return settings.OSMac, nil
	case "windows":
		return settings.OSWindows, nil
	default:
		return settings.OSUnknown, fmt.Errorf("unknown -toolchain-os %q", s)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	rootBuildfile := sourcepath.File(flag.Arg(0))

	targetOS, err := parseTargetOS(*toolchainOSStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(rootBuildfile, targetOS); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(rootBuildfile sourcepath.File, targetOS settings.TargetOS) error {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := bferr.AsInvariant(r); ok {
				log.Errorf("internal invariant violated: %v", err)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	bs := settings.New()
	bs.SetRootPath(*rootPath)
	bs.SetBuildDir(sourcepath.Dir(*outDir))
	for name, value := range buildArgs {
		bs.SetBuildArg(name, value)
	}

	toolchainLabel := settings.Label{Dir: sourcepath.Dir(*toolchainDir), Name: *toolchainName}
	bootstrapView := settings.NewToolchainView(bs, &settings.Toolchain{Label: toolchainLabel}, toolchainLabel, targetOS, "")

	toolchains, errs := builder.LoadToolchainDef(loaderfs.OS, toolchainLabel.Dir, toolchainLabel, bootstrapView)
	if len(errs) > 0 {
		for _, e := range errs {
			log.Errorf("toolchain definition: %v", e)
		}
		return fmt.Errorf("failed to load toolchain %s", toolchainLabel)
	}
	tc, ok := toolchains[toolchainLabel.String()]
	if !ok {
		return fmt.Errorf("toolchain %s not declared in %s", toolchainLabel, toolchainLabel.Dir)
	}

	view := settings.NewToolchainView(bs, tc, toolchainLabel, targetOS, "")

	rootDir := builder.DirOf(rootBuildfile)
	ld := builder.NewLoader(loaderfs.OS, view, *limit)
	targets, loadErrs := ld.Load(context.Background(), rootDir)
	for _, e := range loadErrs {
		log.Warnf("load error: %v", e)
	}
	if len(loadErrs) > 0 {
		return fmt.Errorf("%d error(s) loading the buildfile tree", len(loadErrs))
	}

	var out bytes.Buffer
	for _, t := range targets {
		if rule := rulewriter.WriteBinaryTarget(t, view); rule != nil {
			out.Write(rule)
			out.WriteByte('\n')
		}
	}

	rulesPath := bs.FullPath(string(bs.BuildDir()) + "build.rules")
	if err := os.WriteFile(rulesPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rulesPath, err)
	}
	log.Infof("wrote %d targets' rules to %s", len(targets), rulesPath)

	if err := writeRegenDepfile(bs, ld, rulesPath); err != nil {
		return fmt.Errorf("writing regen depfile: %w", err)
	}
	return nil
}

// writeRegenDepfile records every buildfile the load read as a
// dependency of rulesPath, so a Ninja-driven regen step knows to
// rerun gngen whenever any of them changes.
func writeRegenDepfile(bs *settings.BuildSettings, ld *builder.Loader, rulesPath string) error {
	buildfiles := ld.ReadBuildfiles()
	deps := make([]string, len(buildfiles))
	for i, f := range buildfiles {
		deps[i] = bs.FullPath(string(f))
	}
	return deptools.WriteRegenDepfile(rulesPath+".d", rulesPath, deps)
}
