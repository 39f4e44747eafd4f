// Package deptools writes the gcc-style depfile that accompanies a
// generated build.rules file, so a Ninja-driven regen step knows which
// buildfiles to watch before it reruns the loader.
package deptools

import (
	"fmt"
	"os"
	"strings"
)

// WriteRegenDepfile creates filename and populates it with a depfile
// stanza declaring that rulesPath depends on every path in
// buildfiles. It is meant to be called once per invocation of gngen,
// after the rule file itself has been written, so that an external
// build graph can make regenerating rulesPath conditional on any of
// the buildfiles it was computed from.
func WriteRegenDepfile(filename, rulesPath string, buildfiles []string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s: \\\n %s\n", rulesPath,
		strings.Join(buildfiles, " \\\n "))
	if err != nil {
		return err
	}

	return nil
}
