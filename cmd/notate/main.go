/*
notate is a console utility converting mathematical expressions between notations.

Usage is

	notate [--config <file>] [--tables <file>]... [-v] <command>

Commands:

	convert    convert expressions given as arguments or read from stdin
	repl       interactive conversion, optionally reloading tables on change
	languages  list languages
	concepts   list concepts
	grammar    dump language grammar as text or JSON
	version    print version
*/
package main

import (
	"os"

	"github.com/ava12/notation/cmd/notate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
