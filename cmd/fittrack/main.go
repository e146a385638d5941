// ABOUTME: Entry point for fittrack CLI.
// ABOUTME: Invokes the root Cobra command.
package main

import (
	"fmt"
	"os"

	_ "time/tzdata"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
