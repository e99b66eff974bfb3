// Package main is the entry point for the cloudkitty-hashmap CLI.
package main

import (
	"os"

	"cloudkitty-hashmap/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
