// Package main is the entry point for the version-bumper binary.
package main

import "github.com/oshokin/version-bumper/cmd/version-bumper/cmd"

func main() {
	cmd.Execute()
}
