// Package main provides the entry point for the creddedupe CLI tool.
package main

import (
	"github.com/taggedzi/creddedupe/cmd/creddedupe/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
