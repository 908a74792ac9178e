// Package main is the entry point for the metal-rookie-bot binary.
//
// The binary carries every role of the container: the entry-point
// launcher, the bot process, the health probe, the offline route search,
// and the Docker deployment helper. All functionality lives in the
// internal/cli package.
package main

import (
	"github.com/Rate-JP/metal-rookie-bot/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
