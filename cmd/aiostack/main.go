// Package main is the entry point for the aiostack CLI.
//
// aiostack turns a small YAML description of an all-in-one application
// server into a CloudFormation template: network, security group, elastic
// IP, instance with role and user data, and the DNS records pointing at it.
//
// Commands: init, synth, publish.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aiostack/aiostack/cmd/aiostack/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
