// Package main generates a synthetic family tree and answers questions about
// it interactively.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	familytreecmd "github.com/louisbranch/familytree/internal/cmd/familytree"
	"github.com/louisbranch/familytree/internal/platform/config"
)

func main() {
	cfg, err := familytreecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := familytreecmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("familytree: %v", err)
	}
}
