// Package main provides the CLI entry point for ScoutSheet.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/scrimstack-labs/scoutsheet/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
