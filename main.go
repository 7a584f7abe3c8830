// Package main is the entry point for the mlint CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eykd/manifestlint-go/cmd"
)

func main() {
	// Create a context that is cancelled on SIGINT (Ctrl+C).
	// Batch validation stops reading new files once it is cancelled.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	code := cmd.RunCLI(ctx, cmd.NewApp(os.Stdin, os.Stderr), os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
