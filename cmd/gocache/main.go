package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lrucache/internal/cli"
)

func main() {
	// When SIGINT/SIGTERM arrives, ctx is canceled and the script stops at the next line.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gocache: %v\n", err)
		stop()
		os.Exit(1)
	}
}
