// mazepath generates grid mazes and finds shortest paths through them.
//
// Usage:
//
//	mazepath solve --seed 7 --theme ascii
//	mazepath view
//	mazepath serve --config mazepath.yaml
//
// Connect to a running server with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
