package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fezjo/basrs/cmd/basrs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := basrs.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(basrs.HandleError(err, os.Stderr))
}
