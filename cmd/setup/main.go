package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotsetup/internal/cli"
	"github.com/arthur-debert/dotsetup/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		cli.PrintError(rootCmd, err)
		os.Exit(errors.ExitCode(err))
	}
}
