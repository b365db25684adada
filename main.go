package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hierview/internal/cli"
	apperrors "hierview/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		if apperrors.IsAppError(err) {
			fmt.Fprintf(os.Stderr, "hierview: [%s] %v\n", apperrors.GetCode(err), err)
		} else {
			fmt.Fprintln(os.Stderr, "hierview:", err)
		}
		os.Exit(1)
	}
}
