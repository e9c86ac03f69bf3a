package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
	codeNotFound
	codeInterrupted = 130
)

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		exitf(codeInterrupted, "interrupted\n")
	case dicterr.Is(err, dicterr.CodeNotFound):
		exitf(codeNotFound, "%s\n", err.Error())
	case dicterr.Is(err, dicterr.CodeValidation), errors.Is(err, errUsage):
		exitf(codeErrorArgs, "%s\n", err.Error())
	default:
		exitf(codeInternalError, "%s\n", err.Error())
	}
}
