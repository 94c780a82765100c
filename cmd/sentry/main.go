package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ylchen07/sentry-cli/internal/cli"
	"github.com/ylchen07/sentry-cli/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Env{
		Streams: cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		Color:   colorEnabled(os.LookupEnv, output.IsTerminal(os.Stdout)),
	})
	stop()
	os.Exit(code)
}

// colorEnabled honours NO_COLOR and only colours terminal output.
func colorEnabled(lookup func(string) (string, bool), terminal bool) bool {
	if _, set := lookup("NO_COLOR"); set {
		return false
	}
	if term, _ := lookup("TERM"); term == "dumb" {
		return false
	}
	return terminal
}
