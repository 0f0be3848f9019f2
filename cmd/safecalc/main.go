package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/robbyt/go-safecalc/cmd/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		if errors.Is(err, commands.ErrEvaluationFailed) {
			os.Exit(1)
		}
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
