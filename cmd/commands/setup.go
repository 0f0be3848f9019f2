package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/robbyt/go-safecalc"
	"github.com/robbyt/go-safecalc/evaluator"
	"github.com/robbyt/go-safecalc/internal/config"
)

// loadConfig reads the config named by --config, falling back to the
// default location, and applies --debug.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Resolve(cmd.String("config")))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newEvaluator builds an evaluator from cfg that logs to w.
func newEvaluator(cfg *config.Config, w io.Writer) (*evaluator.Evaluator, slog.Handler, error) {
	handler := cfg.Handler(w)
	ev, err := safecalc.New(cfg.Options(handler)...)
	if err != nil {
		return nil, nil, fmt.Errorf("create evaluator: %w", err)
	}
	return ev, handler, nil
}
