package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/robbyt/go-safecalc/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "safecalc",
		Usage: "Evaluate arithmetic expressions without running arbitrary code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default $" + config.EnvConfigPath + " or the user config dir)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewEvalCommand(),
			NewNamesCommand(),
			NewTUICommand(),
		},
	}
}
