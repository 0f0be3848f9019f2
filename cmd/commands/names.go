package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/robbyt/go-safecalc/allowlist"
)

// NewNamesCommand returns the names subcommand.
func NewNamesCommand() *cli.Command {
	return &cli.Command{
		Name:  "names",
		Usage: "List the constants and functions an expression may use",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print names only, one per line",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			list := allowlist.Default()

			if cmd.Bool("plain") {
				for _, name := range list.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tDESCRIPTION")
			for _, e := range list.Entries() {
				kind := "constant"
				if e.IsFunction() {
					kind = "function"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Signature(), kind, e.Doc())
			}
			return w.Flush()
		},
	}
}
