package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/urfave/cli/v3"

	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/loader"
)

// ErrEvaluationFailed is returned when at least one expression did not
// produce a number. The failures themselves are already reported.
var ErrEvaluationFailed = errors.New("evaluation failed")

const stdinArg = "-"

// NewEvalCommand returns the eval subcommand.
func NewEvalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate an expression, or one expression per line from a file or stdin",
		ArgsUsage: "[expression... | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read expressions from `FILE`, one per line (# starts a comment)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Write one JSON object per expression",
			},
		},
		Action: runEval,
	}
}

// evalRecord is one line of --json output.
type evalRecord struct {
	Line       int    `json:"line,omitempty"`
	Expression string `json:"expression"`
	Display    string `json:"display"`
	Value      any    `json:"value,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message,omitempty"`
}

func runEval(ctx context.Context, cmd *cli.Command) error {
	root := cmd.Root()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ev, _, err := newEvaluator(cfg, root.ErrWriter)
	if err != nil {
		return err
	}

	lines, err := expressions(cmd, root.Reader)
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	enc := json.NewEncoder(root.Writer)
	batch := len(lines) > 1 || lines[0].Number > 0
	failed := 0

	for _, line := range lines {
		r := ev.Evaluate(ctx, line.Text)
		if !r.IsNumber() {
			failed++
		}

		if asJSON {
			if err := enc.Encode(newRecord(line, r)); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			continue
		}

		fmt.Fprintln(root.Writer, r.Display())
		if f := r.Failure(); f != nil {
			if batch {
				fmt.Fprintf(root.ErrWriter, "line %d: %s\n", line.Number, f.Error())
			} else {
				fmt.Fprintln(root.ErrWriter, f.Error())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d expressions", ErrEvaluationFailed, failed, len(lines))
	}
	return nil
}

// expressions collects the input for eval. Arguments are joined into a
// single expression so that unquoted shell words like `2 + 3` work.
func expressions(cmd *cli.Command, stdin io.Reader) ([]loader.Line, error) {
	var src loader.Loader
	var err error

	args := cmd.Args().Slice()
	switch {
	case cmd.String("file") != "":
		if len(args) > 0 {
			return nil, fmt.Errorf("--file cannot be combined with expression arguments")
		}
		src, err = loader.NewFromDisk(cmd.String("file"))
	case len(args) == 0 || (len(args) == 1 && args[0] == stdinArg):
		src, err = loader.NewFromIoReader(stdin, "stdin")
	default:
		src, err = loader.NewFromExpression(args...)
	}
	if err != nil {
		return nil, err
	}

	lines, err := loader.Lines(src)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no expressions in %s", loader.ErrSourceUnavailable, src.GetSourceURL())
	}
	return lines, nil
}

func newRecord(line loader.Line, r engine.Result) evalRecord {
	rec := evalRecord{
		Line:       line.Number,
		Expression: line.Text,
		Display:    r.Display(),
	}
	if f := r.Failure(); f != nil {
		rec.Kind = string(f.Kind)
		rec.Message = f.Message
		return rec
	}
	if v := r.Value(); !math.IsInf(v, 0) && !math.IsNaN(v) {
		rec.Value = r.Interface()
	}
	return rec
}
