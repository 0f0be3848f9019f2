package keypad

import (
	"context"

	"github.com/robbyt/go-safecalc/engine"
)

// Handler reacts to a key press.
type Handler interface {
	HandleKey(ctx context.Context, key Key, source Source)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, key Key, source Source)

func (f HandlerFunc) HandleKey(ctx context.Context, key Key, source Source) {
	f(ctx, key, source)
}

// ClearedDisplay is shown after a clear and before the first evaluation.
const ClearedDisplay = "0"

// EmptyInputNotice is shown when evaluate is pressed with nothing entered.
const EmptyInputNotice = "Please provide an input!"

// Calculator is the state behind a calculator front panel. It is not safe
// for concurrent use; the UI event loop owns it.
type Calculator struct {
	evaluator engine.Evaluator
	buffer    Buffer
	result    engine.Result
	display   string
	notice    string
}

var _ Handler = (*Calculator)(nil)

func NewCalculator(ev engine.Evaluator) *Calculator {
	return &Calculator{
		evaluator: ev,
		display:   ClearedDisplay,
	}
}

// HandleKey applies key to the calculator state.
func (c *Calculator) HandleKey(ctx context.Context, key Key, _ Source) {
	c.notice = ""
	switch key.Action {
	case Append:
		c.buffer.Append(key.Text)
	case Evaluate:
		c.evaluate(ctx)
	case Clear:
		c.buffer.Clear()
		c.result = engine.Result{}
		c.display = ClearedDisplay
	case DeleteLast:
		c.buffer.DeleteLast()
	}
}

func (c *Calculator) evaluate(ctx context.Context) {
	r := c.buffer.Evaluate(ctx, c.evaluator)
	if r.Kind() == engine.EmptyInputError {
		c.notice = EmptyInputNotice
		return
	}
	c.result = r
	c.display = r.Display()
}

// Input returns the text entered so far.
func (c *Calculator) Input() string {
	return c.buffer.Text()
}

// Display returns what the result display shows.
func (c *Calculator) Display() string {
	return c.display
}

// Result returns the last evaluation result.
func (c *Calculator) Result() engine.Result {
	return c.result
}

// Notice returns a transient message for the user, or "".
func (c *Calculator) Notice() string {
	return c.notice
}
