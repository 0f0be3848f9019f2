package keypad

import (
	"context"
	"strings"

	"github.com/robbyt/go-safecalc/engine"
)

// Buffer holds the keys appended since the last clear, in order.
type Buffer struct {
	tokens []string
}

// Append adds one token to the end of the buffer.
func (b *Buffer) Append(token string) {
	b.tokens = append(b.tokens, token)
}

// Text returns the buffer as a single expression string.
func (b *Buffer) Text() string {
	return strings.Join(b.tokens, "")
}

func (b *Buffer) Len() int {
	return len(b.tokens)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.tokens = nil
}

// DeleteLast removes the last digit token together with everything
// appended after it. It reports false, leaving the buffer unchanged, when
// the buffer holds no digit.
func (b *Buffer) DeleteLast() bool {
	for i := len(b.tokens) - 1; i >= 0; i-- {
		if IsDigit(b.tokens[i]) {
			b.tokens = b.tokens[:i]
			return true
		}
	}
	return false
}

// Evaluate passes the buffer text to ev. An empty buffer is reported as
// an EmptyInputError without calling ev.
func (b *Buffer) Evaluate(ctx context.Context, ev engine.Evaluator) engine.Result {
	text := b.Text()
	if text == "" {
		return engine.FromError(engine.ErrEmptyInput)
	}
	return ev.Evaluate(ctx, text)
}
