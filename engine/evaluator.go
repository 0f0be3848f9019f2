package engine

import "context"

// Evaluator computes the value of a textual arithmetic expression.
//
// Implementations never return a Go error or panic for a bad expression:
// every failure is reported as a Failure inside the Result.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) Result
}
