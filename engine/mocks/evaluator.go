package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-safecalc/engine"
)

// Evaluator is a mock implementation of engine.Evaluator for testing purposes.
type Evaluator struct {
	mock.Mock
}

// Evaluate is a mock implementation of the Evaluate method.
func (m *Evaluator) Evaluate(ctx context.Context, expression string) engine.Result {
	args := m.Called(ctx, expression)
	return args.Get(0).(engine.Result)
}
