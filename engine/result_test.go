package engine

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberResults(t *testing.T) {
	t.Parallel()

	t.Run("integer", func(t *testing.T) {
		r := Integer(14)
		require.True(t, r.IsNumber())
		require.Nil(t, r.Failure())
		require.NoError(t, r.Err())
		require.Equal(t, FailureKind(""), r.Kind())

		i, ok := r.Int()
		require.True(t, ok)
		assert.Equal(t, int64(14), i)
		assert.InDelta(t, 14.0, r.Value(), 0)
		assert.Equal(t, int64(14), r.Interface())
		assert.Equal(t, "14", r.Display())
		assert.Equal(t, "14", r.Inspect())
	})

	t.Run("float", func(t *testing.T) {
		r := Number(4)
		require.True(t, r.IsNumber())

		_, ok := r.Int()
		require.False(t, ok)
		assert.Equal(t, 4.0, r.Interface())
		assert.Equal(t, "4.0", r.Display())
	})

	t.Run("infinity", func(t *testing.T) {
		assert.Equal(t, "inf", Number(math.Inf(1)).Display())
	})

	t.Run("exec time", func(t *testing.T) {
		r := Integer(1).WithExecTime(time.Millisecond)
		assert.Equal(t, time.Millisecond, r.ExecTime())
		assert.Contains(t, r.String(), "1ms")
	})
}

func TestFailureResults(t *testing.T) {
	t.Parallel()

	r := Fail(NameError, "use of 'open' is not allowed")
	require.False(t, r.IsNumber())
	require.Equal(t, NameError, r.Kind())
	assert.Equal(t, ErrorDisplay, r.Display())
	assert.Equal(t, "NameError: use of 'open' is not allowed", r.Inspect())
	assert.Nil(t, r.Interface())
	assert.Zero(t, r.Value())

	_, ok := r.Int()
	assert.False(t, ok)

	err := r.Err()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrName)
	require.NotErrorIs(t, err, ErrSyntax)
}

type causeError struct{ msg string }

func (e *causeError) Error() string { return e.msg }

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		kind    FailureKind
		message string
	}{
		{
			name:    "syntax",
			err:     fmt.Errorf("%w: %w", ErrSyntax, &causeError{"1:4: got end of file, want primary expression"}),
			kind:    SyntaxError,
			message: "1:4: got end of file, want primary expression",
		},
		{
			name:    "name",
			err:     fmt.Errorf("%w: %w", ErrName, &causeError{"use of 'open' is not allowed"}),
			kind:    NameError,
			message: "use of 'open' is not allowed",
		},
		{
			name:    "empty",
			err:     ErrEmptyInput,
			kind:    EmptyInputError,
			message: "empty input",
		},
		{
			name:    "limit",
			err:     fmt.Errorf("%w: %w", ErrLimit, &causeError{"expression nests deeper than 64 levels"}),
			kind:    LimitError,
			message: "expression nests deeper than 64 levels",
		},
		{
			name:    "unclassified is an evaluation error",
			err:     errors.New("boom"),
			kind:    EvaluationError,
			message: "boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := FromError(tc.err)
			require.False(t, r.IsNumber())
			assert.Equal(t, tc.kind, r.Kind())
			assert.Equal(t, tc.message, r.Failure().Message)
			assert.ErrorIs(t, r.Err(), tc.err)
		})
	}

	t.Run("nil error", func(t *testing.T) {
		require.True(t, FromError(nil).IsNumber())
	})

	t.Run("failure passes through", func(t *testing.T) {
		f := Fail(LimitError, "too long").Failure()
		r := FromError(fmt.Errorf("wrapped: %w", f))
		assert.Same(t, f, r.Failure())
	})
}
